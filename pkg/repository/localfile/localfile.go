package localfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/riskident-lab/rrit/pkg/domain/interfaces"
	"github.com/riskident-lab/rrit/pkg/domain/model"
	"github.com/riskident-lab/rrit/pkg/utils/logging"
)

// LocalFile stores the scenario as a JSON file under the fixed storage
// key, the durable-store analog of the original tool's browser local
// storage. Writes go through a temp file and rename so readers never
// observe a partial record.
type LocalFile struct {
	mu   sync.Mutex
	path string
}

var _ interfaces.ScenarioRepository = &LocalFile{}

// New creates a file-backed scenario store rooted at dir. The directory
// is created if missing.
func New(dir string) (*LocalFile, error) {
	if dir == "" {
		return nil, goerr.New("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, goerr.Wrap(err, "failed to create storage directory", goerr.V("dir", dir))
	}
	return &LocalFile{
		path: filepath.Join(dir, model.StorageKey+".json"),
	}, nil
}

// Path returns the file path of the scenario slot
func (l *LocalFile) Path() string {
	return l.path
}

// Put stores the scenario, overwriting any existing record atomically
func (l *LocalFile) Put(ctx context.Context, scenario *model.Scenario) error {
	if scenario == nil {
		return goerr.New("cannot store nil scenario")
	}

	data, err := json.MarshalIndent(scenario, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to serialize scenario")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return goerr.Wrap(err, "failed to write scenario file", goerr.V("path", tmp))
	}
	if err := os.Rename(tmp, l.path); err != nil {
		return goerr.Wrap(err, "failed to replace scenario file", goerr.V("path", l.path))
	}
	return nil
}

// Get retrieves the stored scenario. A missing file and an unparseable
// record are both reported as not found; a corrupt record never partially
// restores.
func (l *LocalFile) Get(ctx context.Context) (*model.Scenario, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(interfaces.ErrScenarioNotFound, "no scenario file", goerr.V("path", l.path))
		}
		return nil, goerr.Wrap(err, "failed to read scenario file", goerr.V("path", l.path))
	}

	var scenario model.Scenario
	if err := json.Unmarshal(data, &scenario); err != nil {
		logging.From(ctx).Warn("stored scenario is corrupt, treating as absent",
			"path", l.path, "error", err.Error())
		return nil, goerr.Wrap(interfaces.ErrScenarioNotFound, "corrupt scenario record", goerr.V("path", l.path))
	}

	return &scenario, nil
}

// Clear removes the stored record. Idempotent.
func (l *LocalFile) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return goerr.Wrap(err, "failed to remove scenario file", goerr.V("path", l.path))
	}
	return nil
}

// Close is a no-op for the file store
func (l *LocalFile) Close() error {
	return nil
}
