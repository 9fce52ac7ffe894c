package interfaces

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/riskident-lab/rrit/pkg/domain/model"
)

// ErrScenarioNotFound is returned by Get when no scenario is stored under
// the fixed key, or when the stored record is unreadable. All backends
// wrap this sentinel so callers can normalize to "absent".
var ErrScenarioNotFound = goerr.New("scenario not found")

// ScenarioRepository is a single-slot durable store for exactly one
// scenario under the fixed storage key. Put overwrites the slot wholesale;
// there are no partial updates and no history. Concurrent writers get
// last-writer-wins and nothing stronger.
type ScenarioRepository interface {
	// Put stores the scenario, overwriting any existing record
	Put(ctx context.Context, scenario *model.Scenario) error

	// Get retrieves the stored scenario. It returns an error wrapping
	// ErrScenarioNotFound when the slot is empty or the record is corrupt.
	Get(ctx context.Context) (*model.Scenario, error)

	// Clear removes the stored record. Clearing an empty slot is not an
	// error.
	Clear(ctx context.Context) error

	// Close releases backend resources
	Close() error
}
