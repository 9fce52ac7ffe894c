package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/riskident-lab/rrit/pkg/domain/interfaces"
	"github.com/riskident-lab/rrit/pkg/domain/model"
)

// Memory is an in-memory scenario store for development and testing
type Memory struct {
	mu       sync.RWMutex
	scenario *model.Scenario
}

var _ interfaces.ScenarioRepository = &Memory{}

// New creates an empty in-memory scenario store
func New() *Memory {
	return &Memory{}
}

// Put stores the scenario, overwriting any existing record
func (m *Memory) Put(ctx context.Context, scenario *model.Scenario) error {
	if scenario == nil {
		return goerr.New("cannot store nil scenario")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.scenario = scenario.Clone()
	return nil
}

// Get retrieves the stored scenario
func (m *Memory) Get(ctx context.Context) (*model.Scenario, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.scenario == nil {
		return nil, goerr.Wrap(interfaces.ErrScenarioNotFound, "no scenario stored")
	}
	return m.scenario.Clone(), nil
}

// Clear removes the stored record. Idempotent.
func (m *Memory) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scenario = nil
	return nil
}

// Close is a no-op for the in-memory store
func (m *Memory) Close() error {
	return nil
}
