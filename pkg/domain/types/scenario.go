package types

import "github.com/m-mizutani/goerr/v2"

// ScenarioID represents a unique identifier for a saved scenario
type ScenarioID string

// Validate checks if the ScenarioID is valid
func (s ScenarioID) Validate() error {
	if s == "" {
		return goerr.New("scenario ID is empty")
	}
	if !idPattern.MatchString(string(s)) {
		return goerr.New("invalid scenario ID format", goerr.V("id", s))
	}
	return nil
}

// String returns the string representation of ScenarioID
func (s ScenarioID) String() string {
	return string(s)
}
