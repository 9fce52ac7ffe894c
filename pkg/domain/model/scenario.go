package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/riskident-lab/rrit/pkg/domain/types"
)

// FormatVersion is the persisted record format tag. A stored record with
// any other (or missing) version is treated as absent; there is no
// best-effort migration.
const FormatVersion = "v2"

// StorageKey is the fixed key the single scenario slot is stored under,
// kept identical to the original tool's localStorage key so live data can
// be migrated.
const StorageKey = "rrit_savedScenario_v2"

// Answer is a recorded response to one question. At most one Answer exists
// per question; re-answering replaces.
type Answer struct {
	QuestionID types.QuestionID  `json:"questionId"`
	Value      types.AnswerValue `json:"value"`
}

// Metadata carries the free-text fields of a scenario. It is opaque to
// scoring. CompletedBy may hold a person's name and is redacted from logs.
type Metadata struct {
	ProjectName        string `json:"projectName"`
	ProjectDescription string `json:"projectDescription"`
	AssessmentDate     string `json:"assessmentDate"`
	CompletedBy        string `json:"completedBy" masq:"secret"`
}

// Scenario is the persisted unit: one complete saved session. It is
// created on first save, overwritten wholesale on every subsequent save,
// and destroyed by starting a new scenario.
type Scenario struct {
	ID                         types.ScenarioID   `json:"id,omitempty"`
	FormatVersion              string             `json:"formatVersion"`
	Language                   types.Lang         `json:"language"`
	Answers                    []Answer           `json:"answers"`
	SelectedOptionalCategories []types.CategoryID `json:"selectedOptionalCategories"`
	Metadata                   Metadata           `json:"metadata"`
	SavedAtEpochMillis         int64              `json:"savedAtEpochMillis"`
}

// IsCurrentVersion reports whether the record uses the current format
func (s *Scenario) IsCurrentVersion() bool {
	return s.FormatVersion == FormatVersion
}

// SavedAt returns the save timestamp as a time.Time
func (s *Scenario) SavedAt() time.Time {
	return time.UnixMilli(s.SavedAtEpochMillis).UTC()
}

// Validate checks structural validity of a scenario to be persisted
func (s *Scenario) Validate() error {
	if s.FormatVersion == "" {
		return goerr.New("scenario format version is required")
	}
	if s.ID != "" {
		if err := s.ID.Validate(); err != nil {
			return goerr.Wrap(err, "invalid scenario ID")
		}
	}
	if !s.Language.IsValid() {
		return goerr.New("invalid scenario language", goerr.V("language", s.Language))
	}
	seen := make(map[types.QuestionID]bool, len(s.Answers))
	for _, ans := range s.Answers {
		if err := ans.QuestionID.Validate(); err != nil {
			return goerr.Wrap(err, "invalid answer question ID")
		}
		if !ans.Value.IsValid() {
			return goerr.New("invalid answer value",
				goerr.V("question", ans.QuestionID), goerr.V("value", ans.Value))
		}
		if seen[ans.QuestionID] {
			return goerr.New("duplicate answer for question", goerr.V("question", ans.QuestionID))
		}
		seen[ans.QuestionID] = true
	}
	for _, id := range s.SelectedOptionalCategories {
		if err := id.Validate(); err != nil {
			return goerr.Wrap(err, "invalid selected category ID")
		}
	}
	return nil
}

// Clone returns a deep copy of the scenario
func (s *Scenario) Clone() *Scenario {
	if s == nil {
		return nil
	}
	clone := *s
	clone.Answers = append([]Answer(nil), s.Answers...)
	clone.SelectedOptionalCategories = append([]types.CategoryID(nil), s.SelectedOptionalCategories...)
	return &clone
}
