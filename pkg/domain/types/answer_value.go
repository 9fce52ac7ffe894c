package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// AnswerValue represents a response to a questionnaire item
type AnswerValue string

const (
	AnswerYes           AnswerValue = "yes"
	AnswerNo            AnswerValue = "no"
	AnswerUnknown       AnswerValue = "unknown"
	AnswerNotApplicable AnswerValue = "not_applicable"
)

// AllAnswerValues returns all valid answer values
func AllAnswerValues() []AnswerValue {
	return []AnswerValue{
		AnswerYes,
		AnswerNo,
		AnswerUnknown,
		AnswerNotApplicable,
	}
}

// IsValid checks if the answer value is valid
func (v AnswerValue) IsValid() bool {
	switch v {
	case AnswerYes, AnswerNo, AnswerUnknown, AnswerNotApplicable:
		return true
	default:
		return false
	}
}

// String returns the string representation of the answer value
func (v AnswerValue) String() string {
	return string(v)
}

// Weight returns the risk weight contributed by the answer:
// "no" counts 1.0, "unknown" counts 0.5, everything else 0.
func (v AnswerValue) Weight() float64 {
	switch v {
	case AnswerNo:
		return 1.0
	case AnswerUnknown:
		return 0.5
	default:
		return 0
	}
}

// IsRisk reports whether the answer flags a risk (no or unknown)
func (v AnswerValue) IsRisk() bool {
	return v == AnswerNo || v == AnswerUnknown
}

// ParseAnswerValue normalizes a free-form answer string in either language
// into an AnswerValue. It accepts the spellings the original questionnaire
// emitted ("Oui", "S.O.", "N/A", ...).
func ParseAnswerValue(s string) (AnswerValue, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "oui", "o":
		return AnswerYes, nil
	case "no", "n", "non":
		return AnswerNo, nil
	case "unknown", "inconnu", "dontknow", "don't know":
		return AnswerUnknown, nil
	case "na", "n/a", "so", "s.o.", "not applicable", "not_applicable", "sans objet":
		return AnswerNotApplicable, nil
	default:
		return "", goerr.New("invalid answer value", goerr.V("value", s))
	}
}
