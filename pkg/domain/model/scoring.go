package model

import "github.com/riskident-lab/rrit/pkg/domain/types"

// Risk-ratio thresholds. The boundary is inclusive on the high side:
// a ratio of exactly 0.4 is HIGH and exactly 0.2 is MEDIUM.
const (
	thresholdHigh   = 0.4
	thresholdMedium = 0.2
)

// CategoryScore is the scoring output for one in-scope category
type CategoryScore struct {
	CategoryID     types.CategoryID     `json:"categoryId"`
	Classification types.Classification `json:"classification"`
	Weight         float64              `json:"weight"`
	Total          int                  `json:"total"`
}

// Score classifies risk for every selected category from the answers
// recorded in the store. For each category it gathers the answers of that
// category's questions and computes:
//
//   - critical override: a critical category with any "no" or "unknown"
//     answer is HIGH regardless of ratio
//   - no gathered answers: NOT_REVIEWED
//   - otherwise weight/total against the fixed thresholds
//
// The function is pure and total over well-formed input; categories out of
// scope are omitted from the result.
func Score(qset *QuestionSet, store *AnswerStore) []CategoryScore {
	scores := make([]CategoryScore, 0, len(qset.Categories()))

	for _, catID := range store.SelectedCategories() {
		cat, ok := qset.Category(catID)
		if !ok {
			continue
		}

		var weight float64
		var total int
		var hasRisk bool
		for _, q := range qset.Questions() {
			if q.CategoryID != catID {
				continue
			}
			value, answered := store.Answer(q.ID)
			if !answered {
				continue
			}
			total++
			weight += value.Weight()
			if value.IsRisk() {
				hasRisk = true
			}
		}

		scores = append(scores, CategoryScore{
			CategoryID:     catID,
			Classification: classify(cat.Critical, hasRisk, weight, total),
			Weight:         weight,
			Total:          total,
		})
	}

	return scores
}

func classify(critical, hasRisk bool, weight float64, total int) types.Classification {
	if critical && hasRisk {
		return types.ClassificationHigh
	}
	if total == 0 {
		return types.ClassificationNotReviewed
	}

	ratio := weight / float64(total)
	switch {
	case ratio >= thresholdHigh:
		return types.ClassificationHigh
	case ratio >= thresholdMedium:
		return types.ClassificationMedium
	default:
		return types.ClassificationLow
	}
}

// RiskFinding is one flagged answer (no or unknown) with its risk
// statement and mitigation guidance resolved to a single language.
type RiskFinding struct {
	QuestionID    types.QuestionID  `json:"questionId"`
	CategoryID    types.CategoryID  `json:"categoryId"`
	Value         types.AnswerValue `json:"value"`
	Question      string            `json:"question"`
	RiskStatement string            `json:"riskStatement"`
	Mitigations   []string          `json:"mitigations"`
}

// RiskFindings lists every no/unknown answer within the selected
// categories, in question order. This is the per-question annex of the
// summary view.
func RiskFindings(qset *QuestionSet, store *AnswerStore, lang types.Lang) []RiskFinding {
	findings := make([]RiskFinding, 0)

	for _, q := range qset.Questions() {
		if !store.IsSelected(q.CategoryID) {
			continue
		}
		value, answered := store.Answer(q.ID)
		if !answered || !value.IsRisk() {
			continue
		}
		findings = append(findings, RiskFinding{
			QuestionID:    q.ID,
			CategoryID:    q.CategoryID,
			Value:         value,
			Question:      q.Text.Resolve(lang),
			RiskStatement: q.RiskStatement.Resolve(lang),
			Mitigations:   q.Mitigations.Resolve(lang),
		})
	}

	return findings
}
