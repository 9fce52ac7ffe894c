package types

// Classification represents the risk band computed for a category
type Classification string

const (
	ClassificationHigh        Classification = "HIGH"
	ClassificationMedium      Classification = "MEDIUM"
	ClassificationLow         Classification = "LOW"
	ClassificationNotReviewed Classification = "NOT_REVIEWED"
)

// AllClassifications returns all risk classifications
func AllClassifications() []Classification {
	return []Classification{
		ClassificationHigh,
		ClassificationMedium,
		ClassificationLow,
		ClassificationNotReviewed,
	}
}

// IsValid checks if the classification is valid
func (c Classification) IsValid() bool {
	switch c {
	case ClassificationHigh, ClassificationMedium, ClassificationLow, ClassificationNotReviewed:
		return true
	default:
		return false
	}
}

// String returns the string representation of the classification
func (c Classification) String() string {
	return string(c)
}

// Label returns the human-readable label for the classification in the
// given language, matching the wording of the original summary table.
func (c Classification) Label(lang Lang) string {
	labels := map[Classification]map[Lang]string{
		ClassificationHigh: {
			LangEN: "Requires Risk Mitigation",
			LangFR: "Requiert une atténuation des risques",
		},
		ClassificationMedium: {
			LangEN: "Further research required",
			LangFR: "Recherche supplémentaire requise",
		},
		ClassificationLow: {
			LangEN: "Risks Mitigated / N/A",
			LangFR: "Risques atténués / N/A",
		},
		ClassificationNotReviewed: {
			LangEN: "Not reviewed",
			LangFR: "Non examiné",
		},
	}

	if byLang, ok := labels[c]; ok {
		if label, ok := byLang[lang]; ok {
			return label
		}
		return byLang[LangEN]
	}
	return string(c)
}
