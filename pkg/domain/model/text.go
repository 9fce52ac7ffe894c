package model

import "github.com/riskident-lab/rrit/pkg/domain/types"

// Text is a bilingual display string keyed by language code.
// English is the fallback source of truth.
type Text map[types.Lang]string

// Resolve returns the string for the given language, falling back to
// English when the requested language is absent. This is the single
// fallback point for all localized output.
func (t Text) Resolve(lang types.Lang) string {
	if s, ok := t[lang]; ok && s != "" {
		return s
	}
	return t[types.LangEN]
}

// IsEmpty reports whether the text has no English content
func (t Text) IsEmpty() bool {
	return t[types.LangEN] == ""
}

// TextList is a bilingual ordered list of display strings, used for
// mitigation guidance.
type TextList map[types.Lang][]string

// Resolve returns the list for the given language, falling back to
// English when the requested language is absent.
func (t TextList) Resolve(lang types.Lang) []string {
	if items, ok := t[lang]; ok && len(items) > 0 {
		return items
	}
	return t[types.LangEN]
}
