package types

import "strings"

// Lang represents a display language code
type Lang string

const (
	LangEN Lang = "en"
	LangFR Lang = "fr"
)

// AllLangs returns all supported language codes
func AllLangs() []Lang {
	return []Lang{LangEN, LangFR}
}

// IsValid checks if the language code is supported
func (l Lang) IsValid() bool {
	switch l {
	case LangEN, LangFR:
		return true
	default:
		return false
	}
}

// String returns the string representation of the language code
func (l Lang) String() string {
	return string(l)
}

// ParseLang parses a string into a Lang. Anything that is not a French
// locale resolves to English, matching the original tool's detection rule.
func ParseLang(s string) Lang {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(s)), "fr") {
		return LangFR
	}
	return LangEN
}
