package tts

import (
	"errors"
	"strings"
)

// Language identifies the language the synthesized speech is spoken in.
type Language string

const (
	// LanguageEnglish speaks the input text as-is.
	LanguageEnglish Language = "en"
	// LanguageMalayalam translates the input text before synthesis.
	LanguageMalayalam Language = "ml"
)

// DefaultLanguage is used when a request does not specify a language.
const DefaultLanguage = LanguageMalayalam

// ErrUnknownLanguage is returned when a language identifier is not supported.
var ErrUnknownLanguage = errors.New("unknown language")

// LanguageInfo describes a supported language for catalog listings.
type LanguageInfo struct {
	ID   Language `json:"id"`
	Name string   `json:"name"`
}

// Languages returns the supported languages in stable order.
func Languages() []LanguageInfo {
	return []LanguageInfo{
		{ID: LanguageEnglish, Name: "English"},
		{ID: LanguageMalayalam, Name: "Malayalam"},
	}
}

// ParseLanguage resolves a language identifier. An empty identifier
// resolves to DefaultLanguage.
func ParseLanguage(id string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(id))) {
	case "":
		return DefaultLanguage, nil
	case LanguageEnglish:
		return LanguageEnglish, nil
	case LanguageMalayalam:
		return LanguageMalayalam, nil
	default:
		return "", ErrUnknownLanguage
	}
}
