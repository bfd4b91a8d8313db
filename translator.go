package cirrus

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
)

// Translator provides a common interface to translate text with an external
// translation provider.
type Translator interface {
	// Translate translates the text from the source language to the target
	// language.
	Translate(ctx context.Context, text string, source, target Language) (string, error)
}

// Language is a supported language code.
type Language string

const (
	LanguageEnglish    Language = "en"
	LanguageGerman     Language = "de"
	LanguageFrench     Language = "fr"
	LanguageSpanish    Language = "es"
	LanguagePortuguese Language = "pt"
)

// SupportedLanguages returns all languages that can be translated.
func SupportedLanguages() []Language {
	return []Language{
		LanguageEnglish,
		LanguageGerman,
		LanguageFrench,
		LanguageSpanish,
		LanguagePortuguese,
	}
}

var languageTags = map[Language]language.Tag{
	LanguageEnglish:    language.English,
	LanguageGerman:     language.German,
	LanguageFrench:     language.French,
	LanguageSpanish:    language.Spanish,
	LanguagePortuguese: language.Portuguese,
}

// Validate checks that the language is one of the supported languages. The
// comparison is exact, so "EN" or "en-US" are not supported.
func (l Language) Validate() error {
	if _, ok := languageTags[l]; !ok {
		return NewUnsupportedLanguageError(string(l))
	}
	return nil
}

// Tag returns the BCP 47 tag for the language.
func (l Language) Tag() (language.Tag, error) {
	tag, ok := languageTags[l]
	if !ok {
		return language.Und, NewUnsupportedLanguageError(string(l))
	}
	return tag, nil
}

// UnsupportedLanguageError indicates that a language code is not one of the
// supported languages.
type UnsupportedLanguageError struct {
	Code string
}

// NewUnsupportedLanguageError returns an UnsupportedLanguageError for the given
// language code.
func NewUnsupportedLanguageError(code string) *UnsupportedLanguageError {
	return &UnsupportedLanguageError{Code: code}
}

// Error returns the formatted error message including the language code and the
// supported languages.
func (e *UnsupportedLanguageError) Error() string {
	var supported []string
	for _, l := range SupportedLanguages() {
		supported = append(supported, string(l))
	}
	return "language '" + e.Code + "' is not supported (must be one of: " + strings.Join(supported, ", ") + ")"
}

// IsUnsupportedLanguage returns whether or not the error is due to an
// unsupported language.
func IsUnsupportedLanguage(err error) bool {
	if err == nil {
		return false
	}

	var e *UnsupportedLanguageError
	return errors.As(err, &e)
}
