package mock

import (
	"context"

	"github.com/evergreen-ci/cirrus"
)

// TranslateInput is the input to a single call to Translate.
type TranslateInput struct {
	Text   string
	Source cirrus.Language
	Target cirrus.Language
}

// Translator provides a mock implementation of a cirrus.Translator. By default,
// it returns the input text unchanged.
type Translator struct {
	TranslateInput  *TranslateInput
	TranslateOutput *string
	TranslateError  error
	TranslateCalls  int
}

// Translate saves the input and returns the mock translation. The mock output
// can be customized. By default, it echoes the input text.
func (m *Translator) Translate(ctx context.Context, text string, source, target cirrus.Language) (string, error) {
	m.TranslateCalls++
	m.TranslateInput = &TranslateInput{
		Text:   text,
		Source: source,
		Target: target,
	}

	if m.TranslateError != nil {
		return "", m.TranslateError
	}
	if m.TranslateOutput != nil {
		return *m.TranslateOutput, nil
	}

	return text, nil
}
