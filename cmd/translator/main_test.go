package main

import (
	"context"
	"testing"

	"github.com/evergreen-ci/cirrus/internal/config"
	"github.com/evergreen-ci/cirrus/mock"
	"github.com/evergreen-ci/cirrus/translate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTranslator(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("CreatesMyMemoryTranslator", func(t *testing.T) {
		tr, err := newTranslator(ctx, &config.TranslatorConfig{
			Provider:      translate.ProviderMyMemory,
			MyMemoryEmail: "user@example.com",
		})
		require.NoError(t, err)
		assert.IsType(t, &translate.MyMemoryTranslator{}, tr)
		assert.NoError(t, tr.Close())
	})
	t.Run("FailsWithUnknownProvider", func(t *testing.T) {
		tr, err := newTranslator(ctx, &config.TranslatorConfig{Provider: "deepl"})
		assert.Error(t, err)
		assert.Zero(t, tr)
	})
}

type closeRecordingTranslator struct {
	mock.Translator
	closeCalls int
}

func (t *closeRecordingTranslator) Close() error {
	t.closeCalls++
	return nil
}

func TestCloseOnce(t *testing.T) {
	tr := &closeRecordingTranslator{}
	closeTranslator := closeOnce(tr, translate.ProviderGoogle)

	closeTranslator()
	closeTranslator()

	assert.Equal(t, 1, tr.closeCalls)
}
