package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslatorConfig(t *testing.T) {
	t.Run("SetsDefaults", func(t *testing.T) {
		unsetEnv(t, KeyProvider, KeyGoogleCreds, KeyMyMemoryEmail, KeyPort, customHandlerPortEnv, KeyLambdaRuntimeAPI)

		c, err := NewLoader().Translator()
		require.NoError(t, err)
		assert.Equal(t, "google", c.Provider)
		assert.Equal(t, 8080, c.Port)
		assert.False(t, c.InLambda)
		assert.Empty(t, c.GoogleCredentialsFile)
		assert.Empty(t, c.MyMemoryEmail)
	})
	t.Run("PrefersCustomHandlerPort", func(t *testing.T) {
		t.Setenv(customHandlerPortEnv, "7071")
		t.Setenv(KeyPort, "9000")

		c, err := NewLoader().Translator()
		require.NoError(t, err)
		assert.Equal(t, 7071, c.Port)
	})
	t.Run("UsesCustomHandlerPortWithoutPort", func(t *testing.T) {
		unsetEnv(t, KeyPort)
		t.Setenv(customHandlerPortEnv, "7071")

		c, err := NewLoader().Translator()
		require.NoError(t, err)
		assert.Equal(t, 7071, c.Port)
	})
	t.Run("IgnoresEmptyCustomHandlerPort", func(t *testing.T) {
		t.Setenv(customHandlerPortEnv, " ")
		t.Setenv(KeyPort, "9000")

		c, err := NewLoader().Translator()
		require.NoError(t, err)
		assert.Equal(t, 9000, c.Port)
	})
	t.Run("FallsBackToPort", func(t *testing.T) {
		unsetEnv(t, customHandlerPortEnv)
		t.Setenv(KeyPort, "9000")

		c, err := NewLoader().Translator()
		require.NoError(t, err)
		assert.Equal(t, 9000, c.Port)
	})
	t.Run("DetectsLambda", func(t *testing.T) {
		t.Setenv(KeyLambdaRuntimeAPI, "127.0.0.1:9001")

		c, err := NewLoader().Translator()
		require.NoError(t, err)
		assert.True(t, c.InLambda)
	})
	t.Run("ReadsMyMemorySettings", func(t *testing.T) {
		t.Setenv(KeyProvider, "mymemory")
		t.Setenv(KeyMyMemoryEmail, "user@example.com")

		c, err := NewLoader().Translator()
		require.NoError(t, err)
		assert.Equal(t, "mymemory", c.Provider)
		assert.Equal(t, "user@example.com", c.MyMemoryEmail)
	})
	t.Run("FailsWithUnknownProvider", func(t *testing.T) {
		t.Setenv(KeyProvider, "deepl")

		c, err := NewLoader().Translator()
		assert.Error(t, err)
		assert.Zero(t, c)
	})
	t.Run("FailsWithInvalidPort", func(t *testing.T) {
		unsetEnv(t, customHandlerPortEnv, KeyLambdaRuntimeAPI)
		t.Setenv(KeyPort, "http")

		c, err := NewLoader().Translator()
		assert.Error(t, err)
		assert.Zero(t, c)
	})
	t.Run("FailsWithOutOfRangePort", func(t *testing.T) {
		unsetEnv(t, customHandlerPortEnv, KeyLambdaRuntimeAPI)
		t.Setenv(KeyPort, "70000")

		c, err := NewLoader().Translator()
		assert.Error(t, err)
		assert.Zero(t, c)
	})
}
