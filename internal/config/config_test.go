package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv unsets the environment variable for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeEnvFile(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), ".secrets.env")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("SucceedsWithMissingFile", func(t *testing.T) {
		assert.NoError(t, NewLoader().LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
	})
	t.Run("SucceedsWithEmptyPath", func(t *testing.T) {
		assert.NoError(t, NewLoader().LoadEnvFile(""))
	})
	t.Run("LoadsVariablesIntoConfig", func(t *testing.T) {
		unsetEnv(t, KeyVaultName, KeyAWSRegion, KeyAWSRole)
		path := writeEnvFile(t, "VAULT_NAME=file-vault\nAWS_REGION=us-east-1\n")

		l := NewLoader()
		require.NoError(t, l.LoadEnvFile(path))

		c, err := l.Vault()
		require.NoError(t, err)
		assert.Equal(t, "file-vault", c.VaultName)
		assert.Equal(t, "us-east-1", c.Region)
		assert.Empty(t, c.Role)
	})
	t.Run("DoesNotOverrideEnvironment", func(t *testing.T) {
		unsetEnv(t, KeyAWSRegion, KeyAWSRole)
		t.Setenv(KeyVaultName, "env-vault")
		path := writeEnvFile(t, "VAULT_NAME=file-vault\nAWS_REGION=us-east-1\n")

		l := NewLoader()
		require.NoError(t, l.LoadEnvFile(path))

		c, err := l.Vault()
		require.NoError(t, err)
		assert.Equal(t, "env-vault", c.VaultName)
		assert.Equal(t, "us-east-1", c.Region)
	})
	t.Run("FailsWithUnreadableFile", func(t *testing.T) {
		assert.Error(t, NewLoader().LoadEnvFile(t.TempDir()))
	})
}

func TestBindFlags(t *testing.T) {
	newCommand := func() *cobra.Command {
		cmd := &cobra.Command{Use: "vault"}
		AddVaultFlags(cmd)
		return cmd
	}

	t.Run("SetFlagOverridesEnvironment", func(t *testing.T) {
		t.Setenv(KeyVaultName, "env-vault")
		t.Setenv(KeyAWSRegion, "us-east-1")

		cmd := newCommand()
		l := NewLoader()
		require.NoError(t, l.BindFlags(cmd, VaultFlags))
		require.NoError(t, cmd.Flags().Set("vault-name", "flag-vault"))

		c, err := l.Vault()
		require.NoError(t, err)
		assert.Equal(t, "flag-vault", c.VaultName)
		assert.Equal(t, "us-east-1", c.Region)
	})
	t.Run("UnsetFlagDoesNotOverrideEnvironment", func(t *testing.T) {
		t.Setenv(KeyVaultName, "env-vault")
		t.Setenv(KeyAWSRegion, "us-east-1")

		cmd := newCommand()
		l := NewLoader()
		require.NoError(t, l.BindFlags(cmd, VaultFlags))

		c, err := l.Vault()
		require.NoError(t, err)
		assert.Equal(t, "env-vault", c.VaultName)
	})
	t.Run("FailsWithUndefinedFlag", func(t *testing.T) {
		assert.Error(t, NewLoader().BindFlags(newCommand(), map[string]string{KeyClientID: "client-id"}))
	})
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitList(" a, b,,c ,"))
	assert.Empty(t, splitList(""))
	assert.Empty(t, splitList(" , "))
}
