package config

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthConfig(t *testing.T) {
	t.Run("SetsDefaults", func(t *testing.T) {
		unsetEnv(t, KeyScopes, KeyAuthorityHost, KeyTokenCachePath, KeyDeviceCode)
		t.Setenv(KeyClientID, "client")
		t.Setenv(KeyTenantID, "tenant")

		c, err := NewLoader().Auth()
		require.NoError(t, err)
		assert.Equal(t, "client", c.ClientID)
		assert.Equal(t, "tenant", c.TenantID)
		assert.Equal(t, []string{"User.Read"}, c.Scopes)
		assert.Equal(t, "https://login.microsoftonline.com", c.AuthorityHost)
		assert.Empty(t, c.TokenCachePath)
		assert.False(t, c.DeviceCode)
	})
	t.Run("ReadsEnvironment", func(t *testing.T) {
		t.Setenv(KeyClientID, "client")
		t.Setenv(KeyTenantID, "tenant")
		t.Setenv(KeyScopes, "User.Read, Mail.Read")
		t.Setenv(KeyAuthorityHost, "https://login.example.com")
		t.Setenv(KeyTokenCachePath, "/tmp/cache.json")
		t.Setenv(KeyDeviceCode, "true")

		c, err := NewLoader().Auth()
		require.NoError(t, err)
		assert.Equal(t, []string{"User.Read", "Mail.Read"}, c.Scopes)
		assert.Equal(t, "https://login.example.com", c.AuthorityHost)
		assert.Equal(t, "/tmp/cache.json", c.TokenCachePath)
		assert.True(t, c.DeviceCode)
	})
	t.Run("ReadsFlags", func(t *testing.T) {
		unsetEnv(t, KeyClientID, KeyTenantID, KeyScopes, KeyDeviceCode)

		cmd := &cobra.Command{Use: "auth"}
		AddAuthFlags(cmd)
		l := NewLoader()
		require.NoError(t, l.BindFlags(cmd, AuthFlags))
		require.NoError(t, cmd.Flags().Set("client-id", "flag-client"))
		require.NoError(t, cmd.Flags().Set("tenant-id", "flag-tenant"))
		require.NoError(t, cmd.Flags().Set("device-code", "true"))

		c, err := l.Auth()
		require.NoError(t, err)
		assert.Equal(t, "flag-client", c.ClientID)
		assert.Equal(t, "flag-tenant", c.TenantID)
		assert.Equal(t, []string{"User.Read"}, c.Scopes)
		assert.True(t, c.DeviceCode)
	})
	t.Run("FailsWithoutClientAndTenant", func(t *testing.T) {
		unsetEnv(t, KeyClientID, KeyTenantID)

		c, err := NewLoader().Auth()
		assert.Error(t, err)
		assert.Zero(t, c)
	})
	t.Run("FailsWithOnlyEmptyScopes", func(t *testing.T) {
		t.Setenv(KeyClientID, "client")
		t.Setenv(KeyTenantID, "tenant")
		t.Setenv(KeyScopes, " , ")

		c, err := NewLoader().Auth()
		assert.Error(t, err)
		assert.Zero(t, c)
	})
}
