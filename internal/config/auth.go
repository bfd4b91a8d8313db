package config

import (
	"github.com/mongodb/grip"
	"github.com/spf13/cobra"
)

// AuthFlags maps the auth configuration keys to their command flags.
var AuthFlags = map[string]string{
	KeyClientID:       "client-id",
	KeyTenantID:       "tenant-id",
	KeyScopes:         "scopes",
	KeyAuthorityHost:  "authority-host",
	KeyTokenCachePath: "token-cache",
	KeyDeviceCode:     "device-code",
}

// AddAuthFlags defines the auth configuration flags on the command.
func AddAuthFlags(cmd *cobra.Command) {
	cmd.Flags().String(AuthFlags[KeyClientID], "", "application (client) ID")
	cmd.Flags().String(AuthFlags[KeyTenantID], "", "directory (tenant) ID")
	cmd.Flags().String(AuthFlags[KeyScopes], defaultScopes, "comma-separated scopes to request")
	cmd.Flags().String(AuthFlags[KeyAuthorityHost], defaultAuthorityHost, "identity provider host")
	cmd.Flags().String(AuthFlags[KeyTokenCachePath], "", "file to persist the token cache in")
	cmd.Flags().Bool(AuthFlags[KeyDeviceCode], false, "sign in with a device code instead of the browser")
}

// AuthConfig is the configuration of the auth command.
type AuthConfig struct {
	ClientID       string
	TenantID       string
	Scopes         []string
	AuthorityHost  string
	TokenCachePath string
	DeviceCode     bool
}

// Auth returns the validated auth configuration.
func (l *Loader) Auth() (*AuthConfig, error) {
	c := &AuthConfig{
		ClientID:       l.getString(KeyClientID),
		TenantID:       l.getString(KeyTenantID),
		Scopes:         splitList(l.getString(KeyScopes)),
		AuthorityHost:  l.getString(KeyAuthorityHost),
		TokenCachePath: l.getString(KeyTokenCachePath),
		DeviceCode:     l.v.GetBool(KeyDeviceCode),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that the required settings are given.
func (c *AuthConfig) Validate() error {
	catcher := grip.NewBasicCatcher()
	catcher.NewWhen(c.ClientID == "", "must specify a client ID ("+KeyClientID+")")
	catcher.NewWhen(c.TenantID == "", "must specify a tenant ID ("+KeyTenantID+")")
	catcher.NewWhen(len(c.Scopes) == 0, "must specify at least one scope ("+KeyScopes+")")
	catcher.NewWhen(c.AuthorityHost == "", "must specify an authority host ("+KeyAuthorityHost+")")
	return catcher.Resolve()
}
