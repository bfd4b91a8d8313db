// Package config loads the configuration of the command-line tools and the
// translation service from an env file, the environment and command flags.
package config

import (
	"os"
	"strings"

	"github.com/evergreen-ci/utility"
	"github.com/joho/godotenv"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// DefaultEnvFile is the env file loaded when none is specified.
const DefaultEnvFile = "env/.secrets.env"

// Configuration keys. Each key is read from the environment variable of the
// same name.
const (
	KeyVaultName        = "VAULT_NAME"
	KeyAWSRegion        = "AWS_REGION"
	KeyAWSRole          = "AWS_ROLE"
	KeyClientID         = "CLIENT_ID"
	KeyTenantID         = "TENANT_ID"
	KeyScopes           = "SCOPES"
	KeyAuthorityHost    = "AUTHORITY_HOST"
	KeyTokenCachePath   = "TOKEN_CACHE_PATH"
	KeyDeviceCode       = "DEVICE_CODE"
	KeyProvider         = "TRANSLATOR_PROVIDER"
	KeyGoogleCreds      = "GOOGLE_APPLICATION_CREDENTIALS"
	KeyMyMemoryEmail    = "MYMEMORY_EMAIL"
	KeyPort             = "PORT"
	KeyLambdaRuntimeAPI = "AWS_LAMBDA_RUNTIME_API"
)

// customHandlerPortEnv is set by the Functions host when the service runs as
// a custom handler and takes precedence over PORT.
const customHandlerPortEnv = "FUNCTIONS_CUSTOMHANDLER_PORT"

const (
	defaultScopes        = "User.Read"
	defaultAuthorityHost = "https://login.microsoftonline.com"
	defaultProvider      = "google"
	defaultPort          = "8080"
)

// Loader reads configuration with the precedence, from lowest to highest:
// defaults, the env file, the environment and explicitly set flags.
type Loader struct {
	v *viper.Viper
}

// NewLoader returns a loader with the defaults set.
func NewLoader() *Loader {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault(KeyScopes, defaultScopes)
	v.SetDefault(KeyAuthorityHost, defaultAuthorityHost)
	v.SetDefault(KeyProvider, defaultProvider)
	v.SetDefault(KeyPort, defaultPort)

	return &Loader{v: v}
}

// LoadEnvFile loads the variables in the env file into the environment without
// overriding variables that are already set. A missing file is not an error.
func (l *Loader) LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if !utility.FileExists(path) {
		grip.Debug(message.Fields{
			"message":  "env file does not exist, skipping",
			"env_file": path,
		})
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "loading env file '%s'", path)
	}

	return nil
}

// BindFlags binds the command's flags to configuration keys, so a flag that is
// explicitly set overrides every other source.
func (l *Loader) BindFlags(cmd *cobra.Command, flagsByKey map[string]string) error {
	catcher := grip.NewBasicCatcher()
	for key, name := range flagsByKey {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			catcher.Add(errors.Errorf("flag '%s' is not defined", name))
			continue
		}
		catcher.Add(errors.Wrapf(l.v.BindPFlag(key, flag), "binding flag '%s'", name))
	}
	return catcher.Resolve()
}

func (l *Loader) getString(key string) string {
	return strings.TrimSpace(l.v.GetString(key))
}

// port returns the port to listen on. The custom handler port is read directly
// from the environment since it must win over PORT.
func (l *Loader) port() string {
	if p := strings.TrimSpace(os.Getenv(customHandlerPortEnv)); p != "" {
		return p
	}
	return l.getString(KeyPort)
}

// splitList splits a comma-separated list, dropping empty entries.
func splitList(s string) []string {
	var res []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			res = append(res, item)
		}
	}
	return res
}
