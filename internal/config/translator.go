package config

import (
	"strconv"

	"github.com/evergreen-ci/cirrus/translate"
	"github.com/mongodb/grip"
)

// TranslatorConfig is the configuration of the translation service.
type TranslatorConfig struct {
	Provider              string
	GoogleCredentialsFile string
	MyMemoryEmail         string
	Port                  int
	// InLambda is whether the service is running in AWS Lambda.
	InLambda bool
}

// Translator returns the validated translation service configuration.
func (l *Loader) Translator() (*TranslatorConfig, error) {
	catcher := grip.NewBasicCatcher()

	rawPort := l.port()
	port, err := strconv.Atoi(rawPort)
	catcher.ErrorfWhen(err != nil, "invalid port '%s'", rawPort)

	c := &TranslatorConfig{
		Provider:              l.getString(KeyProvider),
		GoogleCredentialsFile: l.getString(KeyGoogleCreds),
		MyMemoryEmail:         l.getString(KeyMyMemoryEmail),
		Port:                  port,
		InLambda:              l.getString(KeyLambdaRuntimeAPI) != "",
	}
	if err == nil {
		catcher.Add(c.Validate())
	}
	if catcher.HasErrors() {
		return nil, catcher.Resolve()
	}

	return c, nil
}

// Validate checks that the settings are valid.
func (c *TranslatorConfig) Validate() error {
	catcher := grip.NewBasicCatcher()
	catcher.ErrorfWhen(c.Provider != translate.ProviderGoogle && c.Provider != translate.ProviderMyMemory,
		"translation provider must be '%s' or '%s'", translate.ProviderGoogle, translate.ProviderMyMemory)
	catcher.ErrorfWhen(!c.InLambda && (c.Port <= 0 || c.Port > 65535), "port %d is out of range", c.Port)
	return catcher.Resolve()
}
