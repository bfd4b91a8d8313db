package testutil

import (
	"os"
	"testing"
)

// CheckAWSEnvVarsForSecretsManager checks that the required environment
// variables are defined for testing against Secrets Manager and skips the test
// otherwise.
func CheckAWSEnvVarsForSecretsManager(t *testing.T) {
	CheckEnvVars(t,
		"AWS_ACCESS_KEY_ID",
		"AWS_SECRET_ACCESS_KEY",
		"AWS_SECRET_PREFIX",
		"AWS_REGION",
	)
}

// CheckEnvVars checks that the required environment variables are set and
// skips the test if any are missing.
func CheckEnvVars(t *testing.T, envVars ...string) {
	var missing []string

	for _, envVar := range envVars {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		t.Skipf("missing required environment variables for integration test: %s", missing)
	}
}
