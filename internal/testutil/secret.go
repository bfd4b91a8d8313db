package testutil

import (
	"context"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/evergreen-ci/cirrus"
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/stretchr/testify/assert"
)

const projectName = "cirrus"

// SecretPrefix returns the prefix name for secrets from the environment
// variable.
func SecretPrefix() string {
	return os.Getenv("AWS_SECRET_PREFIX")
}

// VaultName returns the name of the vault namespace that holds all secrets
// created by this test runtime.
func VaultName() string {
	return path.Join(strings.Trim(SecretPrefix(), "/"), projectName, runtimeNamespace)
}

// NewSecretName creates a new test secret name in the test runtime's namespace
// with the given test's name and a random string.
func NewSecretName(t *testing.T) string {
	return path.Join(VaultName(), strings.ReplaceAll(t.Name(), "/", "-"), utility.RandomString())
}

// CleanupSecrets deletes all existing secrets created by this test runtime.
func CleanupSecrets(ctx context.Context, t *testing.T, c cirrus.SecretsManagerClient) {
	for token := cleanupSecretsWithToken(ctx, t, c, nil); token != nil; token = cleanupSecretsWithToken(ctx, t, c, token) {
	}
}

// cleanupSecretsWithToken deletes the test runtime's secrets based on the
// results from the pagination token.
func cleanupSecretsWithToken(ctx context.Context, t *testing.T, c cirrus.SecretsManagerClient, token *string) (nextToken *string) {
	out, err := c.ListSecrets(ctx, &secretsmanager.ListSecretsInput{
		Filters: []types.Filter{{
			Key:    types.FilterNameStringTypeName,
			Values: []string{VaultName()},
		}},
		NextToken: token,
	})
	if !assert.NoError(t, err) {
		return nil
	}
	if !assert.NotZero(t, out) {
		return nil
	}

	for _, s := range out.SecretList {
		if s.ARN == nil {
			continue
		}

		arn := *s.ARN
		_, err := c.DeleteSecret(ctx, &secretsmanager.DeleteSecretInput{
			ForceDeleteWithoutRecovery: utility.TruePtr(),
			SecretId:                   &arn,
		})
		if assert.NoError(t, err) {
			grip.Info(message.Fields{
				"message": "cleaned up leftover secret",
				"arn":     arn,
				"test":    t.Name(),
			})
		}
	}

	return out.NextToken
}
