package testcase

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/evergreen-ci/cirrus"
	"github.com/evergreen-ci/cirrus/internal/testutil"
	"github.com/evergreen-ci/utility"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SecretsManagerClientTestCase represents a test case for a
// cirrus.SecretsManagerClient.
type SecretsManagerClientTestCase func(ctx context.Context, t *testing.T, c cirrus.SecretsManagerClient)

// SecretsManagerClientTests returns common test cases that a
// cirrus.SecretsManagerClient should support.
func SecretsManagerClientTests() map[string]SecretsManagerClientTestCase {
	return map[string]SecretsManagerClientTestCase{
		"CreateSecretSucceeds": func(ctx context.Context, t *testing.T, c cirrus.SecretsManagerClient) {
			out, err := c.CreateSecret(ctx, &secretsmanager.CreateSecretInput{
				Name:         aws.String(testutil.NewSecretName(t)),
				SecretString: aws.String(utility.RandomString()),
			})
			require.NoError(t, err)
			require.NotZero(t, out)

			cleanupSecret(ctx, t, c, out.ARN)
		},
		"CreateSecretFailsWithInvalidInput": func(ctx context.Context, t *testing.T, c cirrus.SecretsManagerClient) {
			out, err := c.CreateSecret(ctx, &secretsmanager.CreateSecretInput{})
			assert.Error(t, err)
			assert.Zero(t, out)
		},
		"CreateSecretFailsWithExistingSecret": func(ctx context.Context, t *testing.T, c cirrus.SecretsManagerClient) {
			name := testutil.NewSecretName(t)
			createOut, err := c.CreateSecret(ctx, &secretsmanager.CreateSecretInput{
				Name:         aws.String(name),
				SecretString: aws.String("foo"),
			})
			require.NoError(t, err)
			defer cleanupSecret(ctx, t, c, createOut.ARN)

			out, err := c.CreateSecret(ctx, &secretsmanager.CreateSecretInput{
				Name:         aws.String(name),
				SecretString: aws.String("bar"),
			})
			require.Error(t, err)
			assert.Zero(t, out)
			var exists *types.ResourceExistsException
			assert.ErrorAs(t, err, &exists)
		},
		"GetSecretValueSucceedsWithExistingSecret": func(ctx context.Context, t *testing.T, c cirrus.SecretsManagerClient) {
			secretName := testutil.NewSecretName(t)
			createOut, err := c.CreateSecret(ctx, &secretsmanager.CreateSecretInput{
				Name:         aws.String(secretName),
				SecretString: aws.String("foo"),
			})
			require.NoError(t, err)
			require.NotZero(t, createOut)

			defer cleanupSecret(ctx, t, c, createOut.ARN)

			require.NotZero(t, createOut.ARN)

			out, err := c.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
				SecretId: createOut.ARN,
			})
			require.NoError(t, err)
			require.NotZero(t, out)
			assert.Equal(t, "foo", utility.FromStringPtr(out.SecretString))
			assert.Equal(t, secretName, utility.FromStringPtr(out.Name))
		},
		"GetSecretValueFailsWithInvalidInput": func(ctx context.Context, t *testing.T, c cirrus.SecretsManagerClient) {
			out, err := c.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{})
			assert.Error(t, err)
			assert.Zero(t, out)
		},
		"GetSecretValueFailsWithValidNonexistentSecret": func(ctx context.Context, t *testing.T, c cirrus.SecretsManagerClient) {
			out, err := c.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
				SecretId: aws.String(testutil.NewSecretName(t)),
			})
			assert.Error(t, err)
			assert.Zero(t, out)
		},
		"PutSecretValueSucceedsWithExistingSecret": func(ctx context.Context, t *testing.T, c cirrus.SecretsManagerClient) {
			secretName := testutil.NewSecretName(t)
			createOut, err := c.CreateSecret(ctx, &secretsmanager.CreateSecretInput{
				Name:         aws.String(secretName),
				SecretString: aws.String("bar"),
			})
			require.NoError(t, err)
			require.NotZero(t, createOut)

			defer cleanupSecret(ctx, t, c, createOut.ARN)

			putOut, err := c.PutSecretValue(ctx, &secretsmanager.PutSecretValueInput{
				SecretId:     createOut.ARN,
				SecretString: aws.String("leaf"),
			})
			require.NoError(t, err)
			require.NotZero(t, putOut)

			getOut, err := c.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
				SecretId: createOut.ARN,
			})
			require.NoError(t, err)
			require.NotZero(t, getOut)
			assert.Equal(t, "leaf", utility.FromStringPtr(getOut.SecretString))
			assert.Equal(t, secretName, utility.FromStringPtr(getOut.Name))
		},
		"PutSecretValueFailsWithInvalidInput": func(ctx context.Context, t *testing.T, c cirrus.SecretsManagerClient) {
			out, err := c.PutSecretValue(ctx, &secretsmanager.PutSecretValueInput{})
			assert.Error(t, err)
			assert.Zero(t, out)
		},
		"PutSecretValueFailsWithValidNonexistentSecret": func(ctx context.Context, t *testing.T, c cirrus.SecretsManagerClient) {
			out, err := c.PutSecretValue(ctx, &secretsmanager.PutSecretValueInput{
				SecretId:     aws.String(testutil.NewSecretName(t)),
				SecretString: aws.String("hello"),
			})
			assert.Error(t, err)
			assert.Zero(t, out)
		},
		"ListSecretsIncludesCreatedSecret": func(ctx context.Context, t *testing.T, c cirrus.SecretsManagerClient) {
			secretName := testutil.NewSecretName(t)
			createOut, err := c.CreateSecret(ctx, &secretsmanager.CreateSecretInput{
				Name:         aws.String(secretName),
				SecretString: aws.String("foo"),
			})
			require.NoError(t, err)
			defer cleanupSecret(ctx, t, c, createOut.ARN)

			out, err := c.ListSecrets(ctx, &secretsmanager.ListSecretsInput{
				Filters: []types.Filter{{
					Key:    types.FilterNameStringTypeName,
					Values: []string{secretName},
				}},
			})
			require.NoError(t, err)
			require.NotZero(t, out)
			require.Len(t, out.SecretList, 1)
			assert.Equal(t, secretName, utility.FromStringPtr(out.SecretList[0].Name))
		},
		"ListSecretsExcludesNonmatchingSecrets": func(ctx context.Context, t *testing.T, c cirrus.SecretsManagerClient) {
			out, err := c.ListSecrets(ctx, &secretsmanager.ListSecretsInput{
				Filters: []types.Filter{{
					Key:    types.FilterNameStringTypeName,
					Values: []string{testutil.NewSecretName(t)},
				}},
			})
			require.NoError(t, err)
			require.NotZero(t, out)
			assert.Empty(t, out.SecretList)
		},
		"DeleteSecretFailsWithInvalidInput": func(ctx context.Context, t *testing.T, c cirrus.SecretsManagerClient) {
			out, err := c.DeleteSecret(ctx, &secretsmanager.DeleteSecretInput{})
			assert.Error(t, err)
			assert.Zero(t, out)
		},
		"DeleteSecretSucceeds": func(ctx context.Context, t *testing.T, c cirrus.SecretsManagerClient) {
			createOut, err := c.CreateSecret(ctx, &secretsmanager.CreateSecretInput{
				Name:         aws.String(testutil.NewSecretName(t)),
				SecretString: aws.String("hello"),
			})
			require.NoError(t, err)
			out, err := c.DeleteSecret(ctx, &secretsmanager.DeleteSecretInput{
				ForceDeleteWithoutRecovery: aws.Bool(true),
				SecretId:                   createOut.ARN,
			})
			require.NoError(t, err)
			require.NotZero(t, out)
		},
	}
}

// cleanupSecret cleans up an existing secret.
func cleanupSecret(ctx context.Context, t *testing.T, c cirrus.SecretsManagerClient, id *string) {
	if id == nil {
		return
	}
	out, err := c.DeleteSecret(ctx, &secretsmanager.DeleteSecretInput{
		ForceDeleteWithoutRecovery: aws.Bool(true),
		SecretId:                   id,
	})
	require.NoError(t, err)
	require.NotZero(t, out)
}
