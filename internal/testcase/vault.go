package testcase

import (
	"context"
	"testing"

	"github.com/evergreen-ci/cirrus"
	"github.com/evergreen-ci/utility"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// VaultTestCase represents a test case for a cirrus.Vault.
type VaultTestCase func(ctx context.Context, t *testing.T, v cirrus.Vault)

// VaultTests returns common test cases that a cirrus.Vault should support.
// Each test case expects the vault to start out empty.
func VaultTests() map[string]VaultTestCase {
	return map[string]VaultTestCase{
		"SetSecretFailsWithoutName": func(ctx context.Context, t *testing.T, v cirrus.Vault) {
			id, err := v.SetSecret(ctx, *cirrus.NewNamedSecret().SetValue("value"))
			assert.Error(t, err)
			assert.Zero(t, id)
		},
		"SetSecretFailsWithoutValue": func(ctx context.Context, t *testing.T, v cirrus.Vault) {
			id, err := v.SetSecret(ctx, *cirrus.NewNamedSecret().SetName(utility.RandomString()))
			assert.Error(t, err)
			assert.Zero(t, id)
		},
		"SetSecretCreatesNewSecret": func(ctx context.Context, t *testing.T, v cirrus.Vault) {
			name := utility.RandomString()
			id, err := v.SetSecret(ctx, *cirrus.NewNamedSecret().SetName(name).SetValue("hello"))
			require.NoError(t, err)
			assert.NotZero(t, id)

			val, err := v.GetValue(ctx, name)
			require.NoError(t, err)
			assert.Equal(t, "hello", val)
		},
		"SetSecretReplacesExistingValue": func(ctx context.Context, t *testing.T, v cirrus.Vault) {
			name := utility.RandomString()
			firstID, err := v.SetSecret(ctx, *cirrus.NewNamedSecret().SetName(name).SetValue("hello"))
			require.NoError(t, err)

			secondID, err := v.SetSecret(ctx, *cirrus.NewNamedSecret().SetName(name).SetValue("world"))
			require.NoError(t, err)
			assert.Equal(t, firstID, secondID, "should update the same secret")

			val, err := v.GetValue(ctx, name)
			require.NoError(t, err)
			assert.Equal(t, "world", val)
		},
		"GetValueFailsWithNonexistentSecret": func(ctx context.Context, t *testing.T, v cirrus.Vault) {
			val, err := v.GetValue(ctx, utility.RandomString())
			assert.Error(t, err)
			assert.Zero(t, val)
		},
		"GetValueFailsWithEmptyName": func(ctx context.Context, t *testing.T, v cirrus.Vault) {
			val, err := v.GetValue(ctx, "")
			assert.Error(t, err)
			assert.Zero(t, val)
		},
		"ListSecretNamesReturnsNothingForEmptyVault": func(ctx context.Context, t *testing.T, v cirrus.Vault) {
			names, err := v.ListSecretNames(ctx)
			require.NoError(t, err)
			assert.Empty(t, names)
		},
		"ListSecretNamesReturnsAllSecrets": func(ctx context.Context, t *testing.T, v cirrus.Vault) {
			expected := []string{utility.RandomString(), utility.RandomString(), utility.RandomString()}
			for _, name := range expected {
				_, err := v.SetSecret(ctx, *cirrus.NewNamedSecret().SetName(name).SetValue("value"))
				require.NoError(t, err)
			}

			names, err := v.ListSecretNames(ctx)
			require.NoError(t, err)
			assert.ElementsMatch(t, expected, names)
		},
		"ListSecretNamesReturnsNamesUsableWithGetValue": func(ctx context.Context, t *testing.T, v cirrus.Vault) {
			name := utility.RandomString()
			_, err := v.SetSecret(ctx, *cirrus.NewNamedSecret().SetName(name).SetValue("value"))
			require.NoError(t, err)

			names, err := v.ListSecretNames(ctx)
			require.NoError(t, err)
			require.Len(t, names, 1)

			val, err := v.GetValue(ctx, names[0])
			require.NoError(t, err)
			assert.Equal(t, "value", val)
		},
	}
}
