package main

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/evergreen-ci/cirrus"
	"github.com/evergreen-ci/cirrus/awsutil"
	"github.com/evergreen-ci/cirrus/cli"
	"github.com/evergreen-ci/cirrus/internal/config"
	"github.com/evergreen-ci/cirrus/mock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultTestTimeout = 30 * time.Second

const menuText = "\n------------------------------" +
	"\nPlease select an option:" +
	"\n 1. Create a new secret" +
	"\n 2. List all secrets" +
	"\n Type 'quit' to exit" +
	"\n------------------------------\n"

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCommand(newSecretsManagerClient)

	envFile := cmd.Flags().Lookup("env-file")
	require.NotNil(t, envFile)
	assert.Equal(t, config.DefaultEnvFile, envFile.DefValue)

	for _, name := range config.VaultFlags {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag '%s' should be defined", name)
	}
}

func TestRootCommand(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	t.Cleanup(func() {
		assert.NoError(t, cli.SetupLogger("vault", os.Stderr, cli.DefaultLogThreshold))
	})

	execute := func(t *testing.T, newClient newClientFunc, input string) (stdout, stderr string, err error) {
		cmd := newRootCommand(newClient)
		var out, errOut bytes.Buffer
		cmd.SetIn(strings.NewReader(input))
		cmd.SetOut(&out)
		cmd.SetErr(&errOut)
		cmd.SetArgs([]string{"--env-file=", "--vault-name=vault", "--region=us-east-1"})

		err = cmd.ExecuteContext(ctx)
		return out.String(), errOut.String(), err
	}
	clientFunc := func(c cirrus.SecretsManagerClient) newClientFunc {
		return func(context.Context, awsutil.ClientOptions) (cirrus.SecretsManagerClient, error) {
			return c, nil
		}
	}

	t.Run("WritesOnlyMenuTextToStdout", func(t *testing.T) {
		defer mock.ResetGlobalSecretCache()

		stdout, stderr, err := execute(t, clientFunc(&mock.SecretsManagerClient{}), "1\nname\nvalue\nquit\n")
		require.NoError(t, err)

		expected := menuText + "Enter your choice: " +
			"Enter secret name: " +
			"Enter secret value: " +
			"Secret 'name' created successfully.\n" +
			menuText + "Enter your choice: "
		assert.Equal(t, expected, stdout)
		assert.NotContains(t, stderr, "created secret from vault menu", "debug messages should not be logged")

		s, ok := mock.GlobalSecretCache["vault/name"]
		require.True(t, ok)
		assert.Equal(t, "value", s.Value)
	})
	t.Run("PassesConfiguredOptionsToClient", func(t *testing.T) {
		var opts *awsutil.ClientOptions
		newClient := func(_ context.Context, o awsutil.ClientOptions) (cirrus.SecretsManagerClient, error) {
			opts = &o
			return &mock.SecretsManagerClient{}, nil
		}

		_, _, err := execute(t, newClient, "quit\n")
		require.NoError(t, err)
		require.NotNil(t, opts)
		require.NotNil(t, opts.Region)
		assert.Equal(t, "us-east-1", *opts.Region)
	})
	t.Run("ReturnsClientCreationError", func(t *testing.T) {
		newClient := func(context.Context, awsutil.ClientOptions) (cirrus.SecretsManagerClient, error) {
			return nil, errors.New("no credentials")
		}

		stdout, stderr, err := execute(t, newClient, "quit\n")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no credentials")
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "no credentials")
	})
	t.Run("ReturnsVaultError", func(t *testing.T) {
		defer mock.ResetGlobalSecretCache()

		c := &mock.SecretsManagerClient{CreateSecretError: errors.New("access denied")}
		stdout, _, err := execute(t, clientFunc(c), "1\nname\nvalue\n2\n")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access denied")
		assert.NotContains(t, stdout, "created successfully")
		assert.NotContains(t, stdout, "Listing all secrets", "menu should stop after a vault error")
	})
	t.Run("FailsWithoutVaultName", func(t *testing.T) {
		t.Setenv(config.KeyVaultName, "")

		cmd := newRootCommand(clientFunc(&mock.SecretsManagerClient{}))
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--env-file=", "--region=us-east-1"})

		assert.Error(t, cmd.ExecuteContext(ctx))
		assert.Empty(t, out.String())
	})
}
