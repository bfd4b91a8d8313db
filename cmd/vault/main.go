// Command vault is an interactive menu to create and list the secrets in a
// vault.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/evergreen-ci/cirrus"
	"github.com/evergreen-ci/cirrus/awsutil"
	"github.com/evergreen-ci/cirrus/cli"
	"github.com/evergreen-ci/cirrus/internal/config"
	"github.com/evergreen-ci/cirrus/secret"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(newSecretsManagerClient).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newClientFunc creates the Secrets Manager client backing the vault.
type newClientFunc func(ctx context.Context, opts awsutil.ClientOptions) (cirrus.SecretsManagerClient, error)

func newSecretsManagerClient(ctx context.Context, opts awsutil.ClientOptions) (cirrus.SecretsManagerClient, error) {
	c, err := secret.NewBasicSecretsManagerClient(ctx, opts)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func newRootCommand(newClient newClientFunc) *cobra.Command {
	var envFile string
	loader := config.NewLoader()

	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Create and list the secrets in a vault",
		Long: `vault shows an interactive menu to create new secrets in the vault and to
list every secret in the vault along with its value.

Settings are read from the env file, the environment and the flags, with
flags taking precedence.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.SetupLogger(cmd.Name(), cmd.ErrOrStderr(), cli.DefaultLogThreshold); err != nil {
				return err
			}
			if err := loader.LoadEnvFile(envFile); err != nil {
				return err
			}
			return loader.BindFlags(cmd, config.VaultFlags)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loader.Vault()
			if err != nil {
				return errors.Wrap(err, "invalid vault configuration")
			}
			return run(cmd, conf, newClient)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "env file to load settings from")
	config.AddVaultFlags(cmd)

	return cmd
}

func run(cmd *cobra.Command, conf *config.VaultConfig, newClient newClientFunc) error {
	ctx := cmd.Context()

	c, err := newClient(ctx, conf.ClientOptions())
	if err != nil {
		return errors.Wrap(err, "creating Secrets Manager client")
	}
	defer func() {
		grip.Warning(message.WrapError(c.Close(ctx), message.Fields{
			"message": "could not close Secrets Manager client",
		}))
	}()

	v, err := secret.NewBasicSecretsManager(*secret.NewBasicSecretsManagerOptions().
		SetClient(c).
		SetVaultName(conf.VaultName))
	if err != nil {
		return errors.Wrap(err, "creating vault")
	}

	menu, err := cli.NewVaultMenu(v, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return errors.Wrap(err, "creating vault menu")
	}

	return menu.Run(ctx)
}
