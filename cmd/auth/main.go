// Command auth signs in to the Microsoft identity platform and prints an access
// token.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/evergreen-ci/cirrus"
	"github.com/evergreen-ci/cirrus/cli"
	"github.com/evergreen-ci/cirrus/identity"
	"github.com/evergreen-ci/cirrus/internal/config"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(newMSALClient).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newClientFunc creates the client that acquires tokens from the identity
// provider.
type newClientFunc func(opts identity.MSALClientOptions) (cirrus.IdentityClient, error)

func newMSALClient(opts identity.MSALClientOptions) (cirrus.IdentityClient, error) {
	c, err := identity.NewMSALClient(opts)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func newRootCommand(newClient newClientFunc) *cobra.Command {
	var envFile string
	loader := config.NewLoader()

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Acquire an access token",
		Long: `auth acquires an access token for the configured scopes and prints it.

If an account has signed in before, the token is acquired silently from the
token cache. Otherwise the user signs in with the system browser, or with a
device code if --device-code is set.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.SetupLogger(cmd.Name(), cmd.ErrOrStderr(), cli.DefaultLogThreshold); err != nil {
				return err
			}
			if err := loader.LoadEnvFile(envFile); err != nil {
				return err
			}
			return loader.BindFlags(cmd, config.AuthFlags)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loader.Auth()
			if err != nil {
				return errors.Wrap(err, "invalid auth configuration")
			}
			return run(cmd, conf, newClient)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "env file to load settings from")
	config.AddAuthFlags(cmd)

	return cmd
}

func run(cmd *cobra.Command, conf *config.AuthConfig, newClient newClientFunc) error {
	opts := identity.NewMSALClientOptions().
		SetClientID(conf.ClientID).
		SetTenantID(conf.TenantID).
		SetAuthorityHost(conf.AuthorityHost).
		SetUseDeviceCode(conf.DeviceCode).
		SetDeviceCodeOutput(cmd.ErrOrStderr())
	if conf.TokenCachePath != "" {
		fc, err := identity.NewFileCache(conf.TokenCachePath)
		if err != nil {
			return errors.Wrap(err, "creating token cache")
		}
		opts.SetCache(fc)
	}

	c, err := newClient(*opts)
	if err != nil {
		return errors.Wrap(err, "creating identity client")
	}

	res, err := identity.AcquireToken(cmd.Context(), c, conf.Scopes)
	if err != nil {
		grip.Error(message.WrapError(err, message.Fields{
			"message": "could not acquire access token",
			"scopes":  conf.Scopes,
		}))
	}
	if printErr := cli.PrintAccessToken(cmd.OutOrStdout(), res); printErr != nil {
		return printErr
	}

	return errors.Wrap(err, "acquiring access token")
}
