package config

import (
	"strings"

	"github.com/evergreen-ci/cirrus/awsutil"
	"github.com/mongodb/grip"
	"github.com/spf13/cobra"
)

// VaultFlags maps the vault configuration keys to their command flags.
var VaultFlags = map[string]string{
	KeyVaultName: "vault-name",
	KeyAWSRegion: "region",
	KeyAWSRole:   "role",
}

// AddVaultFlags defines the vault configuration flags on the command.
func AddVaultFlags(cmd *cobra.Command) {
	cmd.Flags().String(VaultFlags[KeyVaultName], "", "name of the vault that holds the secrets")
	cmd.Flags().String(VaultFlags[KeyAWSRegion], "", "AWS region of the vault")
	cmd.Flags().String(VaultFlags[KeyAWSRole], "", "AWS IAM role to assume to access the vault")
}

// VaultConfig is the configuration of the vault command.
type VaultConfig struct {
	VaultName string
	Region    string
	Role      string
}

// Vault returns the validated vault configuration.
func (l *Loader) Vault() (*VaultConfig, error) {
	c := &VaultConfig{
		VaultName: l.getString(KeyVaultName),
		Region:    l.getString(KeyAWSRegion),
		Role:      l.getString(KeyAWSRole),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that the required settings are given.
func (c *VaultConfig) Validate() error {
	catcher := grip.NewBasicCatcher()
	catcher.NewWhen(strings.Trim(c.VaultName, "/") == "", "must specify a vault name ("+KeyVaultName+")")
	catcher.NewWhen(c.Region == "", "must specify an AWS region ("+KeyAWSRegion+")")
	return catcher.Resolve()
}

// ClientOptions returns the AWS client options to access the vault.
func (c *VaultConfig) ClientOptions() awsutil.ClientOptions {
	opts := awsutil.NewClientOptions().SetRegion(c.Region)
	if c.Role != "" {
		opts.SetRole(c.Role)
	}
	return *opts
}
