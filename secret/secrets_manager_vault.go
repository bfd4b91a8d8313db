package secret

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/evergreen-ci/cirrus"
	"github.com/evergreen-ci/cirrus/awsutil"
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// BasicSecretsManager provides a cirrus.Vault implementation backed by AWS
// Secrets Manager. If the vault has a name, it acts as a namespace: every
// secret is stored under "<vault name>/<secret name>" and only secrets in that
// namespace are visible through the vault.
type BasicSecretsManager struct {
	client cirrus.SecretsManagerClient
	prefix string
}

// BasicSecretsManagerOptions are options to create a Secrets Manager vault.
type BasicSecretsManagerOptions struct {
	// Client is the Secrets Manager client used to make API calls.
	Client cirrus.SecretsManagerClient
	// VaultName is the optional namespace for the vault's secrets.
	VaultName *string
}

// NewBasicSecretsManagerOptions returns new uninitialized options to create a
// Secrets Manager vault.
func NewBasicSecretsManagerOptions() *BasicSecretsManagerOptions {
	return &BasicSecretsManagerOptions{}
}

// SetClient sets the client used to make Secrets Manager API calls.
func (o *BasicSecretsManagerOptions) SetClient(c cirrus.SecretsManagerClient) *BasicSecretsManagerOptions {
	o.Client = c
	return o
}

// SetVaultName sets the name of the vault.
func (o *BasicSecretsManagerOptions) SetVaultName(name string) *BasicSecretsManagerOptions {
	o.VaultName = &name
	return o
}

// Validate checks that the required options are given.
func (o *BasicSecretsManagerOptions) Validate() error {
	catcher := grip.NewBasicCatcher()
	catcher.NewWhen(o.Client == nil, "must specify a client")
	if o.VaultName != nil {
		name := strings.Trim(*o.VaultName, "/")
		catcher.NewWhen(name == "", "vault name cannot be empty if specified")
		o.VaultName = &name
	}
	return catcher.Resolve()
}

// NewBasicSecretsManager creates a Vault backed by AWS Secrets Manager.
func NewBasicSecretsManager(opts BasicSecretsManagerOptions) (*BasicSecretsManager, error) {
	if err := opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid options")
	}

	var prefix string
	if opts.VaultName != nil {
		prefix = *opts.VaultName + "/"
	}

	return &BasicSecretsManager{
		client: opts.Client,
		prefix: prefix,
	}, nil
}

func (m *BasicSecretsManager) fullName(name string) string {
	return m.prefix + name
}

// SetSecret creates the secret or, if it already exists, stores the value as
// the secret's new current version. It returns the secret's ARN.
func (m *BasicSecretsManager) SetSecret(ctx context.Context, s cirrus.NamedSecret) (id string, err error) {
	if err := s.Validate(); err != nil {
		return "", errors.Wrap(err, "invalid secret")
	}

	name := m.fullName(utility.FromStringPtr(s.Name))

	createOut, err := m.client.CreateSecret(ctx, &secretsmanager.CreateSecretInput{
		Name:         utility.ToStringPtr(name),
		SecretString: s.Value,
	})
	if err == nil {
		if createOut == nil || createOut.ARN == nil {
			return "", errors.New("expected a secret ID in the response")
		}
		return *createOut.ARN, nil
	}
	if awsutil.GetAPIErrorCode(err) != "ResourceExistsException" {
		return "", errors.Wrap(err, "creating secret")
	}

	grip.Debug(message.Fields{
		"message": "secret already exists, storing new value",
		"name":    name,
	})

	putOut, err := m.client.PutSecretValue(ctx, &secretsmanager.PutSecretValueInput{
		SecretId:     utility.ToStringPtr(name),
		SecretString: s.Value,
	})
	if err != nil {
		return "", errors.Wrap(err, "updating existing secret value")
	}
	if putOut == nil || putOut.ARN == nil {
		return "", errors.New("expected a secret ID in the response")
	}

	return *putOut.ARN, nil
}

// ListSecretNames returns the names of all secrets in the vault, following
// pagination until the listing is complete. Names are returned relative to the
// vault.
func (m *BasicSecretsManager) ListSecretNames(ctx context.Context) ([]string, error) {
	in := &secretsmanager.ListSecretsInput{}
	if m.prefix != "" {
		in.Filters = []types.Filter{{
			Key:    types.FilterNameStringTypeName,
			Values: []string{m.prefix},
		}}
	}

	var names []string
	for {
		out, err := m.client.ListSecrets(ctx, in)
		if err != nil {
			return nil, errors.Wrap(err, "listing secrets")
		}
		if out == nil {
			return nil, errors.New("expected a non-nil response")
		}

		for _, entry := range out.SecretList {
			name := utility.FromStringPtr(entry.Name)
			// The name filter matches prefixes, so a secret named exactly
			// like the vault is not part of the vault.
			if !strings.HasPrefix(name, m.prefix) || name == m.prefix {
				continue
			}
			names = append(names, strings.TrimPrefix(name, m.prefix))
		}

		if utility.FromStringPtr(out.NextToken) == "" {
			return names, nil
		}
		in.NextToken = out.NextToken
	}
}

// GetValue returns the current value of the secret with the given name.
func (m *BasicSecretsManager) GetValue(ctx context.Context, name string) (val string, err error) {
	if name == "" {
		return "", errors.New("must specify a non-empty secret name")
	}

	out, err := m.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: utility.ToStringPtr(m.fullName(name)),
	})
	if err != nil {
		return "", errors.Wrap(err, "getting secret value")
	}
	if out == nil {
		return "", errors.New("expected a non-nil secret value in the response")
	}

	if out.SecretString != nil {
		return *out.SecretString, nil
	}

	return string(out.SecretBinary), nil
}
