package mock

import (
	"context"

	"github.com/evergreen-ci/cirrus"
)

// Vault provides a mock implementation of a cirrus.Vault backed by another
// Vault implementation. This makes it possible to introspect on inputs to the
// vault and control the vault's output. It provides some default
// implementations where possible.
type Vault struct {
	cirrus.Vault

	SetSecretInput  *cirrus.NamedSecret
	SetSecretOutput *string
	SetSecretError  error
	SetSecretCalls  int

	ListSecretNamesOutput []string
	ListSecretNamesError  error
	ListSecretNamesCalls  int

	GetValueInputs []string
	GetValueOutput *string
	GetValueError  error
}

// NewVault creates a mock Vault backed by the given Vault.
func NewVault(v cirrus.Vault) *Vault {
	return &Vault{
		Vault: v,
	}
}

// SetSecret saves the input and sets the secret. The mock output can be
// customized. By default, it will return the result of setting the secret in
// the backing Vault.
func (m *Vault) SetSecret(ctx context.Context, s cirrus.NamedSecret) (string, error) {
	m.SetSecretCalls++
	m.SetSecretInput = &s

	if m.SetSecretOutput != nil || m.SetSecretError != nil {
		var id string
		if m.SetSecretOutput != nil {
			id = *m.SetSecretOutput
		}
		return id, m.SetSecretError
	}

	return m.Vault.SetSecret(ctx, s)
}

// ListSecretNames lists the secret names. The mock output can be customized.
// By default, it will return the result of listing the secret names in the
// backing Vault.
func (m *Vault) ListSecretNames(ctx context.Context) ([]string, error) {
	m.ListSecretNamesCalls++

	if m.ListSecretNamesOutput != nil || m.ListSecretNamesError != nil {
		return m.ListSecretNamesOutput, m.ListSecretNamesError
	}

	return m.Vault.ListSecretNames(ctx)
}

// GetValue saves the input and gets the secret's value. The mock output can be
// customized. By default, it will return the result of getting the value from
// the backing Vault.
func (m *Vault) GetValue(ctx context.Context, name string) (string, error) {
	m.GetValueInputs = append(m.GetValueInputs, name)

	if m.GetValueOutput != nil || m.GetValueError != nil {
		var val string
		if m.GetValueOutput != nil {
			val = *m.GetValueOutput
		}
		return val, m.GetValueError
	}

	return m.Vault.GetValue(ctx, name)
}
