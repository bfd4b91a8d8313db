package cirrus

import (
	"context"

	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
)

// Vault allows you to interact with a secrets storage service.
type Vault interface {
	// SetSecret stores the secret value under the secret's name. If a secret
	// with that name already exists, its value is replaced with the new one.
	SetSecret(ctx context.Context, s NamedSecret) (id string, err error)
	// ListSecretNames returns the names of all secrets in the vault.
	ListSecretNames(ctx context.Context) ([]string, error)
	// GetValue returns the current value of the secret identified by name.
	GetValue(ctx context.Context, name string) (val string, err error)
}

// NamedSecret represents a secret with a name.
type NamedSecret struct {
	// Name is the friendly name of the secret.
	Name *string
	// Value is the stored value of the secret.
	Value *string
}

// NewNamedSecret returns a new uninitialized named secret.
func NewNamedSecret() *NamedSecret {
	return &NamedSecret{}
}

// SetName sets the friendly name of the secret.
func (s *NamedSecret) SetName(name string) *NamedSecret {
	s.Name = &name
	return s
}

// SetValue sets the secret's value.
func (s *NamedSecret) SetValue(val string) *NamedSecret {
	s.Value = &val
	return s
}

// Validate checks that both the name and value are given and non-empty.
func (s *NamedSecret) Validate() error {
	catcher := grip.NewBasicCatcher()
	catcher.NewWhen(utility.FromStringPtr(s.Name) == "", "must specify a non-empty secret name")
	catcher.NewWhen(utility.FromStringPtr(s.Value) == "", "must specify a non-empty secret value")
	return catcher.Resolve()
}
