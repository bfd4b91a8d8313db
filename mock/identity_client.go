package mock

import (
	"context"

	"github.com/evergreen-ci/cirrus"
)

// IdentityClient provides a mock implementation of a cirrus.IdentityClient.
// This makes it possible to introspect on the calls made to acquire tokens and
// to control the results without an identity provider.
type IdentityClient struct {
	AccountsOutput []cirrus.Account
	AccountsError  error
	AccountsCalls  int

	AcquireTokenSilentScopes  []string
	AcquireTokenSilentAccount *cirrus.Account
	AcquireTokenSilentOutput  *cirrus.AuthResult
	AcquireTokenSilentError   error
	AcquireTokenSilentCalls   int

	AcquireTokenInteractiveScopes []string
	AcquireTokenInteractiveOutput *cirrus.AuthResult
	AcquireTokenInteractiveError  error
	AcquireTokenInteractiveCalls  int

	// Calls records the name of each method in the order it was called.
	Calls []string
}

// Accounts returns the mock accounts.
func (c *IdentityClient) Accounts(ctx context.Context) ([]cirrus.Account, error) {
	c.AccountsCalls++
	c.Calls = append(c.Calls, "Accounts")

	return c.AccountsOutput, c.AccountsError
}

// AcquireTokenSilent saves the input and returns the mock silent result.
func (c *IdentityClient) AcquireTokenSilent(ctx context.Context, scopes []string, acct cirrus.Account) (*cirrus.AuthResult, error) {
	c.AcquireTokenSilentCalls++
	c.Calls = append(c.Calls, "AcquireTokenSilent")
	c.AcquireTokenSilentScopes = scopes
	c.AcquireTokenSilentAccount = &acct

	return c.AcquireTokenSilentOutput, c.AcquireTokenSilentError
}

// AcquireTokenInteractive saves the input and returns the mock interactive
// result.
func (c *IdentityClient) AcquireTokenInteractive(ctx context.Context, scopes []string) (*cirrus.AuthResult, error) {
	c.AcquireTokenInteractiveCalls++
	c.Calls = append(c.Calls, "AcquireTokenInteractive")
	c.AcquireTokenInteractiveScopes = scopes

	return c.AcquireTokenInteractiveOutput, c.AcquireTokenInteractiveError
}
