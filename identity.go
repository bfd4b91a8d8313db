package cirrus

import (
	"context"
	"time"
)

// IdentityClient provides a common interface to acquire access tokens from an
// identity provider. The client owns all session and token cache state.
type IdentityClient interface {
	// Accounts returns the accounts known to the client's token cache.
	Accounts(ctx context.Context) ([]Account, error)
	// AcquireTokenSilent acquires a token for the account from the token cache
	// without prompting the user.
	AcquireTokenSilent(ctx context.Context, scopes []string, acct Account) (*AuthResult, error)
	// AcquireTokenInteractive acquires a token by prompting the user to
	// authenticate with the identity provider.
	AcquireTokenInteractive(ctx context.Context, scopes []string) (*AuthResult, error)
}

// Account represents an account that has previously authenticated.
type Account struct {
	// ID is the identity provider's unique identifier for the account.
	ID string
	// Username is the human-readable name of the account.
	Username string
	// Environment is the identity provider host that issued the account.
	Environment string
}

// AuthResult is the result of a token acquisition.
type AuthResult struct {
	// AccessToken is the opaque access token. It is not parsed or validated.
	AccessToken string
	// ExpiresOn is when the identity provider says the token expires.
	ExpiresOn time.Time
	// Account is the account the token was issued to.
	Account Account
}
