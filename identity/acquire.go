package identity

import (
	"context"

	"github.com/evergreen-ci/cirrus"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// AcquireToken acquires an access token for the scopes. If the client knows
// any account, it first tries to acquire a token silently for the first
// account. If that yields no token, it falls back to interactive acquisition.
func AcquireToken(ctx context.Context, c cirrus.IdentityClient, scopes []string) (*cirrus.AuthResult, error) {
	if c == nil {
		return nil, errors.New("must specify an identity client")
	}
	if len(scopes) == 0 {
		return nil, errors.New("must specify at least one scope")
	}

	accounts, err := c.Accounts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "getting accounts")
	}

	var res *cirrus.AuthResult
	if len(accounts) > 0 {
		res, err = c.AcquireTokenSilent(ctx, scopes, accounts[0])
		if err != nil {
			// A cache miss or expired refresh token is reported as an error.
			grip.Debug(message.WrapError(err, message.Fields{
				"message":  "could not acquire token silently, falling back to interactive acquisition",
				"account":  accounts[0].Username,
				"scopes":   scopes,
				"accounts": len(accounts),
			}))
			res = nil
		}
	}

	if hasAccessToken(res) {
		return res, nil
	}

	res, err = c.AcquireTokenInteractive(ctx, scopes)
	if err != nil {
		return nil, errors.Wrap(err, "acquiring token interactively")
	}

	return res, nil
}

func hasAccessToken(res *cirrus.AuthResult) bool {
	return res != nil && res.AccessToken != ""
}
