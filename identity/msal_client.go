package identity

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AzureAD/microsoft-authentication-library-for-go/apps/cache"
	"github.com/AzureAD/microsoft-authentication-library-for-go/apps/public"
	"github.com/evergreen-ci/cirrus"
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
)

// DefaultAuthorityHost is the host of the Microsoft identity platform.
const DefaultAuthorityHost = "https://login.microsoftonline.com"

// MSALClientOptions are options to create an MSAL public client.
type MSALClientOptions struct {
	// ClientID is the application (client) ID registered with the identity
	// provider.
	ClientID *string
	// TenantID is the directory (tenant) that the users belong to.
	TenantID *string
	// AuthorityHost is the identity provider host. Defaults to
	// DefaultAuthorityHost.
	AuthorityHost *string
	// Cache persists the token cache between runs. If it is not given, the
	// token cache only lasts as long as the client.
	Cache cache.ExportReplace
	// UseDeviceCode uses the device code flow instead of the system browser
	// for interactive token acquisition.
	UseDeviceCode bool
	// DeviceCodeOutput is where the device code instructions are written.
	// Defaults to stderr.
	DeviceCodeOutput io.Writer
}

// NewMSALClientOptions returns new uninitialized options to create an MSAL
// client.
func NewMSALClientOptions() *MSALClientOptions {
	return &MSALClientOptions{}
}

// SetClientID sets the application client ID.
func (o *MSALClientOptions) SetClientID(id string) *MSALClientOptions {
	o.ClientID = &id
	return o
}

// SetTenantID sets the tenant ID.
func (o *MSALClientOptions) SetTenantID(id string) *MSALClientOptions {
	o.TenantID = &id
	return o
}

// SetAuthorityHost sets the identity provider host.
func (o *MSALClientOptions) SetAuthorityHost(host string) *MSALClientOptions {
	o.AuthorityHost = &host
	return o
}

// SetCache sets the persistent token cache.
func (o *MSALClientOptions) SetCache(c cache.ExportReplace) *MSALClientOptions {
	o.Cache = c
	return o
}

// SetUseDeviceCode sets whether to use the device code flow.
func (o *MSALClientOptions) SetUseDeviceCode(useDeviceCode bool) *MSALClientOptions {
	o.UseDeviceCode = useDeviceCode
	return o
}

// SetDeviceCodeOutput sets where the device code instructions are written.
func (o *MSALClientOptions) SetDeviceCodeOutput(w io.Writer) *MSALClientOptions {
	o.DeviceCodeOutput = w
	return o
}

// Validate checks that the required options are given and sets defaults where
// possible.
func (o *MSALClientOptions) Validate() error {
	if o.AuthorityHost == nil {
		o.AuthorityHost = utility.ToStringPtr(DefaultAuthorityHost)
	}
	if o.DeviceCodeOutput == nil {
		o.DeviceCodeOutput = os.Stderr
	}

	catcher := grip.NewBasicCatcher()
	catcher.NewWhen(utility.FromStringPtr(o.ClientID) == "", "must specify a client ID")
	catcher.NewWhen(utility.FromStringPtr(o.TenantID) == "", "must specify a tenant ID")
	catcher.NewWhen(!strings.HasPrefix(*o.AuthorityHost, "https://"), "authority host must be an HTTPS URL")
	return catcher.Resolve()
}

// Authority returns the authority URL for the tenant.
func (o *MSALClientOptions) Authority() string {
	return strings.TrimSuffix(utility.FromStringPtr(o.AuthorityHost), "/") + "/" + utility.FromStringPtr(o.TenantID)
}

// MSALClient provides a cirrus.IdentityClient implementation backed by an MSAL
// public client application.
type MSALClient struct {
	client public.Client
	opts   MSALClientOptions
	// accounts are the MSAL accounts returned by the last call to Accounts,
	// keyed by account ID.
	accounts map[string]public.Account
}

// NewMSALClient creates a new MSAL public client.
func NewMSALClient(opts MSALClientOptions) (*MSALClient, error) {
	if err := opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid options")
	}

	clientOpts := []public.Option{public.WithAuthority(opts.Authority())}
	if opts.Cache != nil {
		clientOpts = append(clientOpts, public.WithCache(opts.Cache))
	}

	client, err := public.New(*opts.ClientID, clientOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "creating MSAL public client")
	}

	return &MSALClient{
		client:   client,
		opts:     opts,
		accounts: map[string]public.Account{},
	}, nil
}

// Accounts returns the accounts in the token cache.
func (c *MSALClient) Accounts(ctx context.Context) ([]cirrus.Account, error) {
	accts, err := c.client.Accounts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "getting accounts from token cache")
	}

	c.accounts = map[string]public.Account{}
	res := make([]cirrus.Account, 0, len(accts))
	for _, acct := range accts {
		converted := exportAccount(acct)
		c.accounts[converted.ID] = acct
		res = append(res, converted)
	}

	return res, nil
}

// AcquireTokenSilent acquires a token for the account from the token cache,
// refreshing it if needed.
func (c *MSALClient) AcquireTokenSilent(ctx context.Context, scopes []string, acct cirrus.Account) (*cirrus.AuthResult, error) {
	msalAcct, ok := c.accounts[acct.ID]
	if !ok {
		return nil, errors.Errorf("account '%s' is not in the token cache", acct.ID)
	}

	res, err := c.client.AcquireTokenSilent(ctx, scopes, public.WithSilentAccount(msalAcct))
	if err != nil {
		return nil, errors.Wrap(err, "acquiring token silently")
	}

	return exportAuthResult(res), nil
}

// AcquireTokenInteractive acquires a token by having the user sign in, either
// with the system browser or with the device code flow.
func (c *MSALClient) AcquireTokenInteractive(ctx context.Context, scopes []string) (*cirrus.AuthResult, error) {
	if c.opts.UseDeviceCode {
		return c.acquireTokenByDeviceCode(ctx, scopes)
	}

	res, err := c.client.AcquireTokenInteractive(ctx, scopes)
	if err != nil {
		return nil, errors.Wrap(err, "acquiring token interactively")
	}

	return exportAuthResult(res), nil
}

func (c *MSALClient) acquireTokenByDeviceCode(ctx context.Context, scopes []string) (*cirrus.AuthResult, error) {
	dc, err := c.client.AcquireTokenByDeviceCode(ctx, scopes)
	if err != nil {
		return nil, errors.Wrap(err, "requesting device code")
	}

	if _, err := fmt.Fprintln(c.opts.DeviceCodeOutput, dc.Result.Message); err != nil {
		return nil, errors.Wrap(err, "writing device code instructions")
	}

	res, err := dc.AuthenticationResult(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "acquiring token by device code")
	}

	return exportAuthResult(res), nil
}

func exportAccount(acct public.Account) cirrus.Account {
	return cirrus.Account{
		ID:          acct.HomeAccountID,
		Username:    acct.PreferredUsername,
		Environment: acct.Environment,
	}
}

func exportAuthResult(res public.AuthResult) *cirrus.AuthResult {
	return &cirrus.AuthResult{
		AccessToken: res.AccessToken,
		ExpiresOn:   res.ExpiresOn,
		Account:     exportAccount(res.Account),
	}
}
