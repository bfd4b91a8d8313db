package awsutil

import (
	"context"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
)

// ClientOptions represent AWS client options such as authentication and making
// requests.
type ClientOptions struct {
	// Config is a preconfigured AWS config to use instead of constructing one
	// from the rest of the options. If Config is specified the rest of the
	// options are ignored.
	Config *aws.Config
	// CredsProvider is a credentials provider, which may be used to either
	// connect to the AWS API directly, or authenticate to STS to retrieve
	// temporary credentials to access the API (if Role is specified). If it is
	// not given, the SDK's default credentials chain is used (environment
	// variables, shared configuration files and instance metadata).
	CredsProvider *aws.CredentialsProvider
	// Role is the STS role that should be used to perform authorized actions.
	Role *string
	// Region is the geographical region where API calls should be made.
	Region *string
	// RetryOpts sets the retry policy for API requests.
	RetryOpts *utility.RetryOptions
	// HTTPClient is the HTTP client to use to make requests.
	HTTPClient *http.Client

	stsProvider *stscreds.AssumeRoleProvider

	ownsHTTPClient bool
}

// NewClientOptions returns new unconfigured client options.
func NewClientOptions() *ClientOptions {
	return &ClientOptions{}
}

// SetConfig sets a preconfigured AWS config.
func (o *ClientOptions) SetConfig(cfg aws.Config) *ClientOptions {
	o.Config = &cfg
	return o
}

// SetCredentialsProvider sets the client's credentials provider.
func (o *ClientOptions) SetCredentialsProvider(creds aws.CredentialsProvider) *ClientOptions {
	o.CredsProvider = &creds
	return o
}

// SetRole sets the client's role to assume.
func (o *ClientOptions) SetRole(role string) *ClientOptions {
	o.Role = &role
	return o
}

// SetRegion sets the client's geographical region.
func (o *ClientOptions) SetRegion(region string) *ClientOptions {
	o.Region = &region
	return o
}

// SetRetryOptions sets the client's retry options.
func (o *ClientOptions) SetRetryOptions(opts utility.RetryOptions) *ClientOptions {
	o.RetryOpts = &opts
	return o
}

// SetHTTPClient sets the HTTP client to use.
func (o *ClientOptions) SetHTTPClient(hc *http.Client) *ClientOptions {
	o.HTTPClient = hc
	return o
}

// Validate checks that all required fields are given and sets defaults for
// unspecified options.
func (o *ClientOptions) Validate() error {
	if o.RetryOpts == nil {
		o.RetryOpts = &utility.RetryOptions{}
	}
	o.RetryOpts.Validate()

	if o.Config != nil {
		return nil
	}

	catcher := grip.NewBasicCatcher()
	catcher.NewWhen(utility.FromStringPtr(o.Region) == "", "must provide geographical region")
	catcher.NewWhen(o.Role != nil && *o.Role == "", "role to assume cannot be empty")
	if catcher.HasErrors() {
		return catcher.Resolve()
	}

	if o.HTTPClient == nil {
		o.HTTPClient = utility.GetHTTPClient()
		o.ownsHTTPClient = true
	}

	return nil
}

func (o *ClientOptions) loadConfig(ctx context.Context, creds aws.CredentialsProvider) (aws.Config, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(utility.FromStringPtr(o.Region)),
		config.WithHTTPClient(newSDKHTTPClient(o.HTTPClient)),
	}
	if creds != nil {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(creds))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, err
	}
	otelaws.AppendMiddlewares(&cfg.APIOptions)

	return cfg, nil
}

// newSDKHTTPClient returns an SDK client with the same timeout and transport
// settings as hc. The SDK can only apply a custom CA bundle (AWS_CA_BUNDLE or
// ca_bundle in the shared config) to its own buildable client. Clients with a
// transport other than *http.Transport are used as is.
func newSDKHTTPClient(hc *http.Client) aws.HTTPClient {
	if hc == nil {
		return awshttp.NewBuildableClient()
	}

	var base *http.Transport
	switch tr := hc.Transport.(type) {
	case nil:
	case *http.Transport:
		base = tr
	default:
		return hc
	}

	bc := awshttp.NewBuildableClient().WithTimeout(hc.Timeout)
	if base == nil {
		return bc
	}

	return bc.WithTransportOptions(func(tr *http.Transport) {
		copyTransportSettings(tr, base)
	})
}

func copyTransportSettings(dst, src *http.Transport) {
	if src.Proxy != nil {
		dst.Proxy = src.Proxy
	}
	if src.DialContext != nil {
		dst.DialContext = src.DialContext
	}
	if src.TLSClientConfig != nil {
		// The SDK adds the CA bundle to the root CAs, which must not leak
		// into the caller's transport.
		dst.TLSClientConfig = src.TLSClientConfig.Clone()
		if src.TLSClientConfig.RootCAs != nil {
			dst.TLSClientConfig.RootCAs = src.TLSClientConfig.RootCAs.Clone()
		}
	}
	dst.TLSHandshakeTimeout = src.TLSHandshakeTimeout
	dst.DisableKeepAlives = src.DisableKeepAlives
	dst.DisableCompression = src.DisableCompression
	dst.MaxIdleConns = src.MaxIdleConns
	dst.MaxIdleConnsPerHost = src.MaxIdleConnsPerHost
	dst.MaxConnsPerHost = src.MaxConnsPerHost
	dst.IdleConnTimeout = src.IdleConnTimeout
	dst.ResponseHeaderTimeout = src.ResponseHeaderTimeout
	dst.ExpectContinueTimeout = src.ExpectContinueTimeout
}

// GetCredentialsProvider retrieves the appropriate credentials provider to use
// for the client. It returns nil if the SDK's default credentials chain should
// be used.
func (o *ClientOptions) GetCredentialsProvider(ctx context.Context) (aws.CredentialsProvider, error) {
	var base aws.CredentialsProvider
	if o.CredsProvider != nil {
		base = *o.CredsProvider
	}
	if o.Role == nil {
		return base, nil
	}

	if o.stsProvider != nil {
		return o.stsProvider, nil
	}

	cfg, err := o.loadConfig(ctx, base)
	if err != nil {
		return nil, errors.Wrap(err, "creating STS config")
	}

	o.stsProvider = stscreds.NewAssumeRoleProvider(sts.NewFromConfig(cfg), *o.Role)

	return o.stsProvider, nil
}

// GetConfig gets the authenticated config to perform authorized API actions.
func (o *ClientOptions) GetConfig(ctx context.Context) (*aws.Config, error) {
	if o.Config != nil {
		return o.Config, nil
	}

	creds, err := o.GetCredentialsProvider(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "getting credentials")
	}

	cfg, err := o.loadConfig(ctx, creds)
	if err != nil {
		return nil, errors.Wrap(err, "creating config")
	}

	o.Config = &cfg

	return o.Config, nil
}

// Close cleans up the HTTP client if it is owned by this client.
func (o *ClientOptions) Close() {
	if o.ownsHTTPClient && o.HTTPClient != nil {
		utility.PutHTTPClient(o.HTTPClient)
		o.HTTPClient = nil
		o.ownsHTTPClient = false
	}
}
