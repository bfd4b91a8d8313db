package awsutil

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/smithy-go"
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// BaseClient provides various helpers to set up and use AWS clients for various
// services.
type BaseClient struct {
	opts ClientOptions
}

// NewBaseClient creates a new base AWS client from the client options.
func NewBaseClient(opts ClientOptions) BaseClient {
	return BaseClient{opts: opts}
}

// GetConfig validates the options and returns the authenticated AWS config.
func (c *BaseClient) GetConfig(ctx context.Context) (*aws.Config, error) {
	if err := c.opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid options")
	}

	cfg, err := c.opts.GetConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "getting config")
	}

	return cfg, nil
}

// GetRetryOptions returns the retry options for the client.
func (c *BaseClient) GetRetryOptions() utility.RetryOptions {
	if c.opts.RetryOpts == nil {
		c.opts.RetryOpts = &utility.RetryOptions{}
		c.opts.RetryOpts.Validate()
	}
	return *c.opts.RetryOpts
}

// Close closes the client and cleans up its resources.
func (c *BaseClient) Close(ctx context.Context) error {
	c.opts.Close()
	return nil
}

// MakeAPILogMessage creates the fields to log for an AWS API call. Callers must
// not include secret values in the fields.
func MakeAPILogMessage(op string, fields message.Fields) message.Fields {
	msg := message.Fields{
		"message":  "AWS API call",
		"api_name": op,
	}
	for k, v := range fields {
		msg[k] = v
	}
	return msg
}

// GetAPIErrorCode returns the API error code if the error came from the AWS API
// and an empty string otherwise.
func GetAPIErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
