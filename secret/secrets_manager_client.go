package secret

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/evergreen-ci/cirrus/awsutil"
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// BasicSecretsManagerClient provides a cirrus.SecretsManagerClient
// implementation that wraps the Secrets Manager API. It supports retrying
// requests using exponential backoff and jitter.
type BasicSecretsManagerClient struct {
	awsutil.BaseClient
	sm *secretsmanager.Client
}

// NewBasicSecretsManagerClient creates a new Secrets Manager client from the
// given options.
func NewBasicSecretsManagerClient(ctx context.Context, opts awsutil.ClientOptions) (*BasicSecretsManagerClient, error) {
	c := &BasicSecretsManagerClient{
		BaseClient: awsutil.NewBaseClient(opts),
	}
	if err := c.setup(ctx); err != nil {
		return nil, errors.Wrap(err, "setting up client")
	}

	return c, nil
}

func (c *BasicSecretsManagerClient) setup(ctx context.Context) error {
	if c.sm != nil {
		return nil
	}

	cfg, err := c.GetConfig(ctx)
	if err != nil {
		return errors.Wrap(err, "initializing config")
	}

	c.sm = secretsmanager.NewFromConfig(*cfg)

	return nil
}

// CreateSecret creates a new secret.
func (c *BasicSecretsManagerClient) CreateSecret(ctx context.Context, in *secretsmanager.CreateSecretInput) (*secretsmanager.CreateSecretOutput, error) {
	if err := c.setup(ctx); err != nil {
		return nil, errors.Wrap(err, "setting up client")
	}

	var out *secretsmanager.CreateSecretOutput
	var err error
	msg := awsutil.MakeAPILogMessage("CreateSecret", message.Fields{"name": utility.FromStringPtr(in.Name)})
	if err := utility.Retry(ctx,
		func() (bool, error) {
			out, err = c.sm.CreateSecret(ctx, in)
			return c.handleError(err, msg)
		}, c.GetRetryOptions()); err != nil {
		return nil, err
	}

	return out, nil
}

// PutSecretValue stores a new version of an existing secret's value.
func (c *BasicSecretsManagerClient) PutSecretValue(ctx context.Context, in *secretsmanager.PutSecretValueInput) (*secretsmanager.PutSecretValueOutput, error) {
	if err := c.setup(ctx); err != nil {
		return nil, errors.Wrap(err, "setting up client")
	}

	var out *secretsmanager.PutSecretValueOutput
	var err error
	msg := awsutil.MakeAPILogMessage("PutSecretValue", message.Fields{"secret_id": utility.FromStringPtr(in.SecretId)})
	if err := utility.Retry(ctx,
		func() (bool, error) {
			out, err = c.sm.PutSecretValue(ctx, in)
			return c.handleError(err, msg)
		}, c.GetRetryOptions()); err != nil {
		return nil, err
	}

	return out, nil
}

// GetSecretValue gets the decrypted value of an existing secret.
func (c *BasicSecretsManagerClient) GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error) {
	if err := c.setup(ctx); err != nil {
		return nil, errors.Wrap(err, "setting up client")
	}

	var out *secretsmanager.GetSecretValueOutput
	var err error
	msg := awsutil.MakeAPILogMessage("GetSecretValue", message.Fields{"secret_id": utility.FromStringPtr(in.SecretId)})
	if err := utility.Retry(ctx,
		func() (bool, error) {
			out, err = c.sm.GetSecretValue(ctx, in)
			return c.handleError(err, msg)
		}, c.GetRetryOptions()); err != nil {
		return nil, err
	}

	return out, nil
}

// ListSecrets lists the metadata for a page of secrets.
func (c *BasicSecretsManagerClient) ListSecrets(ctx context.Context, in *secretsmanager.ListSecretsInput) (*secretsmanager.ListSecretsOutput, error) {
	if err := c.setup(ctx); err != nil {
		return nil, errors.Wrap(err, "setting up client")
	}

	var out *secretsmanager.ListSecretsOutput
	var err error
	msg := awsutil.MakeAPILogMessage("ListSecrets", message.Fields{"num_filters": len(in.Filters)})
	if err := utility.Retry(ctx,
		func() (bool, error) {
			out, err = c.sm.ListSecrets(ctx, in)
			return c.handleError(err, msg)
		}, c.GetRetryOptions()); err != nil {
		return nil, err
	}

	return out, nil
}

// DeleteSecret deletes an existing secret.
func (c *BasicSecretsManagerClient) DeleteSecret(ctx context.Context, in *secretsmanager.DeleteSecretInput) (*secretsmanager.DeleteSecretOutput, error) {
	if err := c.setup(ctx); err != nil {
		return nil, errors.Wrap(err, "setting up client")
	}

	var out *secretsmanager.DeleteSecretOutput
	var err error
	msg := awsutil.MakeAPILogMessage("DeleteSecret", message.Fields{"secret_id": utility.FromStringPtr(in.SecretId)})
	if err := utility.Retry(ctx,
		func() (bool, error) {
			out, err = c.sm.DeleteSecret(ctx, in)
			return c.handleError(err, msg)
		}, c.GetRetryOptions()); err != nil {
		return nil, err
	}

	return out, nil
}

// Close closes the client.
func (c *BasicSecretsManagerClient) Close(ctx context.Context) error {
	return c.BaseClient.Close(ctx)
}

// handleError logs the API error and returns whether the call should be
// retried.
func (c *BasicSecretsManagerClient) handleError(err error, msg message.Fields) (bool, error) {
	if err == nil {
		return false, nil
	}

	code := awsutil.GetAPIErrorCode(err)
	if code == "" {
		return true, err
	}

	grip.Debug(message.WrapError(err, msg))
	if isNonRetryableErrorCode(code) {
		return false, err
	}

	return true, err
}

func isNonRetryableErrorCode(code string) bool {
	switch code {
	case "InvalidParameterException",
		"InvalidRequestException",
		"ResourceNotFoundException",
		"ResourceExistsException",
		"DecryptionFailure",
		"AccessDeniedException",
		"ValidationException":
		return true
	default:
		return false
	}
}
