package testutil

import (
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/evergreen-ci/cirrus/awsutil"
	"github.com/evergreen-ci/utility"
)

// runtimeNamespace is a random string generated during testing runtime that
// acts as a namespace for this particular runtime's tests. Concurrent test runs
// on different machines each list and clean up only their own secrets.
var runtimeNamespace = utility.RandomString()

// AWSRole returns the AWS IAM role from the environment variable.
func AWSRole() string {
	return os.Getenv("AWS_ROLE")
}

// AWSRegion returns the AWS region from the environment variable.
func AWSRegion() string {
	return os.Getenv("AWS_REGION")
}

// ValidIntegrationAWSOptions returns valid options to create an AWS client that
// can make actual requests to AWS for integration testing. Credentials are
// taken from the standard environment variables.
func ValidIntegrationAWSOptions(hc *http.Client) awsutil.ClientOptions {
	opts := awsutil.NewClientOptions().
		SetRegion(AWSRegion()).
		SetHTTPClient(hc).
		SetRetryOptions(utility.RetryOptions{MaxAttempts: 5})
	if role := AWSRole(); role != "" {
		opts.SetRole(role)
	}
	return *opts
}

// ValidNonIntegrationAWSOptions returns valid options to create an AWS client
// that doesn't make any actual requests to AWS.
func ValidNonIntegrationAWSOptions() awsutil.ClientOptions {
	return *awsutil.NewClientOptions().
		SetCredentialsProvider(credentials.NewStaticCredentialsProvider("", "", "")).
		SetRegion("us-east-1")
}
