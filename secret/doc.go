/*
Package secret provides implementations to interact with secrets management
services.

BasicSecretsManager provides a Vault backed by Secrets Manager without needing
to make direct calls to the API to perform frequently-used operations.

The BasicSecretsManagerClient provides a convenience wrapper around the Secrets
Manager API. If the Vault interface does not fulfill your needs, you can make
calls directly to the Secrets Manager API instead.
*/
package secret
