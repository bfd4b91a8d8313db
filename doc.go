/*
Package cirrus provides thin, testable wrappers around three managed cloud
services: a text translation provider, a secrets storage service and an identity
provider. Each service is hidden behind a narrow interface so that it can be
swapped for a test double.

The Translator interface translates text between the small set of supported
languages. The translate package provides implementations backed by Google Cloud
Translation and MyMemory, along with the HTTP handler that serves translation
requests.

The Vault interface allows you to set, enumerate and read named secrets. The
secret package provides a Vault backed by Secrets Manager, as well as the
SecretsManagerClient that wraps the Secrets Manager API directly.

The IdentityClient interface acquires access tokens, either silently from the
identity library's token cache or interactively from the user. The identity
package provides an implementation backed by the Microsoft Authentication
Library and the silent-then-interactive acquisition flow.
*/
package cirrus
