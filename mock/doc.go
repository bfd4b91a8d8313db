/*
Package mock provides mock implementations of interfaces for testing purposes.

The SecretsManagerClient can be used for running tests without relying on
infrastructure in AWS to be set up. The Translator and IdentityClient stand in
for the translation and identity providers.
*/
package mock
