/*
Package identity acquires access tokens from the Microsoft identity platform.

MSALClient adapts the MSAL public client application to a cirrus.IdentityClient
and AcquireToken implements the token acquisition flow: a silent attempt for a
previously signed-in account, falling back to interactive sign-in.
*/
package identity
