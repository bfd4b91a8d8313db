/*
Package translate provides translation providers and the HTTP handler that
exposes them.

The Handler validates a translation request and delegates the translation to a
cirrus.Translator. It can be served as an http.Handler or invoked by AWS Lambda
through API Gateway.
*/
package translate
