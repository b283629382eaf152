// Package http implements the HTTP transport layer of the gateway.
//
// It exposes route wiring, request handlers, and middleware used by the
// image delivery and allowlist API. Cross-cutting concerns such as request
// tracing and access logging are handled in this package before requests are
// delegated to the service layer.
package http
