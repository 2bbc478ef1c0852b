// Package common contains shared constants and small helpers used across
// the coursehub client packages.
package common

const (
	// AuthorizationHeaderName carries the bearer credential on outbound requests.
	AuthorizationHeaderName = "Authorization"
	// BearerPrefix precedes the credential in the authorization header.
	BearerPrefix = "Bearer "
	// RequestIDHeaderName tags each outbound request for server-side log correlation.
	RequestIDHeaderName = "X-Request-ID"
)
