// Package client is the HTTP side of the coursehub auth client.
//
// # Overview
//
// The package provides:
//  1. An API contract (see the API interface) with one method per backend
//     auth route: register, login, logout, current user, e-mail
//     verification, password reset/change, name change, payment status,
//     unsubscribe, support, plus Ping and the /client-log sink.
//  2. A concrete implementation (see HTTPClient) that attaches the stored
//     bearer credential and a request id to every call, decodes JSON
//     responses unchanged, and turns every failure into *APIError.
//
// # Error Handling
//
// Every request failure is an *APIError carrying {Status, Message, RawBody}
// plus the serialized outgoing payload. Status 0 means no response was
// received. Callers can also match sentinels with errors.Is:
// ErrUnavailable (no response), ErrUnauthorized (401/403), ErrConflict (409).
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation; no timeout is applied beyond the
// configured transport timeout.
package client
