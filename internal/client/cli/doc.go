// Package cli provides the interactive coursehub command-line client.
//
// It wires configuration, local storage, the token store, the HTTP client
// and the auth action set, then runs an interactive REPL. Typical flow:
// restore a persisted session, start a background connectivity watcher,
// and execute user commands.
//
// Key features:
//   - Register / Login / Logout, email verification and password reset
//   - Account commands: whoami, change-name, change-password
//   - Subscription: payment-status, unsubscribe
//   - Support contact and problem reports
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
