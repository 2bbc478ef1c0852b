package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/coursehub/internal/client/client"
)

// Root runs the interactive session: it restores a persisted session,
// starts the online watcher and blocks in the REPL until the user exits.
func (a *App) Root(ctx context.Context) {
	a.printf("Welcome to coursehub CLI (type 'help' for commands)\n")

	a.checkOnline(ctx)
	a.restoreSession(ctx)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

// restoreSession refreshes the user behind a persisted credential before
// any other command runs.
func (a *App) restoreSession(ctx context.Context) {
	err := a.authService.Bootstrap(ctx)
	switch {
	case err == nil:
		if snap := a.state.Snapshot(); snap.IsLoggedIn() {
			a.printf("Welcome back, %s\n", snap.User.Name)
		}
	case errors.Is(err, client.ErrUnavailable):
		a.printf("Server unavailable; the saved session will be checked once online\n")
	case errors.Is(err, client.ErrUnauthorized):
		a.printf("Your session has expired. Please log in.\n")
	default:
		a.log.Warn(ctx, "session restore failed", "error", err)
	}
}
