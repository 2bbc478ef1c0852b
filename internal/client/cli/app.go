package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/client/client"
	"github.com/dmitrijs2005/coursehub/internal/client/config"
	"github.com/dmitrijs2005/coursehub/internal/client/diagnostics"
	"github.com/dmitrijs2005/coursehub/internal/client/services"
	"github.com/dmitrijs2005/coursehub/internal/client/state"
	"github.com/dmitrijs2005/coursehub/internal/client/storage"
	"github.com/dmitrijs2005/coursehub/internal/client/tokenstore"
	"github.com/dmitrijs2005/coursehub/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

// credentialInfo is the read side of the token store shown by "status".
type credentialInfo interface {
	ExpiresAt() time.Time
}

type App struct {
	config      *config.Config
	authService services.AuthService
	state       *state.Store
	credential  credentialInfo
	log         logging.Logger
	reader      *bufio.Reader
	out         io.Writer

	mu   sync.Mutex
	mode Mode

	closers []func() error
}

// NewApp wires local storage, the token store, the HTTP client and the auth
// action set for cfg. version ends up in the User-Agent header.
func NewApp(ctx context.Context, cfg *config.Config, version string, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}

	db, err := storage.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	tokens, err := tokenstore.Open(ctx, db, tokenstore.Config{
		TTL:        cfg.TokenTTL,
		Passphrase: []byte(cfg.TokenPassphrase),
	}, log.With("component", "tokenstore"))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error opening token store: %w", err)
	}

	userAgent := "coursehub-cli/" + version
	api, err := client.NewHTTPClient(cfg.ServerURL, tokens,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithUserAgent(userAgent),
		client.WithLogger(log.With("component", "http")),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	out := os.Stdout
	opts := []services.Option{
		services.WithNotifier(newConsoleNotifier(out)),
		services.WithLogger(log.With("component", "auth")),
	}
	var reporter *diagnostics.Reporter
	if cfg.ClientLog {
		reporter = diagnostics.NewReporter(api, userAgent, log.With("component", "diagnostics"))
		opts = append(opts, services.WithReporter(reporter))
	}

	st := state.NewStore()
	app := newApp(cfg, services.NewAuthService(api, tokens, st, opts...), st, tokens,
		bufio.NewReader(os.Stdin), out, log)
	app.closers = []func() error{
		func() error { reporter.Wait(); return nil },
		app.authService.Close,
		db.Close,
	}
	return app, nil
}

func newApp(cfg *config.Config, auth services.AuthService, st *state.Store, cred credentialInfo,
	reader *bufio.Reader, out io.Writer, log logging.Logger) *App {
	if log == nil {
		log = logging.Nop()
	}
	return &App{
		config:      cfg,
		authService: auth,
		state:       st,
		credential:  cred,
		log:         log,
		reader:      reader,
		out:         out,
	}
}

// Close waits for pending diagnostics and releases the client and database.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.Close(); err != nil {
			a.log.Warn(ctx, "shutdown", "error", err)
		}
	}()
	a.Root(ctx)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// setMode records mode and reports whether it changed.
func (a *App) setMode(mode Mode) bool {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.printf("Switched to %s mode\n", mode)
	}
	return changed
}

func (a *App) isLoggedIn() bool {
	return a.state.Snapshot().IsLoggedIn()
}

// getStatus renders the prompt status, e.g. "(ann@example.com admin pro online)".
func (a *App) getStatus() string {
	snap := a.state.Snapshot()

	var parts []string
	if snap.IsLoggedIn() {
		parts = append(parts, snap.User.Email)
		if snap.IsAdmin() {
			parts = append(parts, "admin")
		}
		parts = append(parts, snap.SubscriptionTier())
	}
	if m := a.Mode(); m != "" {
		parts = append(parts, string(m))
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// checkOnline pings the server once and updates the mode. Coming back
// online with a credential but no confirmed user triggers a refresh.
func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.authService.Ping(pingCtx)
	cancel()

	if err != nil {
		a.setMode(ModeOffline)
		return
	}
	if a.setMode(ModeOnline) {
		snap := a.state.Snapshot()
		if snap.Token != "" && snap.User == nil {
			_, _ = a.authService.RefreshUser(ctx)
		}
	}
}

// StartOnlineStatusWatcher pings the server every interval until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
