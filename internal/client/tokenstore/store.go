// Package tokenstore keeps the bearer credential used by every outgoing
// request. Reads are served from memory; writes go to memory first and are
// then persisted best-effort to the local metadata table so the credential
// survives a restart until its scoped lifetime ends.
package tokenstore

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/coursehub/internal/cryptox"
	"github.com/dmitrijs2005/coursehub/internal/dbx"
	"github.com/dmitrijs2005/coursehub/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenKey = "auth.token"
	saltKey  = "auth.token.salt"

	persistTimeout = 5 * time.Second
)

type Config struct {
	// TTL bounds how long a persisted credential is restored after restart.
	// Zero keeps it until DelToken.
	TTL time.Duration
	// Passphrase, when set, seals the persisted credential with cryptox.
	Passphrase []byte
}

// Store is safe for concurrent use. Writes are last-write-wins in memory
// and on disk alike.
type Store struct {
	// wmu serializes writers across the memory update and the persisted row.
	wmu   sync.Mutex
	mu    sync.RWMutex
	token string

	db   *sql.DB
	repo metadata.Repository
	cfg  Config
	key  []byte
	log  logging.Logger
	now  func() time.Time
}

// NewMemoryStore returns a store that never touches disk.
func NewMemoryStore() *Store {
	return &Store{log: logging.Nop(), now: time.Now}
}

// Open returns a store persisted in db and restores a live credential.
// A credential that cannot be read back (expired, wrong passphrase,
// corrupt) is treated as absent.
func Open(ctx context.Context, db *sql.DB, cfg Config, log logging.Logger) (*Store, error) {
	if log == nil {
		log = logging.Nop()
	}
	s := &Store{
		db:   db,
		repo: metadata.NewSQLiteRepository(db),
		cfg:  cfg,
		log:  log,
		now:  time.Now,
	}

	if _, err := s.repo.PurgeExpired(ctx); err != nil {
		return nil, err
	}

	salt, err := s.repo.Get(ctx, saltKey)
	if err != nil {
		return nil, err
	}
	stored, err := s.repo.Get(ctx, tokenKey)
	if err != nil {
		return nil, err
	}

	switch {
	case len(cfg.Passphrase) > 0 && salt == nil:
		// First sealed open: seal any plaintext credential together with the new salt.
		salt = cryptox.NewSalt()
		s.key = cryptox.DeriveKey(cfg.Passphrase, salt)
		if err := s.sealExisting(ctx, salt, stored); err != nil {
			return nil, err
		}
		s.token, stored = string(stored), nil
	case len(cfg.Passphrase) > 0:
		s.key = cryptox.DeriveKey(cfg.Passphrase, salt)
	case salt != nil:
		// Sealed earlier, opened without a passphrase: fall back to plaintext mode.
		if stored != nil {
			log.Warn(ctx, "persisted credential is sealed and no passphrase is configured")
		}
		stored = nil
		if err := s.repo.Delete(ctx, tokenKey); err != nil {
			return nil, err
		}
		if err := s.repo.Delete(ctx, saltKey); err != nil {
			return nil, err
		}
	}

	if stored != nil {
		token, err := s.decode(stored)
		if err != nil {
			log.Warn(ctx, "discarding unreadable persisted credential", "error", err)
			_ = s.repo.Delete(ctx, tokenKey)
		} else {
			s.token = token
		}
	}
	return s, nil
}

// Token returns the current credential, "" when there is none.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken makes token the credential for all subsequent calls.
func (s *Store) SetToken(token string) {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	s.swap(token)
	if token == "" {
		s.persistDelete()
		return
	}
	s.persistSet(token)
}

// DelToken removes the credential. Calling it on an empty store is a no-op.
func (s *Store) DelToken() {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	s.swap("")
	s.persistDelete()
}

// DelTokenIf removes the credential only while it is still token and
// reports whether the store now holds none because of that match.
func (s *Store) DelTokenIf(token string) bool {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	if s.Token() != token {
		return false
	}
	if token == "" {
		return true
	}
	s.swap("")
	s.persistDelete()
	return true
}

func (s *Store) swap(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// ExpiresAt reports the exp claim of a JWT credential. The signature is
// not checked; the value is for display only. Zero when there is no
// credential, it is not a JWT, or it carries no exp.
func (s *Store) ExpiresAt() time.Time {
	token := s.Token()
	if token == "" {
		return time.Time{}
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

func (s *Store) sealExisting(ctx context.Context, salt []byte, plaintext []byte) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, saltKey, salt, time.Time{}); err != nil {
			return err
		}
		if plaintext == nil {
			return nil
		}
		sealed, err := cryptox.Seal(s.key, plaintext)
		if err != nil {
			return err
		}
		var expiresAt time.Time
		if s.cfg.TTL > 0 {
			expiresAt = s.now().Add(s.cfg.TTL)
		}
		return repo.Set(ctx, tokenKey, sealed, expiresAt)
	})
}

func (s *Store) persistSet(token string) {
	if s.repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	value, err := s.encode(token)
	if err != nil {
		s.log.Warn(ctx, "credential not persisted", "error", err)
		return
	}
	var expiresAt time.Time
	if s.cfg.TTL > 0 {
		expiresAt = s.now().Add(s.cfg.TTL)
	}

	if err := s.repo.Set(ctx, tokenKey, value, expiresAt); err != nil {
		s.log.Warn(ctx, "credential not persisted", "error", err)
	}
}

func (s *Store) persistDelete() {
	if s.repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := s.repo.Delete(ctx, tokenKey); err != nil {
		s.log.Warn(ctx, "persisted credential not removed", "error", err)
	}
}

func (s *Store) encode(token string) ([]byte, error) {
	if s.key == nil {
		return []byte(token), nil
	}
	return cryptox.Seal(s.key, []byte(token))
}

func (s *Store) decode(value []byte) (string, error) {
	if s.key == nil {
		return string(value), nil
	}
	plain, err := cryptox.Open(s.key, value)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}
