package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/logging"
	"github.com/spf13/viper"
)

const (
	KeyConfigFile          = "config"
	KeyServerURL           = "server_url"
	KeyRequestTimeout      = "request_timeout"
	KeyDatabasePath        = "database_path"
	KeyTokenTTL            = "token_ttl"
	KeyTokenPassphrase     = "token_passphrase"
	KeyOnlineCheckInterval = "online_check_interval"
	KeyLogBackend          = "log_backend"
	KeyLogLevel            = "log_level"
	KeyClientLog           = "client_log"

	EnvPrefix = "COURSEHUB"
)

const (
	codeReadFile                   = "config.read_file"
	codeInvalidServerURL           = "config.invalid_server_url"
	codeInvalidRequestTimeout      = "config.invalid_request_timeout"
	codeMissingDatabasePath        = "config.missing_database_path"
	codeInvalidTokenTTL            = "config.invalid_token_ttl"
	codeInvalidOnlineCheckInterval = "config.invalid_online_check_interval"
	codeInvalidLogBackend          = "config.invalid_log_backend"
	codeInvalidLogLevel            = "config.invalid_log_level"
)

// Config holds runtime settings for the coursehub CLI.
//
// Units: durations are time.Duration values; in files, env and flags they
// are written as "30s", "720h" and so on.
type Config struct {
	ServerURL           string
	RequestTimeout      time.Duration
	DatabasePath        string
	TokenTTL            time.Duration
	TokenPassphrase     string
	OnlineCheckInterval time.Duration
	LogBackend          string
	LogLevel            string
	ClientLog           bool
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyServerURL, "http://127.0.0.1:3000")
	v.SetDefault(KeyRequestTimeout, 30*time.Second)
	v.SetDefault(KeyDatabasePath, "coursehub.db")
	v.SetDefault(KeyTokenTTL, 30*24*time.Hour)
	v.SetDefault(KeyTokenPassphrase, "")
	v.SetDefault(KeyOnlineCheckInterval, 3*time.Second)
	v.SetDefault(KeyLogBackend, logging.BackendSlog)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyClientLog, true)
}

// Load resolves the configuration from v. Later sources win: defaults,
// then the file named by the "config" key, then COURSEHUB_* environment
// variables, then flags bound with BindFlags.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file := v.GetString(KeyConfigFile); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, configError(codeReadFile, err.Error())
		}
	}

	cfg := &Config{
		ServerURL:           strings.TrimSpace(v.GetString(KeyServerURL)),
		RequestTimeout:      v.GetDuration(KeyRequestTimeout),
		DatabasePath:        strings.TrimSpace(v.GetString(KeyDatabasePath)),
		TokenTTL:            v.GetDuration(KeyTokenTTL),
		TokenPassphrase:     v.GetString(KeyTokenPassphrase),
		OnlineCheckInterval: v.GetDuration(KeyOnlineCheckInterval),
		LogBackend:          strings.ToLower(v.GetString(KeyLogBackend)),
		LogLevel:            strings.ToLower(v.GetString(KeyLogLevel)),
		ClientLog:           v.GetBool(KeyClientLog),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting as a coded error.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return configError(codeInvalidServerURL, "server_url must be an absolute http(s) URL")
	}
	if c.RequestTimeout <= 0 {
		return configError(codeInvalidRequestTimeout, "request_timeout must be greater than zero")
	}
	if c.DatabasePath == "" {
		return configError(codeMissingDatabasePath, "database_path must be provided")
	}
	if c.TokenTTL < 0 {
		return configError(codeInvalidTokenTTL, "token_ttl must not be negative")
	}
	if c.OnlineCheckInterval <= 0 {
		return configError(codeInvalidOnlineCheckInterval, "online_check_interval must be greater than zero")
	}
	switch c.LogBackend {
	case logging.BackendSlog, logging.BackendZap:
	default:
		return configError(codeInvalidLogBackend, fmt.Sprintf("log_backend must be %q or %q", logging.BackendSlog, logging.BackendZap))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return configError(codeInvalidLogLevel, "log_level must be one of debug, info, warn, error")
	}
	return nil
}

// ErrInvalid matches every error returned by Load and Validate.
var ErrInvalid = errors.New("invalid configuration")

type codedError struct {
	code    string
	message string
}

func (e *codedError) Error() string        { return fmt.Sprintf("%s: %s", e.code, e.message) }
func (e *codedError) Is(target error) bool { return target == ErrInvalid }

// Code returns the machine-readable code of err, "" when it has none.
func Code(err error) string {
	var ce *codedError
	if errors.As(err, &ce) {
		return ce.code
	}
	return ""
}

func configError(code, message string) error {
	return &codedError{code: code, message: message}
}
