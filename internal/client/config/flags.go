package config

import (
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// BindFlags registers the CLI flags on fs and binds each one into v, so an
// explicitly set flag overrides file and environment values.
//
// Supported flags (short forms in parentheses):
//
//	--config (-c)                 path to a JSON/YAML/TOML config file
//	--server_url (-a)             backend base URL
//	--request_timeout             transport timeout per request
//	--database_path (-d)          local SQLite file
//	--token_ttl                   how long a persisted credential is restored
//	--token_passphrase            seals the persisted credential when set
//	--online_check_interval (-i)  reachability probe period
//	--log_backend                 slog or zap
//	--log_level                   debug, info, warn or error
//	--client_log                  forward failures to /client-log
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	fs.StringP(KeyConfigFile, "c", "", "path to a config file")
	fs.StringP(KeyServerURL, "a", "http://127.0.0.1:3000", "backend base URL")
	fs.Duration(KeyRequestTimeout, 30*time.Second, "transport timeout per request")
	fs.StringP(KeyDatabasePath, "d", "coursehub.db", "local SQLite database file")
	fs.Duration(KeyTokenTTL, 30*24*time.Hour, "lifetime of the persisted credential")
	fs.String(KeyTokenPassphrase, "", "passphrase sealing the persisted credential")
	fs.DurationP(KeyOnlineCheckInterval, "i", 3*time.Second, "online status check interval")
	fs.String(KeyLogBackend, "slog", "logging backend: slog or zap")
	fs.String(KeyLogLevel, "info", "log level: debug, info, warn, error")
	fs.Bool(KeyClientLog, true, "forward failures to the backend client log")

	for _, key := range []string{
		KeyConfigFile,
		KeyServerURL,
		KeyRequestTimeout,
		KeyDatabasePath,
		KeyTokenTTL,
		KeyTokenPassphrase,
		KeyOnlineCheckInterval,
		KeyLogBackend,
		KeyLogLevel,
		KeyClientLog,
	} {
		if err := v.BindPFlag(key, fs.Lookup(key)); err != nil {
			return err
		}
	}
	return nil
}
