// Package config loads runtime configuration for the coursehub CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see SetDefaults).
//  2. Optional config file named by --config / -c (JSON, YAML or TOML,
//     picked by extension).
//  3. Environment variables with the COURSEHUB_ prefix, e.g.
//     COURSEHUB_SERVER_URL, COURSEHUB_TOKEN_TTL.
//  4. Command-line flags (see BindFlags), when explicitly set.
//
// # File schema
//
//	{
//	  "server_url": "https://api.example.com",
//	  "request_timeout": "30s",
//	  "database_path": "coursehub.db",
//	  "token_ttl": "720h",
//	  "token_passphrase": "",
//	  "online_check_interval": "3s",
//	  "log_backend": "zap",
//	  "log_level": "info",
//	  "client_log": true
//	}
//
// Invalid values are reported as coded errors ("config.invalid_server_url:
// ...") that match ErrInvalid.
package config
