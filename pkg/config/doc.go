// Package config provides configuration types and loading for the formd server.
//
// Two configuration sources are supported:
//
//   - Mail credentials come from the process environment (SMTP_SERVER,
//     SMTP_PORT, SENDER_EMAIL, SENDER_PASSWORD, RECIPIENT_EMAIL). When the
//     credentials are incomplete the server runs in unconfigured mode and
//     falls back to logging submissions to a local file; this is an expected
//     operating mode, not an error.
//   - Server settings (port, static directory, timeouts, logging) have
//     built-in defaults and can optionally be loaded from a YAML or JSON
//     file. Command-line flags override file values.
//
// Both configurations are constructed once at startup and are immutable
// afterwards, so they are safe to share across request-handling goroutines.
package config
