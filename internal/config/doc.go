// Package config loads the application configuration.
//
// Values are resolved in this order, first match wins:
//
//   - command-line flags bound with BindFlags
//   - environment variables with the BINDTAGS_ prefix (BINDTAGS_DB_DSN)
//   - an optional bindtags.yaml in the working directory or a search path
//   - built-in defaults
//
// Outside production (BINDTAGS_ENV=production) a .env file in the working
// directory is loaded into the environment first.
package config
