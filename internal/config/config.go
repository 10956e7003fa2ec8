package config

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the application reads.
const EnvPrefix = "BINDTAGS"

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
	dbDrivers  = []string{"sqlite3", "mysql", "postgres"}
)

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"log-level":  "log.level",
	"log-format": "log.format",
	"taggers":    "taggers.path",
	"db-driver":  "db.driver",
	"db-dsn":     "db.dsn",
}

// Config holds all configuration for the application.
type Config struct {
	Env     string
	Log     Log
	Taggers struct {
		Path string
	}
	DB struct {
		Driver string
		DSN    string
	}
}

// Log selects the application log output.
type Log struct {
	Level  string
	Format string
}

// BindFlags registers the configuration flags on fs.
func BindFlags(fs *pflag.FlagSet) {
	fs.String("log-level", "info", "Logging level: debug, info, warn or error.")
	fs.String("log-format", "text", "Log output format: text or json.")
	fs.String("taggers", "taggers", "Path to a tagger descriptor file or directory.")
	fs.String("db-driver", "sqlite3", "Database driver: sqlite3, mysql or postgres.")
	fs.String("db-dsn", "bindtags.db", "Database DSN.")
}

// Load reads the configuration. flags may be nil; only flags the user set
// override other sources. searchPaths are extra directories for bindtags.yaml.
func Load(flags *pflag.FlagSet, searchPaths ...string) (*Config, error) {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = "development"
	}
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			slog.Debug(".env file not loaded.", "error", err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("bindtags")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetDefault("env", env)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("taggers.path", "taggers")
	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("db.dsn", "bindtags.db")

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	cfg := &Config{Env: v.GetString("env")}
	cfg.Log.Level = strings.ToLower(v.GetString("log.level"))
	cfg.Log.Format = strings.ToLower(v.GetString("log.format"))
	cfg.Taggers.Path = v.GetString("taggers.path")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if !slices.Contains(logLevels, c.Log.Level) {
		return fmt.Errorf("invalid %s_LOG_LEVEL %q: must be one of %s", EnvPrefix, c.Log.Level, strings.Join(logLevels, ", "))
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		return fmt.Errorf("invalid %s_LOG_FORMAT %q: must be one of %s", EnvPrefix, c.Log.Format, strings.Join(logFormats, ", "))
	}
	if !slices.Contains(dbDrivers, c.DB.Driver) {
		return fmt.Errorf("invalid %s_DB_DRIVER %q: must be one of %s", EnvPrefix, c.DB.Driver, strings.Join(dbDrivers, ", "))
	}
	if c.DB.DSN == "" {
		return fmt.Errorf("%s_DB_DSN is required", EnvPrefix)
	}
	return nil
}
