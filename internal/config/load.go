package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load,
// e.g. KOLA_SERVER_PORT or KOLA_AUTH_JWT_SECRET.
const EnvPrefix = "KOLA"

// defaults are applied before any other source.
var defaults = map[string]any{
	"server.port":                      5000,
	"server.log_level":                 "info",
	"server.shutdown_timeout_seconds":  10,
	"server.allowed_origins":           []string{"http://localhost:5173"},
	"database.driver":                  "mongo",
	"database.name":                    "kolaDB",
	"database.connect_timeout_seconds": 10,
	"auth.token_lifetime_minutes":      60,
	"auth.clock_skew_seconds":          0,
	"auth.cookie_secure":               true,
	"auth.cookie_same_site":            "none",
}

// legacyEnv maps keys to the unprefixed variable names deployments of the
// original service already export. Prefixed names take precedence.
var legacyEnv = map[string]string{
	"server.port":     "PORT",
	"database.uri":    "MONGODB_URI",
	"auth.jwt_secret": "ACCESS_TOKEN_SECRET",
}

type loadOptions struct {
	envFiles    []string
	configPaths []string
}

// Option customizes Load.
type Option func(*loadOptions)

// WithEnvFile loads variables from the given dotenv file instead of ./.env.
func WithEnvFile(path string) Option {
	return func(o *loadOptions) {
		o.envFiles = append(o.envFiles, path)
	}
}

// WithConfigPath adds a directory searched for config.yaml.
func WithConfigPath(dir string) Option {
	return func(o *loadOptions) {
		o.configPaths = append(o.configPaths, dir)
	}
}

// Load configuration from dotenv files, an optional config.yaml, and
// environment variables, in increasing order of precedence. Variables already
// present in the process environment are never overwritten by dotenv files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(opts ...Option) (*Config, error) {
	o := loadOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if len(o.envFiles) == 0 {
		o.envFiles = []string{".env"}
	}
	if len(o.configPaths) == 0 {
		o.configPaths = []string{"."}
	}

	for _, file := range o.envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", file, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range o.configPaths {
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without defaults are invisible to AutomaticEnv during Unmarshal,
	// so bind them explicitly along with the legacy names.
	for _, key := range []string{"database.uri", "auth.jwt_secret"} {
		if err := v.BindEnv(key, envName(key)); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	for key, legacy := range legacyEnv {
		if err := v.BindEnv(key, envName(key), legacy); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// envName returns the prefixed environment variable name for key.
func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
