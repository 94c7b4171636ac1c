package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "thisisasecretkeythatis32charslong!!"

// setupEnv sets environment variables for the duration of the test. Empty
// values count as unset for the loader.
func setupEnv(t *testing.T, envVars map[string]string) {
	t.Helper()
	for _, name := range []string{
		"KOLA_SERVER_PORT", "KOLA_SERVER_LOG_LEVEL", "KOLA_SERVER_ALLOWED_ORIGINS",
		"KOLA_DATABASE_DRIVER", "KOLA_DATABASE_URI", "KOLA_DATABASE_NAME",
		"KOLA_AUTH_JWT_SECRET", "KOLA_AUTH_COOKIE_SECURE", "KOLA_AUTH_COOKIE_SAME_SITE",
		"PORT", "MONGODB_URI", "ACCESS_TOKEN_SECRET",
	} {
		t.Setenv(name, "")
	}
	for name, value := range envVars {
		t.Setenv(name, value)
	}
}

// isolated points the loader at an empty directory so a developer's local
// .env or config.yaml cannot leak into the test.
func isolated(t *testing.T) []Option {
	dir := t.TempDir()
	return []Option{WithEnvFile(filepath.Join(dir, ".env")), WithConfigPath(dir)}
}

// TestLoadDefaults verifies the defaults applied when only the required
// values are provided.
func TestLoadDefaults(t *testing.T) {
	setupEnv(t, map[string]string{
		"KOLA_DATABASE_URI":    "mongodb://localhost:27017",
		"KOLA_AUTH_JWT_SECRET": testSecret,
	})

	cfg, err := Load(isolated(t)...)

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg)
	assert.Equal(t, 5000, cfg.Server.Port, "Default server port should be 5000")
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "mongo", cfg.Database.Driver)
	assert.Equal(t, "kolaDB", cfg.Database.Name)
	assert.Equal(t, 60, cfg.Auth.TokenLifetimeMinutes, "Tokens live one hour by default")
	assert.True(t, cfg.Auth.CookieSecure)
	assert.Equal(t, "none", cfg.Auth.CookieSameSite)
}

// TestLoadFromEnv verifies that prefixed environment variables are read.
func TestLoadFromEnv(t *testing.T) {
	setupEnv(t, map[string]string{
		"KOLA_SERVER_PORT":            "9090",
		"KOLA_SERVER_LOG_LEVEL":       "debug",
		"KOLA_SERVER_ALLOWED_ORIGINS": "https://kola.app,https://admin.kola.app",
		"KOLA_DATABASE_DRIVER":        "memory",
		"KOLA_DATABASE_NAME":          "testDB",
		"KOLA_AUTH_JWT_SECRET":        testSecret,
		"KOLA_AUTH_COOKIE_SECURE":     "false",
		"KOLA_AUTH_COOKIE_SAME_SITE":  "lax",
	})

	cfg, err := Load(isolated(t)...)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, []string{"https://kola.app", "https://admin.kola.app"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Empty(t, cfg.Database.URI, "memory driver needs no URI")
	assert.Equal(t, "testDB", cfg.Database.Name)
	assert.Equal(t, testSecret, cfg.Auth.JWTSecret)
	assert.False(t, cfg.Auth.CookieSecure)
	assert.Equal(t, "lax", cfg.Auth.CookieSameSite)
}

// TestLoadLegacyEnv verifies the unprefixed names used by existing deployments.
func TestLoadLegacyEnv(t *testing.T) {
	setupEnv(t, map[string]string{
		"PORT":                "7000",
		"MONGODB_URI":         "mongodb+srv://u:p@cluster0.example.net",
		"ACCESS_TOKEN_SECRET": testSecret,
	})

	cfg, err := Load(isolated(t)...)

	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "mongodb+srv://u:p@cluster0.example.net", cfg.Database.URI)
	assert.Equal(t, testSecret, cfg.Auth.JWTSecret)
}

// TestLoadEnvFile verifies that dotenv files are applied without overriding
// variables already present in the environment.
func TestLoadEnvFile(t *testing.T) {
	setupEnv(t, map[string]string{"KOLA_SERVER_PORT": "8181"})
	// godotenv only fills variables that are absent, so these must be unset
	// rather than empty.
	for _, name := range []string{"KOLA_AUTH_JWT_SECRET", "KOLA_DATABASE_DRIVER"} {
		require.NoError(t, os.Unsetenv(name))
		t.Cleanup(func() { _ = os.Unsetenv(name) })
	}

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "KOLA_AUTH_JWT_SECRET=" + testSecret + "\nKOLA_DATABASE_DRIVER=memory\nKOLA_SERVER_PORT=1111\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := Load(WithEnvFile(envFile), WithConfigPath(dir))

	require.NoError(t, err)
	assert.Equal(t, testSecret, cfg.Auth.JWTSecret)
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, 8181, cfg.Server.Port, "process environment wins over the env file")
}

// TestLoadConfigFile verifies that config.yaml is read and that environment
// variables override it.
func TestLoadConfigFile(t *testing.T) {
	setupEnv(t, map[string]string{
		"KOLA_AUTH_JWT_SECRET":  testSecret,
		"KOLA_SERVER_LOG_LEVEL": "warn",
	})

	dir := t.TempDir()
	yaml := "server:\n  port: 6060\n  log_level: debug\ndatabase:\n  driver: memory\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := Load(WithEnvFile(filepath.Join(dir, ".env")), WithConfigPath(dir))

	require.NoError(t, err)
	assert.Equal(t, 6060, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Server.LogLevel)
	assert.Equal(t, "memory", cfg.Database.Driver)
}

// TestLoadValidationErrors verifies that invalid configuration is rejected.
func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name:    "missing jwt secret",
			envVars: map[string]string{"KOLA_DATABASE_DRIVER": "memory"},
		},
		{
			name: "mongo driver without uri",
			envVars: map[string]string{
				"KOLA_AUTH_JWT_SECRET": testSecret,
			},
		},
		{
			name: "invalid port number",
			envVars: map[string]string{
				"KOLA_SERVER_PORT":     "999999",
				"KOLA_DATABASE_DRIVER": "memory",
				"KOLA_AUTH_JWT_SECRET": testSecret,
			},
		},
		{
			name: "invalid log level",
			envVars: map[string]string{
				"KOLA_SERVER_LOG_LEVEL": "verbose",
				"KOLA_DATABASE_DRIVER":  "memory",
				"KOLA_AUTH_JWT_SECRET":  testSecret,
			},
		},
		{
			name: "short jwt secret",
			envVars: map[string]string{
				"KOLA_DATABASE_DRIVER": "memory",
				"KOLA_AUTH_JWT_SECRET": "tooshort",
			},
		},
		{
			name: "unknown driver",
			envVars: map[string]string{
				"KOLA_DATABASE_DRIVER": "postgres",
				"KOLA_AUTH_JWT_SECRET": testSecret,
			},
		},
		{
			name: "invalid same site",
			envVars: map[string]string{
				"KOLA_DATABASE_DRIVER":       "memory",
				"KOLA_AUTH_JWT_SECRET":       testSecret,
				"KOLA_AUTH_COOKIE_SAME_SITE": "sometimes",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setupEnv(t, tc.envVars)

			cfg, err := Load(isolated(t)...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
			assert.Nil(t, cfg, "Config should be nil when an error occurs")
		})
	}
}
