package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate clears the variables Load reads and runs from an empty directory
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, key := range []string{
		"PORT", "ENV", "STORAGE", "REQUEST_TIMEOUT", "CORS_ALLOWED_ORIGINS",
		"DB_DSN", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME",
		"JWT_SECRET", "AUTH_SKIP", "AUTH_MOCK_USER_ID",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	t.Setenv("JWT_SECRET", "secret")

	cfg, dotenvFound, err := Load()
	require.NoError(t, err)
	assert.False(t, dotenvFound)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=giftbuddy sslmode=disable", cfg.DB.GetDSN())
}

func TestLoad_FromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("STORAGE", "Memory")
	t.Setenv("AUTH_SKIP", "true")
	t.Setenv("AUTH_MOCK_USER_ID", "dev-admin")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("DB_DSN", "postgres://x@y/z")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	cfg, _, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.True(t, cfg.Auth.SkipAuth)
	assert.Equal(t, "dev-admin", cfg.Auth.MockUserID)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "postgres://x@y/z", cfg.DB.GetDSN())
	assert.Equal(t, 10, cfg.DB.MaxOpenConns)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"jwt secret set", Config{Storage: StoragePostgres, Auth: AuthConfig{JWTSecret: "s"}}, false},
		{"missing jwt secret", Config{Storage: StoragePostgres}, true},
		{"skip auth with mock user", Config{Storage: StorageMemory, Auth: AuthConfig{SkipAuth: true, MockUserID: "u"}}, false},
		{"skip auth without mock user", Config{Storage: StorageMemory, Auth: AuthConfig{SkipAuth: true}}, true},
		{"unknown storage", Config{Storage: "sqlite", Auth: AuthConfig{JWTSecret: "s"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
