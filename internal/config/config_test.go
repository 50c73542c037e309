package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FileAndDefaults(t *testing.T) {
	dir := t.TempDir()
	yaml := `
store:
  driver: memory
jwt:
  secret: test-secret
s3:
  bucket_name: media
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "public", cfg.PostgREST.Schema)
	assert.Equal(t, 15*time.Minute, cfg.S3.PresignExpiry)
	assert.True(t, cfg.S3.Enabled())
	assert.Equal(t, "is_premium", cfg.JWT.PremiumClaim)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgrest")
	t.Setenv("POSTGREST_URL", "https://project.example.co")
	t.Setenv("POSTGREST_API_KEY", "anon")
	t.Setenv("POSTGREST_TIMEOUT", "5s")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DriverPostgREST, cfg.Store.Driver)
	assert.Equal(t, "https://project.example.co", cfg.PostgREST.URL)
	assert.Equal(t, 5*time.Second, cfg.PostgREST.Timeout)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.False(t, cfg.S3.Enabled())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "postgrest without url", cfg: Config{Store: StoreConfig{Driver: DriverPostgREST}, JWT: JWTConfig{Secret: "s"}}, wantErr: "postgrest.url"},
		{name: "postgres without dsn", cfg: Config{Store: StoreConfig{Driver: DriverPostgres}, JWT: JWTConfig{Secret: "s"}}, wantErr: "postgres.dsn"},
		{name: "unknown driver", cfg: Config{Store: StoreConfig{Driver: "sqlite"}, JWT: JWTConfig{Secret: "s"}}, wantErr: "unknown store driver"},
		{name: "missing secret", cfg: Config{Store: StoreConfig{Driver: DriverMemory}}, wantErr: "jwt.secret"},
		{name: "memory", cfg: Config{Store: StoreConfig{Driver: DriverMemory}, JWT: JWTConfig{Secret: "s"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
