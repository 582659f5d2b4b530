package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JWT_SECRET", "")
	t.Setenv("HTTP_HOST", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "provenderie.db", cfg.DB.DSN())
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "127.0.0.1", cfg.HTTP.Host)
	assert.NoError(t, cfg.ValidateExposure())
	assert.Equal(t, int64(1), cfg.Ledger.DefaultShopID)
	assert.False(t, cfg.Ledger.AllowMovementEdit)
	assert.Equal(t, 480, cfg.JWT.Expiration)
	assert.Equal(t, "utf-8", cfg.Export.Encoding)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DB_PATH", ":memory:")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("HTTP_HOST", "")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LEDGER_ALLOW_MOVEMENT_EDIT", "true")
	t.Setenv("EXPORT_ENCODING", "Windows-1252")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":memory:", cfg.DB.Path)
	assert.Equal(t, "127.0.0.1:9090", cfg.HTTP.Addr())
	assert.True(t, cfg.Ledger.AllowMovementEdit)
	assert.Equal(t, "windows-1252", cfg.Export.Encoding)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "custom.env")
	require.NoError(t, os.WriteFile(path, []byte("LEDGER_DEFAULT_SHOP_ID=7\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("LEDGER_DEFAULT_SHOP_ID") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Ledger.DefaultShopID)
}

func TestLoad_PostgresRequiresURL(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_HostDefaultFollowsSecret(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HTTP_HOST", "")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.NoError(t, cfg.ValidateExposure())
}

func TestValidateExposure(t *testing.T) {
	tests := []struct {
		name    string
		host    string
		secret  string
		wantErr bool
	}{
		{"loopback v4 sin secreto", "127.0.0.1", "", false},
		{"loopback v6 sin secreto", "::1", "", false},
		{"localhost sin secreto", "localhost", "", false},
		{"todas las interfaces sin secreto", "0.0.0.0", "", true},
		{"host vacío sin secreto", "", "", true},
		{"ip de red sin secreto", "192.168.1.20", "", true},
		{"todas las interfaces con secreto", "0.0.0.0", "s3cret", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{HTTP: HTTPConfig{Host: tt.host, Port: 8080}, JWT: JWTConfig{Secret: tt.secret}}
			err := cfg.ValidateExposure()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
