package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dangerclosesec/fieldwork/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FIELDWORK_CONFIG", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, config.EmailNone, cfg.Email.Provider)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpiryPeriod)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fieldwork.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  driver: sqlite
  path: /tmp/from-file.db
server:
  port: "9000"
  login_rate_per_minute: 3
jwt:
  expiry_period: 2h
`), 0o600))

	t.Setenv("FIELDWORK_CONFIG", path)
	t.Setenv("SERVER_PORT", "9100")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/from-file.db", cfg.Database.Path)
	assert.Equal(t, "9100", cfg.Server.Port, "environment wins over the file")
	assert.Equal(t, 3, cfg.Server.LoginRatePerMinute)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpiryPeriod)
}

func TestLoadRejectsBadSettings(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"DB_DRIVER": "mysql"}},
		{"unknown email provider", map[string]string{"EMAIL_PROVIDER": "pigeon"}},
		{"sendgrid without key", map[string]string{"EMAIL_PROVIDER": "sendgrid", "SENDGRID_API_KEY": ""}},
		{"smtp without host", map[string]string{"EMAIL_PROVIDER": "smtp", "SMTP_HOST": ""}},
		{"non numeric rate", map[string]string{"LOGIN_RATE_PER_MINUTE": "lots"}},
		{"zero rate", map[string]string{"LOGIN_RATE_PER_MINUTE": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("FIELDWORK_CONFIG", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
