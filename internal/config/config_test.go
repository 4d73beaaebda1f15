package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("GO_APP_ENV", "")
	os.Unsetenv("STORAGE_DRIVER")
	os.Unsetenv("GO_APP_ENV")
	os.Unsetenv("JWT_SECRET")

	c, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, DriverBolt, c.Storage.Driver)
	assert.Equal(t, 8080, c.ServerPort)
	assert.Equal(t, time.Hour, c.SessionDuration)
	assert.Equal(t, "data/finance-data.json", c.FinanceDataPath)
	assert.True(t, c.UsingDevSecret())
	assert.Equal(t, ":8080", c.Address())
}

func TestParse_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("GO_APP_ENV", Production)
	t.Setenv("JWT_SECRET", "")

	_, err := Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate(t *testing.T) {
	base := func() *Configuration {
		return &Configuration{
			Storage:         StorageOptions{Driver: DriverBolt},
			JWTSecret:       "s",
			SessionDuration: time.Hour,
			MaxBodyBytes:    1024,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Configuration)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Configuration) {}},
		{name: "unknown driver", mutate: func(c *Configuration) { c.Storage.Driver = "redis" }, wantErr: "STORAGE_DRIVER"},
		{name: "postgres without url", mutate: func(c *Configuration) { c.Storage.Driver = DriverPostgres }, wantErr: "DATABASE_URL"},
		{name: "postgres with url", mutate: func(c *Configuration) {
			c.Storage.Driver = DriverPostgres
			c.Storage.DatabaseURL = "postgres://localhost/erp"
		}},
		{name: "zero session", mutate: func(c *Configuration) { c.SessionDuration = 0 }, wantErr: "SESSION_DURATION"},
		{name: "negative latency", mutate: func(c *Configuration) { c.Storage.SaveLatency = -time.Second }, wantErr: "SAVE_LATENCY"},
		{name: "zero body", mutate: func(c *Configuration) { c.MaxBodyBytes = 0 }, wantErr: "MAX_BODY_BYTES"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadEnv_SkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(present, []byte("ERP_TEST_LOADENV=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("ERP_TEST_LOADENV") })

	n, err := LoadEnv([]string{present, filepath.Join(dir, ".env.local")})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "from-file", os.Getenv("ERP_TEST_LOADENV"))
}
