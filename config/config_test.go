package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "greencity", cfg.App.Name)
	assert.Equal(t, "mock", cfg.Database.Type)
	assert.Equal(t, 1, cfg.Email.Workers)
	assert.Equal(t, 5, cfg.Storage.MaxImages)
	assert.Equal(t, "en", cfg.I18n.DefaultLanguage)
	assert.Equal(t, []string{"en", "ua"}, cfg.I18n.Languages)
	assert.Equal(t, 10*time.Second, cfg.Email.Timeout)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("app:\n  env: production\nauth:\n  jwt_secret: s3cret\nemail:\n  workers: 4\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	t.Setenv("GREENCITY_SERVER_PORT", "9090")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 4, cfg.Email.Workers)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.App.Env = "production"
	cfg.Database.Type = "postgres"
	cfg.I18n.DefaultLanguage = "de"

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.type")
	assert.Contains(t, err.Error(), "i18n.default_language")
	assert.Contains(t, err.Error(), "auth.jwt_secret")

	cfg.Database.Type = "mysql"
	cfg.I18n.DefaultLanguage = "ua"
	cfg.Auth.JWTSecret = "s3cret"
	assert.NoError(t, cfg.Validate())
}
