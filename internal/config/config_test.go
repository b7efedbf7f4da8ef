package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("API_URL", "")
	t.Setenv("SESSION_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:5000/api", cfg.APIURL)
	assert.Equal(t, "medics_admin", cfg.MongoDatabase)
	assert.Equal(t, 30*time.Minute, cfg.ViewIdleTTL)
	assert.Equal(t, time.Duration(0), cfg.HTTPTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.NotEmpty(t, cfg.Secret())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("API_URL", "https://api.example.org/api")
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("CORS_ORIGINS", "https://a.example.org, https://b.example.org")
	t.Setenv("HTTP_TIMEOUT", "15s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "https://api.example.org/api", cfg.APIURL)
	assert.Equal(t, []string{"https://a.example.org", "https://b.example.org"}, cfg.CORSOrigins)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.False(t, cfg.IsDev())
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("SESSION_SECRET", "short")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	c := &Config{Env: "development", APIURL: "http://x", ViewIdleTTL: time.Minute}
	assert.NoError(t, c.Validate())

	c.APIURL = " "
	assert.Error(t, c.Validate())

	c.APIURL = "http://x"
	c.ViewIdleTTL = 0
	assert.Error(t, c.Validate())
}

func TestLoad_EnvFromDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	content := "ENV=production\nSESSION_SECRET=0123456789abcdef0123456789abcdef\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))
	t.Chdir(dir)

	// godotenv never overrides variables that are already set
	for _, k := range []string{"ENV", "SESSION_SECRET"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Env)
	assert.False(t, cfg.IsDev())
}
