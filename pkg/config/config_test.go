package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CSV_FILE_PATH", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	t.Setenv("UPLOADS_DIR", "")
	t.Setenv("VERCEL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "uploads", cfg.Server.UploadsDir)
	assert.Equal(t, defaultCSVPath, cfg.Knowledge.CSVPath)
	assert.True(t, cfg.Knowledge.NormalizeText)
	assert.False(t, cfg.Knowledge.Watch)
	assert.Equal(t, 3, cfg.Knowledge.VOCExampleLimit)
	assert.Equal(t, 10, cfg.Knowledge.MinClassifyChars)
	assert.False(t, cfg.Database.Enabled())
	assert.False(t, cfg.Auth.Enabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CSV_FILE_PATH", "/data/kb.csv")
	t.Setenv("KB_DEFAULT_TIER", "Gold")
	t.Setenv("KB_NORMALIZE_TEXT", "false")
	t.Setenv("KB_WATCH", "true")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abc")
	t.Setenv("JWT_EXPIRATION_HOURS", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/kb.csv", cfg.Knowledge.CSVPath)
	assert.Equal(t, "Gold", cfg.Knowledge.DefaultTier)
	assert.False(t, cfg.Knowledge.NormalizeText)
	assert.True(t, cfg.Knowledge.Watch)
	assert.True(t, cfg.Database.Enabled())
	assert.True(t, cfg.Auth.Enabled())
	assert.Equal(t, 2*time.Hour, cfg.Auth.Expiration)
}

func TestLoad_VercelUsesTempUploads(t *testing.T) {
	t.Setenv("UPLOADS_DIR", "")
	t.Setenv("VERCEL", "1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.NotEqual(t, "uploads", cfg.Server.UploadsDir)
}
