package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValidJSON(t *testing.T) {
	content := `{
		"data_dir": "/tmp/jobscout",
		"keywords": "Go Developer",
		"max_jobs": 25,
		"headless": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "/tmp/jobscout", cfg.DataDir)
	assert.Equal(t, "Go Developer", cfg.Keywords)
	assert.Equal(t, 25, cfg.MaxJobs)
	assert.True(t, cfg.Headless)
}

func TestLoad_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_NegativeValues(t *testing.T) {
	cfg := &Config{MaxJobs: -1}
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "max_jobs")
}

func TestValidate_DelayOrder(t *testing.T) {
	cfg := &Config{DelayMinSeconds: 10, DelayMaxSeconds: 2}
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "delay_min_seconds")
}

func TestValidate_EmailWithoutPassword(t *testing.T) {
	cfg := &Config{LinkedInEmail: "user@example.com"}
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "linkedin_password")
}

func TestValidate_Valid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Keywords: "Platform Engineer", MaxJobs: 10}
	merged := cfg.MergeWithDefaults(Default())

	assert.Equal(t, "Platform Engineer", merged.Keywords)
	assert.Equal(t, 10, merged.MaxJobs)
	assert.Equal(t, ".", merged.DataDir)
	assert.Equal(t, "linkedin_cookies.json", merged.CookieFile)
	assert.Equal(t, 2, merged.DelayMinSeconds)
	assert.Equal(t, 5, merged.DelayMaxSeconds)
}

func TestFillFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key-from-env")
	t.Setenv("LINKEDIN_EMAIL", "env@example.com")
	t.Setenv("LINKEDIN_PASSWORD", "env-password")

	cfg := Config{APIKey: "key-from-file"}
	cfg.FillFromEnv()

	// File value wins; env only fills blanks.
	assert.Equal(t, "key-from-file", cfg.APIKey)
	assert.Equal(t, "env@example.com", cfg.LinkedInEmail)
	assert.Equal(t, "env-password", cfg.LinkedInPassword)
}

func TestFillFromEnvDataDir(t *testing.T) {
	t.Setenv("JOBSCOUT_DATA_DIR", "/srv/jobscout")

	cfg := Default()
	cfg.FillFromEnv()
	assert.Equal(t, "/srv/jobscout", cfg.DataDir)

	cfg = Config{DataDir: "/explicit"}
	cfg.FillFromEnv()
	assert.Equal(t, "/explicit", cfg.DataDir)
}

func TestDelayDurations(t *testing.T) {
	cfg := Config{DelayMinSeconds: 2, DelayMaxSeconds: 5}
	assert.Equal(t, 2*time.Second, cfg.DelayMin())
	assert.Equal(t, 5*time.Second, cfg.DelayMax())
}
