package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_NAME", "minutes_test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "minutes_test", cfg.Database.Name)
	assert.Equal(t, "migrations", cfg.Database.MigrationsDir)
	assert.Equal(t, 4, cfg.Submission.Concurrency)
	assert.Equal(t, 720*time.Hour, cfg.Submission.GuardTTL)
	assert.Equal(t, 10*time.Second, cfg.Worker.PollInterval)
	assert.Equal(t, "", cfg.GetRedisAddr())
	assert.False(t, cfg.Auth.Enabled)
}

func TestLoad_EnvconfigSections(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("AUTH_PASSWORD", "s3cret")
	t.Setenv("GROQ_API_KEY", "gsk")
	t.Setenv("ASSEMBLYAI_API_KEY", "aai")
	t.Setenv("WORKER_COUNT", "5")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("ALLOWED_ORIGINS", "http://a, http://b")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Auth.Enabled)
	assert.Equal(t, "admin", cfg.Auth.Username)
	assert.True(t, cfg.AIEnabled())
	assert.Equal(t, 5, cfg.Worker.Count)
	assert.Equal(t, "cache:6379", cfg.GetRedisAddr())
	assert.Equal(t, []string{"http://a", "http://b"}, cfg.Server.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Submission: SubmissionConfig{Concurrency: 1}}
	require.NoError(t, cfg.Validate())

	cfg.Auth.Enabled = true
	assert.Error(t, cfg.Validate())

	cfg.Auth.Password = "pw"
	cfg.JWT.AccessSecret = "secret"
	assert.NoError(t, cfg.Validate())

	cfg.Submission.Concurrency = 0
	assert.Error(t, cfg.Validate())
}
