package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	// Set test environment variables
	os.Setenv("SERVER_PORT", "8081")
	os.Setenv("DB_HOST", "db.internal")
	os.Setenv("DB_USER", "testuser")
	os.Setenv("DB_PASSWORD", "testpass")
	os.Setenv("DB_NAME", "testdb")
	os.Setenv("REDIS_DB", "3")
	os.Setenv("LOCK_TTL", "3s")
	os.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_test")
	os.Setenv("WEBHOOK_TOLERANCE", "90s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	assert.NotNil(t, cfg)
	assert.Equal(t, "8081", cfg.ServerPort)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "testuser", cfg.DBUser)
	assert.Equal(t, "testpass", cfg.DBPassword)
	assert.Equal(t, "testdb", cfg.DBName)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 3*time.Second, cfg.LockTTL)
	assert.Equal(t, "whsec_test", cfg.StripeWebhookSecret)
	assert.Equal(t, 90*time.Second, cfg.WebhookTolerance)

	// Cleanup
	for _, key := range []string{"SERVER_PORT", "DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME", "REDIS_DB", "LOCK_TTL", "STRIPE_WEBHOOK_SECRET", "WEBHOOK_TOLERANCE"} {
		os.Unsetenv(key)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("DB_PORT")
	os.Unsetenv("LOCK_TTL")
	os.Unsetenv("WEBHOOK_TOLERANCE")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, 10*time.Second, cfg.LockTTL)
	assert.Equal(t, 5*time.Minute, cfg.WebhookTolerance)
}

func TestLoadConfig_MalformedNumbersFallBack(t *testing.T) {
	os.Setenv("REDIS_DB", "not-a-number")
	os.Setenv("LOCK_TTL", "soon")
	defer os.Unsetenv("REDIS_DB")
	defer os.Unsetenv("LOCK_TTL")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 10*time.Second, cfg.LockTTL)
}
