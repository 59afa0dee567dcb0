package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthURLFor(t *testing.T) {
	got, err := HealthURLFor("http://localhost:5000/api")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/health", got)

	_, err = HealthURLFor("localhost:5000")
	assert.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PRIMARY_API_URL", "")
	t.Setenv("PRIMARY_HEALTH_URL", "")
	t.Setenv("SESSION_STORE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/api", cfg.PrimaryAPIURL)
	assert.Equal(t, "http://localhost:5000/health", cfg.PrimaryHealthURL)
	assert.Equal(t, "https://every-2.onrender.com/api", cfg.FallbackAPIURL)
	assert.Equal(t, 3*time.Second, cfg.ProbeTimeout)
	assert.Equal(t, SessionStoreRedis, cfg.SessionStore)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PRIMARY_API_URL", "http://api.internal:9000/api")
	t.Setenv("BACKEND_PROBE_TIMEOUT", "500ms")
	t.Setenv("SESSION_STORE", "memory")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://shop.example, ,https://admin.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://api.internal:9000/health", cfg.PrimaryHealthURL)
	assert.Equal(t, 500*time.Millisecond, cfg.ProbeTimeout)
	assert.Equal(t, SessionStoreMemory, cfg.SessionStore)
	assert.Equal(t, []string{"https://shop.example", "https://admin.example"}, cfg.AllowedOrigins)
}

func TestLoad_RejectsUnknownStore(t *testing.T) {
	t.Setenv("SESSION_STORE", "cookie")

	_, err := Load()
	assert.ErrorContains(t, err, "SESSION_STORE")
}

func TestValidate_ConsulDiscoveryNeedsAddress(t *testing.T) {
	cfg := &Storefront{
		FallbackAPIURL: "https://x/api",
		PrimaryService: "shop-api",
		SessionStore:   SessionStoreMemory,
		ProbeTimeout:   time.Second,
	}
	assert.ErrorContains(t, cfg.Validate(), "CONSUL_HTTP_ADDR")
}

func TestValidateEnv(t *testing.T) {
	t.Setenv("SF_PRESENT", "1")
	t.Setenv("SF_MISSING", "")

	err := ValidateEnv([]string{"SF_PRESENT", "SF_MISSING"})
	assert.ErrorContains(t, err, "SF_MISSING")
	assert.NotContains(t, err.Error(), "SF_PRESENT")
}

func TestLoad_RegistrationNeedsConsulAndHost(t *testing.T) {
	t.Setenv("CONSUL_REGISTER", "true")
	t.Setenv("CONSUL_HTTP_ADDR", "")
	t.Setenv("STOREFRONT_HOST", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CONSUL_HTTP_ADDR")
	assert.Contains(t, err.Error(), "STOREFRONT_HOST")
}

func TestLoad_ExplicitRedisStoreNeedsAddress(t *testing.T) {
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("REDIS_ADDR", "")

	_, err := Load()
	assert.ErrorContains(t, err, "REDIS_ADDR")

	t.Setenv("REDIS_ADDR", "cache:6379")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
}
