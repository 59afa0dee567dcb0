package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Session store backends.
const (
	SessionStoreRedis  = "redis"
	SessionStoreMemory = "memory"
)

// Storefront is the full runtime configuration of the storefront service.
type Storefront struct {
	Port           string
	AllowedOrigins []string

	// Primary is the local API; Fallback the hosted one.
	PrimaryAPIURL    string
	PrimaryHealthURL string
	FallbackAPIURL   string
	ProbeTimeout     time.Duration
	RequestTimeout   time.Duration

	ConsulAddr     string
	ConsulToken    string
	PrimaryService string // when set, the primary host is discovered in Consul
	RegisterSelf   bool
	ServiceHost    string

	SessionStore  string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionMaxAge time.Duration
	SecureCookies bool

	// Activity events go to Kafka only when brokers are set.
	KafkaBrokers   string
	ImageURLExpiry time.Duration
}

// Load reads the storefront configuration from the environment.
func Load() (*Storefront, error) {
	if err := ValidateEnv(requiredEnv()); err != nil {
		return nil, err
	}

	cfg := &Storefront{
		Port:           GetEnvOrDefault("STOREFRONT_PORT", "8080"),
		AllowedOrigins: GetEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),

		PrimaryAPIURL:    GetEnvOrDefault("PRIMARY_API_URL", "http://localhost:5000/api"),
		PrimaryHealthURL: GetEnvOrDefault("PRIMARY_HEALTH_URL", ""),
		FallbackAPIURL:   GetEnvOrDefault("FALLBACK_API_URL", "https://every-2.onrender.com/api"),
		ProbeTimeout:     GetEnvDuration("BACKEND_PROBE_TIMEOUT", 3*time.Second),
		RequestTimeout:   GetEnvDuration("BACKEND_REQUEST_TIMEOUT", 15*time.Second),

		ConsulAddr:     GetEnvOrDefault("CONSUL_HTTP_ADDR", ""),
		ConsulToken:    GetEnvOrDefault("CONSUL_HTTP_TOKEN", ""),
		PrimaryService: GetEnvOrDefault("BACKEND_CONSUL_SERVICE", ""),
		RegisterSelf:   GetEnvBool("CONSUL_REGISTER", false),
		ServiceHost:    GetEnvOrDefault("STOREFRONT_HOST", ""),

		SessionStore:  GetEnvOrDefault("SESSION_STORE", SessionStoreRedis),
		RedisAddr:     GetEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: GetEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       GetEnvInt("REDIS_DB", 0),
		SessionMaxAge: GetEnvDuration("SESSION_MAX_AGE", 7*24*time.Hour),
		SecureCookies: GetEnvBool("SESSION_SECURE_COOKIE", false),

		KafkaBrokers:   GetEnvOrDefault("KAFKA_BROKERS", ""),
		ImageURLExpiry: GetEnvDuration("IMAGE_URL_EXPIRY", time.Hour),
	}

	if cfg.PrimaryHealthURL == "" {
		health, err := HealthURLFor(cfg.PrimaryAPIURL)
		if err != nil {
			return nil, err
		}
		cfg.PrimaryHealthURL = health
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Storefront) Validate() error {
	if c.FallbackAPIURL == "" {
		return errors.New("FALLBACK_API_URL is required")
	}
	if c.PrimaryService == "" && c.PrimaryAPIURL == "" {
		return errors.New("either PRIMARY_API_URL or BACKEND_CONSUL_SERVICE is required")
	}
	if (c.PrimaryService != "" || c.RegisterSelf) && c.ConsulAddr == "" {
		return errors.New("CONSUL_HTTP_ADDR is required when Consul discovery or registration is enabled")
	}
	if c.RegisterSelf && c.ServiceHost == "" {
		return errors.New("STOREFRONT_HOST is required when CONSUL_REGISTER is enabled")
	}
	switch c.SessionStore {
	case SessionStoreRedis, SessionStoreMemory:
	default:
		return fmt.Errorf("unknown SESSION_STORE %q", c.SessionStore)
	}
	if c.ProbeTimeout <= 0 {
		return errors.New("BACKEND_PROBE_TIMEOUT must be positive")
	}
	return nil
}

// HealthURLFor derives the liveness URL of an API base URL: the health
// endpoint sits at the host root, next to the /api prefix.
func HealthURLFor(apiURL string) (string, error) {
	u, err := url.Parse(apiURL)
	if err != nil {
		return "", fmt.Errorf("invalid API URL %q: %w", apiURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("API URL %q must be absolute", apiURL)
	}
	return (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/health"}).String(), nil
}
