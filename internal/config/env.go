// Package config loads storefront settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ValidateEnv reports every name in vars that is unset or empty.
func ValidateEnv(vars []string) error {
	var missing []string
	for _, name := range vars {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// requiredEnv lists the variables that have no usable default once a
// feature is switched on.
func requiredEnv() []string {
	var vars []string
	register := GetEnvBool("CONSUL_REGISTER", false)
	if register || os.Getenv("BACKEND_CONSUL_SERVICE") != "" {
		vars = append(vars, "CONSUL_HTTP_ADDR")
	}
	if register {
		vars = append(vars, "STOREFRONT_HOST")
	}
	if os.Getenv("SESSION_STORE") == SessionStoreRedis {
		vars = append(vars, "REDIS_ADDR")
	}
	return vars
}

// GetEnvOrDefault retrieves an environment variable or returns a default value
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvDuration parses a Go duration string, falling back on empty or
// unparsable input.
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// GetEnvInt parses an integer, falling back on empty or unparsable input.
func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// GetEnvBool reports whether key is set to a truthy value.
func GetEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// GetEnvList splits a comma separated variable, dropping blanks.
func GetEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
