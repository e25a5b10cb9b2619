package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the settings shared by all service binaries. Every
// service reads the same database; only the port differs per process.
type Config struct {
	// HTTP servers
	CostsPort string
	UsersPort string
	AdminPort string

	// Database
	SQLiteDBPath string

	// AMQP audit transport. When AMQPURL is empty, audit records are
	// written straight to the logs table.
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Team listing served by the admin about endpoint, as
	// comma-separated "First Last" pairs.
	Team []string

	// Logging
	LogLevel string
}

func Load() *Config {
	// .env is for local development; missing file is fine.
	_ = godotenv.Load()

	cfg := &Config{
		CostsPort: getEnv("COSTS_PORT", "3002"),
		UsersPort: getEnv("USERS_PORT", "3001"),
		AdminPort: getEnv("ADMIN_PORT", "3003"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/costmanager.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "costmanager"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "audit_logs"),

		Team: splitList(getEnv("TEAM_MEMBERS", "")),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return cfg
}

// Validate checks the configuration and returns one error describing
// every problem found.
func (c *Config) Validate() error {
	var errors []string

	for name, port := range map[string]string{
		"costs port": c.CostsPort,
		"users port": c.UsersPort,
		"admin port": c.AdminPort,
	} {
		if p, err := strconv.Atoi(port); err != nil {
			errors = append(errors, fmt.Sprintf("invalid %s '%s': must be a number", name, port))
		} else if p < 1 || p > 65535 {
			errors = append(errors, fmt.Sprintf("invalid %s %d: must be between 1 and 65535", name, p))
		}
	}

	if c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty")
	} else {
		dir := filepath.Dir(c.SQLiteDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// AuditViaAMQP reports whether audit events should go through the
// message broker instead of the direct store recorder.
func (c *Config) AuditViaAMQP() bool {
	return c.AMQPURL != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
