// Package config loads the example server's settings from environment
// variables, with defaults and validation. A .env file, when present, is read
// first and never overrides variables that are already set.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// metricNameRE is the Prometheus metric name syntax; SERVICE_NAME becomes
// the namespace prefix of every exported metric.
var metricNameRE = regexp.MustCompile(`^[a-zA-Z_:][a-zA-Z0-9_:]*$`)

// Config holds all configuration values for the example server.
type Config struct {
	Port        string // PORT
	ServiceName string // SERVICE_NAME, used as metrics namespace
	LogLevel    string // LOG_LEVEL: debug|info|warn|error
	LogPretty   bool   // LOG_PRETTY: console output instead of JSON lines

	Codec          string // CODEC: json|jsoniter
	MetricsEnabled bool   // METRICS_ENABLED: serve /metrics
}

// Load reads an optional .env file at envFile (ignored when empty or
// missing), then the environment, applies defaults and validates the result.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Config{
		Port:           getenv("PORT", "8080"),
		ServiceName:    getenv("SERVICE_NAME", "faultdemo"),
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		Codec:          strings.ToLower(getenv("CODEC", "json")),
		MetricsEnabled: getbool("METRICS_ENABLED", true),
	}

	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error")
	}
	switch cfg.Codec {
	case "json", "jsoniter":
	default:
		return cfg, errors.New("CODEC must be one of: json, jsoniter")
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return cfg, fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
	}
	if !metricNameRE.MatchString(cfg.ServiceName) {
		return cfg, fmt.Errorf("SERVICE_NAME must be a valid metric namespace, got %q", cfg.ServiceName)
	}
	return cfg, nil
}

// Addr returns the listen address for Port.
func (c Config) Addr() string { return ":" + c.Port }

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
