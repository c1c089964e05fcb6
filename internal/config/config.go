package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Config groups the settings of the API and web services.
type Config struct {
	Server ServerConfig
	Web    WebConfig
	Log    LogConfig
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	web, err := loadWebConfig()
	if err != nil {
		return nil, err
	}

	logCfg, err := loadLogConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Web: web, Log: logCfg}, nil
}

// ServerConfig describes the API service.
type ServerConfig struct {
	Addr            string
	AllowedOrigins  []string
	SeedPosts       bool
	ShutdownTimeout time.Duration
}

// WebConfig describes the page-rendering service.
type WebConfig struct {
	Addr       string
	APIBaseURL string
}

// LogConfig controls the logrus standard logger.
type LogConfig struct {
	Level log.Level
}

// Apply configures the standard logger.
func (c LogConfig) Apply() {
	log.SetLevel(c.Level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}

func loadServerConfig() (ServerConfig, error) {
	addr, err := parseAddr("PORT", "5002")
	if err != nil {
		return ServerConfig{}, err
	}

	seed, err := parseBoolEnv("SEED_POSTS", true)
	if err != nil {
		return ServerConfig{}, err
	}

	shutdown := 10 * time.Second
	if seconds, err := parseOptionalIntEnv("SHUTDOWN_TIMEOUT"); err != nil {
		return ServerConfig{}, err
	} else if seconds != nil {
		if *seconds < 1 {
			return ServerConfig{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT value %d: must be positive", *seconds)
		}
		shutdown = time.Duration(*seconds) * time.Second
	}

	return ServerConfig{
		Addr:            addr,
		AllowedOrigins:  splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		SeedPosts:       seed,
		ShutdownTimeout: shutdown,
	}, nil
}

func loadWebConfig() (WebConfig, error) {
	addr, err := parseAddr("WEB_PORT", "5001")
	if err != nil {
		return WebConfig{}, err
	}

	return WebConfig{
		Addr:       addr,
		APIBaseURL: strings.TrimRight(getEnvOrDefault("API_BASE_URL", "http://localhost:5002/api"), "/"),
	}, nil
}

func loadLogConfig() (LogConfig, error) {
	raw := getEnvOrDefault("LOG_LEVEL", "info")
	level, err := log.ParseLevel(raw)
	if err != nil {
		return LogConfig{}, fmt.Errorf("invalid LOG_LEVEL value %q: %w", raw, err)
	}
	return LogConfig{Level: level}, nil
}

// parseAddr accepts a bare port ("5002") or a full address (":5002",
// "127.0.0.1:5002").
func parseAddr(key, defaultPort string) (string, error) {
	port := getEnvOrDefault(key, defaultPort)

	if strings.Contains(port, ":") {
		return port, nil
	}

	if strings.Contains(port, " ") {
		return "", fmt.Errorf("invalid %s value: %q", key, port)
	}

	return ":" + port, nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
