package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server  ServerConfig
	DB      DatabaseConfig
	Assets  AssetsConfig
	Sweep   SweepConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	RateLimitRPS int
	AllowOrigins []string
}

type DatabaseConfig struct {
	Path string
}

type AssetsConfig struct {
	Driver      string // file or mem
	Dir         string
	MaxUploadMB int
}

type SweepConfig struct {
	Workers    int
	BufferSize int
	MinAge     time.Duration
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "localhost"),
			Port:         getEnvInt("SERVER_PORT", 8080),
			RateLimitRPS: getEnvInt("RATE_LIMIT_RPS", 5),
			AllowOrigins: getEnvList("CORS_ALLOW_ORIGINS", []string{"*"}),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/evacuation.db"),
		},
		Assets: AssetsConfig{
			Driver:      getEnv("ASSETS_DRIVER", "file"),
			Dir:         getEnv("ASSETS_DIR", "./data/image"),
			MaxUploadMB: getEnvInt("ASSETS_MAX_UPLOAD_MB", 10),
		},
		Sweep: SweepConfig{
			Workers:    getEnvInt("SWEEP_WORKERS", 4),
			BufferSize: getEnvInt("SWEEP_BUFFER_SIZE", 32),
			MinAge:     getEnvDuration("SWEEP_MIN_AGE", time.Hour),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.RateLimitRPS < 1 {
		return fmt.Errorf("rate limit must be at least 1 req/s")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Assets.Driver != "file" && c.Assets.Driver != "mem" {
		return fmt.Errorf("invalid assets driver: %s", c.Assets.Driver)
	}
	if c.Assets.MaxUploadMB < 1 {
		return fmt.Errorf("max upload size must be at least 1 MB")
	}

	if c.Sweep.Workers < 1 {
		return fmt.Errorf("sweep workers must be at least 1")
	}
	if c.Sweep.MinAge < 0 {
		return fmt.Errorf("sweep min age must not be negative")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
