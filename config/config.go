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
	Poller  PollerConfig
	Weather WeatherConfig
	OpenAI  OpenAIConfig
}

type ServerConfig struct {
	Port int
}

type PollerConfig struct {
	CronSpec  string
	Locations []string
	Retention time.Duration
}

type WeatherConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type OpenAIConfig struct {
	APIKey string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		Poller: PollerConfig{
			CronSpec:  getEnv("POLL_CRON", "*/10 * * * *"),
			Locations: getEnvList("POLL_LOCATIONS", []string{"Delhi"}),
			Retention: getEnvDuration("NOTIFICATION_RETENTION", 7*24*time.Hour),
		},
		Weather: WeatherConfig{
			BaseURL: getEnv("WEATHER_API_URL", "https://api.waqi.info"),
			APIKey:  os.Getenv("WEATHER_API_KEY"),
			Timeout: getEnvDuration("WEATHER_TIMEOUT", 10*time.Second),
		},
		OpenAI: OpenAIConfig{
			APIKey: os.Getenv("OPENAI_API_KEY"),
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
	if len(c.Poller.Locations) == 0 {
		return fmt.Errorf("at least one poll location is required")
	}
	if c.Poller.Retention < time.Hour {
		return fmt.Errorf("notification retention must be at least 1 hour")
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
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
