package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Dataset  DatasetConfig
	Hotspots HotspotsConfig
	Models   ModelsConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	CORSOrigins  []string
	RateLimitRPS int
}

type DatasetConfig struct {
	Path           string
	ReloadInterval time.Duration // 0 disables reloading
}

type HotspotsConfig struct {
	File string // empty uses the built-in registry
}

type ModelsConfig struct {
	DiseaseDataPath     string
	NormalSymptomsPath  string
	HistoricalCasesPath string
	AnomalyThreshold    int
}

type LoggingConfig struct {
	Level string
}

const minReloadInterval = 10 * time.Second

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "localhost"),
			Port:         getEnvInt("SERVER_PORT", 8000),
			CORSOrigins:  getEnvList("CORS_ORIGINS", []string{"http://localhost:3000"}),
			RateLimitRPS: getEnvInt("RATE_LIMIT_RPS", 20),
		},
		Dataset: DatasetConfig{
			Path:           getEnv("DATASET_PATH", "./data/hospitals_gurgaon.csv"),
			ReloadInterval: getEnvDuration("DATASET_RELOAD_INTERVAL", 0),
		},
		Hotspots: HotspotsConfig{
			File: getEnv("HOTSPOTS_FILE", ""),
		},
		Models: ModelsConfig{
			DiseaseDataPath:     getEnv("DISEASE_DATA_PATH", "./data/disease_data.csv"),
			NormalSymptomsPath:  getEnv("NORMAL_SYMPTOMS_PATH", "./data/normal_symptoms.csv"),
			HistoricalCasesPath: getEnv("HISTORICAL_CASES_PATH", "./data/historical_cases.csv"),
			AnomalyThreshold:    getEnvInt("ANOMALY_THRESHOLD", 2),
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
		return fmt.Errorf("rate limit must be at least 1 request per second, got %d", c.Server.RateLimitRPS)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Dataset.Path == "" {
		return fmt.Errorf("DATASET_PATH must not be empty")
	}
	if c.Dataset.ReloadInterval < 0 {
		return fmt.Errorf("dataset reload interval must not be negative")
	}
	if c.Dataset.ReloadInterval > 0 && c.Dataset.ReloadInterval < minReloadInterval {
		return fmt.Errorf("dataset reload interval must be at least %s", minReloadInterval)
	}

	if c.Models.AnomalyThreshold < 0 {
		return fmt.Errorf("anomaly threshold must not be negative")
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

// getEnvList splits a comma separated value, dropping blanks.
func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
