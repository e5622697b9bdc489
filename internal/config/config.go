// Package config loads process configuration from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port         int
	LogLevel     string
	LogPretty    bool
	DataDir      string
	CacheDB      string // empty disables the source cache
	FetchTimeout time.Duration
	Sources      Sources
}

// Sources holds the URL or file path of each named dataset.
type Sources struct {
	MarketStructure string
	Regulators      string
	IPP             string
	Unbundling      string
	VRE             string
	WorldMap        string
}

const defaultWorldMap = "https://cdn.jsdelivr.net/npm/world-atlas@2/countries-110m.json"

// Load reads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	dataDir := getEnv("STREACS_DATA_DIR", "data")

	cfg := &Config{
		Port:         getEnvAsInt("STREACS_PORT", 8080),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogPretty:    getEnvAsBool("LOG_PRETTY", false),
		DataDir:      dataDir,
		CacheDB:      getEnv("STREACS_CACHE_DB", ""),
		FetchTimeout: getEnvAsDuration("STREACS_FETCH_TIMEOUT", 15*time.Second),
		Sources: Sources{
			MarketStructure: getEnv("STREACS_MARKET_SOURCE", filepath.Join(dataDir, "power-market-structure-wholesale.json")),
			Regulators:      getEnv("STREACS_REGULATOR_SOURCE", filepath.Join(dataDir, "sector-regulators.json")),
			IPP:             getEnv("STREACS_IPP_SOURCE", filepath.Join(dataDir, "ipp-entry.json")),
			Unbundling:      getEnv("STREACS_UNBUNDLING_SOURCE", filepath.Join(dataDir, "unbundling.json")),
			VRE:             getEnv("STREACS_VRE_SOURCE", "share-of-electricity-production-from-solar-and-wind.json"),
			WorldMap:        getEnv("STREACS_WORLDMAP_SOURCE", defaultWorldMap),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the values Load cannot default its way out of.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %s", c.FetchTimeout)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
