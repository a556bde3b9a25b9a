package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	OTLP    OTLPConfig
	Catalog CatalogConfig
}

type ServerConfig struct {
	Port string
	Host string
}

type OTLPConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
	Environment string
}

type CatalogConfig struct {
	// SourceURL is the base URL the storefront loads /api/products.json from.
	SourceURL       string
	FixturePath     string
	GenerateOnStart bool
	Seed            uint64
	Categories      int
	Brands          int
	Products        int
}

// LoadConfig loads configuration from environment variables, reading a .env
// file first when one is present.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to read .env file", slog.String("error", err.Error()))
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		OTLP: OTLPConfig{
			Enabled:     getEnvBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "catalog-store"),
			Environment: getEnv("OTEL_ENVIRONMENT", "development"),
		},
		Catalog: CatalogConfig{
			SourceURL:       getEnv("CATALOG_SOURCE_URL", "http://localhost:8080"),
			FixturePath:     getEnv("CATALOG_FIXTURE_PATH", "public/api/products.json"),
			GenerateOnStart: getEnvBool("CATALOG_GENERATE_ON_START", true),
			Seed:            uint64(getEnvInt("CATALOG_SEED", 0)),
			Categories:      getEnvInt("CATALOG_CATEGORIES", 7),
			Brands:          getEnvInt("CATALOG_BRANDS", 10),
			Products:        getEnvInt("CATALOG_PRODUCTS", 15),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value < 0 {
		return defaultValue
	}
	return value
}
