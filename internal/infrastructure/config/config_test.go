package config

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	if cfg.Server.Port != "8080" || cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.OTLP.Enabled {
		t.Error("OTLP export should be disabled by default")
	}
	if cfg.Catalog.FixturePath != "public/api/products.json" || !cfg.Catalog.GenerateOnStart {
		t.Errorf("catalog = %+v", cfg.Catalog)
	}
	if cfg.Catalog.Categories != 7 || cfg.Catalog.Brands != 10 || cfg.Catalog.Products != 15 {
		t.Errorf("catalog counts = %+v", cfg.Catalog)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("CATALOG_SOURCE_URL", "http://fixtures:8080")
	t.Setenv("CATALOG_GENERATE_ON_START", "false")
	t.Setenv("CATALOG_SEED", "42")
	t.Setenv("CATALOG_PRODUCTS", "not-a-number")

	cfg := LoadConfig()

	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
	if !cfg.OTLP.Enabled {
		t.Error("expected OTLP export to be enabled")
	}
	if cfg.Catalog.SourceURL != "http://fixtures:8080" || cfg.Catalog.GenerateOnStart || cfg.Catalog.Seed != 42 {
		t.Errorf("catalog = %+v", cfg.Catalog)
	}
	if cfg.Catalog.Products != 15 {
		t.Errorf("invalid CATALOG_PRODUCTS should fall back to the default, got %d", cfg.Catalog.Products)
	}
}
