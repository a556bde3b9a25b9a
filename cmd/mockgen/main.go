// Command mockgen writes a synthetic catalog fixture for the storefront.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/mrops-br/catalog-store/internal/app/generator"
	"github.com/mrops-br/catalog-store/internal/infrastructure/config"
	"github.com/mrops-br/catalog-store/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace/noop"
)

func main() {
	cfg := config.LoadConfig()

	out := flag.String("out", cfg.Catalog.FixturePath, "fixture output path")
	seed := flag.Uint64("seed", cfg.Catalog.Seed, "random seed (0 for random)")
	categories := flag.Int("categories", cfg.Catalog.Categories, "number of categories")
	brands := flag.Int("brands", cfg.Catalog.Brands, "number of brands")
	products := flag.Int("products", cfg.Catalog.Products, "number of products")
	flag.Parse()

	logger := telemetry.NewLogger(&cfg.OTLP, os.Stderr)
	tp := noop.NewTracerProvider()

	gen := generator.NewGenerator(generator.Options{
		Categories: *categories,
		Brands:     *brands,
		Products:   *products,
		Seed:       *seed,
	}, tp.Tracer("mockgen"), logger)

	if _, err := gen.WriteFile(context.Background(), *out); err != nil {
		log.Fatalf("Failed to write catalog fixture: %v", err)
	}
}
