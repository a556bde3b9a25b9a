// Command storefront loads the catalog, applies filters and prints the
// resulting view.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/mrops-br/catalog-store/internal/app/store"
	"github.com/mrops-br/catalog-store/internal/domain"
	"github.com/mrops-br/catalog-store/internal/infrastructure/config"
	"github.com/mrops-br/catalog-store/internal/infrastructure/source"
	"github.com/mrops-br/catalog-store/internal/infrastructure/telemetry"
)

type options struct {
	search     string
	categories string
	brands     string
	sizes      string
	min        string
	max        string
	all        bool
}

func main() {
	cfg := config.LoadConfig()

	var opts options
	url := flag.String("url", cfg.Catalog.SourceURL, "catalog base URL")
	flag.StringVar(&opts.search, "search", "", "case-sensitive name substring")
	flag.StringVar(&opts.categories, "categories", "", "comma separated category keys")
	flag.StringVar(&opts.brands, "brands", "", "comma separated brand keys")
	flag.StringVar(&opts.sizes, "sizes", "", "comma separated size keys")
	flag.StringVar(&opts.min, "min", "", "minimum sale price")
	flag.StringVar(&opts.max, "max", "", "maximum sale price")
	flag.BoolVar(&opts.all, "all", false, "select every known category, brand and size")
	flag.Parse()

	telem, err := telemetry.NewTelemetry(&cfg.OTLP, os.Stderr)
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = telem.Shutdown(shutdownCtx)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracer := telem.TracerProvider.Tracer("storefront")
	meter := telem.MeterProvider.Meter("storefront")

	src, err := source.NewHTTPSource(*url, nil, tracer, telem.Logger)
	if err != nil {
		stop()
		log.Fatalf("Failed to create catalog source: %v", err)
	}
	catalogStore := store.NewCatalogStore(src, tracer, meter, telem.Logger)

	if err := run(ctx, catalogStore, opts); err != nil {
		fmt.Fprintln(os.Stderr, "storefront:", err)
		stop()
		os.Exit(1)
	}
	render(os.Stdout, catalogStore)
}

// run loads the catalog and applies the requested filters
func run(ctx context.Context, s *store.CatalogStore, opts options) error {
	if err := s.Load(ctx); err != nil {
		return fmt.Errorf("catalog unavailable: %w", err)
	}

	if opts.all {
		for _, dim := range domain.Dimensions {
			if err := s.SelectAll(dim); err != nil {
				return err
			}
		}
	}
	if keys := splitKeys(opts.categories); keys != nil {
		s.SetCategories(keys...)
	}
	if keys := splitKeys(opts.brands); keys != nil {
		s.SetBrands(keys...)
	}
	if keys := splitKeys(opts.sizes); keys != nil {
		s.SetSizes(keys...)
	}
	s.SetSearchQuery(opts.search)

	priceRange := s.Filters().PriceRange
	if opts.min != "" {
		v, err := strconv.ParseFloat(opts.min, 64)
		if err != nil {
			return fmt.Errorf("invalid -min: %w", err)
		}
		priceRange.Min = v
	}
	if opts.max != "" {
		v, err := strconv.ParseFloat(opts.max, 64)
		if err != nil {
			return fmt.Errorf("invalid -max: %w", err)
		}
		priceRange.Max = v
	}
	s.SetPriceRange(priceRange)
	return nil
}

func splitKeys(list string) []string {
	if list == "" {
		return nil
	}
	var keys []string
	for _, k := range strings.Split(list, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
