package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/mrops-br/catalog-store/internal/app/dto"
	"github.com/mrops-br/catalog-store/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	ErrNotEnoughLabels = errors.New("could not produce enough unique labels")
	ErrInvalidOptions  = errors.New("categories and brands must be positive and products non-negative")
)

// Sizes are the fixed size keys, in display order.
var Sizes = []string{"xs", "s", "m", "l", "xl", "xxl"}

const maxLabelAttempts = 1000

// Options controls the shape of the generated catalog
type Options struct {
	Categories int
	Brands     int
	Products   int
	// Seed makes the output reproducible (apart from product ids); 0 picks a random seed.
	Seed uint64
}

// DefaultOptions returns 7 categories, 10 brands and 15 products.
func DefaultOptions() Options {
	return Options{Categories: 7, Brands: 10, Products: 15}
}

// Generator builds synthetic catalog documents
type Generator struct {
	opts    Options
	faker   *gofakeit.Faker
	title   cases.Caser
	printer *message.Printer
	tracer  trace.Tracer
	logger  *slog.Logger
}

// NewGenerator creates a generator
func NewGenerator(opts Options, tracer trace.Tracer, logger *slog.Logger) *Generator {
	return &Generator{
		opts:    opts,
		faker:   gofakeit.New(opts.Seed),
		title:   cases.Title(language.English),
		printer: message.NewPrinter(language.Russian),
		tracer:  tracer,
		logger:  logger,
	}
}

// Generate builds a new catalog
func (g *Generator) Generate(ctx context.Context) (*domain.Catalog, error) {
	ctx, span := g.tracer.Start(ctx, "Generator.Generate")
	defer span.End()

	if g.opts.Categories < 1 || g.opts.Brands < 1 || g.opts.Products < 0 {
		span.RecordError(ErrInvalidOptions)
		span.SetStatus(codes.Error, "Invalid options")
		return nil, ErrInvalidOptions
	}

	categories, err := g.uniqueLabels("category", g.opts.Categories, func() string {
		return g.startCase(g.faker.ProductCategory())
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Category generation failed")
		return nil, err
	}

	brands, err := g.uniqueLabels("brand", g.opts.Brands, g.faker.LastName)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Brand generation failed")
		return nil, err
	}

	sizes := make(domain.Labels, len(Sizes))
	for _, size := range Sizes {
		sizes["size-"+size] = strings.ToUpper(size)
	}

	catalog := &domain.Catalog{
		Categories: categories,
		Brands:     brands,
		Sizes:      sizes,
		Products:   make([]domain.Product, 0, g.opts.Products),
	}

	categoryKeys := sortedKeys(categories)
	brandKeys := sortedKeys(brands)
	sizeKeys := sortedKeys(sizes)
	for range g.opts.Products {
		category := g.pick(categoryKeys)
		catalog.Products = append(catalog.Products,
			g.product(categories[category], category, g.pick(brandKeys), g.pick(sizeKeys)))
	}

	span.SetAttributes(attribute.Int("catalog.product_count", len(catalog.Products)))
	g.logger.InfoContext(ctx, "Catalog generated",
		slog.Int("categories", len(categories)),
		slog.Int("brands", len(brands)),
		slog.Int("products", len(catalog.Products)),
	)

	span.SetStatus(codes.Ok, "Catalog generated")
	return catalog, nil
}

func (g *Generator) product(categoryLabel, category, brand, size string) domain.Product {
	rawPrice := 1000 * float64(g.faker.IntRange(1, 10))
	discount := float64(g.faker.IntRange(0, 5)) / 10
	rawSalePrice := rawPrice * (1 - discount)

	words := make([]string, g.faker.IntRange(2, 8))
	for i := range words {
		words[i] = g.faker.Word()
	}

	return domain.Product{
		ID:           uuid.NewString(),
		Name:         g.startCase(strings.Join(words, " ")),
		RawPrice:     rawPrice,
		RawSalePrice: rawSalePrice,
		Price:        g.FormatPrice(rawPrice),
		SalePrice:    g.FormatPrice(rawSalePrice),
		Hot:          g.faker.Float64() < 0.3,
		InStock:      g.faker.Float64() < 0.7,
		Category:     category,
		Brand:        brand,
		Size:         size,
		Thumbnail:    thumbnailURL(categoryLabel),
	}
}

// FormatPrice renders a price as Russian-locale roubles without fraction digits.
func (g *Generator) FormatPrice(price float64) string {
	return g.printer.Sprintf("%d ₽", int64(math.Round(price)))
}

func (g *Generator) uniqueLabels(prefix string, n int, next func() string) (domain.Labels, error) {
	labels := make(domain.Labels, n)
	seen := make(map[string]struct{}, n)
	for attempts := 0; len(seen) < n; attempts++ {
		if attempts == maxLabelAttempts {
			return nil, fmt.Errorf("%w: wanted %d %s labels, got %d", ErrNotEnoughLabels, n, prefix, len(seen))
		}
		label := next()
		if _, dup := seen[label]; dup || label == "" {
			continue
		}
		labels[fmt.Sprintf("%s-%d", prefix, len(seen))] = label
		seen[label] = struct{}{}
	}
	return labels, nil
}

func (g *Generator) pick(keys []string) string {
	return keys[g.faker.IntRange(0, len(keys)-1)]
}

// startCase keeps runs of letters and digits, capitalizes each and joins them
// with single spaces.
func (g *Generator) startCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return g.title.String(strings.Join(words, " "))
}

func sortedKeys(labels domain.Labels) []string {
	return slices.Sorted(maps.Keys(labels))
}

func thumbnailURL(categoryLabel string) string {
	u := url.URL{
		Scheme:   "https",
		Host:     "source.unsplash.com",
		Path:     "/random/400x300",
		RawQuery: "product," + url.PathEscape(strings.ToLower(categoryLabel)),
	}
	return u.String()
}

// WriteFile generates a catalog and writes it as JSON to path, creating
// parent directories as needed.
func (g *Generator) WriteFile(ctx context.Context, path string) (*domain.Catalog, error) {
	catalog, err := g.Generate(ctx)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create fixture directory: %w", err)
	}

	data, err := json.Marshal(dto.ToCatalogDocument(catalog))
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write fixture: %w", err)
	}

	g.logger.InfoContext(ctx, "Catalog fixture written", slog.String("path", path))
	return catalog, nil
}
