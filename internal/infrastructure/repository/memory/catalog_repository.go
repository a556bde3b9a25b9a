package memory

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/mrops-br/catalog-store/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// CatalogRepository is an in-memory implementation of domain.CatalogRepository
// holding the document the fixture server hands out.
type CatalogRepository struct {
	mu      sync.RWMutex
	catalog *domain.Catalog
	byID    map[string]int
	tracer  trace.Tracer
	logger  *slog.Logger
}

// NewCatalogRepository creates an empty in-memory catalog repository
func NewCatalogRepository(tracer trace.Tracer, logger *slog.Logger) *CatalogRepository {
	return &CatalogRepository{
		byID:   make(map[string]int),
		tracer: tracer,
		logger: logger,
	}
}

// Replace swaps in a new catalog document
func (r *CatalogRepository) Replace(ctx context.Context, catalog *domain.Catalog) error {
	ctx, span := r.tracer.Start(ctx, "CatalogRepository.Replace")
	defer span.End()

	if err := catalog.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid catalog")
		return err
	}

	byID := make(map[string]int, len(catalog.Products))
	for i, p := range catalog.Products {
		byID[p.ID] = i
	}

	r.mu.Lock()
	r.catalog = catalog
	r.byID = byID
	r.mu.Unlock()

	span.SetAttributes(attribute.Int("product.count", len(catalog.Products)))
	r.logger.InfoContext(ctx, "Catalog stored in repository",
		slog.Int("products", len(catalog.Products)),
	)

	span.SetStatus(codes.Ok, "Catalog replaced")
	return nil
}

// Catalog returns the current document
func (r *CatalogRepository) Catalog(ctx context.Context) (*domain.Catalog, error) {
	_, span := r.tracer.Start(ctx, "CatalogRepository.Catalog")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.catalog == nil {
		span.RecordError(domain.ErrCatalogNotLoaded)
		span.SetStatus(codes.Error, "Catalog not loaded")
		return nil, domain.ErrCatalogNotLoaded
	}

	span.SetStatus(codes.Ok, "Catalog found")
	return r.catalog, nil
}

// FindProductByID retrieves a product by ID
func (r *CatalogRepository) FindProductByID(ctx context.Context, id string) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "CatalogRepository.FindProductByID")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	r.mu.RLock()
	defer r.mu.RUnlock()

	i, exists := r.byID[id]
	if !exists {
		span.RecordError(domain.ErrProductNotFound)
		span.SetStatus(codes.Error, "Product not found")
		r.logger.WarnContext(ctx, "Product not found",
			slog.String("product_id", id),
		)
		return nil, domain.ErrProductNotFound
	}

	product := r.catalog.Products[i]
	span.SetStatus(codes.Ok, "Product found")
	return &product, nil
}

// FindAllProducts returns the products in document order
func (r *CatalogRepository) FindAllProducts(ctx context.Context) ([]domain.Product, error) {
	_, span := r.tracer.Start(ctx, "CatalogRepository.FindAllProducts")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.catalog == nil {
		span.RecordError(domain.ErrCatalogNotLoaded)
		span.SetStatus(codes.Error, "Catalog not loaded")
		return nil, domain.ErrCatalogNotLoaded
	}

	products := slices.Clone(r.catalog.Products)
	span.SetAttributes(attribute.Int("product.count", len(products)))
	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return products, nil
}
