package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mrops-br/catalog-store/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// State is a point-in-time copy of the store.
type State struct {
	Data    Data
	Filters domain.FilterCriteria
	IsError bool
}

func initialState() State {
	return State{Filters: domain.DefaultFilterCriteria()}
}

// CatalogStore loads a catalog from a source and derives the filtered and
// aggregated views a storefront renders. It is owned by the consumer and
// passed by reference.
type CatalogStore struct {
	mu         sync.RWMutex
	state      State
	generation uint64

	source domain.CatalogSource
	tracer trace.Tracer
	logger *slog.Logger

	loadsCounter    metric.Int64Counter
	loadDuration    metric.Float64Histogram
	productsGauge   metric.Int64Gauge
	filterRequested metric.Int64Counter
}

// NewCatalogStore creates a store in its empty state
func NewCatalogStore(
	source domain.CatalogSource,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *CatalogStore {
	loadsCounter, _ := meter.Int64Counter(
		"catalog.loads",
		metric.WithDescription("Total number of catalog load attempts"),
	)

	loadDuration, _ := meter.Float64Histogram(
		"catalog.load.duration",
		metric.WithDescription("Catalog load duration in milliseconds"),
		metric.WithUnit("ms"),
	)

	productsGauge, _ := meter.Int64Gauge(
		"catalog.products.loaded",
		metric.WithDescription("Number of products in the loaded catalog"),
	)

	filterRequested, _ := meter.Int64Counter(
		"catalog.filter.requests",
		metric.WithDescription("Total number of filtered product computations"),
	)

	return &CatalogStore{
		state:           initialState(),
		source:          source,
		tracer:          tracer,
		logger:          logger,
		loadsCounter:    loadsCounter,
		loadDuration:    loadDuration,
		productsGauge:   productsGauge,
		filterRequested: filterRequested,
	}
}

// Reset clears the raw data and the error flag and restores default filters.
// Any load still in flight is invalidated.
func (s *CatalogStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *CatalogStore) resetLocked() uint64 {
	s.state = initialState()
	s.generation++
	return s.generation
}

// Load resets the store and fetches the catalog once. Failures set the error
// flag and are returned to the caller. A load overtaken by a newer Reset or
// Load leaves the state alone and returns domain.ErrStaleLoad.
func (s *CatalogStore) Load(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "CatalogStore.Load")
	defer span.End()

	loadID := uuid.NewString()
	span.SetAttributes(attribute.String("catalog.load_id", loadID))

	s.mu.Lock()
	gen := s.resetLocked()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Loading catalog",
		slog.String("load_id", loadID),
		slog.Uint64("generation", gen),
	)

	start := time.Now()
	catalog, err := s.source.Fetch(ctx)
	if err == nil {
		if catalog == nil {
			err = fmt.Errorf("%w: empty document", domain.ErrMalformedCatalog)
		} else {
			err = catalog.Validate()
		}
	}
	s.loadDuration.Record(ctx, float64(time.Since(start).Milliseconds()))

	if err != nil {
		if !s.fail(gen) {
			return s.stale(ctx, span, loadID)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Catalog load failed")
		s.logger.ErrorContext(ctx, "Failed to load catalog",
			slog.String("load_id", loadID),
			slog.Bool("malformed", errors.Is(err, domain.ErrMalformedCatalog)),
			slog.String("error", err.Error()),
		)
		s.recordLoad(ctx, "failure")
		return err
	}

	priceRange, ok := s.commit(gen, catalog)
	if !ok {
		return s.stale(ctx, span, loadID)
	}

	span.SetAttributes(
		attribute.Int("catalog.product_count", len(catalog.Products)),
		attribute.Float64("catalog.price.min", priceRange.Min),
		attribute.Float64("catalog.price.max", priceRange.Max),
	)
	s.productsGauge.Record(ctx, int64(len(catalog.Products)))
	s.recordLoad(ctx, "success")

	s.logger.InfoContext(ctx, "Catalog loaded",
		slog.String("load_id", loadID),
		slog.Int("products", len(catalog.Products)),
		slog.Int("categories", len(catalog.Categories)),
		slog.Int("brands", len(catalog.Brands)),
		slog.Int("sizes", len(catalog.Sizes)),
	)

	span.SetStatus(codes.Ok, "Catalog loaded successfully")
	return nil
}

// commit stores a copy of the catalog and seeds the price filter with its bounds if gen
// is still current.
func (s *CatalogStore) commit(gen uint64, catalog *domain.Catalog) (domain.PriceRange, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return domain.PriceRange{}, false
	}

	s.state.Data = Data{
		Categories: catalog.Categories,
		Brands:     catalog.Brands,
		Sizes:      catalog.Sizes,
		Products:   catalog.Products,
	}.clone()
	s.state.Filters.PriceRange = priceBounds(s.state.Data.Products)
	return s.state.Filters.PriceRange, true
}

func (s *CatalogStore) fail(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return false
	}
	s.state.IsError = true
	return true
}

func (s *CatalogStore) stale(ctx context.Context, span trace.Span, loadID string) error {
	span.RecordError(domain.ErrStaleLoad)
	span.SetStatus(codes.Error, "Catalog load superseded")
	s.logger.WarnContext(ctx, "Discarding superseded catalog load",
		slog.String("load_id", loadID),
	)
	s.recordLoad(ctx, "stale")
	return domain.ErrStaleLoad
}

func (s *CatalogStore) recordLoad(ctx context.Context, result string) {
	s.loadsCounter.Add(ctx, 1,
		metric.WithAttributes(attribute.String("result", result)),
	)
}

// IsLoading reports whether any of the raw catalog fields is missing
func (s *CatalogStore) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Data.loading()
}

// IsError reports whether the last load failed
func (s *CatalogStore) IsError() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsError
}

// MaximumPriceRange returns the sale price bounds of the loaded products, or
// the unbounded range when nothing is loaded.
func (s *CatalogStore) MaximumPriceRange() domain.PriceRange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return priceBounds(s.state.Data.Products)
}

// CountByDimension returns, for every known key of dim, the number of loaded
// products carrying that key.
func (s *CatalogStore) CountByDimension(dim domain.Dimension) (map[string]int, error) {
	if _, err := domain.ParseDimension(string(dim)); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return countBy(&s.state.Data, dim), nil
}

// CountByCategories returns product counts per category key
func (s *CatalogStore) CountByCategories() map[string]int {
	counts, _ := s.CountByDimension(domain.DimensionCategories)
	return counts
}

// CountByBrands returns product counts per brand key
func (s *CatalogStore) CountByBrands() map[string]int {
	counts, _ := s.CountByDimension(domain.DimensionBrands)
	return counts
}

// CountBySizes returns product counts per size key
func (s *CatalogStore) CountBySizes() map[string]int {
	counts, _ := s.CountByDimension(domain.DimensionSizes)
	return counts
}

// FilteredProducts returns the loaded products matching the active filters,
// in catalog order. The boolean is false while products are not loaded.
func (s *CatalogStore) FilteredProducts() ([]domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.Data.Products == nil {
		return nil, false
	}

	s.filterRequested.Add(context.Background(), 1)
	return filterProducts(s.state.Data.Products, &s.state.Filters), true
}

// Filters returns a copy of the active filter criteria
func (s *CatalogStore) Filters() domain.FilterCriteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Filters.Clone()
}

// SetSearchQuery sets the case-sensitive name substring filter
func (s *CatalogStore) SetSearchQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Filters.SearchQuery = query
}

// SetCategories replaces the selected category keys
func (s *CatalogStore) SetCategories(keys ...string) {
	s.setSelection(domain.DimensionCategories, keys)
}

// SetBrands replaces the selected brand keys
func (s *CatalogStore) SetBrands(keys ...string) {
	s.setSelection(domain.DimensionBrands, keys)
}

// SetSizes replaces the selected size keys
func (s *CatalogStore) SetSizes(keys ...string) {
	s.setSelection(domain.DimensionSizes, keys)
}

func (s *CatalogStore) setSelection(dim domain.Dimension, keys []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Filters.SetSelection(dim, keys)
}

// SetPriceRange sets the inclusive sale price filter
func (s *CatalogStore) SetPriceRange(r domain.PriceRange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Filters.PriceRange = r
}

// SelectAll selects every known key of dim.
func (s *CatalogStore) SelectAll(dim domain.Dimension) error {
	if _, err := domain.ParseDimension(string(dim)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	labels := s.state.Data.Labels(dim)
	if labels == nil {
		return fmt.Errorf("%w: %s", domain.ErrCatalogNotLoaded, dim)
	}
	s.state.Filters.SetSelection(dim, sortedKeys(labels))
	return nil
}

// Snapshot returns a deep copy of the store state
func (s *CatalogStore) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Data:    s.state.Data.clone(),
		Filters: s.state.Filters.Clone(),
		IsError: s.state.IsError,
	}
}
