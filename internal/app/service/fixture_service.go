package service

import (
	"context"
	"log/slog"

	"github.com/mrops-br/catalog-store/internal/app/dto"
	"github.com/mrops-br/catalog-store/internal/app/generator"
	"github.com/mrops-br/catalog-store/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// FixtureService prepares and serves the static catalog document
type FixtureService struct {
	repo              domain.CatalogRepository
	generator         *generator.Generator
	fixture           domain.CatalogSource
	tracer            trace.Tracer
	logger            *slog.Logger
	fixtureOperations metric.Int64Counter
}

// NewFixtureService creates a fixture service. fixture is read when the
// document is not generated at startup.
func NewFixtureService(
	repo domain.CatalogRepository,
	gen *generator.Generator,
	fixture domain.CatalogSource,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *FixtureService {
	fixtureOperations, _ := meter.Int64Counter(
		"catalog.fixture.operations",
		metric.WithDescription("Total number of catalog fixture operations"),
	)

	return &FixtureService{
		repo:              repo,
		generator:         gen,
		fixture:           fixture,
		tracer:            tracer,
		logger:            logger,
		fixtureOperations: fixtureOperations,
	}
}

// Prepare fills the repository, either by generating a fresh document and
// writing it to path or by reading the existing fixture.
func (s *FixtureService) Prepare(ctx context.Context, generate bool, path string) error {
	ctx, span := s.tracer.Start(ctx, "FixtureService.Prepare")
	defer span.End()

	span.SetAttributes(
		attribute.Bool("catalog.generate", generate),
		attribute.String("catalog.path", path),
	)

	var (
		catalog *domain.Catalog
		err     error
	)
	if generate {
		catalog, err = s.generator.WriteFile(ctx, path)
	} else {
		catalog, err = s.fixture.Fetch(ctx)
	}
	if err == nil {
		err = s.repo.Replace(ctx, catalog)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Fixture preparation failed")
		s.logger.ErrorContext(ctx, "Failed to prepare catalog fixture",
			slog.String("error", err.Error()),
		)
		s.record(ctx, "prepare", "failure")
		return err
	}

	s.record(ctx, "prepare", "success")
	s.logger.InfoContext(ctx, "Catalog fixture ready",
		slog.Int("products", len(catalog.Products)),
	)
	span.SetStatus(codes.Ok, "Fixture ready")
	return nil
}

// Document returns the full catalog document
func (s *FixtureService) Document(ctx context.Context) (*dto.CatalogDocument, error) {
	ctx, span := s.tracer.Start(ctx, "FixtureService.Document")
	defer span.End()

	catalog, err := s.repo.Catalog(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Catalog unavailable")
		s.record(ctx, "document", "failure")
		return nil, err
	}

	s.record(ctx, "document", "success")
	span.SetStatus(codes.Ok, "Document served")
	return dto.ToCatalogDocument(catalog), nil
}

// ListProducts returns every product in document order
func (s *FixtureService) ListProducts(ctx context.Context) ([]dto.ProductPayload, error) {
	ctx, span := s.tracer.Start(ctx, "FixtureService.ListProducts")
	defer span.End()

	products, err := s.repo.FindAllProducts(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to retrieve products")
		s.record(ctx, "list", "failure")
		return nil, err
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	s.record(ctx, "list", "success")
	span.SetStatus(codes.Ok, "Products listed successfully")
	return dto.ToProductPayloadList(products), nil
}

// GetProduct returns a single product
func (s *FixtureService) GetProduct(ctx context.Context, id string) (*dto.ProductPayload, error) {
	ctx, span := s.tracer.Start(ctx, "FixtureService.GetProduct")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Product not found")
		s.record(ctx, "read", "not_found")
		return nil, err
	}

	s.record(ctx, "read", "success")
	span.SetStatus(codes.Ok, "Product retrieved successfully")
	return dto.ToProductPayload(product), nil
}

func (s *FixtureService) record(ctx context.Context, operation, result string) {
	s.fixtureOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", result),
		),
	)
}
