package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mrops-br/catalog-store/internal/app/dto"
	"github.com/mrops-br/catalog-store/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Decode reads and validates a catalog document. The input must hold exactly
// one JSON value.
func Decode(r io.Reader) (*domain.Catalog, error) {
	dec := json.NewDecoder(r)

	var doc dto.CatalogDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedCatalog, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", domain.ErrMalformedCatalog)
	}
	return doc.ToCatalog()
}

// FileSource reads the catalog document from a local fixture file
type FileSource struct {
	path   string
	tracer trace.Tracer
	logger *slog.Logger
}

// NewFileSource creates a source for the fixture at path
func NewFileSource(path string, tracer trace.Tracer, logger *slog.Logger) *FileSource {
	return &FileSource{path: path, tracer: tracer, logger: logger}
}

// Fetch opens and decodes the fixture file
func (s *FileSource) Fetch(ctx context.Context) (*domain.Catalog, error) {
	ctx, span := s.tracer.Start(ctx, "FileSource.Fetch")
	defer span.End()

	span.SetAttributes(attribute.String("catalog.path", s.path))

	f, err := os.Open(s.path)
	if err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Fixture open failed")
		return nil, err
	}
	defer f.Close()

	catalog, err := Decode(f)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Fixture decode failed")
		s.logger.ErrorContext(ctx, "Invalid catalog fixture",
			slog.String("path", s.path),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	span.SetStatus(codes.Ok, "Fixture read")
	return catalog, nil
}
