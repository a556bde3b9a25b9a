package source

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/mrops-br/catalog-store/internal/domain"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// CatalogPath is the fixed resource path of the catalog document.
const CatalogPath = "/api/products.json"

// HTTPSource fetches the catalog document with a single GET request
type HTTPSource struct {
	url    string
	client *http.Client
	tracer trace.Tracer
	logger *slog.Logger
}

// NewHTTPSource creates a source reading CatalogPath under baseURL. A nil
// client gets an otelhttp-instrumented default.
func NewHTTPSource(baseURL string, client *http.Client, tracer trace.Tracer, logger *slog.Logger) (*HTTPSource, error) {
	if client == nil {
		client = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	target, err := url.JoinPath(baseURL, CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog base url %q: %w", baseURL, err)
	}
	return &HTTPSource{
		url:    target,
		client: client,
		tracer: tracer,
		logger: logger,
	}, nil
}

// Fetch performs the request and decodes the document. Transport failures
// wrap domain.ErrCatalogUnavailable, non-2xx responses wrap
// domain.ErrUnexpectedStatus, and bad content wraps domain.ErrMalformedCatalog.
func (s *HTTPSource) Fetch(ctx context.Context) (*domain.Catalog, error) {
	ctx, span := s.tracer.Start(ctx, "HTTPSource.Fetch")
	defer span.End()

	span.SetAttributes(attribute.String("http.url", s.url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, s.fail(ctx, span, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, s.fail(ctx, span, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err))
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, s.fail(ctx, span, fmt.Errorf("%w: %s", domain.ErrUnexpectedStatus, resp.Status))
	}

	catalog, err := Decode(resp.Body)
	if err != nil {
		return nil, s.fail(ctx, span, err)
	}

	s.logger.DebugContext(ctx, "Catalog document fetched",
		slog.String("url", s.url),
		slog.Int("products", len(catalog.Products)),
	)

	span.SetStatus(codes.Ok, "Catalog fetched")
	return catalog, nil
}

func (s *HTTPSource) fail(ctx context.Context, span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, "Catalog fetch failed")
	s.logger.WarnContext(ctx, "Catalog fetch failed",
		slog.String("url", s.url),
		slog.String("error", err.Error()),
	)
	return err
}
