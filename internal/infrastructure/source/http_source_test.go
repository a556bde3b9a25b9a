package source

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/mrops-br/catalog-store/internal/app/store"
	"github.com/mrops-br/catalog-store/internal/domain"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/trace/noop"
)

const validDocument = `{
	"categories": {"category-0": "Shoes", "category-1": "Hats"},
	"brands": {"brand-0": "Smith"},
	"sizes": {"size-s": "S", "size-m": "M"},
	"products": [
		{"id": "a", "name": "Black Shoes", "rawPrice": 2000, "rawSalePrice": 1800, "category": "category-0",
		 "brand": "brand-0", "size": "size-m", "thumbnail": "https://example.com/a.jpg"},
		{"id": "b", "name": "Red Hat", "rawPrice": 1000, "rawSalePrice": 500, "category": "category-1",
		 "brand": "brand-0", "size": "size-s", "thumbnail": "https://example.com/b.jpg"}
	]
}`

var discard = slog.New(slog.NewJSONHandler(io.Discard, nil))

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != CatalogPath {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newSource(t *testing.T, baseURL string, client *http.Client) *HTTPSource {
	t.Helper()
	src, err := NewHTTPSource(baseURL, client, noop.NewTracerProvider().Tracer("test"), discard)
	if err != nil {
		t.Fatalf("NewHTTPSource(%q) error = %v", baseURL, err)
	}
	return src
}

func TestHTTPSourceFetch(t *testing.T) {
	srv := serve(t, http.StatusOK, validDocument)
	src := newSource(t, srv.URL, srv.Client())

	catalog, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(catalog.Products) != 2 || len(catalog.Categories) != 2 || len(catalog.Sizes) != 2 {
		t.Errorf("unexpected catalog %+v", catalog)
	}
}

func TestHTTPSourceFetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"server error", http.StatusInternalServerError, `{}`, domain.ErrUnexpectedStatus},
		{"not found", http.StatusNotFound, ``, domain.ErrUnexpectedStatus},
		{"invalid json", http.StatusOK, `{"categories":`, domain.ErrMalformedCatalog},
		{"wrong shape", http.StatusOK, `{"categories":[1,2]}`, domain.ErrMalformedCatalog},
		{"missing fields", http.StatusOK, `{}`, domain.ErrMalformedCatalog},
		{"trailing data", http.StatusOK, validDocument + ` {"oops": `, domain.ErrMalformedCatalog},
		{"second document", http.StatusOK, validDocument + validDocument, domain.ErrMalformedCatalog},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.status, tt.body)
			src := newSource(t, srv.URL, srv.Client())

			if _, err := src.Fetch(context.Background()); !errors.Is(err, tt.wantErr) {
				t.Errorf("Fetch() error = %v; want %v", err, tt.wantErr)
			}
		})
	}
}

func TestHTTPSourceBaseURLWithTrailingSlash(t *testing.T) {
	srv := serve(t, http.StatusOK, validDocument)
	src := newSource(t, srv.URL+"/", srv.Client())

	if _, err := src.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
}

func TestHTTPSourceRejectsBadBaseURL(t *testing.T) {
	if _, err := NewHTTPSource("http://[::1", nil, noop.NewTracerProvider().Tracer("test"), discard); err == nil {
		t.Error("NewHTTPSource() error = nil; want parse error")
	}
}

func TestHTTPSourceUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	src := newSource(t, url, nil)
	if _, err := src.Fetch(context.Background()); !errors.Is(err, domain.ErrCatalogUnavailable) {
		t.Errorf("Fetch() error = %v; want ErrCatalogUnavailable", err)
	}
}

func newStore(src domain.CatalogSource) *store.CatalogStore {
	mp := sdkmetric.NewMeterProvider()
	return store.NewCatalogStore(src, noop.NewTracerProvider().Tracer("test"), mp.Meter("test"), discard)
}

func TestStoreLoadOverHTTP(t *testing.T) {
	srv := serve(t, http.StatusOK, validDocument)
	s := newStore(newSource(t, srv.URL, srv.Client()))

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if want := (domain.PriceRange{Min: 500, Max: 1800}); s.Filters().PriceRange != want {
		t.Errorf("price range = %+v; want %+v", s.Filters().PriceRange, want)
	}
}

func TestStoreLoadTrailingDataSetsFlag(t *testing.T) {
	srv := serve(t, http.StatusOK, validDocument+` {"oops": `)
	s := newStore(newSource(t, srv.URL, srv.Client()))

	if err := s.Load(context.Background()); !errors.Is(err, domain.ErrMalformedCatalog) {
		t.Fatalf("Load() error = %v; want ErrMalformedCatalog", err)
	}
	if !s.IsError() || !s.IsLoading() {
		t.Errorf("IsError() = %v, IsLoading() = %v; want true, true", s.IsError(), s.IsLoading())
	}
}

func TestStoreLoadHTTPErrorSetsFlag(t *testing.T) {
	srv := serve(t, http.StatusBadGateway, `bad gateway`)
	s := newStore(newSource(t, srv.URL, srv.Client()))

	err := s.Load(context.Background())
	if !errors.Is(err, domain.ErrUnexpectedStatus) {
		t.Fatalf("Load() error = %v; want ErrUnexpectedStatus", err)
	}
	if !s.IsError() || !s.IsLoading() {
		t.Errorf("IsError() = %v, IsLoading() = %v; want true, true", s.IsError(), s.IsLoading())
	}
	if products, ok := s.FilteredProducts(); ok || products != nil {
		t.Errorf("FilteredProducts() = %v, %v; want nil, false", products, ok)
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.json")
	if err := os.WriteFile(path, []byte(validDocument), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	src := NewFileSource(path, noop.NewTracerProvider().Tracer("test"), discard)
	catalog, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(catalog.Products) != 2 {
		t.Errorf("got %d products; want 2", len(catalog.Products))
	}

	missing := NewFileSource(filepath.Join(dir, "missing.json"), noop.NewTracerProvider().Tracer("test"), discard)
	if _, err := missing.Fetch(context.Background()); !errors.Is(err, domain.ErrCatalogUnavailable) {
		t.Errorf("Fetch(missing) error = %v; want ErrCatalogUnavailable", err)
	}
}
