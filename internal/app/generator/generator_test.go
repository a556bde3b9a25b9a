package generator

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode"

	"github.com/mrops-br/catalog-store/internal/app/dto"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestGenerator(opts Options) *Generator {
	return NewGenerator(opts, noop.NewTracerProvider().Tracer("test"), slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func seeded() Options {
	opts := DefaultOptions()
	opts.Seed = 42
	return opts
}

// isStartCase reports whether s is space separated words of letters and
// digits, each starting with an upper case letter or a digit.
func isStartCase(s string) bool {
	words := strings.Split(s, " ")
	for _, w := range words {
		if w == "" {
			return false
		}
		for i, r := range w {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				return false
			}
			if i == 0 && unicode.IsLower(r) {
				return false
			}
		}
	}
	return true
}

func TestStartCase(t *testing.T) {
	g := newTestGenerator(seeded())

	tests := []struct {
		in   string
		want string
	}{
		{"rarely i.e.", "Rarely I E"},
		{"  home & garden ", "Home Garden"},
		{"foo-bar_baz", "Foo Bar Baz"},
		{"shoes 42", "Shoes 42"},
		{"...", ""},
	}

	for _, tt := range tests {
		if got := g.startCase(tt.in); got != tt.want {
			t.Errorf("startCase(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateShape(t *testing.T) {
	catalog, err := newTestGenerator(seeded()).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(catalog.Categories) != 7 || len(catalog.Brands) != 10 || len(catalog.Sizes) != 6 {
		t.Fatalf("got %d categories, %d brands, %d sizes; want 7, 10, 6",
			len(catalog.Categories), len(catalog.Brands), len(catalog.Sizes))
	}
	if len(catalog.Products) != 15 {
		t.Fatalf("got %d products; want 15", len(catalog.Products))
	}
	if err := catalog.Validate(); err != nil {
		t.Fatalf("generated catalog is invalid: %v", err)
	}

	for key, label := range catalog.Categories {
		if !strings.HasPrefix(key, "category-") {
			t.Errorf("category key %q lacks prefix", key)
		}
		if !isStartCase(label) {
			t.Errorf("category label %q is not start-cased", label)
		}
	}
	if catalog.Sizes["size-xxl"] != "XXL" || catalog.Sizes["size-xs"] != "XS" {
		t.Errorf("sizes = %v", catalog.Sizes)
	}

	ids := make(map[string]struct{})
	for _, p := range catalog.Products {
		ids[p.ID] = struct{}{}

		if p.RawPrice < 1000 || p.RawPrice > 10000 || int(p.RawPrice)%1000 != 0 {
			t.Errorf("rawPrice %v is not a multiple of 1000 in [1000, 10000]", p.RawPrice)
		}
		if ratio := p.RawSalePrice / p.RawPrice; ratio < 0.5-1e-9 || ratio > 1+1e-9 {
			t.Errorf("sale ratio %v outside [0.5, 1]", ratio)
		}
		if !isStartCase(p.Name) {
			t.Errorf("name %q is not start-cased", p.Name)
		}
		wantThumb := "https://source.unsplash.com/random/400x300?product,"
		if !strings.HasPrefix(p.Thumbnail, wantThumb) {
			t.Errorf("thumbnail %q lacks prefix %q", p.Thumbnail, wantThumb)
		}
		if !strings.HasSuffix(p.Price, "₽") || !strings.HasSuffix(p.SalePrice, "₽") {
			t.Errorf("prices %q / %q are not roubles", p.Price, p.SalePrice)
		}
	}
	if len(ids) != len(catalog.Products) {
		t.Error("product ids are not unique")
	}
}

func TestGenerateIsReproducible(t *testing.T) {
	a, err := newTestGenerator(seeded()).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	b, err := newTestGenerator(seeded()).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if !maps.Equal(a.Categories, b.Categories) || !maps.Equal(a.Brands, b.Brands) {
		t.Error("same seed produced different labels")
	}
	for i := range a.Products {
		if a.Products[i].Name != b.Products[i].Name || a.Products[i].RawSalePrice != b.Products[i].RawSalePrice {
			t.Errorf("product %d differs between runs", i)
		}
	}
}

func TestGenerateRejectsInvalidOptions(t *testing.T) {
	_, err := newTestGenerator(Options{Categories: 0, Brands: 1, Products: 1}).Generate(context.Background())
	if !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("Generate() error = %v; want ErrInvalidOptions", err)
	}
}

func TestFormatPrice(t *testing.T) {
	g := newTestGenerator(seeded())

	got := g.FormatPrice(4500)
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, got)

	if digits != "4500" || !strings.HasSuffix(got, "₽") {
		t.Errorf("FormatPrice(4500) = %q", got)
	}
	if strings.Contains(got, ",") || strings.Contains(got, ".") {
		t.Errorf("FormatPrice(4500) = %q; want no fraction or comma grouping", got)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "public", "api", "products.json")

	written, err := newTestGenerator(seeded()).WriteFile(context.Background(), path)
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	var doc dto.CatalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	catalog, err := doc.ToCatalog()
	if err != nil {
		t.Fatalf("ToCatalog() error = %v", err)
	}
	if len(catalog.Products) != len(written.Products) || catalog.Products[0].ID != written.Products[0].ID {
		t.Error("file contents differ from the generated catalog")
	}
}
