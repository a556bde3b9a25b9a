package dto

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/mrops-br/catalog-store/internal/domain"
)

const document = `{
	"categories": {"category-0": "Shoes"},
	"brands": {"brand-0": "Smith"},
	"sizes": {"size-m": "M"},
	"products": [{
		"id": "V1StGXR8",
		"name": "Black Shoes",
		"rawPrice": 2000,
		"rawSalePrice": 1800,
		"price": "2 000 ₽",
		"salePrice": "1 800 ₽",
		"hot": true,
		"inStock": false,
		"category": "category-0",
		"brand": "brand-0",
		"size": "size-m",
		"thumbnail": "https://source.unsplash.com/random/400x300?product,shoes"
	}]
}`

func TestToCatalog(t *testing.T) {
	var doc CatalogDocument
	if err := json.Unmarshal([]byte(document), &doc); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	catalog, err := doc.ToCatalog()
	if err != nil {
		t.Fatalf("ToCatalog() error = %v", err)
	}

	if len(catalog.Products) != 1 {
		t.Fatalf("got %d products; want 1", len(catalog.Products))
	}
	p := catalog.Products[0]
	if p.RawSalePrice != 1800 || !p.Hot || p.InStock || p.Size != "size-m" {
		t.Errorf("unexpected product %+v", p)
	}
	if catalog.Categories["category-0"] != "Shoes" {
		t.Errorf("categories = %v", catalog.Categories)
	}
}

func TestToCatalogRejectsMalformedDocuments(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing products", `{"categories":{},"brands":{},"sizes":{}}`},
		{"null categories", `{"categories":null,"brands":{},"sizes":{},"products":[]}`},
		{"missing sale price", `{"categories":{"c":"C"},"brands":{"b":"B"},"sizes":{"s":"S"},
			"products":[{"id":"1","name":"n","rawPrice":1,"category":"c","brand":"b","size":"s","thumbnail":"https://x.io/a"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc CatalogDocument
			if err := json.Unmarshal([]byte(tt.body), &doc); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if _, err := doc.ToCatalog(); !errors.Is(err, domain.ErrMalformedCatalog) {
				t.Errorf("ToCatalog() error = %v; want ErrMalformedCatalog", err)
			}
		})
	}
}

func TestToCatalogDocumentUsesWireFieldNames(t *testing.T) {
	var doc CatalogDocument
	if err := json.Unmarshal([]byte(document), &doc); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	catalog, err := doc.ToCatalog()
	if err != nil {
		t.Fatalf("ToCatalog() error = %v", err)
	}

	data, err := json.Marshal(ToCatalogDocument(catalog))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	for _, key := range []string{"categories", "brands", "sizes", "products"} {
		if _, ok := top[key]; !ok {
			t.Errorf("encoded document is missing %q", key)
		}
	}
	var products []map[string]any
	if err := json.Unmarshal(top["products"], &products); err != nil {
		t.Fatalf("Unmarshal(products) error = %v", err)
	}
	for _, key := range []string{"rawPrice", "rawSalePrice", "salePrice", "inStock", "thumbnail"} {
		if _, ok := products[0][key]; !ok {
			t.Errorf("encoded product is missing %q", key)
		}
	}
}
