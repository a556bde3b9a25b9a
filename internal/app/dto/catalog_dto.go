package dto

import (
	"fmt"

	"github.com/mrops-br/catalog-store/internal/domain"
)

// CatalogDocument is the wire shape of /api/products.json
type CatalogDocument struct {
	Categories map[string]string `json:"categories"`
	Brands     map[string]string `json:"brands"`
	Sizes      map[string]string `json:"sizes"`
	Products   []ProductPayload  `json:"products"`
}

// ProductPayload is a product as it appears on the wire. Prices are pointers
// so a missing field is distinguishable from zero.
type ProductPayload struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	RawPrice     *float64 `json:"rawPrice"`
	RawSalePrice *float64 `json:"rawSalePrice"`
	Price        string   `json:"price"`
	SalePrice    string   `json:"salePrice"`
	Hot          bool     `json:"hot"`
	InStock      bool     `json:"inStock"`
	Category     string   `json:"category"`
	Brand        string   `json:"brand"`
	Size         string   `json:"size"`
	Thumbnail    string   `json:"thumbnail"`
}

// ToCatalog converts and validates a decoded document. Every failure wraps
// domain.ErrMalformedCatalog.
func (d *CatalogDocument) ToCatalog() (*domain.Catalog, error) {
	if d.Products == nil {
		return nil, fmt.Errorf("%w: products are required", domain.ErrMalformedCatalog)
	}

	catalog := &domain.Catalog{
		Categories: domain.Labels(d.Categories),
		Brands:     domain.Labels(d.Brands),
		Sizes:      domain.Labels(d.Sizes),
		Products:   make([]domain.Product, 0, len(d.Products)),
	}

	for i, p := range d.Products {
		if p.RawPrice == nil || p.RawSalePrice == nil {
			return nil, fmt.Errorf("%w: product %d: rawPrice and rawSalePrice are required",
				domain.ErrMalformedCatalog, i)
		}
		catalog.Products = append(catalog.Products, p.toProduct())
	}

	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}

func (p *ProductPayload) toProduct() domain.Product {
	return domain.Product{
		ID:           p.ID,
		Name:         p.Name,
		RawPrice:     *p.RawPrice,
		RawSalePrice: *p.RawSalePrice,
		Price:        p.Price,
		SalePrice:    p.SalePrice,
		Hot:          p.Hot,
		InStock:      p.InStock,
		Category:     p.Category,
		Brand:        p.Brand,
		Size:         p.Size,
		Thumbnail:    p.Thumbnail,
	}
}

// ToCatalogDocument converts a domain Catalog to its wire shape
func ToCatalogDocument(c *domain.Catalog) *CatalogDocument {
	return &CatalogDocument{
		Categories: c.Categories,
		Brands:     c.Brands,
		Sizes:      c.Sizes,
		Products:   ToProductPayloadList(c.Products),
	}
}

// ToProductPayload converts a domain Product to ProductPayload
func ToProductPayload(p *domain.Product) *ProductPayload {
	rawPrice, rawSalePrice := p.RawPrice, p.RawSalePrice
	return &ProductPayload{
		ID:           p.ID,
		Name:         p.Name,
		RawPrice:     &rawPrice,
		RawSalePrice: &rawSalePrice,
		Price:        p.Price,
		SalePrice:    p.SalePrice,
		Hot:          p.Hot,
		InStock:      p.InStock,
		Category:     p.Category,
		Brand:        p.Brand,
		Size:         p.Size,
		Thumbnail:    p.Thumbnail,
	}
}

// ToProductPayloadList converts a list of domain Products
func ToProductPayloadList(products []domain.Product) []ProductPayload {
	payloads := make([]ProductPayload, len(products))
	for i := range products {
		payloads[i] = *ToProductPayload(&products[i])
	}
	return payloads
}
