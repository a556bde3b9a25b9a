package domain

import (
	"errors"
	"math"
	"net/url"
)

var (
	ErrInvalidProductID    = errors.New("product id is required")
	ErrInvalidProductName  = errors.New("product name is required")
	ErrInvalidProductPrice = errors.New("product price must be a finite number")
	ErrInvalidThumbnail    = errors.New("product thumbnail must be an absolute URI")
)

// Product represents a single storefront listing. Products are never mutated
// after they have been loaded into a catalog.
type Product struct {
	ID           string
	Name         string
	RawPrice     float64
	RawSalePrice float64
	Price        string
	SalePrice    string
	Hot          bool
	InStock      bool
	Category     string
	Brand        string
	Size         string
	Thumbnail    string
}

// Validate performs structural validation on the product
func (p *Product) Validate() error {
	if p.ID == "" {
		return ErrInvalidProductID
	}
	if p.Name == "" {
		return ErrInvalidProductName
	}
	if !isFinite(p.RawPrice) || !isFinite(p.RawSalePrice) {
		return ErrInvalidProductPrice
	}
	u, err := url.Parse(p.Thumbnail)
	if err != nil || !u.IsAbs() {
		return ErrInvalidThumbnail
	}
	return nil
}

// Key returns the product's key along the given dimension.
func (p *Product) Key(dim Dimension) string {
	switch dim {
	case DimensionCategories:
		return p.Category
	case DimensionBrands:
		return p.Brand
	case DimensionSizes:
		return p.Size
	}
	return ""
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
