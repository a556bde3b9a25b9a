package domain

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrMalformedCatalog   = errors.New("malformed catalog data")
	ErrUnknownDimension   = errors.New("unknown filter dimension")
	ErrCatalogNotLoaded   = errors.New("catalog is not loaded")
	ErrCatalogUnavailable = errors.New("catalog source unavailable")
	ErrUnexpectedStatus   = errors.New("unexpected catalog response status")
	ErrStaleLoad          = errors.New("catalog load superseded by a newer load")
)

// Dimension is an axis products can be filtered and counted by.
type Dimension string

const (
	DimensionCategories Dimension = "categories"
	DimensionBrands     Dimension = "brands"
	DimensionSizes      Dimension = "sizes"
)

// Dimensions lists every known dimension in display order.
var Dimensions = []Dimension{DimensionCategories, DimensionBrands, DimensionSizes}

// ParseDimension maps a dimension name to a Dimension.
func ParseDimension(name string) (Dimension, error) {
	for _, d := range Dimensions {
		if string(d) == name {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDimension, name)
}

// Labels maps an opaque key to its human readable label.
type Labels map[string]string

// PriceRange is an inclusive price interval. Min <= Max is not enforced.
type PriceRange struct {
	Min float64
	Max float64
}

// UnboundedPriceRange returns (-Inf, +Inf).
func UnboundedPriceRange() PriceRange {
	return PriceRange{Min: math.Inf(-1), Max: math.Inf(1)}
}

// Contains reports whether price lies within the range, bounds included.
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// IsUnbounded reports whether both ends of the range are infinite.
func (r PriceRange) IsUnbounded() bool {
	return math.IsInf(r.Min, -1) && math.IsInf(r.Max, 1)
}

// Catalog is the document served by the catalog source.
type Catalog struct {
	Categories Labels
	Brands     Labels
	Sizes      Labels
	Products   []Product
}

// Labels returns the key/label map of a dimension.
func (c *Catalog) Labels(dim Dimension) (Labels, error) {
	switch dim {
	case DimensionCategories:
		return c.Categories, nil
	case DimensionBrands:
		return c.Brands, nil
	case DimensionSizes:
		return c.Sizes, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDimension, dim)
}

// Validate checks every product, that product ids are unique and that each
// product references keys known to the catalog. All failures wrap
// ErrMalformedCatalog.
func (c *Catalog) Validate() error {
	if c.Categories == nil || c.Brands == nil || c.Sizes == nil || c.Products == nil {
		return fmt.Errorf("%w: categories, brands, sizes and products are required", ErrMalformedCatalog)
	}

	seen := make(map[string]struct{}, len(c.Products))
	for i := range c.Products {
		p := &c.Products[i]
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%w: product %d: %w", ErrMalformedCatalog, i, err)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate product id %q", ErrMalformedCatalog, p.ID)
		}
		seen[p.ID] = struct{}{}
		for _, dim := range Dimensions {
			labels, _ := c.Labels(dim)
			if _, ok := labels[p.Key(dim)]; !ok {
				return fmt.Errorf("%w: product %q references unknown %s key %q",
					ErrMalformedCatalog, p.ID, dim, p.Key(dim))
			}
		}
	}
	return nil
}
