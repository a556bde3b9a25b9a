package domain

import (
	"slices"
	"strings"
)

// FilterCriteria holds the storefront's active filters. Empty selections
// match no product.
type FilterCriteria struct {
	SearchQuery string
	Categories  []string
	Brands      []string
	Sizes       []string
	PriceRange  PriceRange
}

// DefaultFilterCriteria returns empty selections and an unbounded price range.
func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{
		Categories: []string{},
		Brands:     []string{},
		Sizes:      []string{},
		PriceRange: UnboundedPriceRange(),
	}
}

// Clone returns a deep copy so callers cannot alias the selections.
func (f FilterCriteria) Clone() FilterCriteria {
	f.Categories = slices.Clone(f.Categories)
	f.Brands = slices.Clone(f.Brands)
	f.Sizes = slices.Clone(f.Sizes)
	return f
}

// Selection returns the selected keys of a dimension.
func (f *FilterCriteria) Selection(dim Dimension) []string {
	switch dim {
	case DimensionCategories:
		return f.Categories
	case DimensionBrands:
		return f.Brands
	case DimensionSizes:
		return f.Sizes
	}
	return nil
}

// SetSelection replaces the selected keys of a dimension.
func (f *FilterCriteria) SetSelection(dim Dimension, keys []string) {
	keys = slices.Clone(keys)
	if keys == nil {
		keys = []string{}
	}
	switch dim {
	case DimensionCategories:
		f.Categories = keys
	case DimensionBrands:
		f.Brands = keys
	case DimensionSizes:
		f.Sizes = keys
	}
}

// Matches reports whether p satisfies every criterion.
func (f *FilterCriteria) Matches(p *Product) bool {
	return strings.Contains(p.Name, f.SearchQuery) &&
		slices.Contains(f.Categories, p.Category) &&
		slices.Contains(f.Brands, p.Brand) &&
		slices.Contains(f.Sizes, p.Size) &&
		f.PriceRange.Contains(p.RawSalePrice)
}
