package store

import (
	"maps"
	"slices"

	"github.com/mrops-br/catalog-store/internal/domain"
)

// Data is the raw catalog as loaded from the source. A nil field means the
// field has not been loaded.
type Data struct {
	Categories domain.Labels
	Brands     domain.Labels
	Sizes      domain.Labels
	Products   []domain.Product
}

func (d *Data) loading() bool {
	return d.Categories == nil || d.Brands == nil || d.Sizes == nil || d.Products == nil
}

// Labels returns the key/label map of dim.
func (d *Data) Labels(dim domain.Dimension) domain.Labels {
	switch dim {
	case domain.DimensionCategories:
		return d.Categories
	case domain.DimensionBrands:
		return d.Brands
	case domain.DimensionSizes:
		return d.Sizes
	}
	return nil
}

func (d Data) clone() Data {
	return Data{
		Categories: maps.Clone(d.Categories),
		Brands:     maps.Clone(d.Brands),
		Sizes:      maps.Clone(d.Sizes),
		Products:   slices.Clone(d.Products),
	}
}

// priceBounds returns the min and max sale price, or the unbounded range
// when there are no products.
func priceBounds(products []domain.Product) domain.PriceRange {
	if len(products) == 0 {
		return domain.UnboundedPriceRange()
	}
	r := domain.PriceRange{Min: products[0].RawSalePrice, Max: products[0].RawSalePrice}
	for _, p := range products[1:] {
		r.Min = min(r.Min, p.RawSalePrice)
		r.Max = max(r.Max, p.RawSalePrice)
	}
	return r
}

// countBy seeds every known key of dim at zero and adds one per product
// whose dim key matches. Keys unknown to the dimension are not counted.
func countBy(d *Data, dim domain.Dimension) map[string]int {
	labels := d.Labels(dim)
	counts := make(map[string]int, len(labels))
	for key := range labels {
		counts[key] = 0
	}
	for i := range d.Products {
		key := d.Products[i].Key(dim)
		if _, known := counts[key]; known {
			counts[key]++
		}
	}
	return counts
}

func filterProducts(products []domain.Product, f *domain.FilterCriteria) []domain.Product {
	filtered := make([]domain.Product, 0, len(products))
	for i := range products {
		if f.Matches(&products[i]) {
			filtered = append(filtered, products[i])
		}
	}
	return filtered
}

// sortedKeys returns the keys of labels in lexical order.
func sortedKeys(labels domain.Labels) []string {
	return slices.Sorted(maps.Keys(labels))
}
