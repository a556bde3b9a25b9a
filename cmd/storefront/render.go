package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"text/tabwriter"

	"github.com/mrops-br/catalog-store/internal/app/store"
	"github.com/mrops-br/catalog-store/internal/domain"
)

func render(w io.Writer, s *store.CatalogStore) {
	switch {
	case s.IsError():
		fmt.Fprintln(w, "catalog failed to load")
		return
	case s.IsLoading():
		fmt.Fprintln(w, "catalog is loading")
		return
	}

	snapshot := s.Snapshot()
	bounds := s.MaximumPriceRange()
	fmt.Fprintf(w, "price bounds: %.2f - %.2f\n", bounds.Min, bounds.Max)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, dim := range domain.Dimensions {
		counts, _ := s.CountByDimension(dim)
		labels := snapshot.Data.Labels(dim)
		fmt.Fprintf(tw, "\n%s\n", dim)
		for _, key := range slices.Sorted(maps.Keys(counts)) {
			fmt.Fprintf(tw, "  %s\t%s\t%d\n", key, labels[key], counts[key])
		}
	}
	tw.Flush()

	products, _ := s.FilteredProducts()
	fmt.Fprintf(w, "\n%d of %d products match\n", len(products), len(snapshot.Data.Products))

	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.SalePrice,
			snapshot.Data.Categories[p.Category], snapshot.Data.Brands[p.Brand], snapshot.Data.Sizes[p.Size])
	}
	tw.Flush()
}
