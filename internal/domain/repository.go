package domain

import (
	"context"
	"errors"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// CatalogSource fetches the catalog document
type CatalogSource interface {
	Fetch(ctx context.Context) (*Catalog, error)
}

// CatalogRepository defines the contract for serving a catalog document
type CatalogRepository interface {
	Replace(ctx context.Context, catalog *Catalog) error
	Catalog(ctx context.Context) (*Catalog, error)
	FindProductByID(ctx context.Context, id string) (*Product, error)
	FindAllProducts(ctx context.Context) ([]Product, error)
}
