package catalog

import "context"

// Repository defines product data storage.
type Repository interface {
	CreateProduct(ctx context.Context, p *Product) error
	GetProductByID(ctx context.Context, id string) (*Product, error)
	ListProductsByProvider(ctx context.Context, providerID string) ([]*Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]*Product, error)
	SetActive(ctx context.Context, id string, active bool) error
}
