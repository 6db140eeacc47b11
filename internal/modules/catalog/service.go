package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service defines catalog business logic for rental products.
type Service interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListByProvider(ctx context.Context, providerID string) ([]*Product, error)
	ListByCategory(ctx context.Context, category string) ([]*Product, error)
	Deactivate(ctx context.Context, id string) error
}

// CreateProductRequest holds data for listing a new rental product.
// Amounts are minor currency units.
type CreateProductRequest struct {
	ProviderID  string   `json:"provider_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	BasePrice   RateCard `json:"base_price"`
	Deposit     Deposit  `json:"deposit"`
	Currency    string   `json:"currency"`
}

type service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	providerID, err := uuid.Parse(req.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("invalid provider_id: %w", err)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.BasePrice.Daily <= 0 {
		return nil, fmt.Errorf("base_price.daily must be > 0")
	}
	if req.Deposit.Required && req.Deposit.Amount <= 0 {
		return nil, fmt.Errorf("deposit.amount must be > 0 when deposit is required")
	}
	currency := req.Currency
	if currency == "" {
		currency = "ZMW"
	}

	p := &Product{
		ID:          uuid.New(),
		ProviderID:  providerID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
		BasePrice:   req.BasePrice,
		Deposit:     req.Deposit,
		Currency:    currency,
		IsActive:    true,
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetProductByID(ctx, id)
}

func (s *service) ListByProvider(ctx context.Context, providerID string) ([]*Product, error) {
	return s.repo.ListProductsByProvider(ctx, providerID)
}

func (s *service) ListByCategory(ctx context.Context, category string) ([]*Product, error) {
	return s.repo.ListProductsByCategory(ctx, category)
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	return s.repo.SetActive(ctx, id, false)
}
