package location

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Service defines location business logic.
type Service interface {
	CreateLocation(ctx context.Context, req CreateLocationRequest) (*Location, error)
	GetLocation(ctx context.Context, id string) (*Location, error)
	ListLocations(ctx context.Context) ([]*Location, error)
}

// CreateLocationRequest holds data for registering a fulfilment site.
type CreateLocationRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"` // WAREHOUSE | STORE
	Address  string `json:"address"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Phone    string `json:"phone"`
	OpensAt  string `json:"opens_at"`
	ClosesAt string `json:"closes_at"`
}

type service struct {
	repo Repository
}

// NewService creates a new location service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateLocation(ctx context.Context, req CreateLocationRequest) (*Location, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.Address == "" {
		return nil, fmt.Errorf("address is required")
	}

	locType := LocationType(strings.ToUpper(req.Type))
	switch locType {
	case TypeWarehouse, TypeStore:
	case "":
		locType = TypeStore
	default:
		return nil, fmt.Errorf("unknown location type %q", req.Type)
	}

	country := req.Country
	if country == "" {
		country = "Zambia"
	}

	l := &Location{
		ID:       uuid.New(),
		Name:     req.Name,
		Type:     locType,
		Address:  req.Address,
		City:     req.City,
		Country:  country,
		Phone:    req.Phone,
		OpensAt:  req.OpensAt,
		ClosesAt: req.ClosesAt,
		IsActive: true,
	}
	if err := s.repo.CreateLocation(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) GetLocation(ctx context.Context, id string) (*Location, error) {
	return s.repo.GetLocationByID(ctx, id)
}

func (s *service) ListLocations(ctx context.Context) ([]*Location, error) {
	return s.repo.ListLocations(ctx)
}
