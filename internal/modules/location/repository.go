package location

import "context"

// Repository defines location data storage.
type Repository interface {
	CreateLocation(ctx context.Context, l *Location) error
	GetLocationByID(ctx context.Context, id string) (*Location, error)
	ListLocations(ctx context.Context) ([]*Location, error)
}
