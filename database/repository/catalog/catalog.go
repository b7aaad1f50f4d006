package catalogRepo

import (
	"context"

	"salonassist/models"
)

// CatalogRepository defines read access to the service catalog. The catalog
// is seeded at provisioning time and read-only to the scheduling engine.
type CatalogRepository interface {
	// List returns all active services, ordered by name.
	List(ctx context.Context) ([]models.Service, error)
	// GetByID retrieves a single active service.
	GetByID(ctx context.Context, id string) (*models.Service, error)
	// SeedDefaults inserts the default catalog when the collection is empty.
	SeedDefaults(ctx context.Context) error
}
