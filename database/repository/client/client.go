package clientRepo

import (
	"context"

	"salonassist/models"
)

// ClientRepository defines methods for client data access. Clients are
// keyed by phone number and are never hard-deleted.
type ClientRepository interface {
	// GetByPhone retrieves a client by their E.164 phone number.
	GetByPhone(ctx context.Context, phone string) (*models.Client, error)
	// UpsertByPhone returns the client for the phone number, creating it
	// with defaults on first contact. Safe under concurrent first contacts.
	UpsertByPhone(ctx context.Context, phone, name string) (*models.Client, error)
	// UpdateProfile sets the mutable profile fields. Empty values are left
	// untouched.
	UpdateProfile(ctx context.Context, phone, name, preferences string) error
}
