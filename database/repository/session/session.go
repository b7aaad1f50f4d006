package sessionRepo

import (
	"context"
	"errors"
	"time"

	"salonassist/models"
)

// ErrNotFound is returned when no session context exists for the given key.
var ErrNotFound = errors.New("session context not found")

// SessionRepository persists per-client-per-day conversation contexts.
type SessionRepository interface {
	// UpsertCurrent returns the context for (phone, day), creating it on
	// first contact of the day. Concurrent first contacts collapse to a
	// single surviving document via the unique compound index.
	UpsertCurrent(ctx context.Context, phone, day string, client models.Client, now time.Time) (*models.SessionContext, error)
	// GetCurrent retrieves the context for (phone, day) without creating it.
	GetCurrent(ctx context.Context, phone, day string) (*models.SessionContext, error)
	// GetByID retrieves a context, current or historical, by its id.
	GetByID(ctx context.Context, id string) (*models.SessionContext, error)
	// TouchLastSeen bumps the context's last-seen timestamp.
	TouchLastSeen(ctx context.Context, id string, now time.Time) error
	// AppendSummary appends a note to the session's rolling summary. The
	// summary is opaque to the core.
	AppendSummary(ctx context.Context, id, note string, now time.Time) error
}
