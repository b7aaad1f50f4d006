package session

import (
	"context"
	"time"

	clientRepo "salonassist/database/repository/client"
	sessionRepo "salonassist/database/repository/session"
	"salonassist/models"
)

// Manager resolves per-client-per-day conversation contexts for the
// conversational layer.
type Manager interface {
	// Resolve returns the current context for the client's phone number and
	// the business-local calendar day of now, creating client and context on
	// first contact. Contexts from prior days are retained but never
	// returned for a later now.
	Resolve(ctx context.Context, phone string, now time.Time) (*models.SessionContext, error)
	// AppendSummary persists a note onto the context's rolling digest. The
	// digest is opaque to the core.
	AppendSummary(ctx context.Context, sessionID, note string) error
	// UpdateClientProfile records profile details the conversational layer
	// learned (e.g., the client finally gave their name).
	UpdateClientProfile(ctx context.Context, phone, name, preferences string) error
}

// ContextCache is the read-through cache in front of the session store.
type ContextCache interface {
	Get(ctx context.Context, phone, day string) (*models.SessionContext, error)
	Set(ctx context.Context, sessionCtx *models.SessionContext) error
	Clear(ctx context.Context, phone, day string) error
}

// DefaultManager implements Manager backed by the session and client
// repositories, with a cache in front of the session store.
type DefaultManager struct {
	Sessions sessionRepo.SessionRepository
	Clients  clientRepo.ClientRepository
	Cache    ContextCache
	Location *time.Location // salon's local timezone
}
