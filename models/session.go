package models

import "time"

// SessionContext is the per-client-per-day conversational state handle.
// Exactly one context is current for a given (phone, day) pair; contexts
// from prior days are retained but never resolved again.
type SessionContext struct {
	ID         string    `bson:"id" json:"id"`         // UUID
	Phone      string    `bson:"phone" json:"phone"`   // client identity
	Day        string    `bson:"day" json:"day"`       // "2006-01-02", business-local calendar day
	Client     Client    `bson:"client" json:"client"` // snapshot at resolve time; ledger stays authoritative
	Summary    string    `bson:"summary,omitempty" json:"summary,omitempty"` // rolling digest, opaque to the core
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	LastSeenAt time.Time `bson:"last_seen_at" json:"last_seen_at"`
}
