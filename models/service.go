package models

// Service is a catalog entry the salon offers. The catalog is seeded at
// provisioning time and read-only to the scheduling engine.
type Service struct {
	ID              string `bson:"id" json:"id"`
	Name            string `bson:"name" json:"name"`
	Description     string `bson:"description,omitempty" json:"description,omitempty"`
	DurationMinutes int    `bson:"duration_minutes" json:"duration_minutes"` // must be a positive multiple of the slot granularity
	PriceCents      int64  `bson:"price_cents" json:"price_cents"`           // EUR cents
	Active          bool   `bson:"active" json:"active"`
}
