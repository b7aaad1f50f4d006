package models

import "time"

// Client is a salon client, identified by their E.164 phone number.
// Clients are created on first contact and never hard-deleted.
type Client struct {
	Phone       string    `bson:"phone" json:"phone"`                             // E.164, unique
	Name        string    `bson:"name,omitempty" json:"name,omitempty"`           // display name, learned during conversation
	Preferences string    `bson:"preferences,omitempty" json:"preferences,omitempty"` // free-form notes (e.g., favourite colours)
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
