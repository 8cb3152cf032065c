// Package clients implements the client domain for Plazo.
// It provides types, data access, and HTTP handlers for the law
// practice clients whose case files the pipeline analyzes.
package clients

import (
	"time"

	"github.com/google/uuid"
)

// Client represents a law practice client. Inactive clients keep their
// case files but are excluded from default listings; deletion is
// permanent and only allowed when no case files remain.
type Client struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contact_email"`
	Phone        *string   `json:"phone"`
	Notes        *string   `json:"notes"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to register a new client.
type CreateCommand struct {
	Name         string  `json:"name"`
	ContactEmail string  `json:"contact_email"`
	Phone        *string `json:"phone"`
	Notes        *string `json:"notes"`
}

// UpdateCommand carries the data needed to update an existing client.
type UpdateCommand struct {
	Name         string  `json:"name"`
	ContactEmail string  `json:"contact_email"`
	Phone        *string `json:"phone"`
	Notes        *string `json:"notes"`
}
