// Package deadlines implements the deadline tracking domain for Plazo.
// It persists the deadlines the pipeline extracts from case files and
// serves risk-oriented queries: upcoming windows, per-risk listings,
// and summary statistics. Working days and risk levels are recomputed
// against the business calendar on read so stored records never go
// stale as the calendar advances.
package deadlines

import (
	"time"

	"github.com/google/uuid"

	"github.com/plazo-io/plazo/pkg/workdays"
)

// Deadline represents one extracted deadline tied to a case file.
type Deadline struct {
	ID           uuid.UUID          `json:"id"`
	DocumentID   uuid.UUID          `json:"document_id"`
	ExtractionID *uuid.UUID         `json:"extraction_id"`
	Date         time.Time          `json:"date"`
	Description  string             `json:"description"`
	WorkingDays  int                `json:"working_days_remaining"`
	Risk         workdays.RiskLevel `json:"risk_level"`
	CreatedAt    time.Time          `json:"created_at"`
}

// CreateCommand carries one deadline to persist from a pipeline run.
type CreateCommand struct {
	DocumentID   uuid.UUID
	ExtractionID *uuid.UUID
	Date         time.Time
	Description  string
	WorkingDays  int
	Risk         workdays.RiskLevel
}

// Stats summarizes tracked deadlines by risk level.
type Stats struct {
	Total   int                        `json:"total"`
	ByRisk  map[workdays.RiskLevel]int `json:"by_risk"`
	Nearest *Deadline                  `json:"nearest,omitempty"`
}

// reassess recomputes working days and risk as of now.
func (d *Deadline) reassess(cal *workdays.Calendar, now time.Time) {
	d.WorkingDays, d.Risk = cal.Assess(now, d.Date)
}
