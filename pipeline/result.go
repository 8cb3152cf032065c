package pipeline

import (
	"fmt"

	"github.com/plazo-io/plazo/pkg/workdays"
)

// Purpose selects which authoritative result shape a pipeline run produces.
type Purpose string

const (
	PurposeClassify  Purpose = "classify"
	PurposeDeadlines Purpose = "deadlines"
)

// ParsePurpose converts s into a Purpose, rejecting unknown values.
func ParsePurpose(s string) (Purpose, error) {
	switch Purpose(s) {
	case PurposeClassify, PurposeDeadlines:
		return Purpose(s), nil
	default:
		return "", fmt.Errorf("unknown pipeline purpose: %q", s)
	}
}

// Classification is the authoritative document classification produced by
// the primary provider.
type Classification struct {
	DocType     string              `json:"doc_type"`
	Confidence  float64             `json:"confidence"`
	MatterID    string              `json:"matter_id,omitempty"`
	Tags        []string            `json:"tags"`
	KeyEntities map[string][]string `json:"key_entities"`
	Summary     string              `json:"summary"`
}

// Deadline is one authoritative deadline extracted from a document.
// WorkingDays and Risk are computed locally from the extracted date
// against the business calendar, never taken from the provider.
type Deadline struct {
	Date        string             `json:"date"`
	Description string             `json:"description"`
	WorkingDays int                `json:"working_days_remaining"`
	Risk        workdays.RiskLevel `json:"risk_level"`
}

// Result is the authoritative output of the primary extraction stage.
// Exactly one of Classification or Deadlines is populated, selected by
// Purpose.
type Result struct {
	Purpose        Purpose         `json:"purpose"`
	Classification *Classification `json:"classification,omitempty"`
	Deadlines      []Deadline      `json:"deadlines,omitempty"`
}
