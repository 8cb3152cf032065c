package deadlines

import (
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/plazo-io/plazo/pkg/query"
	"github.com/plazo-io/plazo/pkg/repository"
	"github.com/plazo-io/plazo/pkg/workdays"
)

var projection = query.
	NewProjectionMap("public", "deadlines", "dl").
	Project("id", "ID").
	Project("document_id", "DocumentID").
	Project("extraction_id", "ExtractionID").
	Project("due_date", "Date").
	Project("description", "Description").
	Project("working_days", "WorkingDays").
	Project("risk_level", "Risk").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field: "due_date",
}

// Filters contains optional filtering criteria for deadline queries.
// Nil fields are ignored. DateFrom and DateTo bound the due date window
// inclusively.
type Filters struct {
	DocumentID *uuid.UUID `json:"document_id,omitempty"`
	// Risk matches the stored risk level, assessed at extraction time.
	// Returned rows are reassessed against the current calendar, so their
	// reported level may have advanced past the filtered one.
	Risk     *workdays.RiskLevel `json:"risk_level,omitempty"`
	DateFrom *time.Time          `json:"date_from,omitempty"`
	DateTo   *time.Time          `json:"date_to,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("DocumentID", f.DocumentID).
		WhereEquals("Risk", f.Risk).
		WhereGte("Date", f.DateFrom).
		WhereLte("Date", f.DateTo)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// Dates use ISO format (YYYY-MM-DD).
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if d := values.Get("document_id"); d != "" {
		if id, err := uuid.Parse(d); err == nil {
			f.DocumentID = &id
		}
	}

	if r := values.Get("risk_level"); r != "" && workdays.ValidLevel(r) {
		risk := workdays.RiskLevel(r)
		f.Risk = &risk
	}

	if from := values.Get("date_from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			f.DateFrom = &t
		}
	}

	if to := values.Get("date_to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			f.DateTo = &t
		}
	}

	return f
}

func scanDeadline(s repository.Scanner) (Deadline, error) {
	var d Deadline
	err := s.Scan(
		&d.ID,
		&d.DocumentID,
		&d.ExtractionID,
		&d.Date,
		&d.Description,
		&d.WorkingDays,
		&d.Risk,
		&d.CreatedAt,
	)
	return d, err
}
