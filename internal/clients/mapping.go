package clients

import (
	"net/url"
	"strconv"

	"github.com/plazo-io/plazo/pkg/query"
	"github.com/plazo-io/plazo/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "clients", "c").
	Project("id", "ID").
	Project("name", "Name").
	Project("contact_email", "ContactEmail").
	Project("phone", "Phone").
	Project("notes", "Notes").
	Project("active", "Active").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field: "name",
}

// Filters contains optional filtering criteria for client queries.
// Nil fields are ignored. Name and ContactEmail use case-insensitive
// contains matching.
type Filters struct {
	Name         *string `json:"name,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
	Active       *bool   `json:"active,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.
		WhereContains("Name", f.Name).
		WhereContains("ContactEmail", f.ContactEmail)

	if f.Active != nil {
		b.WhereEquals("Active", *f.Active)
	}

	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	if e := values.Get("contact_email"); e != "" {
		f.ContactEmail = &e
	}

	if a := values.Get("active"); a != "" {
		if active, err := strconv.ParseBool(a); err == nil {
			f.Active = &active
		}
	}

	return f
}

func scanClient(s repository.Scanner) (Client, error) {
	var c Client
	err := s.Scan(
		&c.ID,
		&c.Name,
		&c.ContactEmail,
		&c.Phone,
		&c.Notes,
		&c.Active,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}
