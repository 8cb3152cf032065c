package documents

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/plazo-io/plazo/pkg/query"
	"github.com/plazo-io/plazo/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "documents", "d").
	Project("id", "ID").
	Project("client_id", "ClientID").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("page_count", "PageCount").
	Project("storage_key", "StorageKey").
	Project("status", "Status").
	Project("uploaded_at", "UploadedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "uploaded_at",
	Descending: true,
}

// Filters contains optional filtering criteria for document queries.
// Nil fields are ignored. ClientID and Status use exact matching.
// Filename uses case-insensitive contains matching.
type Filters struct {
	ClientID *uuid.UUID `json:"client_id,omitempty"`
	Filename *string    `json:"filename,omitempty"`
	Status   *string    `json:"status,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("ClientID", f.ClientID).
		WhereContains("Filename", f.Filename).
		WhereEquals("Status", f.Status)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if c := values.Get("client_id"); c != "" {
		if id, err := uuid.Parse(c); err == nil {
			f.ClientID = &id
		}
	}

	if n := values.Get("filename"); n != "" {
		f.Filename = &n
	}

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	return f
}

func scanDocument(s repository.Scanner) (Document, error) {
	var d Document
	err := s.Scan(
		&d.ID,
		&d.ClientID,
		&d.Filename,
		&d.ContentType,
		&d.SizeBytes,
		&d.PageCount,
		&d.StorageKey,
		&d.Status,
		&d.UploadedAt,
		&d.UpdatedAt,
	)
	return d, err
}
