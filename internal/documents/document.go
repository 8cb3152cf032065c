// Package documents implements the case file domain for Plazo.
// It provides types, data access, and business logic for document
// upload, client association, metadata management, and blob storage
// integration.
package documents

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// Document processing statuses.
const (
	StatusUploaded   = "uploaded"
	StatusProcessing = "processing"
	StatusProcessed  = "processed"
	StatusFailed     = "failed"
)

// Document represents an uploaded case file with its metadata and blob
// storage reference. Status tracks pipeline progress: uploaded →
// processing → processed or failed.
type Document struct {
	ID          uuid.UUID `json:"id"`
	ClientID    uuid.UUID `json:"client_id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	PageCount   *int      `json:"page_count"`
	StorageKey  string    `json:"storage_key"`
	Status      string    `json:"status"`
	UploadedAt  time.Time `json:"uploaded_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DownloadResult carries a document blob stream with its stored metadata.
// The caller must close Body.
type DownloadResult struct {
	Body          io.ReadCloser
	Filename      string
	ContentType   string
	ContentLength int64
}

// CreateCommand carries the data needed to upload and register a new
// case file. Data holds the raw file bytes. PageCount is optional and
// may be extracted by the caller via pdfcpu; nil values are stored as
// NULL.
type CreateCommand struct {
	Data        []byte
	ClientID    uuid.UUID
	Filename    string
	ContentType string
	PageCount   *int
}
