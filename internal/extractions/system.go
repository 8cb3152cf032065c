package extractions

import (
	"context"

	"github.com/google/uuid"

	"github.com/plazo-io/plazo/pipeline"
)

// System defines the public contract for extraction domain operations.
type System interface {
	Handler() *Handler

	// Process runs the full pipeline against a stored document and
	// persists every stage's output. Returns a pipeline.FatalError when
	// the primary extraction stage cannot produce a result.
	Process(ctx context.Context, documentID uuid.UUID, purpose pipeline.Purpose) (*ProcessResult, error)

	// ProcessBatch processes multiple documents concurrently. Individual
	// failures are reported per document and never abort the batch.
	ProcessBatch(ctx context.Context, documentIDs []uuid.UUID, purpose pipeline.Purpose) []BatchResult

	// FindExtraction returns the most recent preprocessing hint record
	// for a document.
	FindExtraction(ctx context.Context, documentID uuid.UUID) (*Extraction, error)

	// FindValidation returns the most recent verdict for an entity.
	FindValidation(ctx context.Context, validationType string, entityID uuid.UUID) (*Validation, error)
}
