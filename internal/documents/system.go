package documents

import (
	"context"

	"github.com/google/uuid"

	"github.com/plazo-io/plazo/pkg/pagination"
)

// System defines the public contract for document domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Document], error)

	Find(ctx context.Context, id uuid.UUID) (*Document, error)
	Create(ctx context.Context, cmd CreateCommand) (*Document, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Download streams the original blob with its stored metadata.
	// The caller must close the result body.
	Download(ctx context.Context, id uuid.UUID) (*DownloadResult, error)

	// Text downloads the document blob and returns its content as a
	// string. Returns ErrNoText for binary content types the pipeline
	// cannot analyze.
	Text(ctx context.Context, id uuid.UUID) (string, error)

	// SetStatus records pipeline progress on the document.
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
}
