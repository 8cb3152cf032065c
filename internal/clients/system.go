package clients

import (
	"context"

	"github.com/google/uuid"

	"github.com/plazo-io/plazo/pkg/pagination"
)

// System defines the public contract for client domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Client], error)

	Find(ctx context.Context, id uuid.UUID) (*Client, error)
	Create(ctx context.Context, cmd CreateCommand) (*Client, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Client, error)

	// SetActive toggles the client's active flag. Inactive clients keep
	// their case files but drop out of active-filtered listings.
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*Client, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
