package deadlines

import (
	"context"

	"github.com/google/uuid"

	"github.com/plazo-io/plazo/pkg/pagination"
)

// System defines the public contract for deadline domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Deadline], error)

	Find(ctx context.Context, id uuid.UUID) (*Deadline, error)

	// CreateBatch persists the deadlines produced by one pipeline run
	// in a single transaction, replacing any prior deadlines recorded
	// for the document.
	CreateBatch(ctx context.Context, cmds []CreateCommand) ([]Deadline, error)

	// Upcoming lists deadlines due within the next n working days,
	// soonest first.
	Upcoming(ctx context.Context, days int) ([]Deadline, error)

	// Stats summarizes tracked deadlines by risk level, optionally
	// scoped to one client's case files.
	Stats(ctx context.Context, clientID *uuid.UUID) (*Stats, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
