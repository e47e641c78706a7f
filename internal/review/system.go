package review

import (
	"context"

	"github.com/google/uuid"

	"github.com/verdantapp/verdant/pkg/pagination"
)

// System defines the public contract for review-queue operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Entry], error)

	Find(ctx context.Context, noteID uuid.UUID) (*Entry, error)

	// Resolve marks a pending entry as resolved by the named reviewer.
	// Resolving a non-pending entry returns ErrInvalidStatus.
	Resolve(ctx context.Context, noteID uuid.UUID, cmd ResolveCommand) (*Entry, error)
}
