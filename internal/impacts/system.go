package impacts

import (
	"context"

	"github.com/google/uuid"

	"github.com/verdantapp/verdant/internal/pipeline"
	"github.com/verdantapp/verdant/pkg/pagination"
)

// System defines the public contract for note-impact domain operations.
type System interface {
	Handler() *Handler

	// Process runs the pipeline for one note and persists the outcome:
	// an ImpactRecord upsert keyed by note id and, when the confidence
	// gate trips, a pending review-queue entry in the same transaction.
	Process(ctx context.Context, cmd ProcessCommand) (*pipeline.Outcome, error)

	// Dispatch runs Process on a detached goroutine with its own bounded
	// context. Failures are logged, never returned; the caller's success
	// path is independent of the pipeline's.
	Dispatch(cmd ProcessCommand)

	// ProcessBatch classifies many notes with bounded concurrency.
	// Per-note failures are reported in the results; the returned error
	// covers only batch-level cancellation.
	ProcessBatch(ctx context.Context, cmds []ProcessCommand) ([]BatchResult, error)

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[ImpactRecord], error)

	Find(ctx context.Context, noteID uuid.UUID) (*ImpactRecord, error)
	Summarize(ctx context.Context, userID *uuid.UUID) (*Summary, error)
}
