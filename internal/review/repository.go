package review

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/verdantapp/verdant/pkg/pagination"
	"github.com/verdantapp/verdant/pkg/query"
	"github.com/verdantapp/verdant/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a review repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "review"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Entry], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "NoteContent", "Reasoning")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count review entries: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("query review entries: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, noteID uuid.UUID) (*Entry, error) {
	q, args := query.NewBuilder(projection).BuildSingle("NoteID", noteID)

	entry, err := repository.QueryOne(ctx, r.db, q, args, scanEntry)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &entry, nil
}

func (r *repo) Resolve(ctx context.Context, noteID uuid.UUID, cmd ResolveCommand) (*Entry, error) {
	resolvedBy := strings.TrimSpace(cmd.ResolvedBy)
	if resolvedBy == "" {
		return nil, fmt.Errorf("%w: resolved_by is required", ErrInvalidRequest)
	}

	entry, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Entry, error) {
		var status string
		checkQ := `SELECT status FROM impact_review_queue WHERE note_id = $1 FOR UPDATE`
		if err := tx.QueryRowContext(ctx, checkQ, noteID).Scan(&status); err != nil {
			return Entry{}, repository.MapError(err, ErrNotFound, ErrDuplicate)
		}

		if status != StatusPending {
			return Entry{}, fmt.Errorf("%w: status is %s", ErrInvalidStatus, status)
		}

		resolveQ := `
			UPDATE impact_review_queue
			SET status = $2, resolved_by = $3, resolved_at = NOW()
			WHERE note_id = $1
			RETURNING note_id, user_id, note_content, ai_category, ai_confidence,
				ai_reasoning, status, resolved_by, resolved_at, created_at`

		return scanEntry(tx.QueryRowContext(ctx, resolveQ, noteID, StatusResolved, resolvedBy))
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("review entry resolved",
		"note_id", noteID,
		"resolved_by", resolvedBy,
	)
	return &entry, nil
}
