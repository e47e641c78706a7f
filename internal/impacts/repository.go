package impacts

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/verdantapp/verdant/internal/classifier"
	"github.com/verdantapp/verdant/internal/pipeline"
	"github.com/verdantapp/verdant/pkg/pagination"
	"github.com/verdantapp/verdant/pkg/query"
	"github.com/verdantapp/verdant/pkg/repository"
)

// dispatchTimeout bounds one detached pipeline invocation end to end,
// covering the model call timeout plus persistence.
const dispatchTimeout = 30 * time.Second

type repo struct {
	db           *sql.DB
	rt           *pipeline.Runtime
	agent        gaconfig.AgentConfig
	batchWorkers int
	logger       *slog.Logger
	pagination   pagination.Config
}

// New creates an impacts repository implementing the System interface.
// It internally constructs the classifier and pipeline runtime from the
// provided agent configuration.
func New(
	db *sql.DB,
	agent gaconfig.AgentConfig,
	classifyTimeout time.Duration,
	batchWorkers int,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	rt := &pipeline.Runtime{
		Classifier: classifier.New(agent, classifyTimeout, logger),
		Logger:     logger.With("workflow", "impact"),
	}
	return NewWithRuntime(db, rt, agent, batchWorkers, logger, pagination)
}

// NewWithRuntime creates an impacts repository around an existing pipeline
// runtime, letting callers substitute the classifier.
func NewWithRuntime(
	db *sql.DB,
	rt *pipeline.Runtime,
	agent gaconfig.AgentConfig,
	batchWorkers int,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:           db,
		rt:           rt,
		agent:        agent,
		batchWorkers: batchWorkers,
		logger:       logger.With("system", "impacts"),
		pagination:   pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Process(ctx context.Context, cmd ProcessCommand) (*pipeline.Outcome, error) {
	outcome, err := pipeline.Execute(ctx, r.rt, cmd.NoteContent)
	if err != nil {
		return nil, fmt.Errorf("process note %s: %w", cmd.NoteID, err)
	}

	if err := r.persist(ctx, cmd, outcome); err != nil {
		return nil, err
	}

	r.logger.Info("note impact recorded",
		"note_id", cmd.NoteID,
		"category", outcome.Result.Category,
		"confidence", outcome.Result.Confidence,
		"needs_review", outcome.NeedsReview,
	)
	return outcome, nil
}

// persist upserts the impact record and, when the confidence gate trips,
// the pending review-queue entry in one transaction so the record and its
// queue entry cannot diverge.
func (r *repo) persist(ctx context.Context, cmd ProcessCommand, outcome *pipeline.Outcome) error {
	upsertQ := `
		INSERT INTO note_impacts(
			note_id, user_id, action_category, action_type, quantity, unit,
			confidence, ai_reasoning, co2_saved_kg, plastic_saved_g,
			water_saved_liters, energy_saved_kwh, formula_id, formula_source,
			needs_review, model_name, provider_name
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (note_id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			action_category = EXCLUDED.action_category,
			action_type = EXCLUDED.action_type,
			quantity = EXCLUDED.quantity,
			unit = EXCLUDED.unit,
			confidence = EXCLUDED.confidence,
			ai_reasoning = EXCLUDED.ai_reasoning,
			co2_saved_kg = EXCLUDED.co2_saved_kg,
			plastic_saved_g = EXCLUDED.plastic_saved_g,
			water_saved_liters = EXCLUDED.water_saved_liters,
			energy_saved_kwh = EXCLUDED.energy_saved_kwh,
			formula_id = EXCLUDED.formula_id,
			formula_source = EXCLUDED.formula_source,
			needs_review = EXCLUDED.needs_review,
			model_name = EXCLUDED.model_name,
			provider_name = EXCLUDED.provider_name,
			classified_at = NOW()`

	reviewQ := `
		INSERT INTO impact_review_queue(
			note_id, user_id, note_content, ai_category, ai_confidence,
			ai_reasoning, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending')
		ON CONFLICT (note_id) DO UPDATE SET
			note_content = EXCLUDED.note_content,
			ai_category = EXCLUDED.ai_category,
			ai_confidence = EXCLUDED.ai_confidence,
			ai_reasoning = EXCLUDED.ai_reasoning,
			status = 'pending',
			resolved_by = NULL,
			resolved_at = NULL`

	result := outcome.Result
	estimate := outcome.Estimate

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if _, err := tx.ExecContext(ctx, upsertQ,
			cmd.NoteID, cmd.UserID,
			result.Category, result.ActionType, result.Quantity, result.Unit,
			result.Confidence, result.Reasoning,
			estimate.CO2Kg, estimate.PlasticG, estimate.WaterLiters, estimate.EnergyKwh,
			estimate.FormulaID, estimate.FormulaSource,
			outcome.NeedsReview,
			r.agent.Model.Name, r.agent.Provider.Name,
		); err != nil {
			return struct{}{}, fmt.Errorf("upsert impact record: %w", err)
		}

		if outcome.NeedsReview {
			if _, err := tx.ExecContext(ctx, reviewQ,
				cmd.NoteID, cmd.UserID, cmd.NoteContent,
				result.Category, result.Confidence, result.Reasoning,
			); err != nil {
				return struct{}{}, fmt.Errorf("upsert review entry: %w", err)
			}
		}

		return struct{}{}, nil
	})

	return err
}

func (r *repo) Dispatch(cmd ProcessCommand) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		if _, err := r.Process(ctx, cmd); err != nil {
			r.logger.Error("dispatched classification failed",
				"note_id", cmd.NoteID,
				"error", err,
			)
		}
	}()
}

func (r *repo) ProcessBatch(ctx context.Context, cmds []ProcessCommand) ([]BatchResult, error) {
	results := make([]BatchResult, len(cmds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(len(cmds), r.batchWorkers))

	for i, cmd := range cmds {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			outcome, err := r.Process(gctx, cmd)
			if err != nil {
				results[i] = BatchResult{NoteID: cmd.NoteID, Error: err.Error()}
				return nil
			}

			results[i] = BatchResult{NoteID: cmd.NoteID, Outcome: outcome}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("process batch: %w", err)
	}

	return results, nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[ImpactRecord], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Reasoning", "ActionType")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count impact records: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanImpact)
	if err != nil {
		return nil, fmt.Errorf("query impact records: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, noteID uuid.UUID) (*ImpactRecord, error) {
	q, args := query.NewBuilder(projection).BuildSingle("NoteID", noteID)

	rec, err := repository.QueryOne(ctx, r.db, q, args, scanImpact)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &rec, nil
}

func (r *repo) Summarize(ctx context.Context, userID *uuid.UUID) (*Summary, error) {
	totalsQ := `
		SELECT
			COALESCE(SUM(co2_saved_kg), 0),
			COALESCE(SUM(plastic_saved_g), 0),
			COALESCE(SUM(water_saved_liters), 0),
			COALESCE(SUM(energy_saved_kwh), 0),
			COUNT(*)
		FROM note_impacts`

	breakdownQ := `
		SELECT action_category, COUNT(*)
		FROM note_impacts`

	var args []any
	if userID != nil {
		totalsQ += " WHERE user_id = $1"
		breakdownQ += " WHERE user_id = $1"
		args = append(args, *userID)
	}
	breakdownQ += " GROUP BY action_category"

	var s Summary
	if err := r.db.QueryRowContext(ctx, totalsQ, args...).Scan(
		&s.TotalCO2Kg,
		&s.TotalPlasticG,
		&s.TotalWaterLiters,
		&s.TotalEnergyKwh,
		&s.TotalNotes,
	); err != nil {
		return nil, fmt.Errorf("sum impact totals: %w", err)
	}

	type categoryCount struct {
		category string
		count    int
	}

	counts, err := repository.QueryMany(ctx, r.db, breakdownQ, args,
		func(sc repository.Scanner) (categoryCount, error) {
			var c categoryCount
			err := sc.Scan(&c.category, &c.count)
			return c, err
		})
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}

	s.Categories = make(map[string]int, len(counts))
	for _, c := range counts {
		s.Categories[c.category] = c.count
	}

	return &s, nil
}

func workerCount(jobs, limit int) int {
	return max(min(limit, jobs), 1)
}
