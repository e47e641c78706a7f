package impacts

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/verdantapp/verdant/internal/pipeline"
	"github.com/verdantapp/verdant/pkg/handlers"
	"github.com/verdantapp/verdant/pkg/pagination"
	"github.com/verdantapp/verdant/pkg/routes"
)

// Handler provides HTTP endpoints for note-impact operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// ClassifyResponse is the payload returned for a synchronous classification.
type ClassifyResponse struct {
	Success     bool              `json:"success"`
	Category    string            `json:"category"`
	Confidence  float64           `json:"confidence"`
	NeedsReview bool              `json:"needs_review"`
	Outcome     *pipeline.Outcome `json:"impact,omitempty"`
}

// BatchRequest carries the notes for a batch classification run.
type BatchRequest struct {
	Notes []ProcessCommand `json:"notes"`
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "impacts"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for impact endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/impacts",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/summary", Handler: h.Summary},
			{Method: "GET", Pattern: "/{noteId}", Handler: h.Find},
			{Method: "POST", Pattern: "/search", Handler: h.Search},
			{Method: "POST", Pattern: "/classify", Handler: h.Classify},
			{Method: "POST", Pattern: "/classify/async", Handler: h.ClassifyAsync},
			{Method: "POST", Pattern: "/classify/batch", Handler: h.ClassifyBatch},
		},
	}
}

// List returns a paginated list of impact records with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single impact record by its note UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("noteId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	rec, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, rec)
}

// Search accepts a JSON body with pagination and filter criteria and returns matching records.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Summary returns aggregated impact totals, optionally scoped to one user
// via the user_id query parameter.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	var userID *uuid.UUID
	if u := r.URL.Query().Get("user_id"); u != "" {
		id, err := uuid.Parse(u)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest,
				fmt.Errorf("%w: invalid user_id", ErrInvalidRequest))
			return
		}
		userID = &id
	}

	summary, err := h.sys.Summarize(r.Context(), userID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, summary)
}

// Classify runs the pipeline synchronously for one note and returns the outcome.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	cmd, err := decodeCommand(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	outcome, err := h.sys.Process(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ClassifyResponse{
		Success:     true,
		Category:    string(outcome.Result.Category),
		Confidence:  outcome.Result.Confidence,
		NeedsReview: outcome.NeedsReview,
		Outcome:     outcome,
	})
}

// ClassifyAsync accepts a note for classification and returns immediately
// with 202 Accepted. The pipeline runs on a detached goroutine.
func (h *Handler) ClassifyAsync(w http.ResponseWriter, r *http.Request) {
	cmd, err := decodeCommand(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	h.sys.Dispatch(cmd)

	handlers.RespondJSON(w, http.StatusAccepted, map[string]any{
		"accepted": true,
		"note_id":  cmd.NoteID,
	})
}

// ClassifyBatch classifies many notes with bounded concurrency and returns
// a per-note result list.
func (h *Handler) ClassifyBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if len(req.Notes) == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest,
			fmt.Errorf("%w: notes must not be empty", ErrInvalidRequest))
		return
	}

	for _, cmd := range req.Notes {
		if err := validateCommand(cmd); err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
			return
		}
	}

	results, err := h.sys.ProcessBatch(r.Context(), req.Notes)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, results)
}

func decodeCommand(r *http.Request) (ProcessCommand, error) {
	var cmd ProcessCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		return cmd, err
	}
	return cmd, validateCommand(cmd)
}

func validateCommand(cmd ProcessCommand) error {
	if cmd.NoteID == uuid.Nil {
		return fmt.Errorf("%w: note_id is required", ErrInvalidRequest)
	}
	if strings.TrimSpace(cmd.NoteContent) == "" {
		return fmt.Errorf("%w: note_content is required", ErrInvalidRequest)
	}
	return nil
}
