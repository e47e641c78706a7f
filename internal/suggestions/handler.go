package suggestions

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/verdantapp/verdant/pkg/handlers"
	"github.com/verdantapp/verdant/pkg/routes"
)

// Handler provides HTTP endpoints for suggestion operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// GenerateResponse wraps the suggestion list for the generate endpoint.
type GenerateResponse struct {
	Suggestions []string `json:"suggestions"`
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "suggestions"),
	}
}

// Routes returns the route group definition for suggestion endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/suggestions",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Generate},
		},
	}
}

// Generate accepts article context and returns three action suggestions.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var cmd Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Generate(r.Context(), cmd)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrInvalidRequest) {
			status = http.StatusBadRequest
		}
		handlers.RespondError(w, h.logger, status, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, GenerateResponse{Suggestions: result})
}
