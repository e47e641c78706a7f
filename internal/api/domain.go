package api

import (
	"github.com/verdantapp/verdant/internal/impacts"
	"github.com/verdantapp/verdant/internal/review"
	"github.com/verdantapp/verdant/internal/suggestions"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Impacts     impacts.System
	Review      review.System
	Suggestions suggestions.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	impactsSystem := impacts.New(
		runtime.Database.Connection(),
		runtime.Agent,
		runtime.Pipeline.ClassifyTimeoutDuration(),
		runtime.Pipeline.BatchWorkers,
		runtime.Logger,
		runtime.Pagination,
	)

	reviewSystem := review.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	suggestionsSystem := suggestions.New(
		runtime.Agent,
		runtime.Pipeline.SuggestTimeoutDuration(),
		runtime.Logger,
	)

	return &Domain{
		Impacts:     impactsSystem,
		Review:      reviewSystem,
		Suggestions: suggestionsSystem,
	}
}
