package api

import (
	"net/http"

	"github.com/verdantapp/verdant/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	routes.Register(
		mux,
		domain.Impacts.Handler().Routes(),
		domain.Review.Handler().Routes(),
		domain.Suggestions.Handler().Routes(),
	)
}
