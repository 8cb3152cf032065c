package api

import (
	"net/http"

	"github.com/plazo-io/plazo/internal/config"
	"github.com/plazo-io/plazo/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) {
	routes.Register(
		mux,
		domain.Clients.Handler().Routes(),
		domain.Documents.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		domain.Prompts.Handler().Routes(),
		domain.Deadlines.Handler().Routes(),
		domain.Extractions.Handler().Routes(),
	)
}
