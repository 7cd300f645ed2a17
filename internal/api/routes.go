package api

import (
	"net/http"

	"veritas/internal/config"
	"veritas/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	routes.Register(
		mux,
		domain.Checks.Handler(cfg.API.MaxUploadSizeBytes(), runtime.Info).Routes(),
	)
}
