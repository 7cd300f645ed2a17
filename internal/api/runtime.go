package api

import (
	"veritas/internal/checks"
	"veritas/internal/config"
	"veritas/internal/infrastructure"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Analysis config.AnalysisConfig
	Media    config.MediaConfig
	Info     checks.ServiceInfo
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Storage:   infra.Storage,
		},
		Analysis: cfg.Analysis,
		Media:    cfg.Media,
		Info: checks.ServiceInfo{
			Service:        cfg.Service,
			Version:        cfg.Version,
			AllowedOrigins: cfg.API.CORS.Origins,
			Provider:       cfg.Analysis.Provider,
			Model:          cfg.Analysis.Model,
			SearchEnabled:  cfg.Analysis.Search.Enabled(),
			MaxFrames:      cfg.Media.MaxFrames,
		},
	}
}
