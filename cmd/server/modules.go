package main

import (
	"encoding/json"
	"net/http"

	"veritas/internal/api"
	"veritas/internal/config"
	"veritas/internal/infrastructure"
	"veritas/pkg/module"
	"veritas/pkg/openapi"
)

type Modules struct {
	API *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{
		API: apiModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
}

func buildRouter(infra *infrastructure.Infrastructure, cfg *config.Config) (*module.Router, error) {
	router := module.NewRouter()

	spec, err := openapi.MarshalJSON(api.BuildSpec(cfg))
	if err != nil {
		return nil, err
	}

	welcome := map[string]string{
		"message": "Welcome to " + cfg.API.Docs.Title,
		"docs":    "/openapi.json",
		"health":  cfg.API.BasePath + "/health",
		"config":  cfg.API.BasePath + "/config",
	}

	router.HandleNative("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(welcome)
	})

	router.HandleNative("GET /openapi.json", openapi.ServeSpec(spec))

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	return router, nil
}
