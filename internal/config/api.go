package config

import (
	"fmt"
	"os"

	"veritas/pkg/formatting"
	"veritas/pkg/middleware"
	"veritas/pkg/openapi"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "VERITAS_CORS_ENABLED",
	Origins:          "VERITAS_CORS_ORIGINS",
	AllowedMethods:   "VERITAS_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "VERITAS_CORS_ALLOWED_HEADERS",
	AllowCredentials: "VERITAS_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "VERITAS_CORS_MAX_AGE",
}

var docsEnv = &openapi.ConfigEnv{
	Title:       "VERITAS_DOCS_TITLE",
	Description: "VERITAS_DOCS_DESCRIPTION",
}

// APIConfig holds API routing, upload limit, CORS, and docs settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	Docs          openapi.Config        `toml:"docs"`
}

func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return 50 * 1024 * 1024 // 50MB fallback
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS config.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Docs.Finalize(docsEnv); err != nil {
		return fmt.Errorf("docs: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Docs.Merge(&overlay.Docs)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "50MB"
	}
	if len(c.CORS.Origins) == 0 {
		c.CORS.Origins = []string{"http://localhost:3000"}
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("VERITAS_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("VERITAS_API_MAX_UPLOAD_SIZE"); v != "" {
		c.MaxUploadSize = v
	}
}
