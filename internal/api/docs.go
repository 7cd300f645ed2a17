package api

import (
	"fmt"
	"strings"

	"veritas/internal/config"
	"veritas/internal/payload"
	"veritas/pkg/openapi"
)

// BuildSpec assembles the OpenAPI document for the mounted API routes.
func BuildSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.Docs.Title, cfg.Version)
	spec.SetDescription(cfg.API.Docs.Description)

	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"VerifyRequest":        verifyRequestSchema(),
		"VerdictReport":        verdictReportSchema(),
		"VerifyResult":         verifyResultSchema(),
		"UniversalCheckResult": universalCheckResultSchema(),
	})

	base := cfg.API.BasePath

	spec.Paths[base+"/verify"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Describe the verify endpoint",
			Tags:    []string{"checks"},
			Responses: map[int]*openapi.Response{
				200: usageResponse(),
			},
		},
		Post: &openapi.Operation{
			Summary: "Verify a claim or URL",
			Description: fmt.Sprintf(
				"Accepts a JSON object, a bare JSON string, urlencoded or multipart fields, "+
					"raw text, or query parameters. Claim aliases: %s. URL aliases: %s.",
				strings.Join(payload.ClaimAliases(), ", "),
				strings.Join(payload.URLAliases(), ", "),
			),
			Tags: []string{"checks"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("claim", "string", "Claim text", false),
				openapi.QueryParam("url", "string", "URL to inspect", false),
			},
			RequestBody: openapi.RequestBodyJSON("VerifyRequest", false),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Verification report", "VerifyResult"),
				400: openapi.ResponseRef("BadRequest"),
				500: openapi.ResponseRef("ServerError"),
			},
		},
	}

	spec.Paths[base+"/universal-check"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Describe the universal check endpoint",
			Tags:    []string{"checks"},
			Responses: map[int]*openapi.Response{
				200: usageResponse(),
			},
		},
		Post: &openapi.Operation{
			Summary: "Run a deep claim or media check",
			Description: "Analyzes an uploaded image or video when a file part is present, " +
				"otherwise verifies the claim or URL fields.",
			Tags:        []string{"checks"},
			RequestBody: universalCheckRequestBody(),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Analysis report", "UniversalCheckResult"),
				400: openapi.ResponseRef("BadRequest"),
				413: openapi.ResponseRef("PayloadTooLarge"),
				500: openapi.ResponseRef("ServerError"),
			},
		},
	}

	spec.Paths[base+"/health"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Service health",
			Tags:    []string{"service"},
			Responses: map[int]*openapi.Response{
				200: serviceStatusResponse(false),
			},
		},
	}

	spec.Paths[base+"/config"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Redacted service configuration",
			Tags:    []string{"service"},
			Responses: map[int]*openapi.Response{
				200: serviceStatusResponse(true),
			},
		},
	}

	return spec
}

func verifyRequestSchema() *openapi.Schema {
	return &openapi.Schema{
		Type:        "object",
		Description: "Canonical request shape; any documented alias key is accepted",
		Properties: map[string]*openapi.Schema{
			"claim":         {Type: "string", Description: "Claim text to verify", Example: "The earth is flat"},
			"url":           {Type: "string", Description: "URL to inspect"},
			"extra_context": {Type: "string", Description: "Additional requester context"},
			"deep":          {Type: "boolean", Description: "Request a deeper reasoning pass", Default: false},
		},
	}
}

func reportProperties() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"verdict": {
			Type: "string",
			Description: "Claim vocabulary: true, likely_true, false, likely_false, mixed, unclear. " +
				"Media vocabulary: real, likely_real, ai_generated, deepfake, unclear.",
		},
		"confidence": {Type: "number", Minimum: f64(0), Maximum: f64(1)},
		"summary":    {Type: "string"},
		"signals":    {Type: "array", Items: &openapi.Schema{Type: "string"}},
		"caveats":    {Type: "array", Items: &openapi.Schema{Type: "string"}},
		"sources":    {Type: "array", Items: &openapi.Schema{Type: "string"}},
		"raw":        {Description: "Raw model output the report was normalized from"},
	}
}

func verdictReportSchema() *openapi.Schema {
	return &openapi.Schema{
		Type:       "object",
		Properties: reportProperties(),
		Required:   []string{"verdict", "confidence", "summary", "signals", "caveats", "sources"},
	}
}

func verifyResultSchema() *openapi.Schema {
	return &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"ok": {Type: "boolean"},
			"input": {
				Type:        "object",
				Description: "Echo of the normalized claim and URL; absent values are null",
				Properties: map[string]*openapi.Schema{
					"claim": {Type: "string"},
					"url":   {Type: "string"},
				},
			},
			"result": openapi.SchemaRef("VerdictReport"),
		},
		Required: []string{"ok", "input", "result"},
	}
}

func universalCheckResultSchema() *openapi.Schema {
	properties := reportProperties()
	properties["status"] = &openapi.Schema{Type: "string", Example: "ok"}
	properties["analysis_type"] = &openapi.Schema{Type: "string", Enum: []any{"text", "media"}}
	properties["media_kind"] = &openapi.Schema{Type: "string", Enum: []any{"image", "video"}}
	properties["source"] = &openapi.Schema{Type: "string", Description: "Storage key of the retained upload"}

	return &openapi.Schema{
		Type:       "object",
		Properties: properties,
		Required:   []string{"status", "analysis_type", "verdict", "confidence", "summary"},
	}
}

func universalCheckRequestBody() *openapi.RequestBody {
	return &openapi.RequestBody{
		Description: "Form fields plus an optional media file",
		Content: map[string]*openapi.MediaType{
			"multipart/form-data": {
				Schema: &openapi.Schema{
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"claim":         {Type: "string"},
						"url":           {Type: "string"},
						"extra_context": {Type: "string"},
						"deep":          {Type: "boolean", Default: false},
						"file":          {Type: "string", Format: "binary", Description: "Image or video upload"},
					},
				},
			},
		},
	}
}

func usageResponse() *openapi.Response {
	return &openapi.Response{
		Description: "Usage information",
		Content: map[string]*openapi.MediaType{
			"application/json": {
				Schema: &openapi.Schema{
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"message": {Type: "string"},
					},
				},
			},
		},
	}
}

func serviceStatusResponse(withSettings bool) *openapi.Response {
	properties := map[string]*openapi.Schema{
		"status":          {Type: "string", Example: "ok"},
		"service":         {Type: "string"},
		"allowed_origins": {Type: "array", Items: &openapi.Schema{Type: "string"}},
	}
	if withSettings {
		properties["version"] = &openapi.Schema{Type: "string"}
		properties["provider"] = &openapi.Schema{Type: "string"}
		properties["model"] = &openapi.Schema{Type: "string"}
		properties["search_enabled"] = &openapi.Schema{Type: "boolean"}
		properties["max_frames"] = &openapi.Schema{Type: "integer"}
	}

	return &openapi.Response{
		Description: "Service status",
		Content: map[string]*openapi.MediaType{
			"application/json": {
				Schema: &openapi.Schema{Type: "object", Properties: properties},
			},
		},
	}
}

func f64(v float64) *float64 {
	return &v
}
