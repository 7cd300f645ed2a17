package openapi

import "maps"

// NewComponents creates Components with the shared error schema and responses.
func NewComponents() *Components {
	errorContent := map[string]*MediaType{
		"application/json": {Schema: SchemaRef("Error")},
	}

	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type:        "object",
				Description: "Error envelope returned for every non-2xx response",
				Properties: map[string]*Schema{
					"error": {Type: "string", Description: "Human-readable reason"},
				},
				Required: []string{"error"},
			},
		},
		Responses: map[string]*Response{
			"BadRequest": {
				Description: "The request input was unusable",
				Content:     errorContent,
			},
			"PayloadTooLarge": {
				Description: "The request body exceeds the upload limit",
				Content:     errorContent,
			},
			"ServerError": {
				Description: "Media preprocessing or upstream analysis failed",
				Content:     errorContent,
			},
		},
	}
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges the given responses into the component responses.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}
