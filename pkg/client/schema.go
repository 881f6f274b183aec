package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// detailSchema is the structural contract of the detail endpoint. Node
// and edge ids accept both strings and integers; normalization picks a
// canonical form afterwards.
var detailSchema = map[string]any{
	"type":     "object",
	"required": []any{"workflow", "graph"},
	"properties": map[string]any{
		"workflow": map[string]any{
			"type":     "object",
			"required": []any{"name"},
			"properties": map[string]any{
				"name":      map[string]any{"type": "string"},
				"total_sla": map[string]any{"type": "number", "minimum": 0},
			},
		},
		"graph": map[string]any{
			"type":     "object",
			"required": []any{"nodes", "edges"},
			"properties": map[string]any{
				"nodes": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []any{"id", "name"},
						"properties": map[string]any{
							"id": map[string]any{"type": []any{"string", "integer"}},
						},
					},
				},
				"edges": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []any{"id"},
						"properties": map[string]any{
							"id": map[string]any{"type": []any{"string", "integer"}},
						},
					},
				},
			},
		},
	},
}

// updateGraphResponseSchema guards the reconciliation payload: the
// mapping must be an object of string values.
var updateGraphResponseSchema = map[string]any{
	"type":     "object",
	"required": []any{"temp_id_mapping"},
	"properties": map[string]any{
		"temp_id_mapping": map[string]any{
			"type":                 "object",
			"additionalProperties": map[string]any{"type": "string"},
		},
	},
}

// validateSchema validates a JSON document against the provided schema.
func validateSchema(document []byte, schema map[string]any) error {
	var payload any
	if err := json.Unmarshal(document, &payload); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	schemaLoader := gojsonschema.NewGoLoader(schema)
	dataLoader := gojsonschema.NewGoLoader(payload)

	result, err := gojsonschema.Validate(schemaLoader, dataLoader)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	if !result.Valid() {
		var descriptions []string
		for _, desc := range result.Errors() {
			descriptions = append(descriptions, desc.String())
		}

		return fmt.Errorf("%w: %s", ErrInvalidPayload, strings.Join(descriptions, "; "))
	}

	return nil
}
