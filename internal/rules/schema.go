package rules

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildRuleFileJSONSchema returns the JSON-Schema (draft 2020-12 subset) the
// rule file must satisfy, as a generic map.
func BuildRuleFileJSONSchema() map[string]any {
	generalField := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"field_name": map[string]any{"type": "string", "minLength": 1},
			"patterns": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string", "minLength": 1},
				"minItems": 1,
			},
			"type":      map[string]any{"type": "string", "enum": []string{"string", "float", "date"}},
			"multiline": map[string]any{"type": "boolean"},
		},
		"required": []string{"field_name", "patterns", "type"},
	}

	column := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"field_name":          map[string]any{"type": "string", "minLength": 1},
			"decimal_separator":   map[string]any{"type": "string"},
			"thousands_separator": map[string]any{"type": "string"},
		},
		"required": []string{"field_name"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"general_fields": map[string]any{
				"type":  "array",
				"items": generalField,
			},
			"table_fields": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"columns": map[string]any{
						"type":  "array",
						"items": column,
					},
				},
			},
		},
	}
}

// ValidateRuleFile validates raw rule-file JSON against the rule schema.
func ValidateRuleFile(data []byte) error {
	b, err := json.Marshal(BuildRuleFileJSONSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("rules.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("rules.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal rules: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("rule file does not match schema: %w", err)
	}
	return nil
}
