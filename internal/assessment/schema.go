package assessment

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const payloadSchemaURL = "schema://prediction-payload.json"

// payloadSchema pins the request body to exactly eight numeric keys.
var payloadSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"age":                map[string]any{"type": "number"},
		"attendance_percent": map[string]any{"type": "number"},
		"avg_marks":          map[string]any{"type": "number"},
		"prev_failures":      map[string]any{"type": "integer", "minimum": 0, "maximum": 3},
		"parents_education":  map[string]any{"type": "integer", "minimum": 0, "maximum": 7},
		"family_income":      map[string]any{"type": "integer", "minimum": 0, "maximum": 5},
		"extracurricular":    map[string]any{"type": "integer", "minimum": 0},
		"behavior_issues":    map[string]any{"type": "integer", "minimum": 0, "maximum": 4},
	},
	"required": []any{
		"age", "attendance_percent", "avg_marks", "prev_failures",
		"parents_education", "family_income", "extracurricular", "behavior_issues",
	},
	"additionalProperties": false,
}

var (
	compiledOnce   sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func compilePayloadSchema() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		// The compiler wants a plain decoded JSON value, so round-trip the map.
		raw, err := json.Marshal(payloadSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal payload schema: %w", err)
			return
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			compileErr = fmt.Errorf("parse payload schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(payloadSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(payloadSchemaURL)
	})
	return compiledSchema, compileErr
}

// Validate checks the JSON form of the payload against the request schema.
func (p Payload) Validate() error {
	sch, err := compilePayloadSchema()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse payload: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("payload schema validation failed: %w", err)
	}
	return nil
}
