// Package toolcall turns a schema definition into a structured-call
// declaration and validates the arguments the model sends back.
//
// The declaration is what constrains a free-text model to machine-parseable
// output: instead of prose, the model is asked to "call" classify_text with
// arguments matching the definition's fields. Declarations are built from the
// static field table, never from reflection over Go types.
package toolcall

import (
	"fmt"

	"taskclass/internal/prompt"
	"taskclass/internal/schema"
)

// Declaration is a single-purpose structured-call spec derived from one
// definition. It is ephemeral: built per request and never reused across
// requests with different schemas.
type Declaration struct {
	Name        string
	Description string
	Parameters  map[string]any // JSON Schema object describing the arguments
}

const declarationDescription = `Classify the input text as prompt or workflow based on the analysis.

Classifications:
- prompt: Single-step requests, questions, greetings, simple tasks
- workflow: Multi-step tasks requiring coordination, orchestration, or sequential operations`

// Declare builds the structured-call declaration for a definition. The
// parameter schema mirrors the field descriptors one to one: name, JSON type,
// constraints, required flag, and the description verbatim.
func Declare(def *schema.Definition) Declaration {
	props := make(map[string]any, len(def.Fields))
	var required []any

	for _, f := range def.Fields {
		props[f.Name] = fieldSchema(f)
		if f.Required {
			required = append(required, f.Name)
		}
	}

	params := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		params["required"] = required
	}

	return Declaration{
		Name:        prompt.CallName,
		Description: declarationDescription,
		Parameters:  params,
	}
}

func fieldSchema(f schema.FieldSpec) map[string]any {
	p := map[string]any{
		"description": f.Description,
	}

	switch f.Kind {
	case schema.KindEnum:
		p["type"] = "string"
		values := make([]any, len(f.Enum))
		for i, v := range f.Enum {
			values[i] = v
		}
		p["enum"] = values
	case schema.KindFloat:
		p["type"] = "number"
		if f.Min != nil {
			p["minimum"] = *f.Min
		}
		if f.Max != nil {
			p["maximum"] = *f.Max
		}
	case schema.KindInt:
		p["type"] = "integer"
		if f.Min != nil {
			p["minimum"] = *f.Min
		}
		if f.Max != nil {
			p["maximum"] = *f.Max
		}
	case schema.KindString:
		p["type"] = "string"
		if f.MinLen > 0 {
			p["minLength"] = float64(f.MinLen)
		}
		if f.MaxLen > 0 {
			p["maxLength"] = float64(f.MaxLen)
		}
	case schema.KindStringList:
		p["type"] = "array"
		p["items"] = map[string]any{"type": "string"}
	case schema.KindBool:
		p["type"] = "boolean"
	}

	return p
}

// MissingFieldError reports arguments that omit a required core field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q in structured-call arguments", e.Field)
}

// ValidateArgs filters raw model arguments against a definition.
//
// type and confidence must be present; anything the definition does not
// declare is silently dropped (models over-generate), and declared fields the
// model omitted stay unset rather than being defaulted.
func ValidateArgs(def *schema.Definition, raw map[string]any) (map[string]any, error) {
	for _, core := range []string{"type", "confidence"} {
		if _, ok := raw[core]; !ok {
			return nil, &MissingFieldError{Field: core}
		}
	}

	out := make(map[string]any, len(raw))
	for name, value := range raw {
		if _, declared := def.Field(name); declared {
			out[name] = value
		}
	}
	return out, nil
}
