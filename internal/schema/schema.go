// Package schema defines the classification output contracts.
//
// Each Definition is a named, ordered set of field descriptors. The set of
// definitions is fixed at build time; Resolve and List are safe for
// concurrent use because nothing here mutates after package init.
package schema

import (
	"fmt"
	"strings"
)

// Kind enumerates the primitive field kinds a definition may declare.
type Kind string

const (
	KindEnum       Kind = "enum"
	KindFloat      Kind = "float"
	KindInt        Kind = "int"
	KindString     Kind = "string"
	KindStringList Kind = "string_list"
	KindBool       Kind = "bool"
)

// FieldSpec describes one field of a classification result. Description is
// used verbatim in the structured-call declaration sent to the model.
type FieldSpec struct {
	Name        string
	Kind        Kind
	Required    bool
	Description string

	// Constraints. Nil/zero means unconstrained.
	Enum   []string // KindEnum: allowed values
	Min    *float64 // KindFloat/KindInt: inclusive lower bound
	Max    *float64 // KindFloat/KindInt: inclusive upper bound
	MinLen int      // KindString: minimum length, 0 = none
	MaxLen int      // KindString: maximum length, 0 = none
}

// Definition is a named output contract plus the extra prompt instructions
// it needs. Addendum is carried as data so the prompt builder never branches
// on schema names.
type Definition struct {
	Name     string
	Fields   []FieldSpec
	Addendum string
}

// Field returns the descriptor for name, if declared.
func (d *Definition) Field(name string) (FieldSpec, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// RequiredFields returns the names of all required fields, in declaration
// order.
func (d *Definition) RequiredFields() []string {
	var names []string
	for _, f := range d.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// UnknownSchemaError is returned by Resolve for names not in the registry.
// The message enumerates every valid name so callers can self-correct.
type UnknownSchemaError struct {
	Name      string
	Available []string
}

func (e *UnknownSchemaError) Error() string {
	return fmt.Sprintf("Unknown schema '%s'. Available schemas: %s",
		e.Name, strings.Join(e.Available, ", "))
}

// Resolve looks up a definition by name.
func Resolve(name string) (*Definition, error) {
	def, ok := registry[name]
	if !ok {
		return nil, &UnknownSchemaError{Name: name, Available: List()}
	}
	return def, nil
}

// List returns all schema names in registration order. The returned slice is
// a copy; the order is stable across calls.
func List() []string {
	names := make([]string, len(order))
	copy(names, order)
	return names
}

// DefaultName is the schema used when callers do not pick one.
const DefaultName = "standard"
