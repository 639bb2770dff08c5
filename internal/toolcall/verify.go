package toolcall

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"taskclass/internal/schema"
)

// VerifyDeclarations compiles the parameter schema of every built-in
// definition. Run once at startup so a malformed declaration surfaces when
// the process boots instead of inside some later request.
func VerifyDeclarations() error {
	for _, name := range schema.List() {
		def, err := schema.Resolve(name)
		if err != nil {
			return err
		}
		if _, err := compileParameters(Declare(def)); err != nil {
			return fmt.Errorf("schema %q: %w", name, err)
		}
	}
	return nil
}

// compileParameters round-trips the declaration's parameter object through
// JSON and compiles it, proving it is a well-formed JSON Schema.
func compileParameters(d Declaration) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(d.Parameters)
	if err != nil {
		return nil, fmt.Errorf("marshaling parameters: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling parameters: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("declaration.json", doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}

	compiled, err := compiler.Compile("declaration.json")
	if err != nil {
		return nil, fmt.Errorf("compiling parameters: %w", err)
	}
	return compiled, nil
}
