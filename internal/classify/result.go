package classify

// Result is the uniform envelope every classification produces, success or
// failure. It is the only thing callers ever see; no error crosses this
// boundary any other way.
//
// Invariants: Success==false ⟺ Fields is empty and ErrorMessage is set;
// Success==true ⟺ Fields carries at least type and confidence, with
// confidence in [0,1] and type one of "prompt"/"workflow".
type Result struct {
	Fields       map[string]any `json:"result,omitzero"`
	SchemaName   string         `json:"schema_name"`
	ModelID      string         `json:"model_id"`
	LatencyMS    float64        `json:"latency_ms"`
	Success      bool           `json:"success"`
	ErrorMessage *string        `json:"error_message"`
}
