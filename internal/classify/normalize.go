package classify

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
)

// normalizeFields enforces the success invariants on validated arguments:
// confidence becomes a float64 clamped to [0,1], and type must be one of the
// two classification labels.
//
// A confidence the backend could not format as a number is replaced with 0.5
// instead of failing the call. Small local models mangle numeric formatting
// often enough that hard-failing here would throw away otherwise usable
// classifications; the substitution is logged so it stays visible.
func normalizeFields(fields map[string]any) (map[string]any, error) {
	conf, ok := coerceConfidence(fields["confidence"])
	if !ok {
		slog.Warn("confidence not coercible to a number, substituting fallback",
			slog.Any("value", fields["confidence"]),
			slog.Float64("fallback", 0.5),
		)
		conf = 0.5
	}
	if conf < 0 {
		conf = 0
	} else if conf > 1 {
		conf = 1
	}
	fields["confidence"] = conf

	typ, isString := fields["type"].(string)
	if !isString || (typ != "prompt" && typ != "workflow") {
		return nil, fmt.Errorf("invalid value %v for field \"type\": want \"prompt\" or \"workflow\"", fields["type"])
	}

	return fields, nil
}

// coerceConfidence converts whatever the backend produced into a float64.
// The bool reports whether the value was a genuinely finite number: NaN and
// ±Inf count as non-numeric, since they can neither be clamped into [0,1]
// nor marshaled back out as JSON.
func coerceConfidence(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, isFinite(val)
	case float32:
		f := float64(val)
		return f, isFinite(f)
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil && isFinite(f)
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || !isFinite(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
