package classify

import (
	"context"
	"encoding/json"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskclass/internal/llm"
	"taskclass/internal/schema"
)

// stubInvoker is an in-memory backend: canned arguments or error, with an
// optional injected delay.
type stubInvoker struct {
	mu    sync.Mutex
	args  map[string]any
	err   error
	delay time.Duration

	calls []llm.InvokeRequest
}

func (s *stubInvoker) Invoke(ctx context.Context, req llm.InvokeRequest) (map[string]any, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	s.mu.Unlock()

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, &llm.TimeoutError{Timeout: req.Timeout}
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	// Copy so the classifier can't mutate shared test state.
	out := make(map[string]any, len(s.args))
	for k, v := range s.args {
		out[k] = v
	}
	return out, nil
}

func (s *stubInvoker) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func newClassifier(inv llm.Invoker) *Classifier {
	return New(Options{}, inv)
}

// assertEnvelope checks the success/failure duality every result must hold.
func assertEnvelope(t *testing.T, res Result) {
	t.Helper()
	assert.GreaterOrEqual(t, res.LatencyMS, 0.0)
	if res.Success {
		assert.Nil(t, res.ErrorMessage)
		require.Contains(t, res.Fields, "type")
		require.Contains(t, res.Fields, "confidence")
		conf, ok := res.Fields["confidence"].(float64)
		require.True(t, ok)
		assert.GreaterOrEqual(t, conf, 0.0)
		assert.LessOrEqual(t, conf, 1.0)
		assert.Contains(t, []any{"prompt", "workflow"}, res.Fields["type"])
	} else {
		assert.Empty(t, res.Fields)
		require.NotNil(t, res.ErrorMessage)
		assert.NotEmpty(t, *res.ErrorMessage)
	}
}

func TestClassifySuccess(t *testing.T) {
	inv := &stubInvoker{args: map[string]any{
		"type":       "workflow",
		"confidence": 0.85,
		"reasoning":  "several coordinated steps",
	}}
	c := newClassifier(inv)

	res := c.Classify(context.Background(), Request{
		InputText:  "create a new project with tests and documentation",
		SchemaName: "standard",
	})

	assertEnvelope(t, res)
	assert.True(t, res.Success)
	assert.Equal(t, "standard", res.SchemaName)
	assert.Equal(t, DefaultModelID, res.ModelID)
	assert.Equal(t, "workflow", res.Fields["type"])
	assert.Equal(t, 0.85, res.Fields["confidence"])
	assert.Equal(t, "several coordinated steps", res.Fields["reasoning"])
}

func TestClassifyDefaults(t *testing.T) {
	inv := &stubInvoker{args: map[string]any{"type": "prompt", "confidence": 0.9}}
	c := newClassifier(inv)

	res := c.Classify(context.Background(), Request{InputText: "hi"})
	require.True(t, res.Success)
	assert.Equal(t, schema.DefaultName, res.SchemaName)

	require.Len(t, inv.calls, 1)
	call := inv.calls[0]
	assert.Equal(t, DefaultModelID, call.ModelID)
	assert.Equal(t, DefaultTemperature, call.Temperature)
	assert.Equal(t, DefaultTimeout, call.Timeout)
	assert.Contains(t, call.Prompt, "hi")
	assert.Equal(t, "classify_text", call.Declaration.Name)
}

func TestClassifyPerRequestOverrides(t *testing.T) {
	inv := &stubInvoker{args: map[string]any{"type": "prompt", "confidence": 0.9}}
	c := newClassifier(inv)

	temp := 0.7
	res := c.Classify(context.Background(), Request{
		InputText:   "hi",
		SchemaName:  "minimal",
		ModelID:     "qwen2.5:7b",
		Temperature: &temp,
		Timeout:     5 * time.Second,
	})
	require.True(t, res.Success)
	assert.Equal(t, "qwen2.5:7b", res.ModelID)

	call := inv.calls[0]
	assert.Equal(t, "qwen2.5:7b", call.ModelID)
	assert.Equal(t, 0.7, call.Temperature)
	assert.Equal(t, 5*time.Second, call.Timeout)
}

func TestClassifyConfidenceCoercion(t *testing.T) {
	tests := []struct {
		name       string
		confidence any
		want       float64
	}{
		{"float stays", 0.85, 0.85},
		{"numeric string parses", "0.75", 0.75},
		{"integer widens", 1, 1.0},
		{"json number parses", json.Number("0.6"), 0.6},
		{"non-numeric string falls back", "very confident", 0.5},
		{"bool falls back", true, 0.5},
		{"nil falls back", nil, 0.5},
		{"above range clamps", 1.7, 1.0},
		{"below range clamps", -0.3, 0.0},
		{"NaN string falls back", "NaN", 0.5},
		{"NaN float falls back", math.NaN(), 0.5},
		{"Inf string falls back", "+Inf", 0.5},
		{"Inf float falls back", math.Inf(1), 0.5},
		{"negative Inf falls back", math.Inf(-1), 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &stubInvoker{args: map[string]any{"type": "prompt", "confidence": tt.confidence}}
			res := newClassifier(inv).Classify(context.Background(), Request{InputText: "hi", SchemaName: "minimal"})

			// Coercion failure is recovered, never escalated.
			require.True(t, res.Success)
			assertEnvelope(t, res)
			assert.Equal(t, tt.want, res.Fields["confidence"])

			// The envelope must survive marshaling no matter what the
			// backend put in confidence (NaN/Inf would break it).
			_, err := json.Marshal(res)
			require.NoError(t, err)
		})
	}
}

func TestClassifyUnknownSchema(t *testing.T) {
	inv := &stubInvoker{args: map[string]any{"type": "prompt", "confidence": 0.9}}
	c := newClassifier(inv)

	res := c.Classify(context.Background(), Request{InputText: "hi", SchemaName: "nonexistent"})
	assertEnvelope(t, res)
	assert.False(t, res.Success)
	assert.Contains(t, *res.ErrorMessage, "Unknown schema")
	for _, name := range schema.List() {
		assert.Contains(t, *res.ErrorMessage, name)
	}
	// The backend is never contacted for an unresolvable schema.
	assert.Zero(t, inv.callCount())
}

func TestClassifyEmptyInput(t *testing.T) {
	inv := &stubInvoker{args: map[string]any{"type": "prompt", "confidence": 0.9}}
	res := newClassifier(inv).Classify(context.Background(), Request{})

	assertEnvelope(t, res)
	assert.False(t, res.Success)
	assert.Contains(t, *res.ErrorMessage, "input_text is required")
	assert.Zero(t, inv.callCount())
}

func TestClassifyFailureEnvelopes(t *testing.T) {
	tests := []struct {
		name     string
		invoker  *stubInvoker
		contains string
	}{
		{
			name:     "missing type",
			invoker:  &stubInvoker{args: map[string]any{"confidence": 0.9}},
			contains: "MISSING_REQUIRED_FIELD",
		},
		{
			name:     "missing confidence",
			invoker:  &stubInvoker{args: map[string]any{"type": "prompt"}},
			contains: "MISSING_REQUIRED_FIELD",
		},
		{
			name:     "no tool invocation",
			invoker:  &stubInvoker{err: llm.ErrNoToolInvocation},
			contains: "NO_TOOL_INVOCATION",
		},
		{
			name:     "timeout",
			invoker:  &stubInvoker{err: &llm.TimeoutError{Timeout: 30 * time.Second}},
			contains: "TIMEOUT",
		},
		{
			name:     "backend unavailable",
			invoker:  &stubInvoker{err: &llm.BackendError{Cause: assert.AnError}},
			contains: "BACKEND_UNAVAILABLE",
		},
		{
			name:     "invalid type value",
			invoker:  &stubInvoker{args: map[string]any{"type": "command", "confidence": 0.9}},
			contains: "invalid value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newClassifier(tt.invoker).Classify(context.Background(), Request{
				InputText:  "do something",
				SchemaName: "minimal",
			})
			assertEnvelope(t, res)
			assert.False(t, res.Success)
			assert.Contains(t, *res.ErrorMessage, tt.contains)
		})
	}
}

func TestClassifyTimeoutEnvelopeMentionsTimeout(t *testing.T) {
	inv := &stubInvoker{err: &llm.TimeoutError{Timeout: 100 * time.Millisecond}}
	res := newClassifier(inv).Classify(context.Background(), Request{InputText: "hi"})

	assert.False(t, res.Success)
	assert.Empty(t, res.Fields)
	assert.Contains(t, *res.ErrorMessage, "no backend response within")
}

func TestClassifyLatencyTracksBackendDelay(t *testing.T) {
	const delay = 120 * time.Millisecond

	fast := newClassifier(&stubInvoker{args: map[string]any{"type": "prompt", "confidence": 0.9}})
	slow := newClassifier(&stubInvoker{
		args:  map[string]any{"type": "prompt", "confidence": 0.9},
		delay: delay,
	})

	fastRes := fast.Classify(context.Background(), Request{InputText: "hi"})
	slowRes := slow.Classify(context.Background(), Request{InputText: "hi"})

	require.True(t, fastRes.Success)
	require.True(t, slowRes.Success)
	assert.GreaterOrEqual(t, slowRes.LatencyMS, float64(delay.Milliseconds()))
	assert.Greater(t, slowRes.LatencyMS, fastRes.LatencyMS)
}

func TestClassifyLatencyCoversTimeToFailure(t *testing.T) {
	const delay = 80 * time.Millisecond
	inv := &stubInvoker{err: llm.ErrNoToolInvocation, delay: delay}
	res := newClassifier(inv).Classify(context.Background(), Request{InputText: "hi"})

	assert.False(t, res.Success)
	assert.GreaterOrEqual(t, res.LatencyMS, float64(delay.Milliseconds()))
}

type panickingInvoker struct{}

func (panickingInvoker) Invoke(context.Context, llm.InvokeRequest) (map[string]any, error) {
	panic("backend went sideways")
}

func TestClassifyRecoversPanics(t *testing.T) {
	c := newClassifier(panickingInvoker{})

	var res Result
	assert.NotPanics(t, func() {
		res = c.Classify(context.Background(), Request{InputText: "hi"})
	})
	assertEnvelope(t, res)
	assert.False(t, res.Success)
	assert.Contains(t, *res.ErrorMessage, "panic")
}

func TestClassifyDropsUndeclaredFields(t *testing.T) {
	inv := &stubInvoker{args: map[string]any{
		"type":        "prompt",
		"confidence":  0.9,
		"mood":        "cheerful",
		"temperature": 0.7,
	}}
	res := newClassifier(inv).Classify(context.Background(), Request{InputText: "hi", SchemaName: "minimal"})

	require.True(t, res.Success)
	assert.NotContains(t, res.Fields, "mood")
	assert.NotContains(t, res.Fields, "temperature")
}

func TestResultJSONShape(t *testing.T) {
	inv := &stubInvoker{err: &llm.BackendError{Cause: assert.AnError}}
	res := newClassifier(inv).Classify(context.Background(), Request{InputText: "hi"})

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, map[string]any{}, decoded["result"])
	assert.Equal(t, false, decoded["success"])
	assert.NotNil(t, decoded["error_message"])

	// Success results serialize error_message as explicit null.
	okRes := newClassifier(&stubInvoker{args: map[string]any{"type": "prompt", "confidence": 0.9}}).
		Classify(context.Background(), Request{InputText: "hi"})
	raw, err = json.Marshal(okRes)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &decoded))
	val, present := decoded["error_message"]
	assert.True(t, present)
	assert.Nil(t, val)
}

func TestClassifyBatch(t *testing.T) {
	inv := &stubInvoker{args: map[string]any{"type": "prompt", "confidence": 0.9}}
	c := newClassifier(inv)

	reqs := []Request{
		{InputText: "hi"},
		{InputText: "what is recursion?", SchemaName: "minimal"},
		{InputText: "build and deploy", SchemaName: "nonexistent"},
		{InputText: ""},
		{InputText: "explain channels"},
	}
	results := c.ClassifyBatch(context.Background(), reqs)
	require.Len(t, results, len(reqs))

	for _, res := range results {
		assertEnvelope(t, res)
	}
	assert.True(t, results[0].Success)
	assert.True(t, results[1].Success)
	assert.Equal(t, "minimal", results[1].SchemaName)
	assert.False(t, results[2].Success)
	assert.Contains(t, *results[2].ErrorMessage, "Unknown schema")
	assert.False(t, results[3].Success)
	assert.True(t, results[4].Success)

	// Only the three well-formed requests reached the backend.
	assert.Equal(t, 3, inv.callCount())
}
