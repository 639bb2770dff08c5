// Package classify composes the schema registry, prompt builder, tool
// adapter, and inference client behind a single classification entry point.
package classify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"taskclass/internal/llm"
	"taskclass/internal/prompt"
	"taskclass/internal/schema"
	"taskclass/internal/toolcall"
)

// Defaults used when Options leaves a knob unset.
const (
	DefaultBaseURL     = "http://localhost:11434"
	DefaultModelID     = "llama3.2:3b"
	DefaultTemperature = 0.1
	DefaultTimeout     = 30 * time.Second
	DefaultBatchSize   = 4
)

// Options configures a Classifier. Set once at construction; never mutated
// afterwards, so a single Classifier is safe for concurrent calls.
type Options struct {
	DefaultModelID     string
	DefaultTemperature float64
	DefaultTimeout     time.Duration
	BatchWorkers       int
}

// Request is one classification call. Zero-valued optional fields fall back
// to the classifier's defaults; per-request model and temperature travel in
// the request rather than through shared state.
type Request struct {
	InputText   string
	SchemaName  string
	ModelID     string
	Temperature *float64
	Timeout     time.Duration
}

// Classifier is the facade external callers use. Construct once with New and
// share freely; it holds no per-call state.
type Classifier struct {
	opts    Options
	invoker llm.Invoker
}

// New creates a Classifier over the given inference backend.
func New(opts Options, invoker llm.Invoker) *Classifier {
	if opts.DefaultModelID == "" {
		opts.DefaultModelID = DefaultModelID
	}
	if opts.DefaultTemperature == 0 {
		opts.DefaultTemperature = DefaultTemperature
	}
	if opts.DefaultTimeout <= 0 {
		opts.DefaultTimeout = DefaultTimeout
	}
	if opts.BatchWorkers <= 0 {
		opts.BatchWorkers = DefaultBatchSize
	}
	return &Classifier{opts: opts, invoker: invoker}
}

// Classify runs one full classification: resolve schema, build prompt,
// declare the structured call, invoke the backend, validate and normalize.
// It always returns a well-formed Result; failures of any kind are folded
// into the envelope with the latency to the point of failure.
func (c *Classifier) Classify(ctx context.Context, req Request) (res Result) {
	start := time.Now()
	requestID := uuid.NewString()

	schemaName := req.SchemaName
	if schemaName == "" {
		schemaName = schema.DefaultName
	}
	modelID := req.ModelID
	if modelID == "" {
		modelID = c.opts.DefaultModelID
	}

	defer func() {
		if r := recover(); r != nil {
			res = c.failure(schemaName, modelID, start, requestID,
				&CodedError{Code: ErrCodeClassification, Message: fmt.Sprintf("panic: %v", r)})
		}
	}()

	fields, err := c.run(ctx, req, schemaName, modelID)
	if err != nil {
		return c.failure(schemaName, modelID, start, requestID, wrapPipelineError(err))
	}

	latency := elapsedMS(start)
	slog.Info("classification completed",
		slog.String("request_id", requestID),
		slog.String("schema", schemaName),
		slog.String("model", modelID),
		slog.Any("type", fields["type"]),
		slog.Float64("latency_ms", latency),
	)

	return Result{
		Fields:     fields,
		SchemaName: schemaName,
		ModelID:    modelID,
		LatencyMS:  latency,
		Success:    true,
	}
}

// run executes the pipeline and returns the normalized fields. Any error
// short-circuits straight to the failure envelope in Classify.
func (c *Classifier) run(ctx context.Context, req Request, schemaName, modelID string) (map[string]any, error) {
	if req.InputText == "" {
		return nil, ErrInvalidInput("input_text is required")
	}

	def, err := schema.Resolve(schemaName)
	if err != nil {
		return nil, err
	}

	temperature := c.opts.DefaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.opts.DefaultTimeout
	}

	raw, err := c.invoker.Invoke(ctx, llm.InvokeRequest{
		Prompt:      prompt.Build(req.InputText, def),
		Declaration: toolcall.Declare(def),
		ModelID:     modelID,
		Temperature: temperature,
		Timeout:     timeout,
	})
	if err != nil {
		return nil, err
	}

	fields, err := toolcall.ValidateArgs(def, raw)
	if err != nil {
		return nil, err
	}
	return normalizeFields(fields)
}

func (c *Classifier) failure(schemaName, modelID string, start time.Time, requestID string, coded *CodedError) Result {
	latency := elapsedMS(start)
	slog.Warn("classification failed",
		slog.String("request_id", requestID),
		slog.String("schema", schemaName),
		slog.String("model", modelID),
		slog.String("code", coded.Code),
		slog.String("error", coded.Message),
		slog.Float64("latency_ms", latency),
	)

	msg := coded.Error()
	return Result{
		Fields:       map[string]any{},
		SchemaName:   schemaName,
		ModelID:      modelID,
		LatencyMS:    latency,
		Success:      false,
		ErrorMessage: &msg,
	}
}

func elapsedMS(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}

// ClassifyBatch classifies each request independently with bounded
// parallelism. Results are positionally aligned with the input; one item
// failing never affects the others.
func (c *Classifier) ClassifyBatch(ctx context.Context, reqs []Request) []Result {
	results := make([]Result, len(reqs))

	var g errgroup.Group
	g.SetLimit(c.opts.BatchWorkers)
	for i, req := range reqs {
		g.Go(func() error {
			results[i] = c.Classify(ctx, req)
			return nil
		})
	}
	_ = g.Wait() // individual failures live inside each Result
	return results
}
