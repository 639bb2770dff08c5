package classify

import (
	"errors"
	"fmt"

	"taskclass/internal/llm"
	"taskclass/internal/schema"
	"taskclass/internal/toolcall"
)

// Error codes for classification failures.
const (
	ErrCodeUnknownSchema        = "UNKNOWN_SCHEMA"
	ErrCodeInvalidInput         = "INVALID_INPUT"
	ErrCodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
	ErrCodeNoToolInvocation     = "NO_TOOL_INVOCATION"
	ErrCodeTimeout              = "TIMEOUT"
	ErrCodeBackendUnavailable   = "BACKEND_UNAVAILABLE"
	ErrCodeClassification       = "CLASSIFICATION_ERROR"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{Code: ErrCodeInvalidInput, Message: message}
}

// wrapPipelineError attaches the taxonomy code matching wherever in the
// pipeline err came from. The cause's message is kept intact so envelope
// consumers see the original failure text.
func wrapPipelineError(err error) *CodedError {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded
	}

	code := ErrCodeClassification

	var unknownSchema *schema.UnknownSchemaError
	var missingField *toolcall.MissingFieldError
	var timeout *llm.TimeoutError
	var backend *llm.BackendError

	switch {
	case errors.As(err, &unknownSchema):
		code = ErrCodeUnknownSchema
	case errors.As(err, &missingField):
		code = ErrCodeMissingRequiredField
	case errors.Is(err, llm.ErrNoToolInvocation):
		code = ErrCodeNoToolInvocation
	case errors.As(err, &timeout):
		code = ErrCodeTimeout
	case errors.As(err, &backend):
		code = ErrCodeBackendUnavailable
	}

	return &CodedError{Code: code, Message: err.Error(), Cause: err}
}
