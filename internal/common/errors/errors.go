// Package errors provides standardized error handling for the assistant and its BPMN workers.
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidQuestion   ErrorCode = "INVALID_QUESTION"
	ErrCodeInputParsing      ErrorCode = "INPUT_PARSING_FAILED"
	ErrCodeStoreQueryFailed  ErrorCode = "STORE_QUERY_FAILED"
	ErrCodeStoreTimeout      ErrorCode = "STORE_TIMEOUT"
	ErrCodeGenerationFailed  ErrorCode = "GENERATION_FAILED"
	ErrCodeGenerationTimeout ErrorCode = "GENERATION_TIMEOUT"
	ErrCodeCacheUnavailable  ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeExternalService   ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeTimeout           ErrorCode = "TIMEOUT"
	ErrCodeInternal          ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewInvalidQuestionError rejects blank or oversized questions.
func NewInvalidQuestionError(details string) *StandardError {
	return newError(ErrCodeInvalidQuestion, "Question is missing or invalid", details, false, nil)
}

// NewInputParsingError reports job variables that could not be decoded.
func NewInputParsingError(err error) *StandardError {
	return newError(ErrCodeInputParsing, "Failed to parse job variables", err.Error(), false, err)
}

// NewStoreQueryFailedError wraps a record store failure for the given entity kind.
func NewStoreQueryFailedError(kind string, err error) *StandardError {
	return newError(ErrCodeStoreQueryFailed, "Record store query failed",
		fmt.Sprintf("kind: %s, error: %s", kind, err.Error()), true, err)
}

// NewStoreTimeoutError reports a store call that exceeded its deadline.
func NewStoreTimeoutError(kind string, err error) *StandardError {
	return newError(ErrCodeStoreTimeout, "Record store query timeout",
		fmt.Sprintf("kind: %s", kind), true, err)
}

// NewGenerationFailedError wraps a failure of the text generation capability.
func NewGenerationFailedError(err error) *StandardError {
	return newError(ErrCodeGenerationFailed, "Answer generation failed", err.Error(), true, err)
}

// NewGenerationTimeoutError reports a generation call that exceeded its deadline.
func NewGenerationTimeoutError(err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return newError(ErrCodeGenerationTimeout, "Answer generation timeout", details, true, err)
}

// NewCacheUnavailableError is logged, never returned to callers.
func NewCacheUnavailableError(err error) *StandardError {
	return newError(ErrCodeCacheUnavailable, "Record cache unavailable", err.Error(), false, err)
}

// NewExternalServiceError creates a generic retryable external service error.
func NewExternalServiceError(service string, err error) *StandardError {
	return newError(ErrCodeExternalService, fmt.Sprintf("%s service error", service), err.Error(), true, err)
}

// NewTimeoutError creates a generic retryable timeout error.
func NewTimeoutError(service string, err error) *StandardError {
	return newError(ErrCodeTimeout, fmt.Sprintf("%s timeout", service), err.Error(), true, err)
}

// NewInternalError is the fallback for unexpected failures.
func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false, err)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidQuestion:   "INVALID_QUESTION",
	ErrCodeInputParsing:      "INPUT_PARSING_FAILED",
	ErrCodeStoreQueryFailed:  "STORE_QUERY_FAILED",
	ErrCodeStoreTimeout:      "STORE_TIMEOUT",
	ErrCodeGenerationFailed:  "GENERATION_FAILED",
	ErrCodeGenerationTimeout: "GENERATION_TIMEOUT",
	ErrCodeExternalService:   "EXTERNAL_SERVICE_ERROR",
	ErrCodeTimeout:           "TIMEOUT",
	ErrCodeInternal:          "INTERNAL_ERROR",
}

// GetRetryCount returns the job retry budget for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeStoreQueryFailed, ErrCodeExternalService:
		return 3
	case ErrCodeStoreTimeout, ErrCodeTimeout:
		return 2
	case ErrCodeGenerationFailed, ErrCodeGenerationTimeout:
		return 1
	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// AsStandardError normalizes any error into a StandardError.
// Context deadlines become TIMEOUT, everything else INTERNAL_ERROR.
func AsStandardError(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError("assistant", err)
	}
	return NewInternalError(err)
}

// CodeOf returns the code of err, or INTERNAL_ERROR when err is not a StandardError.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	return AsStandardError(err).Code
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "STORE") || strings.Contains(codeStr, "CACHE"):
		return "STORAGE"
	case strings.Contains(codeStr, "GENERATION"):
		return "AI"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "PARSING"):
		return "VALIDATION"
	case strings.Contains(codeStr, "EXTERNAL") || strings.Contains(codeStr, "TIMEOUT"):
		return "INTEGRATION"
	default:
		return "OTHER"
	}
}
