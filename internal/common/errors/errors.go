// Package errors provides standardized error handling for the analysis pipeline.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeExtractionFailed   ErrorCode = "EXTRACTION_FAILED"
	ErrCodeUnsupportedBank    ErrorCode = "UNSUPPORTED_BANK"
	ErrCodeParserFailed       ErrorCode = "PARSER_FAILED"
	ErrCodePatternNotFound    ErrorCode = "PATTERN_NOT_FOUND"
	ErrCodeAggregationEmpty   ErrorCode = "AGGREGATION_EMPTY"
	ErrCodeBureauSectionEmpty ErrorCode = "BUREAU_SECTION_EMPTY"
	ErrCodePersistenceFailed  ErrorCode = "PERSISTENCE_FAILED"
	ErrCodeNotificationFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeLenderQueryFailed  ErrorCode = "LENDER_QUERY_FAILED"
	ErrCodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
)

// Sentinel errors used for control flow between pipeline stages.
var (
	// ErrExtractionFailed distinguishes "extraction broken" from "nothing found".
	ErrExtractionFailed = errors.New("text extraction failed")
	// ErrNoUsableData is returned when zero statements in a batch parse
	// successfully; callers must not treat it as a zero-valued profile.
	ErrNoUsableData = errors.New("no usable statement data")
	// ErrSectionNotFound marks an absent bureau report section; other sections
	// keep being extracted.
	ErrSectionNotFound = errors.New("report section not found")
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewExtractionFailedError marks a document whose text could not be extracted
// by either the native or the OCR path. Non-retryable: the document itself is
// corrupt or unsupported.
func NewExtractionFailedError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExtractionFailed,
		Message:   "Document text extraction failed",
		Details:   fmt.Sprintf("path: %s, error: %v", path, err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnsupportedBankError marks a statement whose institution has no parsing
// strategy registered.
func NewUnsupportedBankError(institution string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnsupportedBank,
		Message:   "No parser registered for institution",
		Details:   fmt.Sprintf("institution: %s", institution),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewParserFailedError wraps a per-document parser failure. The batch keeps
// processing sibling statements.
func NewParserFailedError(institution string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeParserFailed,
		Message:   "Statement parser failed",
		Details:   fmt.Sprintf("institution: %s, error: %v", institution, err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPersistenceFailedError is fatal for the run that hits it.
func NewPersistenceFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePersistenceFailed,
		Message:   "Failed to persist analysis results",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationFailedError is logged and never fails the analysis.
func NewNotificationFailedError(target string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationFailed,
		Message:   "Outbound notification delivery failed",
		Details:   fmt.Sprintf("target: %s, error: %v", target, err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewLenderQueryFailedError wraps lender criteria lookup failures.
func NewLenderQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLenderQueryFailed,
		Message:   "Lender criteria lookup failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError marks a malformed analysis request.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid analysis request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
