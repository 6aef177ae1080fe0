// Package errors defines the stable error codes used across provq. The
// query core never returns errors for no-data conditions (an unmatched
// selector, a file without a producer); errors exist for boundary misuse
// and for failures in external operations such as loading a crate.
package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// CrateNotFound indicates the crate metadata file could not be located
	CrateNotFound ErrorCode = "CRATE_NOT_FOUND"
	// MetadataInvalid indicates the crate metadata could not be decoded
	MetadataInvalid ErrorCode = "METADATA_INVALID"
	// NotTabular indicates a tabular view was requested for a non-CSV artifact
	NotTabular ErrorCode = "NOT_TABULAR"
	// EncodingFailed indicates a payload could not be rendered to TOON
	EncodingFailed ErrorCode = "ENCODING_FAILED"
	// CatalogUnavailable indicates the crate catalog database cannot be opened
	CatalogUnavailable ErrorCode = "CATALOG_UNAVAILABLE"
	// InvalidParameter indicates a malformed caller-supplied parameter
	InvalidParameter ErrorCode = "INVALID_PARAMETER"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Command     string `json:"command,omitempty"`
	Safe        bool   `json:"safe,omitempty"`
	Description string `json:"description,omitempty"`
}

// ProvError represents a provq error with code, message, and suggestions
type ProvError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a new ProvError
func New(code ErrorCode, message string, cause error) *ProvError {
	return &ProvError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: GetSuggestedFixes(code),
	}
}

// Newf creates a new ProvError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ProvError {
	return New(code, fmt.Sprintf(format, args...), nil)
}

// Error implements the error interface
func (e *ProvError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *ProvError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *ProvError) WithDetails(details interface{}) *ProvError {
	e.Details = details
	return e
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	CrateNotFound: {
		{
			Command:     "provq crates list",
			Safe:        true,
			Description: "List registered crates and their locations",
		},
	},
	CatalogUnavailable: {
		{
			Command:     "provq crates list",
			Safe:        true,
			Description: "Check catalog state; the database is created on first use",
		},
	},
	NotTabular: {
		{
			Command:     "provq open <selector>",
			Safe:        true,
			Description: "Read the artifact as text instead of a table",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}

// CodeOf extracts the error code from an error chain, or InternalError.
func CodeOf(err error) ErrorCode {
	if pe, ok := err.(*ProvError); ok {
		return pe.Code
	}
	return InternalError
}
