// Package errors defines the stable error taxonomy for PLQ.
//
// Load-time structural errors (CORPUS_*) are fatal: the caller must not
// proceed with a partial corpus. Query-time lookup errors (*_NOT_FOUND)
// are recoverable per call and never corrupt the shared snapshot.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// CorpusInvalid indicates a malformed or unparseable corpus document
	CorpusInvalid ErrorCode = "CORPUS_INVALID"
	// CorpusCountMismatch indicates the loaded pattern count does not match
	// the count declared in the document's metadata header
	CorpusCountMismatch ErrorCode = "CORPUS_COUNT_MISMATCH"
	// PatternNotFound indicates a pattern id doesn't exist in the snapshot
	PatternNotFound ErrorCode = "PATTERN_NOT_FOUND"
	// SequenceNotFound indicates a sequence id doesn't exist in the snapshot
	SequenceNotFound ErrorCode = "SEQUENCE_NOT_FOUND"
	// CategoryNotFound indicates a category name doesn't exist in the snapshot
	CategoryNotFound ErrorCode = "CATEGORY_NOT_FOUND"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// Drilldown represents a suggested follow-up query
type Drilldown struct {
	Label string `json:"label"`
	Query string `json:"query"`
}

// QueryError represents a PLQ error with code, message, and suggestions
type QueryError struct {
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	Drilldowns []Drilldown `json:"drilldowns,omitempty"`
	cause      error       // Underlying error (not exported to JSON)
}

// New creates a new QueryError
func New(code ErrorCode, message string) *QueryError {
	return &QueryError{Code: code, Message: message}
}

// Wrap creates a new QueryError with an underlying cause
func Wrap(code ErrorCode, message string, cause error) *QueryError {
	return &QueryError{Code: code, Message: message, cause: cause}
}

// Error implements the error interface
func (e *QueryError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *QueryError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *QueryError) WithDetails(details interface{}) *QueryError {
	e.Details = details
	return e
}

// WithDrilldowns attaches suggested follow-up queries
func (e *QueryError) WithDrilldowns(drilldowns ...Drilldown) *QueryError {
	e.Drilldowns = append(e.Drilldowns, drilldowns...)
	return e
}

// NotFoundPattern builds the standard PATTERN_NOT_FOUND error for an id.
func NotFoundPattern(id string) *QueryError {
	return New(PatternNotFound, fmt.Sprintf("pattern %q not found", id)).
		WithDrilldowns(Drilldown{
			Label: "Search patterns by name",
			Query: fmt.Sprintf("plq search %s", id),
		})
}

// NotFoundSequence builds the standard SEQUENCE_NOT_FOUND error for an id.
func NotFoundSequence(id string) *QueryError {
	return New(SequenceNotFound, fmt.Sprintf("sequence %q not found", id)).
		WithDrilldowns(Drilldown{
			Label: "List all sequences",
			Query: "plq stats",
		})
}

// NotFoundCategory builds the standard CATEGORY_NOT_FOUND error for a name.
func NotFoundCategory(name string) *QueryError {
	return New(CategoryNotFound, fmt.Sprintf("category %q not found", name)).
		WithDrilldowns(Drilldown{
			Label: "List all categories",
			Query: "plq stats",
		})
}

// AsQueryError extracts a *QueryError from an error chain.
func AsQueryError(err error, target **QueryError) bool {
	return errors.As(err, target)
}

// CodeOf extracts the ErrorCode from an error chain, or INTERNAL_ERROR.
func CodeOf(err error) ErrorCode {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Code
	}
	return InternalError
}

// IsNotFound reports whether err is any of the *_NOT_FOUND codes.
func IsNotFound(err error) bool {
	switch CodeOf(err) {
	case PatternNotFound, SequenceNotFound, CategoryNotFound:
		return true
	}
	return false
}

// IsFatalLoad reports whether err is a fatal corpus load error.
func IsFatalLoad(err error) bool {
	switch CodeOf(err) {
	case CorpusInvalid, CorpusCountMismatch:
		return true
	}
	return false
}
