// Package errors defines the failure taxonomy for probe queries.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// NotFoundError reports that a query required at least one match and
// found none. TreeDump carries a serialized snapshot of the tree that was
// searched.
type NotFoundError struct {
	// Query is the human-readable description of the failed query.
	Query string
	// TreeDump is the serialized tree, included to aid diagnosis.
	TreeDump string
}

func (e *NotFoundError) Error() string {
	if e.TreeDump == "" {
		return fmt.Sprintf("no matching element: %s", e.Query)
	}
	return fmt.Sprintf("no matching element: %s\n\nTree:\n%s", e.Query, e.TreeDump)
}

// MultipleMatchesError reports that a query allowed at most one match and
// found several.
type MultipleMatchesError struct {
	// Query is the human-readable description of the failed query.
	Query string
	// Count is the number of elements that matched.
	Count int
	// TreeDump is the serialized tree, included to aid diagnosis.
	TreeDump string
}

func (e *MultipleMatchesError) Error() string {
	if e.TreeDump == "" {
		return fmt.Sprintf("found %d matching elements, expected at most one: %s", e.Count, e.Query)
	}
	return fmt.Sprintf("found %d matching elements, expected at most one: %s\n\nTree:\n%s", e.Count, e.Query, e.TreeDump)
}

// TimeoutError reports that an async query's contract was not met within
// its allotted time. Err is the last underlying failure observed, usually
// a NotFoundError or MultipleMatchesError.
type TimeoutError struct {
	// Timeout is the configured upper bound that was exceeded.
	Timeout time.Duration
	// Err is the last error returned by the underlying query.
	Err error
}

func (e *TimeoutError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("timed out after %v", e.Timeout)
	}
	return fmt.Sprintf("timed out after %v: %v", e.Timeout, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsMultipleMatches reports whether err is or wraps a MultipleMatchesError.
func IsMultipleMatches(err error) bool {
	var mm *MultipleMatchesError
	return errors.As(err, &mm)
}

// IsTimeout reports whether err is or wraps a TimeoutError.
func IsTimeout(err error) bool {
	var to *TimeoutError
	return errors.As(err, &to)
}
