// Package apperror defines the error kinds shared by services and the HTTP boundary.
package apperror

import "errors"

var (
	// ErrNotFound: a note or link is absent. Fan-out callers filter it out instead of failing.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput: the caller sent something the service cannot act on.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIndexUnavailable: the search backend could not answer a query.
	ErrIndexUnavailable = errors.New("search index unavailable")

	// ErrIndexWriteFailure: the store write succeeded but the index write did not.
	ErrIndexWriteFailure = errors.New("search index write failed")

	// ErrLLMFailure: the completion call errored or timed out.
	ErrLLMFailure = errors.New("language model request failed")
)
