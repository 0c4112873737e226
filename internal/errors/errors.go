package errors

import "errors"

// This package defines a centralized set of sentinel errors for the engine.
// Services return these (usually wrapped with fmt.Errorf and %w) and callers
// branch with errors.Is(), which keeps the business logic decoupled from
// transport concerns like HTTP status codes.

var (
	// ErrEmptyInput is returned when a message submission is empty or
	// whitespace-only. It is raised before any side effect takes place.
	ErrEmptyInput = errors.New("input is empty")

	// ErrCompletion signifies that the text-generation call failed. The
	// optimistic user message is rolled back before this is returned.
	ErrCompletion = errors.New("completion request failed")

	// ErrPersistence signifies that a read or write against the document
	// store failed.
	ErrPersistence = errors.New("persistence operation failed")

	// ErrSummarization signifies that the title summarization call failed.
	// It is non-fatal: callers log it and keep the previous title.
	ErrSummarization = errors.New("summarization failed")

	// ErrSubscription signifies that a live push channel dropped. The
	// operation is retryable by re-subscribing.
	ErrSubscription = errors.New("subscription channel dropped")

	// ErrExchangeInFlight is returned when SendMessage is called while a
	// prior exchange on the same session is still pending. The call has no
	// effect.
	ErrExchangeInFlight = errors.New("an exchange is already in flight")

	// ErrNotFound signifies that a requested resource could not be located.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data failed business rule
	// validation.
	ErrValidation = errors.New("validation failed")
)
