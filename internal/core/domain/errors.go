package domain

import (
	"context"
	"errors"
	"fmt"
)

// StatusUnauthorized is the provider status that means the API key was rejected.
const StatusUnauthorized = 401

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorIndexUnavailable indicates the vector index is not configured.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")

	// ErrInvalidCredential indicates the provider rejected the API key.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrMissingCredential indicates a provider that needs an API key has none.
	ErrMissingCredential = errors.New("missing credential")
)

// TransportError is a network failure or timeout talking to the embedding provider.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("embedding transport: %v", e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// ProviderError is a non-success HTTP response from the embedding provider.
type ProviderError struct {
	// StatusCode is the HTTP status returned.
	StatusCode int

	// Message is the provider's error message, or a generic one.
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("embedding provider returned %d: %s", e.StatusCode, e.Message)
}

// Is maps a 401 response onto ErrInvalidCredential.
func (e *ProviderError) Is(target error) bool {
	return target == ErrInvalidCredential && e.StatusCode == StatusUnauthorized
}

// MalformedResponseError is a success response whose payload lacks a usable vector.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return "malformed embedding response: " + e.Reason
}

// DimensionMismatchError is a vector whose length differs from the index dimension.
type DimensionMismatchError struct {
	Expected int
	Got      int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Got)
}

// StorageError is a failure of the persistence collaborator.
type StorageError struct {
	// Op names the storage operation that failed.
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether an embedding failure may succeed on another attempt.
// Every provider-side failure is retried uniformly; cancellation and
// dimension mismatches are not.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var (
		transport *TransportError
		provider  *ProviderError
		malformed *MalformedResponseError
	)
	return errors.As(err, &transport) || errors.As(err, &provider) || errors.As(err, &malformed)
}
