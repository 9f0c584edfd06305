package models

import (
	"errors"
	"fmt"
)

var (
	// ErrDataUnavailable means the provider returned no data for the
	// symbol/period. Batch callers surface it per item and keep going.
	ErrDataUnavailable = errors.New("no data available")

	// ErrInsufficientData means the series is too short for the chosen
	// forecaster's minimum window.
	ErrInsufficientData = errors.New("insufficient data for forecast")

	// ErrUnknownSymbol means the symbol is not part of the universe.
	ErrUnknownSymbol = errors.New("unknown symbol")
)

// ProviderError wraps a transport or auth failure talking to an external
// provider. It is logged and surfaced, never fatal to the process.
type ProviderError struct {
	Provider string
	Op       string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// NewProviderError builds a ProviderError.
func NewProviderError(provider, op string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Op: op, Err: err}
}
