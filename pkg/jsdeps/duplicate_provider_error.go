package jsdeps

import "fmt"

func NewDuplicateProviderError(symbol string, existing, src *Source) *DuplicateProviderError {
	return &DuplicateProviderError{
		Symbol:   symbol,
		Existing: existing.Path,
		New:      src.Path,
	}
}

// DuplicateProviderError is returned when two distinct sources provide the
// same namespace.
type DuplicateProviderError struct {
	// Symbol is the namespace provided twice.
	Symbol string
	// Existing is the path of the source registered first.
	Existing string
	// New is the path of the source that was rejected.
	New string
}

func (e *DuplicateProviderError) Error() string {
	return fmt.Sprintf("namespace %q provided more than once: %s and %s", e.Symbol, e.Existing, e.New)
}
