package jsdeps

import "fmt"

// UnknownSymbolError is returned when no source provides a namespace.
type UnknownSymbolError struct {
	// Symbol is the namespace that could not be resolved.
	Symbol string
	// RequiredBy is the path of the source that required the symbol.  It is
	// empty when the symbol was requested directly.
	RequiredBy string
	// Nearest is the closest provided parent namespace, if any.
	Nearest string
}

func (e *UnknownSymbolError) Error() string {
	msg := fmt.Sprintf("namespace %q not provided", e.Symbol)
	if e.RequiredBy != "" {
		msg += " (required by " + e.RequiredBy + ")"
	}
	if e.Nearest != "" {
		msg += fmt.Sprintf("; nearest provided namespace is %q", e.Nearest)
	}
	return msg
}
