package jsdeps

import (
	"fmt"
	"strings"
)

// ErrMissingBootstrap is returned when no registered source provides zero
// namespaces.
var ErrMissingBootstrap = fmt.Errorf("missing bootstrap source: no source provides zero namespaces (is the closure library base.js among the roots?)")

// AmbiguousBootstrapError is returned when more than one registered source
// provides zero namespaces.
type AmbiguousBootstrapError struct {
	// Candidates are the paths of every zero-provides source, in registration
	// order.
	Candidates []string
}

func (e *AmbiguousBootstrapError) Error() string {
	return fmt.Sprintf("ambiguous bootstrap source: %d sources provide zero namespaces: %s",
		len(e.Candidates), strings.Join(e.Candidates, ", "))
}

// BootstrapRequiresError is returned when the bootstrap source requires
// namespaces.  It loads first, so nothing it requires could precede it.
type BootstrapRequiresError struct {
	// Path of the bootstrap source.
	Path string
	// Requires are the namespaces it declares.
	Requires []string
}

func (e *BootstrapRequiresError) Error() string {
	return fmt.Sprintf("invalid bootstrap source %s: requires [%s] but must load first",
		e.Path, strings.Join(e.Requires, ", "))
}
