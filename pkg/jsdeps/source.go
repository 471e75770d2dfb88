package jsdeps

import (
	"fmt"
	"strings"
)

// Source describes a single javascript file by the namespaces it provides and
// requires.  A Source is identified by its Path and is immutable once parsed.
type Source struct {
	// Path is the filesystem (or workspace-relative) path of the file.
	Path string
	// Provides is the list of namespaces declared with goog.provide or
	// goog.module, in declaration order.
	Provides []string
	// Requires is the list of namespaces declared with goog.require, in
	// declaration order.
	Requires []string
	// IsModule is true if the file is a goog.module.
	IsModule bool
	// IsBase is true if the file identifies itself as the Closure base file.
	IsBase bool
}

// NewSource constructs a new Source with the given provides and requires.
func NewSource(path string, provides, requires []string) *Source {
	return &Source{
		Path:     path,
		Provides: provides,
		Requires: requires,
	}
}

// IsBootstrap reports whether the source provides nothing.  The registry
// treats the single such source as the file that must load first.
func (s *Source) IsBootstrap() bool {
	return len(s.Provides) == 0
}

// String implements fmt.Stringer
func (s *Source) String() string {
	return fmt.Sprintf("%s (provides=[%s] requires=[%s])",
		s.Path,
		strings.Join(s.Provides, ","),
		strings.Join(s.Requires, ","))
}

// Paths returns the path of each source, in order.
func Paths(sources []*Source) []string {
	paths := make([]string, len(sources))
	for i, src := range sources {
		paths[i] = src.Path
	}
	return paths
}
