package closure

import (
	"fmt"
	"strings"

	"github.com/bazelbuild/bazel-gazelle/resolve"
)

// AmbiguousProviderError is returned when more than one rule provides a
// required namespace.
type AmbiguousProviderError struct {
	Namespace string
	Matches   []resolve.FindResult
}

func NewAmbiguousProviderError(ns string, matches []resolve.FindResult) *AmbiguousProviderError {
	return &AmbiguousProviderError{Namespace: ns, Matches: matches}
}

// Error implements the error interface
func (e *AmbiguousProviderError) Error() string {
	labels := make([]string, len(e.Matches))
	for i, m := range e.Matches {
		labels[i] = m.Label.String()
	}
	return fmt.Sprintf("namespace %q is provided by multiple rules: %s", e.Namespace, strings.Join(labels, ", "))
}
