package jsdeps

import (
	"fmt"
	"strings"
)

// CyclicDependencyError is returned when the graph walk returns to a source
// that is still being visited.
type CyclicDependencyError struct {
	// Sources is the cycle as an ordered list of source paths.  The first and
	// last entries are the same source.
	Sources []string
	// Symbols holds the required namespace for each edge of the cycle, such
	// that Sources[i] requires Symbols[i], provided by Sources[i+1].
	Symbols []string
}

func (e *CyclicDependencyError) Error() string {
	var b strings.Builder
	for i, src := range e.Sources {
		b.WriteString(src)
		if i < len(e.Symbols) {
			fmt.Fprintf(&b, " -(%s)-> ", e.Symbols[i])
		}
	}
	return "dependency cycle: " + b.String()
}
