package jsdeps

import (
	"strings"
)

// Resolve computes the ordered list of sources needed to load the requested
// namespaces.  The bootstrap source is always first, every other source
// follows the sources it requires, and no source appears twice.
func Resolve(registry *Registry, requested []string) ([]*Source, error) {
	deps, err := NewGraph(registry).Walk(requested)
	if err != nil {
		return nil, err
	}

	base, err := registry.BootstrapSource()
	if err != nil {
		return nil, err
	}
	for _, src := range deps {
		if src.Path == base.Path {
			return deps, nil
		}
	}

	return append([]*Source{base}, deps...), nil
}

// ResolveClosure is like Resolve but returns the source paths, in the order
// they should be handed to the compiler.
func ResolveClosure(registry *Registry, requested []string) ([]string, error) {
	sources, err := Resolve(registry, requested)
	if err != nil {
		return nil, err
	}
	return Paths(sources), nil
}

// ExpandNamespaces replaces each pattern of the form "ns.*" with every
// provided namespace nested under "ns" (sorted).  Other patterns are kept
// as-is.  Duplicates are dropped, keeping the first occurrence.
func ExpandNamespaces(registry *Registry, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var namespaces []string
	add := func(ns string) {
		if seen[ns] {
			return
		}
		seen[ns] = true
		namespaces = append(namespaces, ns)
	}

	for _, pattern := range patterns {
		prefix, ok := strings.CutSuffix(pattern, ".*")
		if !ok {
			add(pattern)
			continue
		}
		matches := registry.Symbols(prefix)
		if len(matches) == 0 {
			return nil, &UnknownSymbolError{Symbol: pattern, Nearest: registry.Nearest(prefix)}
		}
		for _, ns := range matches {
			add(ns)
		}
	}

	return namespaces, nil
}
