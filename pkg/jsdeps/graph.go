package jsdeps

import (
	"github.com/stackb/closure-gazelle/pkg/collections"
)

type visitState int

const (
	unvisited visitState = iota
	inProgress
	done
)

// Graph is the dependency graph implied by a registry: there is an edge from
// source A to source B when A requires a namespace provided by B.  The graph
// is not materialized; every Walk re-reads the registry.
type Graph struct {
	registry *Registry
}

// NewGraph returns the dependency graph of the given registry.
func NewGraph(registry *Registry) *Graph {
	return &Graph{registry: registry}
}

// Walk returns the sources needed to load the requested namespaces, each
// source listed after all of the sources it requires.  Requested namespaces
// are visited in the given order and requirements in declaration order, so
// the result is deterministic.  The bootstrap source is not added.
func (g *Graph) Walk(requested []string) ([]*Source, error) {
	roots := make([]*Source, len(requested))
	for i, symbol := range requested {
		src, err := g.registry.ResolveProvider(symbol)
		if err != nil {
			return nil, err
		}
		roots[i] = src
	}

	w := &walker{
		registry: g.registry,
		state:    make(map[string]visitState),
	}
	for i, src := range roots {
		if w.state[src.Path] == done {
			continue
		}
		if err := w.visit(src, requested[i]); err != nil {
			return nil, err
		}
	}

	return w.out, nil
}

// walker holds the state of a single depth-first traversal.
type walker struct {
	registry *Registry
	state    map[string]visitState
	// stack is the list of source paths currently being visited.
	stack collections.StringStack
	// via parallels stack with the namespace that led to each source.
	via collections.StringStack
	out []*Source
}

func (w *walker) visit(src *Source, via string) error {
	w.state[src.Path] = inProgress
	w.stack.Push(src.Path)
	w.via.Push(via)

	for _, symbol := range src.Requires {
		dep := w.registry.lookup(symbol)
		if dep == nil {
			return &UnknownSymbolError{
				Symbol:     symbol,
				RequiredBy: src.Path,
				Nearest:    w.registry.Nearest(symbol),
			}
		}
		switch w.state[dep.Path] {
		case inProgress:
			return w.cycle(dep, symbol)
		case unvisited:
			if err := w.visit(dep, symbol); err != nil {
				return err
			}
		}
	}

	w.stack.Pop()
	w.via.Pop()
	w.state[src.Path] = done
	w.out = append(w.out, src)

	return nil
}

// cycle builds the error for an edge (via symbol) from the top of the stack
// back to dep, which is still on the stack.
func (w *walker) cycle(dep *Source, symbol string) error {
	stack := []string(w.stack)
	via := []string(w.via)

	start := w.stack.LastIndex(dep.Path)

	sources := make([]string, 0, len(stack)-start+1)
	sources = append(sources, stack[start:]...)
	sources = append(sources, dep.Path)

	symbols := make([]string, 0, len(stack)-start)
	symbols = append(symbols, via[start+1:]...)
	symbols = append(symbols, symbol)

	return &CyclicDependencyError{Sources: sources, Symbols: symbols}
}
