package jsdeps

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dghubble/trie"
)

// provision is the value stored in the namespace trie.
type provision struct {
	symbol string
	source *Source
}

// Registry maps provided namespaces to the source that provides them.  A
// Registry is not safe for concurrent registration, but once populated it
// may be shared by any number of concurrent resolutions.
type Registry struct {
	symbols   *trie.PathTrie
	sources   []*Source
	byPath    map[string]*Source
	bootstrap []*Source
}

// NewRegistry constructs a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		symbols: trie.NewPathTrieWithConfig(&trie.PathTrieConfig{
			Segmenter: namespaceSegmenter,
		}),
		byPath: make(map[string]*Source),
	}
}

// BuildRegistry registers all the given sources, in order.  The first
// registration error is returned.
func BuildRegistry(sources []*Source) (*Registry, error) {
	r := NewRegistry()
	for _, src := range sources {
		if err := r.Register(src); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds the source under each namespace it provides.  If any of the
// namespaces is already provided by a different source, nothing is
// registered and a *DuplicateProviderError is returned.
func (r *Registry) Register(src *Source) error {
	if existing, ok := r.byPath[src.Path]; ok {
		if existing == src {
			return nil
		}
		return fmt.Errorf("source %s already registered", src.Path)
	}
	for _, symbol := range src.Provides {
		if existing := r.lookup(symbol); existing != nil && existing != src {
			return NewDuplicateProviderError(symbol, existing, src)
		}
	}

	for _, symbol := range src.Provides {
		r.symbols.Put(symbol, &provision{symbol: symbol, source: src})
	}
	r.sources = append(r.sources, src)
	r.byPath[src.Path] = src
	if src.IsBootstrap() {
		r.bootstrap = append(r.bootstrap, src)
	}

	return nil
}

// ResolveProvider returns the source that provides the given namespace.
func (r *Registry) ResolveProvider(symbol string) (*Source, error) {
	if src := r.lookup(symbol); src != nil {
		return src, nil
	}
	return nil, &UnknownSymbolError{Symbol: symbol, Nearest: r.Nearest(symbol)}
}

// BootstrapSource returns the unique source that provides no namespaces.
// That source must not require anything.
func (r *Registry) BootstrapSource() (*Source, error) {
	switch len(r.bootstrap) {
	case 0:
		return nil, ErrMissingBootstrap
	case 1:
		base := r.bootstrap[0]
		if len(base.Requires) > 0 {
			return nil, &BootstrapRequiresError{Path: base.Path, Requires: base.Requires}
		}
		return base, nil
	default:
		return nil, &AmbiguousBootstrapError{Candidates: Paths(r.bootstrap)}
	}
}

// Source returns the registered source having the given path.
func (r *Registry) Source(path string) (*Source, bool) {
	src, ok := r.byPath[path]
	return src, ok
}

// Sources returns all registered sources in registration order.
func (r *Registry) Sources() []*Source {
	return r.sources
}

// Len returns the number of registered sources.
func (r *Registry) Len() int {
	return len(r.sources)
}

// Nearest returns the longest provided namespace that is a strict dotted
// parent of the given one, or the empty string.
func (r *Registry) Nearest(symbol string) string {
	var nearest string
	r.symbols.WalkPath(symbol, func(key string, value interface{}) error {
		if p := value.(*provision); p.symbol != symbol {
			nearest = p.symbol
		}
		return nil
	})
	return nearest
}

// Symbols returns the sorted list of provided namespaces equal to or nested
// under the given prefix.  An empty prefix lists everything.
func (r *Registry) Symbols(prefix string) []string {
	var symbols []string
	r.symbols.Walk(func(key string, value interface{}) error {
		symbol := value.(*provision).symbol
		if prefix == "" || symbol == prefix || strings.HasPrefix(symbol, prefix+".") {
			symbols = append(symbols, symbol)
		}
		return nil
	})
	sort.Strings(symbols)
	return symbols
}

func (r *Registry) lookup(symbol string) *Source {
	if value := r.symbols.Get(symbol); value != nil {
		return value.(*provision).source
	}
	return nil
}

// namespaceSegmenter segments namespaces by dot separators. For example,
// "a.b.c" -> ("a", 1), (".b", 3), (".c", -1) in successive calls.
func namespaceSegmenter(path string, start int) (segment string, next int) {
	if len(path) == 0 || start < 0 || start > len(path)-1 {
		return "", -1
	}
	end := strings.IndexRune(path[start+1:], '.') // next '.' after 0th rune
	if end == -1 {
		return path[start:], -1
	}
	return path[start : start+end+1], start + end + 1
}
