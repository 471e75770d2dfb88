package treescan

import (
	"fmt"
	"os"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/stackb/closure-gazelle/pkg/collections"
	"github.com/stackb/closure-gazelle/pkg/jsdeps"
)

// DefaultCacheSize is the number of parsed files retained by a MemoParser.
const DefaultCacheSize = 8192

// Parser parses javascript files into sources.
type Parser interface {
	ParseFile(path string) (*jsdeps.Source, error)
}

// FileParser is a Parser that reads and parses a file on every call.
type FileParser struct{}

// ParseFile implements Parser.
func (FileParser) ParseFile(path string) (*jsdeps.Source, error) {
	return jsdeps.ParseFile(path)
}

// MemoParser is a Parser that remembers parse results keyed by path and
// content hash, so that an unchanged file is only parsed once.  It is safe
// for concurrent use.
type MemoParser struct {
	cache  *lru.Cache[string, *jsdeps.Source]
	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemoParser constructs a MemoParser holding at most size results.
func NewMemoParser(size int) (*MemoParser, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, *jsdeps.Source](size)
	if err != nil {
		return nil, err
	}
	return &MemoParser{cache: cache}, nil
}

// ParseFile implements Parser.
func (p *MemoParser) ParseFile(path string) (*jsdeps.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return p.ParseContent(path, data)
}

// ParseContent parses content already read from path.
func (p *MemoParser) ParseContent(path string, data []byte) (*jsdeps.Source, error) {
	key := path + "@" + collections.BytesSha256(data)
	if src, ok := p.cache.Get(key); ok {
		p.hits.Add(1)
		return src, nil
	}
	p.misses.Add(1)

	src, err := jsdeps.ParseSource(path, data)
	if err != nil {
		return nil, err
	}
	p.cache.Add(key, src)

	return src, nil
}

// Stats returns the number of cache hits and misses so far.
func (p *MemoParser) Stats() (hits, misses int64) {
	return p.hits.Load(), p.misses.Load()
}
