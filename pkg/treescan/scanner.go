package treescan

import (
	"github.com/pcj/mobyprogress"
	"github.com/rs/zerolog"

	"github.com/stackb/closure-gazelle/pkg/jsdeps"
	"github.com/stackb/closure-gazelle/pkg/progress"
)

// Scanner collects the sources under a set of roots.
type Scanner struct {
	parser         Parser
	logger         zerolog.Logger
	progress       mobyprogress.Output
	exclude        []string
	keepUnprovided bool
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) ScannerOption {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// WithProgress reports parse progress to the given output.
func WithProgress(out mobyprogress.Output) ScannerOption {
	return func(s *Scanner) {
		s.progress = out
	}
}

// WithExclude skips files matching the given patterns.
func WithExclude(patterns ...string) ScannerOption {
	return func(s *Scanner) {
		s.exclude = append(s.exclude, patterns...)
	}
}

// WithUnprovided keeps files that provide no namespace and are not the
// Closure base file.  By default such files (externs, generated deps files,
// plain scripts) are dropped since no require can reach them and they would
// otherwise compete with base.js as the bootstrap source.
func WithUnprovided(keep bool) ScannerOption {
	return func(s *Scanner) {
		s.keepUnprovided = keep
	}
}

// NewScanner constructs a new Scanner using the given parser.
func NewScanner(parser Parser, options ...ScannerOption) *Scanner {
	s := &Scanner{
		parser:   parser,
		logger:   zerolog.Nop(),
		progress: progress.Discard(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Scan parses every javascript file under the given roots.  A file reachable
// from more than one root is returned once.  Sources are returned ordered by
// root, then by path.
func (s *Scanner) Scan(roots ...string) ([]*jsdeps.Source, error) {
	seen := make(map[string]bool)
	var files []string
	for _, root := range roots {
		found, err := ScanTree(root, s.exclude)
		if err != nil {
			return nil, err
		}
		s.logger.Debug().Str("root", root).Int("files", len(found)).Msg("scanned root")
		for _, file := range found {
			if seen[file] {
				continue
			}
			seen[file] = true
			files = append(files, file)
		}
	}

	sources := make([]*jsdeps.Source, 0, len(files))
	for i, file := range files {
		src, err := s.parser.ParseFile(file)
		if err != nil {
			return nil, err
		}
		progress.Update(s.progress, "parse", "parsing", i+1, len(files), "files")
		if src.IsBootstrap() && !src.IsBase && !s.keepUnprovided {
			s.logger.Debug().Str("file", file).Msg("skipping file that provides nothing")
			continue
		}
		sources = append(sources, src)
	}

	return sources, nil
}
