package closure

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bazelbuild/bazel-gazelle/language"
	"github.com/bazelbuild/bazel-gazelle/rule"
	"github.com/rs/zerolog"

	"github.com/stackb/closure-gazelle/pkg/chain"
	"github.com/stackb/closure-gazelle/pkg/closureconfig"
	"github.com/stackb/closure-gazelle/pkg/closurerule"
	"github.com/stackb/closure-gazelle/pkg/glob"
	"github.com/stackb/closure-gazelle/pkg/jsdeps"
	"github.com/stackb/closure-gazelle/pkg/treescan"
)

// closurePackage sorts the files of a gazelle package into source groups and
// parses their namespace declarations.
type closurePackage struct {
	logger zerolog.Logger
	parser treescan.Parser
	args   language.GenerateArgs
	cfg    *closureconfig.Config
	// files and sources by group, in filename order
	files   map[closurerule.SourceGroup][]string
	sources map[closurerule.SourceGroup][]*jsdeps.Source
	// existing rules by kind
	existing map[string][]*closurerule.ExistingRule
	// registry holds every source of the package
	registry *jsdeps.Registry
}

func newClosurePackage(logger zerolog.Logger, parser treescan.Parser, args language.GenerateArgs, cfg *closureconfig.Config) (*closurePackage, error) {
	s := &closurePackage{
		logger:   logger,
		parser:   parser,
		args:     args,
		cfg:      cfg,
		files:    make(map[closurerule.SourceGroup][]string),
		sources:  make(map[closurerule.SourceGroup][]*jsdeps.Source),
		existing: make(map[string][]*closurerule.ExistingRule),
		registry: jsdeps.NewRegistry(),
	}

	claimed, err := s.collectExistingRules()
	if err != nil {
		return nil, err
	}

	filenames := append([]string(nil), args.RegularFiles...)
	sort.Strings(filenames)
	for _, filename := range filenames {
		if claimed[filename] || cfg.ShouldExclude(filename) {
			continue
		}
		group, ok := s.classify(filename)
		if !ok {
			continue
		}
		src, err := s.parse(group, filename)
		if err != nil {
			return nil, err
		}
		if src == nil {
			continue
		}
		s.files[group] = append(s.files[group], filename)
		s.sources[group] = append(s.sources[group], src)
	}

	for _, group := range []closurerule.SourceGroup{
		closurerule.LibrarySources,
		closurerule.TestSources,
		closurerule.TemplateSources,
	} {
		for _, src := range s.sources[group] {
			if err := s.register(src); err != nil {
				return nil, err
			}
		}
	}

	return s, nil
}

// collectExistingRules finds hand-written js rules whose names differ from
// the generated ones.  Their srcs are claimed so they are not generated
// again.
func (s *closurePackage) collectExistingRules() (map[string]bool, error) {
	claimed := make(map[string]bool)
	if s.args.File == nil {
		return claimed, nil
	}
	for _, r := range s.args.File.Rules {
		var group closurerule.SourceGroup
		switch r.Kind() {
		case closureJsLibraryKind:
			group = closurerule.LibrarySources
		case closureJsTestKind:
			group = closurerule.TestSources
		default:
			continue
		}
		if r.Name() == s.DefaultName(group) {
			continue
		}
		filenames, err := glob.CollectFilenames(s.logger, s.args.File, s.args.Dir, r.Attr("srcs"))
		if err != nil {
			s.logger.Warn().Err(err).Msgf("%s:%s: srcs not collected, rule left unmanaged", s.args.Rel, r.Name())
			continue
		}
		existing := &closurerule.ExistingRule{Rule: r}
		for _, filename := range filenames {
			claimed[filename] = true
			src, err := s.parse(group, filename)
			if err != nil {
				return nil, err
			}
			if src == nil {
				continue
			}
			existing.Files = append(existing.Files, filename)
			existing.Sources = append(existing.Sources, src)
			if err := s.register(src); err != nil {
				return nil, err
			}
		}
		s.existing[r.Kind()] = append(s.existing[r.Kind()], existing)
	}
	return claimed, nil
}

func (s *closurePackage) classify(filename string) (closurerule.SourceGroup, bool) {
	switch {
	case strings.HasSuffix(filename, chain.Template.ExtOut):
		// generated by the template transform
		return 0, false
	case chain.Template.Matches(filename):
		return closurerule.TemplateSources, true
	case chain.Stylesheet.Matches(filename):
		return closurerule.StylesheetSources, true
	case strings.HasSuffix(filename, ".js"):
		if s.cfg.IsTest(filename) {
			return closurerule.TestSources, true
		}
		return closurerule.LibrarySources, true
	}
	return 0, false
}

// parse reads the namespace declarations of a package file.  The returned
// source path is relative to the repository root.  Stylesheets declare no
// namespaces and yield an empty source.
func (s *closurePackage) parse(group closurerule.SourceGroup, filename string) (*jsdeps.Source, error) {
	abs := filepath.Join(s.args.Dir, filename)
	rel := path.Join(s.args.Rel, filename)

	switch group {
	case closurerule.StylesheetSources:
		return jsdeps.NewSource(rel, nil, nil), nil
	case closurerule.TemplateSources:
		src, err := chain.ParseSoyFile(abs)
		if err != nil {
			return nil, err
		}
		return jsdeps.NewSource(chain.Template.Target(rel), src.Provides, src.Requires), nil
	}

	parsed, err := s.parser.ParseFile(abs)
	if err != nil {
		return nil, err
	}
	if parsed.IsBase {
		s.logger.Debug().Msgf("%s: skipping closure base file", rel)
		return nil, nil
	}
	src := *parsed
	src.Path = rel
	return &src, nil
}

// register indexes the source in the package registry.  A namespace provided
// twice within one package is an error.
func (s *closurePackage) register(src *jsdeps.Source) error {
	if src.IsBootstrap() {
		return nil
	}
	if err := s.registry.Register(src); err != nil {
		return fmt.Errorf("package %q: %w", s.args.Rel, err)
	}
	return nil
}

// Rel implements part of the closurerule.Package interface.
func (s *closurePackage) Rel() string {
	return s.args.Rel
}

// Config implements part of the closurerule.Package interface.
func (s *closurePackage) Config() *closureconfig.Config {
	return s.cfg
}

// File implements part of the closurerule.Package interface.
func (s *closurePackage) File() *rule.File {
	return s.args.File
}

// Sources implements part of the closurerule.Package interface.
func (s *closurePackage) Sources(group closurerule.SourceGroup) []*jsdeps.Source {
	return s.sources[group]
}

// Files implements part of the closurerule.Package interface.
func (s *closurePackage) Files(group closurerule.SourceGroup) []string {
	return s.files[group]
}

// ExistingRules implements part of the closurerule.Package interface.
func (s *closurePackage) ExistingRules(kind string) []*closurerule.ExistingRule {
	return s.existing[kind]
}

// DefaultName implements part of the closurerule.Package interface.
func (s *closurePackage) DefaultName(group closurerule.SourceGroup) string {
	base := path.Base(s.args.Rel)
	if s.args.Rel == "" {
		base = s.args.Config.RepoName
		if base == "" {
			base = "root"
		}
	}
	switch group {
	case closurerule.TestSources:
		return base + "_test"
	case closurerule.TemplateSources:
		return base + "_soy"
	case closurerule.StylesheetSources:
		return base + "_css"
	default:
		return base
	}
}

// AllSources returns every source of the package that provides namespaces.
func (s *closurePackage) AllSources() []*jsdeps.Source {
	return s.registry.Sources()
}
