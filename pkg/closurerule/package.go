package closurerule

import (
	grule "github.com/bazelbuild/bazel-gazelle/rule"

	"github.com/stackb/closure-gazelle/pkg/closureconfig"
	"github.com/stackb/closure-gazelle/pkg/jsdeps"
)

// Package is the view of a gazelle package given to rule providers.
type Package interface {
	// Rel is the package path relative to the repository root.
	Rel() string
	// Config returns the closure config of the package.
	Config() *closureconfig.Config
	// File returns the BUILD file, nil when none exists yet.
	File() *grule.File
	// Sources returns the parsed sources of the given group, in filename
	// order.
	Sources(group SourceGroup) []*jsdeps.Source
	// Files returns package-relative filenames of the given group.
	Files(group SourceGroup) []string
	// ExistingRules returns the rules of the given kind already present in
	// the BUILD file whose srcs could be collected.
	ExistingRules(kind string) []*ExistingRule
	// DefaultName is the rule name used for the given group.
	DefaultName(group SourceGroup) string
}

// ExistingRule is a hand-written rule whose srcs are preserved and whose deps
// are resolved.
type ExistingRule struct {
	Rule    *grule.Rule
	Files   []string
	Sources []*jsdeps.Source
}

// SourceGroup partitions the files of a package by the rule kind that owns
// them.
type SourceGroup int

const (
	LibrarySources SourceGroup = iota
	TestSources
	TemplateSources
	StylesheetSources
)
