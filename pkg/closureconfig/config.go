package closureconfig

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/bazelbuild/bazel-gazelle/config"
	"github.com/bazelbuild/bazel-gazelle/label"
	"github.com/bazelbuild/bazel-gazelle/rule"
	"github.com/bazelbuild/buildtools/build"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/stackb/closure-gazelle/pkg/collections"
)

const (
	closureLangName = "closure"
	// DefaultTestSuffix marks sources that belong to a closure_js_test rule.
	DefaultTestSuffix = "_test.js"
)

const (
	closureEnabledDirective      = "closure_enabled"
	closureJsBinaryDirective     = "closure_js_binary"
	closureCompilerFlagDirective = "closure_compiler_flag"
	closureExcludeDirective      = "closure_exclude"
	closureTestSuffixDirective   = "closure_test_suffix"
)

func DirectiveNames() []string {
	return []string{
		closureEnabledDirective,
		closureJsBinaryDirective,
		closureCompilerFlagDirective,
		closureExcludeDirective,
		closureTestSuffixDirective,
	}
}

// BinarySpec is a closure_js_binary requested by directive.
type BinarySpec struct {
	Name        string
	EntryPoints []string
}

// Config represents the config extension for a closure package.
type Config struct {
	config        *config.Config
	rel           string
	logger        zerolog.Logger
	enabled       bool
	testSuffix    string
	excludes      []string
	compilerFlags []string
	binaries      map[string]*BinarySpec
}

// New initializes a new Config.
func New(logger zerolog.Logger, config *config.Config, rel string) *Config {
	return &Config{
		config:     config,
		rel:        rel,
		logger:     logger,
		enabled:    true,
		testSuffix: DefaultTestSuffix,
		binaries:   make(map[string]*BinarySpec),
	}
}

// Get returns the closure config.  Can be nil.
func Get(config *config.Config) *Config {
	if existingExt, ok := config.Exts[closureLangName]; ok {
		return existingExt.(*Config)
	}
	return nil
}

// GetOrCreate either inserts a new config into the map under the language
// name or replaces it with a clone of the parent.
func GetOrCreate(logger zerolog.Logger, config *config.Config, rel string) *Config {
	var cfg *Config
	if existingExt, ok := config.Exts[closureLangName]; ok {
		cfg = existingExt.(*Config).clone(config, rel)
	} else {
		cfg = New(logger, config, rel)
	}
	config.Exts[closureLangName] = cfg
	return cfg
}

// clone copies this config to a new one.  Binary specs are scoped to the
// package that declares them and are not inherited.
func (c *Config) clone(config *config.Config, rel string) *Config {
	clone := New(c.logger, config, rel)
	clone.enabled = c.enabled
	clone.testSuffix = c.testSuffix
	if c.excludes != nil {
		clone.excludes = append([]string(nil), c.excludes...)
	}
	if c.compilerFlags != nil {
		clone.compilerFlags = append([]string(nil), c.compilerFlags...)
	}
	return clone
}

// Config returns the parent gazelle configuration
func (c *Config) Config() *config.Config {
	return c.config
}

// Rel returns the parent gazelle relative path
func (c *Config) Rel() string {
	return c.rel
}

func (c *Config) Enabled() bool {
	return c.enabled
}

func (c *Config) TestSuffix() string {
	return c.testSuffix
}

// CompilerFlags returns the effective compiler flags in declaration order.
func (c *Config) CompilerFlags() []string {
	return c.compilerFlags
}

// ParseDirectives is called in each directory visited by gazelle.
func (c *Config) ParseDirectives(directives []rule.Directive) (err error) {
	for _, d := range directives {
		switch d.Key {
		case closureEnabledDirective:
			err = c.parseEnabledDirective(d)
		case closureJsBinaryDirective:
			err = c.parseJsBinaryDirective(d)
		case closureCompilerFlagDirective:
			c.parseCompilerFlagDirective(d)
		case closureExcludeDirective:
			err = c.parseExcludeDirective(d)
		case closureTestSuffixDirective:
			err = c.parseTestSuffixDirective(d)
		}
		if err != nil {
			return fmt.Errorf(`invalid directive: "gazelle:%s %s": %w`, d.Key, d.Value, err)
		}
	}
	return
}

func (c *Config) parseEnabledDirective(d rule.Directive) error {
	enabled, err := strconv.ParseBool(strings.TrimSpace(d.Value))
	if err != nil {
		return err
	}
	c.enabled = enabled
	return nil
}

func (c *Config) parseJsBinaryDirective(d rule.Directive) error {
	fields := strings.Fields(d.Value)
	if len(fields) == 0 {
		return fmt.Errorf("expected NAME [NAMESPACE...]")
	}
	intent := collections.ParseIntent(fields[0])
	if !intent.Want {
		delete(c.binaries, intent.Value)
		return nil
	}
	if len(fields) < 2 {
		return fmt.Errorf("binary %q: at least one entry point namespace is required", intent.Value)
	}
	spec, ok := c.binaries[intent.Value]
	if !ok {
		spec = &BinarySpec{Name: intent.Value}
		c.binaries[intent.Value] = spec
	}
	spec.EntryPoints = collections.Dedupe(append(spec.EntryPoints, fields[1:]...))
	return nil
}

func (c *Config) parseCompilerFlagDirective(d rule.Directive) {
	intent := collections.ParseIntent(d.Value)
	if intent.Value == "" {
		return
	}
	for i, flag := range c.compilerFlags {
		if flag == intent.Value {
			c.compilerFlags = collections.SliceRemoveIndex(c.compilerFlags, i)
			break
		}
	}
	if intent.Want {
		c.compilerFlags = append(c.compilerFlags, intent.Value)
	}
}

func (c *Config) parseExcludeDirective(d rule.Directive) error {
	for _, pattern := range strings.Fields(d.Value) {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("bad glob pattern %q", pattern)
		}
		c.excludes = append(c.excludes, pattern)
	}
	return nil
}

func (c *Config) parseTestSuffixDirective(d rule.Directive) error {
	suffix := strings.TrimSpace(d.Value)
	if suffix == "" || strings.ContainsAny(suffix, " \t/") {
		return fmt.Errorf("expected a single filename suffix")
	}
	c.testSuffix = suffix
	return nil
}

// ShouldExclude tests whether the package-relative filename matches an
// exclude pattern.
func (c *Config) ShouldExclude(filename string) bool {
	for _, pattern := range c.excludes {
		if ok, _ := doublestar.Match(pattern, filename); ok {
			return true
		}
	}
	return false
}

// IsTest tests whether the filename belongs in a closure_js_test rule.
func (c *Config) IsTest(filename string) bool {
	return strings.HasSuffix(filename, c.testSuffix)
}

// Binaries returns the binary specs declared in this package, sorted by name.
func (c *Config) Binaries() []*BinarySpec {
	names := make([]string, 0, len(c.binaries))
	for name := range c.binaries {
		names = append(names, name)
	}
	sort.Strings(names)
	specs := make([]*BinarySpec, len(names))
	for i, name := range names {
		specs[i] = c.binaries[name]
	}
	return specs
}

func (c *Config) Comment() build.Comment {
	return build.Comment{Token: "# " + c.String()}
}

func (c *Config) String() string {
	return fmt.Sprintf("Config rel=%q, enabled=%t, testSuffix=%q", c.rel, c.enabled, c.testSuffix)
}

// MergeDeps appends the given labels to target and sorts the string entries.
func MergeDeps(target *build.ListExpr, deps []label.Label) {
	for _, dep := range deps {
		target.List = append(target.List, &build.StringExpr{Value: dep.String()})
	}

	sort.SliceStable(target.List, func(i, j int) bool {
		a, aIsString := target.List[i].(*build.StringExpr)
		b, bIsString := target.List[j].(*build.StringExpr)
		if aIsString && bIsString {
			return a.Value < b.Value
		}
		return false
	})
}

// CleanDeps takes the given list of deps and removes those that are expected
// to be resolved again.  canProvide reports whether an absolute label is
// managed by this extension.
func (c *Config) CleanDeps(from label.Label, current build.Expr, newDeps []label.Label, canProvide func(label.Label) bool) *build.ListExpr {
	incoming := make(map[label.Label]bool)
	for _, l := range newDeps {
		incoming[l.Abs(from.Repo, from.Pkg)] = true
	}

	deps := &build.ListExpr{}
	listExpr, ok := current.(*build.ListExpr)
	if !ok {
		return deps
	}
	for _, expr := range listExpr.List {
		dep := labelFromDepExpr(expr)
		if dep == label.NoLabel {
			// not a label we can parse, leave it be.
			deps.List = append(deps.List, expr)
			continue
		}
		dep = dep.Abs(from.Repo, from.Pkg)
		if rule.ShouldKeep(expr) {
			if incoming[dep] {
				c.logger.Info().Msgf(`%v: in attr 'deps', "%v" does not need a '# keep' directive (fixed)`, from, dep)
				continue
			}
			deps.List = append(deps.List, expr)
			continue
		}
		// managed deps are removed and expected to be resolved again.
		if canProvide(dep) {
			continue
		}
		deps.List = append(deps.List, expr)
	}
	return deps
}

func labelFromDepExpr(expr build.Expr) label.Label {
	str, ok := expr.(*build.StringExpr)
	if !ok {
		return label.NoLabel
	}
	from, err := label.Parse(str.Value)
	if err != nil {
		return label.NoLabel
	}
	return from
}
