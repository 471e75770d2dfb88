package closure

import (
	"github.com/bazelbuild/bazel-gazelle/rule"

	"github.com/stackb/closure-gazelle/pkg/closurerule"
)

const (
	closureJsLibraryKind = "closure_js_library"
	closureJsTestKind    = "closure_js_test"
)

// jsLibraryProvider implements closurerule.Provider for closure_js_library
// and closure_js_test.
type jsLibraryProvider struct {
	kind  string
	group closurerule.SourceGroup
	// testonly rules are never resolved as a dependency.
	testonly bool
}

// Name implements part of the closurerule.Provider interface.
func (p *jsLibraryProvider) Name() string {
	return p.kind
}

// KindInfo implements part of the closurerule.Provider interface.
func (p *jsLibraryProvider) KindInfo() rule.KindInfo {
	return rule.KindInfo{
		NonEmptyAttrs:  map[string]bool{"srcs": true},
		MergeableAttrs: map[string]bool{"srcs": true},
		ResolveAttrs:   map[string]bool{"deps": true},
	}
}

// LoadInfo implements part of the closurerule.Provider interface.
func (p *jsLibraryProvider) LoadInfo() rule.LoadInfo {
	return rule.LoadInfo{
		Name:    rulesClosureDefsBzl,
		Symbols: []string{p.kind},
	}
}

// ProvideRules implements part of the closurerule.Provider interface.  The
// package's unclaimed files form the default rule; hand-written rules keep
// their srcs expression.
func (p *jsLibraryProvider) ProvideRules(pkg closurerule.Package) []closurerule.RuleProvider {
	var providers []closurerule.RuleProvider

	if files := pkg.Files(p.group); len(files) > 0 {
		r := rule.NewRule(p.kind, pkg.DefaultName(p.group))
		r.SetAttr("srcs", files)
		providers = append(providers, newClosureRule(r, pkg.Sources(p.group), !p.testonly))
	}

	for _, existing := range pkg.ExistingRules(p.kind) {
		r := rule.NewRule(p.kind, existing.Rule.Name())
		if srcs := existing.Rule.Attr("srcs"); srcs != nil {
			r.SetAttr("srcs", srcs)
		}
		providers = append(providers, newClosureRule(r, existing.Sources, !p.testonly))
	}

	return providers
}
