package closure

import (
	"github.com/bazelbuild/bazel-gazelle/rule"

	"github.com/stackb/closure-gazelle/pkg/closurerule"
)

const closureJsBinaryKind = "closure_js_binary"

// jsBinaryProvider implements closurerule.Provider for the binaries declared
// with the closure_js_binary directive.  The entry point namespaces are
// resolved to deps.
type jsBinaryProvider struct{}

// Name implements part of the closurerule.Provider interface.
func (p *jsBinaryProvider) Name() string {
	return closureJsBinaryKind
}

// KindInfo implements part of the closurerule.Provider interface.
func (p *jsBinaryProvider) KindInfo() rule.KindInfo {
	return rule.KindInfo{
		NonEmptyAttrs: map[string]bool{"entry_points": true},
		MergeableAttrs: map[string]bool{
			"entry_points": true,
			"defs":         true,
		},
		ResolveAttrs: map[string]bool{"deps": true},
	}
}

// LoadInfo implements part of the closurerule.Provider interface.
func (p *jsBinaryProvider) LoadInfo() rule.LoadInfo {
	return rule.LoadInfo{
		Name:    rulesClosureDefsBzl,
		Symbols: []string{closureJsBinaryKind},
	}
}

// ProvideRules implements part of the closurerule.Provider interface.
func (p *jsBinaryProvider) ProvideRules(pkg closurerule.Package) []closurerule.RuleProvider {
	var providers []closurerule.RuleProvider
	flags := pkg.Config().CompilerFlags()
	for _, spec := range pkg.Config().Binaries() {
		r := rule.NewRule(closureJsBinaryKind, spec.Name)
		r.SetAttr("entry_points", spec.EntryPoints)
		if len(flags) > 0 {
			r.SetAttr("defs", flags)
		}
		providers = append(providers, &closureRule{rule: r, requires: spec.EntryPoints})
	}
	return providers
}
