package closure

import (
	"github.com/bazelbuild/bazel-gazelle/rule"

	"github.com/stackb/closure-gazelle/pkg/closurerule"
)

const closureJsTemplateLibraryKind = "closure_js_template_library"

// templateLibraryProvider implements closurerule.Provider for soy templates.
// The generated javascript provides each file's soy namespace.
type templateLibraryProvider struct{}

// Name implements part of the closurerule.Provider interface.
func (p *templateLibraryProvider) Name() string {
	return closureJsTemplateLibraryKind
}

// KindInfo implements part of the closurerule.Provider interface.
func (p *templateLibraryProvider) KindInfo() rule.KindInfo {
	return rule.KindInfo{
		NonEmptyAttrs:  map[string]bool{"srcs": true},
		MergeableAttrs: map[string]bool{"srcs": true},
		ResolveAttrs:   map[string]bool{"deps": true},
	}
}

// LoadInfo implements part of the closurerule.Provider interface.
func (p *templateLibraryProvider) LoadInfo() rule.LoadInfo {
	return rule.LoadInfo{
		Name:    rulesClosureDefsBzl,
		Symbols: []string{closureJsTemplateLibraryKind},
	}
}

// ProvideRules implements part of the closurerule.Provider interface.
func (p *templateLibraryProvider) ProvideRules(pkg closurerule.Package) []closurerule.RuleProvider {
	files := pkg.Files(closurerule.TemplateSources)
	if len(files) == 0 {
		return nil
	}
	r := rule.NewRule(closureJsTemplateLibraryKind, pkg.DefaultName(closurerule.TemplateSources))
	r.SetAttr("srcs", files)
	return []closurerule.RuleProvider{newClosureRule(r, pkg.Sources(closurerule.TemplateSources), true)}
}
