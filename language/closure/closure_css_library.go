package closure

import (
	"github.com/bazelbuild/bazel-gazelle/rule"

	"github.com/stackb/closure-gazelle/pkg/closurerule"
)

const closureCssLibraryKind = "closure_css_library"

// cssLibraryProvider implements closurerule.Provider for closure stylesheets.
type cssLibraryProvider struct{}

// Name implements part of the closurerule.Provider interface.
func (p *cssLibraryProvider) Name() string {
	return closureCssLibraryKind
}

// KindInfo implements part of the closurerule.Provider interface.
func (p *cssLibraryProvider) KindInfo() rule.KindInfo {
	return rule.KindInfo{
		NonEmptyAttrs:  map[string]bool{"srcs": true},
		MergeableAttrs: map[string]bool{"srcs": true},
	}
}

// LoadInfo implements part of the closurerule.Provider interface.
func (p *cssLibraryProvider) LoadInfo() rule.LoadInfo {
	return rule.LoadInfo{
		Name:    rulesClosureDefsBzl,
		Symbols: []string{closureCssLibraryKind},
	}
}

// ProvideRules implements part of the closurerule.Provider interface.
func (p *cssLibraryProvider) ProvideRules(pkg closurerule.Package) []closurerule.RuleProvider {
	files := pkg.Files(closurerule.StylesheetSources)
	if len(files) == 0 {
		return nil
	}
	r := rule.NewRule(closureCssLibraryKind, pkg.DefaultName(closurerule.StylesheetSources))
	r.SetAttr("srcs", files)
	return []closurerule.RuleProvider{newClosureRule(r, nil, false)}
}
