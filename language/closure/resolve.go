package closure

import (
	"sort"

	"github.com/bazelbuild/bazel-gazelle/config"
	"github.com/bazelbuild/bazel-gazelle/label"
	"github.com/bazelbuild/bazel-gazelle/repo"
	"github.com/bazelbuild/bazel-gazelle/resolve"
	"github.com/bazelbuild/bazel-gazelle/rule"

	"github.com/stackb/closure-gazelle/pkg/closureconfig"
	"github.com/stackb/closure-gazelle/pkg/closurerule"
)

// Imports implements part of the language.Language interface
func (sl *closureLang) Imports(c *config.Config, r *rule.Rule, f *rule.File) []resolve.ImportSpec {
	if rp, ok := r.PrivateAttr(ruleProviderKey).(closurerule.RuleProvider); ok {
		return rp.Imports(c, r, f)
	}
	return nil
}

// Embeds implements part of the language.Language interface
func (*closureLang) Embeds(r *rule.Rule, from label.Label) []label.Label { return nil }

// Resolve implements part of the language.Language interface
func (sl *closureLang) Resolve(
	c *config.Config,
	ix *resolve.RuleIndex,
	rc *repo.RemoteCache,
	r *rule.Rule,
	importsRaw interface{},
	from label.Label,
) {
	// gazelle supplies the 'from' label fully-qualified; the index and the
	// known rules use the default workspace.
	if from.Repo == c.RepoName {
		from.Repo = ""
	}

	if !sl.isResolvePhase {
		sl.isResolvePhase = true
		sl.onResolve()
	}

	requires, _ := importsRaw.([]string)
	deps := sl.resolveNamespaces(c, ix, from, requires)

	if cfg := closureconfig.Get(c); cfg != nil {
		list := cfg.CleanDeps(from, r.Attr("deps"), deps, sl.canProvide)
		closureconfig.MergeDeps(list, deps)
		if len(list.List) > 0 {
			r.SetAttr("deps", list)
		} else {
			r.DelAttr("deps")
		}
	}

	sl.remainingRules--
	writeResolveProgress(sl.progress, sl.totalRules-sl.remainingRules, sl.totalRules)
	if sl.remainingRules == 0 {
		sl.onEnd()
	}
}

// resolveNamespaces maps each required namespace to the label of the rule
// providing it.  Self imports are dropped; unresolved namespaces are logged.
func (sl *closureLang) resolveNamespaces(c *config.Config, ix *resolve.RuleIndex, from label.Label, requires []string) []label.Label {
	seen := make(map[label.Label]bool)
	var deps []label.Label
	for _, ns := range requires {
		dep, err := sl.resolveNamespace(c, ix, from, ns)
		if err != nil {
			sl.logger.Warn().Err(err).Msgf("%v: unresolved namespace %q", from, ns)
			continue
		}
		if dep == label.NoLabel || seen[dep] {
			continue
		}
		seen[dep] = true
		deps = append(deps, dep.Rel(from.Repo, from.Pkg))
	}
	sort.Slice(deps, func(i, j int) bool {
		return deps[i].String() < deps[j].String()
	})
	return deps
}

// resolveNamespace consults the gazelle:resolve overrides, then the rule
// index.  label.NoLabel is returned for a namespace the rule provides
// itself.
func (sl *closureLang) resolveNamespace(c *config.Config, ix *resolve.RuleIndex, from label.Label, ns string) (label.Label, error) {
	spec := resolve.ImportSpec{Lang: ClosureLangName, Imp: ns}

	if to, ok := resolve.FindRuleWithOverride(c, spec, ClosureLangName); ok {
		if to.Equal(from) {
			return label.NoLabel, nil
		}
		return to, nil
	}

	var matches []resolve.FindResult
	for _, m := range ix.FindRulesByImportWithConfig(c, spec, ClosureLangName) {
		if m.IsSelfImport(from) {
			return label.NoLabel, nil
		}
		matches = append(matches, m)
	}

	switch len(matches) {
	case 0:
		return label.NoLabel, ErrNamespaceNotFound
	case 1:
		return matches[0].Label, nil
	default:
		return label.NoLabel, NewAmbiguousProviderError(ns, matches)
	}
}

// canProvide reports whether the label is a rule generated by this
// extension.
func (sl *closureLang) canProvide(l label.Label) bool {
	if l.Repo != "" {
		return false
	}
	return sl.knownRules[label.New("", l.Pkg, l.Name)]
}
