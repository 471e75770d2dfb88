package closure

import (
	"github.com/bazelbuild/bazel-gazelle/config"
	"github.com/bazelbuild/bazel-gazelle/resolve"
	"github.com/bazelbuild/bazel-gazelle/rule"

	"github.com/stackb/closure-gazelle/pkg/closurerule"
	"github.com/stackb/closure-gazelle/pkg/jsdeps"
)

const (
	// rulesClosureDefsBzl is the load location of every closure rule kind.
	rulesClosureDefsBzl = "@io_bazel_rules_closure//closure:defs.bzl"
	// ruleProviderKey is the PrivateAttr() key that holds the
	// closurerule.RuleProvider of a generated rule.
	ruleProviderKey = "_closure_rule_provider"
)

func init() {
	mustRegisterProvider(&jsLibraryProvider{kind: closureJsLibraryKind, group: closurerule.LibrarySources})
	mustRegisterProvider(&jsLibraryProvider{kind: closureJsTestKind, group: closurerule.TestSources, testonly: true})
	mustRegisterProvider(&templateLibraryProvider{})
	mustRegisterProvider(&cssLibraryProvider{})
	mustRegisterProvider(&jsBinaryProvider{})
}

func mustRegisterProvider(provider closurerule.Provider) {
	if err := closurerule.GlobalProviderRegistry().RegisterProvider(provider.Name(), provider); err != nil {
		panic(err)
	}
}

// closureRule implements closurerule.RuleProvider for a rule whose imports
// are the namespaces its sources provide and whose deps are the namespaces
// they require.
type closureRule struct {
	rule     *rule.Rule
	provides []string
	requires []string
}

// newClosureRule computes the rule's namespaces.  Requirements satisfied
// within the rule itself are dropped.  Unexported rules provide nothing.
func newClosureRule(r *rule.Rule, sources []*jsdeps.Source, exported bool) *closureRule {
	own := make(map[string]bool)
	cr := &closureRule{rule: r}
	for _, src := range sources {
		for _, ns := range src.Provides {
			if own[ns] {
				continue
			}
			own[ns] = true
			if exported {
				cr.provides = append(cr.provides, ns)
			}
		}
	}
	seen := make(map[string]bool)
	for _, src := range sources {
		for _, ns := range src.Requires {
			if own[ns] || seen[ns] {
				continue
			}
			seen[ns] = true
			cr.requires = append(cr.requires, ns)
		}
	}
	return cr
}

// Kind implements part of the closurerule.RuleProvider interface.
func (cr *closureRule) Kind() string {
	return cr.rule.Kind()
}

// Name implements part of the closurerule.RuleProvider interface.
func (cr *closureRule) Name() string {
	return cr.rule.Name()
}

// Rule implements part of the closurerule.RuleProvider interface.
func (cr *closureRule) Rule() *rule.Rule {
	return cr.rule
}

// Imports implements part of the closurerule.RuleProvider interface.
func (cr *closureRule) Imports(c *config.Config, r *rule.Rule, file *rule.File) []resolve.ImportSpec {
	if len(cr.provides) == 0 {
		return nil
	}
	specs := make([]resolve.ImportSpec, len(cr.provides))
	for i, ns := range cr.provides {
		specs[i] = resolve.ImportSpec{Lang: ClosureLangName, Imp: ns}
	}
	return specs
}

// Requires implements part of the closurerule.RuleProvider interface.
func (cr *closureRule) Requires() []string {
	return cr.requires
}
