package closurerule

import grule "github.com/bazelbuild/bazel-gazelle/rule"

// Provider is a factory capable of taking a package and returning the rules
// of its kind.
type Provider interface {
	// Name returns the name of the rule kind
	Name() string
	// LoadInfo returns the gazelle LoadInfo.
	LoadInfo() grule.LoadInfo
	// KindInfo returns the gazelle KindInfo.
	KindInfo() grule.KindInfo
	// ProvideRules emits the RuleProviders for the package.  If the state of
	// the package is such that no rule should be emitted, implementations
	// return nil.
	ProvideRules(pkg Package) []RuleProvider
}
