package closure

import (
	"github.com/bazelbuild/bazel-gazelle/label"
	"github.com/bazelbuild/bazel-gazelle/language"
	"github.com/bazelbuild/bazel-gazelle/rule"

	"github.com/stackb/closure-gazelle/pkg/closureconfig"
)

// GenerateRules implements part of the language.Language interface
func (sl *closureLang) GenerateRules(args language.GenerateArgs) language.GenerateResult {
	cfg := closureconfig.Get(args.Config)
	if cfg == nil || !cfg.Enabled() {
		return language.GenerateResult{}
	}

	if len(sl.packages) == 0 {
		sl.onGenerate()
	}

	pkg, err := newClosurePackage(sl.logger, sl.parser, args, cfg)
	if err != nil {
		sl.logger.Fatal().Err(err).Msgf("generating rules in package %q", args.Rel)
	}
	sl.packages[args.Rel] = pkg
	writeGenerateProgress(sl.progress, len(sl.packages))

	for _, src := range pkg.AllSources() {
		if err := sl.registry.Register(src); err != nil {
			sl.logger.Warn().Err(err).Msgf("package %q", args.Rel)
		}
	}

	var result language.GenerateResult
	generated := make(map[string]bool)

	for _, name := range sl.providerRegistry.ProviderNames() {
		provider, _ := sl.providerRegistry.LookupProvider(name)
		for _, rp := range provider.ProvideRules(pkg) {
			r := rp.Rule()
			r.SetPrivateAttr(ruleProviderKey, rp)

			from := label.New("", args.Rel, r.Name())
			sl.knownRules[from] = true
			if rp.Kind() == closureJsBinaryKind {
				sl.binaries = append(sl.binaries, &binaryTarget{from: from, entryPoints: rp.Requires()})
			}

			generated[r.Kind()+":"+r.Name()] = true
			result.Gen = append(result.Gen, r)
			result.Imports = append(result.Imports, rp.Requires())
		}
	}

	result.Empty = sl.emptyRules(args.File, generated)

	sl.totalRules += len(result.Gen)
	sl.remainingRules += len(result.Gen)

	return result
}

// emptyRules returns the rules of a managed kind in the existing BUILD file
// that this package no longer generates, so gazelle can delete them.
// Hand-written js rules that were left unmanaged are not returned.
func (sl *closureLang) emptyRules(f *rule.File, generated map[string]bool) (empty []*rule.Rule) {
	if f == nil {
		return nil
	}
	for _, r := range f.Rules {
		if generated[r.Kind()+":"+r.Name()] {
			continue
		}
		switch r.Kind() {
		case closureJsTemplateLibraryKind, closureCssLibraryKind, closureJsBinaryKind:
			empty = append(empty, rule.NewRule(r.Kind(), r.Name()))
		}
	}
	return
}
