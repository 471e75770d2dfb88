package closure

import (
	"sort"

	"github.com/bazelbuild/bazel-gazelle/rule"
)

// Kinds implements part of the language.Language interface
func (sl *closureLang) Kinds() map[string]rule.KindInfo {
	kinds := make(map[string]rule.KindInfo)
	for _, name := range sl.providerRegistry.ProviderNames() {
		if provider, ok := sl.providerRegistry.LookupProvider(name); ok {
			kinds[provider.Name()] = provider.KindInfo()
		} else {
			sl.logger.Fatal().Msgf("rule provider not found: %s", name)
		}
	}
	return kinds
}

// Loads implements part of the language.Language interface
func (sl *closureLang) Loads() []rule.LoadInfo {
	symbolsByLoadName := make(map[string][]string)
	for _, name := range sl.providerRegistry.ProviderNames() {
		provider, ok := sl.providerRegistry.LookupProvider(name)
		if !ok {
			sl.logger.Fatal().Msgf("rule provider not found: %s", name)
		}
		load := provider.LoadInfo()
		symbolsByLoadName[load.Name] = append(symbolsByLoadName[load.Name], load.Symbols...)
	}

	// load statement order must be deterministic
	keys := make([]string, 0, len(symbolsByLoadName))
	for name := range symbolsByLoadName {
		keys = append(keys, name)
	}
	sort.Strings(keys)

	loads := make([]rule.LoadInfo, 0, len(keys))
	for _, name := range keys {
		symbols := symbolsByLoadName[name]
		sort.Strings(symbols)
		loads = append(loads, rule.LoadInfo{
			Name:    name,
			Symbols: symbols,
		})
	}
	return loads
}
