package closure

import (
	"github.com/stackb/closure-gazelle/pkg/jsdeps"
	"github.com/stackb/closure-gazelle/pkg/treescan"
)

// onGenerate is called on the first GenerateRules call.
func (sl *closureLang) onGenerate() {
	sl.logger.Debug().Msg("generating closure rules")
}

// onResolve is called when gazelle transitions from the generate phase to
// the resolve phase.  Every binary's entry points are walked through the
// workspace dependency graph.
func (sl *closureLang) onResolve() {
	if memo, ok := sl.parser.(*treescan.MemoParser); ok {
		hits, misses := memo.Stats()
		sl.logger.Debug().Int64("hits", hits).Int64("misses", misses).Msg("parse cache")
	}
	writeResolveProgress(sl.progress, 0, sl.totalRules)
	sl.validateBinaries()
}

// validateBinaries logs the binaries whose closure cannot be computed.
func (sl *closureLang) validateBinaries() (errs []error) {
	graph := jsdeps.NewGraph(sl.registry)
	for _, bin := range sl.binaries {
		sources, err := graph.Walk(bin.entryPoints)
		if err != nil {
			sl.logger.Error().Err(err).Msgf("%v: invalid closure", bin.from)
			errs = append(errs, err)
			continue
		}
		sl.logger.Debug().Int("sources", len(sources)).Msgf("%v: closure resolved", bin.from)
	}
	return
}

// onEnd is called when the last rule has been resolved.
func (sl *closureLang) onEnd() {
	writeResolveProgress(sl.progress, sl.totalRules, sl.totalRules)
	sl.logger.Debug().
		Int("packages", len(sl.packages)).
		Int("rules", sl.totalRules).
		Int("sources", sl.registry.Len()).
		Msg("resolve complete")
}
