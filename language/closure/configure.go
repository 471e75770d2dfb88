package closure

import (
	"github.com/bazelbuild/bazel-gazelle/config"
	"github.com/bazelbuild/bazel-gazelle/rule"

	"github.com/stackb/closure-gazelle/pkg/closureconfig"
)

// Configure implements part of the language.Language interface
func (sl *closureLang) Configure(c *config.Config, rel string, f *rule.File) {
	cfg := closureconfig.GetOrCreate(sl.logger, c, rel)
	if f != nil {
		if err := cfg.ParseDirectives(f.Directives); err != nil {
			sl.logger.Fatal().Err(err).Msgf("parsing directives in package %q", rel)
		}
	}
}
