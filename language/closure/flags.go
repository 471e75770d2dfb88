package closure

import (
	"flag"
	"os"

	"github.com/bazelbuild/bazel-gazelle/config"

	"github.com/stackb/closure-gazelle/pkg/closureconfig"
	"github.com/stackb/closure-gazelle/pkg/progress"
	"github.com/stackb/closure-gazelle/pkg/treescan"
)

const (
	closureProgressFlagName       = "closure_progress"
	closureParseCacheSizeFlagName = "closure_parse_cache_size"
)

// RegisterFlags implements part of the language.Language interface
func (sl *closureLang) RegisterFlags(flags *flag.FlagSet, cmd string, c *config.Config) {
	closureconfig.GetOrCreate(sl.logger, c, "") // ignoring return value, only want side-effect

	flags.BoolVar(&sl.progressFlagValue, closureProgressFlagName, false, "report generate and resolve progress on stderr")
	flags.IntVar(&sl.parseCacheSizeFlagValue, closureParseCacheSizeFlagName, treescan.DefaultCacheSize, "number of parsed javascript files to memoize")
}

// CheckFlags implements part of the language.Language interface
func (sl *closureLang) CheckFlags(flags *flag.FlagSet, c *config.Config) error {
	parser, err := treescan.NewMemoParser(sl.parseCacheSizeFlagValue)
	if err != nil {
		return err
	}
	sl.parser = parser

	if sl.progressFlagValue {
		sl.progress = progress.NewProgressOutput(os.Stderr)
	}
	return nil
}

// KnownDirectives implements part of the language.Language interface
func (*closureLang) KnownDirectives() []string {
	return closureconfig.DirectiveNames()
}
