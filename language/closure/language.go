package closure

import (
	"os"

	"github.com/bazelbuild/bazel-gazelle/label"
	"github.com/bazelbuild/bazel-gazelle/language"
	"github.com/pcj/mobyprogress"
	"github.com/rs/zerolog"

	"github.com/stackb/closure-gazelle/pkg/closurerule"
	"github.com/stackb/closure-gazelle/pkg/jsdeps"
	"github.com/stackb/closure-gazelle/pkg/procutil"
	"github.com/stackb/closure-gazelle/pkg/progress"
	"github.com/stackb/closure-gazelle/pkg/treescan"
)

const ClosureLangName = "closure"

// NewLanguage is called by Gazelle to install this language extension in a
// binary.
func NewLanguage() language.Language {
	level := zerolog.InfoLevel
	if procutil.LookupBoolEnv(procutil.CLOSURE_GAZELLE_VERBOSE, false) {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Str("lang", ClosureLangName).Logger().
		Level(level)

	return newClosureLang(logger, closurerule.GlobalProviderRegistry())
}

func newClosureLang(logger zerolog.Logger, providers closurerule.ProviderRegistry) *closureLang {
	return &closureLang{
		logger:           logger,
		providerRegistry: providers,
		parser:           treescan.FileParser{},
		registry:         jsdeps.NewRegistry(),
		packages:         make(map[string]*closurePackage),
		knownRules:       make(map[label.Label]bool),
		progress:         progress.Discard(),
	}
}

// closureLang implements language.Language.
type closureLang struct {
	logger zerolog.Logger
	// providerRegistry holds the rule kinds this extension generates.
	providerRegistry closurerule.ProviderRegistry
	// parser reads namespace declarations.  It is replaced by a memoizing
	// parser in CheckFlags.
	parser treescan.Parser
	// registry indexes every source of every generated package.
	registry *jsdeps.Registry
	// packages is map from the config.Rel to *closurePackage for the
	// workspace-relative package name.
	packages map[string]*closurePackage
	// knownRules is the set of labels generated by this extension.
	knownRules map[label.Label]bool
	// binaries are the closure_js_binary rules, validated when the resolve
	// phase begins.
	binaries []*binaryTarget
	// isResolvePhase tracks if at least one Resolve() call has occurred.
	isResolvePhase bool
	// totalRules and remainingRules are used for progress
	totalRules, remainingRules int
	// progress is the progress interface
	progress mobyprogress.Output

	progressFlagValue       bool
	parseCacheSizeFlagValue int
}

// binaryTarget is a generated closure_js_binary and its entry points.
type binaryTarget struct {
	from        label.Label
	entryPoints []string
}

// Name implements part of the language.Language interface
func (sl *closureLang) Name() string { return ClosureLangName }
