package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/pcj/mobyprogress"
	"github.com/rs/zerolog"

	"github.com/stackb/closure-gazelle/pkg/collections"
	"github.com/stackb/closure-gazelle/pkg/jsdeps"
	"github.com/stackb/closure-gazelle/pkg/progress"
	"github.com/stackb/closure-gazelle/pkg/toolchain"
	"github.com/stackb/closure-gazelle/pkg/treescan"
)

// closurebuilder computes the dependency closure of a set of Closure
// namespaces and writes it as a file list, a concatenated script, a compiled
// bundle or a deps file.

const (
	outputModeList     = "list"
	outputModeScript   = "script"
	outputModeCompiled = "compiled"
	outputModeDeps     = "deps"
)

type config struct {
	roots         collections.StringSlice
	namespaces    collections.StringSlice
	inputs        collections.StringSlice
	compilerFlags collections.StringSlice
	outputMode    string
	outputFile    string
	toolchainFile string
	projectRoot   string
	runTransforms bool
	progress      bool
	verbose       bool
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "closurebuilder:", err)
		os.Exit(2)
	}

	level := zerolog.InfoLevel
	if cfg.verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().
		Level(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := progress.Discard()
	if cfg.progress {
		out = progress.NewProgressOutput(os.Stderr)
	}

	if err := run(ctx, cfg, logger, out, os.Stdout); err != nil {
		logger.Fatal().Err(err).Msg("closurebuilder failed")
	}
}

func parseFlags(args []string) (*config, error) {
	cfg := new(config)

	fs := flag.NewFlagSet("closurebuilder", flag.ContinueOnError)
	fs.Var(&cfg.roots, "root", "a root directory to scan for javascript files (repeatable)")
	fs.Var(&cfg.namespaces, "namespace", "a namespace to compute the closure of; 'ns.*' selects every namespace under ns (repeatable)")
	fs.Var(&cfg.namespaces, "n", "shorthand for -namespace")
	fs.Var(&cfg.inputs, "input", "a file whose provided namespaces are entry points (repeatable)")
	fs.Var(&cfg.compilerFlags, "compiler_flags", "a flag passed to the closure compiler (repeatable)")
	fs.StringVar(&cfg.outputMode, "output_mode", outputModeList, "one of list, script, compiled or deps")
	fs.StringVar(&cfg.outputFile, "output_file", "", "the file to write (default stdout)")
	fs.StringVar(&cfg.toolchainFile, "toolchain", "", "an optional YAML file locating the closure tools")
	fs.StringVar(&cfg.projectRoot, "project_root", ".", "the directory holding the conventional lib/ and tools/ paths")
	fs.BoolVar(&cfg.runTransforms, "run_transforms", false, "compile .gss and .soy files under the roots before scanning")
	fs.BoolVar(&cfg.progress, "progress", false, "report progress on stderr")
	fs.BoolVar(&cfg.verbose, "verbose", false, "enable debug logging")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: closurebuilder OPTIONS [NAMESPACE...]\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.namespaces = append(cfg.namespaces, fs.Args()...)

	switch cfg.outputMode {
	case outputModeList, outputModeScript, outputModeCompiled, outputModeDeps:
	default:
		return nil, fmt.Errorf("invalid -output_mode %q (want list, script, compiled or deps)", cfg.outputMode)
	}
	if cfg.outputMode != outputModeDeps && len(cfg.namespaces) == 0 && len(cfg.inputs) == 0 {
		return nil, fmt.Errorf("at least one -namespace or -input is required")
	}

	return cfg, nil
}

func loadToolchain(cfg *config) (*toolchain.Toolchain, error) {
	tc := toolchain.Find(cfg.projectRoot)
	if cfg.toolchainFile == "" {
		return tc, nil
	}
	loaded, err := toolchain.Load(cfg.toolchainFile)
	if err != nil {
		return nil, err
	}
	return loaded.Merge(tc), nil
}

func run(ctx context.Context, cfg *config, logger zerolog.Logger, out mobyprogress.Output, stdout io.Writer) error {
	tc, err := loadToolchain(cfg)
	if err != nil {
		return err
	}

	roots := append(tc.Roots(), cfg.roots...)
	if len(roots) == 0 {
		return fmt.Errorf("no roots to scan: pass -root or install the closure library under %s", cfg.projectRoot)
	}

	if cfg.runTransforms {
		if err := runTransforms(ctx, logger, tc, roots); err != nil {
			return err
		}
	}

	parser, err := treescan.NewMemoParser(treescan.DefaultCacheSize)
	if err != nil {
		return err
	}
	scanner := treescan.NewScanner(parser,
		treescan.WithLogger(logger),
		treescan.WithProgress(out),
	)
	sources, err := scanner.Scan(roots...)
	if err != nil {
		return err
	}
	registry, err := jsdeps.BuildRegistry(sources)
	if err != nil {
		return err
	}
	logger.Debug().Int("sources", registry.Len()).Strs("roots", roots).Msg("registry built")

	var buf bytes.Buffer
	if cfg.outputMode == outputModeDeps {
		if err := writeDeps(&buf, registry); err != nil {
			return err
		}
		return writeOutput(cfg.outputFile, stdout, buf.Bytes())
	}

	namespaces, err := entryPoints(cfg, registry, parser)
	if err != nil {
		return err
	}
	closure, err := jsdeps.ResolveClosure(registry, namespaces)
	if err != nil {
		return err
	}
	logger.Debug().Int("files", len(closure)).Strs("namespaces", namespaces).Msg("closure resolved")

	switch cfg.outputMode {
	case outputModeList:
		err = writeList(&buf, closure)
	case outputModeScript:
		err = writeScript(&buf, closure)
	case outputModeCompiled:
		err = compile(ctx, &buf, logger, tc, closure, cfg.compilerFlags)
	}
	if err != nil {
		return err
	}

	return writeOutput(cfg.outputFile, stdout, buf.Bytes())
}

// entryPoints expands the requested namespace patterns and adds the
// namespaces provided by each -input file.
func entryPoints(cfg *config, registry *jsdeps.Registry, parser treescan.Parser) ([]string, error) {
	namespaces, err := jsdeps.ExpandNamespaces(registry, cfg.namespaces)
	if err != nil {
		return nil, err
	}
	for _, input := range cfg.inputs {
		src, err := parser.ParseFile(input)
		if err != nil {
			return nil, err
		}
		if len(src.Provides) == 0 {
			return nil, fmt.Errorf("input %s provides no namespaces", input)
		}
		namespaces = append(namespaces, src.Provides...)
	}
	return collections.Dedupe(namespaces), nil
}

func writeOutput(filename string, stdout io.Writer, data []byte) error {
	if filename == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filename), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
