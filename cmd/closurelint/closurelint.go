package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"

	"github.com/stackb/closure-gazelle/pkg/lint"
	"github.com/stackb/closure-gazelle/pkg/toolchain"
)

// closurelint runs the Closure Linter, or with -fix the fixjsstyle tool, over
// a set of source roots.

type config struct {
	fix           bool
	projectRoot   string
	toolchainFile string
	roots         []string
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "closurelint:", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	exitCode, err := run(ctx, cfg, os.Stdout)
	if err != nil {
		logger.Error().Err(err).Msg("closurelint failed")
	}
	os.Exit(exitCode)
}

func parseFlags(args []string) (*config, error) {
	cfg := new(config)

	fs := flag.NewFlagSet("closurelint", flag.ContinueOnError)
	fs.BoolVar(&cfg.fix, "fix", false, "run fixjsstyle instead of gjslint")
	fs.StringVar(&cfg.projectRoot, "project_root", ".", "the directory holding the conventional lib/ and tools/ paths")
	fs.StringVar(&cfg.toolchainFile, "toolchain", "", "an optional YAML file locating the closure tools")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: closurelint OPTIONS ROOT...\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.roots = fs.Args()
	if len(cfg.roots) == 0 {
		return nil, fmt.Errorf("at least one ROOT is required")
	}
	return cfg, nil
}

// run lints the roots, copying the tool report to stdout.  The returned exit
// code is the tool's.
func run(ctx context.Context, cfg *config, stdout io.Writer) (int, error) {
	tc := toolchain.Find(cfg.projectRoot)
	if cfg.toolchainFile != "" {
		loaded, err := toolchain.Load(cfg.toolchainFile)
		if err != nil {
			return 1, err
		}
		tc = loaded.Merge(tc)
	}

	linter, err := lint.New(tc, cfg.fix)
	if err != nil {
		return 1, err
	}

	report, err := linter.Run(ctx, "", cfg.roots)
	if _, werr := stdout.Write(report); werr != nil && err == nil {
		err = werr
	}
	var lintErr *lint.Error
	if errors.As(err, &lintErr) {
		return lintErr.ExitCode, nil
	}
	if err != nil {
		return 1, err
	}
	return 0, nil
}
