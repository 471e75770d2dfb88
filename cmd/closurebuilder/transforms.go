package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/stackb/closure-gazelle/pkg/chain"
	"github.com/stackb/closure-gazelle/pkg/toolchain"
)

// runTransforms applies the built-in transforms, in dependency order, to the
// matching files under each root.  A target newer than its source is left
// alone.
func runTransforms(ctx context.Context, logger zerolog.Logger, tc *toolchain.Toolchain, roots []string) error {
	transforms, err := chain.Ordered(chain.Transforms())
	if err != nil {
		return err
	}
	env := tc.Env()

	for _, t := range transforms {
		for _, root := range roots {
			matches, err := doublestar.Glob(os.DirFS(root), "**/*"+t.ExtIn)
			if err != nil {
				return err
			}
			for _, match := range matches {
				src := filepath.Join(root, match)
				if upToDate(src, t.Target(src)) {
					continue
				}
				tgt, err := t.Run(ctx, env, src)
				if err != nil {
					return err
				}
				logger.Debug().Str("transform", t.Name).Str("src", src).Str("tgt", tgt).Msg("transformed")
			}
		}
	}
	return nil
}

func upToDate(src, tgt string) bool {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return false
	}
	tgtInfo, err := os.Stat(tgt)
	if err != nil {
		return false
	}
	return !tgtInfo.ModTime().Before(srcInfo.ModTime())
}
