package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/stackb/closure-gazelle/pkg/jscompile"
	"github.com/stackb/closure-gazelle/pkg/jsdeps"
	"github.com/stackb/closure-gazelle/pkg/toolchain"
)

func writeList(w io.Writer, closure []string) error {
	for _, path := range closure {
		if _, err := fmt.Fprintln(w, path); err != nil {
			return err
		}
	}
	return nil
}

// writeScript concatenates the closure, each file followed by a newline.
func writeScript(w io.Writer, closure []string) error {
	for _, path := range closure {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func compile(ctx context.Context, w io.Writer, logger zerolog.Logger, tc *toolchain.Toolchain, closure, flags []string) error {
	compiler, err := jscompile.NewClosureCompiler(tc, "", logger)
	if err != nil {
		return err
	}
	out, err := compiler.Compile(ctx, closure, flags)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// writeDeps writes a deps file for every source in the registry.  Paths are
// relative to the directory of base.js, the way goog.addDependency expects.
func writeDeps(w io.Writer, registry *jsdeps.Registry) error {
	base, err := registry.BootstrapSource()
	if err != nil {
		return err
	}
	dir := filepath.Dir(base.Path)
	return jsdeps.WriteDeps(w, registry.Sources(), func(path string) string {
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return filepath.ToSlash(path)
		}
		return filepath.ToSlash(rel)
	})
}
