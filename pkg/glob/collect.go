package glob

import (
	"fmt"
	"os"

	"github.com/bazelbuild/bazel-gazelle/rule"
	"github.com/bazelbuild/buildtools/build"
	"github.com/rs/zerolog"
)

type collector struct {
	logger zerolog.Logger
	file   *rule.File
	dir    string
	srcs   []string
}

// CollectFilenames returns the package-relative filenames named by a srcs
// expression of a rule in file.  dir is the absolute package directory
// globs are evaluated against.
func CollectFilenames(logger zerolog.Logger, file *rule.File, dir string, expr build.Expr) ([]string, error) {
	c := collector{logger: logger, file: file, dir: dir}
	if err := c.fromExpr(expr); err != nil {
		return nil, err
	}
	return c.srcs, nil
}

func (c *collector) fromExpr(expr build.Expr) error {
	switch t := expr.(type) {
	case *build.StringExpr:
		c.srcs = append(c.srcs, t.Value)
	case *build.BinaryExpr:
		// example: ["a.js"] + glob(["lib/*.js"])
		if err := c.fromExpr(t.X); err != nil {
			return err
		}
		return c.fromExpr(t.Y)
	case *build.ListExpr:
		for _, item := range t.List {
			if err := c.fromExpr(item); err != nil {
				return err
			}
		}
	case *build.CallExpr:
		ident, ok := t.X.(*build.Ident)
		if !ok {
			return fmt.Errorf("not attempting to resolve call expression %s: consider making this simpler", build.FormatString(t))
		}
		if ident.Name != "glob" {
			return fmt.Errorf("not attempting to resolve function call %s(): consider making this simpler", ident.Name)
		}
		g := Parse(c.logger, c.file, t)
		c.srcs = append(c.srcs, Apply(c.logger, g, os.DirFS(c.dir))...)
	case *build.Ident:
		// example: srcs = JS_SRCS
		srcs, err := globalStringList(c.logger, c.file, t)
		if err != nil {
			return fmt.Errorf("failed to resolve identifier %q (consider inlining it): %w", t.Name, err)
		}
		c.srcs = append(c.srcs, srcs...)
	case nil:
	default:
		return fmt.Errorf("uninterpretable srcs attribute type: %T", t)
	}
	return nil
}
