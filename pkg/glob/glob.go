// Package glob interprets the srcs expressions of existing BUILD rules:
// string lists, glob() calls and identifiers bound to top-level lists.
package glob

import (
	"fmt"
	"io/fs"

	"github.com/bazelbuild/bazel-gazelle/rule"
	"github.com/bazelbuild/buildtools/build"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// Parse reads a glob() call into a GlobValue.  Arguments that cannot be
// interpreted statically are logged and skipped.
func Parse(logger zerolog.Logger, file *rule.File, call *build.CallExpr) (glob rule.GlobValue) {
	for i, expr := range call.List {
		switch e := expr.(type) {
		case *build.AssignExpr:
			ident, ok := e.LHS.(*build.Ident)
			if !ok {
				continue
			}
			if ident.Name != "exclude" {
				logger.Debug().Str("name", ident.Name).Msg("skipping glob keyword argument")
				continue
			}
			switch rhs := e.RHS.(type) {
			case *build.ListExpr:
				glob.Excludes = append(glob.Excludes, stringList(logger, rhs)...)
			case *build.Ident:
				values, err := globalStringList(logger, file, rhs)
				if err != nil {
					logger.Warn().Err(err).Msg("skipping glob exclude")
					break
				}
				glob.Excludes = append(glob.Excludes, values...)
			default:
				logger.Warn().Msgf("skipping glob exclude (only list expressions are supported): %T", e.RHS)
			}
		case *build.ListExpr:
			glob.Patterns = append(glob.Patterns, stringList(logger, e)...)
		case *build.Ident:
			values, err := globalStringList(logger, file, e)
			if err != nil {
				logger.Warn().Err(err).Msg("skipping glob pattern list")
				break
			}
			glob.Patterns = append(glob.Patterns, values...)
		default:
			logger.Debug().Int("arg", i).Msgf("skipping glob argument %T", e)
		}
	}
	return
}

// Apply evaluates the glob over fsys.  Invalid patterns match nothing.
func Apply(logger zerolog.Logger, glob rule.GlobValue, fsys fs.FS) (srcs []string) {
	var includes []string
	for _, pattern := range glob.Patterns {
		names, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			logger.Warn().Err(err).Str("pattern", pattern).Msg("invalid glob pattern")
			continue
		}
		includes = append(includes, names...)
	}

loop:
	for _, name := range includes {
		for _, exclude := range glob.Excludes {
			if ok, _ := doublestar.PathMatch(exclude, name); ok {
				continue loop
			}
		}
		srcs = append(srcs, name)
	}
	return
}

func stringList(logger zerolog.Logger, list *build.ListExpr) (values []string) {
	for _, item := range list.List {
		switch elem := item.(type) {
		case *build.StringExpr:
			values = append(values, elem.Value)
		default:
			logger.Debug().Msgf("skipping list item %T", elem)
		}
	}
	return
}

func globalStringList(logger zerolog.Logger, file *rule.File, ident *build.Ident) ([]string, error) {
	value, err := resolveGlobalAssignment(file, ident.Name)
	if err != nil {
		return nil, fmt.Errorf("%s must resolve to a list of strings: %w", ident.Name, err)
	}
	list, ok := value.(*build.ListExpr)
	if !ok {
		return nil, fmt.Errorf("%s must resolve to a list of strings (got %T)", ident.Name, value)
	}
	return stringList(logger, list), nil
}

func resolveGlobalAssignment(file *rule.File, name string) (build.Expr, error) {
	if file == nil || file.File == nil {
		return nil, fmt.Errorf("unknown global identifier: %s", name)
	}
	for _, stmt := range file.File.Stmt {
		if assign, ok := stmt.(*build.AssignExpr); ok {
			if ident, ok := assign.LHS.(*build.Ident); ok && ident.Name == name {
				return assign.RHS, nil
			}
		}
	}
	return nil, fmt.Errorf("unknown global identifier: %s", name)
}
