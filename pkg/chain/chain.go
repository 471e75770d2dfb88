package chain

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/stackb/closure-gazelle/pkg/jsdeps"
	"github.com/stackb/closure-gazelle/pkg/procutil"
)

// CompileStep is the name of the javascript compilation step that
// transforms declare themselves Before.
const CompileStep = "closure_compiler"

var varRe = regexp.MustCompile(`\$\{([A-Z_]+)\}`)

// Transform is a one-to-one file transformation: every file ending in ExtIn
// produces a file with the same stem ending in ExtOut.
type Transform struct {
	// Name identifies the transform in Before/After lists.
	Name string
	// ExtIn is the input file extension.
	ExtIn string
	// ExtOut is the output file extension.
	ExtOut string
	// Command is the command line; each element may reference ${SRC},
	// ${TGT} or a toolchain variable such as ${JAVA}.
	Command []string
	// Before lists the steps that must run after this transform.
	Before []string
	// After lists the steps that must run before this transform.
	After []string
	// Reentrant is true if the outputs may themselves be transformed again.
	Reentrant bool
}

// Stylesheet compiles closure stylesheets (.gss) to css.
var Stylesheet = &Transform{
	Name:    "stylesheet",
	ExtIn:   ".gss",
	ExtOut:  ".css",
	Command: []string{"${JAVA}", "-jar", "${CLOSURE_STYLESHEETS}", "--output-file", "${TGT}", "${SRC}"},
	Before:  []string{CompileStep},
}

// Template compiles closure templates (.soy) to javascript that provides and
// requires its soy namespaces.
var Template = &Transform{
	Name:   "template",
	ExtIn:  ".soy",
	ExtOut: ".soy.js",
	Command: []string{
		"${JAVA}", "-jar", "${CLOSURE_TEMPLATES}",
		"--shouldProvideRequireSoyNamespaces",
		"--cssHandlingScheme", "GOOG",
		"--outputPathFormat", "${TGT}",
		"${SRC}",
	},
	Before:    []string{CompileStep},
	After:     []string{"stylesheet"},
	Reentrant: true,
}

// Transforms returns the built-in transforms.
func Transforms() []*Transform {
	return []*Transform{Template, Stylesheet}
}

// Matches reports whether the transform applies to the given path.
func (t *Transform) Matches(path string) bool {
	return strings.HasSuffix(path, t.ExtIn)
}

// Target returns the output path for the given input path.
func (t *Transform) Target(src string) string {
	return strings.TrimSuffix(src, t.ExtIn) + t.ExtOut
}

// Args expands the command line for src.  Every referenced variable must be
// defined and non-empty in env.
func (t *Transform) Args(env map[string]string, src string) ([]string, error) {
	vars := make(map[string]string, len(env)+2)
	for k, v := range env {
		vars[k] = v
	}
	vars["SRC"] = src
	vars["TGT"] = t.Target(src)

	args := make([]string, len(t.Command))
	for i, token := range t.Command {
		var missing string
		args[i] = varRe.ReplaceAllStringFunc(token, func(ref string) string {
			name := varRe.FindStringSubmatch(ref)[1]
			value := vars[name]
			if value == "" && missing == "" {
				missing = name
			}
			return value
		})
		if missing != "" {
			return nil, fmt.Errorf("%s transform: variable ${%s} is not set", t.Name, missing)
		}
	}
	return args, nil
}

// Run transforms src, returning the target path.
func (t *Transform) Run(ctx context.Context, env map[string]string, src string) (string, error) {
	args, err := t.Args(env, src)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(t.Target(src)), os.ModePerm); err != nil {
		return "", err
	}
	if _, err := procutil.Run(ctx, "", args...); err != nil {
		return "", fmt.Errorf("%s transform of %s: %w", t.Name, src, err)
	}
	return t.Target(src), nil
}

// Ordered sorts the transforms so that each runs after the ones named in its
// After list and before the ones naming it in their Before list.  Names that
// are not among the given transforms (such as CompileStep) are ignored.
// Otherwise the given order is kept.
func Ordered(transforms []*Transform) ([]*Transform, error) {
	byName := make(map[string]*Transform, len(transforms))
	for _, t := range transforms {
		byName[t.Name] = t
	}
	requires := make(map[string][]string)
	for _, t := range transforms {
		for _, name := range t.After {
			if _, ok := byName[name]; ok {
				requires[t.Name] = append(requires[t.Name], name)
			}
		}
		for _, name := range t.Before {
			if _, ok := byName[name]; ok {
				requires[name] = append(requires[name], t.Name)
			}
		}
	}

	sources := make([]*jsdeps.Source, len(transforms))
	names := make([]string, len(transforms))
	for i, t := range transforms {
		sources[i] = jsdeps.NewSource(t.Name, []string{t.Name}, requires[t.Name])
		names[i] = t.Name
	}
	registry, err := jsdeps.BuildRegistry(sources)
	if err != nil {
		return nil, fmt.Errorf("ordering transforms: %w", err)
	}
	walked, err := jsdeps.NewGraph(registry).Walk(names)
	if err != nil {
		return nil, fmt.Errorf("ordering transforms: %w", err)
	}

	ordered := make([]*Transform, len(walked))
	for i, src := range walked {
		ordered[i] = byName[src.Path]
	}
	return ordered, nil
}

// Lookup returns the transform that applies to path, if any.
func Lookup(transforms []*Transform, path string) (*Transform, bool) {
	for _, t := range transforms {
		if t.Matches(path) {
			return t, true
		}
	}
	return nil, false
}
