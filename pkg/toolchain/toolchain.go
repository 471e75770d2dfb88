package toolchain

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/stackb/closure-gazelle/pkg/procutil"
)

// Tool names a program the toolchain can locate.
type Tool string

const (
	Java        Tool = "java"
	Python      Tool = "python"
	Compiler    Tool = "compiler"
	Linter      Tool = "linter"
	LinterFix   Tool = "linter_fix"
	Templates   Tool = "templates"
	Stylesheets Tool = "stylesheets"
	Library     Tool = "library"
)

// Toolchain holds the location of the Closure tools.  It is built once by
// Find (or Load) and passed to whichever component runs a tool.
type Toolchain struct {
	Java        string `yaml:"java,omitempty"`
	Python      string `yaml:"python,omitempty"`
	CompilerJar string `yaml:"compiler_jar,omitempty"`
	Linter      string `yaml:"linter,omitempty"`
	LinterFix   string `yaml:"linter_fix,omitempty"`
	Templates   string `yaml:"templates_jar,omitempty"`
	Stylesheets string `yaml:"stylesheets_jar,omitempty"`
	Library     string `yaml:"library,omitempty"`
}

// candidate is a conventional location of a tool, relative to the project
// root.
type candidate struct {
	tool Tool
	env  procutil.EnvVar
	path []string
}

var candidates = []candidate{
	{Compiler, procutil.CLOSURE_COMPILER_JAR, []string{"tools", "closure-compiler", "compiler.jar"}},
	{Linter, procutil.CLOSURE_LINTER, []string{"lib", "closure_linter", "gjslint.py"}},
	{LinterFix, procutil.CLOSURE_LINTER_FIX, []string{"lib", "closure_linter", "fixjsstyle.py"}},
	{Templates, procutil.CLOSURE_TEMPLATES, []string{"lib", "closure-templates", "SoyToJsSrcCompiler.jar"}},
	{Stylesheets, procutil.CLOSURE_STYLESHEETS, []string{"lib", "closure-stylesheets", "closure-stylesheets.jar"}},
	{Library, procutil.CLOSURE_LIBRARY, []string{"lib", "closure-library"}},
}

// Find locates the tools under the conventional paths of the project root.
// An environment variable, when set, takes precedence over the conventional
// path.  Tools that cannot be found are left empty; use Require to check for
// the ones a caller needs.
func Find(projectRoot string) *Toolchain {
	tc := &Toolchain{}
	for _, c := range candidates {
		if value, ok := procutil.LookupEnv(c.env); ok {
			tc.set(c.tool, value)
			continue
		}
		path := filepath.Join(append([]string{projectRoot}, c.path...)...)
		if _, err := os.Stat(path); err == nil {
			tc.set(c.tool, path)
		}
	}

	tc.Java = findProgram(procutil.JAVA, "java")
	tc.Python = findProgram(procutil.PYTHON, "python3", "python")

	return tc
}

func findProgram(env procutil.EnvVar, names ...string) string {
	if value, ok := procutil.LookupEnv(env); ok {
		return value
	}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}

// Load reads a YAML toolchain file.  Relative paths are resolved against the
// directory of the file.
func Load(filename string) (*Toolchain, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading toolchain file: %w", err)
	}
	var tc Toolchain
	if err := yaml.Unmarshal(data, &tc); err != nil {
		return nil, fmt.Errorf("parsing toolchain file %s: %w", filename, err)
	}

	dir := filepath.Dir(filename)
	for _, tool := range []Tool{Compiler, Linter, LinterFix, Templates, Stylesheets, Library} {
		if path := tc.Get(tool); path != "" && !filepath.IsAbs(path) {
			tc.set(tool, filepath.Join(dir, path))
		}
	}

	return &tc, nil
}

// Merge returns a copy of tc where every empty entry is taken from other.
func (tc *Toolchain) Merge(other *Toolchain) *Toolchain {
	merged := *tc
	for _, tool := range []Tool{Java, Python, Compiler, Linter, LinterFix, Templates, Stylesheets, Library} {
		if merged.Get(tool) == "" {
			merged.set(tool, other.Get(tool))
		}
	}
	return &merged
}

// Get returns the configured path of a tool.
func (tc *Toolchain) Get(tool Tool) string {
	switch tool {
	case Java:
		return tc.Java
	case Python:
		return tc.Python
	case Compiler:
		return tc.CompilerJar
	case Linter:
		return tc.Linter
	case LinterFix:
		return tc.LinterFix
	case Templates:
		return tc.Templates
	case Stylesheets:
		return tc.Stylesheets
	case Library:
		return tc.Library
	}
	return ""
}

func (tc *Toolchain) set(tool Tool, value string) {
	switch tool {
	case Java:
		tc.Java = value
	case Python:
		tc.Python = value
	case Compiler:
		tc.CompilerJar = value
	case Linter:
		tc.Linter = value
	case LinterFix:
		tc.LinterFix = value
	case Templates:
		tc.Templates = value
	case Stylesheets:
		tc.Stylesheets = value
	case Library:
		tc.Library = value
	}
}

// Require returns a *MissingToolError for the first of the given tools that
// is not configured.
func (tc *Toolchain) Require(tools ...Tool) error {
	for _, tool := range tools {
		if tc.Get(tool) == "" {
			return &MissingToolError{Tool: tool}
		}
	}
	return nil
}

// Roots returns the Closure Library source roots that exist on disk.
func (tc *Toolchain) Roots() []string {
	if tc.Library == "" {
		return nil
	}
	var roots []string
	for _, rel := range []string{"closure/goog", "third_party/closure/goog"} {
		root := filepath.Join(tc.Library, filepath.FromSlash(rel))
		if info, err := os.Stat(root); err == nil && info.IsDir() {
			roots = append(roots, root)
		}
	}
	return roots
}

// Env returns the variables used when expanding transform command templates.
func (tc *Toolchain) Env() map[string]string {
	return map[string]string{
		"JAVA":                 tc.Java,
		"PYTHON":               tc.Python,
		"CLOSURE_COMPILER_JAR": tc.CompilerJar,
		"CLOSURE_LINTER":       tc.Linter,
		"CLOSURE_LINTER_FIX":   tc.LinterFix,
		"CLOSURE_TEMPLATES":    tc.Templates,
		"CLOSURE_STYLESHEETS":  tc.Stylesheets,
		"CLOSURE_LIBRARY":      tc.Library,
	}
}

// MissingToolError is returned by Require.
type MissingToolError struct {
	Tool Tool
}

func (e *MissingToolError) Error() string {
	return fmt.Sprintf("closure tool %q not found (set it in the toolchain file or the environment)", e.Tool)
}
