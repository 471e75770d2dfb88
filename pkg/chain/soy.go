package chain

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/stackb/closure-gazelle/pkg/jsdeps"
)

var (
	soyNamespaceRe = regexp.MustCompile(`(?m)^\s*\{namespace\s+([\w$.]+)[^}]*\}`)
	soyCallRe      = regexp.MustCompile(`\{(?:del)?call\s+([\w$]+(?:\.[\w$]+)+)`)
)

// ParseSoyFile reads a .soy file and describes the javascript the template
// transform would generate for it.
func ParseSoyFile(path string) (*jsdeps.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseSoy(path, data)
}

// ParseSoy describes the javascript generated for a soy file: the output
// provides the file's {namespace} and requires the namespace of every fully
// qualified template it calls.  The returned source's path is the transform
// target.
func ParseSoy(path string, content []byte) (*jsdeps.Source, error) {
	m := soyNamespaceRe.FindSubmatch(content)
	if m == nil {
		return nil, fmt.Errorf("%s: missing {namespace} declaration", path)
	}
	ns := string(m[1])

	var requires []string
	seen := map[string]bool{ns: true}
	for _, call := range soyCallRe.FindAllSubmatch(content, -1) {
		name := string(call[1])
		callee := name[:strings.LastIndex(name, ".")]
		if seen[callee] {
			continue
		}
		seen[callee] = true
		requires = append(requires, callee)
	}

	return jsdeps.NewSource(Template.Target(path), []string{ns}, requires), nil
}
