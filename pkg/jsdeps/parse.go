package jsdeps

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// provideGoogFlag is the jsdoc marker carried by Closure's base.js.
const provideGoogFlag = "@provideGoog"

// baseLine is the first statement of older Closure base.js files.
const baseLine = "var goog = goog || {};"

// bindingPrefix matches the declaration an assigned require is bound to,
// including destructuring: `const {a, b} = `.
const bindingPrefix = `(?:var|let|const)\s+[\w$,:{}\s]+=\s*`

var (
	commentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	// headerRe matches the start of any declaration call.  A require may be
	// bound by a var, let or const declaration.
	headerRe  = regexp.MustCompile(`^\s*(?:` + bindingPrefix + `)?goog\.(provide|module|require)\s*\(`)
	provideRe = regexp.MustCompile(`^\s*goog\.provide\s*\(\s*['"]([^'"\s]+)['"]\s*\)`)
	moduleRe  = regexp.MustCompile(`^\s*goog\.module\s*\(\s*['"]([^'"\s]+)['"]\s*\)`)
	requireRe = regexp.MustCompile(`^\s*(?:` + bindingPrefix + `)?goog\.require\s*\(\s*['"]([^'"\s]+)['"]\s*\)`)
)

// ParseFile reads the named file and parses it with ParseSource.
func ParseFile(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseSource(path, data)
}

// ParseSource extracts the goog.provide, goog.module and goog.require
// declarations from the given file content.  A file without any declaration
// provides and requires nothing.  A declaration whose argument is not a
// single string literal is a MalformedHeaderError.
func ParseSource(path string, content []byte) (*Source, error) {
	text := string(content)
	src := &Source{
		Path:   path,
		IsBase: strings.Contains(text, provideGoogFlag),
	}

	// blank out block comments but keep their newlines so that reported line
	// numbers match the file.
	text = commentRe.ReplaceAllStringFunc(text, func(comment string) string {
		return strings.Repeat("\n", strings.Count(comment, "\n"))
	})

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), baseLine) {
			src.IsBase = true
			continue
		}
		m := headerRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		switch m[1] {
		case "provide":
			ns := provideRe.FindStringSubmatch(line)
			if ns == nil {
				return nil, NewMalformedHeaderError(path, lineNo, line)
			}
			src.Provides = appendUnique(src.Provides, ns[1])
		case "module":
			ns := moduleRe.FindStringSubmatch(line)
			if ns == nil {
				return nil, NewMalformedHeaderError(path, lineNo, line)
			}
			src.Provides = appendUnique(src.Provides, ns[1])
			src.IsModule = true
		case "require":
			ns := requireRe.FindStringSubmatch(line)
			if ns == nil {
				return nil, NewMalformedHeaderError(path, lineNo, line)
			}
			src.Requires = appendUnique(src.Requires, ns[1])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}

	return src, nil
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}
