package jsdeps

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// WriteDeps writes a goog.addDependency statement for every source except
// the bootstrap, sorted by path.  The pathFn maps a source path to the path
// written in the statement (typically relative to the directory of base.js);
// if nil the source path is used as-is.
func WriteDeps(w io.Writer, sources []*Source, pathFn func(string) string) error {
	sorted := make([]*Source, 0, len(sources))
	for _, src := range sources {
		if src.IsBase || src.IsBootstrap() {
			continue
		}
		sorted = append(sorted, src)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	for _, src := range sorted {
		path := src.Path
		if pathFn != nil {
			path = pathFn(path)
		}
		opts := "{}"
		if src.IsModule {
			opts = "{'module': 'goog'}"
		}
		if _, err := fmt.Fprintf(w, "goog.addDependency('%s', [%s], [%s], %s);\n",
			path, quoteList(src.Provides), quoteList(src.Requires), opts); err != nil {
			return err
		}
	}

	return nil
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ", ")
}
