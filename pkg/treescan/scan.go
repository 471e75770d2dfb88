package treescan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// jsFilePattern matches every javascript file under a root.
const jsFilePattern = "**/*.js"

// ScanTree returns the sorted list of javascript files under root.  Files or
// directories whose name begins with a '.' are skipped, as are files matching
// any of the exclude patterns (doublestar syntax, relative to root).
func ScanTree(root string, exclude []string) ([]string, error) {
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	var files []string
	if err := doublestar.GlobWalk(os.DirFS(root), jsFilePattern, func(path string, d fs.DirEntry) error {
		if d.IsDir() || isHidden(path) {
			return nil
		}
		for _, pattern := range exclude {
			if match, _ := doublestar.Match(pattern, path); match {
				return nil
			}
		}
		files = append(files, filepath.Join(root, filepath.FromSlash(path)))
		return nil
	}); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}

func isHidden(path string) bool {
	for _, part := range strings.Split(path, "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
