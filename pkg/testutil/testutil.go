package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bazelbuild/bazel-gazelle/testtools"
	"github.com/bazelbuild/rules_go/go/tools/bazel"
)

// MustPrepareTestFiles writes the files into a new temporary directory.  It
// returns the directory, the absolute path of each file and a function that
// removes the directory.
func MustPrepareTestFiles(t *testing.T, files []testtools.FileSpec) (tmpDir string, filenames []string, clean func()) {
	t.Helper()
	tmpDir, err := bazel.NewTmpDir("")
	if err != nil {
		t.Fatal(err)
	}

	for _, file := range files {
		abs := filepath.Join(tmpDir, file.Path)
		if err := os.MkdirAll(filepath.Dir(abs), os.ModePerm); err != nil {
			t.Fatal(err)
		}
		// NotExist entries only reserve their directory.
		if !file.NotExist {
			if err := os.WriteFile(abs, []byte(file.Content), os.ModePerm); err != nil {
				t.Fatal(err)
			}
		}
		filenames = append(filenames, abs)
	}

	return tmpDir, filenames, func() { os.RemoveAll(tmpDir) }
}

// MustReadTestFile returns the content of a file written by the code under
// test.
func MustReadTestFile(t *testing.T, dir string, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		t.Fatalf("reading %s (written under %s): %v", filename, dir, err)
	}
	return string(data)
}

// ExpectError fails the test unless both errors are nil or both have the
// same message.  It reports whether an error was wanted, so callers can
// return early.
func ExpectError(t *testing.T, want, got error) bool {
	t.Helper()
	if (want == nil) != (got == nil) || want != nil && want.Error() != got.Error() {
		t.Fatalf("errors: want %v, got %v", want, got)
	}
	return want != nil
}
