package testutil

import (
	"errors"
	"os"
	"testing"

	"github.com/bazelbuild/bazel-gazelle/testtools"
	"github.com/google/go-cmp/cmp"
)

func TestMustPrepareTestFiles(t *testing.T) {
	dir, filenames, cleanup := MustPrepareTestFiles(t, []testtools.FileSpec{
		{Path: "a/b.js", Content: "goog.provide('b');"},
		{Path: "c/missing.js", NotExist: true},
	})

	if diff := cmp.Diff("goog.provide('b');", MustReadTestFile(t, dir, "a/b.js")); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if len(filenames) != 2 {
		t.Fatalf("want 2 filenames, got %v", filenames)
	}
	if _, err := os.Stat(filenames[1]); !os.IsNotExist(err) {
		t.Errorf("want %s to not exist, got %v", filenames[1], err)
	}

	cleanup()
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("want %s removed, got %v", dir, err)
	}
}

func TestExpectError(t *testing.T) {
	if ExpectError(t, nil, nil) {
		t.Error("no error wanted")
	}
	if !ExpectError(t, errors.New("boom"), errors.New("boom")) {
		t.Error("error wanted")
	}
}
