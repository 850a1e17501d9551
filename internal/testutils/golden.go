package testutils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// GoldenDiff renders the differences between expected and actual output,
// one change per line: "-" for expected text missing from actual, "+" for
// unexpected text. Long unchanged runs are shortened.
func GoldenDiff(expected, actual string) string {
	if expected == actual {
		return ""
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(expected, actual, false))

	var b strings.Builder
	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			fmt.Fprintf(&b, "- %q\n", diff.Text)
		case diffmatchpatch.DiffInsert:
			fmt.Fprintf(&b, "+ %q\n", diff.Text)
		case diffmatchpatch.DiffEqual:
			if len(diff.Text) > 50 {
				fmt.Fprintf(&b, "  %q...\n", diff.Text[:47])
			} else {
				fmt.Fprintf(&b, "  %q\n", diff.Text)
			}
		}
	}
	return b.String()
}

// AssertGolden compares actual with the contents of path. With update set
// the file is rewritten instead.
func AssertGolden(t *testing.T, path string, actual string, update bool) {
	t.Helper()

	if update {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("creating golden directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(actual), 0644); err != nil {
			t.Fatalf("writing golden file %s: %v", path, err)
		}
		return
	}

	expected, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading golden file %s: %v (run with -update to create it)", path, err)
	}
	if diff := GoldenDiff(string(expected), actual); diff != "" {
		t.Errorf("output differs from %s:\n%s", path, diff)
	}
}
