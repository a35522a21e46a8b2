package deepclean

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

// tree creates dirs and files below root. Files map a slash path to its size.
func tree(t *testing.T, root string, dirs []string, files map[string]int) {
	t.Helper()

	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(d)), 0o755); err != nil {
			t.Fatalf("creating directory %s: %v", d, err)
		}
	}

	for f, size := range files {
		path := filepath.Join(root, filepath.FromSlash(f))

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating parent of %s: %v", f, err)
		}

		if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
			t.Fatalf("writing %s: %v", f, err)
		}
	}
}

// abs joins slash paths onto root.
func abs(root string, rel ...string) []string {
	out := make([]string, 0, len(rel))
	for _, r := range rel {
		out = append(out, filepath.Join(root, filepath.FromSlash(r)))
	}

	return out
}

func exists(t *testing.T, path string) bool {
	t.Helper()

	_, err := os.Lstat(path)
	if err == nil {
		return true
	}

	if os.IsNotExist(err) {
		return false
	}

	t.Fatalf("stat %s: %v", path, err)

	return false
}

// snapshot lists every path below root, for before/after comparisons.
func snapshot(t *testing.T, root string) []string {
	t.Helper()

	var paths []string

	err := filepath.WalkDir(root, func(path string, _ os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		paths = append(paths, path)

		return nil
	})
	if err != nil {
		t.Fatalf("walking %s: %v", root, err)
	}

	slices.Sort(paths)

	return paths
}

// skipIfRoot skips tests that rely on permission bits being enforced.
func skipIfRoot(t *testing.T) {
	t.Helper()

	if os.Geteuid() == 0 {
		t.Skip("permission checks are not enforced for root")
	}
}
