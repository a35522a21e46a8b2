package deepclean

import (
	"io/fs"
	"os"

	"github.com/charlievieth/fastwalk"
)

// SizeOf returns the total size in bytes of the regular files below path.
// It is best effort: entries that cannot be read contribute 0, and a path
// that cannot be read at all yields 0. Symbolic links are not followed.
func SizeOf(path string) int64 {
	info, err := os.Lstat(path)
	if err != nil || !info.IsDir() {
		return 0
	}

	// A single worker keeps the walk sequential, so total needs no locking.
	conf := &fastwalk.Config{
		Follow:     false,
		NumWorkers: 1,
	}

	var total int64

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || d == nil {
			return nil //nolint:nilerr // Unreadable entries count as zero
		}

		if !d.Type().IsRegular() {
			return nil
		}

		fileInfo, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr // Unreadable entries count as zero
		}

		total += fileInfo.Size()

		return nil
	})
	if walkErr != nil {
		return 0
	}

	return total
}
