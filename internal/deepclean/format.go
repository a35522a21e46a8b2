package deepclean

import (
	"math"

	"github.com/dustin/go-humanize"
)

//nolint:gochecknoglobals // Unit table
var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatBytes renders a byte count with 1024-based units and at most two
// decimals, dropping trailing zeros: 0 -> "0 B", 1536 -> "1.5 KB", 1048576 -> "1 MB".
func FormatBytes(bytes int64) string {
	value := float64(bytes)
	unit := 0

	for value >= 1024 && unit < len(byteUnits)-1 {
		value /= 1024
		unit++
	}

	// FtoaWithDigits truncates, so round to two decimals first.
	value = math.Round(value*100) / 100

	return humanize.FtoaWithDigits(value, 2) + " " + byteUnits[unit]
}
