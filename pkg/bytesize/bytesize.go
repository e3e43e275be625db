// Package bytesize renders byte counts with binary-magnitude prefixes.
package bytesize

import "fmt"

const factor = 1024

var units = []string{"", "K", "M", "G", "T", "P"}

// Format scales bytes to the largest binary prefix that keeps the mantissa
// at or above 1 and prints it with two decimals, e.g.
//
//	1253656    => "1.20MB"
//	1253656678 => "1.17GB"
//
// An empty suffix means "B". Values beyond the petabyte threshold stay in
// "P" with a mantissa above 1024.
func Format(bytes float64, suffix string) string {
	if suffix == "" {
		suffix = "B"
	}
	for i, unit := range units {
		if bytes < factor || i == len(units)-1 {
			return fmt.Sprintf("%.2f%s%s", bytes, unit, suffix)
		}
		bytes /= factor
	}
	return "" // unreachable
}

// FormatUint is Format for the unsigned counters gopsutil reports.
func FormatUint(bytes uint64) string {
	return Format(float64(bytes), "B")
}
