package schedule

import (
	"math"
	"strconv"
	"strings"
)

// ClampCount clamps a manpower count to be non-negative.
func ClampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// CoerceCount turns user input into a manpower count. Fractions are
// truncated; negative, empty and non-numeric input become 0.
func CoerceCount(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return ClampCount(n)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	if f >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

// FitCounts returns a copy of stored resized to n: padded with zeros or
// truncated. stored itself is never modified.
func FitCounts(stored []int, n int) []int {
	if n <= 0 {
		return []int{}
	}
	out := make([]int, n)
	copy(out, stored)
	return out
}

// SumCounts adds up a row of counts.
func SumCounts(counts []int) int {
	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}
