// Package derived computes display metrics from snapshot counters.
//
// Every function is pure. A zero or negative denominator yields Undefined
// instead of NaN or Inf, so views can print the value without special cases.
package derived

import "math"

// Undefined is returned when a metric has no meaningful value.
const Undefined = 0.0

// Ratio returns num / den, or Undefined when den is not positive.
func Ratio(num, den float64) float64 {
	if den <= 0 || math.IsNaN(num) || math.IsInf(num, 0) {
		return Undefined
	}
	return num / den
}

// Utilization is busy core-cycles over available core-cycles, in [0, 1].
func Utilization(busy, cores, cycles int) float64 {
	return clamp01(Ratio(float64(busy), float64(cores)*float64(cycles)))
}

// Speedup is how many times faster improved is than base, both in cycles.
func Speedup(base, improved int) float64 {
	if base <= 0 {
		return Undefined
	}
	return Ratio(float64(base), float64(improved))
}

// Progress is done over total, in [0, 1].
func Progress(done, total int) float64 {
	return clamp01(Ratio(float64(done), float64(total)))
}

// Percent formats a fraction in [0, 1] as a rounded percentage.
func Percent(f float64) int {
	return int(math.Round(f * 100))
}

func clamp01(f float64) float64 {
	return math.Max(0, math.Min(1, f))
}
