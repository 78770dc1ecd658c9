// Package multipass computes how a cut's total depth is divided across
// successive passes so no single pass exceeds the tool's maximum stepdown.
package multipass

import "math"

// Pass describes one depth pass: its zero-indexed number, the cumulative
// depth reached by its end, and the depth increment it adds.
type Pass struct {
	Number          int
	CumulativeDepth float64
	Increment       float64
}

// Count returns the number of passes needed to cut totalDepth without any
// single pass exceeding maxPassDepth. A non-positive maxPassDepth collapses
// to a single pass, and the result is never less than 1.
func Count(totalDepth, maxPassDepth float64) int {
	if maxPassDepth <= 0 {
		return 1
	}
	n := int(math.Ceil(totalDepth / maxPassDepth))
	if n < 1 {
		return 1
	}
	return n
}

// Plan divides totalDepth into Count(totalDepth, maxPassDepth) even passes,
// each the same increment, summing exactly to totalDepth.
func Plan(totalDepth, maxPassDepth float64) []Pass {
	n := Count(totalDepth, maxPassDepth)
	increment := totalDepth / float64(n)

	passes := make([]Pass, n)
	for i := 0; i < n; i++ {
		passes[i] = Pass{
			Number:          i,
			CumulativeDepth: float64(i+1) * increment,
			Increment:       increment,
		}
	}
	return passes
}
