package schedule

// Linear-congruential constants. The displayed counters were seeded with
// these exact values in production, so they must not change: regenerating a
// schedule on any device has to reproduce the published numbers.
const (
	lcgA = 9301
	lcgC = 49297
	lcgM = 233280
)

// Rand01 maps an integer seed to a deterministic value in [0,1).
// Pure integer math before the final divide keeps the result identical
// across platforms.
func Rand01(seed int64) float64 {
	x := (seed*lcgA + lcgC) % lcgM
	if x < 0 {
		x += lcgM
	}
	return float64(x) / float64(lcgM)
}

// RandInt maps an integer seed to a deterministic value in [0, m).
func RandInt(seed int64, m int64) int64 {
	x := (seed*lcgA + lcgC) % lcgM
	if x < 0 {
		x += lcgM
	}
	return x % m
}
