// Package schedule fabricates deterministic day-by-day activity: how many
// simulated applications or reviews land on a given day and at which
// millisecond offsets within it. Determinism is load-bearing — every device
// recomputes the same numbers from wall-clock time alone, with no shared
// state and no network round trip.
package schedule

import "time"

const DayLength = 24 * time.Hour

// Config fixes one deterministic event stream.
type Config struct {
	// MinEvents/MaxEvents bound the per-day quota. Equal values pin the
	// quota to a constant.
	MinEvents int
	MaxEvents int

	// MinGap spreads intra-day offsets apart.
	MinGap time.Duration

	// Seed mixing strides: slot i of day d is seeded with
	// d*SeedDayStride + i*SeedSlotStride + SeedOffset.
	SeedDayStride  int64
	SeedSlotStride int64
	SeedOffset     int64
}

// Applications ran at a fixed 40/day since 2026-01-01 KST.
// Reviews add 6-12/day since 2026-01-19 KST on top of a 3500 base.
var (
	Applications = Config{
		MinEvents:      40,
		MaxEvents:      40,
		MinGap:         10 * time.Minute,
		SeedDayStride:  1000,
		SeedSlotStride: 17,
		SeedOffset:     33,
	}

	Reviews = Config{
		MinEvents:      6,
		MaxEvents:      12,
		MinGap:         2 * time.Hour,
		SeedDayStride:  1000,
		SeedSlotStride: 17,
		SeedOffset:     9,
	}
)

// DailyCount returns the event quota for a day. Variable-quota streams derive
// it from the day index; fixed-quota streams always return the constant.
func (c Config) DailyCount(dayIndex int64) int {
	if c.MinEvents >= c.MaxEvents {
		return c.MinEvents
	}
	span := int64(c.MaxEvents - c.MinEvents + 1)
	return c.MinEvents + int(RandInt(dayIndex, span))
}

// DaySchedule generates the sorted intra-day offsets for a day, one per
// quota slot. Consecutive offsets are at least MinGap apart except where the
// forward clamp pins them to the end of the day; clustering near midnight can
// compress trailing slots onto the boundary, which is accepted.
func (c Config) DaySchedule(dayIndex int64) []time.Duration {
	n := c.DailyCount(dayIndex)
	offsets := make([]time.Duration, n)
	for i := 0; i < n; i++ {
		seed := dayIndex*c.SeedDayStride + int64(i)*c.SeedSlotStride + c.SeedOffset
		offsets[i] = time.Duration(Rand01(seed) * float64(DayLength))
	}

	sortDurations(offsets)

	// One-pass forward correction; no re-sort, no redistribution.
	limit := DayLength - time.Millisecond
	for i := 1; i < len(offsets); i++ {
		if offsets[i]-offsets[i-1] < c.MinGap {
			offsets[i] = offsets[i-1] + c.MinGap
			if offsets[i] > limit {
				offsets[i] = limit
			}
		}
	}

	return offsets
}

func sortDurations(d []time.Duration) {
	// insertion sort keeps this allocation-free; quotas are tiny
	for i := 1; i < len(d); i++ {
		for j := i; j > 0 && d[j] < d[j-1]; j-- {
			d[j], d[j-1] = d[j-1], d[j]
		}
	}
}
