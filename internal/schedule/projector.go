package schedule

import "time"

// KST is the zone the schedule epochs were defined in.
var KST = time.FixedZone("KST", 9*60*60)

var (
	// ApplicationsEpoch anchors the 40/day application stream.
	ApplicationsEpoch = time.Date(2026, time.January, 1, 0, 0, 0, 0, KST)
	// ReviewsEpoch anchors the 6-12/day review stream.
	ReviewsEpoch = time.Date(2026, time.January, 19, 0, 0, 0, 0, KST)

	ApplicationsBase = 13797
	ReviewsBase      = 3500
)

// Projector turns a wall-clock instant into a cumulative event count for one
// deterministic stream: full quotas for every completed day since the epoch
// plus only the already-elapsed offsets of the current day. Recomputing with
// the same instant yields the same count; a later instant never yields less.
type Projector struct {
	Epoch time.Time
	Base  int
	Quota Config
}

// NewApplicationsProjector counts simulated applications.
func NewApplicationsProjector() Projector {
	return Projector{Epoch: ApplicationsEpoch, Base: ApplicationsBase, Quota: Applications}
}

// NewReviewsProjector counts simulated reviews.
func NewReviewsProjector() Projector {
	return Projector{Epoch: ReviewsEpoch, Base: ReviewsBase, Quota: Reviews}
}

// Count projects the cumulative total as of now.
func (p Projector) Count(now time.Time) int {
	days := p.daysElapsed(now)

	total := p.Base
	if p.Quota.MinEvents >= p.Quota.MaxEvents {
		total += int(days) * p.Quota.MinEvents
	} else {
		for d := int64(0); d < days; d++ {
			total += p.Quota.DailyCount(d)
		}
	}

	return total + p.elapsedToday(now, days)
}

// DayStat is one day's simulated quota for dashboard charts.
type DayStat struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// DayStats lists every day from the epoch through today with its quota; the
// current day reports only the offsets elapsed so far.
func (p Projector) DayStats(now time.Time) []DayStat {
	days := p.daysElapsed(now)

	stats := make([]DayStat, 0, days+1)
	for d := int64(0); d <= days; d++ {
		dayStart := p.Epoch.Add(time.Duration(d) * DayLength)

		count := p.Quota.DailyCount(d)
		if d == days {
			count = p.elapsedToday(now, days)
		}

		stats = append(stats, DayStat{
			Date:  dayStart.In(KST).Format("2006-01-02"),
			Count: count,
		})
	}

	return stats
}

func (p Projector) daysElapsed(now time.Time) int64 {
	since := now.Sub(p.Epoch)
	if since < 0 {
		return 0
	}
	return int64(since / DayLength)
}

func (p Projector) elapsedToday(now time.Time, days int64) int {
	dayStart := p.Epoch.Add(time.Duration(days) * DayLength)
	intoDay := now.Sub(dayStart)
	if intoDay < 0 {
		intoDay = 0
	}

	n := 0
	for _, off := range p.Quota.DaySchedule(days) {
		if off <= intoDay {
			n++
		}
	}
	return n
}
