package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjector_CountAtEpoch(t *testing.T) {
	p := NewApplicationsProjector()
	assert.Equal(t, ApplicationsBase, p.Count(ApplicationsEpoch))
}

func TestProjector_CountBeforeEpoch(t *testing.T) {
	p := NewApplicationsProjector()
	assert.Equal(t, ApplicationsBase, p.Count(ApplicationsEpoch.Add(-48*time.Hour)))
}

func TestProjector_FullDaysAccumulate(t *testing.T) {
	p := NewApplicationsProjector()

	// a hair before the end of day 1: both day quotas fully elapsed
	now := ApplicationsEpoch.Add(2*DayLength - time.Nanosecond)
	assert.Equal(t, ApplicationsBase+80, p.Count(now))
}

func TestProjector_Monotonic(t *testing.T) {
	p := NewReviewsProjector()

	prev := -1
	for h := 0; h < 10*24; h++ {
		now := ReviewsEpoch.Add(time.Duration(h) * time.Hour)
		cnt := p.Count(now)
		require.GreaterOrEqual(t, cnt, prev, "hour %d", h)
		require.GreaterOrEqual(t, cnt, ReviewsBase)
		prev = cnt
	}
}

func TestProjector_DayStats(t *testing.T) {
	p := NewReviewsProjector()

	// noon on the third day
	now := ReviewsEpoch.Add(2*DayLength + 12*time.Hour)
	stats := p.DayStats(now)

	require.Len(t, stats, 3)
	assert.Equal(t, "2026-01-19", stats[0].Date)
	assert.Equal(t, "2026-01-20", stats[1].Date)
	assert.Equal(t, "2026-01-21", stats[2].Date)

	// completed days carry their full quota
	assert.Equal(t, Reviews.DailyCount(0), stats[0].Count)
	assert.Equal(t, Reviews.DailyCount(1), stats[1].Count)

	// the current day only counts offsets that already elapsed
	assert.LessOrEqual(t, stats[2].Count, Reviews.DailyCount(2))
}

func TestProjector_ReviewsDayZeroQuota(t *testing.T) {
	// pinned by the LCG constants; a change here would desync every client
	assert.Equal(t, 9, Reviews.DailyCount(0))
}
