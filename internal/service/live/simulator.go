package live

import (
	"context"
	"math/rand"
	"time"

	"github.com/omysaju/saju-go/internal/schedule"
)

// RunSimulator emits fabricated activity ticks on the orders channel until
// the context is cancelled. Delays are drawn per tick from a time-of-day band
// so the stream quiets down at night, averaging out to roughly the daily
// application quota.
func (s *Service) RunSimulator(ctx context.Context) error {
	for {
		delay := simulatorDelay(s.now())

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if err := s.pubsub.PublishOrdersChanged(ctx, "simulated", ""); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.log.Warn("simulator publish failed", "error", err)
		}
	}
}

func simulatorDelay(now time.Time) time.Duration {
	hour := now.In(schedule.KST).Hour()

	var minMins, maxMins int
	if hour >= 1 && hour <= 7 {
		minMins, maxMins = 60, 150
	} else {
		minMins, maxMins = 10, 65
	}

	spread := time.Duration(maxMins-minMins) * time.Minute
	return time.Duration(minMins)*time.Minute + time.Duration(rand.Int63n(int64(spread)))
}
