// Package live backs the landing page widgets: the cumulative counters, the
// recent-activity feed, the daily review stats and the event countdown.
// Numbers are projected deterministically from fixed epochs so every visitor
// sees the same steadily growing figures.
package live

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	redisx "github.com/omysaju/saju-go/internal/redis"
	"github.com/omysaju/saju-go/internal/repository"
	redisrepo "github.com/omysaju/saju-go/internal/repository/redis"
	"github.com/omysaju/saju-go/internal/schedule"
)

type Summary struct {
	Applications int `json:"applications"`
	Reviews      int `json:"reviews"`
	Viewers      int `json:"viewers"`
}

type DailyReviews struct {
	Total int                `json:"total"`
	Days  []schedule.DayStat `json:"days"`
}

type Service struct {
	store     repository.RecordStore
	deadlines *redisrepo.DeadlineStore
	pubsub    *redisx.OrdersPubSub
	apps      schedule.Projector
	reviews   schedule.Projector
	log       *slog.Logger

	now func() time.Time
}

func New(
	store repository.RecordStore,
	deadlines *redisrepo.DeadlineStore,
	pubsub *redisx.OrdersPubSub,
	log *slog.Logger,
) *Service {
	return &Service{
		store:     store,
		deadlines: deadlines,
		pubsub:    pubsub,
		apps:      schedule.NewApplicationsProjector(),
		reviews:   schedule.NewReviewsProjector(),
		log:       log,
		now:       time.Now,
	}
}

// Summary returns the headline numbers for the landing page hero section.
func (s *Service) Summary(_ context.Context) Summary {
	now := s.now()

	return Summary{
		Applications: s.apps.Count(now),
		Reviews:      s.reviews.Count(now),
		Viewers:      viewerCount(now),
	}
}

// DailyReviews returns per-day review counts for the carousel footer, oldest
// day first, plus the running total.
func (s *Service) DailyReviews(_ context.Context) DailyReviews {
	now := s.now()

	return DailyReviews{
		Total: s.reviews.Count(now),
		Days:  s.reviews.DayStats(now),
	}
}

// Countdown returns the current event deadline, re-arming it for another 12
// hours once the post-expiry grace period has passed.
func (s *Service) Countdown(ctx context.Context) (CountdownState, error) {
	const op = "service.live.Countdown"

	stored, err := s.deadlines.Get(ctx)
	if err != nil {
		return CountdownState{}, fmt.Errorf("%s:%w", op, err)
	}

	now := s.now()

	deadline, changed := resolveDeadline(now, stored)
	if changed {
		if err := s.deadlines.Set(ctx, deadline); err != nil {
			return CountdownState{}, fmt.Errorf("%s:%w", op, err)
		}
	}

	return countdownState(now, deadline), nil
}

// viewerCount fakes a concurrent-visitor figure. Evenings and nights run a
// higher band than daytime. Hours are taken in KST, the audience's zone.
func viewerCount(now time.Time) int {
	hour := now.In(schedule.KST).Hour()

	if hour >= 18 || hour < 6 {
		return 30 + rand.Intn(18) // 30..47
	}
	return 10 + rand.Intn(11) // 10..20
}
