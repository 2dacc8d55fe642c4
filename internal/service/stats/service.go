// Package stats aggregates orders into the revenue dashboard the admin UI
// renders: lifetime totals plus a month-by-month product breakdown.
package stats

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/omysaju/saju-go/internal/domain"
	redisx "github.com/omysaju/saju-go/internal/redis"
	"github.com/omysaju/saju-go/internal/repository"
	redisrepo "github.com/omysaju/saju-go/internal/repository/redis"
	"github.com/omysaju/saju-go/internal/schedule"
)

const defaultCacheTTL = 60 * time.Second

type ProductStat struct {
	Count int `json:"count"`
	// Rev is won. Couple orders are split per person, so a lone couple
	// entry contributes half the package price here.
	Rev float64 `json:"rev"`
}

type ProductBreakdown struct {
	Premium ProductStat `json:"premium"`
	Couple  ProductStat `json:"couple"`
	Year    ProductStat `json:"year"`
}

type MonthlyStat struct {
	Month    string           `json:"month"` // YYYY-MM
	Revenue  int              `json:"revenue"`
	Orders   int              `json:"orders"`
	Products ProductBreakdown `json:"products"`
}

type Summary struct {
	LatestMonth  MonthlyStat   `json:"latestMonth"`
	History      []MonthlyStat `json:"history"` // newest month first
	TotalOrders  int           `json:"totalOrders"`
	TotalReports int           `json:"totalReportCount"`
	PendingCount int           `json:"pendingCount"`
	PaidCount    int           `json:"paidCount"`
	TotalRevenue int           `json:"totalRevenue"`
}

type Config struct {
	CacheTTL time.Duration
}

type Service struct {
	store repository.RecordStore
	cache *redisrepo.Cache
	cfg   Config
}

func New(store repository.RecordStore, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}

	return &Service{
		store: store,
		cache: cache,
		cfg:   cfg,
	}
}

// Get returns the dashboard summary. The result is cached briefly and the
// cache entry is dropped on every order mutation, so admins see fresh numbers
// right after a change.
func (s *Service) Get(ctx context.Context) (Summary, error) {
	const op = "service.stats.Get"

	summary, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisx.KeyAdminStats(),
		s.cfg.CacheTTL,
		func(ctx context.Context) (Summary, error) {
			records, err := s.store.GetAll(ctx)
			if err != nil {
				return Summary{}, err
			}
			return Compute(records, time.Now()), nil
		},
	)
	if err != nil {
		return Summary{}, fmt.Errorf("%s:%w", op, err)
	}

	return summary, nil
}

// Compute builds the summary from scratch. Months are keyed in KST, matching
// the zone order timestamps are written in. Records whose createdAt does not
// parse still count toward the lifetime totals but are left out of the
// monthly history.
func Compute(records []domain.Record, now time.Time) Summary {
	currentMonth := monthKey(now.In(schedule.KST))

	monthly := make(map[string]*MonthlyStat)

	out := Summary{History: []MonthlyStat{}}

	for _, rec := range records {
		rev := rec.Total()

		out.TotalOrders++
		out.TotalReports += len(rec.Companions)
		out.TotalRevenue += rev

		if rec.Status == domain.StatusPending || rec.Status == "" {
			out.PendingCount++
		} else {
			out.PaidCount++
		}

		created, ok := rec.CreatedTime()
		if !ok {
			continue
		}

		key := monthKey(created.In(schedule.KST))

		m, exists := monthly[key]
		if !exists {
			m = &MonthlyStat{Month: key}
			monthly[key] = m
		}

		m.Revenue += rev
		m.Orders++

		for _, c := range rec.Companions {
			switch c.Product {
			case domain.ProductPremium:
				m.Products.Premium.Count++
				m.Products.Premium.Rev += float64(domain.PricePremium)
			case domain.ProductCouple:
				m.Products.Couple.Count++
				m.Products.Couple.Rev += float64(domain.PriceCouple) / 2
			case domain.ProductYear:
				m.Products.Year.Count++
				m.Products.Year.Rev += float64(domain.PriceYear)
			}
		}
	}

	for _, m := range monthly {
		out.History = append(out.History, *m)
	}

	sort.Slice(out.History, func(i, j int) bool {
		return out.History[i].Month > out.History[j].Month
	})

	if m, ok := monthly[currentMonth]; ok {
		out.LatestMonth = *m
	} else {
		out.LatestMonth = MonthlyStat{Month: currentMonth}
	}

	return out
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}
