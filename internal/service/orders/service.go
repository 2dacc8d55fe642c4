// Package orders implements the order lifecycle: submission from the landing
// page form and the admin mutations (status change, deletion).
package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/omysaju/saju-go/internal/domain"
	redisx "github.com/omysaju/saju-go/internal/redis"
	"github.com/omysaju/saju-go/internal/remote"
	"github.com/omysaju/saju-go/internal/repository"
	redisrepo "github.com/omysaju/saju-go/internal/repository/redis"
)

const mirrorTimeout = 15 * time.Second

type Service struct {
	store   repository.RecordStore
	sheet   *remote.Client
	cache   *redisrepo.Cache
	pubsub  *redisx.OrdersPubSub
	limiter *redisrepo.SlidingWindowLimiter
	log     *slog.Logger
}

func New(
	store repository.RecordStore,
	sheet *remote.Client,
	cache *redisrepo.Cache,
	pubsub *redisx.OrdersPubSub,
	limiter *redisrepo.SlidingWindowLimiter,
	log *slog.Logger,
) *Service {
	return &Service{
		store:   store,
		sheet:   sheet,
		cache:   cache,
		pubsub:  pubsub,
		limiter: limiter,
		log:     log,
	}
}

// Submit validates and persists a new order, then mirrors it to the sheet in
// the background. The order is accepted even when the mirror push fails, the
// sheet is best-effort only.
//
// Returns:
//   - domain.Record: the stored record with a generated ID.
//   - error: orders.InvalidOrderError on bad input.
//   - error: orders.ErrRateLimited when the client submits too fast.
func (s *Service) Submit(ctx context.Context, companions []domain.Companion, rlKey string) (domain.Record, error) {
	const op = "service.orders.Submit"

	if err := domain.ValidateCompanions(companions); err != nil {
		return domain.Record{}, fmt.Errorf("%s:%w", op, InvalidOrderError{Reason: err})
	}

	if s.limiter != nil && rlKey != "" {
		ok, _, _, err := s.limiter.Allow(ctx, rlKey)
		if err != nil {
			return domain.Record{}, fmt.Errorf("%s:%w", op, err)
		}
		if !ok {
			return domain.Record{}, fmt.Errorf("%s:%w", op, ErrRateLimited)
		}
	}

	rec := domain.NewRecord(companions)

	if err := s.store.Save(ctx, rec); err != nil {
		return domain.Record{}, fmt.Errorf("%s:%w", op, err)
	}

	s.afterWrite(ctx, "created", rec.ID, func(ctx context.Context) error {
		return s.sheet.MirrorCreate(ctx, rec)
	})

	return rec, nil
}

// List returns a page of orders, newest first, together with the total count.
// Page numbers start at 1.
func (s *Service) List(ctx context.Context, page, perPage int) ([]domain.Record, int, error) {
	const op = "service.orders.List"

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	all, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("%s:%w", op, err)
	}

	total := len(all)

	start := (page - 1) * perPage
	if start >= total {
		return []domain.Record{}, total, nil
	}

	end := start + perPage
	if end > total {
		end = total
	}

	return all[start:end], total, nil
}

// UpdateStatus moves an order to a new status.
//
// Returns:
//   - error: orders.ErrInvalidStatus for an unknown status value.
//   - error: orders.ErrOrderNotFound if no order has the given ID.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	const op = "service.orders.UpdateStatus"

	if !domain.ValidStatus(status) {
		return fmt.Errorf("%s:%w", op, ErrInvalidStatus)
	}

	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s:%w", op, ErrOrderNotFound)
		}
		return fmt.Errorf("%s:%w", op, err)
	}

	s.afterWrite(ctx, "status", id, func(ctx context.Context) error {
		return s.sheet.MirrorStatus(ctx, id, status)
	})

	return nil
}

// Delete removes an order.
//
// Returns:
//   - error: orders.ErrOrderNotFound if no order has the given ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	const op = "service.orders.Delete"

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s:%w", op, ErrOrderNotFound)
		}
		return fmt.Errorf("%s:%w", op, err)
	}

	s.afterWrite(ctx, "deleted", id, func(ctx context.Context) error {
		return s.sheet.MirrorDelete(ctx, id)
	})

	return nil
}

// afterWrite runs the post-write fanout: stats cache invalidation, the
// pub/sub notification and the sheet mirror push. It detaches from the
// request context so a closed connection does not cancel the mirror push.
func (s *Service) afterWrite(ctx context.Context, kind, id string, mirror func(context.Context) error) {
	bg := context.WithoutCancel(ctx)

	if s.cache != nil {
		if err := s.cache.InvalidateAdminStats(bg); err != nil {
			s.log.Warn("stats cache invalidation failed", "error", err)
		}
	}

	if s.pubsub != nil {
		if err := s.pubsub.PublishOrdersChanged(bg, kind, id); err != nil {
			s.log.Warn("orders pubsub publish failed", "error", err)
		}
	}

	go func() {
		ctx, cancel := context.WithTimeout(bg, mirrorTimeout)
		defer cancel()

		if err := mirror(ctx); err != nil {
			s.log.Warn("sheet mirror push failed", "kind", kind, "order_id", id, "error", err)
		}
	}()
}
