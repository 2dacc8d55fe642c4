// Package sync reconciles the local order store with the remote sheet.
// Concurrent sync requests are collapsed into a single remote round trip.
package sync

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/omysaju/saju-go/internal/domain"
	"github.com/omysaju/saju-go/internal/reconcile"
	redisx "github.com/omysaju/saju-go/internal/redis"
	"github.com/omysaju/saju-go/internal/remote"
	"github.com/omysaju/saju-go/internal/repository"
	redisrepo "github.com/omysaju/saju-go/internal/repository/redis"
)

type Service struct {
	store  repository.RecordStore
	sheet  *remote.Client
	cache  *redisrepo.Cache
	pubsub *redisx.OrdersPubSub
	log    *slog.Logger

	group singleflight.Group
}

func New(
	store repository.RecordStore,
	sheet *remote.Client,
	cache *redisrepo.Cache,
	pubsub *redisx.OrdersPubSub,
	log *slog.Logger,
) *Service {
	return &Service{
		store:  store,
		sheet:  sheet,
		cache:  cache,
		pubsub: pubsub,
		log:    log,
	}
}

// SyncFromRemote merges the sheet contents into the local store and returns
// the merged records, newest first. When the sheet is unreachable or the
// client is disabled the local records come back untouched, a failed sync
// never loses local data.
func (s *Service) SyncFromRemote(ctx context.Context) ([]domain.Record, error) {
	const op = "service.sync.SyncFromRemote"

	v, err, _ := s.group.Do("sync", func() (any, error) {
		return s.sync(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return v.([]domain.Record), nil
}

func (s *Service) sync(ctx context.Context) ([]domain.Record, error) {
	local, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if !s.sheet.Enabled() {
		return local, nil
	}

	rows, err := s.sheet.FetchRows(ctx)
	if err != nil {
		s.log.Warn("remote fetch failed, keeping local records", "error", err)
		return local, nil
	}

	merged := reconcile.Merge(local, rows)

	if err := s.store.ReplaceAll(ctx, merged); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateAdminStats(ctx); err != nil {
			s.log.Warn("stats cache invalidation failed", "error", err)
		}
	}

	if s.pubsub != nil {
		if err := s.pubsub.PublishOrdersChanged(ctx, "synced", ""); err != nil {
			s.log.Warn("orders pubsub publish failed", "error", err)
		}
	}

	return merged, nil
}
