package service

import (
	"log/slog"

	redisx "github.com/omysaju/saju-go/internal/redis"
	"github.com/omysaju/saju-go/internal/remote"
	"github.com/omysaju/saju-go/internal/repository"
	redisrepo "github.com/omysaju/saju-go/internal/repository/redis"
	"github.com/omysaju/saju-go/internal/service/live"
	"github.com/omysaju/saju-go/internal/service/orders"
	"github.com/omysaju/saju-go/internal/service/stats"
	syncsvc "github.com/omysaju/saju-go/internal/service/sync"
)

type Services struct {
	Orders *orders.Service
	Sync   *syncsvc.Service
	Stats  *stats.Service
	Live   *live.Service
}

type Config struct {
	Stats stats.Config
}

func NewServices(
	store repository.RecordStore,
	sheet *remote.Client,
	cache *redisrepo.Cache,
	deadlines *redisrepo.DeadlineStore,
	pubsub *redisx.OrdersPubSub,
	limiter *redisrepo.SlidingWindowLimiter,
	log *slog.Logger,
	cfg Config,
) *Services {
	return &Services{
		Orders: orders.New(store, sheet, cache, pubsub, limiter, log),
		Sync:   syncsvc.New(store, sheet, cache, pubsub, log),
		Stats:  stats.New(store, cache, cfg.Stats),
		Live:   live.New(store, deadlines, pubsub, log),
	}
}
