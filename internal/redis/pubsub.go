package redisx

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

type OrdersPubSub struct {
	rdb     *redis.Client
	channel string
}

func NewOrdersPubSub(rdb *redis.Client) *OrdersPubSub {
	return &OrdersPubSub{
		rdb:     rdb,
		channel: ChannelOrdersChanged(),
	}
}

type ordersChangedMsg struct {
	Type    string `json:"type"`
	OrderID string `json:"order_id,omitempty"`
	TsUnix  int64  `json:"ts_unix"`
}

// PublishOrdersChanged notifies subscribers that the record collection
// changed; kind is one of "created", "status", "deleted", "synced",
// "simulated".
func (p *OrdersPubSub) PublishOrdersChanged(ctx context.Context, kind, orderID string) error {
	msg := ordersChangedMsg{
		Type:    kind,
		OrderID: orderID,
		TsUnix:  time.Now().Unix(),
	}

	b, _ := json.Marshal(msg)

	return p.rdb.Publish(ctx, p.channel, b).Err()
}

func (p *OrdersPubSub) Subscribe(ctx context.Context, handler func(ctx context.Context, kind, orderID string)) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var ev ordersChangedMsg
			if err := json.Unmarshal([]byte(m.Payload), &ev); err == nil &&
				ev.Type != "" {
				handler(ctx, ev.Type, ev.OrderID)
			}
		}
	}
}
