package pubsub

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/radieske/lottery-ticket-checker/internal/ticket-checker/checker"
	"github.com/radieske/lottery-ticket-checker/pkg/contracts/events"
)

const ChannelBatchBroadcast = "ticket_checks_broadcast"

type RedisBroadcaster struct {
	r       *redis.Client
	channel string
}

func NewRedisBroadcaster(r *redis.Client, channel string) *RedisBroadcaster {
	if channel == "" {
		channel = ChannelBatchBroadcast
	}
	return &RedisBroadcaster{r: r, channel: channel}
}

func (b *RedisBroadcaster) Publish(ctx context.Context, payload []byte) error {
	return b.r.Publish(ctx, b.channel, payload).Err()
}

// PublishBatch anuncia o fim de um lote para o feed WebSocket
func (b *RedisBroadcaster) PublishBatch(ctx context.Context, s checker.Summary) error {
	payload, err := json.Marshal(BatchEvent(s))
	if err != nil {
		return err
	}
	return b.Publish(ctx, payload)
}

func BatchEvent(s checker.Summary) events.BatchCompleted {
	return events.BatchCompleted{
		EventID:        uuid.NewString(),
		DrawID:         s.DrawID,
		Game:           string(s.Game),
		TicketsChecked: s.TicketsChecked,
		Wins:           s.Wins,
		Errors:         len(s.Errors),
		TotalPayout:    s.TotalPayout,
		Cancelled:      s.Cancelled,
		Ts:             time.Now().UTC(),
	}
}
