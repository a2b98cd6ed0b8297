package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/radieske/lottery-ticket-checker/internal/lottery"
	skafka "github.com/radieske/lottery-ticket-checker/internal/shared/kafka"
	"github.com/radieske/lottery-ticket-checker/pkg/contracts/events"
)

// TicketCheckedProducer publica TicketChecked no Kafka.
// Com PublishLosses=false só bilhetes premiados geram evento.
type TicketCheckedProducer struct {
	W             *kafka.Writer
	PublishLosses bool
}

func NewTicketCheckedProducer(w *kafka.Writer, publishLosses bool) *TicketCheckedProducer {
	return &TicketCheckedProducer{W: w, PublishLosses: publishLosses}
}

// NotifyChecked implementa checker.Notifier; a chave é o ticket_id
func (p *TicketCheckedProducer) NotifyChecked(ctx context.Context, t lottery.Ticket, r lottery.CheckResult) error {
	if !r.IsWin && !p.PublishLosses {
		return nil
	}
	b, err := json.Marshal(BuildEvent(r))
	if err != nil {
		return err
	}
	return skafka.WriteJSON(ctx, p.W, t.ID, b)
}

// BuildEvent monta o evento a partir do resultado gravado
func BuildEvent(r lottery.CheckResult) events.TicketChecked {
	ev := events.TicketChecked{
		EventID:     uuid.NewString(),
		TicketID:    r.TicketID,
		DrawID:      r.DrawID,
		UserID:      r.UserID,
		Game:        string(r.Game),
		IsWin:       r.IsWin,
		BestTier:    r.BestTier,
		BestRank:    r.BestRank,
		TotalPayout: r.TotalPayout,
		Ts:          time.Now().UTC(),
	}
	for _, w := range r.Breakdown {
		ev.Breakdown = append(ev.Breakdown, events.WinLine{Matched: w.Matched, Tier: w.Tier, Amount: w.Amount})
	}
	return ev
}
