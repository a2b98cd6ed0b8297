package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/lottery-ticket-checker/internal/lottery"
	"github.com/radieske/lottery-ticket-checker/internal/ticket-checker/checker"
	"github.com/radieske/lottery-ticket-checker/pkg/contracts/events"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Processor consome draw_published e dispara a conferência do sorteio.
// Sorteio inválido ou inexistente vai direto para a DLQ; falha de
// infraestrutura tenta de novo antes.
type Processor struct {
	Log    *zap.Logger
	Reader MessageReader
	Runner checker.BatchRunner
	DLQ    MessageWriter // opcional

	Retries int           // default 3
	Backoff time.Duration // default 300ms, cresce linear

	OnConsumed func()       // métricas
	OnDLQ      func()       // métricas
	OnError    func(string) // métricas por fase
}

// Run inicia o loop principal até o contexto ser cancelado
func (p *Processor) Run(ctx context.Context) error {
	for {
		m, err := p.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.Log.Warn("kafka read failed", zap.Error(err))
			p.fail("read")
			time.Sleep(500 * time.Millisecond)
			continue
		}
		if p.OnConsumed != nil {
			p.OnConsumed()
		}
		p.Handle(ctx, m)
	}
}

// Handle processa uma mensagem
func (p *Processor) Handle(ctx context.Context, m kafka.Message) {
	var ev events.DrawPublished
	if err := json.Unmarshal(m.Value, &ev); err != nil || ev.DrawID == "" {
		p.Log.Warn("invalid draw_published message", zap.Error(err))
		p.fail("decode")
		p.toDLQ(ctx, m, "decode")
		return
	}
	log := p.Log.With(zap.String("draw_id", ev.DrawID))

	var err error
	for attempt := 0; ; attempt++ {
		_, err = p.Runner.RunBatch(ctx, ev.DrawID)
		if err == nil || !retryable(err) || attempt >= p.retries() || ctx.Err() != nil {
			break
		}
		log.Warn("batch failed, retrying", zap.Int("attempt", attempt+1), zap.Error(err))
		time.Sleep(time.Duration(attempt+1) * p.backoff())
	}
	if err == nil {
		return
	}
	if ctx.Err() != nil {
		// desligando: a mensagem volta a ser entregue para o grupo
		return
	}

	kind := checker.ErrorKind(err)
	log.Error("draw batch failed", zap.String("kind", kind), zap.Error(err))
	p.fail("batch")
	p.toDLQ(ctx, m, kind)
}

// retryable: só falhas de infraestrutura valem nova tentativa
func retryable(err error) bool {
	return !errors.Is(err, lottery.ErrMalformedDraw) && !errors.Is(err, checker.ErrDrawNotFound)
}

func (p *Processor) toDLQ(ctx context.Context, m kafka.Message, reason string) {
	if p.DLQ == nil {
		return
	}
	msg := kafka.Message{
		Key:     m.Key,
		Value:   m.Value,
		Headers: append(m.Headers, kafka.Header{Key: "error_kind", Value: []byte(reason)}),
		Time:    time.Now(),
	}
	if err := p.DLQ.WriteMessages(ctx, msg); err != nil {
		p.Log.Error("dlq write failed", zap.Error(err))
		p.fail("dlq")
		return
	}
	if p.OnDLQ != nil {
		p.OnDLQ()
	}
}

func (p *Processor) fail(stage string) {
	if p.OnError != nil {
		p.OnError(stage)
	}
}

func (p *Processor) retries() int {
	if p.Retries > 0 {
		return p.Retries
	}
	return 3
}

func (p *Processor) backoff() time.Duration {
	if p.Backoff > 0 {
		return p.Backoff
	}
	return 300 * time.Millisecond
}
