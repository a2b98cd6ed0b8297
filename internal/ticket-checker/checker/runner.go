package checker

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/radieske/lottery-ticket-checker/internal/lottery"
)

const DefaultConcurrency = 8

// Summary é o relatório de um lote
type Summary struct {
	DrawID         string          `json:"draw_id"`
	Game           lottery.Game    `json:"game"`
	DrawDate       string          `json:"draw_date"`
	TicketsFound   int             `json:"tickets_found"`
	TicketsChecked int             `json:"tickets_checked"`
	Wins           int             `json:"wins"`
	Losses         int             `json:"losses"`
	TotalPayout    decimal.Decimal `json:"total_payout"`
	Errors         []TicketError   `json:"errors"`
	Cancelled      bool            `json:"cancelled"`
	Duration       time.Duration   `json:"duration_ns"`
}

// Runner confere todos os bilhetes de um sorteio e grava os resultados.
// Falhas de bilhete não interrompem o lote.
type Runner struct {
	Log         *zap.Logger
	Store       BatchStore
	Draws       DrawSource // opcional (ex.: cache); default = Store
	Notifier    Notifier   // opcional
	Concurrency int

	OnChecked     func(game lottery.Game, win bool) // métricas
	OnTicketError func(kind string)                 // métricas por tipo de erro
	OnBatchDone   func(Summary)                     // métricas / broadcast
	OnBatchFailed func(Summary, error)              // lote abortado antes de conferir
}

// RunBatch retorna erro só quando o lote não pode começar (sorteio ausente ou
// inválido, falha ao listar bilhetes) ou foi cancelado. No primeiro caso chama
// OnBatchFailed em vez de OnBatchDone.
func (r *Runner) RunBatch(ctx context.Context, drawID string) (Summary, error) {
	start := time.Now()
	log := r.logger().With(zap.String("draw_id", drawID))
	sum := Summary{DrawID: drawID, TotalPayout: decimal.Zero, Errors: []TicketError{}}

	fail := func(err error) (Summary, error) {
		sum.Duration = time.Since(start)
		log.Error("batch failed", zap.String("kind", ErrorKind(err)), zap.Error(err))
		if r.OnBatchFailed != nil {
			r.OnBatchFailed(sum, err)
		}
		return sum, err
	}

	draw, err := r.drawSource().GetDraw(ctx, drawID)
	if err != nil {
		return fail(fmt.Errorf("load draw %s: %w", drawID, err))
	}
	prepared, err := Prepare(draw)
	if err != nil {
		return fail(err)
	}
	sum.Game, sum.DrawDate = prepared.Draw.Game, draw.DrawDate

	tickets, err := r.Store.ListTickets(ctx, prepared.Draw.Game, draw.DrawDate)
	if err != nil {
		return fail(fmt.Errorf("list tickets for %s %s: %w", prepared.Draw.Game, draw.DrawDate, err))
	}
	sum.TicketsFound = len(tickets)
	log.Info("batch started", zap.String("game", string(sum.Game)), zap.Int("tickets", len(tickets)))

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(r.concurrency())
	for _, t := range tickets {
		if ctx.Err() != nil {
			mu.Lock()
			sum.Cancelled = true
			mu.Unlock()
			break
		}
		t := t
		g.Go(func() error {
			// g.Go pode ter esperado uma vaga; o cancelamento chegou nesse meio tempo
			if ctx.Err() != nil {
				mu.Lock()
				sum.Cancelled = true
				mu.Unlock()
				return nil
			}
			res, err := r.checkTicket(ctx, prepared, t)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				te := newTicketError(t.ID, err)
				sum.Errors = append(sum.Errors, te)
				log.Warn("ticket check failed", zap.String("ticket_id", t.ID), zap.String("kind", te.Kind), zap.Error(err))
				if r.OnTicketError != nil {
					r.OnTicketError(te.Kind)
				}
				return nil
			}
			sum.TicketsChecked++
			sum.TotalPayout = sum.TotalPayout.Add(res.TotalPayout)
			if res.IsWin {
				sum.Wins++
			} else {
				sum.Losses++
			}
			if r.OnChecked != nil {
				r.OnChecked(res.Game, res.IsWin)
			}
			return nil
		})
	}
	_ = g.Wait() // goroutines nunca retornam erro; falhas ficam em sum.Errors

	// ordem estável independente do escalonamento
	sort.Slice(sum.Errors, func(i, j int) bool { return sum.Errors[i].TicketID < sum.Errors[j].TicketID })
	sum.Duration = time.Since(start)

	log.Info("batch finished",
		zap.Int("checked", sum.TicketsChecked),
		zap.Int("wins", sum.Wins),
		zap.Int("errors", len(sum.Errors)),
		zap.Bool("cancelled", sum.Cancelled),
		zap.Duration("took", sum.Duration),
	)
	if r.OnBatchDone != nil {
		r.OnBatchDone(sum)
	}
	if sum.Cancelled {
		return sum, ctx.Err()
	}
	return sum, nil
}

// checkTicket avalia, grava e notifica um bilhete
func (r *Runner) checkTicket(ctx context.Context, p PreparedDraw, t lottery.Ticket) (lottery.CheckResult, error) {
	res, err := p.Evaluate(t)
	if err != nil {
		return lottery.CheckResult{}, err
	}

	// bilhete em andamento termina mesmo se o lote for cancelado
	wctx := context.WithoutCancel(ctx)
	if err := r.Store.UpsertCheck(wctx, res); err != nil {
		return lottery.CheckResult{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if r.Notifier != nil {
		if err := r.Notifier.NotifyChecked(wctx, t, res); err != nil {
			// resultado já está gravado; notificação é best effort
			r.logger().Warn("notify failed", zap.String("ticket_id", t.ID), zap.Error(err))
		}
	}
	return res, nil
}

func (r *Runner) drawSource() DrawSource {
	if r.Draws != nil {
		return r.Draws
	}
	return r.Store
}

func (r *Runner) concurrency() int {
	if r.Concurrency > 0 {
		return r.Concurrency
	}
	return DefaultConcurrency
}

func (r *Runner) logger() *zap.Logger {
	if r.Log != nil {
		return r.Log
	}
	return zap.NewNop()
}
