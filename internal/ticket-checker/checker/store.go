package checker

import (
	"context"

	"github.com/radieske/lottery-ticket-checker/internal/lottery"
)

// DrawSource carrega um sorteio; retorna ErrDrawNotFound quando não existe
type DrawSource interface {
	GetDraw(ctx context.Context, drawID string) (lottery.Draw, error)
}

// BatchStore é o que o Runner precisa do armazenamento
type BatchStore interface {
	DrawSource
	ListTickets(ctx context.Context, game lottery.Game, drawDate string) ([]lottery.Ticket, error)
	// UpsertCheck grava por (ticket_id, draw_id); repetir não duplica
	UpsertCheck(ctx context.Context, r lottery.CheckResult) error
}

type CheckReader interface {
	GetCheck(ctx context.Context, ticketID, drawID string) (lottery.CheckResult, error)
}

// PendingDraw é um sorteio com mais bilhetes que conferências gravadas
type PendingDraw struct {
	DrawID      string       `json:"draw_id"`
	Game        lottery.Game `json:"game"`
	DrawDate    string       `json:"draw_date"`
	TicketCount int          `json:"ticket_count"`
	CheckCount  int          `json:"check_count"`
}

type PendingLister interface {
	ListPendingDraws(ctx context.Context) ([]PendingDraw, error)
}

// Notifier publica o resultado de cada bilhete conferido (opcional)
type Notifier interface {
	NotifyChecked(ctx context.Context, t lottery.Ticket, r lottery.CheckResult) error
}
