package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Evento emitido pelo checker após gravar a conferência de um bilhete.
// Consumido pelo serviço de notificações.
type TicketChecked struct {
	EventID     string          `json:"event_id"`
	TicketID    string          `json:"ticket_id"`
	DrawID      string          `json:"draw_id"`
	UserID      string          `json:"user_id,omitempty"`
	Game        string          `json:"game"`
	IsWin       bool            `json:"is_win"`
	BestTier    string          `json:"best_tier,omitempty"`
	BestRank    int             `json:"best_rank,omitempty"`
	TotalPayout decimal.Decimal `json:"total_payout"`
	Breakdown   []WinLine       `json:"breakdown,omitempty"`
	Ts          time.Time       `json:"ts"`
}

type WinLine struct {
	Matched string          `json:"matched"`
	Tier    string          `json:"tier"`
	Amount  decimal.Decimal `json:"amount"`
}

// BatchCompleted vai pelo Redis Pub/Sub para o feed WebSocket
type BatchCompleted struct {
	EventID        string          `json:"event_id"`
	DrawID         string          `json:"draw_id"`
	Game           string          `json:"game"`
	TicketsChecked int             `json:"tickets_checked"`
	Wins           int             `json:"wins"`
	Errors         int             `json:"errors"`
	TotalPayout    decimal.Decimal `json:"total_payout"`
	Cancelled      bool            `json:"cancelled"`
	Ts             time.Time       `json:"ts"`
}
