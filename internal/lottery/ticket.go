package lottery

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Ticket é um bilhete como vem do banco; Details guarda o JSON cru das apostas
type Ticket struct {
	ID       string          `json:"id"`
	UserID   string          `json:"user_id,omitempty"`
	Game     Game            `json:"game_type"`
	DrawDate string          `json:"draw_date"` // YYYY-MM-DD
	Details  json.RawMessage `json:"details"`
}

// Draw é o resultado oficial de um sorteio
type Draw struct {
	ID         string          `json:"id"`
	Game       Game            `json:"game"`
	DrawNumber int             `json:"draw_number,omitempty"`
	DrawDate   string          `json:"draw_date"`
	Result     json.RawMessage `json:"result"`
}

// Win é uma linha do breakdown: um número (4D) ou combinação (TOTO) premiada
type Win struct {
	Line          int             `json:"line"`
	Label         string          `json:"label,omitempty"`
	Matched       string          `json:"matched"`
	Combination   []int           `json:"combination,omitempty"`
	Tier          string          `json:"tier"`
	Rank          int             `json:"rank"`
	StakeType     string          `json:"stake_type,omitempty"` // big | small (4D)
	Stake         decimal.Decimal `json:"stake"`
	Multiplier    int64           `json:"multiplier,omitempty"`
	MainMatches   int             `json:"main_matches,omitempty"`
	HasAdditional bool            `json:"has_additional,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
}

// LineResult resume uma linha de aposta (4D) ou entrada (TOTO)
type LineResult struct {
	Label        string          `json:"label,omitempty"`
	Variant      string          `json:"variant"`
	Base         string          `json:"base"`
	CoveredCount int             `json:"covered_count"`
	BestTier     string          `json:"best_tier,omitempty"`
	BestRank     int             `json:"best_rank,omitempty"`
	Payout       decimal.Decimal `json:"payout"`

	Wins []Win `json:"-"`
}

// CheckResult é o resultado final de um bilhete contra um sorteio
type CheckResult struct {
	TicketID     string          `json:"ticket_id"`
	DrawID       string          `json:"draw_id"`
	UserID       string          `json:"user_id,omitempty"`
	Game         Game            `json:"game"`
	IsWin        bool            `json:"is_win"`
	BestTier     string          `json:"best_tier,omitempty"`
	BestRank     int             `json:"best_rank,omitempty"`
	TotalPayout  decimal.Decimal `json:"total_payout"`
	CountsByTier map[string]int  `json:"counts_by_tier"`
	Breakdown    []Win           `json:"breakdown"`
	Lines        []LineResult    `json:"lines"`
}
