package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/radieske/lottery-ticket-checker/internal/lottery"
	"github.com/radieske/lottery-ticket-checker/internal/ticket-checker/checker"
)

// PostgresRepo implementa o armazenamento de sorteios, bilhetes e conferências
type PostgresRepo struct {
	DB *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{DB: db}
}

// GetDraw busca o resultado de um sorteio pelo uid
func (r *PostgresRepo) GetDraw(ctx context.Context, drawID string) (lottery.Draw, error) {
	const q = `
		SELECT uid, game, COALESCE(draw_no, 0), to_char(draw_date, 'YYYY-MM-DD'), result
		FROM draw_results
		WHERE uid = $1
	`
	var (
		d    lottery.Draw
		game string
		raw  []byte
	)
	err := r.DB.QueryRowContext(ctx, q, drawID).Scan(&d.ID, &game, &d.DrawNumber, &d.DrawDate, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return lottery.Draw{}, fmt.Errorf("%w: %s", checker.ErrDrawNotFound, drawID)
	}
	if err != nil {
		return lottery.Draw{}, err
	}
	d.Game = normalizeGame(game)
	d.Result = json.RawMessage(raw)
	return d, nil
}

// ListTickets lista os bilhetes do jogo para a data do sorteio, ordenados por id
func (r *PostgresRepo) ListTickets(ctx context.Context, game lottery.Game, drawDate string) ([]lottery.Ticket, error) {
	const q = `
		SELECT id, COALESCE(user_id, ''), game_type, to_char(draw_date, 'YYYY-MM-DD'), details
		FROM tickets
		WHERE upper(game_type) = $1 AND draw_date = $2::date
		ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, q, string(game), drawDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []lottery.Ticket
	for rows.Next() {
		var (
			t   lottery.Ticket
			g   string
			raw []byte
		)
		if err := rows.Scan(&t.ID, &t.UserID, &g, &t.DrawDate, &raw); err != nil {
			return nil, err
		}
		t.Game = normalizeGame(g)
		t.Details = json.RawMessage(raw)
		out = append(out, t)
	}
	return out, rows.Err()
}

// checkDetails é o que vai na coluna details de ticket_checks
type checkDetails struct {
	CountsByTier map[string]int       `json:"counts_by_tier"`
	Breakdown    []lottery.Win        `json:"breakdown"`
	Lines        []lottery.LineResult `json:"lines"`
}

// UpsertCheck grava ou substitui a conferência por (ticket_id, draw_id).
// checked_at fica com a primeira gravação para que reprocessar não altere nada.
func (r *PostgresRepo) UpsertCheck(ctx context.Context, res lottery.CheckResult) error {
	details, err := json.Marshal(checkDetails{
		CountsByTier: res.CountsByTier,
		Breakdown:    res.Breakdown,
		Lines:        res.Lines,
	})
	if err != nil {
		return err
	}

	const q = `
		INSERT INTO ticket_checks
		  (ticket_id, draw_id, user_id, game, is_win, best_tier, highest_prize_group, total_payout, details)
		VALUES
		  ($1, $2, NULLIF($3, ''), $4, $5, NULLIF($6, ''), NULLIF($7, 0), $8, $9)
		ON CONFLICT (ticket_id, draw_id) DO UPDATE SET
		  user_id             = EXCLUDED.user_id,
		  game                = EXCLUDED.game,
		  is_win              = EXCLUDED.is_win,
		  best_tier           = EXCLUDED.best_tier,
		  highest_prize_group = EXCLUDED.highest_prize_group,
		  total_payout        = EXCLUDED.total_payout,
		  details             = EXCLUDED.details
	`
	_, err = r.DB.ExecContext(ctx, q,
		res.TicketID, res.DrawID, res.UserID, string(res.Game),
		res.IsWin, res.BestTier, res.BestRank, res.TotalPayout,
		string(details), // lib/pq manda []byte como bytea
	)
	return err
}

// GetCheck lê uma conferência gravada
func (r *PostgresRepo) GetCheck(ctx context.Context, ticketID, drawID string) (lottery.CheckResult, error) {
	const q = `
		SELECT ticket_id, draw_id, COALESCE(user_id, ''), game, is_win,
		       COALESCE(best_tier, ''), COALESCE(highest_prize_group, 0), total_payout, details
		FROM ticket_checks
		WHERE ticket_id = $1 AND draw_id = $2
	`
	var (
		res    lottery.CheckResult
		game   string
		payout decimal.Decimal
		raw    []byte
	)
	err := r.DB.QueryRowContext(ctx, q, ticketID, drawID).Scan(
		&res.TicketID, &res.DrawID, &res.UserID, &game, &res.IsWin,
		&res.BestTier, &res.BestRank, &payout, &raw,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return lottery.CheckResult{}, fmt.Errorf("%w: ticket %s draw %s", checker.ErrCheckNotFound, ticketID, drawID)
	}
	if err != nil {
		return lottery.CheckResult{}, err
	}

	var det checkDetails
	if err := json.Unmarshal(raw, &det); err != nil {
		return lottery.CheckResult{}, fmt.Errorf("decode check details: %w", err)
	}
	res.Game = normalizeGame(game)
	res.TotalPayout = payout
	res.CountsByTier = det.CountsByTier
	res.Breakdown = det.Breakdown
	res.Lines = det.Lines
	return res, nil
}

// ListPendingDraws retorna sorteios com mais bilhetes do que conferências gravadas
func (r *PostgresRepo) ListPendingDraws(ctx context.Context) ([]checker.PendingDraw, error) {
	const q = `
		SELECT d.uid, d.game, to_char(d.draw_date, 'YYYY-MM-DD'), t.cnt, COALESCE(c.cnt, 0)
		FROM draw_results d
		JOIN (
			SELECT upper(game_type) AS game, draw_date, COUNT(*) AS cnt
			FROM tickets
			GROUP BY 1, 2
		) t ON t.game = upper(d.game) AND t.draw_date = d.draw_date
		LEFT JOIN (
			SELECT draw_id, COUNT(*) AS cnt
			FROM ticket_checks
			GROUP BY draw_id
		) c ON c.draw_id = d.uid
		WHERE COALESCE(c.cnt, 0) < t.cnt
		ORDER BY d.draw_date, d.uid
	`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []checker.PendingDraw
	for rows.Next() {
		var (
			p checker.PendingDraw
			g string
		)
		if err := rows.Scan(&p.DrawID, &g, &p.DrawDate, &p.TicketCount, &p.CheckCount); err != nil {
			return nil, err
		}
		p.Game = normalizeGame(g)
		out = append(out, p)
	}
	return out, rows.Err()
}

// normalizeGame mantém o valor cru se não reconhecer; a conferência rejeita depois
func normalizeGame(s string) lottery.Game {
	if g, err := lottery.ParseGame(s); err == nil {
		return g
	}
	return lottery.Game(s)
}
