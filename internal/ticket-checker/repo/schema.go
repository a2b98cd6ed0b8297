package repo

import (
	"context"
	"database/sql"
	"fmt"
)

// schema mínimo usado pelo checker. Em produção as tabelas já existem;
// EnsureSchema serve para ambientes locais e testes de integração.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS draw_results (
		uid        TEXT PRIMARY KEY,
		game       TEXT NOT NULL,
		draw_no    INTEGER,
		draw_date  DATE NOT NULL,
		result     JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS tickets (
		id         TEXT PRIMARY KEY,
		user_id    TEXT,
		game_type  TEXT NOT NULL,
		draw_date  DATE NOT NULL,
		details    JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_game_date ON tickets (upper(game_type), draw_date)`,
	`CREATE TABLE IF NOT EXISTS ticket_checks (
		id                  BIGSERIAL PRIMARY KEY,
		ticket_id           TEXT NOT NULL REFERENCES tickets(id),
		draw_id             TEXT NOT NULL REFERENCES draw_results(uid),
		user_id             TEXT,
		game                TEXT NOT NULL,
		is_win              BOOLEAN NOT NULL,
		best_tier           TEXT,
		highest_prize_group INTEGER,
		total_payout        NUMERIC(14,2) NOT NULL,
		details             JSONB NOT NULL,
		checked_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (ticket_id, draw_id)
	)`,
}

// EnsureSchema cria as tabelas se não existirem
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema step %d: %w", i, err)
		}
	}
	return nil
}
