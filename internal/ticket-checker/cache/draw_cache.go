package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/radieske/lottery-ticket-checker/internal/lottery"
	"github.com/radieske/lottery-ticket-checker/internal/ticket-checker/checker"
)

// DrawCache guarda resultados de sorteio no Redis na frente do Postgres.
// Resultado publicado não muda, então TTL longo é seguro.
type DrawCache struct {
	Log    *zap.Logger
	Client *redis.Client
	TTL    time.Duration
	Source checker.DrawSource

	OnHit  func() // métricas
	OnMiss func() // métricas
}

func NewDrawCache(c *redis.Client, ttl time.Duration, src checker.DrawSource, log *zap.Logger) *DrawCache {
	return &DrawCache{Client: c, TTL: ttl, Source: src, Log: log}
}

// key gera a chave Redis do resultado de um sorteio
func key(drawID string) string { return "draws:result:" + drawID }

// GetDraw tenta o Redis e cai para a fonte em caso de miss ou erro
func (c *DrawCache) GetDraw(ctx context.Context, drawID string) (lottery.Draw, error) {
	b, err := c.Client.Get(ctx, key(drawID)).Bytes()
	switch {
	case err == nil:
		var d lottery.Draw
		jerr := json.Unmarshal(b, &d)
		if jerr == nil {
			if c.OnHit != nil {
				c.OnHit()
			}
			return d, nil
		}
		c.warn("cached draw corrupted", drawID, jerr)
	case !errors.Is(err, redis.Nil):
		// redis fora não impede a conferência
		c.warn("redis get failed", drawID, err)
	}

	if c.OnMiss != nil {
		c.OnMiss()
	}
	d, err := c.Source.GetDraw(ctx, drawID)
	if err != nil {
		return lottery.Draw{}, err
	}
	if err := c.set(ctx, d); err != nil {
		c.warn("redis set failed", drawID, err)
	}
	return d, nil
}

func (c *DrawCache) set(ctx context.Context, d lottery.Draw) error {
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, key(d.ID), b, c.TTL).Err()
}

func (c *DrawCache) warn(msg, drawID string, err error) {
	if c.Log != nil {
		c.Log.Warn(msg, zap.String("draw_id", drawID), zap.Error(err))
	}
}
