package checker

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// BatchRunner é implementado por *Runner
type BatchRunner interface {
	RunBatch(ctx context.Context, drawID string) (Summary, error)
}

// SweepReport resume uma varredura de sorteios pendentes
type SweepReport struct {
	DrawsFound int           `json:"draws_found"`
	Batches    []Summary     `json:"batches"`
	Failed     []DrawFailure `json:"failed"`
	Cancelled  bool          `json:"cancelled"`
}

type DrawFailure struct {
	DrawID string `json:"draw_id"`
	Kind   string `json:"kind"`
	Error  string `json:"error"`
}

// Sweeper roda RunBatch para cada sorteio com bilhetes ainda não conferidos
type Sweeper struct {
	Log     *zap.Logger
	Pending PendingLister
	Runner  BatchRunner
}

// CheckPending só retorna erro quando a listagem falha; falhas por sorteio
// vão no relatório.
func (s *Sweeper) CheckPending(ctx context.Context) (SweepReport, error) {
	log := s.Log
	if log == nil {
		log = zap.NewNop()
	}

	draws, err := s.Pending.ListPendingDraws(ctx)
	if err != nil {
		return SweepReport{}, fmt.Errorf("list pending draws: %w", err)
	}

	rep := SweepReport{DrawsFound: len(draws), Batches: []Summary{}, Failed: []DrawFailure{}}
	for _, d := range draws {
		if ctx.Err() != nil {
			rep.Cancelled = true
			break
		}
		sum, err := s.Runner.RunBatch(ctx, d.DrawID)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				rep.Batches = append(rep.Batches, sum)
				rep.Cancelled = true
				break
			}
			log.Error("pending draw failed", zap.String("draw_id", d.DrawID), zap.Error(err))
			rep.Failed = append(rep.Failed, DrawFailure{DrawID: d.DrawID, Kind: ErrorKind(err), Error: err.Error()})
			continue
		}
		rep.Batches = append(rep.Batches, sum)
	}

	log.Info("sweep finished",
		zap.Int("draws", rep.DrawsFound),
		zap.Int("ok", len(rep.Batches)),
		zap.Int("failed", len(rep.Failed)),
	)
	return rep, nil
}
