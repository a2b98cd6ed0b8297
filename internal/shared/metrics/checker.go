package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Checker agrupa os coletores da conferência de bilhetes
type Checker struct {
	Checks        *prometheus.CounterVec
	TicketErrors  *prometheus.CounterVec
	Batches       *prometheus.CounterVec
	BatchDuration prometheus.Histogram
	DrawCache     *prometheus.CounterVec
	Consumed      prometheus.Counter
	DLQ           prometheus.Counter
	StageErrors   *prometheus.CounterVec
}

func NewChecker(reg prometheus.Registerer) *Checker {
	m := &Checker{
		Checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ticket_checks_total", Help: "bilhetes conferidos",
		}, []string{"game", "outcome"}),
		TicketErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ticket_check_errors_total", Help: "bilhetes com erro por tipo",
		}, []string{"kind"}),
		Batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "batch_runs_total", Help: "lotes executados",
		}, []string{"game", "result"}),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "batch_duration_seconds", Help: "duração dos lotes",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		DrawCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "draw_cache_requests_total", Help: "leituras do cache de sorteios",
		}, []string{"result"}),
		Consumed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "draw_events_consumed_total", Help: "mensagens draw_published consumidas",
		}),
		DLQ: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "draw_events_dlq_total", Help: "mensagens enviadas para DLQ",
		}),
		StageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "draw_consumer_errors_total", Help: "erros do consumer por estágio",
		}, []string{"stage"}),
	}
	reg.MustRegister(m.Checks, m.TicketErrors, m.Batches, m.BatchDuration, m.DrawCache, m.Consumed, m.DLQ, m.StageErrors)
	return m
}

func (m *Checker) ObserveCheck(game string, win bool) {
	outcome := "loss"
	if win {
		outcome = "win"
	}
	m.Checks.WithLabelValues(game, outcome).Inc()
}

func (m *Checker) ObserveTicketError(kind string) {
	m.TicketErrors.WithLabelValues(kind).Inc()
}

// ObserveBatch: result = ok | partial | cancelled (failed vem de ObserveBatchFailed)
func (m *Checker) ObserveBatch(game string, errs int, cancelled bool, took time.Duration) {
	result := "ok"
	switch {
	case cancelled:
		result = "cancelled"
	case errs > 0:
		result = "partial"
	}
	m.Batches.WithLabelValues(game, result).Inc()
	m.BatchDuration.Observe(took.Seconds())
}

// ObserveBatchFailed conta lotes que nem começaram (sorteio ausente, inválido...)
func (m *Checker) ObserveBatchFailed(game string, took time.Duration) {
	if game == "" {
		game = "unknown"
	}
	m.Batches.WithLabelValues(game, "failed").Inc()
	m.BatchDuration.Observe(took.Seconds())
}

func (m *Checker) CacheHit()  { m.DrawCache.WithLabelValues("hit").Inc() }
func (m *Checker) CacheMiss() { m.DrawCache.WithLabelValues("miss").Inc() }

// StageError é usado pelo consumer (read, decode, batch, dlq)
func (m *Checker) StageError(stage string) { m.StageErrors.WithLabelValues(stage).Inc() }
