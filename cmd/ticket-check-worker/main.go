package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/radieske/lottery-ticket-checker/internal/lottery"
	sharedcache "github.com/radieske/lottery-ticket-checker/internal/shared/cache"
	"github.com/radieske/lottery-ticket-checker/internal/shared/config"
	"github.com/radieske/lottery-ticket-checker/internal/shared/db"
	"github.com/radieske/lottery-ticket-checker/internal/shared/kafka"
	"github.com/radieske/lottery-ticket-checker/internal/shared/logger"
	"github.com/radieske/lottery-ticket-checker/internal/shared/metrics"
	"github.com/radieske/lottery-ticket-checker/internal/ticket-checker/cache"
	"github.com/radieske/lottery-ticket-checker/internal/ticket-checker/checker"
	"github.com/radieske/lottery-ticket-checker/internal/ticket-checker/consumer"
	"github.com/radieske/lottery-ticket-checker/internal/ticket-checker/producer"
	"github.com/radieske/lottery-ticket-checker/internal/ticket-checker/pubsub"
	"github.com/radieske/lottery-ticket-checker/internal/ticket-checker/repo"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pg, err := db.ConnectPostgres(ctx, cfg.PostgresDSN, cfg.CheckConcurrency+2)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	redisClient, err := sharedcache.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer redisClient.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewChecker(reg)

	store := repo.NewPostgresRepo(pg)
	draws := cache.NewDrawCache(redisClient, cfg.DrawCacheTTL, store, log)
	draws.OnHit, draws.OnMiss = m.CacheHit, m.CacheMiss

	// Kafka: consome draw_published, publica ticket_checked e DLQ
	reader := kafka.NewReader(cfg.Brokers(), cfg.TopicDrawPublished, "ticket-check-worker")
	defer reader.Close()

	checkedWriter := kafka.NewWriter(cfg.Brokers(), cfg.TopicTicketChecked)
	defer checkedWriter.Close()

	dlqWriter := kafka.NewWriter(cfg.Brokers(), cfg.TopicDrawPublishedDLQ)
	defer dlqWriter.Close()

	broadcaster := pubsub.NewRedisBroadcaster(redisClient, cfg.RedisPubSubChannel)

	runner := &checker.Runner{
		Log:           log,
		Store:         store,
		Draws:         draws,
		Notifier:      producer.NewTicketCheckedProducer(checkedWriter, cfg.PublishLosses),
		Concurrency:   cfg.CheckConcurrency,
		OnChecked:     func(g lottery.Game, win bool) { m.ObserveCheck(string(g), win) },
		OnTicketError: m.ObserveTicketError,
		OnBatchDone: func(s checker.Summary) {
			m.ObserveBatch(string(s.Game), len(s.Errors), s.Cancelled, s.Duration)
			bctx, bcancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer bcancel()
			if err := broadcaster.PublishBatch(bctx, s); err != nil {
				log.Warn("batch broadcast failed", zap.Error(err))
			}
		},
		OnBatchFailed: func(s checker.Summary, _ error) {
			m.ObserveBatchFailed(string(s.Game), s.Duration)
		},
	}

	proc := &consumer.Processor{
		Log:        log,
		Reader:     reader,
		Runner:     runner,
		DLQ:        dlqWriter,
		OnConsumed: m.Consumed.Inc,
		OnDLQ:      m.DLQ.Inc,
		OnError:    m.StageError,
	}

	// Varredura periódica pega sorteios cujo evento se perdeu
	if cfg.SweepSchedule != "" {
		sweeper := &checker.Sweeper{Log: log, Pending: store, Runner: runner}
		c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
		if _, err := c.AddFunc(cfg.SweepSchedule, func() {
			if _, err := sweeper.CheckPending(ctx); err != nil {
				log.Error("sweep failed", zap.Error(err))
			}
		}); err != nil {
			log.Fatal("sweep schedule", zap.Error(err))
		}
		c.Start()
		defer c.Stop()
		log.Info("sweep scheduled", zap.String("schedule", cfg.SweepSchedule))
	}

	msrv := metrics.StartMetricsServer(cfg.MetricsPort, reg, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return redisClient.Ping(ctx).Err()
	})
	defer msrv.Close()

	log.Info("ticket-check-worker started",
		zap.String("consume", cfg.TopicDrawPublished),
		zap.String("publish", cfg.TopicTicketChecked),
	)
	if err := proc.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("processor stopped with error", zap.Error(err))
	}
	log.Info("ticket-check-worker stopped")
}
