package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
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
	httpapi "github.com/radieske/lottery-ticket-checker/internal/ticket-checker/http"
	"github.com/radieske/lottery-ticket-checker/internal/ticket-checker/producer"
	"github.com/radieske/lottery-ticket-checker/internal/ticket-checker/pubsub"
	"github.com/radieske/lottery-ticket-checker/internal/ticket-checker/repo"
	"github.com/radieske/lottery-ticket-checker/internal/ticket-checker/ws"
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

	// Sinalização para shutdown gracioso (SIGINT/SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Inicializa dependências: Postgres e Redis
	pg, err := db.ConnectPostgres(ctx, cfg.PostgresDSN, cfg.CheckConcurrency+2)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()
	if cfg.EnsureSchema {
		if err := repo.EnsureSchema(ctx, pg); err != nil {
			log.Fatal("ensure schema", zap.Error(err))
		}
	}

	redisClient, err := sharedcache.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer redisClient.Close()

	// Métricas em registry próprio
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewChecker(reg)

	store := repo.NewPostgresRepo(pg)
	draws := cache.NewDrawCache(redisClient, cfg.DrawCacheTTL, store, log)
	draws.OnHit, draws.OnMiss = m.CacheHit, m.CacheMiss

	// Kafka producer: ticket_checked para o serviço de notificações
	checkedWriter := kafka.NewWriter(cfg.Brokers(), cfg.TopicTicketChecked)
	defer checkedWriter.Close()

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

			// Envia o resumo para o WebSocket via Redis Pub/Sub
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
	sweeper := &checker.Sweeper{Log: log, Pending: store, Runner: runner}

	// Feed WebSocket dos lotes concluídos
	hub := ws.NewHub(func(*http.Request) bool { return true })
	ws.StartRedisSubscriber(ctx, redisClient, cfg.RedisPubSubChannel, hub, log)

	api := &httpapi.API{Log: log, Runner: runner, Sweeper: sweeper, Checks: store, WS: hub.HandleWS}

	// Servidor HTTP para métricas e health check
	msrv := metrics.StartMetricsServer(cfg.MetricsPort, reg, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return redisClient.Ping(ctx).Err()
	})
	log.Info("metrics/health listening", zap.String("port", cfg.MetricsPort))

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("checker-service listening", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	sctx, scancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer scancel()
	_ = srv.Shutdown(sctx)
	_ = msrv.Shutdown(sctx)
	log.Info("checker-service stopped")
}
