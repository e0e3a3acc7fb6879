package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/xavierca1/lead-ingestion/internal/clock"
	"github.com/xavierca1/lead-ingestion/internal/config"
	"github.com/xavierca1/lead-ingestion/internal/infra/database"
	"github.com/xavierca1/lead-ingestion/internal/infra/http/handlers"
	"github.com/xavierca1/lead-ingestion/internal/infra/http/middleware"
	"github.com/xavierca1/lead-ingestion/internal/infra/logger"
	"github.com/xavierca1/lead-ingestion/internal/infra/mail"
	"github.com/xavierca1/lead-ingestion/internal/infra/queue"
	"github.com/xavierca1/lead-ingestion/internal/infra/secrets"
	"github.com/xavierca1/lead-ingestion/internal/usecase"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(logger.LogConfig{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		ServiceName: "lead-ingestion-worker",
	})
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Credenciais: resolvidas uma vez e cacheadas pro resto do processo.
	dsnCache := secrets.NewConnectionStringCache(secrets.EnvProvider{})
	dsn, err := dsnCache.Get(ctx)
	if err != nil {
		log.Fatal("failed to resolve database credentials", zap.Error(err))
	}

	db, err := database.NewDBConnection(dsn)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQ.User, cfg.RabbitMQ.Pass, cfg.RabbitMQ.Host, cfg.RabbitMQ.Port)
	if err != nil {
		log.Fatal("failed to connect to RabbitMQ", zap.Error(err))
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 2. Repositório e caso de uso
	clk := clock.SystemClock{}
	leadRepo := database.NewLeadRepository(db, clk)

	var notifier usecase.LeadNotifier
	if cfg.SMTP.Enabled() {
		notifier = mail.NewEmailSender(
			cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Pass,
			cfg.SMTP.From, cfg.SMTP.NotifyTo,
		)
	}

	ingestUC := usecase.NewIngestLeadUseCase(leadRepo, clk, notifier, log)

	// 3. Worker consumindo a fila
	worker := queue.NewWorker(rabbitMQ.Ch, ingestUC, log)
	go func() {
		if err := worker.Start(ctx, queue.QueueName); err != nil && ctx.Err() == nil {
			log.Fatal("worker stopped", zap.Error(err))
		}
	}()

	// 4. Servidor de operação: health + métricas
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: ":" + cfg.HTTPPort, Handler: r}
	go func() {
		log.Info("ops server listening", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ops server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	srv.Shutdown(context.Background())
}
