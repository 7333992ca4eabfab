package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"isletmeapp/internal/config"
	"isletmeapp/internal/event"
	"isletmeapp/internal/infra"
	"isletmeapp/internal/repository"
	"isletmeapp/internal/router"
	"isletmeapp/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	poolRepo := repository.NewCashPoolRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	// Seed the four pool rows at zero; existing balances are untouched.
	if err := poolRepo.Seed(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to seed cash pools")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := event.NewBus()
	svcs := router.Build(cfg, db, rdb, bus)

	// Materialize the debt view before serving so the first read is warm.
	if err := svcs.Debts.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to build debt view")
	}

	// Worker handlers are wired here (composition root) so the pool has full
	// access to infrastructure dependencies.
	mailer := infra.NewMailer(cfg)
	reportWorker := worker.NewReportWorker(poolRepo, svcs.Debts.OpenDebts, mailer, cfg.ReportRecipient, cfg.PDFStoragePath)
	handlers := worker.Handlers{
		Activity: worker.NewActivityWorker(activityRepo).Handle,
		Report:   reportWorker.Handle,
	}
	worker.StartWorkerPool(ctx, rdb, handlers, cfg.WorkerPoolSize)
	worker.StartReportScheduler(ctx, worker.NewDispatcher(rdb), cfg.ReportHour)

	r := router.New(cfg, db, rdb, bus, svcs)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("ledger backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
