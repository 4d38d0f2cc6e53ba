package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"geomed/internal/llm"
	"geomed/internal/platform/config"
	"geomed/internal/platform/httpserver"
	"geomed/internal/platform/logger"
	"geomed/internal/prediction"
	"geomed/internal/prediction/handler"
	"geomed/internal/prediction/metrics"
	predstore "geomed/internal/prediction/store"
	"geomed/internal/pubmed"
	httptransport "geomed/internal/transport/http"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	var st predstore.Store
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("database pool setup failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		pg := predstore.NewPostgres(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Error("schema setup failed", "error", err)
			os.Exit(1)
		}
		st = pg
		log.Info("using postgres store")
	} else {
		st = predstore.NewMemory()
		log.Warn("DATABASE_URL not set, history will not survive restarts")
	}

	inference, err := llm.NewClient(ctx, llm.Config{
		BaseURL:           cfg.LLMBaseURL,
		APIKey:            cfg.LLMAPIKey,
		Model:             cfg.LLMModel,
		RequestsPerMinute: cfg.LLMRequestsPerMinute,
	}, log)
	if err != nil {
		log.Error("generation client setup failed", "error", err)
		os.Exit(1)
	}

	m := metrics.New()
	evidence := pubmed.NewClient(cfg.PubMedBaseURL, log)
	svc := prediction.New(evidence, inference, st, log, m)
	runner := prediction.NewBatchRunner(svc, cfg.BatchWorkers)

	predictions := handler.New(svc, runner, log)
	router := httptransport.NewRouter(predictions)
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting geomed", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
