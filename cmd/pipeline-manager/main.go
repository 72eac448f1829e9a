// cmd/pipeline-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"credit-pipeline/internal/api"
	"credit-pipeline/internal/common/config"
	"credit-pipeline/internal/common/database"
	"credit-pipeline/internal/common/extractor"
	"credit-pipeline/internal/common/logger"
	"credit-pipeline/internal/common/observability"
	"credit-pipeline/internal/pipeline"
	"credit-pipeline/internal/store"

	acr "credit-pipeline/internal/workers/bureau/assess-credit-risk"
	pbr "credit-pipeline/internal/workers/bureau/parse-bureau-report"
	ml "credit-pipeline/internal/workers/matching/match-lenders"
	sn "credit-pipeline/internal/workers/notification/send-notification"
	ccs "credit-pipeline/internal/workers/scoring/calculate-credit-score"
	ap "credit-pipeline/internal/workers/statement/aggregate-profile"
	ps "credit-pipeline/internal/workers/statement/parse-statement"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting pipeline manager...")

	obs := observability.New("pipeline-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Stores ---
	lenderStore := store.NewLenderStore(pg.DB, log)
	lenderCache := store.NewLenderCache(redis.Client, time.Duration(cfg.Pipeline.LenderCacheTTL)*time.Second, log)
	catalog := store.NewCachedCatalog(lenderCache, lenderStore, log)
	analysisStore := store.NewAnalysisStore(esClient, log)

	// --- Stage handlers ---
	textExtractor := extractor.New(cfg.Extraction, log)

	notifier, err := sn.NewHandler(sn.LoadConfig(cfg.Notifications), log)
	if err != nil {
		zapLog.Fatal("failed to create send-notification handler", zap.Error(err))
	}

	runner := pipeline.NewRunner(pipeline.RunnerParams{
		Statements:    ps.NewHandler(ps.LoadConfig(), textExtractor, log),
		Aggregator:    ap.NewHandler(ap.LoadConfig(), log),
		BureauParser:  pbr.NewHandler(pbr.LoadConfig(), textExtractor, log),
		RiskAssessor:  acr.NewHandler(acr.LoadConfig(), log),
		Scorer:        ccs.NewHandler(ccs.LoadConfig(), log),
		Matcher:       ml.NewHandler(ml.LoadConfig(), log),
		Lenders:       catalog,
		Saver:         analysisStore,
		Notifier:      notifier,
		Observability: obs,
		StageTimeout:  time.Duration(cfg.Pipeline.StageTimeout) * time.Millisecond,
		Logger:        log,
	})

	dispatcherCtx, cancelDispatcher := context.WithCancel(ctx)
	dispatcher := pipeline.NewDispatcher(cfg.Pipeline, runner, notifier, log)
	dispatcher.Start(dispatcherCtx)

	// --- API Server ---
	server := api.NewServer(cfg.Server, dispatcher, log)
	go func() {
		if err := server.Start(); err != nil {
			zapLog.Fatal("api server failed", zap.Error(err))
		}
	}()

	// --- Metrics Server ---
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		addr := fmt.Sprintf(":%d", cfg.Server.MetricsPort)
		zapLog.Info("Metrics server listening", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			zapLog.Error("Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining queue...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down api server", zap.Error(err))
	}

	dispatcher.Stop()
	cancelDispatcher()

	zapLog.Info("Pipeline manager stopped gracefully")
}
