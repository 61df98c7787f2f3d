// cmd/worker-manager/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"internship-assistant/internal/assistant"
	"internship-assistant/internal/common/camunda"
	"internship-assistant/internal/common/config"
	"internship-assistant/internal/common/database"
	"internship-assistant/internal/common/genai"
	"internship-assistant/internal/common/logger"
	"internship-assistant/internal/common/observability"
	"internship-assistant/internal/store"

	aq "internship-assistant/internal/workers/ai-conversation/answer-question"
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
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.NewWithOutput(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("storeBackend", cfg.Assistant.StoreBackend),
		zap.String("genaiProvider", cfg.APIs.GenAI.Provider),
	)

	obs := observability.New(cfg.Observability)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Record stores ---
	stores, storeCheck, closeStores := openStores(ctx, cfg, zapLog)
	defer closeStores()

	checks := []readinessCheck{{name: cfg.Assistant.StoreBackend, check: storeCheck}}

	// --- Optional Redis read-through cache ---
	if cfg.Assistant.CacheTTL > 0 {
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

		stores = stores.WithCache(redis.GetClient(), config.GetDuration(cfg.Assistant.CacheTTL), log)
		checks = append(checks, readinessCheck{name: "redis", check: redis.Ping})
		zapLog.Info("Redis cache enabled", zap.Int("ttl_ms", cfg.Assistant.CacheTTL))
	}

	// --- Generation capability and assistant ---
	generator, err := genai.New(ctx, cfg.APIs.GenAI)
	if err != nil {
		zapLog.Fatal("generator init failed", zap.Error(err))
	}

	service := assistant.NewService(stores, generator, assistant.OptionsFromConfig(cfg.Assistant), obs, log)

	// --- Zeebe client with retry ---
	var zeebeClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = camunda.NewClientWithConfig(camunda.ClientConfigFromApp(cfg.Camunda))
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")
	checks = append(checks, readinessCheck{name: "zeebe", check: zeebeClient.HealthCheck})

	// --- Workers ---
	handler, err := aq.NewHandler(aq.HandlerOptions{
		AppConfig:     cfg,
		Service:       service,
		Logger:        log,
		Observability: obs,
	})
	if err != nil {
		zapLog.Fatal("failed to create answer-question handler", zap.Error(err))
	}

	var workers []*camunda.CamundaWorker
	if wcfg := handler.Config(); wcfg.Enabled {
		workers = append(workers, camunda.StartWorker(zeebeClient.GetClient(), camunda.WorkerOptions{
			TaskType:      aq.TaskType,
			MaxJobsActive: wcfg.MaxJobsActive,
			Timeout:       wcfg.Timeout,
		}, handler.Handle, zapLog))
	} else {
		zapLog.Info("worker disabled", zap.String("taskType", aq.TaskType))
	}

	// --- Health & Metrics Server ---
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Observability.MetricsPort),
		Handler:           newHealthMux(checks),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop()
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

// openStores connects the configured backend and returns its stores, a readiness
// probe and a close function.
func openStores(ctx context.Context, cfg *config.Config, zapLog *zap.Logger) (store.Stores, func(context.Context) error, func()) {
	switch cfg.Assistant.StoreBackend {
	case config.StoreBackendElasticsearch:
		var esClient *database.ElasticsearchClient
		err := retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully", zap.String("indexPrefix", esClient.IndexPrefix))
		return store.NewElasticStores(esClient.Client, esClient.IndexPrefix), esClient.Ping, func() {}

	default:
		var pg *database.PostgresClient
		err := retryWithBackoff(func() error {
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
		zapLog.Info("PostgreSQL connected successfully")
		return store.NewPostgresStores(pg.GetDB()), pg.Ping, func() { _ = pg.Close() }
	}
}
