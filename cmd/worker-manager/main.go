// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"venture-match/internal/catalog"
	"venture-match/internal/common/camunda"
	"venture-match/internal/common/config"
	"venture-match/internal/common/database"
	"venture-match/internal/common/logger"
	"venture-match/internal/common/observability"
	"venture-match/internal/matching"
	"venture-match/pkg/registry"

	rc "venture-match/internal/workers/data-access/refresh-catalog"
	fm "venture-match/internal/workers/matching/find-matches"
	gms "venture-match/internal/workers/matching/get-match-statistics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	var outputs []string
	if cfg.Logging.Output != "" {
		outputs = append(outputs, cfg.Logging.Output)
	}
	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, outputs...)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	reg, err := registry.LoadRegistry(cfg.App.RegistryPath)
	if err != nil {
		zapLog.Warn("activity registry unavailable, using built-in worker timeouts", zap.Error(err))
	}

	obs := observability.New(cfg.App.Name, log)
	defer obs.Shutdown()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = database.RetryWithBackoff(ctx, func(ctx context.Context) error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, log, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Matching engine ---
	var engineOpts []matching.Option
	if cfg.Matching.Cache.Backend == "redis" {
		var rdb *database.RedisClient
		err = database.RetryWithBackoff(ctx, func(ctx context.Context) error {
			var err error
			rdb, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rdb.Ping(ctx)
		}, 10, 2*time.Second, log, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rdb.Close()
		engineOpts = append(engineOpts, matching.WithStore(matching.NewRedisStore(rdb.Client)))
		zapLog.Info("Redis connected successfully, using shared match cache")
	}

	engine := matching.NewEngine(matching.FromSettings(cfg.Matching), log, engineOpts...)
	engine.Start(ctx)
	defer engine.Close()

	source := catalog.NewSource(pg.DB, log)
	refreshTimeout := workerTimeout(cfg, reg, rc.TaskType, rc.LoadConfig().Timeout)
	refresh := rc.NewHandler(&rc.Config{Timeout: refreshTimeout}, source, engine, log)

	if cfg.Matching.LoadOnStartup {
		loadCtx, cancel := context.WithTimeout(ctx, refreshTimeout)
		out, err := refresh.Execute(loadCtx, &rc.Input{})
		cancel()
		if err != nil {
			zapLog.Fatal("initial catalog load failed", zap.Error(err))
		}
		zapLog.Info("Initial catalog loaded",
			zap.Int("profiles", out.Profiles),
			zap.Int("ideas", out.Ideas),
			zap.Int("offers", out.Offers),
		)
	}

	// --- Init Zeebe client ---
	zeebe, err := camunda.NewClientWithConfig(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: cfg.Camunda.UsePlaintext,
	})
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Register workers ---
	var workers []*camunda.Worker
	register := func(taskType string, handler camunda.JobHandler) {
		if !config.IsWorkerEnabled(cfg, taskType) {
			log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
			return
		}
		if _, ok := reg.Find(taskType); reg != nil && !ok {
			log.Warn("task type missing from activity registry", map[string]interface{}{"taskType": taskType})
		}
		wcfg := config.GetWorkerConfig(cfg, taskType)
		workers = append(workers, camunda.StartWorker(zeebe.Zeebe(), taskType, camunda.WorkerOptions{
			MaxJobsActive:  wcfg.MaxJobsActive,
			Timeout:        config.GetDuration(wcfg.Timeout),
			RequestTimeout: config.GetDuration(cfg.Camunda.RequestTimeout),
		}, handler, obs, log))
	}

	findCfg := fm.LoadConfig()
	findCfg.Timeout = workerTimeout(cfg, reg, fm.TaskType, findCfg.Timeout)
	register(fm.TaskType, fm.NewHandler(findCfg, engine, log))

	register(gms.TaskType, gms.NewHandler(&gms.Config{
		Timeout: workerTimeout(cfg, reg, gms.TaskType, gms.LoadConfig().Timeout),
	}, engine, log))

	register(rc.TaskType, refresh)

	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy", nil)
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		checkCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pg.Ping(checkCtx); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "not ready", err)
			return
		}
		if err := zeebe.HealthCheck(checkCtx); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "not ready", err)
			return
		}
		writeStatus(w, http.StatusOK, "ready", nil)
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/debug/pprof/", http.DefaultServeMux)

	server := &http.Server{
		Addr:              cfg.Server.MetricsAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", server.Addr))
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
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}
	stop()

	zapLog.Info("Worker manager stopped gracefully")
}

// workerTimeout resolves a handler timeout from the worker config, then the
// activity registry, then the handler default.
func workerTimeout(cfg *config.Config, reg *registry.ActivityRegistry, taskType string, fallback time.Duration) time.Duration {
	if w, ok := cfg.Workers[taskType]; ok && w.Timeout > 0 {
		return config.GetDuration(w.Timeout)
	}
	if a, ok := reg.Find(taskType); ok && a.TimeoutDuration() > 0 {
		return a.TimeoutDuration()
	}
	return fallback
}

func writeStatus(w http.ResponseWriter, code int, status string, err error) {
	body := map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	}
	if err != nil {
		body["error"] = err.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
