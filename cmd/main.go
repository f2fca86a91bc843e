package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"castads/internal/adapter/cache"
	"castads/internal/adapter/events"
	httpadapter "castads/internal/adapter/http"
	"castads/internal/adapter/ledger"
	"castads/internal/adapter/memory"
	"castads/internal/adapter/openai"
	"castads/internal/adapter/postgres"
	"castads/internal/adapter/scheduler"
	"castads/internal/adapter/usecase"
	"castads/internal/config"
	"castads/internal/core/generation"
	"castads/internal/core/invoke"
	"castads/internal/core/matching"
	"castads/internal/core/port"
	"castads/internal/core/settlement"
	"castads/internal/core/verification"
	"castads/internal/db"
	"castads/internal/telemetry"
)

// main loads configuration, wires storage, the model clients, the ledger and
// the engines, then serves HTTP and runs the sweep scheduler until SIGINT or
// SIGTERM.
func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		return 1
	}

	logger := slog.New(cfg.Log.Handler(os.Stdout)).With(slog.String("env", cfg.Env))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		logger.Error("telemetry setup error", slog.Any("error", err))
		return 1
	}
	defer func() {
		sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer scancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("telemetry shutdown error", slog.Any("error", err))
		}
	}()

	var repo port.Repository
	switch cfg.Store {
	case config.StoreMemory:
		repo = memory.NewRepository()
		logger.Warn("using in-memory store, data is lost on exit")
	default:
		if cfg.Psql.RunMigrations {
			if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
				logger.Error("migration error", slog.Any("error", err))
				return 1
			}
			logger.Info("migrations applied successfully")
		}
		pool, err := db.NewPostgresPool(ctx, cfg.Psql)
		if err != nil {
			logger.Error("database connection error", slog.Any("error", err))
			return 1
		}
		defer pool.Close()
		repo = postgres.NewRepository(pool)
	}

	if cfg.Psql.Seed {
		if err = db.Seed(ctx, repo, time.Now().UTC()); err != nil {
			logger.Error("seed error", slog.Any("error", err))
			return 1
		}
		logger.Info("demo data seeded")
	}

	writerGen, err := openai.NewGenerator(openai.Config{
		APIKey: cfg.AI.APIKey, BaseURL: cfg.AI.BaseURL, Model: cfg.AI.Model, Temperature: cfg.AI.Temperature,
	})
	if err != nil {
		logger.Error("ai client error", slog.Any("error", err))
		return 1
	}
	judgeGen, err := openai.NewGenerator(openai.Config{
		APIKey: cfg.AI.APIKey, BaseURL: cfg.AI.BaseURL, Model: cfg.AI.JudgeModel(),
	})
	if err != nil {
		logger.Error("ai client error", slog.Any("error", err))
		return 1
	}
	retry := cfg.AI.RetryPolicy()
	writerInv := invoke.New(writerGen, retry, logger)
	judgeInv := invoke.New(judgeGen, retry, logger)

	var scores port.ScoreCache
	if cfg.Redis.Address != "" {
		client, err := cache.Connect(ctx, cfg.Redis.Address)
		if err != nil {
			logger.Error("redis connection error", slog.Any("error", err))
			return 1
		}
		defer client.Close()
		scores = cache.NewScoreCache(client, cfg.Redis.ScoreTTL)
	}

	var publisher port.EventPublisher = events.Nop{}
	if len(cfg.Kafka.Brokers) > 0 {
		kp, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			logger.Error("kafka publisher error", slog.Any("error", err))
			return 1
		}
		defer kp.Close()
		publisher = kp
	}

	var chain port.Ledger
	if cfg.Ledger.URL != "" {
		gw, err := ledger.NewGateway(cfg.Ledger.URL, cfg.Ledger.Timeout)
		if err != nil {
			logger.Error("ledger gateway error", slog.Any("error", err))
			return 1
		}
		chain = gw
	} else {
		chain = ledger.NewSimulated(repo, cfg.Policy.Payout.CreatorShare)
		logger.Info("using simulated ledger")
	}

	verifier := verification.New(judgeInv, cfg.Policy.Verification, logger)
	writer := generation.New(writerInv, verifier, logger)
	matcher := matching.New(writerInv, scores, cfg.Policy.Matching, logger)
	settler := settlement.New(repo, chain, publisher, cfg.Policy.Payout, cfg.Policy.Fraud, logger)

	uc := usecase.NewAdUseCase(usecase.Deps{
		Repo:     repo,
		Ledger:   chain,
		Events:   publisher,
		Matcher:  matcher,
		Writer:   writer,
		Verifier: verifier,
		Logger:   logger,
	})
	sweeps := usecase.NewSweeps(repo, chain, publisher, verifier, settler, cfg.Policy.RejectedRetention, logger)
	sched := scheduler.New(cfg.Scheduler.Interval, logger, sweeps.Jobs()...)

	handler := httpadapter.NewHandler(uc, sched, chain, logger)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
	}

	if cfg.Scheduler.Enabled {
		if err = sched.Start(ctx); err != nil {
			logger.Error("scheduler start error", slog.Any("error", err))
			return 1
		}
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			logger.Error("server error", slog.Any("error", err))
			exitCode = 1
		}
	}

	sctx, scancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer scancel()
	if err = srv.Shutdown(sctx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		exitCode = 1
	} else {
		logger.Info("server gracefully stopped")
	}
	if err = sched.Stop(sctx); err != nil {
		logger.Error("scheduler stop error", slog.Any("error", err))
		exitCode = 1
	}
	return exitCode
}
