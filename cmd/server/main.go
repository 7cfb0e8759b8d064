package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/credihub/proposal-flow/internal/application/port"
	"github.com/credihub/proposal-flow/internal/application/service"
	"github.com/credihub/proposal-flow/internal/bank"
	"github.com/credihub/proposal-flow/internal/config"
	httpserver "github.com/credihub/proposal-flow/internal/interfaces/http"
	"github.com/credihub/proposal-flow/internal/metrics"
	"github.com/credihub/proposal-flow/internal/repository"
	"github.com/credihub/proposal-flow/internal/store"
	"github.com/credihub/proposal-flow/internal/validation"
	"github.com/credihub/proposal-flow/pkg/database"
	"github.com/credihub/proposal-flow/pkg/logging"
)

func main() {
	_ = gotenv.Load()

	configPath := "configs/config.yaml"
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		configPath = path
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(logging.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting proposal authorization flow engine",
		zap.Int("port", cfg.Server.Port),
		zap.String("store_backend", cfg.Store.Backend),
		zap.String("proposals_source", cfg.Proposals.Source))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Flow state backend
	var flowStore port.FlowStore
	switch cfg.Store.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Store.Redis.Address,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		})
		defer client.Close()

		redisStore := store.NewRedisStore(client, cfg.Store.Redis.TTL, logger)
		if err := redisStore.Ping(ctx); err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		flowStore = redisStore
	default:
		flowStore = store.NewMemoryStore()
	}

	// Proposal lookup
	var lookup port.ProposalLookup
	switch cfg.Proposals.Source {
	case "sqlite":
		db, err := database.New(database.Config{
			Path:            cfg.Proposals.Database.Path,
			MaxOpenConns:    cfg.Proposals.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Proposals.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Proposals.Database.ConnMaxLifetime,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to initialize database", zap.Error(err))
		}
		defer db.Close()

		migrator := database.NewMigrator(db, logger)
		if err := migrator.RunMigrations(cfg.Proposals.Database.MigrationsDir); err != nil {
			logger.Fatal("Failed to run database migrations", zap.Error(err))
		}

		lookup = repository.NewProposalRepository(db.DB, logger)
	default:
		lookup = repository.NewStaticProposalLookup()
	}

	// Bank adapters; the fallback adapter also serves unknown bank codes
	adapters := map[string]bank.Adapter{
		bank.CodeBankA: bank.NewBankA(cfg.Banks.SubmitLatency, logger),
		bank.CodeBankB: bank.NewBankB(cfg.Banks.SubmitLatency, logger),
		bank.CodeBankC: bank.NewBankC(cfg.Banks.SubmitLatency, logger),
	}
	fallback, ok := adapters[cfg.Banks.DefaultCode]
	if !ok {
		logger.Fatal("Unknown default bank code", zap.String("bank_code", cfg.Banks.DefaultCode))
	}

	registry := bank.NewRegistry(fallback, logger)
	for _, adapter := range adapters {
		registry.Register(adapter)
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	flowMetrics := metrics.New(promRegistry)

	keyedLogger := logging.NewKeyedLogger(logger)

	flowService := service.NewFlowService(
		service.FlowConfig{AdvanceProbability: cfg.Banks.AdvanceProbability},
		flowStore,
		lookup,
		validation.NewEngine(logger),
		registry,
		flowMetrics,
		keyedLogger,
	)

	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Host:         cfg.Server.Host,
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		flowService,
		registry,
		promRegistry,
		keyedLogger,
	)

	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Server exited")
}
