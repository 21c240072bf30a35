package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aevon-lab/aevon-rules/internal/buffer"
	corecfg "github.com/aevon-lab/aevon-rules/internal/core/config"
	"github.com/aevon-lab/aevon-rules/internal/core/storage/postgres"
	"github.com/aevon-lab/aevon-rules/internal/engine"
	"github.com/aevon-lab/aevon-rules/internal/hotstore"
	"github.com/aevon-lab/aevon-rules/internal/ingestion"
	"github.com/aevon-lab/aevon-rules/internal/migrations"
	"github.com/aevon-lab/aevon-rules/internal/projection"
	"github.com/aevon-lab/aevon-rules/internal/query"
	"github.com/aevon-lab/aevon-rules/internal/server"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "aevon.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(*configPath); err != nil {
		slog.Error("Exiting", "error", err)
		os.Exit(1)
	}
	slog.Info("Shutdown complete")
}

func run(configPath string) error {
	// 1. Load Configuration (and rules)
	cfg, err := corecfg.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	slog.Info("Loaded config",
		"rules", len(cfg.RuleLoading.Rules),
		"rules_dir", cfg.RuleLoading.ConfigDir,
		"workers", cfg.Engine.Workers,
		"hot_retention", cfg.Engine.HotRetentionDuration(),
		"kafka_enabled", cfg.Kafka.Enabled)

	// 2. Initialize Storage (PostgreSQL)
	db, err := postgres.Open(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	// 2.1. Run Database Migrations
	if err := migrations.RunMigrations(db, cfg.Database.AutoMigrate); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	events, err := postgres.NewAdapter(db)
	if err != nil {
		return fmt.Errorf("failed to prepare event store: %w", err)
	}
	defer events.Close()

	profiles, err := postgres.NewProfileAdapter(db)
	if err != nil {
		return fmt.Errorf("failed to prepare profile store: %w", err)
	}
	defer profiles.Close()

	// 3. Initialize Window Cache (Redis)
	redisClient := buffer.NewRedisClient(cfg.Redis.Addrs, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.MasterName)
	defer redisClient.Close()
	cache := buffer.NewManager(buffer.NewRedisBackend(redisClient))

	// 4. Initialize Query Router
	coldStore := query.NewColdStore(events)
	router := query.NewRouter(
		hotstore.NewStore(),
		query.NewCachedCountStore(coldStore, cache),
		query.NewProfileService(profiles),
	)

	// 5. Initialize Evaluation Engine
	var (
		sink      engine.Sink = engine.LogSink{}
		kafkaSink *engine.KafkaSink
	)
	if cfg.Kafka.Enabled && cfg.Kafka.MatchTopic != "" {
		kafkaSink = engine.NewKafkaSink(engine.NewKafkaWriter(cfg.Kafka.BrokerList(), cfg.Kafka.MatchTopic), cfg.Engine.QueueSize)
		defer kafkaSink.Close()
		sink = engine.MultiSink{engine.LogSink{}, kafkaSink}
	}

	evaluator := engine.NewEvaluator(cfg.RuleLoading.Rules, router)
	dispatcher := engine.NewDispatcher(evaluator, sink, cfg.Engine.Workers, cfg.Engine.QueueSize,
		engine.WithHistory(events, cfg.Engine.HotRetentionDuration()))
	sweeper := engine.NewSweeper(dispatcher, cfg.Engine.SweepIntervalDuration(), cfg.Engine.HotRetentionDuration())

	// 6. Initialize Ingestion
	ingestionSvc := ingestion.NewService(events, profiles, dispatcher, cfg.Server.MaxBodySizeMB)

	// 6.1. Initialize Projection (read-only rule and condition state API)
	projectionSvc := projection.NewService(cfg.RuleLoading.Repository, coldStore)

	// 7. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), cfg.Server.Mode, map[string]server.HealthChecker{
		"database": server.PingFunc(db.PingContext),
		"cache":    cache,
	})
	ingestionSvc.RegisterRoutes(srv.Engine)
	projectionSvc.RegisterRoutes(srv.Engine)

	// 8. Start Services
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return dispatcher.Run(gctx) })
	g.Go(func() error { return sweeper.Start(gctx) })
	g.Go(func() error { return srv.Run(gctx) })
	if kafkaSink != nil {
		g.Go(func() error { return kafkaSink.Run(gctx) })
	}

	if cfg.Kafka.Enabled {
		reader := ingestion.NewKafkaReader(cfg.Kafka.BrokerList(), cfg.Kafka.Topic, cfg.Kafka.GroupID)
		consumer := ingestion.NewConsumer(reader, ingestionSvc)
		g.Go(func() error { return consumer.Run(gctx) })
	} else {
		slog.Info("Kafka consumer disabled by config")
	}

	return g.Wait()
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
