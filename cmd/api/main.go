package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	"github.com/BruksfildServices01/appointment-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/appointment-scheduler/internal/db"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/handlers"
	"github.com/BruksfildServices01/appointment-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/appointment-scheduler/internal/infra/memory"
	infraRepo "github.com/BruksfildServices01/appointment-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/appointment-scheduler/internal/logging"
	"github.com/BruksfildServices01/appointment-scheduler/internal/notify"
	"github.com/BruksfildServices01/appointment-scheduler/internal/observability/metrics"
	"github.com/BruksfildServices01/appointment-scheduler/internal/routes"
	ucAppointment "github.com/BruksfildServices01/appointment-scheduler/internal/usecase/appointment"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *logging.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]handlers.Pinger{}

	// ======================================================
	// STORAGE
	// ======================================================
	var (
		db        *gorm.DB
		directory domain.Directory
		store     domain.Store
	)
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		var err error
		db, err = dbpkg.NewDB(cfg)
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()
		checks["postgres"] = handlers.PingFunc(sqlDB.PingContext)

		directory = infraRepo.NewDirectoryGormRepository(db)
		store = infraRepo.NewAppointmentGormRepository(db)
	default:
		dir := memory.NewDirectory()
		memory.SeedDemo(dir)
		directory = dir
		store = memory.NewAppointmentStore()
		logger.Warn("using in-memory store with demo data", "business_id", memory.DemoBusinessID)
	}

	// ======================================================
	// LOCKING
	// ======================================================
	var (
		redisClient *redis.Client
		locker      lock.Locker = lock.NewLocal()
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			return err
		}
		checks["redis"] = handlers.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
		locker = lock.NewRedis(redisClient, cfg.LockTTL, logger.Logger)
	}

	// ======================================================
	// NOTIFY + AUDIT
	// ======================================================
	sinks := []notify.Sink{}
	if redisClient != nil {
		sinks = append(sinks, notify.NewRedisSink(redisClient, cfg.NotifyRedisChannel))
	}
	if brokers := notify.SplitBrokers(cfg.KafkaBrokers); len(brokers) > 0 {
		writer := notify.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer writer.Close()
		sinks = append(sinks, notify.NewKafkaSink(writer))
	}
	if cfg.S3Bucket != "" {
		client := notify.NewS3Client(notify.S3Config{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			Endpoint:        cfg.S3Endpoint,
		})
		sinks = append(sinks, notify.NewS3Sink(client, cfg.S3Bucket))
	}
	if len(sinks) == 0 {
		sinks = append(sinks, notify.NewLogSink(logger.Logger))
	}

	notifier := notify.NewDispatcher(
		notify.DispatcherConfig{QueueSize: cfg.NotifyQueueSize},
		logger.Logger,
		metrics.NewNotifyMetrics(prometheus.DefaultRegisterer),
		sinks...,
	)
	defer notifier.Close()

	var auditWriter audit.Writer = audit.NewSlogWriter(logger.Logger)
	if db != nil {
		auditWriter = audit.New(db)
	}
	auditDispatcher := audit.NewDispatcher(auditWriter, logger.Logger, cfg.NotifyQueueSize)
	defer auditDispatcher.Close()

	// ======================================================
	// ENGINE + HTTP
	// ======================================================
	engine := ucAppointment.NewEngine(ucAppointment.Deps{
		Directory:    directory,
		Store:        store,
		Locker:       locker,
		Notifier:     notifier,
		Audit:        auditDispatcher,
		Metrics:      metrics.NewEngineMetrics(prometheus.DefaultRegisterer),
		Logger:       logger.Logger,
		StoreTimeout: cfg.StoreTimeout,
	})

	r := gin.Default()
	routes.RegisterRoutes(r, routes.Deps{
		Config: cfg,
		Engine: engine,
		DB:     db,
		Health: handlers.NewHealthHandler(checks),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", "addr", cfg.Addr(), "store", cfg.StoreDriver, "sinks", len(sinks))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
