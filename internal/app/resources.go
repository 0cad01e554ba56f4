package app

import (
	"context"
	"fmt"
	"time"

	"go-attendance/internal/kvstore"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/messaging/kafka/producer"
	"go-attendance/internal/shared/config"
	"go-attendance/internal/shared/connection"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	connectRetries = 5
	purgeInterval  = 10 * time.Minute
	publisherQueue = 1024
	driverMemory   = "memory"
	driverRedis    = "redis"
	driverPostgres = "postgres"
)

type resources struct {
	store     kvstore.Store
	rdb       *redis.Client
	publisher kafka.Publisher
}

func openResources(ctx context.Context, cfg config.Config, a *App) (*resources, error) {
	inf := &resources{}

	// Redis backs idempotency even when the store lives elsewhere.
	if cfg.RedisAddr != "" {
		rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries)
		if err != nil {
			return nil, err
		}
		inf.rdb = rdb
		a.closers = append(a.closers, func() { _ = rdb.Close() })
	}

	store, err := openStore(ctx, cfg, inf.rdb, a)
	if err != nil {
		return nil, err
	}
	inf.store = store

	inf.publisher = startPublisher(ctx, cfg, a)
	return inf, nil
}

func openStore(ctx context.Context, cfg config.Config, rdb *redis.Client, a *App) (kvstore.Store, error) {
	switch cfg.StoreDriver {
	case "", driverMemory:
		return kvstore.NewMemoryStore(), nil

	case driverRedis:
		if rdb == nil {
			return nil, fmt.Errorf("STORE_DRIVER=redis requires REDIS_ADDR")
		}
		return kvstore.NewRedisStore(rdb), nil

	case driverPostgres:
		db, err := connection.ConnectGORMWithRetry(cfg.DB, connectRetries)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = sqlDB.Close() })

		store := kvstore.NewGormStore(db)
		if err := store.Migrate(); err != nil {
			return nil, fmt.Errorf("migrate portal_kv: %w", err)
		}
		go purgeExpired(ctx, store, purgeInterval, zap.L().Named("app.purger"))
		return store, nil

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

// startPublisher falls back to a no-op publisher when no broker is configured.
func startPublisher(ctx context.Context, cfg config.Config, a *App) kafka.Publisher {
	logger := zap.L().Named("app.publisher")
	if cfg.KafkaBroker == "" {
		logger.Info("KAFKA_BROKER not set, attendance events are discarded")
		return kafka.NoopPublisher{}
	}

	writer, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, connectRetries)
	if err != nil {
		logger.Warn("kafka unavailable, attendance events are discarded", zap.Error(err))
		return kafka.NoopPublisher{}
	}

	p := producer.New(writer, publisherQueue, zap.L())
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Run(ctx)
	}()
	a.closers = append(a.closers, func() {
		<-done
		_ = writer.Close()
	})
	return p
}

type expiringStore interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

func purgeExpired(ctx context.Context, store expiringStore, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("purger stopped")
			return
		case <-ticker.C:
			n, err := store.PurgeExpired(ctx)
			if err != nil {
				logger.Error("purge expired entries failed", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Debug("purged expired entries", zap.Int64("count", n))
			}
		}
	}
}
