package repositories

import (
	"context"
	"fmt"
	"log"
	"time"

	"equaline/internal/config"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenKeyValueStore opens the backend selected by cfg.StoreDriver. The
// returned close function releases the backend's connections.
func OpenKeyValueStore(cfg *config.Config) (KeyValueStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StoreDriver {
	case config.DriverMemory:
		log.Println("Using in-memory key-value store")
		return NewMemoryStore(), noop, nil

	case config.DriverSQLite, config.DriverPostgres:
		var dialector gorm.Dialector
		if cfg.StoreDriver == config.DriverSQLite {
			dialector = sqlite.Open(cfg.DatabaseDSN)
		} else {
			dialector = postgres.Open(cfg.DatabaseDSN)
		}
		db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to %s database: %w", cfg.StoreDriver, err)
		}
		store, err := NewGORMStore(db)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		}
		log.Printf("Using %s key-value store", cfg.StoreDriver)
		return store, closeFn, nil

	case config.DriverRedis:
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid redis URL: %w", err)
		}
		client := redis.NewClient(opt)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		store := NewRedisStore(client)
		log.Println("Using Redis key-value store")
		return store, store.Close, nil
	}

	return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
}
