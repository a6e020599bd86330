package app

import (
	"context"
	"database/sql"

	"marketplace-service/internal/config"
	"marketplace-service/internal/db"
	"marketplace-service/internal/events"
	"marketplace-service/internal/logger"
	"marketplace-service/internal/redis"

	_ "github.com/lib/pq"
)

// Infra holds the optional backing services. Nil fields mean the
// corresponding concern runs on its in-memory demo implementation.
type Infra struct {
	DB     *db.DB
	Redis  *redis.Client
	Events *events.Publisher
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	infra := &Infra{}

	if cfg.DatabaseDSN != "" {
		sqlDB, err := sql.Open("postgres", cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return nil, err
		}
		if err := db.RunMigration(ctx, sqlDB); err != nil {
			return nil, err
		}
		infra.DB = &db.DB{DB: sqlDB}
		logger.Info("database ready", nil)
	} else {
		logger.Warn("no DATABASE_DSN, using seeded in-memory directory", nil)
	}

	if cfg.RedisAddr != "" {
		redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		infra.Redis = redisClient
		logger.Info("redis ready", nil)
	} else {
		logger.Warn("no REDIS_ADDR, sessions will not survive restarts", nil)
	}

	if cfg.NatsURL != "" {
		publisher, err := events.Connect(cfg.NatsURL)
		if err != nil {
			return nil, err
		}
		infra.Events = publisher
		logger.Info("nats ready", nil)
	}

	return infra, nil
}

func (i *Infra) Close() error {
	i.Events.Close()
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	if i.DB != nil {
		return i.DB.Close()
	}
	return nil
}
