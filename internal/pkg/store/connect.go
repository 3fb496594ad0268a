package store

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ougirez/wagedash/internal/pkg/logger"
)

const connectInterval = time.Second

// Connect открывает пул и ждет, пока база ответит на ping.
func Connect(ctx context.Context, dsn string, retries uint64) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.ParseConfig: %w", err)
	}

	var pool *pgxpool.Pool
	attempt := 0
	err = backoff.Retry(
		func() error {
			attempt++

			p, err := pgxpool.NewWithConfig(ctx, cfg)
			if err != nil {
				return backoff.Permanent(fmt.Errorf("pgxpool.NewWithConfig: %w", err))
			}

			if err := p.Ping(ctx); err != nil {
				p.Close()
				logger.Warnf(ctx, "postgres ping failed (attempt %d): %s", attempt, err.Error())
				return fmt.Errorf("ping: %w", err)
			}

			pool = p
			return nil
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(connectInterval), retries),
			ctx,
		),
	)
	if err != nil {
		return nil, err
	}

	return pool, nil
}
