package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/ougirez/wagedash/internal/domain"
	"github.com/ougirez/wagedash/internal/pkg/table"
)

// Pool: часть pgxpool.Pool, которой пользуется store.
type Pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Store читает исходные таблицы из postgres. Только чтение: таблицы
// заливаются снаружи, сервис их не меняет.
type Store interface {
	LoadTable(ctx context.Context, schema domain.Schema) (*table.Table, error)
}

type store struct {
	pool Pool
}

func NewStore(pool Pool) Store {
	return &store{pool}
}
