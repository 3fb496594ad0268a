package store

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/ougirez/wagedash/internal/domain"
	"github.com/ougirez/wagedash/internal/pkg/logger"
	"github.com/ougirez/wagedash/internal/pkg/table"
)

func selectTableQuery(schema domain.Schema) squirrel.SelectBuilder {
	query := builder().Select("*").From(quote(schema.Name))

	orderBy := make([]string, 0, len(schema.OrderBy))
	for _, c := range schema.OrderBy {
		orderBy = append(orderBy, quote(c))
	}
	if len(orderBy) > 0 {
		query = query.OrderBy(orderBy...)
	}

	return query
}

// LoadTable выбирает все строки таблицы schema.Name. Значения читаются в
// текстовом виде (simple protocol), как если бы пришли из CSV.
func (s *store) LoadTable(ctx context.Context, schema domain.Schema) (*table.Table, error) {
	sql, args, err := selectTableQuery(schema).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	args = append([]interface{}{pgx.QueryExecModeSimpleProtocol}, args...)
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Errorf(ctx, "select %s: %s", schema.Name, err.Error())
		return nil, wrapErr(err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = f.Name
	}

	records := make([][]string, 0, 64)
	for rows.Next() {
		raw := rows.RawValues()
		record := make([]string, len(raw))
		for i, v := range raw {
			// NULL приходит как nil и становится пустой ячейкой
			record[i] = string(v)
		}
		records = append(records, record)
	}
	// в simple protocol ошибка запроса приходит только при чтении строк
	if err := rows.Err(); err != nil {
		logger.Errorf(ctx, "read %s: %s", schema.Name, err.Error())
		return nil, wrapErr(err)
	}

	if missing := schema.Missing(header); len(missing) > 0 {
		return nil, fmt.Errorf("%s lacks columns %v", schema.Name, missing)
	}

	t, err := table.New(header, records)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", schema.Name, err)
	}

	if len(schema.Rename) > 0 {
		if t, err = t.Rename(schema.Rename); err != nil {
			return nil, fmt.Errorf("rename %s: %w", schema.Name, err)
		}
	}

	return t, nil
}
