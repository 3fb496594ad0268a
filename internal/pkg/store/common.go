package store

import (
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ougirez/wagedash/internal/pkg/constants"
)

// SQLSTATE undefined_table
const pgUndefinedTable = "42P01"

// wrapErr переводит ошибки postgres в ошибки сервиса: таблицы, которую
// еще не залили, нет в базе.
func wrapErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTable {
		return fmt.Errorf("%w: %s", constants.ErrDBNotFound, pgErr.Message)
	}
	return err
}

// builder возвращает squirrel SQL Builder обьект.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// quote экранирует идентификатор: имена столбцов RESAS японские.
func quote(parts ...string) string {
	return pgx.Identifier(parts).Sanitize()
}
