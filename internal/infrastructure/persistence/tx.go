package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"wishly/internal/domain"
	"wishly/pkg/contextx"
	"wishly/pkg/errcodes"
)

const codeUniqueViolation = "23505"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type store struct {
	db *sqlx.DB
}

// withTx выполняет функцию в транзакции.
func (s store) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return domain.WrapError(
				fmt.Errorf("%w; rollback: %v", err, rbErr), //nolint:errorlint
				errcodes.InternalServerError,
				"transaction failed",
			)
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit")
	}

	return nil
}

// isUniqueViolation сообщает, что запрос нарушил уникальный индекс constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgErr.Code == codeUniqueViolation && pgErr.ConstraintName == constraint
}

// execAffected выполняет UPDATE/DELETE и возвращает notFound, если строк не задето.
func execAffected(ctx context.Context, ext sqlx.ExecerContext, notFound error, query string, args ...any) error {
	res, err := ext.ExecContext(ctx, query, args...)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to execute update")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to check affected rows")
	}

	if rows == 0 {
		return notFound
	}

	return nil
}
