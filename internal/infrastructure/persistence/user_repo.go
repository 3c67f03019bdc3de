package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"wishly/internal/domain"
	"wishly/internal/domain/entity"
	"wishly/internal/domain/value"
	"wishly/pkg/errcodes"
)

// UserRepository читает таблицы users и sessions, которыми владеет провайдер авторизации.
type UserRepository struct {
	store
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{store: store{db: db}}
}

func (r *UserRepository) GetByID(ctx context.Context, id value.UserID) (entity.User, error) {
	var schema userSchema

	query := `SELECT id, name, email, image FROM users WHERE id = $1`

	if err := r.db.GetContext(ctx, &schema, query, uuid.UUID(id)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.User{}, domain.NewError(errcodes.UserNotFound, "User not found")
		}

		return entity.User{}, domain.WrapError(err, errcodes.InternalServerError, "failed to get user")
	}

	return schema.toDomain(), nil
}

// SessionByToken возвращает действующую сессию вместе со сроком её жизни.
func (r *UserRepository) SessionByToken(ctx context.Context, token string, now time.Time) (entity.Session, error) {
	var schema sessionSchema

	query := `SELECT user_id, expires FROM sessions WHERE session_token = $1 AND expires > $2`

	if err := r.db.GetContext(ctx, &schema, query, token, now); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Session{}, domain.NewError(errcodes.Unauthenticated, "Session expired")
		}

		return entity.Session{}, domain.WrapError(err, errcodes.InternalServerError, "failed to get session")
	}

	return schema.toDomain(), nil
}
