package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"wishly/internal/domain"
	"wishly/internal/domain/entity"
	"wishly/internal/domain/value"
	"wishly/pkg/errcodes"
)

const suggestionColumns = `id, event_id, user_id, name, link, price, notes, status, created_at`

type SuggestionRepository struct {
	store
}

func NewSuggestionRepository(db *sqlx.DB) *SuggestionRepository {
	return &SuggestionRepository{store: store{db: db}}
}

func (r *SuggestionRepository) Create(ctx context.Context, s entity.Suggestion) error {
	query := `
		INSERT INTO suggestions (` + suggestionColumns + `)
		VALUES (:id, :event_id, :user_id, :name, :link, :price, :notes, :status, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, fromSuggestion(s)); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to insert suggestion")
	}

	return nil
}

func (r *SuggestionRepository) GetByID(ctx context.Context, id value.SuggestionID) (entity.Suggestion, error) {
	var schema suggestionSchema

	query := `SELECT ` + suggestionColumns + ` FROM suggestions WHERE id = $1`

	if err := r.db.GetContext(ctx, &schema, query, uuid.UUID(id)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Suggestion{}, domain.NewError(errcodes.SuggestionNotFound, "Suggestion not found")
		}

		return entity.Suggestion{}, domain.WrapError(err, errcodes.InternalServerError, "failed to get suggestion")
	}

	return schema.toDomain(), nil
}

// ListByEvent возвращает предложения события, новые первыми.
func (r *SuggestionRepository) ListByEvent(ctx context.Context, eventID value.EventID) ([]entity.Suggestion, error) {
	var schemas []suggestionSchema

	query := `SELECT ` + suggestionColumns + ` FROM suggestions WHERE event_id = $1 ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &schemas, query, uuid.UUID(eventID)); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list suggestions")
	}

	suggestions := make([]entity.Suggestion, 0, len(schemas))

	for _, s := range schemas {
		suggestions = append(suggestions, s.toDomain())
	}

	return suggestions, nil
}

// Approve в одной транзакции переводит предложение в approved и добавляет его подарком
// с учётом лимита подарков.
func (r *SuggestionRepository) Approve(ctx context.Context, id value.SuggestionID, gift entity.Gift) (entity.Gift, error) {
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		err := setSuggestionStatus(ctx, tx, id, value.SuggestionStatusApproved)
		if err != nil {
			return err
		}

		gift, err = insertGiftWithinCap(ctx, tx, gift)

		return err
	})

	return gift, err
}

// Ignore переводит ожидающее предложение в ignored.
func (r *SuggestionRepository) Ignore(ctx context.Context, id value.SuggestionID) error {
	return setSuggestionStatus(ctx, r.db, id, value.SuggestionStatusIgnored)
}

func setSuggestionStatus(
	ctx context.Context,
	ext sqlx.ExecerContext,
	id value.SuggestionID,
	status value.SuggestionStatus,
) error {
	return execAffected(ctx, ext, domain.NewError(errcodes.SuggestionNotPending, "Suggestion was already handled"),
		`UPDATE suggestions SET status = $1 WHERE id = $2 AND status = $3`,
		status.String(), uuid.UUID(id), value.SuggestionStatusPending.String(),
	)
}
