package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"wishly/internal/domain"
	"wishly/internal/domain/entity"
	"wishly/internal/domain/value"
	"wishly/pkg/errcodes"
)

const claimsGiftIDIndex = "claims_gift_id_idx"

type ClaimRepository struct {
	store
}

func NewClaimRepository(db *sqlx.DB) *ClaimRepository {
	return &ClaimRepository{store: store{db: db}}
}

// Claim атомарно вставляет бронь и выставляет gifts.is_claimed.
// Проигравший гонку получает AlreadyClaimedRace от уникального индекса по gift_id.
func (r *ClaimRepository) Claim(ctx context.Context, claim entity.Claim) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO claims (id, gift_id, user_id, message, created_at) VALUES ($1, $2, $3, $4, $5)`,
			uuid.UUID(claim.ID), uuid.UUID(claim.GiftID), uuid.UUID(claim.UserID),
			nullString(claim.Message), claim.CreatedAt,
		)
		if err != nil {
			if isUniqueViolation(err, claimsGiftIDIndex) {
				return domain.WrapError(err, errcodes.AlreadyClaimedRace, "This gift was just claimed by someone else")
			}

			return domain.WrapError(err, errcodes.InternalServerError, "failed to insert claim")
		}

		return execAffected(ctx, tx, domain.NewError(errcodes.GiftNotFound, "Gift not found"),
			`UPDATE gifts SET is_claimed = TRUE, updated_at = $1 WHERE id = $2`,
			claim.CreatedAt, uuid.UUID(claim.GiftID),
		)
	})
}

// Release удаляет бронь пользователя и сбрасывает gifts.is_claimed в одной транзакции.
func (r *ClaimRepository) Release(ctx context.Context, giftID value.GiftID, userID value.UserID, now time.Time) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		err := execAffected(ctx, tx, domain.NewError(errcodes.ClaimNotFound, "Claim not found"),
			`DELETE FROM claims WHERE gift_id = $1 AND user_id = $2`,
			uuid.UUID(giftID), uuid.UUID(userID),
		)
		if err != nil {
			return err
		}

		return execAffected(ctx, tx, domain.NewError(errcodes.GiftNotFound, "Gift not found"),
			`UPDATE gifts SET is_claimed = FALSE, updated_at = $1 WHERE id = $2`,
			now, uuid.UUID(giftID),
		)
	})
}
