package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"wishly/internal/domain"
	"wishly/internal/domain/entity"
	"wishly/internal/domain/value"
	"wishly/pkg/errcodes"
)

const giftColumns = `g.id, g.event_id, g.name, g.link, g.price, g.image, g.notes,
	g.priority, g.is_claimed, g.created_at, g.updated_at`

type GiftRepository struct {
	store
}

// NewGiftRepository создаёт новый экземпляр репозитория.
func NewGiftRepository(db *sqlx.DB) *GiftRepository {
	return &GiftRepository{store: store{db: db}}
}

// GetContext возвращает подарок вместе с событием и хостом.
func (r *GiftRepository) GetContext(ctx context.Context, id value.GiftID) (entity.GiftContext, error) {
	query := `
		SELECT ` + giftColumns + `,
			e.id AS "event.id", e.user_id AS "event.user_id", e.title AS "event.title",
			e.type AS "event.type", e.custom_type_name AS "event.custom_type_name",
			e.slug AS "event.slug", e.description AS "event.description",
			e.event_date AS "event.event_date", e.cover_image AS "event.cover_image",
			e.is_active AS "event.is_active", e.created_at AS "event.created_at",
			e.updated_at AS "event.updated_at",
			u.name AS host_name, u.email AS host_email, u.image AS host_image
		FROM gifts g
		JOIN events e ON e.id = g.event_id
		JOIN users u ON u.id = e.user_id
		WHERE g.id = $1`

	var schema giftContextSchema

	if err := r.db.GetContext(ctx, &schema, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.GiftContext{}, domain.NewError(errcodes.GiftNotFound, "Gift not found")
		}

		return entity.GiftContext{}, domain.WrapError(err, errcodes.InternalServerError, "failed to get gift")
	}

	return schema.toDomain(), nil
}

// ListForView возвращает подарки события в порядке отображения вместе с бронями.
func (r *GiftRepository) ListForView(ctx context.Context, eventID value.EventID) ([]entity.GiftView, error) {
	query := `
		SELECT ` + giftColumns + `,
			c.user_id AS claim_user_id, c.message AS claim_message,
			u.name AS claimer_name, u.image AS claimer_image
		FROM gifts g
		LEFT JOIN claims c ON c.gift_id = g.id
		LEFT JOIN users u ON u.id = c.user_id
		WHERE g.event_id = $1
		ORDER BY g.priority, g.created_at`

	var schemas []giftViewSchema

	if err := r.db.SelectContext(ctx, &schemas, query, eventID.String()); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list gifts")
	}

	gifts := make([]entity.GiftView, 0, len(schemas))

	for _, s := range schemas {
		gifts = append(gifts, s.toDomain())
	}

	return gifts, nil
}

// AddWithinCap добавляет подарок, если в событии меньше entity.MaxGiftsPerEvent подарков.
// Priority нового подарка равен текущему количеству подарков.
func (r *GiftRepository) AddWithinCap(ctx context.Context, gift entity.Gift) (entity.Gift, error) {
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		var err error

		gift, err = insertGiftWithinCap(ctx, tx, gift)

		return err
	})

	return gift, err
}

// insertGiftWithinCap блокирует строку события, чтобы конкурирующие добавления
// не превысили лимит.
func insertGiftWithinCap(ctx context.Context, tx *sqlx.Tx, gift entity.Gift) (entity.Gift, error) {
	var locked string

	if err := tx.GetContext(ctx, &locked, `SELECT id FROM events WHERE id = $1 FOR UPDATE`, gift.EventID.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Gift{}, domain.NewError(errcodes.EventNotFound, "Event not found")
		}

		return entity.Gift{}, domain.WrapError(err, errcodes.InternalServerError, "failed to lock event")
	}

	var count int

	if err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM gifts WHERE event_id = $1`, gift.EventID.String()); err != nil {
		return entity.Gift{}, domain.WrapError(err, errcodes.InternalServerError, "failed to count gifts")
	}

	if count >= entity.MaxGiftsPerEvent {
		return entity.Gift{}, domain.NewError(
			errcodes.GiftLimitReached,
			fmt.Sprintf("Maximum %d gifts per event", entity.MaxGiftsPerEvent),
		)
	}

	gift.Priority = count

	query := `
		INSERT INTO gifts (id, event_id, name, link, price, image, notes, priority, is_claimed, created_at, updated_at)
		VALUES (:id, :event_id, :name, :link, :price, :image, :notes, :priority, :is_claimed, :created_at, :updated_at)`

	if _, err := tx.NamedExecContext(ctx, query, fromGift(gift)); err != nil {
		return entity.Gift{}, domain.WrapError(err, errcodes.InternalServerError, "failed to insert gift")
	}

	return gift, nil
}

// Update перезаписывает редактируемые поля подарка. Флаг брони не трогает.
func (r *GiftRepository) Update(ctx context.Context, gift entity.Gift) error {
	query := `
		UPDATE gifts
		SET name = $1, link = $2, price = $3, image = $4, notes = $5, updated_at = $6
		WHERE id = $7`

	s := fromGift(gift)

	return execAffected(ctx, r.db, domain.NewError(errcodes.GiftNotFound, "Gift not found"), query,
		s.Name, s.Link, s.Price, s.Image, s.Notes, s.UpdatedAt, s.ID)
}

// Delete удаляет подарок вместе с бронью.
func (r *GiftRepository) Delete(ctx context.Context, id value.GiftID) error {
	return execAffected(ctx, r.db, domain.NewError(errcodes.GiftNotFound, "Gift not found"),
		`DELETE FROM gifts WHERE id = $1`, id.String())
}
