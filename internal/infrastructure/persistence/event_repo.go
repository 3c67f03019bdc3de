package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"wishly/internal/domain"
	"wishly/internal/domain/entity"
	"wishly/internal/domain/value"
	"wishly/pkg/errcodes"
)

const eventColumns = `id, user_id, title, type, custom_type_name, slug, description,
	event_date, cover_image, is_active, created_at, updated_at`

type EventRepository struct {
	store
}

// NewEventRepository создаёт репозиторий событий.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{store: store{db: db}}
}

// Create сохраняет новое событие. Занятый slug возвращается как SlugUnavailable.
func (r *EventRepository) Create(ctx context.Context, event entity.Event) error {
	query := `
		INSERT INTO events (` + eventColumns + `)
		VALUES (:id, :user_id, :title, :type, :custom_type_name, :slug, :description,
			:event_date, :cover_image, :is_active, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, fromEvent(event)); err != nil {
		if isUniqueViolation(err, "events_slug_idx") {
			return domain.WrapError(err, errcodes.SlugUnavailable, "slug is already taken")
		}

		return domain.WrapError(err, errcodes.InternalServerError, "failed to insert event")
	}

	return nil
}

// GetByID возвращает событие по идентификатору.
func (r *EventRepository) GetByID(ctx context.Context, id value.EventID) (entity.Event, error) {
	return r.get(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id.String())
}

// GetBySlug возвращает событие по публичному slug.
func (r *EventRepository) GetBySlug(ctx context.Context, slug value.Slug) (entity.Event, error) {
	return r.get(ctx, `SELECT `+eventColumns+` FROM events WHERE slug = $1`, slug.String())
}

func (r *EventRepository) get(ctx context.Context, query string, arg any) (entity.Event, error) {
	var schema eventSchema

	if err := r.db.GetContext(ctx, &schema, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Event{}, domain.NewError(errcodes.EventNotFound, "Event not found")
		}

		return entity.Event{}, domain.WrapError(err, errcodes.InternalServerError, "failed to get event")
	}

	return schema.toDomain(), nil
}

// ListByHost возвращает события хоста (новые первыми) со счётчиками подарков.
func (r *EventRepository) ListByHost(ctx context.Context, hostID value.UserID) ([]entity.DashboardEvent, error) {
	query := `
		SELECT e.id, e.user_id, e.title, e.type, e.custom_type_name, e.slug, e.description,
			e.event_date, e.cover_image, e.is_active, e.created_at, e.updated_at,
			COUNT(g.id) AS gift_count,
			COUNT(g.id) FILTER (WHERE g.is_claimed) AS claimed_count
		FROM events e
		LEFT JOIN gifts g ON g.event_id = e.id
		WHERE e.user_id = $1
		GROUP BY e.id
		ORDER BY e.created_at DESC`

	var schemas []dashboardEventSchema

	if err := r.db.SelectContext(ctx, &schemas, query, hostID.String()); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list events")
	}

	events := make([]entity.DashboardEvent, 0, len(schemas))

	for _, s := range schemas {
		events = append(events, entity.DashboardEvent{
			Event:        s.toDomain(),
			GiftCount:    s.GiftCount,
			ClaimedCount: s.ClaimedCount,
		})
	}

	return events, nil
}

// Update перезаписывает редактируемые поля события.
func (r *EventRepository) Update(ctx context.Context, event entity.Event) error {
	query := `
		UPDATE events
		SET title = $1, type = $2, custom_type_name = $3, description = $4,
			event_date = $5, cover_image = $6, updated_at = $7
		WHERE id = $8`

	s := fromEvent(event)

	return execAffected(ctx, r.db, domain.NewError(errcodes.EventNotFound, "Event not found"), query,
		s.Title, s.Type, s.CustomTypeName, s.Description, s.EventDate, s.CoverImage, s.UpdatedAt, s.ID)
}

// SetActive включает или выключает публичную страницу события.
func (r *EventRepository) SetActive(ctx context.Context, id value.EventID, active bool, now time.Time) error {
	query := `UPDATE events SET is_active = $1, updated_at = $2 WHERE id = $3`

	return execAffected(ctx, r.db, domain.NewError(errcodes.EventNotFound, "Event not found"), query,
		active, now, id.String())
}

// Delete удаляет событие вместе с подарками, бронями и предложениями (ON DELETE CASCADE).
func (r *EventRepository) Delete(ctx context.Context, id value.EventID) error {
	return execAffected(ctx, r.db, domain.NewError(errcodes.EventNotFound, "Event not found"),
		`DELETE FROM events WHERE id = $1`, id.String())
}
