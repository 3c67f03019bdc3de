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

type NotificationRepository struct {
	store
}

func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{store: store{db: db}}
}

// Insert добавляет уведомление в ленту получателя.
func (r *NotificationRepository) Insert(ctx context.Context, n entity.NewNotification, now time.Time) error {
	var metadata []byte

	if len(n.Metadata) > 0 {
		var err error

		if metadata, err = json.Marshal(n.Metadata); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to marshal metadata")
		}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, type, title, message, is_read, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6, $7)`,
		uuid.UUID(value.NewNotificationID()), uuid.UUID(n.UserID), n.Type.String(),
		n.Title, n.Message, metadata, now,
	)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to insert notification")
	}

	return nil
}

// ListRecent возвращает последние уведомления пользователя, новые первыми.
func (r *NotificationRepository) ListRecent(
	ctx context.Context,
	userID value.UserID,
	limit int,
) ([]entity.Notification, error) {
	query := `
		SELECT id, user_id, type, title, message, is_read, metadata, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	var schemas []notificationSchema

	if err := r.db.SelectContext(ctx, &schemas, query, uuid.UUID(userID), limit); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list notifications")
	}

	notifications := make([]entity.Notification, 0, len(schemas))

	for _, s := range schemas {
		n, err := s.toDomain()
		if err != nil {
			return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to convert notification")
		}

		notifications = append(notifications, n)
	}

	return notifications, nil
}

// CountUnread считает непрочитанные уведомления пользователя.
func (r *NotificationRepository) CountUnread(ctx context.Context, userID value.UserID) (int, error) {
	var count int

	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`

	if err := r.db.GetContext(ctx, &count, query, uuid.UUID(userID)); err != nil {
		return 0, domain.WrapError(err, errcodes.InternalServerError, "failed to count notifications")
	}

	return count, nil
}

// MarkRead помечает уведомление прочитанным. Владелец проверяется в WHERE,
// чужое уведомление молча остаётся как есть.
func (r *NotificationRepository) MarkRead(ctx context.Context, id value.NotificationID, userID value.UserID) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`

	if _, err := r.db.ExecContext(ctx, query, uuid.UUID(id), uuid.UUID(userID)); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to mark notification")
	}

	return nil
}

// MarkAllRead помечает прочитанными все уведомления пользователя.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID value.UserID) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`

	if _, err := r.db.ExecContext(ctx, query, uuid.UUID(userID)); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to mark notifications")
	}

	return nil
}
