package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"wishly/internal/domain/entity"
	"wishly/pkg/application/modules"
	"wishly/pkg/contextx"
	"wishly/pkg/logx"
)

type NotificationAppender interface {
	Append(ctx context.Context, n entity.NewNotification) error
}

type Mailer interface {
	SendGiftClaimedEmail(ctx context.Context, e entity.GiftClaimedEmail) error
	SendClaimConfirmationEmail(ctx context.Context, e entity.ClaimConfirmationEmail) error
}

// Handlers исполняют задачи. Ошибка побочного эффекта логируется и не возвращается:
// повторять его никто не будет, а бронь от него не зависит.
type Handlers struct {
	notifications NotificationAppender
	mailer        Mailer
}

func NewHandlers(notifications NotificationAppender, mailer Mailer) *Handlers {
	return &Handlers{
		notifications: notifications,
		mailer:        mailer,
	}
}

// Routes регистрация обработчиков в asynq сервере.
func (h *Handlers) Routes() []modules.AsynqHandler {
	return []modules.AsynqHandler{
		{Pattern: TypeNotificationAppend, Handle: h.HandleNotificationAppend},
		{Pattern: TypeEmailGiftClaimed, Handle: h.HandleGiftClaimedEmail},
		{Pattern: TypeEmailClaimConfirmation, Handle: h.HandleClaimConfirmationEmail},
	}
}

func (h *Handlers) HandleNotificationAppend(ctx context.Context, t *asynq.Task) error {
	return handle(ctx, t, func(ctx context.Context, n entity.NewNotification) error {
		return h.notifications.Append(ctx, n)
	})
}

func (h *Handlers) HandleGiftClaimedEmail(ctx context.Context, t *asynq.Task) error {
	return handle(ctx, t, h.mailer.SendGiftClaimedEmail)
}

func (h *Handlers) HandleClaimConfirmationEmail(ctx context.Context, t *asynq.Task) error {
	return handle(ctx, t, h.mailer.SendClaimConfirmationEmail)
}

func handle[T any](ctx context.Context, t *asynq.Task, run func(context.Context, T) error) error {
	taskID, _ := asynq.GetTaskID(ctx)

	ctx = contextx.WithLogger(ctx, logger(ctx).With(
		slog.String(logx.FieldTaskType, t.Type()),
		slog.String(logx.FieldTaskID, taskID),
	))

	var payload T

	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		tasksProcessed.WithLabelValues(t.Type(), statusInvalid).Inc()

		return fmt.Errorf("json.Unmarshal: %w", asynq.SkipRetry)
	}

	if err := run(ctx, payload); err != nil {
		tasksProcessed.WithLabelValues(t.Type(), statusFailed).Inc()
		logger(ctx).Error("task failed", logx.Error(err))

		return nil
	}

	tasksProcessed.WithLabelValues(t.Type(), statusDone).Inc()
	logger(ctx).Info("task done")

	return nil
}
