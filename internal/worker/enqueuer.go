package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"wishly/internal/domain/entity"
	"wishly/pkg/logx"
)

type taskClient interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Enqueuer ставит задачи без ретраев: побочный эффект пробуется один раз.
// Постановка ограничена таймаутом и не зависит от отмены запроса.
type Enqueuer struct {
	client  taskClient
	timeout time.Duration
}

func NewEnqueuer(client taskClient, timeout time.Duration) *Enqueuer {
	return &Enqueuer{
		client:  client,
		timeout: timeout,
	}
}

func (e *Enqueuer) EnqueueNotification(ctx context.Context, n entity.NewNotification) error {
	return e.enqueue(ctx, TypeNotificationAppend, n)
}

func (e *Enqueuer) EnqueueGiftClaimedEmail(ctx context.Context, m entity.GiftClaimedEmail) error {
	return e.enqueue(ctx, TypeEmailGiftClaimed, m)
}

func (e *Enqueuer) EnqueueClaimConfirmationEmail(ctx context.Context, m entity.ClaimConfirmationEmail) error {
	return e.enqueue(ctx, TypeEmailClaimConfirmation, m)
}

func (e *Enqueuer) enqueue(ctx context.Context, taskType string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.timeout)
	defer cancel()

	info, err := e.client.EnqueueContext(ctx, asynq.NewTask(taskType, body),
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(0),
	)
	if err != nil {
		return fmt.Errorf("client.EnqueueContext %s: %w", taskType, err)
	}

	logger(ctx).Debug("task enqueued",
		slog.String(logx.FieldTaskType, taskType),
		slog.String(logx.FieldTaskID, info.ID),
	)

	return nil
}
