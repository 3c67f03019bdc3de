package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"wishly/internal/domain/entity"
	"wishly/internal/domain/value"
	"wishly/internal/worker"
)

// captured фиксирует состояние контекста в момент постановки: после возврата
// Enqueuer отменяет свой контекст с таймаутом.
type captured struct {
	ctxErr      error
	hasDeadline bool
	task        *asynq.Task
	opts        []asynq.Option
}

type fakeClient struct {
	calls []captured
	err   error
}

func (f *fakeClient) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	_, hasDeadline := ctx.Deadline()

	f.calls = append(f.calls, captured{
		ctxErr:      ctx.Err(),
		hasDeadline: hasDeadline,
		task:        task,
		opts:        opts,
	})

	if f.err != nil {
		return nil, f.err
	}

	return &asynq.TaskInfo{ID: uuid.NewString(), Type: task.Type()}, nil
}

func TestEnqueuer(t *testing.T) {
	rq := require.New(t)
	client := &fakeClient{}
	enqueuer := worker.NewEnqueuer(client, 2*time.Second)

	// Отменённый запрос не мешает постановке задачи.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	hostID := value.UserID(uuid.New())

	rq.NoError(enqueuer.EnqueueNotification(ctx, entity.NewNotification{
		UserID:  hostID,
		Type:    value.NotificationTypeClaim,
		Title:   "Kindle Paperwhite was claimed!",
		Message: "Asha claimed Kindle Paperwhite from Riya turns 30",
	}))
	rq.NoError(enqueuer.EnqueueGiftClaimedEmail(ctx, entity.GiftClaimedEmail{HostEmail: "riya@example.com"}))
	rq.NoError(enqueuer.EnqueueClaimConfirmationEmail(ctx, entity.ClaimConfirmationEmail{GuestEmail: "asha@example.com"}))

	rq.Len(client.calls, 3)
	rq.Equal(worker.TypeNotificationAppend, client.calls[0].task.Type())
	rq.Equal(worker.TypeEmailGiftClaimed, client.calls[1].task.Type())
	rq.Equal(worker.TypeEmailClaimConfirmation, client.calls[2].task.Type())

	for _, call := range client.calls {
		rq.NoError(call.ctxErr)
		rq.True(call.hasDeadline)

		retries := -1

		for _, opt := range call.opts {
			if opt.Type() == asynq.MaxRetryOpt {
				retries = opt.Value().(int) //nolint:forcetypeassert
			}
		}

		rq.Equal(0, retries)
	}

	var n entity.NewNotification
	rq.NoError(jsoniter.Unmarshal(client.calls[0].task.Payload(), &n))
	rq.Equal(hostID, n.UserID)
	rq.Equal("Kindle Paperwhite was claimed!", n.Title)
}

func TestEnqueuerError(t *testing.T) {
	rq := require.New(t)
	enqueuer := worker.NewEnqueuer(&fakeClient{err: errors.New("dial tcp: connection refused")}, time.Second)

	err := enqueuer.EnqueueGiftClaimedEmail(context.Background(), entity.GiftClaimedEmail{})
	rq.ErrorContains(err, "connection refused")
}

type fakeNotifications struct {
	appended []entity.NewNotification
	err      error
}

func (f *fakeNotifications) Append(_ context.Context, n entity.NewNotification) error {
	f.appended = append(f.appended, n)
	return f.err
}

type fakeMailer struct {
	hostEmails  []entity.GiftClaimedEmail
	guestEmails []entity.ClaimConfirmationEmail
	err         error
}

func (f *fakeMailer) SendGiftClaimedEmail(_ context.Context, e entity.GiftClaimedEmail) error {
	f.hostEmails = append(f.hostEmails, e)
	return f.err
}

func (f *fakeMailer) SendClaimConfirmationEmail(_ context.Context, e entity.ClaimConfirmationEmail) error {
	f.guestEmails = append(f.guestEmails, e)
	return f.err
}

func task(t *testing.T, taskType string, payload any) *asynq.Task {
	t.Helper()

	body, err := jsoniter.Marshal(payload)
	require.NoError(t, err)

	return asynq.NewTask(taskType, body)
}

func TestHandlers(t *testing.T) {
	rq := require.New(t)
	notifications := &fakeNotifications{}
	mailer := &fakeMailer{}
	h := worker.NewHandlers(notifications, mailer)
	ctx := context.Background()

	rq.Len(h.Routes(), 3)

	rq.NoError(h.HandleNotificationAppend(ctx, task(t, worker.TypeNotificationAppend, entity.NewNotification{
		Type:     value.NotificationTypeClaim,
		Title:    "Scarf was claimed!",
		Metadata: map[string]string{"giftId": "g1"},
	})))
	rq.Len(notifications.appended, 1)
	rq.Equal("Scarf was claimed!", notifications.appended[0].Title)
	rq.Equal("g1", notifications.appended[0].Metadata["giftId"])

	rq.NoError(h.HandleGiftClaimedEmail(ctx, task(t, worker.TypeEmailGiftClaimed, entity.GiftClaimedEmail{
		HostEmail: "riya@example.com",
		GiftName:  "Scarf",
	})))
	rq.Equal("riya@example.com", mailer.hostEmails[0].HostEmail)

	rq.NoError(h.HandleClaimConfirmationEmail(ctx, task(t, worker.TypeEmailClaimConfirmation, entity.ClaimConfirmationEmail{
		GuestEmail: "asha@example.com",
		Price:      149950,
	})))
	rq.Equal(value.Paisa(149950), mailer.guestEmails[0].Price)
}

func TestHandlersSwallowDownstreamErrors(t *testing.T) {
	rq := require.New(t)
	h := worker.NewHandlers(
		&fakeNotifications{err: errors.New("insert failed")},
		&fakeMailer{err: errors.New("email provider responded 500")},
	)
	ctx := context.Background()

	rq.NoError(h.HandleNotificationAppend(ctx, task(t, worker.TypeNotificationAppend, entity.NewNotification{})))
	rq.NoError(h.HandleGiftClaimedEmail(ctx, task(t, worker.TypeEmailGiftClaimed, entity.GiftClaimedEmail{})))
	rq.NoError(h.HandleClaimConfirmationEmail(ctx, task(t, worker.TypeEmailClaimConfirmation, entity.ClaimConfirmationEmail{})))
}

func TestHandlersRejectMalformedPayload(t *testing.T) {
	rq := require.New(t)
	h := worker.NewHandlers(&fakeNotifications{}, &fakeMailer{})

	err := h.HandleNotificationAppend(context.Background(), asynq.NewTask(worker.TypeNotificationAppend, []byte("{")))
	rq.ErrorIs(err, asynq.SkipRetry)
}
