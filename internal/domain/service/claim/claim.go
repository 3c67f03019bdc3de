package claim

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"wishly/internal/domain"
	"wishly/internal/domain/entity"
	"wishly/internal/domain/value"
	"wishly/pkg/contextx"
	"wishly/pkg/errcodes"
	"wishly/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const (
	defaultClaimerName = "Someone"
	defaultHostName    = "there"
)

type GiftRepository interface {
	GetContext(ctx context.Context, id value.GiftID) (entity.GiftContext, error)
}

type ClaimRepository interface {
	Claim(ctx context.Context, claim entity.Claim) error
	Release(ctx context.Context, giftID value.GiftID, userID value.UserID, now time.Time) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id value.UserID) (entity.User, error)
}

// TaskEnqueuer ставит побочные эффекты брони в очередь. Задачи выполняются один раз, без ретраев.
type TaskEnqueuer interface {
	EnqueueNotification(ctx context.Context, n entity.NewNotification) error
	EnqueueGiftClaimedEmail(ctx context.Context, e entity.GiftClaimedEmail) error
	EnqueueClaimConfirmationEmail(ctx context.Context, e entity.ClaimConfirmationEmail) error
}

type ViewInvalidator interface {
	Invalidate(ctx context.Context, event entity.Event)
}

// Service координирует бронирование подарков.
// Единственный арбитр гонки уникальный индекс claims.gift_id, блокировок в приложении нет.
type Service struct {
	gifts     GiftRepository
	claims    ClaimRepository
	users     UserRepository
	tasks     TaskEnqueuer
	views     ViewInvalidator
	publicURL string
	now       func() time.Time
}

func NewService(
	gifts GiftRepository,
	claims ClaimRepository,
	users UserRepository,
	tasks TaskEnqueuer,
	views ViewInvalidator,
	publicURL string,
) *Service {
	return &Service{
		gifts:     gifts,
		claims:    claims,
		users:     users,
		tasks:     tasks,
		views:     views,
		publicURL: publicURL,
		now:       time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// AttemptClaim бронирует подарок за вызывающим.
func (s *Service) AttemptClaim(ctx context.Context, caller value.UserID, giftID value.GiftID, message string) error {
	ctx = contextx.WithLogger(ctx, logger(ctx).With(
		slog.String(logx.FieldGiftID, giftID.String()),
		slog.String(logx.FieldUserID, caller.String()),
	))

	gc, err := s.attemptClaim(ctx, caller, giftID, message)

	outcome := outcomeOf(err)
	claimsTotal.WithLabelValues(outcome).Inc()

	if err != nil {
		return err
	}

	logger(ctx).Info("gift claimed", slog.String(logx.FieldEventID, gc.Event.ID.String()))

	s.enqueueSideEffects(ctx, caller, gc, message)
	s.views.Invalidate(ctx, gc.Event)

	return nil
}

func (s *Service) attemptClaim(
	ctx context.Context,
	caller value.UserID,
	giftID value.GiftID,
	message string,
) (entity.GiftContext, error) {
	if caller.IsZero() {
		return entity.GiftContext{}, domain.NewError(errcodes.Unauthenticated, "Please sign in to claim a gift")
	}

	gc, err := s.gifts.GetContext(ctx, giftID)
	if err != nil {
		return entity.GiftContext{}, fmt.Errorf("gifts.GetContext: %w", err)
	}

	if gc.Event.OwnedBy(caller) {
		return entity.GiftContext{}, domain.NewError(errcodes.SelfClaimDenied, "You cannot claim your own gift")
	}

	if gc.Gift.IsClaimed {
		return entity.GiftContext{}, domain.NewError(errcodes.AlreadyClaimed, "This gift has already been claimed")
	}

	if utf8.RuneCountInString(message) > entity.MaxClaimMessageLength {
		return entity.GiftContext{}, domain.NewError(errcodes.ValidationError,
			fmt.Sprintf("Message must be at most %d characters", entity.MaxClaimMessageLength))
	}

	if err = s.claims.Claim(ctx, entity.NewClaim(giftID, caller, message, s.now())); err != nil {
		return entity.GiftContext{}, fmt.Errorf("claims.Claim: %w", err)
	}

	return gc, nil
}

// enqueueSideEffects ставит уведомление и письма. Каждая постановка независима,
// ошибка любой из них только логируется: бронь уже зафиксирована.
func (s *Service) enqueueSideEffects(ctx context.Context, caller value.UserID, gc entity.GiftContext, message string) {
	claimer, err := s.users.GetByID(ctx, caller)
	if err != nil {
		logger(ctx).Warn("users.GetByID claimer", logx.Error(err))
	}

	claimerName := claimer.DisplayName(defaultClaimerName)

	err = s.tasks.EnqueueNotification(ctx, entity.NewNotification{
		UserID:  gc.Host.ID,
		Type:    value.NotificationTypeClaim,
		Title:   gc.Gift.Name + " was claimed!",
		Message: fmt.Sprintf("%s claimed %s from %s", claimerName, gc.Gift.Name, gc.Event.Title),
		Metadata: map[string]string{
			"eventId": gc.Event.ID.String(),
			"giftId":  gc.Gift.ID.String(),
		},
	})
	if err != nil {
		logger(ctx).Error("tasks.EnqueueNotification", logx.Error(err))
	}

	if gc.Host.Email != "" {
		err = s.tasks.EnqueueGiftClaimedEmail(ctx, entity.GiftClaimedEmail{
			HostEmail:    gc.Host.Email,
			HostName:     gc.Host.DisplayName(defaultHostName),
			GiftName:     gc.Gift.Name,
			ClaimerName:  claimerName,
			EventTitle:   gc.Event.Title,
			DashboardURL: s.publicURL + "/events/" + gc.Event.ID.String(),
			Message:      message,
		})
		if err != nil {
			logger(ctx).Error("tasks.EnqueueGiftClaimedEmail", logx.Error(err))
		}
	}

	if claimer.Email != "" {
		err = s.tasks.EnqueueClaimConfirmationEmail(ctx, entity.ClaimConfirmationEmail{
			GuestEmail: claimer.Email,
			GuestName:  claimerName,
			GiftName:   gc.Gift.Name,
			EventTitle: gc.Event.Title,
			GiftLink:   gc.Gift.Link,
			Price:      gc.Gift.Price,
		})
		if err != nil {
			logger(ctx).Error("tasks.EnqueueClaimConfirmationEmail", logx.Error(err))
		}
	}
}

// ReleaseClaim снимает бронь вызывающего. Уведомление хосту не отправляется.
func (s *Service) ReleaseClaim(ctx context.Context, caller value.UserID, giftID value.GiftID) error {
	ctx = contextx.WithLogger(ctx, logger(ctx).With(
		slog.String(logx.FieldGiftID, giftID.String()),
		slog.String(logx.FieldUserID, caller.String()),
	))

	event, err := s.releaseClaim(ctx, caller, giftID)

	releasesTotal.WithLabelValues(outcomeOf(err)).Inc()

	if err != nil {
		return err
	}

	logger(ctx).Info("claim released")

	s.views.Invalidate(ctx, event)

	return nil
}

func (s *Service) releaseClaim(ctx context.Context, caller value.UserID, giftID value.GiftID) (entity.Event, error) {
	if caller.IsZero() {
		return entity.Event{}, domain.NewError(errcodes.Unauthenticated, "Please sign in")
	}

	gc, err := s.gifts.GetContext(ctx, giftID)
	if err != nil {
		if domain.HasCode(err, errcodes.GiftNotFound) {
			return entity.Event{}, domain.WrapError(err, errcodes.ClaimNotFound, "Claim not found")
		}

		return entity.Event{}, fmt.Errorf("gifts.GetContext: %w", err)
	}

	if err = s.claims.Release(ctx, giftID, caller, s.now()); err != nil {
		return entity.Event{}, fmt.Errorf("claims.Release: %w", err)
	}

	return gc.Event, nil
}
