package notification

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"wishly/internal/domain"
	"wishly/internal/domain/entity"
	"wishly/internal/domain/value"
	"wishly/pkg/errcodes"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

type Repository interface {
	Insert(ctx context.Context, n entity.NewNotification, now time.Time) error
	ListRecent(ctx context.Context, userID value.UserID, limit int) ([]entity.Notification, error)
	CountUnread(ctx context.Context, userID value.UserID) (int, error)
	MarkRead(ctx context.Context, id value.NotificationID, userID value.UserID) error
	MarkAllRead(ctx context.Context, userID value.UserID) error
}

// Service лента уведомлений: только добавление и отметка о прочтении.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Append(ctx context.Context, n entity.NewNotification) error {
	if err := s.repo.Insert(ctx, n, s.now()); err != nil {
		return fmt.Errorf("repo.Insert: %w", err)
	}

	return nil
}

func (s *Service) ListRecent(ctx context.Context, userID value.UserID, limit int) ([]entity.Notification, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	limit, err := normalizeLimit(limit)
	if err != nil {
		return nil, err
	}

	notifications, err := s.repo.ListRecent(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("repo.ListRecent: %w", err)
	}

	return notifications, nil
}

func (s *Service) CountUnread(ctx context.Context, userID value.UserID) (int, error) {
	if err := requireUser(userID); err != nil {
		return 0, err
	}

	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("repo.CountUnread: %w", err)
	}

	return count, nil
}

// Feed последние уведомления и число непрочитанных, оба запроса идут параллельно.
func (s *Service) Feed(ctx context.Context, userID value.UserID, limit int) (entity.NotificationFeed, error) {
	var feed entity.NotificationFeed

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		notifications, err := s.ListRecent(gCtx, userID, limit)
		feed.Notifications = notifications

		return err
	})

	g.Go(func() error {
		count, err := s.CountUnread(gCtx, userID)
		feed.UnreadCount = count

		return err
	})

	if err := g.Wait(); err != nil {
		return entity.NotificationFeed{}, err
	}

	if feed.Notifications == nil {
		feed.Notifications = []entity.Notification{}
	}

	return feed, nil
}

// MarkRead отмечает уведомление прочитанным. Для чужого уведомления ничего не происходит.
func (s *Service) MarkRead(ctx context.Context, id value.NotificationID, userID value.UserID) error {
	if err := requireUser(userID); err != nil {
		return err
	}

	if err := s.repo.MarkRead(ctx, id, userID); err != nil {
		return fmt.Errorf("repo.MarkRead: %w", err)
	}

	return nil
}

func (s *Service) MarkAllRead(ctx context.Context, userID value.UserID) error {
	if err := requireUser(userID); err != nil {
		return err
	}

	if err := s.repo.MarkAllRead(ctx, userID); err != nil {
		return fmt.Errorf("repo.MarkAllRead: %w", err)
	}

	return nil
}

func requireUser(userID value.UserID) error {
	if userID.IsZero() {
		return domain.NewError(errcodes.Unauthenticated, "Unauthorized")
	}

	return nil
}

func normalizeLimit(limit int) (int, error) {
	switch {
	case limit < 0:
		return 0, domain.NewError(errcodes.InvalidPaging, "limit must not be negative")
	case limit == 0:
		return DefaultLimit, nil
	case limit > MaxLimit:
		return MaxLimit, nil
	default:
		return limit, nil
	}
}
