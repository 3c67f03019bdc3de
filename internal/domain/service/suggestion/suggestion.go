package suggestion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"wishly/internal/domain"
	"wishly/internal/domain/entity"
	"wishly/internal/domain/service/registry"
	"wishly/internal/domain/value"
	"wishly/pkg/contextx"
	"wishly/pkg/errcodes"
	"wishly/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const defaultSuggesterName = "Someone"

type Repository interface {
	Create(ctx context.Context, s entity.Suggestion) error
	GetByID(ctx context.Context, id value.SuggestionID) (entity.Suggestion, error)
	ListByEvent(ctx context.Context, eventID value.EventID) ([]entity.Suggestion, error)
	Approve(ctx context.Context, id value.SuggestionID, gift entity.Gift) (entity.Gift, error)
	Ignore(ctx context.Context, id value.SuggestionID) error
}

type EventRepository interface {
	GetByID(ctx context.Context, id value.EventID) (entity.Event, error)
	GetBySlug(ctx context.Context, slug value.Slug) (entity.Event, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id value.UserID) (entity.User, error)
}

type TaskEnqueuer interface {
	EnqueueNotification(ctx context.Context, n entity.NewNotification) error
}

type ViewInvalidator interface {
	Invalidate(ctx context.Context, event entity.Event)
}

// Service предложения подарков от гостей. Хост одобряет их в список или игнорирует.
type Service struct {
	repo   Repository
	events EventRepository
	users  UserRepository
	tasks  TaskEnqueuer
	views  ViewInvalidator
	now    func() time.Time
}

func NewService(
	repo Repository,
	events EventRepository,
	users UserRepository,
	tasks TaskEnqueuer,
	views ViewInvalidator,
) *Service {
	return &Service{
		repo:   repo,
		events: events,
		users:  users,
		tasks:  tasks,
		views:  views,
		now:    time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Suggest сохраняет предложение гостя и уведомляет хоста.
func (s *Service) Suggest(
	ctx context.Context,
	caller value.UserID,
	slug value.Slug,
	in entity.GiftInput,
) (entity.Suggestion, error) {
	if caller.IsZero() {
		return entity.Suggestion{}, domain.NewError(errcodes.Unauthenticated, "Please sign in to suggest a gift")
	}

	event, err := s.events.GetBySlug(ctx, slug)
	if err != nil {
		return entity.Suggestion{}, fmt.Errorf("events.GetBySlug: %w", err)
	}

	if !event.IsActive {
		return entity.Suggestion{}, domain.NewError(errcodes.EventInactive, "This registry is no longer active")
	}

	if event.OwnedBy(caller) {
		return entity.Suggestion{}, domain.NewError(errcodes.SelfSuggestionDenied, "You cannot suggest gifts for your own event")
	}

	suggestion := entity.Suggestion{
		ID:        value.NewSuggestionID(),
		EventID:   event.ID,
		UserID:    caller,
		Name:      in.Name,
		Link:      in.Link,
		Price:     in.Price,
		Notes:     in.Notes,
		Status:    value.SuggestionStatusPending,
		CreatedAt: s.now(),
	}

	if err = registry.ValidateGift(entity.Gift{
		Name:  suggestion.Name,
		Link:  suggestion.Link,
		Price: suggestion.Price,
		Notes: suggestion.Notes,
	}); err != nil {
		return entity.Suggestion{}, err
	}

	if err = s.repo.Create(ctx, suggestion); err != nil {
		return entity.Suggestion{}, fmt.Errorf("repo.Create: %w", err)
	}

	s.notifyHost(ctx, event, suggestion)

	return suggestion, nil
}

func (s *Service) notifyHost(ctx context.Context, event entity.Event, suggestion entity.Suggestion) {
	suggester, err := s.users.GetByID(ctx, suggestion.UserID)
	if err != nil {
		logger(ctx).Warn("users.GetByID suggester", logx.Error(err))
	}

	err = s.tasks.EnqueueNotification(ctx, entity.NewNotification{
		UserID: event.HostID,
		Type:   value.NotificationTypeSuggestion,
		Title:  "New gift suggestion",
		Message: fmt.Sprintf("%s suggested %s for %s",
			suggester.DisplayName(defaultSuggesterName), suggestion.Name, event.Title),
		Metadata: map[string]string{
			"eventId":      event.ID.String(),
			"suggestionId": suggestion.ID.String(),
		},
	})
	if err != nil {
		logger(ctx).Error("tasks.EnqueueNotification", logx.Error(err),
			slog.String(logx.FieldSuggestionID, suggestion.ID.String()))
	}
}

// List предложения события для его хоста.
func (s *Service) List(ctx context.Context, caller value.UserID, eventID value.EventID) ([]entity.Suggestion, error) {
	if caller.IsZero() {
		return nil, domain.NewError(errcodes.Unauthenticated, "Unauthorized")
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("events.GetByID: %w", err)
	}

	if !event.OwnedBy(caller) {
		return nil, domain.NewError(errcodes.EventNotFound, "Event not found")
	}

	suggestions, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("repo.ListByEvent: %w", err)
	}

	return suggestions, nil
}

// Approve добавляет предложение подарком в событие с учётом лимита.
func (s *Service) Approve(ctx context.Context, caller value.UserID, id value.SuggestionID) (entity.Gift, error) {
	suggestion, event, err := s.ownedPending(ctx, caller, id)
	if err != nil {
		return entity.Gift{}, err
	}

	in := suggestion.AsGiftInput()
	now := s.now()

	gift, err := s.repo.Approve(ctx, id, entity.Gift{
		ID:        value.NewGiftID(),
		EventID:   event.ID,
		Name:      in.Name,
		Link:      in.Link,
		Price:     in.Price,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return entity.Gift{}, fmt.Errorf("repo.Approve: %w", err)
	}

	logger(ctx).Info("suggestion approved",
		slog.String(logx.FieldSuggestionID, id.String()),
		slog.String(logx.FieldGiftID, gift.ID.String()),
	)

	s.views.Invalidate(ctx, event)

	return gift, nil
}

func (s *Service) Ignore(ctx context.Context, caller value.UserID, id value.SuggestionID) error {
	if _, _, err := s.ownedPending(ctx, caller, id); err != nil {
		return err
	}

	if err := s.repo.Ignore(ctx, id); err != nil {
		return fmt.Errorf("repo.Ignore: %w", err)
	}

	return nil
}

// ownedPending загружает ожидающее предложение события вызывающего.
// Предложение чужого события выглядит как несуществующее.
func (s *Service) ownedPending(
	ctx context.Context,
	caller value.UserID,
	id value.SuggestionID,
) (entity.Suggestion, entity.Event, error) {
	if caller.IsZero() {
		return entity.Suggestion{}, entity.Event{}, domain.NewError(errcodes.Unauthenticated, "Unauthorized")
	}

	suggestion, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return entity.Suggestion{}, entity.Event{}, fmt.Errorf("repo.GetByID: %w", err)
	}

	event, err := s.events.GetByID(ctx, suggestion.EventID)
	if err != nil {
		return entity.Suggestion{}, entity.Event{}, fmt.Errorf("events.GetByID: %w", err)
	}

	if !event.OwnedBy(caller) {
		return entity.Suggestion{}, entity.Event{}, domain.NewError(errcodes.SuggestionNotFound, "Suggestion not found")
	}

	if !suggestion.IsPending() {
		return entity.Suggestion{}, entity.Event{}, domain.NewError(
			errcodes.SuggestionNotPending,
			"Suggestion was already handled",
		)
	}

	return suggestion, event, nil
}
