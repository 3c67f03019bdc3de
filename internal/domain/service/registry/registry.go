package registry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"wishly/internal/domain"
	"wishly/internal/domain/entity"
	"wishly/internal/domain/value"
	"wishly/pkg/contextx"
	"wishly/pkg/errcodes"
	"wishly/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// slugAttempts сколько раз генерируем slug при коллизии уникального индекса.
const slugAttempts = 5

type EventRepository interface {
	Create(ctx context.Context, event entity.Event) error
	GetByID(ctx context.Context, id value.EventID) (entity.Event, error)
	Update(ctx context.Context, event entity.Event) error
	SetActive(ctx context.Context, id value.EventID, active bool, now time.Time) error
	Delete(ctx context.Context, id value.EventID) error
}

type GiftRepository interface {
	GetContext(ctx context.Context, id value.GiftID) (entity.GiftContext, error)
	AddWithinCap(ctx context.Context, gift entity.Gift) (entity.Gift, error)
	Update(ctx context.Context, gift entity.Gift) error
	Delete(ctx context.Context, id value.GiftID) error
}

type ViewInvalidator interface {
	Invalidate(ctx context.Context, event entity.Event)
}

// Service управление событиями и подарками хоста.
// Чужое событие или подарок выглядят как несуществующие.
type Service struct {
	events  EventRepository
	gifts   GiftRepository
	views   ViewInvalidator
	now     func() time.Time
	newSlug func() value.Slug
}

func NewService(events EventRepository, gifts GiftRepository, views ViewInvalidator) *Service {
	return &Service{
		events:  events,
		gifts:   gifts,
		views:   views,
		now:     time.Now,
		newSlug: value.NewSlug,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) WithSlugGenerator(newSlug func() value.Slug) *Service {
	s.newSlug = newSlug
	return s
}

func (s *Service) CreateEvent(ctx context.Context, caller value.UserID, in entity.EventInput) (entity.Event, error) {
	if err := requireUser(caller); err != nil {
		return entity.Event{}, err
	}

	if _, err := value.ParseEventType(in.Type.String()); err != nil {
		return entity.Event{}, err
	}

	now := s.now()

	event := entity.Event{
		ID:             value.NewEventID(),
		HostID:         caller,
		Title:          in.Title,
		Type:           in.Type,
		CustomTypeName: in.CustomTypeName,
		Description:    in.Description,
		EventDate:      in.EventDate,
		CoverImage:     in.CoverImage,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := validateEvent(event); err != nil {
		return entity.Event{}, err
	}

	var err error

	for range slugAttempts {
		event.Slug = s.newSlug()

		err = s.events.Create(ctx, event)
		if !domain.HasCode(err, errcodes.SlugUnavailable) {
			break
		}

		logger(ctx).Warn("slug collision", slog.String(logx.FieldSlug, event.Slug.String()))
	}

	if err != nil {
		return entity.Event{}, fmt.Errorf("events.Create: %w", err)
	}

	logger(ctx).Info("event created",
		slog.String(logx.FieldEventID, event.ID.String()),
		slog.String(logx.FieldSlug, event.Slug.String()),
	)

	s.views.Invalidate(ctx, event)

	return event, nil
}

func (s *Service) UpdateEvent(
	ctx context.Context,
	caller value.UserID,
	id value.EventID,
	patch entity.EventPatch,
) (entity.Event, error) {
	event, err := s.ownedEvent(ctx, caller, id)
	if err != nil {
		return entity.Event{}, err
	}

	if patch.Type != nil {
		if _, err = value.ParseEventType(patch.Type.String()); err != nil {
			return entity.Event{}, err
		}
	}

	event = patch.Apply(event)
	event.UpdatedAt = s.now()

	if err = validateEvent(event); err != nil {
		return entity.Event{}, err
	}

	if err = s.events.Update(ctx, event); err != nil {
		return entity.Event{}, fmt.Errorf("events.Update: %w", err)
	}

	s.views.Invalidate(ctx, event)

	return event, nil
}

func (s *Service) DeleteEvent(ctx context.Context, caller value.UserID, id value.EventID) error {
	event, err := s.ownedEvent(ctx, caller, id)
	if err != nil {
		return err
	}

	if err = s.events.Delete(ctx, id); err != nil {
		return fmt.Errorf("events.Delete: %w", err)
	}

	logger(ctx).Info("event deleted", slog.String(logx.FieldEventID, id.String()))

	s.views.Invalidate(ctx, event)

	return nil
}

// ToggleEventActive открывает или закрывает публичную страницу события.
func (s *Service) ToggleEventActive(ctx context.Context, caller value.UserID, id value.EventID) (entity.Event, error) {
	event, err := s.ownedEvent(ctx, caller, id)
	if err != nil {
		return entity.Event{}, err
	}

	event.IsActive = !event.IsActive
	event.UpdatedAt = s.now()

	if err = s.events.SetActive(ctx, id, event.IsActive, event.UpdatedAt); err != nil {
		return entity.Event{}, fmt.Errorf("events.SetActive: %w", err)
	}

	s.views.Invalidate(ctx, event)

	return event, nil
}

// AddGift добавляет подарок в конец списка. Лимит проверяется хранилищем под блокировкой события.
func (s *Service) AddGift(
	ctx context.Context,
	caller value.UserID,
	eventID value.EventID,
	in entity.GiftInput,
) (entity.Gift, error) {
	event, err := s.ownedEvent(ctx, caller, eventID)
	if err != nil {
		return entity.Gift{}, err
	}

	now := s.now()

	gift := entity.Gift{
		ID:        value.NewGiftID(),
		EventID:   eventID,
		Name:      in.Name,
		Link:      in.Link,
		Price:     in.Price,
		Image:     in.Image,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err = ValidateGift(gift); err != nil {
		return entity.Gift{}, err
	}

	gift, err = s.gifts.AddWithinCap(ctx, gift)
	if err != nil {
		return entity.Gift{}, fmt.Errorf("gifts.AddWithinCap: %w", err)
	}

	s.views.Invalidate(ctx, event)

	return gift, nil
}

func (s *Service) UpdateGift(
	ctx context.Context,
	caller value.UserID,
	id value.GiftID,
	patch entity.GiftPatch,
) (entity.Gift, error) {
	gc, err := s.ownedGift(ctx, caller, id)
	if err != nil {
		return entity.Gift{}, err
	}

	gift := patch.Apply(gc.Gift)
	gift.UpdatedAt = s.now()

	if err = ValidateGift(gift); err != nil {
		return entity.Gift{}, err
	}

	if err = s.gifts.Update(ctx, gift); err != nil {
		return entity.Gift{}, fmt.Errorf("gifts.Update: %w", err)
	}

	s.views.Invalidate(ctx, gc.Event)

	return gift, nil
}

func (s *Service) DeleteGift(ctx context.Context, caller value.UserID, id value.GiftID) error {
	gc, err := s.ownedGift(ctx, caller, id)
	if err != nil {
		return err
	}

	if err = s.gifts.Delete(ctx, id); err != nil {
		return fmt.Errorf("gifts.Delete: %w", err)
	}

	s.views.Invalidate(ctx, gc.Event)

	return nil
}

func (s *Service) ownedEvent(ctx context.Context, caller value.UserID, id value.EventID) (entity.Event, error) {
	if err := requireUser(caller); err != nil {
		return entity.Event{}, err
	}

	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return entity.Event{}, fmt.Errorf("events.GetByID: %w", err)
	}

	if !event.OwnedBy(caller) {
		return entity.Event{}, domain.NewError(errcodes.EventNotFound, "Event not found")
	}

	return event, nil
}

func (s *Service) ownedGift(ctx context.Context, caller value.UserID, id value.GiftID) (entity.GiftContext, error) {
	if err := requireUser(caller); err != nil {
		return entity.GiftContext{}, err
	}

	gc, err := s.gifts.GetContext(ctx, id)
	if err != nil {
		return entity.GiftContext{}, fmt.Errorf("gifts.GetContext: %w", err)
	}

	if !gc.Event.OwnedBy(caller) {
		return entity.GiftContext{}, domain.NewError(errcodes.GiftNotFound, "Gift not found")
	}

	return gc, nil
}

func requireUser(caller value.UserID) error {
	if caller.IsZero() {
		return domain.NewError(errcodes.Unauthenticated, "Unauthorized")
	}

	return nil
}
