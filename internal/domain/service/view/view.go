package view

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	jsoniter "github.com/json-iterator/go"

	"wishly/internal/domain"
	"wishly/internal/domain/entity"
	"wishly/internal/domain/value"
	"wishly/pkg/contextx"
	"wishly/pkg/errcodes"
	"wishly/pkg/logx"
)

var (
	json   = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals
	logger = contextx.LoggerFromContextOrDefault          //nolint:gochecknoglobals
)

// Cache хранит представления под ключом с поколением. Bump переводит ключ на новое
// поколение, и записи, собранные до него, больше не читаются.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	Version(ctx context.Context, key string) (int64, error)
	Bump(ctx context.Context, keys ...string) error
}

type EventRepository interface {
	GetByID(ctx context.Context, id value.EventID) (entity.Event, error)
	GetBySlug(ctx context.Context, slug value.Slug) (entity.Event, error)
	ListByHost(ctx context.Context, hostID value.UserID) ([]entity.DashboardEvent, error)
}

type GiftRepository interface {
	ListForView(ctx context.Context, eventID value.EventID) ([]entity.GiftView, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id value.UserID) (entity.User, error)
}

// Service собирает read-модели страниц и кэширует их (cache-aside).
// Любая мутация обязана вызвать Invalidate для затронутого события.
type Service struct {
	events EventRepository
	gifts  GiftRepository
	users  UserRepository
	cache  Cache
	ttl    time.Duration
}

func NewService(
	events EventRepository,
	gifts GiftRepository,
	users UserRepository,
	cache Cache,
	ttl time.Duration,
) *Service {
	return &Service{
		events: events,
		gifts:  gifts,
		users:  users,
		cache:  cache,
		ttl:    ttl,
	}
}

// PublicEvent страница /e/<slug>, доступна без входа, только для активных событий.
func (s *Service) PublicEvent(ctx context.Context, slug value.Slug) (entity.EventView, error) {
	view, err := cached(ctx, s, viewPublicEvent, PublicEventKey(slug), func() (entity.EventView, error) {
		event, err := s.events.GetBySlug(ctx, slug)
		if err != nil {
			return entity.EventView{}, fmt.Errorf("events.GetBySlug: %w", err)
		}

		return s.buildEventView(ctx, event)
	})
	if err != nil {
		return entity.EventView{}, err
	}

	if !view.Event.IsActive {
		return entity.EventView{}, domain.NewError(errcodes.EventInactive, "This registry is no longer active")
	}

	return view, nil
}

// EventDetail страница события хоста /events/<id>.
func (s *Service) EventDetail(ctx context.Context, caller value.UserID, id value.EventID) (entity.EventView, error) {
	if caller.IsZero() {
		return entity.EventView{}, domain.NewError(errcodes.Unauthenticated, "Please sign in")
	}

	view, err := cached(ctx, s, viewEventDetail, EventDetailKey(id), func() (entity.EventView, error) {
		event, err := s.events.GetByID(ctx, id)
		if err != nil {
			return entity.EventView{}, fmt.Errorf("events.GetByID: %w", err)
		}

		return s.buildEventView(ctx, event)
	})
	if err != nil {
		return entity.EventView{}, err
	}

	if !view.Event.OwnedBy(caller) {
		return entity.EventView{}, domain.NewError(errcodes.EventNotFound, "Event not found")
	}

	return view, nil
}

// Dashboard список событий хоста, новые первыми.
func (s *Service) Dashboard(ctx context.Context, caller value.UserID) (entity.DashboardView, error) {
	if caller.IsZero() {
		return entity.DashboardView{}, domain.NewError(errcodes.Unauthenticated, "Please sign in")
	}

	return cached(ctx, s, viewDashboard, DashboardKey(caller), func() (entity.DashboardView, error) {
		events, err := s.events.ListByHost(ctx, caller)
		if err != nil {
			return entity.DashboardView{}, fmt.Errorf("events.ListByHost: %w", err)
		}

		return entity.DashboardView{Events: events}, nil
	})
}

// Invalidate сбрасывает публичную страницу, страницу события и дашборд хоста.
// Ошибка кэша только логируется: запись в БД уже зафиксирована.
func (s *Service) Invalidate(ctx context.Context, event entity.Event) {
	keys := EventKeys(event)

	if err := s.cache.Bump(ctx, keys...); err != nil {
		logger(ctx).Error("cache.Bump", logx.Error(err), slog.Any(logx.FieldCacheKey, keys))
	}
}

func (s *Service) buildEventView(ctx context.Context, event entity.Event) (entity.EventView, error) {
	host, err := s.users.GetByID(ctx, event.HostID)
	if err != nil {
		return entity.EventView{}, fmt.Errorf("users.GetByID: %w", err)
	}

	gifts, err := s.gifts.ListForView(ctx, event.ID)
	if err != nil {
		return entity.EventView{}, fmt.Errorf("gifts.ListForView: %w", err)
	}

	claimed := 0

	for _, g := range gifts {
		if g.IsClaimed {
			claimed++
		}
	}

	return entity.EventView{
		Event:        event,
		Host:         host.Public(),
		Gifts:        gifts,
		GiftCount:    len(gifts),
		ClaimedCount: claimed,
	}, nil
}

// cached читает представление из кэша или строит его и кладёт в кэш.
// Поколение ключа читается до сборки, поэтому сборка, пересекшаяся с Invalidate,
// попадает в уже неактуальное поколение. Недоступный кэш не ломает чтение.
func cached[T any](ctx context.Context, s *Service, viewName, key string, build func() (T, error)) (T, error) {
	version, err := s.cache.Version(ctx, key)
	if err != nil {
		cacheRequests.WithLabelValues(viewName, resultError).Inc()
		logger(ctx).Warn("cache.Version", logx.Error(err), slog.String(logx.FieldCacheKey, key))

		return build()
	}

	key = VersionedKey(key, version)

	payload, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		cacheRequests.WithLabelValues(viewName, resultError).Inc()
		logger(ctx).Warn("cache.Get", logx.Error(err), slog.String(logx.FieldCacheKey, key))
	}

	if ok {
		var v T

		if err = json.Unmarshal(payload, &v); err == nil {
			cacheRequests.WithLabelValues(viewName, resultHit).Inc()

			return v, nil
		}

		logger(ctx).Warn("json.Unmarshal cached view", logx.Error(err), slog.String(logx.FieldCacheKey, key))
	}

	cacheRequests.WithLabelValues(viewName, resultMiss).Inc()

	v, err := build()
	if err != nil {
		return v, err
	}

	if payload, err = json.Marshal(v); err != nil {
		logger(ctx).Warn("json.Marshal view", logx.Error(err), slog.String(logx.FieldCacheKey, key))

		return v, nil
	}

	if err = s.cache.Set(ctx, key, payload, s.ttl); err != nil {
		logger(ctx).Warn("cache.Set", logx.Error(err), slog.String(logx.FieldCacheKey, key))
	}

	return v, nil
}
