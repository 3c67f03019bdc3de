package view_test

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"wishly/internal/domain"
	"wishly/internal/domain/entity"
	"wishly/internal/domain/service/view"
	"wishly/internal/domain/value"
	"wishly/internal/infrastructure/viewcache"
	"wishly/pkg/errcodes"
)

type fakeRepo struct {
	event entity.Event
	gifts []entity.GiftView
	reads int
}

func (f *fakeRepo) GetByID(_ context.Context, id value.EventID) (entity.Event, error) {
	f.reads++

	if id != f.event.ID {
		return entity.Event{}, domain.NewError(errcodes.EventNotFound, "Event not found")
	}

	return f.event, nil
}

func (f *fakeRepo) GetBySlug(_ context.Context, slug value.Slug) (entity.Event, error) {
	f.reads++

	if slug != f.event.Slug {
		return entity.Event{}, domain.NewError(errcodes.EventNotFound, "Event not found")
	}

	return f.event, nil
}

func (f *fakeRepo) ListByHost(_ context.Context, hostID value.UserID) ([]entity.DashboardEvent, error) {
	f.reads++

	if hostID != f.event.HostID {
		return []entity.DashboardEvent{}, nil
	}

	return []entity.DashboardEvent{{Event: f.event, GiftCount: len(f.gifts), ClaimedCount: 1}}, nil
}

func (f *fakeRepo) ListForView(context.Context, value.EventID) ([]entity.GiftView, error) {
	return f.gifts, nil
}

// stallingGifts останавливает первую сборку после чтения подарков, пока тест не отпустит её.
type stallingGifts struct {
	*fakeRepo
	started chan struct{}
	release chan struct{}
}

func (s *stallingGifts) ListForView(context.Context, value.EventID) ([]entity.GiftView, error) {
	gifts := slices.Clone(s.fakeRepo.gifts)

	if s.started != nil {
		close(s.started)
		s.started = nil
		<-s.release
	}

	return gifts, nil
}

type fakeUsers struct {
	host entity.User
}

func (f fakeUsers) GetByID(context.Context, value.UserID) (entity.User, error) {
	return f.host, nil
}

func newFixture() (*fakeRepo, fakeUsers) {
	hostID := value.UserID(value.NewEventID())
	guestID := value.UserID(value.NewEventID())

	event := entity.Event{
		ID:       value.NewEventID(),
		HostID:   hostID,
		Title:    "Riya turns 30",
		Type:     value.EventTypeBirthday,
		Slug:     "riya30ab",
		IsActive: true,
	}

	repo := &fakeRepo{
		event: event,
		gifts: []entity.GiftView{
			{
				Gift: entity.Gift{ID: value.NewGiftID(), EventID: event.ID, Name: "Kindle", IsClaimed: true},
				Claim: &entity.GiftClaimView{
					User:    entity.PublicUser{ID: guestID, Name: "Asha"},
					Message: "Happy birthday!",
				},
			},
			{Gift: entity.Gift{ID: value.NewGiftID(), EventID: event.ID, Name: "Plant", Priority: 1}},
		},
	}

	return repo, fakeUsers{host: entity.User{ID: hostID, Name: "Riya", Email: "riya@example.com"}}
}

func TestPublicEventIsCachedUntilInvalidated(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repo, users := newFixture()
	svc := view.NewService(repo, repo, users, viewcache.NewLocal(), time.Minute)

	page, err := svc.PublicEvent(ctx, "riya30ab")
	rq.NoError(err)
	rq.Equal(2, page.GiftCount)
	rq.Equal(1, page.ClaimedCount)
	rq.Equal("Riya", page.Host.Name)
	rq.Equal("Asha", page.Gifts[0].Claim.User.Name)
	rq.Equal(1, repo.reads)

	page, err = svc.PublicEvent(ctx, "riya30ab")
	rq.NoError(err)
	rq.Equal("Happy birthday!", page.Gifts[0].Claim.Message)
	rq.Equal(1, repo.reads, "second read must be served from cache")

	svc.Invalidate(ctx, repo.event)

	_, err = svc.PublicEvent(ctx, "riya30ab")
	rq.NoError(err)
	rq.Equal(2, repo.reads)
}

func TestInvalidateDuringBuildIsNotCached(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repo, users := newFixture()
	gifts := &stallingGifts{
		fakeRepo: repo,
		started:  make(chan struct{}),
		release:  make(chan struct{}),
	}
	started := gifts.started

	svc := view.NewService(repo, gifts, users, viewcache.NewLocal(), time.Minute)

	type result struct {
		page entity.EventView
		err  error
	}

	done := make(chan result, 1)

	go func() {
		page, err := svc.PublicEvent(ctx, "riya30ab")
		done <- result{page: page, err: err}
	}()

	<-started

	// подарок забронирован, пока читатель собирает страницу из старых строк
	repo.gifts[1].Gift.IsClaimed = true
	svc.Invalidate(ctx, repo.event)
	close(gifts.release)

	stale := <-done
	rq.NoError(stale.err)
	rq.Equal(1, stale.page.ClaimedCount)

	page, err := svc.PublicEvent(ctx, "riya30ab")
	rq.NoError(err)
	rq.Equal(2, page.ClaimedCount)
	rq.True(page.Gifts[1].IsClaimed)
	rq.Equal(2, repo.reads)
}

func TestPublicEventInactive(t *testing.T) {
	rq := require.New(t)

	repo, users := newFixture()
	repo.event.IsActive = false

	svc := view.NewService(repo, repo, users, viewcache.NewLocal(), time.Minute)

	_, err := svc.PublicEvent(context.Background(), "riya30ab")
	rq.True(domain.HasCode(err, errcodes.EventInactive))

	_, err = svc.PublicEvent(context.Background(), "unknown0")
	rq.True(domain.HasCode(err, errcodes.EventNotFound))
}

func TestEventDetailOwnerOnly(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repo, users := newFixture()
	svc := view.NewService(repo, repo, users, viewcache.NewLocal(), time.Minute)

	page, err := svc.EventDetail(ctx, repo.event.HostID, repo.event.ID)
	rq.NoError(err)
	rq.Equal(repo.event.ID, page.Event.ID)

	_, err = svc.EventDetail(ctx, value.UserID(value.NewEventID()), repo.event.ID)
	rq.True(domain.HasCode(err, errcodes.EventNotFound))

	_, err = svc.EventDetail(ctx, value.UserID{}, repo.event.ID)
	rq.True(domain.HasCode(err, errcodes.Unauthenticated))
}

func TestDashboard(t *testing.T) {
	rq := require.New(t)

	repo, users := newFixture()
	svc := view.NewService(repo, repo, users, viewcache.NewLocal(), time.Minute)

	dashboard, err := svc.Dashboard(context.Background(), repo.event.HostID)
	rq.NoError(err)
	rq.Len(dashboard.Events, 1)
	rq.Equal(2, dashboard.Events[0].GiftCount)

	rq.Equal([]string{
		"/e/riya30ab",
		"/events/" + repo.event.ID.String(),
		"/dashboard/" + repo.event.HostID.String(),
	}, view.EventKeys(repo.event))
}
