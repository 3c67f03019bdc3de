package claim_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"wishly/internal/domain"
	"wishly/internal/domain/entity"
	"wishly/internal/domain/service/claim"
	"wishly/internal/domain/value"
	"wishly/pkg/errcodes"
)

// memStore хранит подарки и брони в памяти и, как Postgres, допускает одну бронь на подарок.
type memStore struct {
	mu      sync.Mutex
	gifts   map[value.GiftID]entity.GiftContext
	claims  map[value.GiftID]entity.Claim
	users   map[value.UserID]entity.User
	barrier *sync.WaitGroup
}

func newMemStore() *memStore {
	return &memStore{
		gifts:  map[value.GiftID]entity.GiftContext{},
		claims: map[value.GiftID]entity.Claim{},
		users:  map[value.UserID]entity.User{},
	}
}

func (m *memStore) GetContext(_ context.Context, id value.GiftID) (entity.GiftContext, error) {
	m.mu.Lock()
	gc, ok := m.gifts[id]
	m.mu.Unlock()

	if m.barrier != nil {
		m.barrier.Done()
		m.barrier.Wait()
	}

	if !ok {
		return entity.GiftContext{}, domain.NewError(errcodes.GiftNotFound, "Gift not found")
	}

	return gc, nil
}

func (m *memStore) Claim(_ context.Context, c entity.Claim) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.claims[c.GiftID]; ok {
		return domain.NewError(errcodes.AlreadyClaimedRace, "This gift was just claimed by someone else")
	}

	m.claims[c.GiftID] = c
	m.setClaimed(c.GiftID, true)

	return nil
}

func (m *memStore) Release(_ context.Context, giftID value.GiftID, userID value.UserID, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.claims[giftID]
	if !ok || c.UserID != userID {
		return domain.NewError(errcodes.ClaimNotFound, "Claim not found")
	}

	delete(m.claims, giftID)
	m.setClaimed(giftID, false)

	return nil
}

func (m *memStore) GetByID(_ context.Context, id value.UserID) (entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return entity.User{}, domain.NewError(errcodes.UserNotFound, "User not found")
	}

	return u, nil
}

func (m *memStore) setClaimed(id value.GiftID, claimed bool) {
	gc := m.gifts[id]
	gc.Gift.IsClaimed = claimed
	m.gifts[id] = gc
}

// consistent проверяет, что флаг is_claimed совпадает с наличием брони.
func (m *memStore) consistent(id value.GiftID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, hasClaim := m.claims[id]

	return m.gifts[id].Gift.IsClaimed == hasClaim
}

func (m *memStore) claimOf(id value.GiftID) (entity.Claim, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.claims[id]

	return c, ok
}

type fakeTasks struct {
	mu            sync.Mutex
	notifications []entity.NewNotification
	hostEmails    []entity.GiftClaimedEmail
	guestEmails   []entity.ClaimConfirmationEmail
	failNotify    bool
	failHostEmail bool
}

func (f *fakeTasks) EnqueueNotification(_ context.Context, n entity.NewNotification) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failNotify {
		return errors.New("redis: connection refused")
	}

	f.notifications = append(f.notifications, n)

	return nil
}

func (f *fakeTasks) EnqueueGiftClaimedEmail(_ context.Context, e entity.GiftClaimedEmail) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failHostEmail {
		return errors.New("redis: connection refused")
	}

	f.hostEmails = append(f.hostEmails, e)

	return nil
}

func (f *fakeTasks) EnqueueClaimConfirmationEmail(_ context.Context, e entity.ClaimConfirmationEmail) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.guestEmails = append(f.guestEmails, e)

	return nil
}

type fakeViews struct {
	mu     sync.Mutex
	events []value.EventID
}

func (f *fakeViews) Invalidate(_ context.Context, event entity.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.events = append(f.events, event.ID)
}

type fixture struct {
	store   *memStore
	tasks   *fakeTasks
	views   *fakeViews
	service *claim.Service

	host   entity.User
	guestA entity.User
	guestB entity.User
	event  entity.Event
	gift   entity.Gift
}

func newFixture() *fixture {
	f := &fixture{
		store: newMemStore(),
		tasks: &fakeTasks{},
		views: &fakeViews{},
		host:  entity.User{ID: value.UserID(uuid.New()), Name: "Riya", Email: "riya@example.com"},
		guestA: entity.User{
			ID:    value.UserID(uuid.New()),
			Name:  "Asha",
			Email: "asha@example.com",
		},
		guestB: entity.User{ID: value.UserID(uuid.New()), Name: "Vikram"},
	}

	f.event = entity.Event{
		ID:       value.NewEventID(),
		HostID:   f.host.ID,
		Title:    "Riya turns 30",
		Type:     value.EventTypeBirthday,
		Slug:     "aB3dE5gH",
		IsActive: true,
	}
	f.gift = entity.Gift{
		ID:      value.NewGiftID(),
		EventID: f.event.ID,
		Name:    "Kindle Paperwhite",
		Link:    "https://www.amazon.in/dp/B0CFPJYX7P",
		Price:   1099900,
	}

	f.store.gifts[f.gift.ID] = entity.GiftContext{Gift: f.gift, Event: f.event, Host: f.host}

	for _, u := range []entity.User{f.host, f.guestA, f.guestB} {
		f.store.users[u.ID] = u
	}

	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	f.service = claim.NewService(f.store, f.store, f.store, f.tasks, f.views, "https://wishly.app").
		WithClock(func() time.Time { return now })

	return f
}

func TestAttemptClaimSuccess(t *testing.T) {
	rq := require.New(t)
	f := newFixture()

	err := f.service.AttemptClaim(context.Background(), f.guestA.ID, f.gift.ID, "See you at the party")
	rq.NoError(err)

	c, ok := f.store.claimOf(f.gift.ID)
	rq.True(ok)
	rq.Equal(f.guestA.ID, c.UserID)
	rq.Equal("See you at the party", c.Message)
	rq.True(f.store.consistent(f.gift.ID))

	rq.Len(f.tasks.notifications, 1)
	n := f.tasks.notifications[0]
	rq.Equal(f.host.ID, n.UserID)
	rq.Equal(value.NotificationTypeClaim, n.Type)
	rq.Equal("Kindle Paperwhite was claimed!", n.Title)
	rq.Equal("Asha claimed Kindle Paperwhite from Riya turns 30", n.Message)
	rq.Equal(map[string]string{"eventId": f.event.ID.String(), "giftId": f.gift.ID.String()}, n.Metadata)

	rq.Equal([]entity.GiftClaimedEmail{{
		HostEmail:    "riya@example.com",
		HostName:     "Riya",
		GiftName:     "Kindle Paperwhite",
		ClaimerName:  "Asha",
		EventTitle:   "Riya turns 30",
		DashboardURL: "https://wishly.app/events/" + f.event.ID.String(),
		Message:      "See you at the party",
	}}, f.tasks.hostEmails)

	rq.Equal([]entity.ClaimConfirmationEmail{{
		GuestEmail: "asha@example.com",
		GuestName:  "Asha",
		GiftName:   "Kindle Paperwhite",
		EventTitle: "Riya turns 30",
		GiftLink:   "https://www.amazon.in/dp/B0CFPJYX7P",
		Price:      1099900,
	}}, f.tasks.guestEmails)

	rq.Equal([]value.EventID{f.event.ID}, f.views.events)
}

func TestAttemptClaimWithoutEmails(t *testing.T) {
	rq := require.New(t)
	f := newFixture()

	host := f.host
	host.Email = ""
	host.Name = ""
	gc := f.store.gifts[f.gift.ID]
	gc.Host = host
	f.store.gifts[f.gift.ID] = gc

	claimer := f.guestB
	claimer.Name = ""
	f.store.users[claimer.ID] = claimer

	rq.NoError(f.service.AttemptClaim(context.Background(), claimer.ID, f.gift.ID, ""))

	rq.Len(f.tasks.notifications, 1)
	rq.Equal("Someone claimed Kindle Paperwhite from Riya turns 30", f.tasks.notifications[0].Message)
	rq.Empty(f.tasks.hostEmails)
	rq.Empty(f.tasks.guestEmails)
}

func TestAttemptClaimPreconditions(t *testing.T) {
	testCases := []struct {
		name     string
		prepare  func(f *fixture)
		caller   func(f *fixture) value.UserID
		giftID   func(f *fixture) value.GiftID
		message  string
		wantCode errcodes.ErrorCode
	}{
		{
			name:     "Anonymous caller",
			caller:   func(*fixture) value.UserID { return value.UserID{} },
			wantCode: errcodes.Unauthenticated,
		},
		{
			name:     "Unknown gift",
			giftID:   func(*fixture) value.GiftID { return value.NewGiftID() },
			wantCode: errcodes.GiftNotFound,
		},
		{
			name:     "Host claims own gift",
			caller:   func(f *fixture) value.UserID { return f.host.ID },
			wantCode: errcodes.SelfClaimDenied,
		},
		{
			name: "Host claims own gift that is already claimed",
			prepare: func(f *fixture) {
				_ = f.service.AttemptClaim(context.Background(), f.guestA.ID, f.gift.ID, "")
			},
			caller:   func(f *fixture) value.UserID { return f.host.ID },
			wantCode: errcodes.SelfClaimDenied,
		},
		{
			name: "Gift already claimed",
			prepare: func(f *fixture) {
				_ = f.service.AttemptClaim(context.Background(), f.guestA.ID, f.gift.ID, "")
			},
			caller:   func(f *fixture) value.UserID { return f.guestB.ID },
			wantCode: errcodes.AlreadyClaimed,
		},
		{
			name:     "Message too long",
			message:  strings.Repeat("щ", entity.MaxClaimMessageLength+1),
			wantCode: errcodes.ValidationError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)
			f := newFixture()

			if tc.prepare != nil {
				tc.prepare(f)
			}

			before, claimedBefore := f.store.claimOf(f.gift.ID)
			notificationsBefore := len(f.tasks.notifications)
			emailsBefore := len(f.tasks.hostEmails) + len(f.tasks.guestEmails)

			caller := f.guestA.ID
			if tc.caller != nil {
				caller = tc.caller(f)
			}

			giftID := f.gift.ID
			if tc.giftID != nil {
				giftID = tc.giftID(f)
			}

			err := f.service.AttemptClaim(context.Background(), caller, giftID, tc.message)
			rq.Error(err)
			rq.True(domain.HasCode(err, tc.wantCode), "got %v", err)

			after, claimedAfter := f.store.claimOf(f.gift.ID)
			rq.Equal(claimedBefore, claimedAfter)
			rq.Equal(before, after)
			rq.True(f.store.consistent(f.gift.ID))
			rq.Len(f.tasks.notifications, notificationsBefore)
			rq.Equal(emailsBefore, len(f.tasks.hostEmails)+len(f.tasks.guestEmails))
		})
	}
}

func TestAttemptClaimMessageAtLimit(t *testing.T) {
	rq := require.New(t)
	f := newFixture()

	msg := strings.Repeat("щ", entity.MaxClaimMessageLength)

	rq.NoError(f.service.AttemptClaim(context.Background(), f.guestA.ID, f.gift.ID, msg))
}

func TestAttemptClaimSimultaneous(t *testing.T) {
	rq := require.New(t)
	f := newFixture()

	// Оба вызова проходят проверку is_claimed до того, как кто-либо зафиксирует бронь.
	f.store.barrier = &sync.WaitGroup{}
	f.store.barrier.Add(2)

	callers := []value.UserID{f.guestA.ID, f.guestB.ID}
	errs := make([]error, len(callers))

	var wg sync.WaitGroup

	for i, caller := range callers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			errs[i] = f.service.AttemptClaim(context.Background(), caller, f.gift.ID, "")
		}()
	}

	wg.Wait()

	var won, lost int

	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case domain.HasCode(err, errcodes.AlreadyClaimedRace):
			lost++
		default:
			rq.FailNow("unexpected error", err.Error())
		}
	}

	rq.Equal(1, won)
	rq.Equal(1, lost)
	rq.True(f.store.consistent(f.gift.ID))
	rq.Len(f.tasks.notifications, 1)
}

func TestAttemptClaimConcurrentUniqueness(t *testing.T) {
	rq := require.New(t)
	f := newFixture()

	const claimants = 32

	callers := make([]value.UserID, claimants)

	for i := range callers {
		u := entity.User{ID: value.UserID(uuid.New())}
		f.store.users[u.ID] = u
		callers[i] = u.ID
	}

	errs := make(chan error, claimants)

	var wg sync.WaitGroup

	for _, caller := range callers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			errs <- f.service.AttemptClaim(context.Background(), caller, f.gift.ID, "")
		}()
	}

	wg.Wait()
	close(errs)

	success := 0

	for err := range errs {
		if err == nil {
			success++
			continue
		}

		rq.True(
			domain.HasCode(err, errcodes.AlreadyClaimed) || domain.HasCode(err, errcodes.AlreadyClaimedRace),
			"got %v", err,
		)
	}

	rq.Equal(1, success)
	rq.True(f.store.consistent(f.gift.ID))
}

func TestAttemptClaimSideEffectFailures(t *testing.T) {
	rq := require.New(t)
	f := newFixture()
	f.tasks.failNotify = true
	f.tasks.failHostEmail = true

	rq.NoError(f.service.AttemptClaim(context.Background(), f.guestA.ID, f.gift.ID, ""))

	_, ok := f.store.claimOf(f.gift.ID)
	rq.True(ok)
	rq.True(f.store.consistent(f.gift.ID))
	rq.Len(f.tasks.guestEmails, 1)
	rq.Equal([]value.EventID{f.event.ID}, f.views.events)
}

func TestReleaseClaim(t *testing.T) {
	testCases := []struct {
		name     string
		claimBy  func(f *fixture) value.UserID
		caller   func(f *fixture) value.UserID
		giftID   func(f *fixture) value.GiftID
		wantCode errcodes.ErrorCode
	}{
		{
			name:    "Claimant releases",
			claimBy: func(f *fixture) value.UserID { return f.guestA.ID },
			caller:  func(f *fixture) value.UserID { return f.guestA.ID },
		},
		{
			name:     "Another guest cannot release",
			claimBy:  func(f *fixture) value.UserID { return f.guestA.ID },
			caller:   func(f *fixture) value.UserID { return f.guestB.ID },
			wantCode: errcodes.ClaimNotFound,
		},
		{
			name:     "Nothing to release",
			caller:   func(f *fixture) value.UserID { return f.guestA.ID },
			wantCode: errcodes.ClaimNotFound,
		},
		{
			name:     "Unknown gift",
			caller:   func(f *fixture) value.UserID { return f.guestA.ID },
			giftID:   func(*fixture) value.GiftID { return value.NewGiftID() },
			wantCode: errcodes.ClaimNotFound,
		},
		{
			name:     "Anonymous caller",
			claimBy:  func(f *fixture) value.UserID { return f.guestA.ID },
			caller:   func(*fixture) value.UserID { return value.UserID{} },
			wantCode: errcodes.Unauthenticated,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)
			f := newFixture()

			if tc.claimBy != nil {
				rq.NoError(f.service.AttemptClaim(context.Background(), tc.claimBy(f), f.gift.ID, ""))
			}

			before, claimedBefore := f.store.claimOf(f.gift.ID)
			invalidations := len(f.views.events)
			notifications := len(f.tasks.notifications)

			giftID := f.gift.ID
			if tc.giftID != nil {
				giftID = tc.giftID(f)
			}

			err := f.service.ReleaseClaim(context.Background(), tc.caller(f), giftID)

			if tc.wantCode != "" {
				rq.True(domain.HasCode(err, tc.wantCode), "got %v", err)

				after, claimedAfter := f.store.claimOf(f.gift.ID)
				rq.Equal(claimedBefore, claimedAfter)
				rq.Equal(before, after)
				rq.Len(f.views.events, invalidations)
			} else {
				rq.NoError(err)

				_, ok := f.store.claimOf(f.gift.ID)
				rq.False(ok)
				rq.Len(f.views.events, invalidations+1)
			}

			rq.True(f.store.consistent(f.gift.ID))
			rq.Len(f.tasks.notifications, notifications)
		})
	}
}
