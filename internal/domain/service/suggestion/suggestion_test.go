package suggestion_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"wishly/internal/domain"
	"wishly/internal/domain/entity"
	"wishly/internal/domain/service/suggestion"
	"wishly/internal/domain/value"
	"wishly/pkg/errcodes"
)

type memRepo struct {
	items     map[value.SuggestionID]entity.Suggestion
	gifts     []entity.Gift
	giftLimit int
}

func (m *memRepo) Create(_ context.Context, s entity.Suggestion) error {
	m.items[s.ID] = s
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id value.SuggestionID) (entity.Suggestion, error) {
	s, ok := m.items[id]
	if !ok {
		return entity.Suggestion{}, domain.NewError(errcodes.SuggestionNotFound, "Suggestion not found")
	}

	return s, nil
}

func (m *memRepo) ListByEvent(_ context.Context, eventID value.EventID) ([]entity.Suggestion, error) {
	var out []entity.Suggestion

	for _, s := range m.items {
		if s.EventID == eventID {
			out = append(out, s)
		}
	}

	return out, nil
}

func (m *memRepo) Approve(_ context.Context, id value.SuggestionID, gift entity.Gift) (entity.Gift, error) {
	if len(m.gifts) >= m.giftLimit {
		return entity.Gift{}, domain.NewError(errcodes.GiftLimitReached, "Maximum 20 gifts per event")
	}

	s := m.items[id]
	s.Status = value.SuggestionStatusApproved
	m.items[id] = s

	gift.Priority = len(m.gifts)
	m.gifts = append(m.gifts, gift)

	return gift, nil
}

func (m *memRepo) Ignore(_ context.Context, id value.SuggestionID) error {
	s := m.items[id]
	s.Status = value.SuggestionStatusIgnored
	m.items[id] = s

	return nil
}

type memEvents map[value.EventID]entity.Event

func (m memEvents) GetByID(_ context.Context, id value.EventID) (entity.Event, error) {
	e, ok := m[id]
	if !ok {
		return entity.Event{}, domain.NewError(errcodes.EventNotFound, "Event not found")
	}

	return e, nil
}

func (m memEvents) GetBySlug(_ context.Context, slug value.Slug) (entity.Event, error) {
	for _, e := range m {
		if e.Slug == slug {
			return e, nil
		}
	}

	return entity.Event{}, domain.NewError(errcodes.EventNotFound, "Event not found")
}

type memUsers map[value.UserID]entity.User

func (m memUsers) GetByID(_ context.Context, id value.UserID) (entity.User, error) {
	u, ok := m[id]
	if !ok {
		return entity.User{}, domain.NewError(errcodes.UserNotFound, "User not found")
	}

	return u, nil
}

type fakeTasks struct {
	notifications []entity.NewNotification
}

func (f *fakeTasks) EnqueueNotification(_ context.Context, n entity.NewNotification) error {
	f.notifications = append(f.notifications, n)
	return nil
}

type fakeViews struct {
	events []value.EventID
}

func (f *fakeViews) Invalidate(_ context.Context, event entity.Event) {
	f.events = append(f.events, event.ID)
}

type fixture struct {
	repo    *memRepo
	tasks   *fakeTasks
	views   *fakeViews
	events  memEvents
	service *suggestion.Service
	host    value.UserID
	guest   value.UserID
	event   entity.Event
}

func newFixture() *fixture {
	f := &fixture{
		repo:   &memRepo{items: map[value.SuggestionID]entity.Suggestion{}, giftLimit: entity.MaxGiftsPerEvent},
		tasks:  &fakeTasks{},
		views:  &fakeViews{},
		events: memEvents{},
		host:   value.UserID(uuid.New()),
		guest:  value.UserID(uuid.New()),
	}

	f.event = entity.Event{
		ID:       value.NewEventID(),
		HostID:   f.host,
		Title:    "Housewarming at Indiranagar",
		Type:     value.EventTypeHousewarming,
		Slug:     "hW4rm1ng",
		IsActive: true,
	}
	f.events[f.event.ID] = f.event

	users := memUsers{
		f.host:  {ID: f.host, Name: "Riya"},
		f.guest: {ID: f.guest, Name: "Asha"},
	}

	f.service = suggestion.NewService(f.repo, f.events, users, f.tasks, f.views).
		WithClock(func() time.Time { return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC) })

	return f
}

func TestSuggest(t *testing.T) {
	rq := require.New(t)
	f := newFixture()

	s, err := f.service.Suggest(context.Background(), f.guest, f.event.Slug, entity.GiftInput{
		Name:  "French press",
		Price: value.FromRupees(1800),
	})
	rq.NoError(err)
	rq.Equal(value.SuggestionStatusPending, s.Status)
	rq.Equal(f.event.ID, s.EventID)
	rq.Contains(f.repo.items, s.ID)

	rq.Len(f.tasks.notifications, 1)
	n := f.tasks.notifications[0]
	rq.Equal(f.host, n.UserID)
	rq.Equal(value.NotificationTypeSuggestion, n.Type)
	rq.Equal("New gift suggestion", n.Title)
	rq.Equal("Asha suggested French press for Housewarming at Indiranagar", n.Message)
	rq.Equal(s.ID.String(), n.Metadata["suggestionId"])
}

func TestSuggestRejected(t *testing.T) {
	testCases := []struct {
		name     string
		caller   func(f *fixture) value.UserID
		prepare  func(f *fixture)
		slug     value.Slug
		in       entity.GiftInput
		wantCode errcodes.ErrorCode
	}{
		{
			name:     "Anonymous",
			caller:   func(*fixture) value.UserID { return value.UserID{} },
			wantCode: errcodes.Unauthenticated,
		},
		{
			name:     "Unknown slug",
			slug:     "nope0000",
			wantCode: errcodes.EventNotFound,
		},
		{
			name: "Inactive event",
			prepare: func(f *fixture) {
				e := f.events[f.event.ID]
				e.IsActive = false
				f.events[f.event.ID] = e
			},
			wantCode: errcodes.EventInactive,
		},
		{
			name:     "Host suggests to self",
			caller:   func(f *fixture) value.UserID { return f.host },
			wantCode: errcodes.SelfSuggestionDenied,
		},
		{
			name:     "Invalid link",
			in:       entity.GiftInput{Name: "French press", Link: "not a url"},
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

			caller := f.guest
			if tc.caller != nil {
				caller = tc.caller(f)
			}

			slug := f.event.Slug
			if tc.slug != "" {
				slug = tc.slug
			}

			in := tc.in
			if in.Name == "" {
				in.Name = "French press"
			}

			_, err := f.service.Suggest(context.Background(), caller, slug, in)
			rq.True(domain.HasCode(err, tc.wantCode), "got %v", err)
			rq.Empty(f.repo.items)
			rq.Empty(f.tasks.notifications)
		})
	}
}

func TestApprove(t *testing.T) {
	rq := require.New(t)
	f := newFixture()
	ctx := context.Background()

	s, err := f.service.Suggest(ctx, f.guest, f.event.Slug, entity.GiftInput{Name: "French press", Notes: "Bodum"})
	rq.NoError(err)

	_, err = f.service.Approve(ctx, f.guest, s.ID)
	rq.True(domain.HasCode(err, errcodes.SuggestionNotFound))

	gift, err := f.service.Approve(ctx, f.host, s.ID)
	rq.NoError(err)
	rq.Equal("French press", gift.Name)
	rq.Equal("Bodum", gift.Notes)
	rq.Equal(f.event.ID, gift.EventID)
	rq.Equal(value.SuggestionStatusApproved, f.repo.items[s.ID].Status)
	rq.Equal([]value.EventID{f.event.ID}, f.views.events)

	_, err = f.service.Approve(ctx, f.host, s.ID)
	rq.True(domain.HasCode(err, errcodes.SuggestionNotPending))

	err = f.service.Ignore(ctx, f.host, s.ID)
	rq.True(domain.HasCode(err, errcodes.SuggestionNotPending))
}

func TestApproveAtCap(t *testing.T) {
	rq := require.New(t)
	f := newFixture()
	f.repo.giftLimit = 0
	ctx := context.Background()

	s, err := f.service.Suggest(ctx, f.guest, f.event.Slug, entity.GiftInput{Name: "French press"})
	rq.NoError(err)

	_, err = f.service.Approve(ctx, f.host, s.ID)
	rq.True(domain.HasCode(err, errcodes.GiftLimitReached))
	rq.Equal(value.SuggestionStatusPending, f.repo.items[s.ID].Status)
	rq.Empty(f.views.events)
}

func TestListAndIgnore(t *testing.T) {
	rq := require.New(t)
	f := newFixture()
	ctx := context.Background()

	s, err := f.service.Suggest(ctx, f.guest, f.event.Slug, entity.GiftInput{Name: "French press"})
	rq.NoError(err)

	_, err = f.service.List(ctx, f.guest, f.event.ID)
	rq.True(domain.HasCode(err, errcodes.EventNotFound))

	list, err := f.service.List(ctx, f.host, f.event.ID)
	rq.NoError(err)
	rq.Len(list, 1)

	rq.NoError(f.service.Ignore(ctx, f.host, s.ID))
	rq.Equal(value.SuggestionStatusIgnored, f.repo.items[s.ID].Status)
}
