package persistence

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"

	"wishly/internal/domain/entity"
	"wishly/internal/domain/value"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

// Внутренние структуры для маппинга строк БД.

type userSchema struct {
	ID    uuid.UUID      `db:"id"`
	Name  string         `db:"name"`
	Email string         `db:"email"`
	Image sql.NullString `db:"image"`
}

func (s userSchema) toDomain() entity.User {
	return entity.User{
		ID:    value.UserID(s.ID),
		Name:  s.Name,
		Email: s.Email,
		Image: s.Image.String,
	}
}

type sessionSchema struct {
	UserID  uuid.UUID `db:"user_id"`
	Expires time.Time `db:"expires"`
}

func (s sessionSchema) toDomain() entity.Session {
	return entity.Session{
		UserID:  value.UserID(s.UserID),
		Expires: s.Expires,
	}
}

type eventSchema struct {
	ID             uuid.UUID      `db:"id"`
	UserID         uuid.UUID      `db:"user_id"`
	Title          string         `db:"title"`
	Type           string         `db:"type"`
	CustomTypeName sql.NullString `db:"custom_type_name"`
	Slug           string         `db:"slug"`
	Description    sql.NullString `db:"description"`
	EventDate      sql.NullTime   `db:"event_date"`
	CoverImage     sql.NullString `db:"cover_image"`
	IsActive       bool           `db:"is_active"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func fromEvent(e entity.Event) eventSchema {
	return eventSchema{
		ID:             uuid.UUID(e.ID),
		UserID:         uuid.UUID(e.HostID),
		Title:          e.Title,
		Type:           e.Type.String(),
		CustomTypeName: nullString(e.CustomTypeName),
		Slug:           e.Slug.String(),
		Description:    nullString(e.Description),
		EventDate:      nullTime(e.EventDate),
		CoverImage:     nullString(e.CoverImage),
		IsActive:       e.IsActive,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func (s eventSchema) toDomain() entity.Event {
	var eventDate *time.Time
	if s.EventDate.Valid {
		eventDate = lo.ToPtr(s.EventDate.Time)
	}

	return entity.Event{
		ID:             value.EventID(s.ID),
		HostID:         value.UserID(s.UserID),
		Title:          s.Title,
		Type:           value.EventType(s.Type),
		CustomTypeName: s.CustomTypeName.String,
		Slug:           value.Slug(s.Slug),
		Description:    s.Description.String,
		EventDate:      eventDate,
		CoverImage:     s.CoverImage.String,
		IsActive:       s.IsActive,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// dashboardEventSchema событие со счётчиками подарков.
type dashboardEventSchema struct {
	eventSchema
	GiftCount    int `db:"gift_count"`
	ClaimedCount int `db:"claimed_count"`
}

type giftSchema struct {
	ID        uuid.UUID      `db:"id"`
	EventID   uuid.UUID      `db:"event_id"`
	Name      string         `db:"name"`
	Link      sql.NullString `db:"link"`
	Price     sql.NullInt64  `db:"price"`
	Image     sql.NullString `db:"image"`
	Notes     sql.NullString `db:"notes"`
	Priority  int            `db:"priority"`
	IsClaimed bool           `db:"is_claimed"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func fromGift(g entity.Gift) giftSchema {
	return giftSchema{
		ID:        uuid.UUID(g.ID),
		EventID:   uuid.UUID(g.EventID),
		Name:      g.Name,
		Link:      nullString(g.Link),
		Price:     nullPaisa(g.Price),
		Image:     nullString(g.Image),
		Notes:     nullString(g.Notes),
		Priority:  g.Priority,
		IsClaimed: g.IsClaimed,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func (s giftSchema) toDomain() entity.Gift {
	return entity.Gift{
		ID:        value.GiftID(s.ID),
		EventID:   value.EventID(s.EventID),
		Name:      s.Name,
		Link:      s.Link.String,
		Price:     value.Paisa(s.Price.Int64),
		Image:     s.Image.String,
		Notes:     s.Notes.String,
		Priority:  s.Priority,
		IsClaimed: s.IsClaimed,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// giftContextSchema строка gifts JOIN events JOIN users (хост).
type giftContextSchema struct {
	giftSchema
	Event     eventSchema    `db:"event"`
	HostName  string         `db:"host_name"`
	HostEmail string         `db:"host_email"`
	HostImage sql.NullString `db:"host_image"`
}

func (s giftContextSchema) toDomain() entity.GiftContext {
	event := s.Event.toDomain()

	return entity.GiftContext{
		Gift:  s.giftSchema.toDomain(),
		Event: event,
		Host: entity.User{
			ID:    event.HostID,
			Name:  s.HostName,
			Email: s.HostEmail,
			Image: s.HostImage.String,
		},
	}
}

// giftViewSchema подарок с (возможной) бронью и данными бронирующего.
type giftViewSchema struct {
	giftSchema
	ClaimUserID  uuid.NullUUID  `db:"claim_user_id"`
	ClaimMessage sql.NullString `db:"claim_message"`
	ClaimerName  sql.NullString `db:"claimer_name"`
	ClaimerImage sql.NullString `db:"claimer_image"`
}

func (s giftViewSchema) toDomain() entity.GiftView {
	view := entity.GiftView{Gift: s.giftSchema.toDomain()}

	if s.ClaimUserID.Valid {
		view.Claim = &entity.GiftClaimView{
			User: entity.PublicUser{
				ID:    value.UserID(s.ClaimUserID.UUID),
				Name:  s.ClaimerName.String,
				Image: s.ClaimerImage.String,
			},
			Message: s.ClaimMessage.String,
		}
	}

	return view
}

type notificationSchema struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Type      string    `db:"type"`
	Title     string    `db:"title"`
	Message   string    `db:"message"`
	IsRead    bool      `db:"is_read"`
	Metadata  []byte    `db:"metadata"`
	CreatedAt time.Time `db:"created_at"`
}

func (s notificationSchema) toDomain() (entity.Notification, error) {
	var metadata map[string]string

	if len(s.Metadata) > 0 {
		if err := json.Unmarshal(s.Metadata, &metadata); err != nil {
			return entity.Notification{}, err
		}
	}

	return entity.Notification{
		ID:        value.NotificationID(s.ID),
		UserID:    value.UserID(s.UserID),
		Type:      value.NotificationType(s.Type),
		Title:     s.Title,
		Message:   s.Message,
		IsRead:    s.IsRead,
		Metadata:  metadata,
		CreatedAt: s.CreatedAt,
	}, nil
}

type suggestionSchema struct {
	ID        uuid.UUID      `db:"id"`
	EventID   uuid.UUID      `db:"event_id"`
	UserID    uuid.UUID      `db:"user_id"`
	Name      string         `db:"name"`
	Link      sql.NullString `db:"link"`
	Price     sql.NullInt64  `db:"price"`
	Notes     sql.NullString `db:"notes"`
	Status    string         `db:"status"`
	CreatedAt time.Time      `db:"created_at"`
}

func fromSuggestion(s entity.Suggestion) suggestionSchema {
	return suggestionSchema{
		ID:        uuid.UUID(s.ID),
		EventID:   uuid.UUID(s.EventID),
		UserID:    uuid.UUID(s.UserID),
		Name:      s.Name,
		Link:      nullString(s.Link),
		Price:     nullPaisa(s.Price),
		Notes:     nullString(s.Notes),
		Status:    s.Status.String(),
		CreatedAt: s.CreatedAt,
	}
}

func (s suggestionSchema) toDomain() entity.Suggestion {
	return entity.Suggestion{
		ID:        value.SuggestionID(s.ID),
		EventID:   value.EventID(s.EventID),
		UserID:    value.UserID(s.UserID),
		Name:      s.Name,
		Link:      s.Link.String,
		Price:     value.Paisa(s.Price.Int64),
		Notes:     s.Notes.String,
		Status:    value.SuggestionStatus(s.Status),
		CreatedAt: s.CreatedAt,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullPaisa(p value.Paisa) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(p), Valid: p > 0}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}

	return sql.NullTime{Time: *t, Valid: true}
}
