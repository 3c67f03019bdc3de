package entity

import (
	"time"

	"wishly/internal/domain/value"
)

// MaxGiftsPerEvent ограничение на количество подарков в одном событии.
const MaxGiftsPerEvent = 20

type Event struct {
	ID             value.EventID   `json:"id"`
	HostID         value.UserID    `json:"hostId"`
	Title          string          `json:"title"`
	Type           value.EventType `json:"type"`
	CustomTypeName string          `json:"customTypeName,omitempty"`
	Slug           value.Slug      `json:"slug"`
	Description    string          `json:"description,omitempty"`
	EventDate      *time.Time      `json:"eventDate,omitempty"`
	CoverImage     string          `json:"coverImage,omitempty"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func (e Event) OwnedBy(userID value.UserID) bool {
	return e.HostID == userID
}

// EventInput данные формы создания события.
type EventInput struct {
	Title          string
	Type           value.EventType
	CustomTypeName string
	Description    string
	EventDate      *time.Time
	CoverImage     string
}

// EventPatch частичное обновление: nil означает "не менять".
type EventPatch struct {
	Title          *string
	Type           *value.EventType
	CustomTypeName *string
	Description    *string
	EventDate      *time.Time
	CoverImage     *string
}

// Apply возвращает копию события с применёнными изменениями.
func (p EventPatch) Apply(e Event) Event {
	if p.Title != nil {
		e.Title = *p.Title
	}

	if p.Type != nil {
		e.Type = *p.Type
	}

	if p.CustomTypeName != nil {
		e.CustomTypeName = *p.CustomTypeName
	}

	if p.Description != nil {
		e.Description = *p.Description
	}

	if p.EventDate != nil {
		e.EventDate = p.EventDate
	}

	if p.CoverImage != nil {
		e.CoverImage = *p.CoverImage
	}

	return e
}
