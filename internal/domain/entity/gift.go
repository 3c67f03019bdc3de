package entity

import (
	"time"

	"wishly/internal/domain/value"
)

type Gift struct {
	ID        value.GiftID  `json:"id"`
	EventID   value.EventID `json:"eventId"`
	Name      string        `json:"name"`
	Link      string        `json:"link,omitempty"`
	Price     value.Paisa   `json:"price,omitempty"` // 0 означает "цена не указана"
	Image     string        `json:"image,omitempty"`
	Notes     string        `json:"notes,omitempty"`
	Priority  int           `json:"priority"`
	IsClaimed bool          `json:"isClaimed"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// GiftInput данные формы подарка; цена уже переведена в paisa.
type GiftInput struct {
	Name  string
	Link  string
	Price value.Paisa
	Image string
	Notes string
}

// GiftPatch частичное обновление подарка: nil означает "не менять".
type GiftPatch struct {
	Name  *string
	Link  *string
	Price *value.Paisa
	Image *string
	Notes *string
}

func (p GiftPatch) Apply(g Gift) Gift {
	if p.Name != nil {
		g.Name = *p.Name
	}

	if p.Link != nil {
		g.Link = *p.Link
	}

	if p.Price != nil {
		g.Price = *p.Price
	}

	if p.Image != nil {
		g.Image = *p.Image
	}

	if p.Notes != nil {
		g.Notes = *p.Notes
	}

	return g
}

// GiftContext подарок вместе с событием и хостом, всё что нужно для бронирования.
type GiftContext struct {
	Gift  Gift
	Event Event
	Host  User
}
