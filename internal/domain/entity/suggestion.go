package entity

import (
	"time"

	"wishly/internal/domain/value"
)

type Suggestion struct {
	ID        value.SuggestionID     `json:"id"`
	EventID   value.EventID          `json:"eventId"`
	UserID    value.UserID           `json:"userId"`
	Name      string                 `json:"name"`
	Link      string                 `json:"link,omitempty"`
	Price     value.Paisa            `json:"price,omitempty"`
	Notes     string                 `json:"notes,omitempty"`
	Status    value.SuggestionStatus `json:"status"`
	CreatedAt time.Time              `json:"createdAt"`
}

func (s Suggestion) IsPending() bool {
	return s.Status == value.SuggestionStatusPending
}

// AsGiftInput превращает одобренное предложение в подарок.
func (s Suggestion) AsGiftInput() GiftInput {
	return GiftInput{
		Name:  s.Name,
		Link:  s.Link,
		Price: s.Price,
		Notes: s.Notes,
	}
}
