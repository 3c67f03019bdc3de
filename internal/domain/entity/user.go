package entity

import (
	"time"

	"wishly/internal/domain/value"
)

type User struct {
	ID    value.UserID `json:"id"`
	Name  string       `json:"name"`
	Email string       `json:"email,omitempty"`
	Image string       `json:"image,omitempty"`
}

// DisplayName возвращает имя пользователя или fallback, если имя пустое.
func (u User) DisplayName(fallback string) string {
	if u.Name == "" {
		return fallback
	}

	return u.Name
}

// PublicUser урезанная карточка пользователя для публичных страниц.
type PublicUser struct {
	ID    value.UserID `json:"id"`
	Name  string       `json:"name"`
	Image string       `json:"image,omitempty"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Image: u.Image,
	}
}

// Session действующая сессия провайдера входа.
type Session struct {
	UserID  value.UserID
	Expires time.Time
}
