package entity

import (
	"time"

	"wishly/internal/domain/value"
)

type Notification struct {
	ID        value.NotificationID   `json:"id"`
	UserID    value.UserID           `json:"userId"`
	Type      value.NotificationType `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	IsRead    bool                   `json:"isRead"`
	Metadata  map[string]string      `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}

// NewNotification запись для добавления в ленту получателя.
type NewNotification struct {
	UserID   value.UserID           `json:"userId"`
	Type     value.NotificationType `json:"type"`
	Title    string                 `json:"title"`
	Message  string                 `json:"message"`
	Metadata map[string]string      `json:"metadata,omitempty"`
}

// NotificationFeed ответ колокольчика: последние уведомления и счётчик непрочитанных.
type NotificationFeed struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unreadCount"`
}
