// Package rest типы запросов и ответов JSON API.
package rest

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке для отображения в UI
	Message string `json:"message"`

	// SupportID Идентификатор запроса для обращения в поддержку
	SupportID string `json:"supportId"`
}

// ErrorCode Код ошибки
type ErrorCode string

type Success struct {
	Success bool `json:"success"`
}

// ClaimRequest тело POST /v1/gifts/{id}/claim
type ClaimRequest struct {
	Message string `json:"message,omitempty"`
}

// CreateEventRequest тело POST /v1/events
type CreateEventRequest struct {
	Title          string `json:"title" validate:"required"`
	Type           string `json:"type" validate:"required"`
	CustomTypeName string `json:"customTypeName,omitempty"`
	Description    string `json:"description,omitempty"`
	// EventDate дата в формате 2006-01-02 или RFC 3339
	EventDate  string `json:"eventDate,omitempty"`
	CoverImage string `json:"coverImage,omitempty"`
}

// UpdateEventRequest тело PATCH /v1/events/{id}, отсутствующие поля не меняются
type UpdateEventRequest struct {
	Title          *string `json:"title,omitempty"`
	Type           *string `json:"type,omitempty"`
	CustomTypeName *string `json:"customTypeName,omitempty"`
	Description    *string `json:"description,omitempty"`
	EventDate      *string `json:"eventDate,omitempty"`
	CoverImage     *string `json:"coverImage,omitempty"`
}

// GiftRequest тело POST /v1/events/{id}/gifts и POST /v1/e/{slug}/suggestions.
// Цена в рупиях.
type GiftRequest struct {
	Name  string   `json:"name" validate:"required"`
	Link  string   `json:"link,omitempty"`
	Price *float64 `json:"price,omitempty"`
	Image string   `json:"image,omitempty"`
	Notes string   `json:"notes,omitempty"`
}

// UpdateGiftRequest тело PATCH /v1/gifts/{id}
type UpdateGiftRequest struct {
	Name  *string  `json:"name,omitempty"`
	Link  *string  `json:"link,omitempty"`
	Price *float64 `json:"price,omitempty"`
	Image *string  `json:"image,omitempty"`
	Notes *string  `json:"notes,omitempty"`
}
