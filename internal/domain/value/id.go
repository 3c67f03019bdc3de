package value

import (
	"github.com/google/uuid"

	"wishly/internal/domain"
	"wishly/pkg/errcodes"
)

// Все идентификаторы хранятся в БД как uuid.

type UserID uuid.UUID

func (id UserID) String() string { return uuid.UUID(id).String() }

// IsZero сообщает, что вызывающий не аутентифицирован.
func (id UserID) IsZero() bool { return id == UserID(uuid.Nil) }

func ParseUserID(s string) (UserID, error) {
	id, err := parseUUID(s, errcodes.Unauthenticated, "Invalid user id")

	return UserID(id), err
}

type EventID uuid.UUID

func (id EventID) String() string { return uuid.UUID(id).String() }

func NewEventID() EventID { return EventID(uuid.New()) }

func ParseEventID(s string) (EventID, error) {
	id, err := parseUUID(s, errcodes.InvalidEventID, "Invalid event id")

	return EventID(id), err
}

type GiftID uuid.UUID

func (id GiftID) String() string { return uuid.UUID(id).String() }

func NewGiftID() GiftID { return GiftID(uuid.New()) }

func ParseGiftID(s string) (GiftID, error) {
	id, err := parseUUID(s, errcodes.InvalidGiftID, "Invalid gift id")

	return GiftID(id), err
}

type ClaimID uuid.UUID

func (id ClaimID) String() string { return uuid.UUID(id).String() }

func NewClaimID() ClaimID { return ClaimID(uuid.New()) }

type NotificationID uuid.UUID

func (id NotificationID) String() string { return uuid.UUID(id).String() }

func NewNotificationID() NotificationID { return NotificationID(uuid.New()) }

func ParseNotificationID(s string) (NotificationID, error) {
	id, err := parseUUID(s, errcodes.InvalidNotificationID, "Invalid notification id")

	return NotificationID(id), err
}

type SuggestionID uuid.UUID

func (id SuggestionID) String() string { return uuid.UUID(id).String() }

func NewSuggestionID() SuggestionID { return SuggestionID(uuid.New()) }

func ParseSuggestionID(s string) (SuggestionID, error) {
	id, err := parseUUID(s, errcodes.InvalidSuggestionID, "Invalid suggestion id")

	return SuggestionID(id), err
}

func parseUUID(s string, code errcodes.ErrorCode, message string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, domain.WrapError(err, code, message)
	}

	return id, nil
}

// Текстовое представление нужно для JSON (кэш представлений, payload задач).

func (id UserID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *UserID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

func (id EventID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *EventID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

func (id GiftID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *GiftID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

func (id ClaimID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *ClaimID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

func (id NotificationID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *NotificationID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id SuggestionID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *SuggestionID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}
