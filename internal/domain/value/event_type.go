package value

import (
	"wishly/internal/domain"
	"wishly/pkg/errcodes"
)

type EventType string

const (
	EventTypeBirthday     EventType = "birthday"
	EventTypeWedding      EventType = "wedding"
	EventTypeHousewarming EventType = "housewarming"
	EventTypeBabyShower   EventType = "baby_shower"
	EventTypeAnniversary  EventType = "anniversary"
	EventTypeCustom       EventType = "custom"
)

//nolint:gochecknoglobals
var eventTypeLabels = map[EventType]string{
	EventTypeBirthday:     "Birthday",
	EventTypeWedding:      "Wedding",
	EventTypeHousewarming: "Housewarming",
	EventTypeBabyShower:   "Baby Shower",
	EventTypeAnniversary:  "Anniversary",
	EventTypeCustom:       "Custom",
}

func ParseEventType(s string) (EventType, error) {
	t := EventType(s)

	if _, ok := eventTypeLabels[t]; !ok {
		return "", domain.NewError(errcodes.InvalidEventType, "Unknown event type")
	}

	return t, nil
}

func (t EventType) String() string {
	return string(t)
}

// Label возвращает человекочитаемое название типа события.
func (t EventType) Label() string {
	if label, ok := eventTypeLabels[t]; ok {
		return label
	}

	return string(t)
}
