package server

import (
	"context"
	"time"

	"wishly/internal/domain"
	"wishly/internal/domain/entity"
	"wishly/internal/domain/value"
	"wishly/pkg/contextx"
	"wishly/pkg/errcodes"
	"wishly/pkg/rest"
)

const dateLayout = "2006-01-02"

// callerFromContext возвращает нулевой UserID для анонимного запроса;
// сервисы сами решают, нужен ли им вызывающий.
func callerFromContext(ctx context.Context) value.UserID {
	userID, err := contextx.UserIDFromContext(ctx)
	if err != nil {
		return value.UserID{}
	}

	id, err := value.ParseUserID(userID.String())
	if err != nil {
		return value.UserID{}
	}

	return id
}

func newEventInput(request rest.CreateEventRequest) (entity.EventInput, error) {
	eventType, err := value.ParseEventType(request.Type)
	if err != nil {
		return entity.EventInput{}, err
	}

	var eventDate *time.Time

	if request.EventDate != "" {
		d, err := parseEventDate(request.EventDate)
		if err != nil {
			return entity.EventInput{}, err
		}

		eventDate = &d
	}

	return entity.EventInput{
		Title:          request.Title,
		Type:           eventType,
		CustomTypeName: request.CustomTypeName,
		Description:    request.Description,
		EventDate:      eventDate,
		CoverImage:     request.CoverImage,
	}, nil
}

func newEventPatch(request rest.UpdateEventRequest) (entity.EventPatch, error) {
	patch := entity.EventPatch{
		Title:          request.Title,
		CustomTypeName: request.CustomTypeName,
		Description:    request.Description,
		CoverImage:     request.CoverImage,
	}

	if request.Type != nil {
		eventType, err := value.ParseEventType(*request.Type)
		if err != nil {
			return entity.EventPatch{}, err
		}

		patch.Type = &eventType
	}

	if request.EventDate != nil && *request.EventDate != "" {
		d, err := parseEventDate(*request.EventDate)
		if err != nil {
			return entity.EventPatch{}, err
		}

		patch.EventDate = &d
	}

	return patch, nil
}

func newGiftInput(request rest.GiftRequest) (entity.GiftInput, error) {
	price, err := parsePrice(request.Price)
	if err != nil {
		return entity.GiftInput{}, err
	}

	return entity.GiftInput{
		Name:  request.Name,
		Link:  request.Link,
		Price: price,
		Image: request.Image,
		Notes: request.Notes,
	}, nil
}

func newGiftPatch(request rest.UpdateGiftRequest) (entity.GiftPatch, error) {
	patch := entity.GiftPatch{
		Name:  request.Name,
		Link:  request.Link,
		Image: request.Image,
		Notes: request.Notes,
	}

	if request.Price != nil {
		price, err := parsePrice(request.Price)
		if err != nil {
			return entity.GiftPatch{}, err
		}

		patch.Price = &price
	}

	return patch, nil
}

// parsePrice переводит рупии из формы в paisa. Пустая цена означает "не указана".
func parsePrice(rupees *float64) (value.Paisa, error) {
	if rupees == nil {
		return 0, nil
	}

	if *rupees < 0 {
		return 0, domain.NewError(errcodes.InvalidPrice, "Price must be positive")
	}

	return value.FromRupees(*rupees), nil
}

func parseEventDate(s string) (time.Time, error) {
	if d, err := time.Parse(dateLayout, s); err == nil {
		return d, nil
	}

	d, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, domain.WrapError(err, errcodes.InvalidEventDate, "Invalid event date")
	}

	return d, nil
}
