package registry

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"wishly/internal/domain"
	"wishly/internal/domain/entity"
	"wishly/pkg/errcodes"
)

var validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals

type eventRules struct {
	Title          string `validate:"min=3,max=100"`
	CustomTypeName string `validate:"max=50"`
	Description    string `validate:"max=500"`
	CoverImage     string `validate:"omitempty,url"`
}

type giftRules struct {
	Name  string `validate:"min=1,max=200"`
	Link  string `validate:"omitempty,url"`
	Image string `validate:"omitempty,url"`
	Notes string `validate:"max=500"`
	Price int64  `validate:"gte=0"`
}

// validateEvent проверяет итоговое состояние события, одинаково для создания и правки.
func validateEvent(e entity.Event) error {
	return check(eventRules{
		Title:          e.Title,
		CustomTypeName: e.CustomTypeName,
		Description:    e.Description,
		CoverImage:     e.CoverImage,
	})
}

// ValidateGift проверяет поля подарка; используется и для предложений гостей.
func ValidateGift(g entity.Gift) error {
	return check(giftRules{
		Name:  g.Name,
		Link:  g.Link,
		Image: g.Image,
		Notes: g.Notes,
		Price: int64(g.Price),
	})
}

func check(rules any) error {
	err := validate.Struct(rules)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]

		return domain.WrapError(err, errcodes.ValidationError, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
	}

	return domain.WrapError(err, errcodes.ValidationError, "Invalid input")
}
