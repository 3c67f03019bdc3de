package req

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"wishly/internal/domain"
	"wishly/pkg/errcodes"
)

var (
	json     = jsoniter.ConfigCompatibleWithStandardLibrary         //nolint:gochecknoglobals // skip
	validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals // skip
)

// Read decodes the JSON body into dest and validates it by its struct tags.
// An empty body is accepted and only validated.
func Read(r *http.Request, dest any) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil && !errors.Is(err, io.EOF) {
		return domain.WrapError(
			fmt.Errorf("json.Decode: %w", err),
			errcodes.ValidationError,
			"Invalid JSON",
		)
	}

	return Validate(r, dest)
}

func Validate(r *http.Request, dest any) error {
	if err := validate.StructCtx(r.Context(), dest); err != nil {
		return domain.WrapError(err, errcodes.ValidationError, err.Error())
	}

	return nil
}
