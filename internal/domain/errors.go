package domain

import (
	"errors"
	"fmt"

	"wishly/pkg/errcodes"
)

// Kind классифицирует ошибку для транспортного слоя.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidArgument
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindUnprocessable
	KindTooManyRequests
)

//nolint:gochecknoglobals
var codeKinds = map[errcodes.ErrorCode]Kind{
	errcodes.ValidationError:       KindInvalidArgument,
	errcodes.InvalidEventID:        KindInvalidArgument,
	errcodes.InvalidGiftID:         KindInvalidArgument,
	errcodes.InvalidNotificationID: KindInvalidArgument,
	errcodes.InvalidSuggestionID:   KindInvalidArgument,
	errcodes.InvalidEventType:      KindInvalidArgument,
	errcodes.InvalidEventDate:      KindInvalidArgument,
	errcodes.InvalidPrice:          KindInvalidArgument,
	errcodes.InvalidPaging:         KindInvalidArgument,

	errcodes.Unauthenticated: KindUnauthorized,

	errcodes.Forbidden:            KindForbidden,
	errcodes.SelfClaimDenied:      KindForbidden,
	errcodes.SelfSuggestionDenied: KindForbidden,
	errcodes.EventInactive:        KindForbidden,

	errcodes.NotFound:           KindNotFound,
	errcodes.EventNotFound:      KindNotFound,
	errcodes.GiftNotFound:       KindNotFound,
	errcodes.ClaimNotFound:      KindNotFound,
	errcodes.UserNotFound:       KindNotFound,
	errcodes.SuggestionNotFound: KindNotFound,

	errcodes.AlreadyClaimed:       KindConflict,
	errcodes.AlreadyClaimedRace:   KindConflict,
	errcodes.SlugUnavailable:      KindConflict,
	errcodes.SuggestionNotPending: KindConflict,

	errcodes.GiftLimitReached: KindUnprocessable,

	errcodes.TooManyRequests: KindTooManyRequests,
}

// AppError представляет доменную ошибку приложения.
type AppError struct {
	Code    errcodes.ErrorCode
	Message string
	cause   error
}

// Error реализует интерфейс error.
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap возвращает обёрнутую ошибку для errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.cause
}

// Kind возвращает класс ошибки по её коду.
func (e *AppError) Kind() Kind {
	return codeKinds[e.Code]
}

// NewError создаёт новую доменную ошибку.
func NewError(code errcodes.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// WrapError оборачивает существующую ошибку с доменным контекстом.
func WrapError(err error, code errcodes.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		cause:   err,
	}
}

// IsAppError проверяет, является ли ошибка доменной.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetCode извлекает код ошибки, если это AppError.
func GetCode(err error) (errcodes.ErrorCode, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, true
	}
	return "", false
}

// HasCode сообщает, несёт ли цепочка ошибок указанный код.
func HasCode(err error, code errcodes.ErrorCode) bool {
	got, ok := GetCode(err)
	return ok && got == code
}

// KindOf возвращает класс ошибки; всё, что не AppError, считается внутренней ошибкой.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}
	return KindInternal
}

// Message возвращает сообщение для клиента.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return ""
}
