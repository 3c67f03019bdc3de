// Package contextx значения запроса, которые путешествуют в context:
// логгер, trace id и идентификатор вызывающего.
package contextx

import (
	"context"
	"errors"
	"fmt"
)

var ErrNoValue = errors.New("no value in context")

type (
	contextKeyTraceID struct{}
	contextKeyUserID  struct{}
)

// TraceID идентификатор запроса; клиенту он возвращается как supportId.
type TraceID string

func (t TraceID) String() string {
	return string(t)
}

func WithTraceID(ctx context.Context, traceID TraceID) context.Context {
	return context.WithValue(ctx, contextKeyTraceID{}, traceID)
}

func TraceIDFromContext(ctx context.Context) (TraceID, error) {
	return valueOf[TraceID](ctx, contextKeyTraceID{}, "trace id")
}

// UserID вызывающий в том виде, в каком его вернул провайдер входа.
// Пустое значение в контекст не кладётся.
type UserID string

func (u UserID) String() string {
	return string(u)
}

func WithUserID(ctx context.Context, userID UserID) context.Context {
	return context.WithValue(ctx, contextKeyUserID{}, userID)
}

func UserIDFromContext(ctx context.Context) (UserID, error) {
	return valueOf[UserID](ctx, contextKeyUserID{}, "user id")
}

func valueOf[T any](ctx context.Context, key any, name string) (T, error) {
	v, ok := ctx.Value(key).(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s: %w", name, ErrNoValue)
	}

	return v, nil
}
