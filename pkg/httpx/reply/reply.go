package reply

import (
	"context"
	"log/slog"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"wishly/internal/domain"
	"wishly/pkg/contextx"
	"wishly/pkg/errcodes"
	"wishly/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	SupportID string `json:"supportId"`
}

func (e *errorResponse) WithDefaultCode(code errcodes.ErrorCode) {
	if e.Code == "" {
		e.Code = code.String()
	}
}

type successResponse struct {
	Success bool `json:"success"`
}

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

func OK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

func Created(w http.ResponseWriter) {
	w.WriteHeader(http.StatusCreated)
}

func Success(ctx context.Context, w http.ResponseWriter) {
	JSON(ctx, w, http.StatusOK, successResponse{Success: true})
}

func JSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger(ctx).Error("json.Encode", logx.Error(err))
	}
}

// Raw writes an already encoded JSON document.
func Raw(ctx context.Context, w http.ResponseWriter, statusCode int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if _, err := w.Write(body); err != nil {
		logger(ctx).Error("w.Write", logx.Error(err))
	}
}

func Error(ctx context.Context, w http.ResponseWriter, err error) {
	code, _ := domain.GetCode(err)

	response := errorResponse{
		Code:      code.String(),
		Message:   domain.Message(err),
		SupportID: supportID(ctx),
	}

	kind := domain.KindOf(err)

	// Expected client errors are not failures of the service.
	level := slog.LevelInfo
	if kind == domain.KindInternal {
		level = slog.LevelError
	}

	logger(ctx).Log(ctx, level, "error", logx.Error(err), slog.String("code", response.Code))

	switch kind {
	case domain.KindInvalidArgument:
		response.WithDefaultCode(errcodes.ValidationError)
		JSON(ctx, w, http.StatusBadRequest, response)
	case domain.KindNotFound:
		response.WithDefaultCode(errcodes.NotFound)
		JSON(ctx, w, http.StatusNotFound, response)
	case domain.KindUnauthorized:
		response.WithDefaultCode(errcodes.Unauthenticated)
		JSON(ctx, w, http.StatusUnauthorized, response)
	case domain.KindForbidden:
		response.WithDefaultCode(errcodes.Forbidden)
		JSON(ctx, w, http.StatusForbidden, response)
	case domain.KindConflict:
		JSON(ctx, w, http.StatusConflict, response)
	case domain.KindUnprocessable:
		JSON(ctx, w, http.StatusUnprocessableEntity, response)
	case domain.KindTooManyRequests:
		response.WithDefaultCode(errcodes.TooManyRequests)
		JSON(ctx, w, http.StatusTooManyRequests, response)
	default:
		response.Code = errcodes.InternalServerError.String()
		response.Message = "Something went wrong. Please try again."
		JSON(ctx, w, http.StatusInternalServerError, response)
	}
}

func supportID(ctx context.Context) string {
	traceID, err := contextx.TraceIDFromContext(ctx)
	if err != nil {
		return "unsupported"
	}

	return traceID.String()
}
