package middlewarex

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/zenazn/goji/web/mutil"

	"wishly/pkg/logx"
)

// HTTPLogging пишет запрос и ответ одной парой записей. Тела режутся до
// logFieldMaxLen и проходят через маскирование: в формах бывают email и
// сессионные cookie. Ответы 5xx логируются на уровне ERROR.
//
// Про обёртку ResponseWriter:
// https://blog.merovius.de/posts/2017-07-30-the-trouble-with-optional-interfaces/
func HTTPLogging(
	sensitiveDataMasker logx.SensitiveDataMaskerInterface,
	logFieldMaxLen int,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			start := time.Now()

			// GET и DELETE в API без тела, дамп заголовков достаточен
			dumpBody := r.Method != http.MethodGet && r.Method != http.MethodDelete

			request, err := httputil.DumpRequest(r, dumpBody)

			logger(ctx).Info(
				logx.FieldHTTPRequest,
				slog.String(logx.FieldRequestBody, string(sensitiveDataMasker.Mask(truncate(request, logFieldMaxLen)))),
				logx.Error(err),
			)

			lw := mutil.WrapWriter(w)

			var body bytes.Buffer

			lw.Tee(&body)

			next.ServeHTTP(lw, r)

			// mutil возвращает 0, если хэндлер не вызвал WriteHeader явно
			status := cmp.Or(lw.Status(), http.StatusOK)

			logResponse(
				ctx,
				status,
				sensitiveDataMasker.Mask(responseHeaders(ctx, w)),
				sensitiveDataMasker.Mask(truncate(body.Bytes(), logFieldMaxLen)),
				time.Since(start),
			)
		})
	}
}

func logResponse(ctx context.Context, status int, headers, body []byte, elapsed time.Duration) {
	level := slog.LevelInfo
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}

	logger(ctx).Log(
		ctx,
		level,
		logx.FieldHTTPResponse,
		slog.Int(logx.FieldResponseStatus, status),
		slog.String(logx.FieldResponseHeaders, string(headers)),
		slog.String(logx.FieldResponseBody, string(body)),
		slog.Int64(logx.FieldDurationMs, elapsed.Milliseconds()),
	)
}

func truncate(dump []byte, maxLen int) []byte {
	if maxLen > 0 && len(dump) > maxLen {
		return dump[:maxLen]
	}

	return dump
}

func responseHeaders(ctx context.Context, w http.ResponseWriter) []byte {
	var buf bytes.Buffer

	if err := w.Header().WriteSubset(&buf, nil); err != nil {
		logger(ctx).Error("header.WriteSubset", logx.Error(fmt.Errorf("response headers: %w", err)))
	}

	return buf.Bytes()
}
