package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sort"
	"time"

	jsoniter "github.com/json-iterator/go"

	"wishly/pkg/contextx"
	"wishly/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	httpServerReadHeaderTimeout = 5 * time.Second
	checkTimeout                = 2 * time.Second

	checkOK = "ok"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Check проверка зависимости для /ready (база, redis).
type Check func(ctx context.Context) error

type Server struct {
	listenAddress string
	options       Options
	state         []byte
}

type Options struct {
	Name    string           `json:"name"`
	Version string           `json:"version"`
	Checks  map[string]Check `json:"-"`
}

type readiness struct {
	Name    string            `json:"name"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

func NewServer(
	listenAddress string,
	options Options,
) Server {
	stateJSON, _ := json.Marshal(options) //nolint:errcheck,errchkjson

	return Server{
		listenAddress: listenAddress,
		options:       options,
		state:         stateJSON,
	}
}

func (s Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handlerHealthz)
	mux.HandleFunc("/ready", s.handlerReady)

	return mux
}

func (s Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		//nolint:exhaustruct
		Addr:              s.listenAddress,
		Handler:           s.Handler(),
		ReadHeaderTimeout: httpServerReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		if err := httpServer.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger(ctx).Error("httpServer.Shutdown", logx.Error(err))
		}
	}()

	logger(ctx).Info("probe server started", slog.String("address", s.listenAddress))

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httpServer.ListenAndServe: %w", err)
	}

	logger(ctx).Info("probe server stopped")

	return nil
}

func (s Server) handlerHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(s.state) //nolint:errcheck
}

// handlerReady отвечает 503, если хотя бы одна зависимость недоступна.
func (s Server) handlerReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	resp := readiness{
		Name:    s.options.Name,
		Version: s.options.Version,
	}

	status := http.StatusOK

	names := make([]string, 0, len(s.options.Checks))
	for name := range s.options.Checks {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		if resp.Checks == nil {
			resp.Checks = make(map[string]string, len(names))
		}

		if err := s.options.Checks[name](ctx); err != nil {
			logger(ctx).Warn("readiness check failed", slog.String("check", name), logx.Error(err))

			resp.Checks[name] = err.Error()
			status = http.StatusServiceUnavailable

			continue
		}

		resp.Checks[name] = checkOK
	}

	body, _ := json.Marshal(resp) //nolint:errcheck,errchkjson

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body) //nolint:errcheck
}
