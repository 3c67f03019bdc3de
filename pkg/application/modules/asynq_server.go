package modules

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"wishly/pkg/logx"
)

// AsynqQueues очередь -> приоритет.
type AsynqQueues map[string]int

type AsynqHandler struct {
	Pattern string
	Handle  func(context.Context, *asynq.Task) error
}

// AsynqServer исполнитель фоновых задач. Задача, вернувшая ошибку, уходит
// в archived без повторов, если обработчик обернул её в asynq.SkipRetry.
type AsynqServer struct {
	Redis       asynq.RedisClientOpt
	Queues      AsynqQueues
	Concurrency int
	Logger      asynq.Logger
}

func (s AsynqServer) Run(ctx context.Context, g *errgroup.Group, handlers ...AsynqHandler) {
	g.Go(func() error {
		worker := asynq.NewServer(s.Redis, asynq.Config{
			BaseContext:  func() context.Context { return ctx },
			Queues:       s.Queues,
			Concurrency:  s.Concurrency,
			Logger:       s.Logger,
			ErrorHandler: asynq.ErrorHandlerFunc(taskErrorHandler),
		})

		mux := asynq.NewServeMux()

		for _, h := range handlers {
			mux.HandleFunc(h.Pattern, h.Handle)
		}

		attrs := []any{slog.String("redis-address", s.Redis.Addr), slog.Int("redis-db", s.Redis.DB)}

		if err := worker.Start(mux); err != nil {
			return fmt.Errorf("asynqServer.Start: %w", err)
		}

		logger(ctx).Info("asynq server started", attrs...)

		<-ctx.Done()

		worker.Shutdown()

		logger(ctx).Info("asynq server stopped", attrs...)

		return nil
	})
}

func taskErrorHandler(ctx context.Context, task *asynq.Task, err error) {
	taskID, _ := asynq.GetTaskID(ctx)

	level := slog.LevelWarn
	if !errors.Is(err, asynq.SkipRetry) {
		level = slog.LevelError
	}

	logger(ctx).Log(
		ctx,
		level,
		"task failed",
		slog.String(logx.FieldTaskType, task.Type()),
		slog.String(logx.FieldTaskID, taskID),
		logx.Error(err),
	)
}
