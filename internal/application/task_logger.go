package application

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newTaskLogger логгер для внутренних сообщений asynq. Он пишет JSON в stderr
// отдельно от slog, как и прочие сторонние клиенты.
func newTaskLogger(level string) (*zap.SugaredLogger, error) {
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		zapLevel = zapcore.InfoLevel
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)

	l, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("zapConfig.Build: %w", err)
	}

	return l.Named("asynq").Sugar(), nil
}
