package application

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewTaskLogger(t *testing.T) {
	testCases := []struct {
		level string
		want  zapcore.Level
	}{
		{level: "debug", want: zapcore.DebugLevel},
		{level: "warn", want: zapcore.WarnLevel},
		{level: "loud", want: zapcore.InfoLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			rq := require.New(t)

			l, err := newTaskLogger(tc.level)
			rq.NoError(err)
			rq.Equal(tc.want, l.Level())
		})
	}
}
