package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var tasksProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tasks_processed_total",
	Help: "Background tasks processed by type and status.",
}, []string{"type", "status"})

const (
	statusDone    = "done"
	statusFailed  = "failed"
	statusInvalid = "invalid"
)
