package view

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var cacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "view_cache_requests_total",
	Help: "View cache lookups by view and result.",
}, []string{"view", "result"})

const (
	viewPublicEvent = "public_event"
	viewEventDetail = "event_detail"
	viewDashboard   = "dashboard"

	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"
)
