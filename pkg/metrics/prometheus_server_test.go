package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"wishly/pkg/metrics"
)

func TestPrometheusServer(t *testing.T) {
	registry := prometheus.NewRegistry()

	claims := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "claims_total",
		Help: "Claim attempts by outcome.",
	}, []string{"outcome"})
	registry.MustRegister(claims)

	claims.WithLabelValues("success").Add(3)
	claims.WithLabelValues("race_lost").Inc()

	testCases := []struct {
		name       string
		endpoint   string
		statusCode int
		contains   []string
	}{
		{
			name:       "Metrics handler",
			endpoint:   "/metrics",
			statusCode: http.StatusOK,
			contains: []string{
				`claims_total{outcome="success"} 3`,
				`claims_total{outcome="race_lost"} 1`,
			},
		},
		{
			name:       "Invalid endpoint",
			endpoint:   "/invalid",
			statusCode: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			server := httptest.NewServer(metrics.NewPrometheusServer(":0", registry).Handler())
			defer server.Close()

			resp, err := http.Get(server.URL + tc.endpoint) //nolint:noctx
			rq.NoError(err)

			defer resp.Body.Close()

			rq.Equal(tc.statusCode, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			rq.NoError(err)

			for _, s := range tc.contains {
				rq.Contains(string(body), s)
			}
		})
	}
}
