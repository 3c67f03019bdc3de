package probe_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"wishly/pkg/probe"
)

func TestServer(t *testing.T) {
	testCases := []struct {
		name       string
		endpoint   string
		checks     map[string]probe.Check
		statusCode int
		body       string
	}{
		{
			name:       "Health handler",
			endpoint:   "/healthz",
			statusCode: http.StatusOK,
			body:       `{"name":"wishly","version":"v1.2.0"}`,
		},
		{
			name:     "Ready with healthy dependencies",
			endpoint: "/ready",
			checks: map[string]probe.Check{
				"postgres": func(context.Context) error { return nil },
				"redis":    func(context.Context) error { return nil },
			},
			statusCode: http.StatusOK,
			body:       `{"name":"wishly","version":"v1.2.0","checks":{"postgres":"ok","redis":"ok"}}`,
		},
		{
			name:     "Ready with failing dependency",
			endpoint: "/ready",
			checks: map[string]probe.Check{
				"postgres": func(context.Context) error { return nil },
				"redis":    func(context.Context) error { return errors.New("dial tcp 127.0.0.1:6379: connect: connection refused") },
			},
			statusCode: http.StatusServiceUnavailable,
			body: `{"name":"wishly","version":"v1.2.0","checks":{"postgres":"ok",` +
				`"redis":"dial tcp 127.0.0.1:6379: connect: connection refused"}}`,
		},
		{
			name:       "Ready without checks",
			endpoint:   "/ready",
			statusCode: http.StatusOK,
			body:       `{"name":"wishly","version":"v1.2.0"}`,
		},
		{
			name:       "Invalid endpoint",
			endpoint:   "/invalid",
			statusCode: http.StatusNotFound,
			body:       "404 page not found\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			probeServer := probe.NewServer(":0", probe.Options{
				Name:    "wishly",
				Version: "v1.2.0",
				Checks:  tc.checks,
			})

			server := httptest.NewServer(probeServer.Handler())
			defer server.Close()

			resp, err := http.Get(server.URL + tc.endpoint) //nolint:noctx
			rq.NoError(err)

			defer resp.Body.Close()

			rq.Equal(tc.statusCode, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			rq.NoError(err)
			rq.Equal(tc.body, string(body))
		})
	}
}
