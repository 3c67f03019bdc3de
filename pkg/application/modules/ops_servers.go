package modules

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"wishly/pkg/metrics"
	"wishly/pkg/probe"
)

// ProbeServer /healthz и /ready для оркестратора; Checks опрашиваются на /ready.
type ProbeServer struct {
	Name          string
	Version       string
	ListenAddress string
	Checks        map[string]probe.Check
}

func (p ProbeServer) Run(ctx context.Context, g *errgroup.Group) {
	probeServer := probe.NewServer(p.ListenAddress, probe.Options{
		Name:    p.Name,
		Version: p.Version,
		Checks:  p.Checks,
	})

	g.Go(func() error {
		if err := probeServer.Run(ctx); err != nil {
			return fmt.Errorf("probeServer.Run: %w", err)
		}

		return nil
	})
}

// MetricServer отдаёт счётчики promauto из реестра по умолчанию.
type MetricServer struct {
	ListenAddress string
}

func (m MetricServer) Run(ctx context.Context, g *errgroup.Group) {
	prometheusServer := metrics.NewPrometheusServer(m.ListenAddress, nil)

	g.Go(func() error {
		if err := prometheusServer.Run(ctx); err != nil {
			return fmt.Errorf("prometheusServer.Run: %w", err)
		}

		return nil
	})
}
