package telemetry

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/nexapay/admin-portal/internal/infra/config"
)

// Provider represents a telemetry provider handle.
type Provider struct {
	up prometheus.Gauge
}

// Attach registers process-level collectors and returns a provider handle.
// Per-request metrics live in the HTTP middleware; this only carries the
// service identity gauge scrapers use for presence alerts.
func Attach(_ context.Context, cfg *config.AppConfig) (*Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	up := promauto.NewGauge(prometheus.GaugeOpts{
		Namespace:   "admin",
		Name:        "portal_up",
		Help:        "Set to 1 while the admin portal is serving.",
		ConstLabels: prometheus.Labels{"service": cfg.Telemetry.ServiceName},
	})
	up.Set(1)

	return &Provider{up: up}, nil
}

// Up exposes the service presence gauge.
func (p *Provider) Up() prometheus.Gauge {
	if p == nil {
		return prometheus.NewGauge(prometheus.GaugeOpts{})
	}
	return p.up
}
