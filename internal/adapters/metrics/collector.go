package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "spacetraders"
	subsystem = "fleet"
)

// Collector owns every Prometheus metric the daemon exports. It implements
// the API adapter's RequestObserver and the fleet cycle's CycleObserver.
type Collector struct {
	registry *prometheus.Registry

	apiRequestsTotal *prometheus.CounterVec
	cycleDuration    prometheus.Histogram
	credits          prometheus.Gauge
	tradesTotal      *prometheus.CounterVec
	realizedGain     prometheus.Histogram
}

// NewCollector creates and registers all metrics on a private registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),

		apiRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "api_requests_total",
				Help:      "Total remote dispatches by method, operation, and outcome",
			},
			[]string{"method", "operation", "outcome"},
		),

		cycleDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cycle_duration_seconds",
				Help:      "Planning cycle duration distribution",
				Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
			},
		),

		credits: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "credits",
				Help:      "Current spendable credit balance",
			},
		),

		tradesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "trades_total",
				Help:      "Completed round trips by good",
			},
			[]string{"good"},
		),

		realizedGain: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "trade_realized_gain_credits",
				Help:      "Realized profit per completed round trip",
				Buckets:   []float64{-5000, 0, 1000, 5000, 10000, 25000, 50000, 100000},
			},
		),
	}

	c.registry.MustRegister(
		c.apiRequestsTotal,
		c.cycleDuration,
		c.credits,
		c.tradesTotal,
		c.realizedGain,
	)
	return c
}

// Registry exposes the private registry for the /metrics handler.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveRequest counts one dispatched remote call.
func (c *Collector) ObserveRequest(method, operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.apiRequestsTotal.WithLabelValues(method, operation, outcome).Inc()
}

// ObserveCycle records one planning cycle's duration.
func (c *Collector) ObserveCycle(d time.Duration) {
	c.cycleDuration.Observe(d.Seconds())
}

// SetCredits updates the balance gauge.
func (c *Collector) SetCredits(credits int) {
	c.credits.Set(float64(credits))
}

// ObserveTrade records one completed round trip.
func (c *Collector) ObserveTrade(good string, realizedGain int) {
	c.tradesTotal.WithLabelValues(good).Inc()
	c.realizedGain.Observe(float64(realizedGain))
}
