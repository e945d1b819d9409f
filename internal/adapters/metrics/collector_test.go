package metrics_test

import (
	"errors"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacetraders-fleet/internal/adapters/metrics"
)

func gather(t *testing.T, collector *metrics.Collector, name string) *dto.MetricFamily {
	t.Helper()
	families, err := collector.Registry().Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() == name {
			return family
		}
	}
	return nil
}

func TestCollector_ObserveRequestOutcomes(t *testing.T) {
	collector := metrics.NewCollector()

	collector.ObserveRequest("GET", "list-ships", nil)
	collector.ObserveRequest("GET", "list-ships", nil)
	collector.ObserveRequest("POST", "place-buy-order", errors.New("boom"))

	family := gather(t, collector, "spacetraders_fleet_api_requests_total")
	require.NotNil(t, family)

	// One series per method/operation/outcome combination.
	require.Len(t, family.GetMetric(), 2)

	counts := map[string]float64{}
	for _, metric := range family.GetMetric() {
		outcome := ""
		for _, label := range metric.GetLabel() {
			if label.GetName() == "outcome" {
				outcome = label.GetValue()
			}
		}
		counts[outcome] = metric.GetCounter().GetValue()
	}
	assert.Equal(t, 2.0, counts["ok"])
	assert.Equal(t, 1.0, counts["error"])
}

func TestCollector_SetCredits(t *testing.T) {
	collector := metrics.NewCollector()

	collector.SetCredits(175000)
	collector.SetCredits(180000)

	family := gather(t, collector, "spacetraders_fleet_credits")
	require.NotNil(t, family)
	require.Len(t, family.GetMetric(), 1)
	assert.Equal(t, 180000.0, family.GetMetric()[0].GetGauge().GetValue())
}

func TestCollector_ObserveCycle(t *testing.T) {
	collector := metrics.NewCollector()

	collector.ObserveCycle(12 * time.Second)
	collector.ObserveCycle(40 * time.Second)

	family := gather(t, collector, "spacetraders_fleet_cycle_duration_seconds")
	require.NotNil(t, family)
	histogram := family.GetMetric()[0].GetHistogram()
	assert.Equal(t, uint64(2), histogram.GetSampleCount())
	assert.Equal(t, 52.0, histogram.GetSampleSum())
}

func TestCollector_ObserveTrade(t *testing.T) {
	collector := metrics.NewCollector()

	collector.ObserveTrade("METALS", 800)
	collector.ObserveTrade("METALS", -200)
	collector.ObserveTrade("CHEMS", 400)

	trades := gather(t, collector, "spacetraders_fleet_trades_total")
	require.NotNil(t, trades)
	assert.Len(t, trades.GetMetric(), 2)

	gains := gather(t, collector, "spacetraders_fleet_trade_realized_gain_credits")
	require.NotNil(t, gains)
	histogram := gains.GetMetric()[0].GetHistogram()
	assert.Equal(t, uint64(3), histogram.GetSampleCount())
	assert.Equal(t, 1000.0, histogram.GetSampleSum())
}
