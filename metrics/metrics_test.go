// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"
)

func TestNoopMetrics(t *testing.T) {
	m := defaultNoopMetrics()
	m.GetOrCreateCountMeter("c").Add(1)
	m.GetOrCreateGaugeVecMeter("g", []string{"l"}).SetWithLabel(1, map[string]string{"l": "x"})
	m.GetOrCreateHistogramMeter("h", nil).Observe(1)

	rec := httptest.NewRecorder()
	m.GetOrCreateHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func gather(t *testing.T) map[string]*dto.MetricFamily {
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.MetricFamily)
	for _, mf := range families {
		out[mf.GetName()] = mf
	}
	return out
}

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()

	deposits := LazyLoadCounter("test_deposits")
	deposits().Add(2)
	Counter("test_deposits").Add(1)

	ops := CounterVec("test_ops", []string{"op", "outcome"})
	ops.AddWithLabel(1, map[string]string{"op": "deposit", "outcome": "ok"})
	ops.AddWithLabel(1, map[string]string{"op": "deposit", "outcome": "ok"})
	ops.AddWithLabel(1, map[string]string{"op": "claim", "outcome": "failed"})

	treasury := GaugeVec("test_treasury", []string{"asset"})
	treasury.SetWithLabel(40, map[string]string{"asset": "native"})
	treasury.AddWithLabel(2, map[string]string{"asset": "native"})

	Gauge("test_paused").Set(1)

	hist := Histogram("test_latency", BucketHTTPReqs)
	hist.Observe(3)
	hist.Observe(7)
	HistogramVec("test_latency_vec", []string{"path"}, nil).ObserveWithLabels(5, map[string]string{"path": "/tiers"})

	families := gather(t)
	assert.Equal(t, float64(3), families["stakeledger_test_deposits"].Metric[0].GetCounter().GetValue())
	assert.Len(t, families["stakeledger_test_ops"].Metric, 2)
	assert.Equal(t, float64(42), families["stakeledger_test_treasury"].Metric[0].GetGauge().GetValue())
	assert.Equal(t, float64(1), families["stakeledger_test_paused"].Metric[0].GetGauge().GetValue())
	assert.Equal(t, float64(10), families["stakeledger_test_latency"].Metric[0].GetHistogram().GetSampleSum())
	assert.Equal(t, uint64(1), families["stakeledger_test_latency_vec"].Metric[0].GetHistogram().GetSampleCount())

	rec := httptest.NewRecorder()
	HTTPHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "stakeledger_test_deposits 3")
}
