package metrics

import (
	"testing"
	"time"

	"github.com/o0olele/wayfinder-go/graph"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func read(t *testing.T, m prometheus.Metric) *dto.Metric {
	t.Helper()
	out := &dto.Metric{}
	require.NoError(t, m.Write(out))
	return out
}

func TestObserveSearch(t *testing.T) {
	found := RouteSearchesTotal.WithLabelValues("found")
	before := read(t, found).GetCounter().GetValue()
	samples := read(t, RouteSearchDuration).GetHistogram().GetSampleCount()

	ObserveSearch("found", 3*time.Millisecond)
	ObserveSearch("found", time.Millisecond)

	assert.Equal(t, before+2, read(t, found).GetCounter().GetValue())
	assert.Equal(t, samples+2, read(t, RouteSearchDuration).GetHistogram().GetSampleCount())
}

func TestSetGraphStats(t *testing.T) {
	SetGraphStats(graph.Stats{NodeCount: 12, EdgeCount: 40})

	assert.Equal(t, 12.0, read(t, GraphNodes).GetGauge().GetValue())
	assert.Equal(t, 40.0, read(t, GraphEdges).GetGauge().GetValue())
}
