package engine

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/hailam/fourplay/internal/board"
)

func TestMetricsRecordSearches(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	mm := NewMinimax(2, WithLogger(quietLogger()), WithMetrics(m))
	mm.SelectMove(board.MustParse(winInThree), board.PlayerA)
	mm.SelectMove(board.NewBoard(), board.PlayerA)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchesTotal.WithLabelValues("minimax", PathWin)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchesTotal.WithLabelValues("minimax", PathSearch)))
	assert.Equal(t, float64(mm.Nodes()), testutil.ToFloat64(m.NodesTotal))

	mc := NewMCTS(50, 0, WithLogger(quietLogger()), WithMetrics(m))
	mc.SelectMove(board.NewBoard(), board.PlayerA)
	assert.Equal(t, 50.0, testutil.ToFloat64(m.IterationsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchesTotal.WithLabelValues("mcts", PathSearch)))

	count, err := testutil.GatherAndCount(reg, "fourplay_engine_search_duration_seconds")
	assert.NoError(t, err)
	assert.Equal(t, 2, count, "one series per engine")
}

func TestMetricsFallback(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.RecordFallback("panic")
	m.RecordFallback("panic")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.FallbacksTotal.WithLabelValues("panic")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordFallback("panic")
		m.observeSearch(SearchInfo{})
	})
}
