package transit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passbi/transitcat/internal/catalogue"
)

func buildScenarioB(t *testing.T) *Router {
	t.Helper()
	cat := catalogue.New()
	require.NoError(t, cat.AddStop("A", 55.0, 37.0))
	require.NoError(t, cat.AddStop("B", 55.0, 37.01))
	require.NoError(t, cat.AddStop("C", 55.0, 37.02))
	require.NoError(t, cat.SetDistance("A", "B", 1000))
	require.NoError(t, cat.SetDistance("B", "A", 1000))
	require.NoError(t, cat.SetDistance("B", "C", 1000))
	require.NoError(t, cat.SetDistance("C", "B", 1000))
	require.NoError(t, cat.AddBus("1", []string{"A", "B", "C"}, false))

	r, err := NewRouter(cat, Settings{WaitTime: 6, Velocity: 30})
	require.NoError(t, err)
	return r
}

func TestScenarioA_DegenerateQuery(t *testing.T) {
	cat := catalogue.New()
	require.NoError(t, cat.AddStop("A", 0, 0))
	require.NoError(t, cat.AddStop("B", 0, 1))

	r, err := NewRouter(cat, Settings{WaitTime: 5, Velocity: 30})
	require.NoError(t, err)

	res, err := r.ShortestRoute("A", "A")
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.TotalTime)
	assert.Empty(t, res.Segments)

	_, err = r.ShortestRoute("A", "B")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScenarioB_SingleLinearBus(t *testing.T) {
	r := buildScenarioB(t)

	res, err := r.ShortestRoute("A", "C")
	require.NoError(t, err)
	assert.InDelta(t, 10.0, res.TotalTime, 1e-6)
	require.Len(t, res.Segments, 2)

	assert.Equal(t, SegmentWait, res.Segments[0].Type)
	assert.Equal(t, "A", res.Segments[0].StopName)
	assert.InDelta(t, 6.0, res.Segments[0].Time, 1e-6)

	assert.Equal(t, SegmentBus, res.Segments[1].Type)
	assert.Equal(t, "1", res.Segments[1].BusName)
	assert.Equal(t, 2, res.Segments[1].SpanCount)
	assert.InDelta(t, 4.0, res.Segments[1].Time, 1e-6)
}

func TestScenarioC_Transfer(t *testing.T) {
	cat := catalogue.New()
	require.NoError(t, cat.AddStop("A", 55.0, 37.0))
	require.NoError(t, cat.AddStop("B", 55.0, 37.01))
	require.NoError(t, cat.AddStop("D", 55.0, 37.02))
	require.NoError(t, cat.SetDistance("A", "B", 1000))
	require.NoError(t, cat.SetDistance("B", "A", 1000))
	require.NoError(t, cat.SetDistance("B", "D", 1000))
	require.NoError(t, cat.SetDistance("D", "B", 1000))
	require.NoError(t, cat.AddBus("ab", []string{"A", "B"}, false))
	require.NoError(t, cat.AddBus("bd", []string{"B", "D"}, false))

	r, err := NewRouter(cat, Settings{WaitTime: 3, Velocity: 30})
	require.NoError(t, err)

	res, err := r.ShortestRoute("A", "D")
	require.NoError(t, err)

	waits, rides := 0, 0
	for _, seg := range res.Segments {
		if seg.Type == SegmentWait {
			waits++
		} else {
			rides++
		}
	}
	assert.Equal(t, 2, waits)
	assert.Equal(t, 2, rides)

	for i, seg := range res.Segments {
		if seg.Type == SegmentBus {
			require.Greater(t, i, 0)
			assert.Equal(t, SegmentWait, res.Segments[i-1].Type)
		}
	}
}

func TestWaitEdgeExistsPerStop(t *testing.T) {
	r := buildScenarioB(t)
	g := r.Graph()

	for _, stopName := range []string{"A", "B", "C"} {
		id, ok := g.StopNodeID(stopName)
		require.True(t, ok)

		found := false
		for _, edgeID := range g.Inner().IncidentEdges(id) {
			seg := g.Segment(edgeID)
			if seg.Type == SegmentWait && seg.StopName == stopName {
				found = true
				assert.InDelta(t, 6.0, seg.Time, 1e-6)
			}
		}
		assert.True(t, found, "expected a wait edge out of %s", stopName)
	}
}

func TestSegmentTimesSumToTotal(t *testing.T) {
	r := buildScenarioB(t)

	res, err := r.ShortestRoute("A", "C")
	require.NoError(t, err)

	sum := 0.0
	for _, seg := range res.Segments {
		sum += seg.Time
	}
	assert.InDelta(t, res.TotalTime, sum, 1e-6)
}
