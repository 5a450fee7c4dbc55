package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passbi/transitcat/internal/graph"
)

func TestBuildRouteSimpleChain(t *testing.T) {
	g := graph.New(3)
	e01 := g.AddEdge(0, 1, 2.0)
	e12 := g.AddEdge(1, 2, 3.0)

	r := Build(g)

	route, ok := r.BuildRoute(g, 0, 2)
	require.True(t, ok)
	assert.Equal(t, 5.0, route.Weight)
	assert.Equal(t, []int{e01, e12}, route.Edges)
}

func TestBuildRouteSameVertex(t *testing.T) {
	g := graph.New(2)
	g.AddEdge(0, 1, 4.0)

	r := Build(g)

	route, ok := r.BuildRoute(g, 0, 0)
	require.True(t, ok)
	assert.Equal(t, 0.0, route.Weight)
	assert.Empty(t, route.Edges)
}

func TestBuildRouteNoPath(t *testing.T) {
	g := graph.New(2)
	g.AddEdge(0, 1, 1.0)

	r := Build(g)

	_, ok := r.BuildRoute(g, 1, 0)
	assert.False(t, ok)
}

func TestBuildRoutePrefersShorterPath(t *testing.T) {
	g := graph.New(3)
	direct := g.AddEdge(0, 2, 100.0)
	viaA := g.AddEdge(0, 1, 1.0)
	viaB := g.AddEdge(1, 2, 1.0)
	_ = direct

	r := Build(g)

	route, ok := r.BuildRoute(g, 0, 2)
	require.True(t, ok)
	assert.Equal(t, 2.0, route.Weight)
	assert.Equal(t, []int{viaA, viaB}, route.Edges)
}

func TestFromTableRoundTrip(t *testing.T) {
	g := graph.New(2)
	g.AddEdge(0, 1, 7.0)

	r := Build(g)
	n, records := r.Table()

	restored := FromTable(n, records)
	route, ok := restored.BuildRoute(g, 0, 1)
	require.True(t, ok)
	assert.Equal(t, 7.0, route.Weight)
}
