package transit

import (
	"errors"

	"github.com/passbi/transitcat/internal/catalogue"
	"github.com/passbi/transitcat/internal/router"
)

// ErrNotFound is returned when either endpoint of a journey query is
// unknown to the transport graph, or no path connects them.
var ErrNotFound = errors.New("transit: route not found")

// Result is the answer to a journey query: the total time and the ordered
// segments traveled.
type Result struct {
	TotalTime float64
	Segments  []Segment
}

// Router composes a transport Graph with its precomputed all-pairs table
// to answer origin -> destination journey queries.
type Router struct {
	graph  *Graph
	routes *router.Router
}

// NewRouter builds the transport graph for cat and precomputes its
// all-pairs router.
func NewRouter(cat *catalogue.Catalogue, settings Settings) (*Router, error) {
	g, err := Build(cat, settings)
	if err != nil {
		return nil, err
	}
	return &Router{graph: g, routes: router.Build(g.Inner())}, nil
}

// FromPrebuilt restores a Router from an already-built Graph and an
// already-precomputed router.Router, as done when loading a persisted
// blob.
func FromPrebuilt(g *Graph, routes *router.Router) *Router {
	return &Router{graph: g, routes: routes}
}

// Graph returns the underlying transport graph.
func (r *Router) Graph() *Graph {
	return r.graph
}

// Routes returns the underlying all-pairs router.
func (r *Router) Routes() *router.Router {
	return r.routes
}

// ShortestRoute answers a journey query from fromName to toName. If
// fromName == toName the result is zero weight with no segments. Returns
// ErrNotFound if either stop is unknown to the graph or no path connects
// them.
func (r *Router) ShortestRoute(fromName, toName string) (Result, error) {
	fromID, ok := r.graph.StopNodeID(fromName)
	if !ok {
		return Result{}, ErrNotFound
	}
	toID, ok := r.graph.StopNodeID(toName)
	if !ok {
		return Result{}, ErrNotFound
	}

	route, ok := r.routes.BuildRoute(r.graph.Inner(), fromID, toID)
	if !ok {
		return Result{}, ErrNotFound
	}

	segments := make([]Segment, len(route.Edges))
	for i, edgeID := range route.Edges {
		segments[i] = r.graph.Segment(edgeID)
	}

	return Result{TotalTime: route.Weight, Segments: segments}, nil
}
