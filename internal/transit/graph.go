// Package transit builds the node-splitting transport graph (C5) from a
// catalogue and composes it with an all-pairs router to answer journey
// queries (C6). The doubled-node-id scheme and the edge-parallel segment
// table follow transport_router.h/.cpp from the reference implementation
// this module was distilled from.
package transit

import (
	"fmt"

	"github.com/passbi/transitcat/internal/catalogue"
	"github.com/passbi/transitcat/internal/domain"
	"github.com/passbi/transitcat/internal/graph"
)

// factorKmPerHToMPerMin converts a km/h velocity into meters-per-minute.
const factorKmPerHToMPerMin = 1000.0 / 60.0

// Settings are the routing knobs supplied in routing_settings.
type Settings struct {
	WaitTime int     // minutes
	Velocity float64 // km/h
}

// Graph is the node-split weighted digraph plus its parallel segment
// table. Node ids for stop ordinal i are BeforeWaitID(i) = 2i and
// AfterWaitID(i) = 2i+1.
type Graph struct {
	settings Settings
	inner    *graph.Digraph
	idByStop map[string]int
	segments []Segment
}

// BeforeWaitID returns the node id a query enters at for the given stop.
func BeforeWaitID(stopOrdinal int) int { return stopOrdinal * 2 }

// AfterWaitID returns the node id reachable only once a stop's wait has
// been paid.
func AfterWaitID(stopOrdinal int) int { return stopOrdinal*2 + 1 }

// Inner returns the underlying weighted digraph, e.g. for handing to
// router.Build.
func (g *Graph) Inner() *graph.Digraph {
	return g.inner
}

// Settings returns the wait/velocity settings the graph was built with.
func (g *Graph) Settings() Settings {
	return g.settings
}

// Segment returns the label for edge id.
func (g *Graph) Segment(id int) Segment {
	return g.segments[id]
}

// SegmentCount returns the number of recorded segments (== inner edge
// count).
func (g *Graph) SegmentCount() int {
	return len(g.segments)
}

// recordSegment labels edgeID with seg, growing the segment table as
// needed. Edges are always added in increasing id order, so this is
// normally a plain append, but it tolerates gaps rather than assuming it.
func (g *Graph) recordSegment(edgeID int, seg Segment) {
	for len(g.segments) <= edgeID {
		g.segments = append(g.segments, Segment{})
	}
	g.segments[edgeID] = seg
}

// StopNodeID returns the BeforeWait node id for a stop name, or false if
// the stop was not part of the graph's construction.
func (g *Graph) StopNodeID(stopName string) (int, bool) {
	ord, ok := g.idByStop[stopName]
	if !ok {
		return 0, false
	}
	return BeforeWaitID(ord), true
}

// FromParts reassembles a Graph from its already-computed pieces, as done
// when restoring one from a persisted blob instead of rebuilding it from a
// catalogue.
func FromParts(settings Settings, inner *graph.Digraph, idByStop map[string]int, segments []Segment) *Graph {
	return &Graph{settings: settings, inner: inner, idByStop: idByStop, segments: segments}
}

// Build constructs the transport graph from cat using node-splitting.
func Build(cat *catalogue.Catalogue, settings Settings) (*Graph, error) {
	stops := cat.AllStops()

	g := &Graph{
		settings: settings,
		inner:    graph.New(len(stops) * 2),
		idByStop: make(map[string]int, len(stops)),
		segments: make([]Segment, 0, len(stops)),
	}

	if err := g.addStops(stops); err != nil {
		return nil, err
	}
	if err := g.addBuses(cat); err != nil {
		return nil, err
	}

	return g, nil
}

func (g *Graph) addStops(stops []*domain.Stop) error {
	for i, stop := range stops {
		g.idByStop[stop.Name] = i

		edgeID := g.inner.AddEdge(BeforeWaitID(i), AfterWaitID(i), float64(g.settings.WaitTime))
		g.recordSegment(edgeID, Segment{
			Type:     SegmentWait,
			Time:     float64(g.settings.WaitTime),
			StopName: stop.Name,
		})
	}
	return nil
}

func (g *Graph) addBuses(cat *catalogue.Catalogue) error {
	for _, bus := range cat.AllBuses() {
		if err := g.addBusDirection(cat, bus.Name, bus.Route); err != nil {
			return err
		}
		if !bus.IsCircle {
			if err := g.addBusDirection(cat, bus.Name, reversed(bus.Route)); err != nil {
				return err
			}
		}
	}
	return nil
}

// addBusDirection adds a Ride edge for every ordered pair (from, to) of
// positions in seq with from < to. It accumulates road
// distance incrementally, so it touches each consecutive pair's distance
// exactly once per (from, *) inner loop.
func (g *Graph) addBusDirection(cat *catalogue.Catalogue, busName string, seq []*domain.Stop) error {
	for from := 0; from < len(seq)-1; from++ {
		fromOrd := g.idByStop[seq[from].Name]

		distance := 0
		for to := from + 1; to < len(seq); to++ {
			d, err := cat.GetDistance(seq[to-1].Name, seq[to].Name)
			if err != nil {
				return fmt.Errorf("bus %q: %w", busName, err)
			}
			distance += d
			toOrd := g.idByStop[seq[to].Name]

			time := float64(distance) / (g.settings.Velocity * factorKmPerHToMPerMin)

			edgeID := g.inner.AddEdge(AfterWaitID(fromOrd), BeforeWaitID(toOrd), time)
			g.recordSegment(edgeID, Segment{
				Type:      SegmentBus,
				Time:      time,
				BusName:   busName,
				SpanCount: to - from,
			})
		}
	}
	return nil
}

func reversed(stops []*domain.Stop) []*domain.Stop {
	out := make([]*domain.Stop, len(stops))
	for i, s := range stops {
		out[len(stops)-1-i] = s
	}
	return out
}
