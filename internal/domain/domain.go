// Package domain holds the catalogue's core value types: stops, buses, and
// the statistics derived from them.
package domain

import "github.com/passbi/transitcat/internal/geo"

// Stop is a named geographic point on the network. Stops are address-stable
// once created: a Bus holds a durable *Stop reference into the catalogue's
// stop arena, never a copy.
type Stop struct {
	Name   string
	Coords geo.Coordinates
}

// Bus is a named ordered sequence of stop references, either circular or
// linear. IsCircle selects which traversal semantics apply.
type Bus struct {
	Name     string
	Route    []*Stop
	IsCircle bool
}

// RouteSeq returns the stops in the order they are actually traversed:
// the route as given for a circular bus, or the route followed by its
// reverse (excluding the turnaround duplicate) for a linear bus.
func (b *Bus) RouteSeq() []*Stop {
	if b.IsCircle || len(b.Route) == 0 {
		return b.Route
	}

	seq := make([]*Stop, 0, len(b.Route)*2-1)
	seq = append(seq, b.Route...)
	for i := len(b.Route) - 2; i >= 0; i-- {
		seq = append(seq, b.Route[i])
	}
	return seq
}

// BusInfo is the derived per-bus summary returned by Catalogue.BusInfo.
type BusInfo struct {
	Name            string
	StopCount       int
	UniqueStopCount int
	RouteLength     int
	Curvature       float64
}
