// Package router precomputes all-pairs shortest paths over a graph.Digraph:
// for every (u, v) it keeps the minimum total weight and the id of the
// last edge on a minimum-weight path, following the Floyd-Warshall schema
// expressed over edge ids rather than bare weights so that a path can be
// reconstructed edge-by-edge instead of vertex-by-vertex. The triple-loop
// shape mirrors katalvlaran/lvlath's matrix/ops.FloydWarshall.
package router

import "github.com/passbi/transitcat/internal/graph"

// Record is one cell of the all-pairs table. A zero Record with Present
// false means no path exists between the pair.
type Record struct {
	Present     bool
	Weight      float64
	LastEdge    int // edge id of the final hop; meaningless if HasLastEdge is false
	HasLastEdge bool
}

// Route is a reconstructed shortest path.
type Route struct {
	Weight float64
	Edges  []int
}

// Router holds the precomputed n x n table of Records over a graph's
// vertex set. It does not retain the graph itself: BuildRoute takes the
// graph as an argument to reconstruct routes on demand.
type Router struct {
	n     int
	table []Record // row-major n*n
}

func (r *Router) at(i, j int) Record {
	return r.table[i*r.n+j]
}

func (r *Router) set(i, j int, rec Record) {
	r.table[i*r.n+j] = rec
}

// Build precomputes the all-pairs table for g. Weights must be
// non-negative.
func Build(g *graph.Digraph) *Router {
	n := g.VertexCount()
	r := &Router{n: n, table: make([]Record, n*n)}

	// Stage 1: every vertex reaches itself at weight 0, no edge traversed.
	for v := 0; v < n; v++ {
		r.set(v, v, Record{Present: true, Weight: 0, HasLastEdge: false})
	}

	// Stage 2: seed direct edges, keeping the cheapest parallel edge and
	// preferring the first-seen edge on ties.
	for id := 0; id < g.EdgeCount(); id++ {
		e := g.Edge(id)
		cur := r.at(e.From, e.To)
		if !cur.Present || e.Weight < cur.Weight {
			r.set(e.From, e.To, Record{Present: true, Weight: e.Weight, LastEdge: id, HasLastEdge: true})
		}
	}

	// Stage 3: relax through every intermediate vertex k.
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			ik := r.at(i, k)
			if !ik.Present {
				continue
			}
			for j := 0; j < n; j++ {
				kj := r.at(k, j)
				if !kj.Present {
					continue
				}
				candidate := ik.Weight + kj.Weight
				cur := r.at(i, j)
				if !cur.Present || candidate < cur.Weight {
					r.set(i, j, Record{
						Present:     true,
						Weight:      candidate,
						LastEdge:    kj.LastEdge,
						HasLastEdge: kj.HasLastEdge,
					})
				}
			}
		}
	}

	return r
}

// BuildRoute reconstructs the shortest path from src to dst by following
// LastEdge links backward from dst, using g to discover each edge's source
// vertex. Returns false if no path exists.
func (r *Router) BuildRoute(g *graph.Digraph, src, dst int) (Route, bool) {
	rec := r.at(src, dst)
	if !rec.Present {
		return Route{}, false
	}
	if !rec.HasLastEdge {
		return Route{Weight: 0, Edges: nil}, true
	}

	var edges []int
	cur := dst
	for cur != src {
		rec := r.at(src, cur)
		if !rec.Present || !rec.HasLastEdge {
			return Route{}, false
		}
		edges = append(edges, rec.LastEdge)
		cur = g.Edge(rec.LastEdge).From
	}

	// edges were collected dst->src; reverse into travel order.
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}

	return Route{Weight: rec.Weight, Edges: edges}, true
}

// Table exposes the raw records for persistence, serialized verbatim.
// Row-major, n*n.
func (r *Router) Table() (n int, records []Record) {
	return r.n, r.table
}

// FromTable restores a Router from a previously persisted table without
// re-running relaxation.
func FromTable(n int, records []Record) *Router {
	table := make([]Record, len(records))
	copy(table, records)
	return &Router{n: n, table: table}
}
