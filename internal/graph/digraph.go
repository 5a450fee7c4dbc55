// Package graph implements a generic append-only weighted directed graph:
// dense integer vertex ids, dense integer edge ids assigned in insertion
// order, and no edge removal. It mirrors the adjacency-list shape of an
// in-memory routing graph (Nodes/Edges maps), specialized to dense ids
// and float64 weights instead of string ids and struct payloads.
package graph

// Edge is a single directed, weighted connection. An edge's id is its
// position in insertion order and doubles as its stable identifier.
type Edge struct {
	From   int
	To     int
	Weight float64
}

// Digraph is an append-only directed weighted graph over vertices
// 0..VertexCount()-1.
type Digraph struct {
	vertexCount int
	edges       []Edge
	incident    [][]int // vertex -> edge ids leaving it
}

// New returns an empty digraph over vertexCount vertices (0-indexed).
func New(vertexCount int) *Digraph {
	return &Digraph{
		vertexCount: vertexCount,
		incident:    make([][]int, vertexCount),
	}
}

// VertexCount returns the number of vertices the graph was built with.
func (g *Digraph) VertexCount() int {
	return g.vertexCount
}

// AddEdge appends a new edge from -> to with the given weight and returns
// its dense edge id.
func (g *Digraph) AddEdge(from, to int, weight float64) int {
	id := len(g.edges)
	g.edges = append(g.edges, Edge{From: from, To: to, Weight: weight})
	g.incident[from] = append(g.incident[from], id)
	return id
}

// EdgeCount returns the number of edges added so far.
func (g *Digraph) EdgeCount() int {
	return len(g.edges)
}

// Edge returns the edge with the given id.
func (g *Digraph) Edge(id int) Edge {
	return g.edges[id]
}

// IncidentEdges returns the ids of edges leaving vertex v, in the order
// they were added.
func (g *Digraph) IncidentEdges(v int) []int {
	return g.incident[v]
}

// FromEdges rebuilds a digraph from a previously recorded edge list,
// preserving edge ids as the slice's index order. Used to restore a graph
// from a persisted blob.
func FromEdges(vertexCount int, edges []Edge) *Digraph {
	g := New(vertexCount)
	for _, e := range edges {
		g.AddEdge(e.From, e.To, e.Weight)
	}
	return g
}
