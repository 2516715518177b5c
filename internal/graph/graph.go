// Package graph builds and queries the knowledge graph connecting
// semantically related chunks of a single document.
package graph

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/cloo-solutions/textgraph/internal/domain"
)

// Node is a graph node carrying denormalized chunk attributes so the graph
// can be inspected without touching the chunk list.
type Node struct {
	id        int64
	ChunkID   string
	Preview   string
	ChunkType domain.ChunkType
	Entities  []string
	Keywords  []string
}

// ID implements gonum's graph.Node.
func (n *Node) ID() int64 { return n.id }

// Neighbor is an adjacent chunk and its edge weight.
type Neighbor struct {
	ChunkID string
	Weight  float64
}

// Edge is an undirected weighted edge between two chunks. A and B are
// ordered lexicographically so edge sets compare directly.
type Edge struct {
	A      string
	B      string
	Weight float64
}

// Graph is an undirected weighted graph over one chunk set, keyed by chunk
// ID. It is immutable after construction and only valid against the chunk
// list it was built from; rebuild it whenever that list changes.
type Graph struct {
	g     *simple.WeightedUndirectedGraph
	nodes map[string]*Node
}

func newGraph() *Graph {
	return &Graph{
		g:     simple.NewWeightedUndirectedGraph(0, 0),
		nodes: make(map[string]*Node),
	}
}

func (g *Graph) addNode(n *Node) {
	g.g.AddNode(n)
	g.nodes[n.ChunkID] = n
}

func (g *Graph) addEdge(a, b string, weight float64) {
	from, to := g.nodes[a], g.nodes[b]
	if from == nil || to == nil {
		return
	}
	g.g.SetWeightedEdge(g.g.NewWeightedEdge(from, to, weight))
}

// Order returns the node count.
func (g *Graph) Order() int {
	if g == nil {
		return 0
	}
	return len(g.nodes)
}

// Size returns the edge count.
func (g *Graph) Size() int {
	if g == nil {
		return 0
	}
	return g.g.WeightedEdges().Len()
}

// Node returns the node for a chunk ID.
func (g *Graph) Node(chunkID string) (*Node, bool) {
	if g == nil {
		return nil, false
	}
	n, ok := g.nodes[chunkID]
	return n, ok
}

// Weight returns the edge weight between two chunks, if an edge exists.
func (g *Graph) Weight(chunkID, otherID string) (float64, bool) {
	if g == nil {
		return 0, false
	}
	a, ok := g.nodes[chunkID]
	if !ok {
		return 0, false
	}
	b, ok := g.nodes[otherID]
	if !ok {
		return 0, false
	}
	e := g.g.WeightedEdge(a.ID(), b.ID())
	if e == nil {
		return 0, false
	}
	return e.Weight(), true
}

// Neighbors returns the chunks adjacent to chunkID, sorted by edge weight
// descending with chunk ID as the tie break.
func (g *Graph) Neighbors(chunkID string) []Neighbor {
	if g == nil {
		return nil
	}
	n, ok := g.nodes[chunkID]
	if !ok {
		return nil
	}

	var out []Neighbor
	it := g.g.From(n.ID())
	for it.Next() {
		adj := it.Node().(*Node)
		e := g.g.WeightedEdge(n.ID(), adj.ID())
		out = append(out, Neighbor{ChunkID: adj.ChunkID, Weight: e.Weight()})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].ChunkID < out[j].ChunkID
	})
	return out
}

// Edges returns every edge with lexicographically ordered endpoints,
// sorted for stable comparison.
func (g *Graph) Edges() []Edge {
	if g == nil {
		return nil
	}

	var out []Edge
	it := g.g.WeightedEdges()
	for it.Next() {
		e := it.WeightedEdge()
		a := e.From().(*Node).ChunkID
		b := e.To().(*Node).ChunkID
		if b < a {
			a, b = b, a
		}
		out = append(out, Edge{A: a, B: b, Weight: e.Weight()})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}
