package graph

import (
	"cmp"

	"github.com/addrummond/heap"
)

// kruskalEdge orders candidate edges by weight, then by enumeration order.
type kruskalEdge struct {
	Edge
	seq int
}

func (a *kruskalEdge) Cmp(b *kruskalEdge) int {
	if c := cmp.Compare(a.Weight, b.Weight); c != 0 {
		return c
	}
	return cmp.Compare(a.seq, b.seq)
}

// MinimumSpanningTree returns a minimum spanning forest of g computed with
// Kruskal's algorithm. Equal-weight edges are considered in Edges order, so
// the result is deterministic. The forest keeps all of g's nodes; a
// disconnected g yields one tree per component.
func (g *Graph) MinimumSpanningTree() *Graph {
	n := g.NumNodes()
	tree := New(n)
	if n == 0 {
		return tree
	}

	var candidates heap.Heap[kruskalEdge, heap.Min]
	for i, e := range g.Edges() {
		heap.PushOrderable(&candidates, kruskalEdge{Edge: e, seq: i})
	}

	uf := newUnionFind(n)
	for tree.NumEdges() < n-1 {
		e, ok := heap.PopOrderable(&candidates)
		if !ok {
			break
		}
		if !uf.union(e.U, e.V) {
			continue
		}
		// Cannot fail: endpoints are in range and distinct.
		_, _ = tree.AddEdge(e.U, e.V, e.Weight)
	}
	return tree
}

// IsForest reports whether g contains no cycles.
func (g *Graph) IsForest() bool {
	uf := newUnionFind(g.NumNodes())
	for _, e := range g.Edges() {
		if !uf.union(e.U, e.V) {
			return false
		}
	}
	return true
}

type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

// union merges the sets of a and b and reports whether they were distinct.
func (uf *unionFind) union(a, b int) bool {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return false
	}
	switch {
	case uf.rank[ra] < uf.rank[rb]:
		uf.parent[ra] = rb
	case uf.rank[ra] > uf.rank[rb]:
		uf.parent[rb] = ra
	default:
		uf.parent[rb] = ra
		uf.rank[ra]++
	}
	return true
}
