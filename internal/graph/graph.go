// Package graph models the weighted conflict graph between agents and
// provides the generators and algorithms the coloring strategies build on.
//
// Nodes are dense agent ids 0..N-1. Edges are undirected and carry an integer
// weight. Neighbor lists keep insertion order, which makes Edges, and
// therefore minimum spanning tree tie-breaking, fully determined by how the
// graph was built.
package graph

import (
	"fmt"
)

// Edge is an undirected weighted edge. U is the endpoint that enumerated it.
type Edge struct {
	U      int `json:"u"`
	V      int `json:"v"`
	Weight int `json:"weight"`
}

type edgeKey struct{ a, b int }

func keyOf(u, v int) edgeKey {
	if u > v {
		u, v = v, u
	}
	return edgeKey{u, v}
}

// Graph is an undirected weighted conflict graph over nodes 0..N-1.
type Graph struct {
	adj     [][]int
	weights map[edgeKey]int
}

// New returns a graph with numNodes nodes and no edges.
func New(numNodes int) *Graph {
	if numNodes < 0 {
		numNodes = 0
	}
	return &Graph{
		adj:     make([][]int, numNodes),
		weights: make(map[edgeKey]int),
	}
}

// NumNodes returns the number of nodes.
func (g *Graph) NumNodes() int {
	return len(g.adj)
}

// NumEdges returns the number of undirected edges.
func (g *Graph) NumEdges() int {
	return len(g.weights)
}

// AddEdge adds the undirected edge u-v with the given weight. It reports
// false without changing anything if the edge already exists.
func (g *Graph) AddEdge(u, v, weight int) (bool, error) {
	if err := g.checkNode(u); err != nil {
		return false, err
	}
	if err := g.checkNode(v); err != nil {
		return false, err
	}
	if u == v {
		return false, fmt.Errorf("self-loop on node %d", u)
	}
	k := keyOf(u, v)
	if _, ok := g.weights[k]; ok {
		return false, nil
	}
	g.weights[k] = weight
	g.adj[u] = append(g.adj[u], v)
	g.adj[v] = append(g.adj[v], u)
	return true, nil
}

// HasEdge reports whether u and v are adjacent.
func (g *Graph) HasEdge(u, v int) bool {
	_, ok := g.weights[keyOf(u, v)]
	return ok
}

// Weight returns the weight of edge u-v.
func (g *Graph) Weight(u, v int) (int, bool) {
	w, ok := g.weights[keyOf(u, v)]
	return w, ok
}

// Neighbors returns u's neighbors in insertion order. The slice must not be
// modified.
func (g *Graph) Neighbors(u int) []int {
	return g.adj[u]
}

// Degree returns the number of neighbors of u.
func (g *Graph) Degree(u int) int {
	return len(g.adj[u])
}

// Edges enumerates every edge once: nodes ascending, and for each node its
// neighbors in insertion order, skipping neighbors already enumerated.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, len(g.weights))
	for u, nbrs := range g.adj {
		for _, v := range nbrs {
			if v < u {
				continue
			}
			edges = append(edges, Edge{U: u, V: v, Weight: g.weights[keyOf(u, v)]})
		}
	}
	return edges
}

// TotalWeight returns the sum of all edge weights.
func (g *Graph) TotalWeight() int {
	total := 0
	for _, w := range g.weights {
		total += w
	}
	return total
}

// Equal reports whether g and other have the same nodes, edge set, weights
// and neighbor order.
func (g *Graph) Equal(other *Graph) bool {
	if g.NumNodes() != other.NumNodes() || g.NumEdges() != other.NumEdges() {
		return false
	}
	for u := range g.adj {
		if len(g.adj[u]) != len(other.adj[u]) {
			return false
		}
		for i, v := range g.adj[u] {
			if other.adj[u][i] != v {
				return false
			}
		}
	}
	for k, w := range g.weights {
		if other.weights[k] != w {
			return false
		}
	}
	return true
}

func (g *Graph) checkNode(u int) error {
	if u < 0 || u >= len(g.adj) {
		return fmt.Errorf("node %d out of range [0, %d)", u, len(g.adj))
	}
	return nil
}
