package graph

import (
	"github.com/gammazero/deque"
)

// Components returns the connected components of g. Each component lists
// its nodes in BFS order from its smallest node; components are ordered by
// smallest node.
func (g *Graph) Components() [][]int {
	n := g.NumNodes()
	visited := make([]bool, n)
	var components [][]int
	var queue deque.Deque[int]

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		visited[start] = true
		queue.PushBack(start)
		var component []int
		for queue.Len() > 0 {
			u := queue.PopFront()
			component = append(component, u)
			for _, v := range g.adj[u] {
				if !visited[v] {
					visited[v] = true
					queue.PushBack(v)
				}
			}
		}
		components = append(components, component)
	}
	return components
}

// Connected reports whether g has exactly one component.
func (g *Graph) Connected() bool {
	return len(g.Components()) == 1
}
