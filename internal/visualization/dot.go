// Package visualization renders conflict graphs and result summaries in
// various output formats.
package visualization

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/JieUpup/MRGC/internal/coloring"
	"github.com/JieUpup/MRGC/internal/graph"
	"gonum.org/v1/plot/palette/brewer"
)

// Format specifies the output format for graph rendering.
type Format string

const (
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
)

// ParseFormat maps a format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatDOT, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (valid: dot, json)", s)
	}
}

// slotPaletteSize is the largest qualitative Set3 palette.
const slotPaletteSize = 12

// slotColors returns one fill color per slot, cycling once slots outnumber
// the palette.
func slotColors() ([]string, error) {
	palette, err := brewer.GetPalette(brewer.TypeQualitative, "Set3", slotPaletteSize)
	if err != nil {
		return nil, fmt.Errorf("loading slot palette: %w", err)
	}
	colors := palette.Colors()
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = hexColor(c)
	}
	return out, nil
}

func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

func checkColoring(g *graph.Graph, c coloring.Coloring) error {
	if c != nil && len(c) != g.NumNodes() {
		return fmt.Errorf("coloring has %d entries for %d agents", len(c), g.NumNodes())
	}
	return nil
}

// RenderDOT produces an undirected Graphviz DOT representation of g with
// edge weights as labels. When c is non-nil each agent is filled with its
// slot's color and labelled with the slot number.
func RenderDOT(g *graph.Graph, c coloring.Coloring) (string, error) {
	if err := checkColoring(g, c); err != nil {
		return "", err
	}
	colors, err := slotColors()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("graph mrgc {\n")
	b.WriteString("  layout=neato;\n")
	b.WriteString("  node [shape=circle, style=filled, fontname=\"Helvetica\"];\n")
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	for u := 0; u < g.NumNodes(); u++ {
		if c == nil {
			fmt.Fprintf(&b, "  %d [label=\"%d\", fillcolor=\"lightgray\"];\n", u, u)
			continue
		}
		slot := c[u]
		fmt.Fprintf(&b, "  %d [label=\"%d\\nslot %d\", fillcolor=%q];\n",
			u, u, slot, colors[slot%len(colors)])
	}
	b.WriteString("\n")

	for _, e := range g.Edges() {
		style := "solid"
		if c != nil && c[e.U] == c[e.V] {
			// Endpoints share a slot.
			style = "dashed"
		}
		fmt.Fprintf(&b, "  %d -- %d [label=\"%d\", style=%s];\n", e.U, e.V, e.Weight, style)
	}

	b.WriteString("}\n")
	return b.String(), nil
}

// RenderJSON produces a JSON graph representation with nodes and edges arrays.
func RenderJSON(g *graph.Graph, c coloring.Coloring) (map[string]interface{}, error) {
	if err := checkColoring(g, c); err != nil {
		return nil, err
	}

	jsonNodes := make([]map[string]interface{}, 0, g.NumNodes())
	for u := 0; u < g.NumNodes(); u++ {
		node := map[string]interface{}{
			"id":     u,
			"degree": g.Degree(u),
		}
		if c != nil {
			node["slot"] = c[u]
		}
		jsonNodes = append(jsonNodes, node)
	}

	edges := g.Edges()
	jsonEdges := make([]map[string]interface{}, 0, len(edges))
	for _, e := range edges {
		jsonEdges = append(jsonEdges, map[string]interface{}{
			"source": e.U,
			"target": e.V,
			"weight": e.Weight,
		})
	}

	out := map[string]interface{}{
		"nodes":        jsonNodes,
		"edges":        jsonEdges,
		"node_count":   len(jsonNodes),
		"edge_count":   len(jsonEdges),
		"total_weight": g.TotalWeight(),
		"components":   len(g.Components()),
		"forest":       g.IsForest(),
	}
	if c != nil {
		out["slot_count"] = c.ColorCount()
	}
	return out, nil
}
