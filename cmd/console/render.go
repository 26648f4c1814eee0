package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jwebster45206/map-engine/pkg/label"
	"github.com/jwebster45206/map-engine/pkg/layout"
	"github.com/jwebster45206/map-engine/pkg/worldmap"
)

// Cell style classes for the character grid.
const (
	styleNone = iota
	styleEdge
	styleRoute
	styleNode
	styleFeature
	styleCurrent
	styleDestination
	styleLabel
	styleItem
)

var cellStyles = map[int]lipgloss.Style{
	styleEdge:        edgeStyle,
	styleRoute:       routeStyle,
	styleNode:        nodeStyle,
	styleFeature:     featureStyle,
	styleCurrent:     currentStyle,
	styleDestination: destinationStyle,
	styleLabel:       labelStyle,
	styleItem:        itemStyle,
}

type grid struct {
	w, h   int
	runes  [][]rune
	styles [][]int
}

func newGrid(w, h int) *grid {
	g := &grid{w: w, h: h}
	g.runes = make([][]rune, h)
	g.styles = make([][]int, h)
	for y := 0; y < h; y++ {
		g.runes[y] = make([]rune, w)
		g.styles[y] = make([]int, w)
		for x := 0; x < w; x++ {
			g.runes[y][x] = ' '
		}
	}
	return g
}

func (g *grid) set(x, y int, r rune, style int) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}
	g.runes[y][x] = r
	g.styles[y][x] = style
}

// text writes a string centered on x, clipping at the grid edges.
func (g *grid) text(x, y int, s string, style int) {
	start := x - len([]rune(s))/2
	for i, r := range []rune(s) {
		g.set(start+i, y, r, style)
	}
}

// line draws a dotted segment between two cells (Bresenham).
func (g *grid) line(x0, y0, x1, y1 int, r rune, style int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		if g.runes[clampInt(y0, 0, g.h-1)][clampInt(x0, 0, g.w-1)] == ' ' {
			g.set(x0, y0, r, style)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (g *grid) render() string {
	var b strings.Builder
	for y := 0; y < g.h; y++ {
		x := 0
		for x < g.w {
			style := g.styles[y][x]
			run := x
			for run < g.w && g.styles[y][run] == style {
				run++
			}
			segment := string(g.runes[y][x:run])
			if style == styleNone {
				b.WriteString(segment)
			} else {
				b.WriteString(cellStyles[style].Render(segment))
			}
			x = run
		}
		if y < g.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// toCell projects a local map position into grid cells through the camera.
func (m *ConsoleUI) toCell(pos worldmap.Position) (int, int, bool) {
	mapW, mapH := m.mapPaneSize()
	view := m.camera.View()
	if view.Width <= 0 || view.Height <= 0 {
		return 0, 0, false
	}
	x := int((pos.X - view.MinX) / view.Width * float64(mapW))
	y := int((pos.Y - view.MinY) / view.Height * float64(mapH))
	return x, y, x >= -m.width && x < 2*m.width && y >= -m.height && y < 2*m.height
}

// nodeAt returns the id of the node rendered nearest the cell, within a
// small hit radius, preferring deeper (smaller) nodes.
func (m *ConsoleUI) nodeAt(cx, cy int) string {
	snap := m.scheduler.Snapshot()
	best := ""
	bestDepth := -1
	for i := range snap.Nodes {
		n := &snap.Nodes[i]
		x, y, ok := m.toCell(n.Position)
		if !ok {
			continue
		}
		if abs(x-cx) <= 2 && abs(y-cy) <= 1 {
			if d := n.NodeType.Depth(); d > bestDepth {
				best = n.ID
				bestDepth = d
			}
		}
	}
	return best
}

func (m *ConsoleUI) renderMap() string {
	mapW, mapH := m.mapPaneSize()
	g := newGrid(mapW, mapH)
	snap := m.scheduler.Snapshot()

	byID := make(map[string]*worldmap.MapNode, len(snap.Nodes))
	for i := range snap.Nodes {
		byID[snap.Nodes[i].ID] = &snap.Nodes[i]
	}

	routeEdges := make(map[string]bool, len(m.route))
	routeNodes := make(map[string]bool, len(m.route))
	for _, s := range m.route {
		routeEdges[s.EdgeID] = true
		routeNodes[s.NodeID] = true
	}

	// Travel edges first so nodes and labels draw over them.
	for _, e := range m.data.Edges {
		if !e.Data.Type.Traversable() {
			continue
		}
		src, dst := byID[e.SourceNodeID], byID[e.TargetNodeID]
		if src == nil || dst == nil {
			continue
		}
		x0, y0, ok0 := m.toCell(src.Position)
		x1, y1, ok1 := m.toCell(dst.Position)
		if !ok0 && !ok1 {
			continue
		}
		r, style := '·', styleEdge
		if routeEdges[e.ID] {
			r, style = '•', styleRoute
		}
		g.line(x0, y0, x1, y1, r, style)
	}

	for i := range snap.Nodes {
		n := &snap.Nodes[i]
		x, y, ok := m.toCell(n.Position)
		if !ok {
			continue
		}

		r, style := '●', styleNode
		switch {
		case n.ID == m.currentNodeID:
			r, style = '@', styleCurrent
		case n.ID == m.destinationID:
			r, style = '◎', styleDestination
		case routeNodes[n.ID]:
			style = styleRoute
		case n.NodeType == worldmap.NodeTypeFeature:
			r, style = '·', styleFeature
		}
		g.set(x, y, r, style)

		if m.presence != nil && m.presence(n.ID) {
			g.set(x+1, y, '*', styleItem)
		}

		m.drawLabel(g, n, snap.LabelOffsets[n.ID], x, y)
	}

	return g.render()
}

// drawLabel places the wrapped label under the node (centered on it for
// features), converting the resolver's pixel offset into rows.
func (m *ConsoleUI) drawLabel(g *grid, n *worldmap.MapNode, offset float64, x, y int) {
	lines := label.Wrap(n.Name, n.NodeType)
	view := m.camera.View()
	_, mapH := m.mapPaneSize()
	rowPx := view.Height / float64(mapH) // local units per cell row

	style := styleLabel
	startY := y + 1
	if n.NodeType == worldmap.NodeTypeFeature {
		style = styleFeature
		startY = y
		// Feature labels sit beside the marker, never pushed.
		g.text(x+2+len([]rune(lines[0]))/2, y, lines[0], style)
		return
	}
	if rowPx > 0 {
		startY += int((layout.Radius(n) + offset) / rowPx)
	}
	for i, line := range lines {
		g.text(x, startY+i, line, style)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
