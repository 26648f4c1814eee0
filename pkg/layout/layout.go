// Package layout assigns a position and visual radius to every node of a
// map snapshot using a nested circular scheme: each node's children sit
// evenly spaced on a ring inside it, recursively.
package layout

import (
	"math"

	"github.com/jwebster45206/map-engine/pkg/geometry"
	"github.com/jwebster45206/map-engine/pkg/worldmap"
)

// startAngle places the first child of every ring at the top of its
// parent. A lone child also sits here, off the parent's center, so its
// label stays distinguishable from the parent's.
const startAngle = -math.Pi / 2

// minHalfAngle keeps the ring radius finite when angle padding eats the
// whole slice.
const minHalfAngle = 0.05

// Layout computes positions and visual radii for every node. Pure and
// deterministic: the input snapshot is not mutated, children are processed
// in id order, and identical inputs always produce identical output.
//
// Two passes over the containment tree: a post-order pass computes each
// node's radius from its children, then a pre-order pass places children
// on a ring around their parent. The primary root lands at the origin;
// additional roots (detached subtrees in bad data) are placed on a ring
// around it so everything still renders.
func Layout(data *worldmap.MapData, cfg Config) []worldmap.MapNode {
	cfg = cfg.Clamped()

	out := make([]worldmap.MapNode, len(data.Nodes))
	copy(out, data.Nodes)

	index := make(map[string]int, len(out))
	for i := range out {
		index[out[i].ID] = i
	}

	roots := data.Roots()
	if len(roots) == 0 {
		return out
	}

	radii := make(map[string]float64, len(out))
	for _, id := range roots {
		computeRadii(data, id, cfg, radii)
	}

	place := func(id string, center geometry.Point) {
		placeSubtree(data, id, center, cfg, radii, index, out)
	}

	place(roots[0], geometry.Point{})
	if len(roots) > 1 {
		// Detached subtrees orbit the primary root.
		primary := radii[roots[0]]
		step := 2 * math.Pi / float64(len(roots)-1)
		for i, id := range roots[1:] {
			dist := primary + radii[id] + cfg.IdealEdgeLength
			place(id, geometry.Polar(dist, startAngle+float64(i)*step))
		}
	}
	return out
}

// computeRadii fills radii bottom-up. A leaf's radius is its per-type
// default; an inner node's radius encloses its child ring with padding,
// floored at its own type default.
func computeRadii(data *worldmap.MapData, id string, cfg Config, radii map[string]float64) float64 {
	n := data.Node(id)
	children := data.Children(id)
	if len(children) == 0 {
		r := DefaultRadius(n.NodeType)
		radii[id] = r
		return r
	}

	maxChild := 0.0
	for _, c := range children {
		if r := computeRadii(data, c, cfg, radii); r > maxChild {
			maxChild = r
		}
	}

	ring := ringRadius(len(children), maxChild, cfg)
	r := ring + maxChild + cfg.NestedPadding
	if def := DefaultRadius(n.NodeType); r < def {
		r = def
	}
	radii[id] = r
	return r
}

// ringRadius returns the radius of the circle on which n child circles of
// at most maxChild radius sit without overlapping. Adjacent children are
// 2π/n apart minus the reserved angle padding, so padding inflates the
// ring rather than shrinking the slices.
func ringRadius(n int, maxChild float64, cfg Config) float64 {
	if n == 1 {
		return maxChild + cfg.NestedPadding
	}
	halfAngle := math.Pi/float64(n) - cfg.NestedAnglePadding/2
	if halfAngle < minHalfAngle {
		halfAngle = minHalfAngle
	}
	// Chord between adjacent centers must clear both child circles plus
	// padding: 2·R·sin(halfAngle) ≥ 2·maxChild + padding.
	r := (2*maxChild + cfg.NestedPadding) / (2 * math.Sin(halfAngle))
	if r < cfg.IdealEdgeLength {
		r = cfg.IdealEdgeLength
	}
	return r
}

func placeSubtree(data *worldmap.MapData, id string, center geometry.Point, cfg Config, radii map[string]float64, index map[string]int, out []worldmap.MapNode) {
	i := index[id]
	out[i].Position = worldmap.Position{X: center.X, Y: center.Y}
	out[i].VisualRadius = radii[id]

	children := data.Children(id)
	if len(children) == 0 {
		return
	}

	maxChild := 0.0
	for _, c := range children {
		if radii[c] > maxChild {
			maxChild = radii[c]
		}
	}
	ring := ringRadius(len(children), maxChild, cfg)
	step := 2 * math.Pi / float64(len(children))
	for j, c := range children {
		offset := geometry.Polar(ring, startAngle+float64(j)*step)
		placeSubtree(data, c, center.Add(offset), cfg, radii, index, out)
	}
}
