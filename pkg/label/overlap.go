package label

import (
	"sort"

	"github.com/jwebster45206/map-engine/pkg/layout"
	"github.com/jwebster45206/map-engine/pkg/worldmap"
)

// Box is an estimated label bounding box in local coordinates.
type Box struct {
	X      float64 // left edge
	Y      float64 // top edge
	Width  float64
	Height float64
}

func (b Box) overlaps(o Box, margin float64) bool {
	return b.X < o.X+o.Width+margin && o.X < b.X+b.Width+margin &&
		b.Y < o.Y+o.Height+margin && o.Y < b.Y+b.Height+margin
}

// EstimateBox returns the estimated bounding box of a node's label with
// the given extra vertical offset applied. Feature labels center on the
// node; all other labels hang below the node's rim.
func EstimateBox(n *worldmap.MapNode, offset float64, cfg layout.Config) Box {
	lines := Wrap(n.Name, n.NodeType)
	font := FontPx(n.NodeType, cfg)

	longest := 0
	for _, l := range lines {
		if c := len([]rune(l)); c > longest {
			longest = c
		}
	}
	w := float64(longest) * font * avgCharWidthEm
	h := float64(len(lines)) * cfg.LabelLineHeightEm * font

	var top float64
	if n.NodeType == worldmap.NodeTypeFeature {
		top = n.Position.Y - h/2 + offset
	} else {
		top = n.Position.Y + layout.Radius(n) + cfg.LabelMarginPx + offset
	}
	return Box{X: n.Position.X - w/2, Y: top, Width: w, Height: h}
}

// ResolveOffsets computes a vertical label offset per node id so that
// estimated label boxes stop colliding. Deliberately local: only adjacent
// siblings (ordered by x) and non-feature ancestors of feature nodes are
// checked, not all pairs. Feature labels are never moved; when a feature
// collides with a non-feature, the non-feature yields.
func ResolveOffsets(positioned []worldmap.MapNode, data *worldmap.MapData, cfg layout.Config) map[string]float64 {
	cfg = cfg.Clamped()
	offsets := make(map[string]float64)

	byParent := make(map[string][]*worldmap.MapNode)
	for i := range positioned {
		n := &positioned[i]
		byParent[n.ParentNodeID] = append(byParent[n.ParentNodeID], n)
	}

	parents := make([]string, 0, len(byParent))
	for p := range byParent {
		parents = append(parents, p)
	}
	sort.Strings(parents)

	for _, p := range parents {
		group := byParent[p]
		sort.Slice(group, func(i, j int) bool {
			if group[i].Position.X != group[j].Position.X {
				return group[i].Position.X < group[j].Position.X
			}
			return group[i].ID < group[j].ID
		})
		for i := 0; i+1 < len(group); i++ {
			resolvePair(group[i], group[i+1], offsets, cfg)
		}
	}

	// Non-feature labels also yield to any feature nested anywhere below
	// them, since a deep feature can sit visually on top of its ancestor's
	// label.
	for i := range positioned {
		n := &positioned[i]
		if n.NodeType == worldmap.NodeTypeFeature {
			continue
		}
		for j := range positioned {
			f := &positioned[j]
			if f.NodeType != worldmap.NodeTypeFeature || !data.IsAncestor(n.ID, f.ID) {
				continue
			}
			nb := EstimateBox(n, offsets[n.ID], cfg)
			fb := EstimateBox(f, 0, cfg)
			if nb.overlaps(fb, cfg.LabelOverlapMarginPx) {
				offsets[n.ID] += fb.Y + fb.Height + cfg.LabelOverlapMarginPx - nb.Y
			}
		}
	}
	return offsets
}

// resolvePair pushes the lower-priority of two adjacent siblings down far
// enough to clear the other's box.
func resolvePair(a, b *worldmap.MapNode, offsets map[string]float64, cfg layout.Config) {
	ab := EstimateBox(a, offsets[a.ID], cfg)
	bb := EstimateBox(b, offsets[b.ID], cfg)
	if !ab.overlaps(bb, cfg.LabelOverlapMarginPx) {
		return
	}

	aFeature := a.NodeType == worldmap.NodeTypeFeature
	bFeature := b.NodeType == worldmap.NodeTypeFeature
	switch {
	case aFeature && bFeature:
		// Feature labels never move.
	case aFeature:
		offsets[b.ID] += ab.Y + ab.Height + cfg.LabelOverlapMarginPx - bb.Y
	case bFeature:
		offsets[a.ID] += bb.Y + bb.Height + cfg.LabelOverlapMarginPx - ab.Y
	default:
		offsets[b.ID] += ab.Y + ab.Height + cfg.LabelOverlapMarginPx - bb.Y
	}
}
