package layout

import (
	"fmt"
	"hash/fnv"

	"github.com/jwebster45206/map-engine/pkg/worldmap"
)

// Config holds the layout and label parameters. Pure data; out-of-range
// values are clamped by Clamped rather than rejected.
type Config struct {
	IdealEdgeLength      float64 `json:"ideal_edge_length"`       // floor for child ring radius
	NestedPadding        float64 `json:"nested_padding"`          // px between a child circle and its parent's rim
	NestedAnglePadding   float64 `json:"nested_angle_padding"`    // radians reserved between adjacent children
	LabelMarginPx        float64 `json:"label_margin_px"`         // gap between a node's rim and its label
	LabelLineHeightEm    float64 `json:"label_line_height_em"`    // line height in ems
	LabelOverlapMarginPx float64 `json:"label_overlap_margin_px"` // extra clearance when pushing labels apart
	ItemIconScale        float64 `json:"item_icon_scale"`         // icon overlay size relative to node radius
	BaseFontPx           float64 `json:"base_font_px"`            // label font size before per-type scaling
}

// DefaultConfig returns the host's default parameters.
func DefaultConfig() Config {
	return Config{
		IdealEdgeLength:      80,
		NestedPadding:        12,
		NestedAnglePadding:   0.15,
		LabelMarginPx:        4,
		LabelLineHeightEm:    1.1,
		LabelOverlapMarginPx: 2,
		ItemIconScale:        0.5,
		BaseFontPx:           12,
	}
}

// Hash fingerprints the parameter set. Hosts cache positioned snapshots
// keyed by map version and config hash, so relayout is skipped when
// neither content nor parameters changed.
func (c Config) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%g|%g|%g|%g|%g|%g|%g|%g",
		c.IdealEdgeLength, c.NestedPadding, c.NestedAnglePadding,
		c.LabelMarginPx, c.LabelLineHeightEm, c.LabelOverlapMarginPx,
		c.ItemIconScale, c.BaseFontPx)
	return h.Sum64()
}

type clampRange struct{ lo, hi float64 }

// Clamped returns a copy with every parameter forced into its sane range.
// Zero values fall back to the defaults.
func (c Config) Clamped() Config {
	def := DefaultConfig()
	clamp := func(v, def float64, r clampRange) float64 {
		if v == 0 {
			v = def
		}
		if v < r.lo {
			return r.lo
		}
		if v > r.hi {
			return r.hi
		}
		return v
	}
	return Config{
		IdealEdgeLength:      clamp(c.IdealEdgeLength, def.IdealEdgeLength, clampRange{10, 1000}),
		NestedPadding:        clamp(c.NestedPadding, def.NestedPadding, clampRange{0, 200}),
		NestedAnglePadding:   clamp(c.NestedAnglePadding, def.NestedAnglePadding, clampRange{0, 1}),
		LabelMarginPx:        clamp(c.LabelMarginPx, def.LabelMarginPx, clampRange{0, 50}),
		LabelLineHeightEm:    clamp(c.LabelLineHeightEm, def.LabelLineHeightEm, clampRange{0.5, 3}),
		LabelOverlapMarginPx: clamp(c.LabelOverlapMarginPx, def.LabelOverlapMarginPx, clampRange{0, 50}),
		ItemIconScale:        clamp(c.ItemIconScale, def.ItemIconScale, clampRange{0.1, 2}),
		BaseFontPx:           clamp(c.BaseFontPx, def.BaseFontPx, clampRange{6, 48}),
	}
}

// defaultRadii is the rendered radius per node type for nodes with no
// children and no cached visual radius.
var defaultRadii = map[worldmap.NodeType]float64{
	worldmap.NodeTypeRegion:     90,
	worldmap.NodeTypeLocation:   60,
	worldmap.NodeTypeSettlement: 45,
	worldmap.NodeTypeDistrict:   45,
	worldmap.NodeTypeExterior:   35,
	worldmap.NodeTypeInterior:   28,
	worldmap.NodeTypeRoom:       20,
	worldmap.NodeTypeFeature:    8,
}

// DefaultRadius returns the per-type default radius. Unknown types get the
// room default.
func DefaultRadius(t worldmap.NodeType) float64 {
	if r, ok := defaultRadii[t]; ok {
		return r
	}
	return defaultRadii[worldmap.NodeTypeRoom]
}

// Radius resolves a node's rendered radius: the cached visual radius when
// the layout engine has set one, else the per-type default.
func Radius(n *worldmap.MapNode) float64 {
	if n.VisualRadius > 0 {
		return n.VisualRadius
	}
	return DefaultRadius(n.NodeType)
}
