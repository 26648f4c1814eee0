// Package viewport maintains the camera window over the laid-out map and
// translates pointer, wheel and touch gestures into pan and zoom.
package viewport

import (
	"fmt"
	"strconv"
	"strings"
)

// ViewBox is the visible window into local map coordinates. Width and
// height are always positive.
type ViewBox struct {
	MinX   float64 `json:"min_x"`
	MinY   float64 `json:"min_y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// String serializes the viewbox in "minX minY width height" form. Only the
// persistence boundary should use the string form; everything else works
// with the struct.
func (v ViewBox) String() string {
	return fmt.Sprintf("%g %g %g %g", v.MinX, v.MinY, v.Width, v.Height)
}

// Parse reads a viewbox from its string form.
func Parse(s string) (ViewBox, error) {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return ViewBox{}, fmt.Errorf("viewbox: expected 4 fields, got %d", len(fields))
	}
	vals := make([]float64, 4)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return ViewBox{}, fmt.Errorf("viewbox: bad field %q: %w", f, err)
		}
		vals[i] = v
	}
	vb := ViewBox{MinX: vals[0], MinY: vals[1], Width: vals[2], Height: vals[3]}
	if vb.Width <= 0 || vb.Height <= 0 {
		return ViewBox{}, fmt.Errorf("viewbox: non-positive size %gx%g", vb.Width, vb.Height)
	}
	return vb, nil
}
