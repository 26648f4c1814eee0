package viewport

import (
	"github.com/jwebster45206/map-engine/pkg/geometry"
)

// ZoomStep is the multiplicative zoom factor applied per wheel tick.
const ZoomStep = 1.1

// Touch is one active touch point in device coordinates.
type Touch struct {
	ID    int
	Point geometry.Point
}

// Gesture state is a tagged union: the controller is always in exactly one
// of idle, panning or pinching, which makes "panning while pinching"
// unrepresentable.
type gestureState interface{ gesture() }

type idle struct{}

type panning struct{ anchor geometry.Point }

type pinching struct{ lastDist float64 }

func (idle) gesture()     {}
func (panning) gesture()  {}
func (pinching) gesture() {}

// Controller owns the camera window and interprets gestures against it.
// All event handlers return true when the event was consumed, which the
// binding uses to suppress the platform's default scroll/zoom behavior.
// Handlers run synchronously; responsiveness requires tracking every
// input event, so nothing here is debounced.
type Controller struct {
	screenW float64
	screenH float64
	minDim  float64
	maxDim  float64
	aspect  float64 // height/width, held constant across zooms

	view     ViewBox
	state    gestureState
	onChange func(ViewBox)
}

// NewController creates a controller with the camera centered on the
// origin at the base size. The zoom range is derived from the base width:
// [base/8, base×4].
func NewController(screenW, screenH, baseW, baseH float64, onChange func(ViewBox)) *Controller {
	if baseW <= 0 {
		baseW = 1000
	}
	if baseH <= 0 {
		baseH = baseW * 0.8
	}
	// ToLocal divides by the screen size; a zero screen would turn the
	// first pan or zoom into NaN positions.
	if screenW <= 0 {
		screenW = baseW
	}
	if screenH <= 0 {
		screenH = baseH
	}
	return &Controller{
		screenW:  screenW,
		screenH:  screenH,
		minDim:   baseW / 8,
		maxDim:   baseW * 4,
		aspect:   baseH / baseW,
		view:     ViewBox{MinX: -baseW / 2, MinY: -baseH / 2, Width: baseW, Height: baseH},
		state:    idle{},
		onChange: onChange,
	}
}

// View returns the current camera window.
func (c *Controller) View() ViewBox {
	return c.view
}

// SetView restores a persisted camera window, clamping its size into the
// legal zoom range.
func (c *Controller) SetView(v ViewBox) {
	if v.Width <= 0 || v.Height <= 0 {
		return
	}
	w := geometry.Clamp(v.Width, c.minDim, c.maxDim)
	v.Height = w * c.aspect
	v.Width = w
	c.view = v
	c.emit()
}

// SetScreenSize updates the device size of the render surface.
func (c *Controller) SetScreenSize(w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	c.screenW = w
	c.screenH = h
}

// ToLocal converts a device coordinate into the map's local space through
// the inverse camera transform.
func (c *Controller) ToLocal(p geometry.Point) geometry.Point {
	return geometry.Point{
		X: c.view.MinX + p.X/c.screenW*c.view.Width,
		Y: c.view.MinY + p.Y/c.screenH*c.view.Height,
	}
}

// PointerDown begins a pan unless the pointer landed on a node, in which
// case the event is left for the host's selection handling.
func (c *Controller) PointerDown(p geometry.Point, overNode bool) bool {
	if overNode {
		return false
	}
	c.state = panning{anchor: p}
	return true
}

// PointerMove drags the camera while panning. The previous and current
// pointer positions are both converted to local space and the viewbox
// origin shifts by their difference, so the map tracks the pointer
// exactly.
func (c *Controller) PointerMove(p geometry.Point) bool {
	pan, ok := c.state.(panning)
	if !ok {
		return false
	}
	delta := c.ToLocal(p).Sub(c.ToLocal(pan.anchor))
	c.view.MinX -= delta.X
	c.view.MinY -= delta.Y
	c.state = panning{anchor: p}
	c.emit()
	return true
}

// PointerUp ends any pan. Pointer-leave is reported the same way.
func (c *Controller) PointerUp() bool {
	_, ok := c.state.(panning)
	c.state = idle{}
	return ok
}

// Wheel zooms by a fixed step, in on scroll-up (negative delta) and out on
// scroll-down, keeping the cursor's local-space point fixed.
func (c *Controller) Wheel(p geometry.Point, deltaY float64) bool {
	if deltaY == 0 {
		return true
	}
	newW := c.view.Width * ZoomStep
	if deltaY < 0 {
		newW = c.view.Width / ZoomStep
	}
	c.zoomTo(p, newW)
	return true
}

// TouchStart enters pinching on two or more touches, or panning on one.
func (c *Controller) TouchStart(touches []Touch) bool {
	switch {
	case len(touches) >= 2:
		c.state = pinching{lastDist: geometry.Dist(touches[0].Point, touches[1].Point)}
	case len(touches) == 1:
		if _, ok := c.state.(pinching); !ok {
			c.state = panning{anchor: touches[0].Point}
		}
	}
	return true
}

// TouchMove applies an incremental pinch zoom anchored at the touch
// midpoint, or a single-finger pan. Degenerate finger distances are
// ignored rather than divided by.
func (c *Controller) TouchMove(touches []Touch) bool {
	switch st := c.state.(type) {
	case pinching:
		if len(touches) < 2 {
			return true
		}
		d := geometry.Dist(touches[0].Point, touches[1].Point)
		if d <= 0 || st.lastDist <= 0 {
			c.state = pinching{lastDist: d}
			return true
		}
		scale := d / st.lastDist
		c.zoomTo(geometry.Midpoint(touches[0].Point, touches[1].Point), c.view.Width/scale)
		c.state = pinching{lastDist: d}
	case panning:
		if len(touches) >= 1 {
			c.PointerMove(touches[0].Point)
		}
	}
	return true
}

// TouchEnd leaves pinching when fewer than two fingers remain, continuing
// as a pan on one finger and returning to idle on none.
func (c *Controller) TouchEnd(remaining []Touch) bool {
	switch len(remaining) {
	case 0:
		c.state = idle{}
	case 1:
		c.state = panning{anchor: remaining[0].Point}
	}
	return true
}

// zoomTo resizes the window to newW clamped into the zoom range, then
// recomputes the origin so the local point under the device anchor stays
// put.
func (c *Controller) zoomTo(anchor geometry.Point, newW float64) {
	newW = geometry.Clamp(newW, c.minDim, c.maxDim)
	newH := newW * c.aspect
	local := c.ToLocal(anchor)
	c.view = ViewBox{
		MinX:   local.X - anchor.X/c.screenW*newW,
		MinY:   local.Y - anchor.Y/c.screenH*newH,
		Width:  newW,
		Height: newH,
	}
	c.emit()
}

func (c *Controller) emit() {
	if c.onChange != nil {
		c.onChange(c.view)
	}
}
