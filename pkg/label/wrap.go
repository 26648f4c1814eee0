// Package label estimates and places node labels. Widths and heights are
// estimated from character counts and a fixed average glyph width rather
// than real text metrics; the overlap resolver is calibrated against that
// approximation, so the two must change together or not at all.
package label

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/map-engine/pkg/layout"
	"github.com/jwebster45206/map-engine/pkg/worldmap"
)

const (
	// MaxLines caps a wrapped label.
	MaxLines = 3

	// avgCharWidthEm approximates glyph width as a fraction of font size.
	avgCharWidthEm = 0.6

	// smallTypeScale shrinks the label font for the deepest node types.
	smallTypeScale = 0.8

	lineWidthChars      = 12
	smallLineWidthChars = 10
)

// smallType reports whether the node type renders its label at the
// reduced font size.
func smallType(t worldmap.NodeType) bool {
	return t == worldmap.NodeTypeRoom || t == worldmap.NodeTypeFeature
}

// FontPx returns the label font size for a node type.
func FontPx(t worldmap.NodeType, cfg layout.Config) float64 {
	if smallType(t) {
		return cfg.BaseFontPx * smallTypeScale
	}
	return cfg.BaseFontPx
}

// Wrap breaks a display name into at most MaxLines lines at the per-type
// character budget. A name that does not fit is truncated with an
// ellipsis on the last line.
func Wrap(name string, t worldmap.NodeType) []string {
	width := lineWidthChars
	if smallType(t) {
		width = smallLineWidthChars
	}

	wrapped := wordwrap.String(name, width)
	lines := strings.Split(wrapped, "\n")

	// wordwrap never splits a word longer than the limit; hard-break those.
	var out []string
	for _, line := range lines {
		for len([]rune(line)) > width {
			r := []rune(line)
			out = append(out, string(r[:width]))
			line = string(r[width:])
		}
		out = append(out, line)
	}

	if len(out) > MaxLines {
		out = out[:MaxLines]
		last := []rune(out[MaxLines-1])
		if len(last) >= width {
			last = last[:width-1]
		}
		out[MaxLines-1] = string(last) + "…"
	}
	return out
}
