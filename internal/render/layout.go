// Package render projects the authoritative placement model onto the
// two design surfaces: the interactive per-side view and the fixed-size
// export composition. Both derive every visual position directly from
// the item list through the same geometry, so they cannot drift apart.
package render

import "github.com/tamrudu/studio/internal/model"

// ItemWidthFraction is the width of an item's box as a share of the
// surface width. Height follows from the motif artwork's aspect ratio.
const ItemWidthFraction = 0.24

// Export surface geometry in logical pixels. The composition is
// independent of the viewport: both garment sides sit side by side in
// fixed panels with a caption strip along the bottom.
const (
	ExportWidth  = 1200
	ExportHeight = 800
	PanelWidth   = 500
	PanelHeight  = 666
	PanelGap     = 32
)

// PanelOrigins returns the top-left corners of the front and back
// panels, centered on the export surface.
func PanelOrigins() (front, back model.Point) {
	x := (ExportWidth - (2*PanelWidth + PanelGap)) / 2.0
	y := (ExportHeight - PanelHeight) / 2.0
	return model.Point{X: x, Y: y}, model.Point{X: x + PanelWidth + PanelGap, Y: y}
}

// Frame is an item's axis-aligned box on a surface, in surface pixels,
// before rotation is applied about its center.
type Frame struct {
	CenterX float64
	CenterY float64
	Width   float64
	Height  float64
}

// ItemFrame maps an item's percent position onto a surface of the given
// pixel size. aspect is the motif artwork's height/width ratio.
func ItemFrame(item model.PlacedItem, aspect, surfaceW, surfaceH float64) Frame {
	w := surfaceW * ItemWidthFraction
	if aspect <= 0 {
		aspect = 1
	}
	return Frame{
		CenterX: item.X / 100 * surfaceW,
		CenterY: item.Y / 100 * surfaceH,
		Width:   w,
		Height:  w * aspect,
	}
}

// Contains reports whether a surface point falls inside the frame.
// Hit testing ignores rotation; the unrotated box is the hit region.
func (f Frame) Contains(x, y float64) bool {
	return x >= f.CenterX-f.Width/2 && x <= f.CenterX+f.Width/2 &&
		y >= f.CenterY-f.Height/2 && y <= f.CenterY+f.Height/2
}
