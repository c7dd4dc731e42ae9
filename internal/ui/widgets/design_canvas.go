// Package widgets contains the custom Fyne widgets of the studio.
package widgets

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/tamrudu/studio/internal/engine"
	"github.com/tamrudu/studio/internal/model"
	"github.com/tamrudu/studio/internal/render"
)

// DesignCanvas is the interactive design surface: it shows the current
// garment side rendered from the authoritative item list and feeds
// pointer gestures into the drag controller. It is the only surface
// with input handling; the export surface is rendered off-screen by
// the same compositor.
type DesignCanvas struct {
	widget.BaseWidget

	designer   *engine.Designer
	drag       *engine.DragController
	compositor *render.Compositor
	garment    func() model.Garment
	onChange   func()

	// dragMissed marks a gesture that began on empty garment; it
	// stays set until DragEnd so sweeping across an item mid-gesture
	// never starts a drag.
	dragMissed bool

	raster *canvas.Raster
}

var _ fyne.Tappable = (*DesignCanvas)(nil)
var _ fyne.Draggable = (*DesignCanvas)(nil)

// NewDesignCanvas creates the surface. garment supplies the current
// shirt configuration for the render tint; onChange fires after any
// pointer-driven mutation so surrounding panels can refresh.
func NewDesignCanvas(designer *engine.Designer, drag *engine.DragController,
	compositor *render.Compositor, garment func() model.Garment, onChange func()) *DesignCanvas {
	dc := &DesignCanvas{
		designer:   designer,
		drag:       drag,
		compositor: compositor,
		garment:    garment,
		onChange:   onChange,
	}
	dc.raster = canvas.NewRaster(dc.draw)
	dc.ExtendBaseWidget(dc)
	return dc
}

// draw renders the surface at its current pixel size. Pure projection
// of the item list; never mutates anything.
func (dc *DesignCanvas) draw(w, h int) image.Image {
	return dc.compositor.RenderSide(dc.designer.Items(), dc.designer.Side(),
		dc.designer.SelectedID(), dc.garment(), w, h)
}

func (dc *DesignCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &designCanvasRenderer{dc: dc}
}

// itemAt hit-tests the current side's items at a widget position,
// topmost first: the selected item floats above the rest, then later
// placements cover earlier ones.
func (dc *DesignCanvas) itemAt(pos fyne.Position) (model.PlacedItem, bool) {
	size := dc.Size()
	w, h := float64(size.Width), float64(size.Height)
	items := dc.designer.ItemsOn(dc.designer.Side())

	if sel, ok := dc.designer.SelectedItem(); ok && sel.Side == dc.designer.Side() {
		frame := render.ItemFrame(sel, dc.compositor.MotifAspect(sel.MotifID), w, h)
		if frame.Contains(float64(pos.X), float64(pos.Y)) {
			return sel, true
		}
	}
	for i := len(items) - 1; i >= 0; i-- {
		frame := render.ItemFrame(items[i], dc.compositor.MotifAspect(items[i].MotifID), w, h)
		if frame.Contains(float64(pos.X), float64(pos.Y)) {
			return items[i], true
		}
	}
	return model.PlacedItem{}, false
}

// Tapped selects the item under the pointer, or clears the selection
// when tapping empty garment.
func (dc *DesignCanvas) Tapped(e *fyne.PointEvent) {
	if item, ok := dc.itemAt(e.Position); ok {
		dc.designer.Select(item.ID)
	} else {
		dc.designer.ClearSelection()
	}
	dc.Refresh()
	dc.notify()
}

// Dragged starts a drag session on the item under the gesture's origin
// and feeds every subsequent sample through the controller. A session
// may begin only on the first event of a gesture: a gesture that
// started on empty garment is dead until DragEnd, even when the
// pointer later sweeps across an item. Fyne keeps delivering drag
// events to this widget even when the pointer leaves it, so drags that
// exit the canvas still track.
func (dc *DesignCanvas) Dragged(e *fyne.DragEvent) {
	if dc.dragMissed {
		return
	}
	if !dc.drag.Dragging() {
		start := fyne.NewPos(e.Position.X-e.Dragged.DX, e.Position.Y-e.Dragged.DY)
		item, ok := dc.itemAt(start)
		if !ok {
			dc.dragMissed = true
			return
		}
		dc.drag.Begin(item.ID, float64(start.X), float64(start.Y))
	}
	size := dc.Size()
	dc.drag.Move(float64(e.Position.X), float64(e.Position.Y),
		float64(size.Width), float64(size.Height))
	dc.Refresh()
	dc.notify()
}

// DragEnd terminates the session wherever the pointer was released and
// re-arms gesture detection.
func (dc *DesignCanvas) DragEnd() {
	dc.dragMissed = false
	dc.drag.End()
}

func (dc *DesignCanvas) notify() {
	if dc.onChange != nil {
		dc.onChange()
	}
}

type designCanvasRenderer struct {
	dc *DesignCanvas
}

func (r *designCanvasRenderer) Layout(size fyne.Size) {
	r.dc.raster.Resize(size)
}

// MinSize keeps the surface near the 3:4 shirt aspect.
func (r *designCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(330, 440)
}

func (r *designCanvasRenderer) Refresh() {
	r.dc.raster.Refresh()
}

func (r *designCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.dc.raster}
}

func (r *designCanvasRenderer) Destroy() {}
