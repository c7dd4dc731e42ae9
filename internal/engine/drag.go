package engine

import "github.com/tamrudu/studio/internal/model"

// DragSession records where a drag gesture started: the pointer in
// surface pixels and the item in percent units. Deltas are computed
// against these anchors so precision never drifts across move events.
type DragSession struct {
	ItemID       int64
	PointerStart model.Point // device pixels
	ItemStart    model.Point // percent
}

// DragController is the two-state (idle / dragging) machine that turns
// continuous pointer input into item position updates. It never writes
// the item list directly; every move goes through the designer's
// placement primitive so the drag bounds invariant is enforced there.
type DragController struct {
	designer *Designer
	session  *DragSession
}

// NewDragController creates an idle controller bound to a designer.
func NewDragController(d *Designer) *DragController {
	return &DragController{designer: d}
}

// Begin starts a drag on the given item at the given pointer position.
// Any stale session is abandoned first. The item becomes selected.
// Returns false (and stays idle) when the item does not exist.
func (c *DragController) Begin(itemID int64, pointerX, pointerY float64) bool {
	c.session = nil
	item, ok := c.designer.Item(itemID)
	if !ok {
		return false
	}
	c.designer.Select(itemID)
	c.session = &DragSession{
		ItemID:       itemID,
		PointerStart: model.Point{X: pointerX, Y: pointerY},
		ItemStart:    item.Position(),
	}
	return true
}

// Move applies one pointer-move sample. The pixel delta since Begin is
// converted to percent through the surface's current rendered size and
// added to the item's start position, clamped to [0, 100] per axis.
// No-op while idle or when the surface has no extent yet.
func (c *DragController) Move(pointerX, pointerY, surfaceW, surfaceH float64) {
	if c.session == nil || surfaceW <= 0 || surfaceH <= 0 {
		return
	}
	dx := (pointerX - c.session.PointerStart.X) / surfaceW * 100
	dy := (pointerY - c.session.PointerStart.Y) / surfaceH * 100
	c.designer.PlaceItem(c.session.ItemID, c.session.ItemStart.X+dx, c.session.ItemStart.Y+dy)
}

// End terminates the drag. Always transitions to idle; subsequent
// moves mutate nothing. Safe to call while already idle.
func (c *DragController) End() {
	c.session = nil
}

// Dragging reports whether a session is active.
func (c *DragController) Dragging() bool {
	return c.session != nil
}

// Session returns a copy of the active session, if any.
func (c *DragController) Session() (DragSession, bool) {
	if c.session == nil {
		return DragSession{}, false
	}
	return *c.session, true
}
