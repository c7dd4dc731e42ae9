// Package engine implements the placement logic of the garment
// designer: adding, nudging, rotating, and deleting motif placements,
// plus the pointer drag state machine. It owns the single authoritative
// item list; rendering is a pure projection of it and never writes back.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/tamrudu/studio/internal/model"
)

// MaxItemsPerMotif caps how many placements of one motif may exist
// across both sides of the garment.
const MaxItemsPerMotif = 5

// Position bounds in percent of the design surface. Free dragging may
// reach the surface edge; directional nudges keep a safety margin.
const (
	DragMin  = 0.0
	DragMax  = 100.0
	NudgeMin = 10.0
	NudgeMax = 90.0
)

// DefaultPosition is where a freshly added item lands.
var DefaultPosition = model.Point{X: 50, Y: 40}

var (
	// ErrMotifLimit is returned when adding a motif that already has
	// MaxItemsPerMotif placements. The item list is left untouched.
	ErrMotifLimit = errors.New("motif placement limit reached")

	// ErrUnknownMotif is returned for motif IDs not in the catalog.
	ErrUnknownMotif = errors.New("unknown motif")
)

// Preset names a fixed one-click placement position.
type Preset string

const (
	PresetCenter Preset = "center"
	PresetPocket Preset = "pocket"
	PresetHem    Preset = "hem"
)

var presetPositions = map[Preset]model.Point{
	PresetCenter: {X: 50, Y: 40},
	PresetPocket: {X: 65, Y: 30},
	PresetHem:    {X: 70, Y: 75},
}

// PresetPosition returns the absolute position for a preset name.
func PresetPosition(p Preset) (model.Point, bool) {
	pos, ok := presetPositions[p]
	return pos, ok
}

// Designer holds the authoritative design state for one session: the
// placed item list, the current selection, and the side being viewed.
// All mutation funnels through the update-by-ID primitive so the
// position and immutability invariants live in one place.
type Designer struct {
	catalog  *model.Catalog
	items    []model.PlacedItem
	selected int64 // 0 when nothing is selected
	side     model.Side
	lastID   int64
}

// NewDesigner creates an empty design session viewing the front side.
func NewDesigner(catalog *model.Catalog) *Designer {
	return &Designer{catalog: catalog, side: model.SideFront}
}

// Catalog returns the motif catalog backing this session.
func (d *Designer) Catalog() *model.Catalog {
	return d.catalog
}

// nextID issues session-unique, monotonically increasing item IDs.
// Wall-clock milliseconds are the base so IDs double as creation
// timestamps, with a bump to rule out collisions within one tick.
func (d *Designer) nextID() int64 {
	id := time.Now().UnixMilli()
	if id <= d.lastID {
		id = d.lastID + 1
	}
	d.lastID = id
	return id
}

// AddItem places a new instance of the motif at the default position on
// the side currently being viewed and selects it. Fails with
// ErrMotifLimit when the motif already has MaxItemsPerMotif placements,
// in which case no state changes.
func (d *Designer) AddItem(motifID string) (int64, error) {
	motif, ok := d.catalog.Get(motifID)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMotif, motifID)
	}
	if d.CountForMotif(motifID) >= MaxItemsPerMotif {
		return 0, fmt.Errorf("%w: %q", ErrMotifLimit, motifID)
	}

	item := model.PlacedItem{
		ID:       d.nextID(),
		MotifID:  motif.ID,
		X:        DefaultPosition.X,
		Y:        DefaultPosition.Y,
		Rotation: motif.DefaultRotation,
		Side:     d.side,
	}
	d.items = append(d.items, item)
	d.selected = item.ID
	return item.ID, nil
}

// update is the single mutation primitive: it locates the item by ID
// and applies fn to it. ID, MotifID, and Side are restored afterwards
// so no caller can change them. Returns false when the ID is unknown.
func (d *Designer) update(id int64, fn func(*model.PlacedItem)) bool {
	for i := range d.items {
		if d.items[i].ID != id {
			continue
		}
		preserved := d.items[i]
		fn(&d.items[i])
		d.items[i].ID = preserved.ID
		d.items[i].MotifID = preserved.MotifID
		d.items[i].Side = preserved.Side
		return true
	}
	return false
}

// PlaceItem sets an item's absolute position, clamped to the full
// surface ([0, 100] per axis). This is the entry point used by the
// drag controller. Unknown IDs are ignored.
func (d *Designer) PlaceItem(id int64, x, y float64) {
	d.update(id, func(it *model.PlacedItem) {
		it.X = clamp(x, DragMin, DragMax)
		it.Y = clamp(y, DragMin, DragMax)
	})
}

// MoveSelected nudges the selected item by (dx, dy) percent, keeping
// each axis within the [10, 90] safety margin. No-op when nothing is
// selected.
func (d *Designer) MoveSelected(dx, dy float64) {
	item, ok := d.SelectedItem()
	if !ok {
		return
	}
	d.update(item.ID, func(it *model.PlacedItem) {
		it.X = clamp(it.X+dx, NudgeMin, NudgeMax)
		it.Y = clamp(it.Y+dy, NudgeMin, NudgeMax)
	})
}

// RotateSelected adds deg to the selected item's rotation. Rotation is
// unbounded and never normalized here. No-op when nothing is selected.
func (d *Designer) RotateSelected(deg float64) {
	item, ok := d.SelectedItem()
	if !ok {
		return
	}
	d.update(item.ID, func(it *model.PlacedItem) {
		it.Rotation += deg
	})
}

// ApplyPreset moves the selected item to a named fixed position.
// No-op when nothing is selected or the preset name is unknown.
func (d *Designer) ApplyPreset(p Preset) {
	pos, ok := presetPositions[p]
	if !ok {
		return
	}
	item, selected := d.SelectedItem()
	if !selected {
		return
	}
	d.update(item.ID, func(it *model.PlacedItem) {
		it.X = pos.X
		it.Y = pos.Y
	})
}

// DeleteSelected removes the selected item and clears the selection.
// No-op when nothing is selected.
func (d *Designer) DeleteSelected() {
	if d.selected == 0 {
		return
	}
	for i := range d.items {
		if d.items[i].ID == d.selected {
			d.items = append(d.items[:i], d.items[i+1:]...)
			break
		}
	}
	d.selected = 0
}

// Clear removes every placement and the selection.
func (d *Designer) Clear() {
	d.items = nil
	d.selected = 0
}

// Select marks the item with the given ID as selected. Returns false
// and leaves the selection unchanged for unknown IDs.
func (d *Designer) Select(id int64) bool {
	if _, ok := d.Item(id); !ok {
		return false
	}
	d.selected = id
	return true
}

// ClearSelection deselects without touching any item.
func (d *Designer) ClearSelection() {
	d.selected = 0
}

// SelectedID returns the selected item's ID, or 0 when none.
func (d *Designer) SelectedID() int64 {
	return d.selected
}

// SelectedItem returns a copy of the selected item.
func (d *Designer) SelectedItem() (model.PlacedItem, bool) {
	return d.Item(d.selected)
}

// Item returns a copy of the item with the given ID.
func (d *Designer) Item(id int64) (model.PlacedItem, bool) {
	if id == 0 {
		return model.PlacedItem{}, false
	}
	for _, it := range d.items {
		if it.ID == id {
			return it, true
		}
	}
	return model.PlacedItem{}, false
}

// Items returns a copy of all placements in creation order.
func (d *Designer) Items() []model.PlacedItem {
	out := make([]model.PlacedItem, len(d.items))
	copy(out, d.items)
	return out
}

// ItemsOn returns the placements belonging to one garment side.
func (d *Designer) ItemsOn(side model.Side) []model.PlacedItem {
	var out []model.PlacedItem
	for _, it := range d.items {
		if it.Side == side {
			out = append(out, it)
		}
	}
	return out
}

// CountForMotif counts placements of one motif across both sides.
func (d *Designer) CountForMotif(motifID string) int {
	n := 0
	for _, it := range d.items {
		if it.MotifID == motifID {
			n++
		}
	}
	return n
}

// Remaining reports how many more placements of the motif are allowed.
func (d *Designer) Remaining(motifID string) int {
	r := MaxItemsPerMotif - d.CountForMotif(motifID)
	if r < 0 {
		return 0
	}
	return r
}

// Side returns the garment side currently being viewed.
func (d *Designer) Side() model.Side {
	return d.side
}

// SetSide switches the side being viewed. Existing placements keep
// their side; only newly added items follow the view.
func (d *Designer) SetSide(side model.Side) {
	d.side = side
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
