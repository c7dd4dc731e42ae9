package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamrudu/studio/internal/model"
)

func TestDrag_BeginSelectsItem(t *testing.T) {
	d := newTestDesigner()
	c := NewDragController(d)
	id, err := d.AddItem("kab")
	require.NoError(t, err)
	d.ClearSelection()

	require.True(t, c.Begin(id, 100, 100))
	assert.True(t, c.Dragging())
	assert.Equal(t, id, d.SelectedID())

	sess, ok := c.Session()
	require.True(t, ok)
	assert.Equal(t, id, sess.ItemID)
	assert.Equal(t, model.Point{X: 100, Y: 100}, sess.PointerStart)
	assert.Equal(t, model.Point{X: 50, Y: 40}, sess.ItemStart)
}

func TestDrag_BeginUnknownItemStaysIdle(t *testing.T) {
	d := newTestDesigner()
	c := NewDragController(d)

	assert.False(t, c.Begin(42, 0, 0))
	assert.False(t, c.Dragging())
}

func TestDrag_MoveConvertsPixelsToPercent(t *testing.T) {
	d := newTestDesigner()
	c := NewDragController(d)
	id, err := d.AddItem("kab")
	require.NoError(t, err)

	require.True(t, c.Begin(id, 200, 300))
	// +40px on a 400px-wide surface is +10%; +60px on 600px is +10%.
	c.Move(240, 360, 400, 600)

	item, _ := d.Item(id)
	assert.InDelta(t, 60, item.X, 1e-9)
	assert.InDelta(t, 50, item.Y, 1e-9)
}

func TestDrag_MovesClampToFullSurface(t *testing.T) {
	d := newTestDesigner()
	c := NewDragController(d)
	id, err := d.AddItem("kab")
	require.NoError(t, err)

	require.True(t, c.Begin(id, 0, 0))
	// A wild fling far outside the surface still lands on its edge.
	c.Move(-5000, 9000, 400, 600)

	item, _ := d.Item(id)
	assert.Equal(t, 0.0, item.X)
	assert.Equal(t, 100.0, item.Y)
}

func TestDrag_DeltasAnchorToSessionStart(t *testing.T) {
	d := newTestDesigner()
	c := NewDragController(d)
	id, err := d.AddItem("kab")
	require.NoError(t, err)

	require.True(t, c.Begin(id, 0, 0))
	// Leave the surface entirely, then come back: the final position
	// depends only on the last sample, not the path taken.
	c.Move(-2000, -2000, 400, 600)
	c.Move(40, 60, 400, 600)

	item, _ := d.Item(id)
	assert.InDelta(t, 60, item.X, 1e-9)
	assert.InDelta(t, 50, item.Y, 1e-9)
}

func TestDrag_MoveWhileIdleIsNoop(t *testing.T) {
	d := newTestDesigner()
	c := NewDragController(d)
	id, err := d.AddItem("kab")
	require.NoError(t, err)

	c.Move(9999, 9999, 400, 600)
	item, _ := d.Item(id)
	assert.Equal(t, model.Point{X: 50, Y: 40}, item.Position())
}

func TestDrag_MoveWithZeroSurfaceIsNoop(t *testing.T) {
	d := newTestDesigner()
	c := NewDragController(d)
	id, err := d.AddItem("kab")
	require.NoError(t, err)

	require.True(t, c.Begin(id, 0, 0))
	c.Move(100, 100, 0, 0)

	item, _ := d.Item(id)
	assert.Equal(t, model.Point{X: 50, Y: 40}, item.Position())
}

func TestDrag_EndTerminates(t *testing.T) {
	d := newTestDesigner()
	c := NewDragController(d)
	id, err := d.AddItem("kab")
	require.NoError(t, err)

	require.True(t, c.Begin(id, 0, 0))
	c.End()
	assert.False(t, c.Dragging())

	// Moves after End mutate nothing, however often they arrive.
	c.Move(400, 600, 400, 600)
	c.Move(80, 80, 400, 600)
	item, _ := d.Item(id)
	assert.Equal(t, model.Point{X: 50, Y: 40}, item.Position())

	// End is idempotent.
	c.End()
	assert.False(t, c.Dragging())
}

func TestDrag_NewBeginAbandonsStaleSession(t *testing.T) {
	d := newTestDesigner()
	c := NewDragController(d)
	first, err := d.AddItem("kab")
	require.NoError(t, err)
	second, err := d.AddItem("mor")
	require.NoError(t, err)

	require.True(t, c.Begin(first, 0, 0))
	require.True(t, c.Begin(second, 10, 10))

	sess, ok := c.Session()
	require.True(t, ok)
	assert.Equal(t, second, sess.ItemID)
	assert.Equal(t, second, d.SelectedID())

	// Moves now drive the second item only.
	c.Move(50, 70, 400, 600)
	moved, _ := d.Item(second)
	untouched, _ := d.Item(first)
	assert.InDelta(t, 60, moved.X, 1e-9)
	assert.Equal(t, model.Point{X: 50, Y: 40}, untouched.Position())
}
