package render

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamrudu/studio/internal/model"
)

func newTestCompositor(t *testing.T) *Compositor {
	t.Helper()
	c, err := NewCompositor(model.DefaultCatalog())
	require.NoError(t, err)
	return c
}

func testSnapshot(items ...model.PlacedItem) Snapshot {
	return Snapshot{
		Items:     items,
		Garment:   model.DefaultGarment(),
		TicketRef: "AB12CD34",
		When:      time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
	}
}

func imagesEqual(a, b image.Image) bool {
	if a.Bounds() != b.Bounds() {
		return false
	}
	for y := a.Bounds().Min.Y; y < a.Bounds().Max.Y; y++ {
		for x := a.Bounds().Min.X; x < a.Bounds().Max.X; x++ {
			if a.At(x, y) != b.At(x, y) {
				return false
			}
		}
	}
	return true
}

func TestCompositorLoadsAllMotifs(t *testing.T) {
	c := newTestCompositor(t)

	for _, m := range model.DefaultCatalog().Motifs() {
		assert.Greater(t, c.MotifAspect(m.ID), 0.0, m.ID)
	}
	// kador is the tall motif: noticeably higher than wide.
	assert.Greater(t, c.MotifAspect("kador"), 1.5)
	assert.Equal(t, 1.0, c.MotifAspect("unknown"), "unknown motifs fall back to square")
	assert.Len(t, c.Aspects(), 3)
}

func TestCapture_OutputSizeFollowsScale(t *testing.T) {
	c := newTestCompositor(t)
	snap := testSnapshot(model.PlacedItem{ID: 1, MotifID: "kab", X: 50, Y: 40, Side: model.SideFront})

	img, err := c.Capture(snap, DefaultCaptureOptions())
	require.NoError(t, err)
	assert.Equal(t, ExportWidth*2, img.Bounds().Dx())
	assert.Equal(t, ExportHeight*2, img.Bounds().Dy())

	opts := DefaultCaptureOptions()
	opts.Scale = 1
	img, err = c.Capture(snap, opts)
	require.NoError(t, err)
	assert.Equal(t, ExportWidth, img.Bounds().Dx())
	assert.Equal(t, ExportHeight, img.Bounds().Dy())
}

func TestCapture_InvalidSize(t *testing.T) {
	c := newTestCompositor(t)

	_, err := c.Capture(testSnapshot(), CaptureOptions{Width: 0, Height: 800, Scale: 1})
	assert.Error(t, err)
}

func TestCapture_Deterministic(t *testing.T) {
	c := newTestCompositor(t)
	snap := testSnapshot(
		model.PlacedItem{ID: 1, MotifID: "kab", X: 30, Y: 40, Rotation: 15, Side: model.SideFront},
		model.PlacedItem{ID: 2, MotifID: "kador", X: 60, Y: 55, Rotation: 90, Side: model.SideBack},
	)
	opts := DefaultCaptureOptions()
	opts.Scale = 1

	a, err := c.Capture(snap, opts)
	require.NoError(t, err)
	b, err := c.Capture(snap, opts)
	require.NoError(t, err)

	assert.True(t, imagesEqual(a, b), "the export surface must be a pure function of the snapshot")
}

func TestCapture_ReflectsGarmentColor(t *testing.T) {
	c := newTestCompositor(t)
	opts := DefaultCaptureOptions()
	opts.Scale = 1

	white := testSnapshot()
	black := testSnapshot()
	black.Garment.Color = model.ColorBlack

	a, err := c.Capture(white, opts)
	require.NoError(t, err)
	b, err := c.Capture(black, opts)
	require.NoError(t, err)

	assert.False(t, imagesEqual(a, b), "the color wash must be visible in the capture")
}

func TestRenderSide_PartitionsBySide(t *testing.T) {
	c := newTestCompositor(t)
	g := model.DefaultGarment()

	frontItem := model.PlacedItem{ID: 1, MotifID: "kab", X: 50, Y: 40, Side: model.SideFront}
	backItem := model.PlacedItem{ID: 2, MotifID: "mor", X: 50, Y: 40, Side: model.SideBack}

	frontOnly := c.RenderSide([]model.PlacedItem{frontItem}, model.SideFront, 0, g, 250, 333)
	both := c.RenderSide([]model.PlacedItem{frontItem, backItem}, model.SideFront, 0, g, 250, 333)

	assert.True(t, imagesEqual(frontOnly, both),
		"items on the other side must not affect the interactive surface")

	backView := c.RenderSide([]model.PlacedItem{frontItem, backItem}, model.SideBack, 0, g, 250, 333)
	assert.False(t, imagesEqual(frontOnly, backView))
}

func TestRenderSide_SelectionHighlightVisible(t *testing.T) {
	c := newTestCompositor(t)
	g := model.DefaultGarment()
	item := model.PlacedItem{ID: 7, MotifID: "kab", X: 50, Y: 40, Side: model.SideFront}

	plain := c.RenderSide([]model.PlacedItem{item}, model.SideFront, 0, g, 250, 333)
	selected := c.RenderSide([]model.PlacedItem{item}, model.SideFront, 7, g, 250, 333)

	assert.False(t, imagesEqual(plain, selected), "selection outline must be drawn")
}

// diffCount reports how many pixels inside r differ between a and b by
// more than threshold on any 8-bit channel.
func diffCount(a, b image.Image, r image.Rectangle, threshold int) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if pixelDelta(a, b, x, y, x) > threshold {
				n++
			}
		}
	}
	return n
}

// mirroredDiffCount is diffCount with b sampled at the horizontally
// reflected column.
func mirroredDiffCount(a, b image.Image, r image.Rectangle, width, threshold int) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if pixelDelta(a, b, x, y, width-1-x) > threshold {
				n++
			}
		}
	}
	return n
}

func pixelDelta(a, b image.Image, x, y, bx int) int {
	ar, ag, ab8, _ := a.At(x, y).RGBA()
	br, bg, bb, _ := b.At(bx, y).RGBA()
	max := 0
	for _, d := range []int{
		int(ar>>8) - int(br>>8),
		int(ag>>8) - int(bg>>8),
		int(ab8>>8) - int(bb>>8),
	} {
		if d < 0 {
			d = -d
		}
		if d > max {
			max = d
		}
	}
	return max
}

func TestRenderSide_BackMirrorsShirtOnly(t *testing.T) {
	c := newTestCompositor(t)
	g := model.DefaultGarment()

	// 300x400 matches the shirt artwork's 3:4 ratio, so the mockup
	// fills the whole surface and pixel columns reflect exactly.
	const w, h = 300, 400
	front := c.RenderSide(nil, model.SideFront, 0, g, w, h)
	back := c.RenderSide(nil, model.SideBack, 0, g, w, h)

	// The chest detail makes the shirt artwork asymmetric in this
	// band, which sits above the empty-state hint text.
	band := image.Rect(0, 100, w, 160)
	assert.Greater(t, diffCount(front, back, band, 32), 15,
		"the back view must show the shirt mirrored, not as drawn")
	assert.Less(t, mirroredDiffCount(front, back, band, w, 32), 10,
		"reflecting the back view must recover the front shirt pixels")

	// Items keep their own coordinates on the back: artwork for an
	// item at X=25% lands on the left, never at the mirrored 75%.
	item := model.PlacedItem{ID: 1, MotifID: "kab", X: 25, Y: 30, Side: model.SideBack}
	withItem := c.RenderSide([]model.PlacedItem{item}, model.SideBack, 0, g, w, h)

	itemBox := image.Rect(39, 84, 111, 156)
	mirrorBox := image.Rect(189, 84, 261, 156)
	assert.Greater(t, diffCount(back, withItem, itemBox, 32), 0,
		"item artwork must appear at the item's own position")
	assert.Zero(t, diffCount(back, withItem, mirrorBox, 32),
		"item artwork must not be mirrored with the shirt")
}

func TestRenderSide_SelectedItemDrawsOnTop(t *testing.T) {
	c := newTestCompositor(t)
	g := model.DefaultGarment()
	kab := model.PlacedItem{ID: 1, MotifID: "kab", X: 50, Y: 40, Side: model.SideFront}
	mor := model.PlacedItem{ID: 2, MotifID: "mor", X: 50, Y: 40, Side: model.SideFront}

	// Selecting the first-created of two overlapping items must render
	// exactly as if it had been placed last: its dashed outline stays
	// on top instead of being multiplied over by the later artwork.
	got := c.RenderSide([]model.PlacedItem{kab, mor}, model.SideFront, 1, g, 250, 333)
	want := c.RenderSide([]model.PlacedItem{mor, kab}, model.SideFront, 1, g, 250, 333)
	assert.True(t, imagesEqual(got, want),
		"the selected item must be raised to the top of the stack")
}

func TestSnapshotCaption(t *testing.T) {
	snap := testSnapshot()
	snap.Garment = model.Garment{Size: model.SizeXL, Color: model.ColorBlack}

	assert.Equal(t,
		"ORDER TICKET: AB12CD34 | 2026-08-28 | SIZE: XL | COLOR: BLACK | TAM RUDU",
		snap.Caption())
}

func TestCapture_WritablePNG(t *testing.T) {
	c := newTestCompositor(t)
	opts := DefaultCaptureOptions()
	opts.Scale = 1

	img, err := c.Capture(testSnapshot(), opts)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "capture.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
