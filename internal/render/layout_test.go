package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tamrudu/studio/internal/model"
)

func TestPanelOrigins(t *testing.T) {
	front, back := PanelOrigins()

	assert.Equal(t, 84.0, front.X)
	assert.Equal(t, 67.0, front.Y)
	assert.Equal(t, front.X+PanelWidth+PanelGap, back.X)
	assert.Equal(t, front.Y, back.Y)

	// Both panels fit inside the export surface.
	assert.GreaterOrEqual(t, front.X, 0.0)
	assert.LessOrEqual(t, back.X+PanelWidth, float64(ExportWidth))
	assert.LessOrEqual(t, front.Y+PanelHeight, float64(ExportHeight))
}

func TestItemFrame(t *testing.T) {
	item := model.PlacedItem{X: 50, Y: 40}
	f := ItemFrame(item, 2, 500, 666)

	assert.Equal(t, 250.0, f.CenterX)
	assert.InDelta(t, 266.4, f.CenterY, 1e-9)
	assert.Equal(t, 120.0, f.Width, "item box is 24%% of the surface width")
	assert.Equal(t, 240.0, f.Height, "height follows the artwork aspect")
}

func TestItemFrame_ZeroAspectFallsBackToSquare(t *testing.T) {
	f := ItemFrame(model.PlacedItem{X: 0, Y: 0}, 0, 100, 100)
	assert.Equal(t, f.Width, f.Height)
}

func TestFrameContains(t *testing.T) {
	f := Frame{CenterX: 100, CenterY: 100, Width: 40, Height: 60}

	assert.True(t, f.Contains(100, 100))
	assert.True(t, f.Contains(80, 70), "edges are inclusive")
	assert.True(t, f.Contains(120, 130))
	assert.False(t, f.Contains(79, 100))
	assert.False(t, f.Contains(100, 131))
}
