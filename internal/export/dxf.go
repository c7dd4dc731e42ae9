package export

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	dxfcolor "github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/tamrudu/studio/internal/model"
	"github.com/tamrudu/studio/internal/render"
)

// Garment print area in millimetres. Percent positions map onto this
// region when driving the transfer cutter.
const (
	PrintAreaWidthMM  = 375.0
	PrintAreaHeightMM = 500.0
	printPanelGapMM   = 50.0
	registrationRadMM = 4.0
)

// ExportPlacementDXF writes the placement geometry for the transfer
// plotter: one rotated rectangle per item on FRONT/BACK layers, with
// the back panel offset to the right, plus corner registration marks.
// aspects supplies each motif's artwork height/width ratio.
func ExportPlacementDXF(path string, snap render.Snapshot, aspects map[string]float64) error {
	d := dxf.NewDrawing()

	if _, err := d.AddLayer("REGISTRATION", dxfcolor.Green, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("add registration layer: %w", err)
	}
	for _, offset := range []float64{0, PrintAreaWidthMM + printPanelGapMM} {
		for _, corner := range [][2]float64{
			{0, 0}, {PrintAreaWidthMM, 0}, {0, PrintAreaHeightMM}, {PrintAreaWidthMM, PrintAreaHeightMM},
		} {
			if _, err := d.Circle(corner[0]+offset, corner[1], 0, registrationRadMM); err != nil {
				return fmt.Errorf("registration mark: %w", err)
			}
		}
	}

	layers := []struct {
		name    string
		side    model.Side
		color   dxfcolor.ColorNumber
		offsetX float64
	}{
		{"FRONT", model.SideFront, dxfcolor.Red, 0},
		{"BACK", model.SideBack, dxfcolor.Blue, PrintAreaWidthMM + printPanelGapMM},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.color, table.LT_CONTINUOUS, true); err != nil {
			return fmt.Errorf("add %s layer: %w", l.name, err)
		}
		for _, it := range snap.Items {
			if it.Side != l.side {
				continue
			}
			if err := drawPlacementBox(d, it, aspects[it.MotifID], l.offsetX); err != nil {
				return fmt.Errorf("item %d: %w", it.ID, err)
			}
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("save DXF: %w", err)
	}
	return nil
}

// drawPlacementBox emits the rotated outline of one item's box in
// millimetres, converting from the screen's y-down percent space to
// DXF's y-up coordinates.
func drawPlacementBox(d *drawing.Drawing, it model.PlacedItem, aspect, offsetX float64) error {
	frame := render.ItemFrame(it, aspect, PrintAreaWidthMM, PrintAreaHeightMM)
	theta := it.Rotation * math.Pi / 180
	sin, cos := math.Sin(theta), math.Cos(theta)

	hw, hh := frame.Width/2, frame.Height/2
	offsets := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}

	var corners [4][2]float64
	for i, o := range offsets {
		x := frame.CenterX + o[0]*cos - o[1]*sin
		y := frame.CenterY + o[0]*sin + o[1]*cos
		corners[i] = [2]float64{x + offsetX, PrintAreaHeightMM - y}
	}
	for i := range corners {
		a := corners[i]
		b := corners[(i+1)%4]
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return err
		}
	}
	return nil
}
