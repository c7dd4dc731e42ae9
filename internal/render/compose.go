package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/gogpu/gg"
	ggtext "github.com/gogpu/gg/text"

	"github.com/tamrudu/studio/internal/assets"
	"github.com/tamrudu/studio/internal/model"
)

// Snapshot is everything the export surface needs: a copy of the item
// list plus the order-level details echoed into the caption. Capturing
// a snapshot never feeds back into the model.
type Snapshot struct {
	Items     []model.PlacedItem
	Garment   model.Garment
	TicketRef string
	When      time.Time
}

// Caption returns the footer line rendered into the export surface.
func (s Snapshot) Caption() string {
	return fmt.Sprintf("ORDER TICKET: %s | %s | %s | TAM RUDU",
		s.TicketRef, s.When.Format("2006-01-02"), s.Garment.Caption())
}

// CaptureOptions configures the raster capture of the export surface.
// Scale multiplies the output resolution only; the composition itself
// is laid out in logical ExportWidth x ExportHeight coordinates.
type CaptureOptions struct {
	Scale      float64
	Width      int
	Height     int
	Background color.Color
}

// DefaultCaptureOptions matches the shipped export: 2x scale for
// quality over a white ground.
func DefaultCaptureOptions() CaptureOptions {
	return CaptureOptions{
		Scale:      2,
		Width:      ExportWidth,
		Height:     ExportHeight,
		Background: color.White,
	}
}

// Palette shared by both surfaces.
var (
	colorPanelFill   = color.NRGBA{R: 250, G: 250, B: 250, A: 255}
	colorPanelBorder = color.NRGBA{R: 229, G: 229, B: 229, A: 255}
	colorCaption     = color.NRGBA{R: 156, G: 163, B: 175, A: 255}
	colorHighlight   = color.NRGBA{R: 49, G: 46, B: 129, A: 128}
	colorHint        = color.NRGBA{R: 209, G: 213, B: 219, A: 200}
)

// shirtOpacity mirrors the mockup's multiply-blended artwork treatment.
const shirtOpacity = 0.9

// Compositor rasterizes design surfaces from placement snapshots. It
// holds the decoded artwork and the caption font for the session and
// is the concrete implementation of the export pipeline's capture
// contract.
type Compositor struct {
	catalog *model.Catalog
	shirt   *gg.ImageBuf
	shirtW  float64
	shirtH  float64
	motifs  map[string]*gg.ImageBuf
	aspects map[string]float64
	font    *ggtext.FontSource
}

// NewCompositor decodes the embedded artwork for every catalog motif.
func NewCompositor(catalog *model.Catalog) (*Compositor, error) {
	shirtImg, err := assets.ShirtImage()
	if err != nil {
		return nil, err
	}
	font, err := ggtext.NewFontSource(assets.CaptionFont())
	if err != nil {
		return nil, fmt.Errorf("caption font: %w", err)
	}

	c := &Compositor{
		catalog: catalog,
		shirt:   gg.ImageBufFromImage(shirtImg),
		shirtW:  float64(shirtImg.Bounds().Dx()),
		shirtH:  float64(shirtImg.Bounds().Dy()),
		motifs:  make(map[string]*gg.ImageBuf),
		aspects: make(map[string]float64),
		font:    font,
	}
	for _, m := range catalog.Motifs() {
		img, err := assets.MotifImage(m.AssetName)
		if err != nil {
			return nil, err
		}
		c.motifs[m.ID] = gg.ImageBufFromImage(img)
		c.aspects[m.ID] = float64(img.Bounds().Dy()) / float64(img.Bounds().Dx())
	}
	return c, nil
}

// MotifAspect returns the height/width ratio of a motif's artwork.
func (c *Compositor) MotifAspect(motifID string) float64 {
	if a, ok := c.aspects[motifID]; ok {
		return a
	}
	return 1
}

// Aspects returns the aspect ratio of every catalog motif.
func (c *Compositor) Aspects() map[string]float64 {
	out := make(map[string]float64, len(c.aspects))
	for k, v := range c.aspects {
		out[k] = v
	}
	return out
}

// Capture rasterizes the full export composition: both sides in fixed
// panels, side labels, and the caption line. Output dimensions are
// opts.Width x opts.Height times opts.Scale, independent of any
// viewport.
func (c *Compositor) Capture(snap Snapshot, opts CaptureOptions) (image.Image, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid capture size %dx%d", opts.Width, opts.Height)
	}
	s := opts.Scale
	if s <= 0 {
		s = 1
	}

	dc := gg.NewContext(int(float64(opts.Width)*s), int(float64(opts.Height)*s))
	defer dc.Close()

	bg := opts.Background
	if bg == nil {
		bg = color.White
	}
	dc.SetColor(bg)
	dc.DrawRectangle(0, 0, float64(dc.Width()), float64(dc.Height()))
	_ = dc.Fill()

	front, back := PanelOrigins()
	for _, p := range []struct {
		origin model.Point
		side   model.Side
	}{
		{front, model.SideFront},
		{back, model.SideBack},
	} {
		spec := panelSpec{
			x:     p.origin.X * s,
			y:     p.origin.Y * s,
			w:     PanelWidth * s,
			h:     PanelHeight * s,
			scale: s,
			side:  p.side,
		}
		c.drawPanel(dc, spec, sideItems(snap.Items, p.side), snap.Garment)

		// Side label across the top of each panel.
		dc.SetFont(c.font.Face(14 * s))
		dc.SetColor(colorCaption)
		dc.DrawStringAnchored(p.side.Label(), spec.x+spec.w/2, spec.y+22*s, 0.5, 0.5)
	}

	dc.SetFont(c.font.Face(13 * s))
	dc.SetColor(colorCaption)
	dc.DrawStringAnchored(snap.Caption(), float64(dc.Width())/2, float64(dc.Height())-18*s, 0.5, 0.5)

	return dc.Image(), nil
}

// RenderSide rasterizes the interactive surface: one garment side at
// the widget's current size, with the selected item highlighted. The
// returned image carries no input handling; hit regions come from
// ItemFrame in the widget layer.
func (c *Compositor) RenderSide(items []model.PlacedItem, side model.Side, selectedID int64, garment model.Garment, w, h int) image.Image {
	if w <= 0 || h <= 0 {
		w, h = 1, 1
	}
	dc := gg.NewContext(w, h)
	defer dc.Close()

	dc.SetColor(color.White)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	_ = dc.Fill()

	scale := float64(w) / PanelWidth
	if scale <= 0 {
		scale = 1
	}
	spec := panelSpec{
		x: 0, y: 0,
		w: float64(w), h: float64(h),
		scale:       scale,
		side:        side,
		interactive: true,
		selectedID:  selectedID,
	}
	onSide := sideItems(items, side)
	c.drawPanel(dc, spec, onSide, garment)

	if len(onSide) == 0 {
		hint := "Place Front Design"
		if side == model.SideBack {
			hint = "Place Back Design"
		}
		dc.Push()
		dc.RotateAbout(-5*math.Pi/180, float64(w)/2, float64(h)/2)
		dc.SetFont(c.font.Face(16 * scale))
		dc.SetColor(colorHint)
		dc.DrawStringAnchored(hint, float64(w)/2, float64(h)/2, 0.5, 0.5)
		dc.Pop()
	}

	return dc.Image()
}

// panelSpec describes one garment-side panel on a surface.
type panelSpec struct {
	x, y, w, h  float64
	scale       float64
	side        model.Side
	interactive bool
	selectedID  int64
}

// drawPanel renders the shirt mockup and one side's items into a panel.
// The back panel mirrors the shirt artwork horizontally; item artwork
// is never mirrored.
func (c *Compositor) drawPanel(dc *gg.Context, p panelSpec, items []model.PlacedItem, garment model.Garment) {
	if !p.interactive {
		dc.SetColor(colorPanelFill)
		dc.DrawRectangle(p.x, p.y, p.w, p.h)
		_ = dc.Fill()
		dc.SetColor(colorPanelBorder)
		dc.SetLineWidth(1 * p.scale)
		dc.DrawRectangle(p.x, p.y, p.w, p.h)
		_ = dc.Stroke()
	}

	// Shirt mockup, object-contain within the panel.
	sw := p.w
	sh := sw * (c.shirtH / c.shirtW)
	if sh > p.h {
		sh = p.h
		sw = sh * (c.shirtW / c.shirtH)
	}
	sx := p.x + (p.w-sw)/2
	sy := p.y + (p.h-sh)/2

	if p.side == model.SideBack {
		cx := p.x + p.w/2
		dc.Push()
		dc.Translate(cx, 0)
		dc.Scale(-1, 1)
		dc.Translate(-cx, 0)
	}
	dc.DrawImageEx(c.shirt, gg.DrawImageOptions{
		X: sx, Y: sy,
		DstWidth: sw, DstHeight: sh,
		Opacity:   shirtOpacity,
		BlendMode: gg.BlendMultiply,
	})
	if p.side == model.SideBack {
		dc.Pop()
	}

	// On the interactive surface the selected item floats above the
	// rest, matching its hit-test priority.
	if p.interactive && p.selectedID != 0 {
		reordered := make([]model.PlacedItem, 0, len(items))
		var selected []model.PlacedItem
		for _, it := range items {
			if it.ID == p.selectedID {
				selected = append(selected, it)
				continue
			}
			reordered = append(reordered, it)
		}
		items = append(reordered, selected...)
	}

	for _, item := range items {
		buf, ok := c.motifs[item.MotifID]
		if !ok {
			continue
		}
		frame := ItemFrame(item, c.MotifAspect(item.MotifID), p.w, p.h)
		cx := p.x + frame.CenterX
		cy := p.y + frame.CenterY

		dc.Push()
		dc.RotateAbout(item.Rotation*math.Pi/180, cx, cy)
		dc.DrawImageEx(buf, gg.DrawImageOptions{
			X: cx - frame.Width/2, Y: cy - frame.Height/2,
			DstWidth: frame.Width, DstHeight: frame.Height,
			BlendMode: gg.BlendMultiply,
		})
		if p.interactive && item.ID == p.selectedID {
			dc.SetColor(colorHighlight)
			dc.SetLineWidth(2 * p.scale)
			dc.SetDash(6*p.scale, 4*p.scale)
			dc.DrawRectangle(cx-frame.Width/2-4*p.scale, cy-frame.Height/2-4*p.scale,
				frame.Width+8*p.scale, frame.Height+8*p.scale)
			_ = dc.Stroke()
			dc.ClearDash()
		}
		dc.Pop()
	}

	// Garment color wash over the whole panel.
	if garment.Color == model.ColorBlack {
		dc.SetRGBA(0, 0, 0, 0.35)
		dc.DrawRectangle(p.x, p.y, p.w, p.h)
		_ = dc.Fill()
	}
}

func sideItems(items []model.PlacedItem, side model.Side) []model.PlacedItem {
	var out []model.PlacedItem
	for _, it := range items {
		if it.Side == side {
			out = append(out, it)
		}
	}
	return out
}
