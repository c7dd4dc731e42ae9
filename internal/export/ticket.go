package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/tamrudu/studio/internal/model"
	"github.com/tamrudu/studio/internal/render"
)

// TicketInfo is the data encoded into the order ticket's QR code.
type TicketInfo struct {
	Ref   string            `json:"ref"`
	Date  string            `json:"date"`
	Size  string            `json:"size"`
	Color string            `json:"color"`
	Items []TicketPlacement `json:"items"`
}

// TicketPlacement is one placed item as carried in the QR payload.
type TicketPlacement struct {
	Motif    string  `json:"motif"`
	Side     string  `json:"side"`
	X        float64 `json:"x_pct"`
	Y        float64 `json:"y_pct"`
	Rotation float64 `json:"rotation_deg"`
}

// Page layout constants (A4 landscape in mm).
const (
	ticketPageWidth  = 297.0
	ticketPageHeight = 210.0
	ticketMargin     = 15.0
	ticketHeaderH    = 12.0
	ticketQRSize     = 32.0
)

// newTicketInfo flattens a snapshot into the QR payload.
func newTicketInfo(snap render.Snapshot) TicketInfo {
	info := TicketInfo{
		Ref:   snap.TicketRef,
		Date:  snap.When.Format("2006-01-02"),
		Size:  string(snap.Garment.Size),
		Color: string(snap.Garment.Color),
	}
	for _, it := range snap.Items {
		info.Items = append(info.Items, TicketPlacement{
			Motif:    it.MotifID,
			Side:     string(it.Side),
			X:        it.X,
			Y:        it.Y,
			Rotation: it.Rotation,
		})
	}
	return info
}

// ExportTicket generates the order ticket PDF: the composed design
// image, garment details, per-motif quantities, and a QR code carrying
// the full placement payload for the workshop.
func ExportTicket(path string, snap render.Snapshot, capture image.Image, catalog *model.Catalog) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, ticketMargin)
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(ticketMargin, ticketMargin)
	pdf.CellFormat(ticketPageWidth-2*ticketMargin, ticketHeaderH,
		fmt.Sprintf("TAM RUDU - Order Ticket %s", snap.TicketRef), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(ticketMargin, ticketMargin+ticketHeaderH)
	details := fmt.Sprintf("Date: %s | %s | Placed items: %d",
		snap.When.Format("2006-01-02"), snap.Garment.Caption(), len(snap.Items))
	pdf.CellFormat(ticketPageWidth-2*ticketMargin, 6, details, "", 0, "L", false, 0, "")

	// Composed design image, scaled to the available width.
	var buf bytes.Buffer
	if err := png.Encode(&buf, capture); err != nil {
		return fmt.Errorf("encode design image: %w", err)
	}
	imgW := ticketPageWidth - 2*ticketMargin - ticketQRSize - 10
	imgH := imgW * float64(capture.Bounds().Dy()) / float64(capture.Bounds().Dx())
	maxH := ticketPageHeight - ticketMargin*2 - ticketHeaderH - 40
	if imgH > maxH {
		imgH = maxH
		imgW = imgH * float64(capture.Bounds().Dx()) / float64(capture.Bounds().Dy())
	}
	imgY := ticketMargin + ticketHeaderH + 10
	pdf.RegisterImageOptionsReader("design", fpdf.ImageOptions{ImageType: "PNG"}, &buf)
	pdf.ImageOptions("design", ticketMargin, imgY, imgW, imgH, false,
		fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	// QR code with the placement payload.
	payload, err := json.Marshal(newTicketInfo(snap))
	if err != nil {
		return fmt.Errorf("encode ticket payload: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generate QR code: %w", err)
	}
	qrX := ticketPageWidth - ticketMargin - ticketQRSize
	pdf.RegisterImageOptionsReader("qr", fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", qrX, imgY, ticketQRSize, ticketQRSize, false,
		fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(qrX, imgY+ticketQRSize+1)
	pdf.CellFormat(ticketQRSize, 4, snap.TicketRef, "", 0, "C", false, 0, "")

	// Per-motif quantity summary under the design.
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(ticketMargin, imgY+imgH+6)
	pdf.CellFormat(80, 6, "Motif quantities", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)

	counts := make(map[string]int)
	for _, it := range snap.Items {
		counts[it.MotifID]++
	}
	y := imgY + imgH + 12
	for _, m := range catalog.Motifs() {
		if counts[m.ID] == 0 {
			continue
		}
		pdf.SetXY(ticketMargin, y)
		pdf.CellFormat(80, 5, fmt.Sprintf("%s x %d", m.DisplayName, counts[m.ID]), "", 0, "L", false, 0, "")
		y += 5
	}
	if len(snap.Items) == 0 {
		pdf.SetXY(ticketMargin, y)
		pdf.CellFormat(80, 5, "(blank garment)", "", 0, "L", false, 0, "")
	}

	return pdf.OutputFileAndClose(path)
}
