package model

import (
	"strings"

	"github.com/google/uuid"
)

// Size is the shirt size selected for the order.
type Size string

const (
	SizeS  Size = "S"
	SizeM  Size = "M"
	SizeL  Size = "L"
	SizeXL Size = "XL"
)

// Sizes returns the selectable shirt sizes in display order.
func Sizes() []Size {
	return []Size{SizeS, SizeM, SizeL, SizeXL}
}

// Color is the shirt base color selected for the order.
type Color string

const (
	ColorWhite Color = "white"
	ColorBlack Color = "black"
)

// Colors returns the selectable shirt colors in display order.
func Colors() []Color {
	return []Color{ColorWhite, ColorBlack}
}

// Garment holds the order-level shirt configuration. It carries no
// relation to placed items beyond being echoed into export captions
// and applied as a render tint.
type Garment struct {
	Size  Size  `json:"size"`
	Color Color `json:"color"`
}

// DefaultGarment returns the configuration preselected on startup.
func DefaultGarment() Garment {
	return Garment{Size: SizeM, Color: ColorWhite}
}

// Caption returns the garment portion of the export caption line.
func (g Garment) Caption() string {
	return "SIZE: " + string(g.Size) + " | COLOR: " + strings.ToUpper(string(g.Color))
}

// NewTicketRef generates a short unique order ticket reference.
func NewTicketRef() string {
	return strings.ToUpper(uuid.New().String()[:8])
}
