package model

// Side identifies which face of the garment an item is placed on.
type Side string

const (
	SideFront Side = "front"
	SideBack  Side = "back"
)

// Opposite returns the other garment side.
func (s Side) Opposite() Side {
	if s == SideBack {
		return SideFront
	}
	return SideBack
}

// Label returns the side name as printed on export surfaces.
func (s Side) Label() string {
	if s == SideBack {
		return "BACK"
	}
	return "FRONT"
}

// Point represents a 2D coordinate. Depending on context the unit is
// either percent of a design surface or device pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Motif is one selectable decorative graphic from the catalog.
// The catalog is fixed and fully known before any placement occurs.
type Motif struct {
	ID          string `json:"id"`
	DisplayName string `json:"name"`
	// AssetName keys the artwork in the embedded asset set.
	AssetName string `json:"asset"`
	// DefaultRotation is applied when the motif is first placed. Tall
	// motifs ship with 90 so they lie across the chest by default.
	DefaultRotation float64 `json:"default_rotation"`
}

// Catalog is the immutable set of motifs available to the designer.
type Catalog struct {
	motifs []Motif
	byID   map[string]Motif
}

// NewCatalog builds a catalog from a motif list. Order is preserved for
// palette display.
func NewCatalog(motifs []Motif) *Catalog {
	c := &Catalog{
		motifs: make([]Motif, len(motifs)),
		byID:   make(map[string]Motif, len(motifs)),
	}
	copy(c.motifs, motifs)
	for _, m := range motifs {
		c.byID[m.ID] = m
	}
	return c
}

// DefaultCatalog returns the TAM RUDU motif set.
func DefaultCatalog() *Catalog {
	return NewCatalog([]Motif{
		{ID: "kab", DisplayName: "Pla Kab", AssetName: "kab"},
		{ID: "kador", DisplayName: "Pla Kador", AssetName: "kador", DefaultRotation: 90},
		{ID: "mor", DisplayName: "Pla Mor", AssetName: "mor"},
	})
}

// Get looks up a motif by ID.
func (c *Catalog) Get(id string) (Motif, bool) {
	m, ok := c.byID[id]
	return m, ok
}

// Motifs returns the motifs in palette order.
func (c *Catalog) Motifs() []Motif {
	out := make([]Motif, len(c.motifs))
	copy(out, c.motifs)
	return out
}

// PlacedItem is one instance of a motif positioned on one side of the
// garment. X and Y are percentages of the design surface. Rotation is
// in degrees and accumulates without normalization. ID, MotifID, and
// Side never change after creation.
type PlacedItem struct {
	ID       int64   `json:"id"`
	MotifID  string  `json:"motif"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
	Side     Side    `json:"side"`
}

// Position returns the item's position as a point in percent units.
func (p PlacedItem) Position() Point {
	return Point{X: p.X, Y: p.Y}
}
