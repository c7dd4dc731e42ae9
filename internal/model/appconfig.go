package model

// AppConfig holds application-wide preferences. Designs themselves are
// never persisted; only studio defaults and window preferences are.
type AppConfig struct {
	// Defaults applied when the studio starts
	DefaultSize  string `json:"default_size"`
	DefaultColor string `json:"default_color"`

	// Application preferences
	LastExportDir string `json:"last_export_dir"`
	Theme         string `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	g := DefaultGarment()
	return AppConfig{
		DefaultSize:  string(g.Size),
		DefaultColor: string(g.Color),
		Theme:        "system",
	}
}

// Garment resolves the configured defaults into a Garment, falling back
// to the studio defaults for values outside the fixed enumerations.
func (c AppConfig) Garment() Garment {
	g := DefaultGarment()
	for _, s := range Sizes() {
		if string(s) == c.DefaultSize {
			g.Size = s
		}
	}
	for _, col := range Colors() {
		if string(col) == c.DefaultColor {
			g.Color = col
		}
	}
	return g
}
