// Package ui provides the TAM RUDU studio application UI.
//
// This file defines a custom Fyne theme: deep-indigo primary over the
// default palette, with slightly compact sizing for the tool panels.
package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// indigoDeep is the brand accent used across the marketing site.
var indigoDeep = color.NRGBA{R: 49, G: 46, B: 129, A: 255}

// StudioTheme wraps the default Fyne theme with the TAM RUDU accent
// color and compact control sizing.
type StudioTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
}

// NewStudioTheme creates a StudioTheme with the system default variant.
func NewStudioTheme() *StudioTheme {
	return &StudioTheme{base: theme.DefaultTheme()}
}

// SetVariant updates the theme variant (light/dark/system).
func (t *StudioTheme) SetVariant(variant fyne.ThemeVariant) {
	t.variant = variant
}

// Color delegates to the base theme, overriding the primary accent.
func (t *StudioTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if name == theme.ColorNamePrimary {
		return indigoDeep
	}
	return t.base.Color(name, t.variant)
}

// Font delegates to the base theme.
func (t *StudioTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *StudioTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns slightly compact sizing for dense tool panels.
func (t *StudioTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	default:
		return t.base.Size(name)
	}
}
