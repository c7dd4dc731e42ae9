// Package assets embeds the artwork shipped with the studio: the shirt
// mockup, the motif catalog images, the caption font, and the app icon.
package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"image/png"
)

//go:embed shirt.png
var shirtPNG []byte

//go:embed motifs/*.png
var motifFS embed.FS

//go:embed fonts/DejaVuSans.ttf
var captionFontTTF []byte

//go:embed icon.png
var IconPNG []byte

// ShirtImage decodes the embedded shirt mockup artwork.
func ShirtImage() (image.Image, error) {
	img, err := png.Decode(bytes.NewReader(shirtPNG))
	if err != nil {
		return nil, fmt.Errorf("decode shirt mockup: %w", err)
	}
	return img, nil
}

// MotifImage decodes the artwork for one motif asset name.
func MotifImage(name string) (image.Image, error) {
	data, err := motifFS.ReadFile("motifs/" + name + ".png")
	if err != nil {
		return nil, fmt.Errorf("motif artwork %q: %w", name, err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode motif artwork %q: %w", name, err)
	}
	return img, nil
}

// CaptionFont returns the TTF bytes used for export surface text.
func CaptionFont() []byte {
	return captionFontTTF
}
