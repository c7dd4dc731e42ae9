// TAM RUDU Studio — Custom Garment Design
//
// A cross-platform desktop application for placing traditional motifs
// on garments and exporting print-ready design files.
//
// Build:
//   go build -o tamrudu ./cmd/tamrudu
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o tamrudu.exe ./cmd/tamrudu
//   GOOS=darwin  GOARCH=amd64 go build -o tamrudu-darwin ./cmd/tamrudu
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/tamrudu/studio/internal/assets"
	"github.com/tamrudu/studio/internal/ui"
)

func main() {
	application := app.NewWithID("com.tamrudu.studio")
	application.SetIcon(fyne.NewStaticResource("icon.png", assets.IconPNG))

	window := application.NewWindow("TAM RUDU — Garment Design Studio")
	window.SetIcon(fyne.NewStaticResource("icon.png", assets.IconPNG))

	appUI, err := ui.NewApp(application, window)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1280, 860))
	window.CenterOnScreen()

	window.ShowAndRun()
}
