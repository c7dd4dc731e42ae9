package ui

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/tamrudu/studio/internal/engine"
	"github.com/tamrudu/studio/internal/export"
	"github.com/tamrudu/studio/internal/model"
	"github.com/tamrudu/studio/internal/project"
	"github.com/tamrudu/studio/internal/render"
	"github.com/tamrudu/studio/internal/ui/widgets"
)

// settleDelay gives pending canvas refreshes one beat to land before
// the export surface is captured.
const settleDelay = 100 * time.Millisecond

// nudgeStep is the percent distance of one arrow-button press.
const nudgeStep = 5.0

// rotateStep is the degree distance of one rotate-button press.
const rotateStep = 15.0

// App holds all application state and UI references.
type App struct {
	app    fyne.App
	window fyne.Window

	designer   *engine.Designer
	drag       *engine.DragController
	compositor *render.Compositor
	pipeline   *export.Pipeline
	garment    model.Garment
	config     model.AppConfig

	// UI references for dynamic updates
	canvas       *widgets.DesignCanvas
	paletteBox   *fyne.Container
	statusLabel  *widget.Label
	frontBtn     *widget.Button
	backBtn      *widget.Button
	exportBtn    *widget.Button
	manipButtons []fyne.Disableable
}

// NewApp wires the engine, renderer, and export pipeline together.
func NewApp(application fyne.App, window fyne.Window) (*App, error) {
	catalog := model.DefaultCatalog()
	compositor, err := render.NewCompositor(catalog)
	if err != nil {
		return nil, fmt.Errorf("load artwork: %w", err)
	}

	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		config = model.DefaultAppConfig()
	}

	studioTheme := NewStudioTheme()
	switch config.Theme {
	case "light":
		studioTheme.SetVariant(theme.VariantLight)
	case "dark":
		studioTheme.SetVariant(theme.VariantDark)
	}
	application.Settings().SetTheme(studioTheme)

	designer := engine.NewDesigner(catalog)
	return &App{
		app:        application,
		window:     window,
		designer:   designer,
		drag:       engine.NewDragController(designer),
		compositor: compositor,
		pipeline:   export.NewPipeline(compositor),
		garment:    config.Garment(),
		config:     config,
	}, nil
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Design", func() {
			a.designer.Clear()
			a.refreshAll()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Design PNG...", func() {
			a.exportPNG()
		}),
		fyne.NewMenuItem("Export Order Ticket (PDF)...", func() {
			a.exportTicket()
		}),
		fyne.NewMenuItem("Export Placement Sheet (Excel)...", func() {
			a.exportSheet()
		}),
		fyne.NewMenuItem("Export Plotter DXF...", func() {
			a.exportDXF()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Delete Selected", func() {
			a.designer.DeleteSelected()
			a.refreshAll()
		}),
		fyne.NewMenuItem("Clear All", func() {
			a.designer.Clear()
			a.refreshAll()
		}),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Show Front", func() {
			a.setSide(model.SideFront)
		}),
		fyne.NewMenuItem("Show Back", func() {
			a.setSide(model.SideBack)
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu))
}

// Build assembles the three-panel layout: motif palette on the left,
// design surface in the center, manipulators and order details on the
// right.
func (a *App) Build() fyne.CanvasObject {
	a.canvas = widgets.NewDesignCanvas(a.designer, a.drag, a.compositor,
		func() model.Garment { return a.garment },
		func() { a.refreshControls() })

	left := a.buildPalette()
	center := a.buildCenter()
	right := a.buildControls()

	a.refreshAll()
	return container.NewBorder(nil, a.statusLabel, left, right, center)
}

func (a *App) buildPalette() fyne.CanvasObject {
	a.paletteBox = container.NewVBox()
	title := widget.NewLabelWithStyle("1 - Pick a design", fyne.TextAlignLeading,
		fyne.TextStyle{Bold: true})
	return container.NewVBox(title, a.paletteBox)
}

func (a *App) buildCenter() fyne.CanvasObject {
	a.frontBtn = widget.NewButton("Front", func() { a.setSide(model.SideFront) })
	a.backBtn = widget.NewButton("Back", func() { a.setSide(model.SideBack) })
	toggles := container.NewCenter(container.NewHBox(a.frontBtn, a.backBtn))

	a.statusLabel = widget.NewLabel("")
	return container.NewBorder(toggles, nil, nil, nil, a.canvas)
}

func (a *App) buildControls() fyne.CanvasObject {
	manipTitle := widget.NewLabelWithStyle("2 - Arrange", fyne.TextAlignLeading,
		fyne.TextStyle{Bold: true})

	presetCenter := widget.NewButton("Center", func() { a.applyPreset(engine.PresetCenter) })
	presetPocket := widget.NewButton("Pocket", func() { a.applyPreset(engine.PresetPocket) })
	presetHem := widget.NewButton("Hem", func() { a.applyPreset(engine.PresetHem) })
	presets := container.NewGridWithColumns(3, presetCenter, presetPocket, presetHem)

	up := widget.NewButtonWithIcon("", theme.MoveUpIcon(), func() { a.nudge(0, -nudgeStep) })
	down := widget.NewButtonWithIcon("", theme.MoveDownIcon(), func() { a.nudge(0, nudgeStep) })
	leftArrow := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() { a.nudge(-nudgeStep, 0) })
	rightArrow := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() { a.nudge(nudgeStep, 0) })
	arrows := container.NewGridWithColumns(3,
		widget.NewLabel(""), up, widget.NewLabel(""),
		leftArrow, widget.NewLabel(""), rightArrow,
		widget.NewLabel(""), down, widget.NewLabel(""),
	)

	rotateCCW := widget.NewButton("Rotate -15", func() { a.rotate(-rotateStep) })
	rotateCW := widget.NewButton("Rotate +15", func() { a.rotate(rotateStep) })
	rotations := container.NewGridWithColumns(2, rotateCCW, rotateCW)

	deleteBtn := widget.NewButtonWithIcon("Remove", theme.DeleteIcon(), func() {
		a.designer.DeleteSelected()
		a.refreshAll()
	})

	a.manipButtons = []fyne.Disableable{
		presetCenter, presetPocket, presetHem,
		up, down, leftArrow, rightArrow,
		rotateCCW, rotateCW, deleteBtn,
	}

	orderTitle := widget.NewLabelWithStyle("3 - Order", fyne.TextAlignLeading,
		fyne.TextStyle{Bold: true})

	sizeOptions := make([]string, 0, len(model.Sizes()))
	for _, s := range model.Sizes() {
		sizeOptions = append(sizeOptions, string(s))
	}
	sizeSelect := widget.NewSelect(sizeOptions, func(v string) {
		a.garment.Size = model.Size(v)
		a.config.DefaultSize = v
		a.saveConfig()
		a.canvas.Refresh()
	})
	sizeSelect.SetSelected(string(a.garment.Size))

	colorOptions := make([]string, 0, len(model.Colors()))
	for _, c := range model.Colors() {
		colorOptions = append(colorOptions, string(c))
	}
	colorSelect := widget.NewSelect(colorOptions, func(v string) {
		a.garment.Color = model.Color(v)
		a.config.DefaultColor = v
		a.saveConfig()
		a.canvas.Refresh()
	})
	colorSelect.SetSelected(string(a.garment.Color))

	a.exportBtn = widget.NewButtonWithIcon("Download Design", theme.DownloadIcon(), func() {
		a.exportPNG()
	})
	a.exportBtn.Importance = widget.HighImportance

	return container.NewVBox(
		manipTitle,
		presets,
		arrows,
		rotations,
		deleteBtn,
		widget.NewSeparator(),
		orderTitle,
		container.NewGridWithColumns(2, widget.NewLabel("Size"), sizeSelect),
		container.NewGridWithColumns(2, widget.NewLabel("Color"), colorSelect),
		a.exportBtn,
	)
}

func (a *App) setSide(side model.Side) {
	a.designer.SetSide(side)
	a.refreshAll()
}

func (a *App) applyPreset(p engine.Preset) {
	a.designer.ApplyPreset(p)
	a.refreshAll()
}

func (a *App) nudge(dx, dy float64) {
	a.designer.MoveSelected(dx, dy)
	a.refreshAll()
}

func (a *App) rotate(deg float64) {
	a.designer.RotateSelected(deg)
	a.refreshAll()
}

func (a *App) addMotif(id string) {
	_, err := a.designer.AddItem(id)
	if errors.Is(err, engine.ErrMotifLimit) {
		dialog.ShowInformation("Limit reached",
			fmt.Sprintf("Up to %d placements of each design are allowed.\nRemove one to place it again.",
				engine.MaxItemsPerMotif), a.window)
		return
	}
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.refreshAll()
}

// refreshPalette rebuilds the motif buttons with remaining counts.
func (a *App) refreshPalette() {
	a.paletteBox.RemoveAll()
	for _, m := range a.designer.Catalog().Motifs() {
		motifID := m.ID
		remaining := a.designer.Remaining(motifID)
		btn := widget.NewButtonWithIcon(
			fmt.Sprintf("%s (%d left)", m.DisplayName, remaining),
			theme.ContentAddIcon(),
			func() { a.addMotif(motifID) },
		)
		if remaining == 0 {
			btn.Disable()
		}
		a.paletteBox.Add(btn)
	}
	a.paletteBox.Refresh()
}

// refreshControls syncs the manipulator panel and status line with the
// current selection and side.
func (a *App) refreshControls() {
	_, selected := a.designer.SelectedItem()
	for _, b := range a.manipButtons {
		if selected {
			b.Enable()
		} else {
			b.Disable()
		}
	}

	if a.designer.Side() == model.SideFront {
		a.frontBtn.Importance = widget.HighImportance
		a.backBtn.Importance = widget.MediumImportance
	} else {
		a.frontBtn.Importance = widget.MediumImportance
		a.backBtn.Importance = widget.HighImportance
	}
	a.frontBtn.Refresh()
	a.backBtn.Refresh()

	a.refreshStatus()
}

func (a *App) refreshStatus() {
	if a.statusLabel == nil {
		return
	}
	item, ok := a.designer.SelectedItem()
	if !ok {
		a.statusLabel.SetText(fmt.Sprintf("%d items placed | viewing %s",
			len(a.designer.Items()), a.designer.Side()))
		return
	}
	name := item.MotifID
	if m, found := a.designer.Catalog().Get(item.MotifID); found {
		name = m.DisplayName
	}
	rotation := math.Mod(item.Rotation, 360)
	if rotation < 0 {
		rotation += 360
	}
	a.statusLabel.SetText(fmt.Sprintf("%d items placed | selected: %s (%s) at (%.0f, %.0f) rotated %.0f deg",
		len(a.designer.Items()), name, item.Side, item.X, item.Y, rotation))
}

func (a *App) refreshAll() {
	a.refreshPalette()
	a.refreshControls()
	a.canvas.Refresh()
}

// snapshot freezes the current design for export. Captures are pure
// functions of this copy; further edits never feed into a running
// export.
func (a *App) snapshot() render.Snapshot {
	return render.Snapshot{
		Items:     a.designer.Items(),
		Garment:   a.garment,
		TicketRef: model.NewTicketRef(),
		When:      time.Now(),
	}
}

// exportPNG captures the export surface and saves it where the user
// chooses. The pipeline's guard rejects re-triggering while one export
// is still in flight.
func (a *App) exportPNG() {
	if a.pipeline.Busy() {
		return
	}
	snap := a.snapshot()
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if w == nil {
			return
		}
		a.exportBtn.Disable()
		a.exportBtn.SetText("Preparing...")
		go func() {
			time.Sleep(settleDelay)
			exportErr := a.pipeline.ExportPNGTo(snap, w)
			closeErr := w.Close()
			fyne.Do(func() {
				a.exportBtn.Enable()
				a.exportBtn.SetText("Download Design")
				switch {
				case exportErr != nil:
					dialog.ShowError(fmt.Errorf("could not save image: %w", exportErr), a.window)
				case closeErr != nil:
					dialog.ShowError(closeErr, a.window)
				default:
					a.config.LastExportDir = filepath.Dir(w.URI().Path())
					a.saveConfig()
					dialog.ShowInformation("Saved",
						"Your design has been saved.\nBring the file to any TAM RUDU store to order.", a.window)
				}
			})
		}()
	}, a.window)
	d.SetFileName(export.FileName(snap))
	d.Show()
}

// savePath runs a file-save dialog and hands the chosen path to fn.
// Used for the formats whose writers produce files directly.
func (a *App) savePath(defaultName string, fn func(path string) error) {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if w == nil {
			return
		}
		path := w.URI().Path()
		_ = w.Close()
		if err := fn(path); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.config.LastExportDir = filepath.Dir(path)
		a.saveConfig()
		dialog.ShowInformation("Saved", "Export complete.", a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

func (a *App) exportTicket() {
	snap := a.snapshot()
	a.savePath(fmt.Sprintf("tam-rudu-ticket-%s.pdf", snap.TicketRef), func(path string) error {
		capture, err := a.compositor.Capture(snap, render.DefaultCaptureOptions())
		if err != nil {
			return fmt.Errorf("%w: %v", export.ErrCaptureFailed, err)
		}
		return export.ExportTicket(path, snap, capture, a.designer.Catalog())
	})
}

func (a *App) exportSheet() {
	snap := a.snapshot()
	a.savePath(fmt.Sprintf("tam-rudu-placements-%s.xlsx", snap.TicketRef), func(path string) error {
		return export.ExportPlacementSheet(path, snap, a.designer.Catalog())
	})
}

func (a *App) exportDXF() {
	snap := a.snapshot()
	a.savePath(fmt.Sprintf("tam-rudu-plotter-%s.dxf", snap.TicketRef), func(path string) error {
		return export.ExportPlacementDXF(path, snap, a.compositor.Aspects())
	})
}

func (a *App) saveConfig() {
	_ = project.SaveAppConfig(project.DefaultConfigPath(), a.config)
}
