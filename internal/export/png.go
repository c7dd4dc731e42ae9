// Package export produces the downloadable artifacts for a composed
// design: the PNG capture, the order ticket PDF, the production
// placement sheet, and the plotter DXF.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/tamrudu/studio/internal/render"
)

var (
	// ErrCaptureFailed is returned when the raster capture of the
	// export surface fails. No partial output is produced and the
	// design state is untouched.
	ErrCaptureFailed = errors.New("design capture failed")

	// ErrExportBusy is returned when an export is requested while a
	// previous one is still in flight.
	ErrExportBusy = errors.New("an export is already in progress")
)

// Capturer renders a placement snapshot to a bitmap. The render
// compositor is the production implementation; tests substitute
// failing or blocking captures.
type Capturer interface {
	Capture(snap render.Snapshot, opts render.CaptureOptions) (image.Image, error)
}

// Pipeline runs PNG exports with a single-flight guard: a second
// request while one is pending is rejected rather than queued, so two
// downloads can never race on the same surface.
type Pipeline struct {
	capturer Capturer
	opts     render.CaptureOptions

	mu   sync.Mutex
	busy bool
}

// NewPipeline creates a pipeline using the default capture options.
func NewPipeline(c Capturer) *Pipeline {
	return &Pipeline{capturer: c, opts: render.DefaultCaptureOptions()}
}

// Busy reports whether an export is currently in flight.
func (p *Pipeline) Busy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.busy
}

func (p *Pipeline) begin() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.busy {
		return ErrExportBusy
	}
	p.busy = true
	return nil
}

func (p *Pipeline) settle() {
	p.mu.Lock()
	p.busy = false
	p.mu.Unlock()
}

// FileName synthesizes the download name for a capture.
func FileName(snap render.Snapshot) string {
	return fmt.Sprintf("tam-rudu-custom-%d.png", snap.When.UnixMilli())
}

// ExportPNGTo captures the snapshot and writes PNG bytes to w.
func (p *Pipeline) ExportPNGTo(snap render.Snapshot, w io.Writer) error {
	if err := p.begin(); err != nil {
		return err
	}
	defer p.settle()

	img, err := p.capturer.Capture(snap, p.opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCaptureFailed, err)
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// ExportPNG captures the snapshot into dir under the synthesized
// download name and returns the written path. A failed capture leaves
// no file behind.
func (p *Pipeline) ExportPNG(snap render.Snapshot, dir string) (string, error) {
	if err := p.begin(); err != nil {
		return "", err
	}
	defer p.settle()

	img, err := p.capturer.Capture(snap, p.opts)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCaptureFailed, err)
	}

	path := filepath.Join(dir, FileName(snap))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("encode png: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}
