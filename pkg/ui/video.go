package ui

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// Preview displays live camera frames.
type Preview struct {
	widget.BaseWidget

	// mu ensures we don't read / write the image at the same time
	mu    sync.Mutex
	image *canvas.Image
}

func NewPreview() *Preview {
	p := &Preview{}
	p.ExtendBaseWidget(p)

	p.image = canvas.NewImageFromImage(nil)
	p.image.FillMode = canvas.ImageFillContain
	p.image.SetMinSize(fyne.NewSize(320, 240))
	return p
}

// SetFrame replaces the displayed frame. Must be called on the UI thread
// (wrap in fyne.Do when feeding from a background loop).
func (p *Preview) SetFrame(img image.Image) {
	p.mu.Lock()
	p.image.Image = img
	p.mu.Unlock()

	p.Refresh()
}

// Clear drops the current frame, e.g. when the camera is released.
func (p *Preview) Clear() {
	p.SetFrame(nil)
}

func (p *Preview) CreateRenderer() fyne.WidgetRenderer {
	return &previewRenderer{p}
}

type previewRenderer struct {
	p *Preview
}

func (r *previewRenderer) Destroy() {}

func (r *previewRenderer) MinSize() fyne.Size {
	return r.p.image.MinSize()
}

func (r *previewRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.p.image}
}

func (r *previewRenderer) Refresh() {
	r.p.mu.Lock()
	defer r.p.mu.Unlock()
	r.p.image.Refresh()
}

func (r *previewRenderer) Layout(s fyne.Size) {
	r.p.image.Resize(s)
}
