package ui

import (
	"fmt"
	"image"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/leocode09/camera/pkg/capture"
	"github.com/leocode09/camera/pkg/session"
)

// Screen is the capture view: live preview, switch/capture/save controls, an
// error panel, and a thumbnail of the most recent still. It renders session
// snapshots; all camera logic stays in the session.
type Screen struct {
	log        *logrus.Entry
	sess       *session.Session
	thumbWidth int
	saveDir    string

	preview    *Preview
	loading    *widget.ProgressBarInfinite
	thumb      *canvas.Image
	device     *widget.Label
	status     *widget.Label
	switchBtn  *widget.Button
	captureBtn *widget.Button
	saveBtn    *widget.Button

	content fyne.CanvasObject
}

func NewScreen(sess *session.Session, thumbWidth int, saveDir string, log *logrus.Logger) *Screen {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Screen{
		log:        log.WithField("component", "screen"),
		sess:       sess,
		thumbWidth: thumbWidth,
		saveDir:    saveDir,
	}
	s.build()
	return s
}

func (s *Screen) build() {
	s.preview = NewPreview()
	s.loading = widget.NewProgressBarInfinite()
	s.loading.Hide()

	s.thumb = canvas.NewImageFromImage(nil)
	s.thumb.FillMode = canvas.ImageFillContain
	s.thumb.SetMinSize(fyne.NewSize(float32(s.thumbWidth), float32(s.thumbWidth)*3/4))

	s.device = widget.NewLabel("")
	s.status = widget.NewLabel("")
	s.status.Wrapping = fyne.TextWrapWord
	s.status.Importance = widget.DangerImportance

	s.switchBtn = widget.NewButtonWithIcon("Switch", theme.ViewRefreshIcon(), func() {
		go s.sess.SwitchCamera()
	})
	s.captureBtn = widget.NewButtonWithIcon("Capture", theme.MediaPhotoIcon(), func() {
		go s.sess.Capture()
	})
	s.saveBtn = widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), func() {
		go s.saveLast()
	})
	s.switchBtn.Disable()
	s.captureBtn.Disable()
	s.saveBtn.Disable()

	controls := container.NewHBox(s.switchBtn, s.captureBtn, s.saveBtn)
	side := container.NewVBox(widget.NewLabel("Last capture"), s.thumb)
	center := container.NewStack(s.preview, s.loading)

	s.content = container.NewBorder(
		s.device,
		container.NewVBox(controls, s.status),
		nil,
		side,
		center,
	)
}

// Content returns the widget tree for embedding into a window.
func (s *Screen) Content() fyne.CanvasObject {
	return s.content
}

// Apply renders a session snapshot. Safe to call from any goroutine; widget
// mutation is marshalled onto the UI thread.
func (s *Screen) Apply(snap session.Snapshot) {
	var thumb image.Image
	if len(snap.LastCapture) > 0 {
		img, err := capture.Thumbnail(snap.LastCapture, s.thumbWidth)
		if err != nil {
			s.log.WithError(err).Warn("thumbnail decode failed")
		} else {
			thumb = img
		}
	}

	fyne.Do(func() {
		if snap.State == session.StateInitializing && !snap.Live {
			s.loading.Show()
		} else {
			s.loading.Hide()
		}
		if !snap.Live {
			s.preview.Clear()
		}

		if snap.Selected >= 0 && snap.Selected < len(snap.Devices) {
			dev := snap.Devices[snap.Selected]
			s.device.SetText(fmt.Sprintf("%s — %s", dev.Name, snap.State))
		} else {
			s.device.SetText(snap.State.String())
		}

		s.status.SetText(snap.Err)

		setEnabled(s.switchBtn, snap.CanSwitch)
		setEnabled(s.captureBtn, snap.CanCapture)
		setEnabled(s.saveBtn, len(snap.LastCapture) > 0)

		if thumb != nil {
			s.thumb.Image = thumb
			s.thumb.Refresh()
		}
	})
}

func (s *Screen) saveLast() {
	snap := s.sess.Snapshot()
	path, err := capture.Save(snap.LastCapture, s.saveDir)
	if err != nil {
		s.log.WithError(err).Error("save capture failed")
		return
	}
	s.log.WithField("path", path).Info("capture saved")
}

// RunPreviewLoop polls frames from the session at the given interval and
// feeds the preview widget until the returned stop function is called.
func (s *Screen) RunPreviewLoop(interval time.Duration) (stop func()) {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
			}
			img, err := s.sess.Frame()
			if err != nil {
				continue
			}
			fyne.Do(func() {
				s.preview.SetFrame(img)
			})
		}
	}()
	return func() { close(done) }
}

func setEnabled(b *widget.Button, enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}
