package camera

import (
	"image"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// Preset selects the capture resolution and still-image JPEG quality.
type Preset string

const (
	PresetLow    Preset = "low"
	PresetMedium Preset = "medium"
	PresetHigh   Preset = "high"
	PresetMax    Preset = "max"
)

// presetParams maps a Preset to concrete capture parameters.
type presetParams struct {
	width, height int
	jpegQuality   int
}

var presets = map[Preset]presetParams{
	PresetLow:    {320, 240, 50},
	PresetMedium: {640, 480, 75},
	PresetHigh:   {1280, 720, 90},
	PresetMax:    {1920, 1080, 100},
}

// Params returns the resolution and JPEG quality for the preset, falling back
// to medium for unknown values.
func (p Preset) Params() (width, height, quality int) {
	pp, ok := presets[p]
	if !ok {
		pp = presets[PresetMedium]
	}
	return pp.width, pp.height, pp.jpegQuality
}

// Controller is an open stream bound to one device. At most one initialized
// Controller should exist per session; the session owns creation and disposal.
type Controller interface {
	// Initialize opens the underlying device. A Controller that fails to
	// initialize must still be Closed by the caller.
	Initialize() error
	// Initialized reports whether the stream is open and usable.
	Initialized() bool
	// Capturing reports whether a still-image request is in flight.
	Capturing() bool
	// AspectRatio returns width/height of the stream, or 0 before Initialize.
	AspectRatio() float64
	// Frame reads the next preview frame.
	Frame() (image.Image, error)
	// Capture requests a still image and returns its encoded bytes.
	Capture() ([]byte, error)
	// Close releases the device. Safe to call multiple times.
	Close() error
}

// Service creates controllers for enumerated devices.
type Service interface {
	Create(dev Device, preset Preset) (Controller, error)
}

// VideoService is the GoCV-backed Service used against real hardware.
type VideoService struct{}

func NewVideoService() *VideoService { return &VideoService{} }

func (s *VideoService) Create(dev Device, preset Preset) (Controller, error) {
	w, h, q := preset.Params()
	mat := gocv.NewMat()
	return &videoController{
		device:  dev,
		width:   w,
		height:  h,
		quality: q,
		frame:   &mat,
	}, nil
}

// videoController wraps a gocv.VideoCapture with a reusable frame matrix to
// avoid per-frame allocation.
type videoController struct {
	device  Device
	width   int
	height  int
	quality int

	mu        sync.Mutex
	webcam    *gocv.VideoCapture
	frame     *gocv.Mat
	capturing atomic.Bool
}

func (c *videoController) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.webcam != nil {
		return nil
	}
	cam, err := gocv.OpenVideoCapture(c.device.ID)
	if err != nil {
		return errors.Wrapf(err, "open device %s", c.device.ID)
	}
	cam.Set(gocv.VideoCaptureFrameWidth, float64(c.width))
	cam.Set(gocv.VideoCaptureFrameHeight, float64(c.height))
	c.webcam = cam
	return nil
}

func (c *videoController) Initialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.webcam != nil && c.webcam.IsOpened()
}

func (c *videoController) Capturing() bool {
	return c.capturing.Load()
}

func (c *videoController) AspectRatio() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.webcam == nil {
		return 0
	}
	w := c.webcam.Get(gocv.VideoCaptureFrameWidth)
	h := c.webcam.Get(gocv.VideoCaptureFrameHeight)
	if h == 0 {
		return 0
	}
	return w / h
}

func (c *videoController) Frame() (image.Image, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.webcam == nil {
		return nil, errors.New("controller not initialized")
	}
	if !c.webcam.Read(c.frame) {
		return nil, errors.Errorf("cannot read frame from %s", c.device.ID)
	}
	if c.frame.Empty() {
		return nil, errors.New("frame is empty")
	}
	img, err := c.frame.ToImage()
	if err != nil {
		return nil, errors.Wrap(err, "convert frame")
	}
	return img, nil
}

func (c *videoController) Capture() ([]byte, error) {
	c.capturing.Store(true)
	defer c.capturing.Store(false)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.webcam == nil {
		return nil, errors.New("controller not initialized")
	}
	if !c.webcam.Read(c.frame) || c.frame.Empty() {
		return nil, errors.Errorf("cannot read still from %s", c.device.ID)
	}
	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, *c.frame,
		[]int{gocv.IMWriteJpegQuality, c.quality})
	if err != nil {
		return nil, errors.Wrap(err, "encode still")
	}
	defer buf.Close()

	out := make([]byte, len(buf.GetBytes()))
	copy(out, buf.GetBytes())
	return out, nil
}

func (c *videoController) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	if c.webcam != nil {
		err = c.webcam.Close()
		c.webcam = nil
	}
	if c.frame != nil {
		c.frame.Close()
		c.frame = nil
	}
	return err
}
