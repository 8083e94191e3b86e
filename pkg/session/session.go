// Package session implements the camera session lifecycle: device list
// ownership, controller initialization and teardown, camera switching, still
// capture, and host lifecycle pause/resume. It is the error boundary for the
// whole camera path; failures land in the session snapshot, never in panics
// or errors escaping to the rendering layer.
package session

import (
	"fmt"
	"image"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/leocode09/camera/pkg/camera"
)

// State is the observable session phase.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
	StateCapturing
	// StateSuspended means the controller was released on a host inactive
	// event; the selected device is remembered for resume.
	StateSuspended
	StateError
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateCapturing:
		return "capturing"
	case StateSuspended:
		return "suspended"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

var (
	ErrClosed       = errors.New("session closed")
	ErrBusy         = errors.New("capture already in flight")
	ErrInitializing = errors.New("initialization already in flight")
	ErrNotReady     = errors.New("no initialized controller")
	ErrOutOfRange   = errors.New("device index out of range")
)

// Snapshot is an immutable view of session state handed to the rendering
// layer. Devices is shared and must not be mutated.
type Snapshot struct {
	State       State
	Devices     []camera.Device
	Selected    int
	Err         string
	Busy        bool
	Live        bool // an initialized controller is installed
	LastCapture []byte
	CanSwitch   bool
	CanCapture  bool
}

// Session owns the active camera controller. At most one initialized
// controller exists at any time; every exit path (failure, switch-away,
// lifecycle pause, teardown) releases it.
type Session struct {
	log     *logrus.Entry
	service camera.Service
	preset  camera.Preset

	mu           sync.Mutex
	devices      []camera.Device
	selected     int
	active       camera.Controller
	lastCapture  []byte
	errMsg       string
	busy         bool
	initializing bool
	closed       bool
	state        State

	onChange    func(Snapshot)
	unsubscribe func()
}

func New(service camera.Service, preset camera.Preset, log *logrus.Logger) *Session {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Session{
		log:     log.WithField("component", "session"),
		service: service,
		preset:  preset,
		state:   StateUninitialized,
	}
}

// SetOnChange registers a callback invoked after every state transition.
// Must be called before Start.
func (s *Session) SetOnChange(fn func(Snapshot)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Listen subscribes to host lifecycle events until Close.
func (s *Session) Listen(n Notifier) {
	ch, unsub := n.Subscribe()
	s.mu.Lock()
	s.unsubscribe = unsub
	s.mu.Unlock()

	go func() {
		for ev := range ch {
			s.HandleLifecycle(ev)
		}
	}()
}

// Start enumerates devices once and initializes the first one. Enumeration
// failure and an empty device list are terminal: the session stays in
// StateError and no controller is ever created.
func (s *Session) Start(reg camera.Registry) error {
	devices, err := reg.Enumerate()
	if err != nil {
		s.log.WithError(err).Error("device enumeration failed")
		s.fail(fmt.Sprintf("failed to enumerate cameras: %v", err))
		return errors.Wrap(err, "enumerate")
	}
	if len(devices) == 0 {
		s.log.Warn("no cameras found")
		s.fail("no cameras found")
		return ErrNotReady
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.devices = devices
	s.selected = 0
	s.mu.Unlock()

	s.log.WithField("count", len(devices)).Info("cameras enumerated")
	return s.Initialize(0)
}

// Initialize binds a controller to devices[index] and installs it as the
// active one. The previous controller, if any, is disposed only after the new
// one is installed, so a successful switch never leaves the session without a
// live controller. A failed attempt disposes the partial controller and keeps
// the previous one untouched.
func (s *Session) Initialize(index int) error {
	s.mu.Lock()
	switch {
	case s.closed:
		s.mu.Unlock()
		return ErrClosed
	case index < 0 || index >= len(s.devices):
		s.mu.Unlock()
		return ErrOutOfRange
	case s.initializing:
		// Guard against overlapping calls racing to install a controller,
		// e.g. rapid repeated switch taps.
		s.mu.Unlock()
		return ErrInitializing
	}
	s.initializing = true
	s.errMsg = ""
	s.state = StateInitializing
	dev := s.devices[index]
	s.mu.Unlock()
	s.notify()

	s.log.WithField("device", dev.String()).Info("initializing controller")
	ctrl, err := s.service.Create(dev, s.preset)
	if err == nil {
		err = ctrl.Initialize()
	}

	s.mu.Lock()
	if s.closed {
		// Torn down mid-flight: dispose the fresh controller, mutate nothing.
		s.mu.Unlock()
		if ctrl != nil {
			ctrl.Close()
		}
		return ErrClosed
	}
	s.initializing = false
	suspended := s.state == StateSuspended

	if err != nil {
		s.errMsg = fmt.Sprintf("failed to initialize %s: %v", dev, err)
		switch {
		case suspended:
			// Keep the suspend state; the next resume retries this device.
		case s.active != nil:
			s.state = StateReady
		default:
			s.state = StateError
		}
		s.mu.Unlock()
		if ctrl != nil {
			ctrl.Close()
		}
		s.log.WithError(err).WithField("device", dev.String()).Error("controller init failed")
		s.notify()
		return errors.Wrapf(err, "initialize %s", dev)
	}

	if suspended {
		// The host went inactive while this init was in flight. The fresh
		// controller must not hold camera hardware while backgrounded;
		// remember the device so resume re-acquires it.
		s.selected = index
		s.mu.Unlock()
		ctrl.Close()
		s.log.WithField("device", dev.String()).Info("suspended during init, controller released")
		s.notify()
		return nil
	}

	prev := s.active
	s.active = ctrl
	s.selected = index
	s.state = StateReady
	s.mu.Unlock()

	if prev != nil {
		prev.Close()
	}
	s.log.WithField("device", dev.String()).Info("controller ready")
	s.notify()
	return nil
}

// SwitchCamera advances to the next device in enumeration order, wrapping at
// the end. With fewer than two devices it does nothing.
func (s *Session) SwitchCamera() error {
	s.mu.Lock()
	if len(s.devices) < 2 {
		s.mu.Unlock()
		return nil
	}
	next := (s.selected + 1) % len(s.devices)
	s.mu.Unlock()
	return s.Initialize(next)
}

// Capture requests a still image from the active controller and stores its
// bytes as the last capture. A failed capture keeps the previous bytes.
func (s *Session) Capture() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	ctrl := s.active
	if ctrl == nil || !ctrl.Initialized() {
		s.mu.Unlock()
		return ErrNotReady
	}
	// Double gate: the session busy flag and the controller's own
	// in-flight flag must both be clear.
	if s.busy || ctrl.Capturing() {
		s.mu.Unlock()
		return ErrBusy
	}
	s.busy = true
	s.errMsg = ""
	s.state = StateCapturing
	s.mu.Unlock()
	s.notify()

	data, err := ctrl.Capture()

	s.mu.Lock()
	if s.closed {
		// Torn down while the still was in flight: swallow the result.
		s.mu.Unlock()
		return ErrClosed
	}
	s.busy = false
	// The host may have gone inactive while the still was in flight; the
	// suspend state must survive so a later resume re-acquires the camera.
	if s.state == StateCapturing {
		s.state = StateReady
	}
	if err != nil {
		s.errMsg = fmt.Sprintf("capture failed: %v", err)
		s.mu.Unlock()
		s.log.WithError(err).Error("capture failed")
		s.notify()
		return errors.Wrap(err, "capture")
	}
	s.lastCapture = data
	s.mu.Unlock()
	s.log.WithField("bytes", len(data)).Info("still captured")
	s.notify()
	return nil
}

// HandleLifecycle reacts to host foreground/background transitions. Inactive
// releases the camera hardware but remembers the selected device; Resumed
// re-initializes it. Resume also retries after a failed device init — only
// enumeration failures (empty device list) are terminal. Other events arriving
// while no controller is live are ignored.
func (s *Session) HandleLifecycle(ev Event) {
	switch ev {
	case EventInactive:
		s.mu.Lock()
		if s.closed || s.active == nil {
			s.mu.Unlock()
			return
		}
		prev := s.active
		s.active = nil
		s.state = StateSuspended
		idx := s.selected
		s.mu.Unlock()
		prev.Close()
		s.log.WithField("selected", idx).Info("suspended, camera released")
		s.notify()
	case EventResumed:
		s.mu.Lock()
		resume := !s.closed && len(s.devices) > 0 &&
			(s.state == StateSuspended || s.state == StateError)
		idx := s.selected
		s.mu.Unlock()
		if !resume {
			return
		}
		s.log.WithField("selected", idx).Info("resuming camera")
		s.Initialize(idx)
	}
}

// Frame reads the next preview frame from the active controller.
func (s *Session) Frame() (image.Image, error) {
	s.mu.Lock()
	ctrl := s.active
	s.mu.Unlock()
	if ctrl == nil {
		return nil, ErrNotReady
	}
	return ctrl.Frame()
}

// Snapshot returns the current observable state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		State:       s.state,
		Devices:     s.devices,
		Selected:    s.selected,
		Err:         s.errMsg,
		Busy:        s.busy,
		Live:        s.active != nil,
		LastCapture: s.lastCapture,
		CanSwitch:   len(s.devices) >= 2 && !s.busy && !s.initializing && !s.closed,
		CanCapture:  s.active != nil && !s.busy && !s.initializing && !s.closed,
	}
}

// Close tears the session down: unsubscribes from lifecycle events, releases
// the active controller, and latches the closed state so results of in-flight
// operations are swallowed. Safe to call once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	prev := s.active
	s.active = nil
	unsub := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	if prev != nil {
		prev.Close()
	}
	s.log.Info("session closed")
}

// fail records a terminal startup error.
func (s *Session) fail(msg string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.errMsg = msg
	s.state = StateError
	s.mu.Unlock()
	s.notify()
}

func (s *Session) notify() {
	s.mu.Lock()
	fn := s.onChange
	snap := s.snapshotLocked()
	s.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}
