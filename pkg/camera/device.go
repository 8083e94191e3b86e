package camera

import "fmt"

// Facing describes which way a camera points.
type Facing int

const (
	FacingUnknown Facing = iota
	FacingFront
	FacingBack
	FacingExternal
)

func (f Facing) String() string {
	switch f {
	case FacingFront:
		return "front"
	case FacingBack:
		return "back"
	case FacingExternal:
		return "external"
	default:
		return "unknown"
	}
}

// Device identifies one physical or virtual camera. It is produced by
// enumeration and never modified afterwards.
type Device struct {
	ID     string // backend-specific identifier, e.g. "/dev/video0" or "0"
	Name   string
	Facing Facing
}

func (d Device) String() string {
	if d.Name != "" {
		return fmt.Sprintf("%s (%s)", d.Name, d.ID)
	}
	return d.ID
}

// Registry lists the cameras available on this host.
//
// Enumerate is called once at startup. The returned order is preserved by the
// session as the camera switch cycle order. An empty list is not an error at
// this level; callers decide how to treat it.
type Registry interface {
	Enumerate() ([]Device, error)
}
