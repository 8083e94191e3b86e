package camera

import "strings"

// SystemRegistry enumerates cameras attached to this host using the
// platform-specific discovery in enumerate_linux.go / enumerate_other.go.
type SystemRegistry struct {
	// MaxProbe bounds probe-based discovery on platforms without a device
	// tree to walk. Zero means the default.
	MaxProbe int
}

func NewSystemRegistry() *SystemRegistry { return &SystemRegistry{} }

func (r *SystemRegistry) Enumerate() ([]Device, error) {
	return r.enumerate()
}

// guessFacing infers a facing direction from the device name. Desktop webcams
// rarely report one, so anything unrecognized is treated as external.
func guessFacing(name string) Facing {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "front"), strings.Contains(n, "integrated"),
		strings.Contains(n, "facetime"):
		return FacingFront
	case strings.Contains(n, "back"), strings.Contains(n, "rear"):
		return FacingBack
	case n == "":
		return FacingUnknown
	default:
		return FacingExternal
	}
}
