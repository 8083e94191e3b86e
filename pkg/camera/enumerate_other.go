//go:build !linux

package camera

import (
	"strconv"

	"gocv.io/x/gocv"
)

const defaultMaxProbe = 8

// enumerate probes capture indices 0..MaxProbe by briefly opening each one.
// Platforms without a queryable device tree expose cameras only by index, so
// a failed open is the signal that the index is vacant, not an error.
func (r *SystemRegistry) enumerate() ([]Device, error) {
	max := r.MaxProbe
	if max <= 0 {
		max = defaultMaxProbe
	}

	var devices []Device
	for i := 0; i < max; i++ {
		cam, err := gocv.VideoCaptureDevice(i)
		if err != nil {
			continue
		}
		opened := cam.IsOpened()
		cam.Close()
		if !opened {
			continue
		}
		id := strconv.Itoa(i)
		devices = append(devices, Device{
			ID:     id,
			Name:   "camera " + id,
			Facing: FacingUnknown,
		})
	}
	return devices, nil
}
