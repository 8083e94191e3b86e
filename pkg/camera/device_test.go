package camera

import "testing"

func TestGuessFacing(t *testing.T) {
	tests := []struct {
		name string
		want Facing
	}{
		{"Integrated Camera", FacingFront},
		{"FaceTime HD Camera", FacingFront},
		{"Front Camera", FacingFront},
		{"Rear Camera", FacingBack},
		{"back camera 0", FacingBack},
		{"Logitech C920", FacingExternal},
		{"", FacingUnknown},
	}
	for _, tt := range tests {
		if got := guessFacing(tt.name); got != tt.want {
			t.Errorf("guessFacing(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestPresetParams(t *testing.T) {
	tests := []struct {
		preset        Preset
		width, height int
		quality       int
	}{
		{PresetLow, 320, 240, 50},
		{PresetMedium, 640, 480, 75},
		{PresetHigh, 1280, 720, 90},
		{PresetMax, 1920, 1080, 100},
		{Preset("bogus"), 640, 480, 75}, // falls back to medium
	}
	for _, tt := range tests {
		w, h, q := tt.preset.Params()
		if w != tt.width || h != tt.height || q != tt.quality {
			t.Errorf("%s.Params() = (%d, %d, %d), want (%d, %d, %d)",
				tt.preset, w, h, q, tt.width, tt.height, tt.quality)
		}
	}
}

func TestDeviceString(t *testing.T) {
	d := Device{ID: "/dev/video0", Name: "Integrated Camera"}
	if got := d.String(); got != "Integrated Camera (/dev/video0)" {
		t.Errorf("String() = %q", got)
	}
	anon := Device{ID: "1"}
	if got := anon.String(); got != "1" {
		t.Errorf("String() = %q, want bare ID when unnamed", got)
	}
}
