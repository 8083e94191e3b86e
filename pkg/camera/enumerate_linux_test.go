//go:build linux

package camera

import (
	"reflect"
	"testing"
)

func TestSortVideoNodes(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		want  []string
	}{
		{
			name:  "numeric order beats lexicographic",
			paths: []string{"/dev/video10", "/dev/video2", "/dev/video0"},
			want:  []string{"/dev/video0", "/dev/video2", "/dev/video10"},
		},
		{
			name:  "non-numeric suffixes dropped",
			paths: []string{"/dev/video1", "/dev/video-dec0", "/dev/videoX"},
			want:  []string{"/dev/video1"},
		},
		{
			name:  "empty input",
			paths: nil,
			want:  []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sortVideoNodes(tt.paths)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("sortVideoNodes(%v) = %v, want %v", tt.paths, got, tt.want)
			}
		})
	}
}
