//go:build linux

package camera

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// enumerate walks /dev/video* and resolves human-readable names through
// /sys/class/video4linux. Order follows the numeric node suffix so the switch
// cycle is stable across runs.
func (r *SystemRegistry) enumerate() ([]Device, error) {
	paths, err := filepath.Glob("/dev/video*")
	if err != nil {
		return nil, errors.Wrap(err, "glob video devices")
	}
	paths = sortVideoNodes(paths)

	devices := make([]Device, 0, len(paths))
	for _, path := range paths {
		base := filepath.Base(path) // video0
		name := sysfsName(base)
		if name == "" {
			name = path
		}
		devices = append(devices, Device{
			ID:     path,
			Name:   name,
			Facing: guessFacing(name),
		})
	}
	return devices, nil
}

// sortVideoNodes orders device paths by their numeric suffix (video2 before
// video10, which lexicographic order gets wrong) and drops paths without one.
func sortVideoNodes(paths []string) []string {
	type node struct {
		path string
		num  int
	}
	nodes := make([]node, 0, len(paths))
	for _, path := range paths {
		raw := strings.TrimPrefix(filepath.Base(path), "video")
		num, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		nodes = append(nodes, node{path: path, num: num})
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].num < nodes[j].num })

	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.path)
	}
	return out
}

func sysfsName(base string) string {
	raw, err := os.ReadFile(filepath.Join("/sys/class/video4linux", base, "name"))
	if err != nil {
		return ""
	}
	line := string(raw)
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	return strings.TrimSpace(line)
}
