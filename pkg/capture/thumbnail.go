// Package capture holds helpers for the raw still-image bytes produced by a
// camera controller: thumbnail preparation for inline display and one-shot
// saving to disk.
package capture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Thumbnail decodes encoded still bytes and resizes them to the given width,
// preserving aspect ratio.
func Thumbnail(data []byte, width int) (image.Image, error) {
	if len(data) == 0 {
		return nil, errors.New("empty capture buffer")
	}
	if width <= 0 {
		return nil, errors.Errorf("invalid thumbnail width %d", width)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "decode capture")
	}
	return imaging.Resize(img, width, 0, imaging.Lanczos), nil
}

// Save writes the encoded still bytes to a timestamped JPEG file in dir and
// returns the path. It never overwrites: the name carries nanosecond
// precision.
func Save(data []byte, dir string) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty capture buffer")
	}
	name := fmt.Sprintf("capture-%s.jpg", time.Now().Format("20060102-150405.000000000"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrap(err, "write capture")
	}
	return path, nil
}
