package capture

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"strings"
	"testing"
)

func encodedImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestThumbnailResizesPreservingAspect(t *testing.T) {
	data := encodedImage(t, 400, 200)

	thumb, err := Thumbnail(data, 100)
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	b := thumb.Bounds()
	if b.Dx() != 100 {
		t.Errorf("width = %d, want 100", b.Dx())
	}
	if b.Dy() != 50 {
		t.Errorf("height = %d, want 50 (aspect preserved)", b.Dy())
	}
}

func TestThumbnailRejectsBadInput(t *testing.T) {
	if _, err := Thumbnail(nil, 100); err == nil {
		t.Error("expected error for empty buffer")
	}
	if _, err := Thumbnail([]byte("not an image"), 100); err == nil {
		t.Error("expected error for undecodable bytes")
	}
	if _, err := Thumbnail(encodedImage(t, 10, 10), 0); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestSaveWritesFile(t *testing.T) {
	data := encodedImage(t, 10, 10)
	dir := t.TempDir()

	path, err := Save(data, dir)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasSuffix(path, ".jpg") {
		t.Errorf("path = %q, want .jpg suffix", path)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("saved bytes differ from capture")
	}
}

func TestSaveRejectsEmptyBuffer(t *testing.T) {
	if _, err := Save(nil, t.TempDir()); err == nil {
		t.Error("expected error for empty buffer")
	}
}
