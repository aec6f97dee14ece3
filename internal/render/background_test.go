package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFitBackground(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))

	same, err := FitBackground(img, 4, 4, false)
	if err != nil {
		t.Fatal(err)
	}
	if same != img {
		t.Error("matching size should pass the image through")
	}

	if _, err := FitBackground(img, 8, 8, false); err == nil {
		t.Error("size mismatch without scale should fail")
	}

	scaled, err := FitBackground(img, 8, 8, true)
	if err != nil {
		t.Fatal(err)
	}
	b := scaled.Bounds()
	if b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("scaled to %v", b)
	}
}

func TestDecodeImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.png")
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{1, 2, 3, 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	got, err := DecodeImage(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Bounds().Dx() != 2 {
		t.Errorf("bounds = %v", got.Bounds())
	}

	if _, err := DecodeImage(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("missing file should fail")
	}
}
