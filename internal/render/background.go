package render

import (
	"fmt"
	"image"
	"os"

	"golang.org/x/image/draw"

	// background images may arrive in any of these containers
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
)

// DecodeImage reads a background seed image from disk.
func DecodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("background %s: %w", path, err)
	}
	return img, nil
}

// FitBackground checks a seed image against the canvas size. A mismatch is
// a configuration error unless scale is set, in which case the image is
// resampled to fit.
func FitBackground(img image.Image, width, height int, scale bool) (image.Image, error) {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return img, nil
	}
	if !scale {
		return nil, fmt.Errorf("render: background is %dx%d, canvas is %dx%d",
			b.Dx(), b.Dy(), width, height)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst, nil
}
