package facescan

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

const jpegQuality = 85

// ResizeImage scales an image down so its longer edge fits within maxSize,
// preserving aspect ratio, and re-encodes it as JPEG. Images already within
// bounds are only re-encoded so every provider sees one format.
func ResizeImage(data []byte, maxSize int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if width > maxSize || height > maxSize {
		newWidth, newHeight := maxSize, maxSize
		if width > height {
			newHeight = int(float64(height) * float64(maxSize) / float64(width))
		} else {
			newWidth = int(float64(width) * float64(maxSize) / float64(height))
		}

		scaled := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)
		img = scaled
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
