package imgutil

import (
	"bytes"
	"image"
	"image/draw"
	"image/jpeg"
	"os"

	_ "image/gif"
	_ "image/png"
)

// JPEG re-encode quality for generated pages. Keeps files in the
// 500KB-1MB range so the client loads them quickly.
const jpegQuality = 85

// NormalizeToJPEG decodes an image payload, composites any transparency
// over a white background, and re-encodes it as a 3-channel JPEG.
func NormalizeToJPEG(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	rgb := image.NewRGBA(bounds)
	draw.Draw(rgb, bounds, image.White, image.Point{}, draw.Src)
	draw.Draw(rgb, bounds, src, bounds.Min, draw.Over)

	var out bytes.Buffer
	if err := jpeg.Encode(&out, rgb, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// SaveAsJPEG normalizes and writes the payload to path.
func SaveAsJPEG(data []byte, path string) error {
	normalized, err := NormalizeToJPEG(data)
	if err != nil {
		return err
	}
	return os.WriteFile(path, normalized, 0644)
}
