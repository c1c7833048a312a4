package ocr

import (
	"bytes"

	"github.com/disintegration/imaging"
)

const maxWidth = 1600

// Prepare converts an uploaded photo into a grayscale, contrast-boosted JPEG no wider than maxWidth.
func Prepare(image []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(image), imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}

	img = imaging.Grayscale(img)
	img = imaging.AdjustContrast(img, 20)
	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	out := &bytes.Buffer{}
	if err := imaging.Encode(out, img, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
