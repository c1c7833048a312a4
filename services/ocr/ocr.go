// Package ocr talks to the external text recognition service used for plate detection.
package ocr

import (
	"context"
	"errors"
)

// ErrRecognition marks failures of the recognition call itself, as opposed to unreadable text.
var ErrRecognition = errors.New("OCR request failed")

// TextRecognizer extracts the text visible in an image.
type TextRecognizer interface {
	RecognizeText(ctx context.Context, image []byte, filename string) (string, error)
}

// RecognizerFunc adapts a plain function to TextRecognizer.
type RecognizerFunc func(ctx context.Context, image []byte, filename string) (string, error)

func (f RecognizerFunc) RecognizeText(ctx context.Context, image []byte, filename string) (string, error) {
	return f(ctx, image, filename)
}
