// Package storage validates uploaded evidence images and persists them to disk or S3.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/nfnt/resize"
	errs "github.com/techagentng/civiceye/errors"
	"github.com/techagentng/civiceye/logger"
	"go.uber.org/zap"
)

const (
	MaxFileSize    = 5 * 1024 * 1024 // 5 MB
	ThumbnailWidth = 200
)

var allowedMimeTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

var (
	ErrFileTooLarge    = errs.New(fmt.Sprintf("file size exceeds limit of %d bytes", MaxFileSize), http.StatusBadRequest)
	ErrInvalidFileType = errs.New("only JPEG, PNG and GIF images are accepted", http.StatusBadRequest)
)

type Store interface {
	// Put saves data under key and returns the public URL of the object.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Validate sniffs the upload's real type and returns its MIME type and file extension.
func Validate(data []byte) (string, string, error) {
	if len(data) > MaxFileSize {
		return "", "", ErrFileTooLarge
	}
	mtype := mimetype.Detect(data)
	for allowed, ext := range allowedMimeTypes {
		if mtype.Is(allowed) {
			return allowed, ext, nil
		}
	}
	return "", "", ErrInvalidFileType
}

// Thumbnail scales the image to ThumbnailWidth pixels wide and encodes it as JPEG.
func Thumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	thumb := resize.Resize(ThumbnailWidth, 0, img, resize.Lanczos3)

	out := &bytes.Buffer{}
	if err := jpeg.Encode(out, thumb, &jpeg.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return out.Bytes(), nil
}

// Evidence holds the URLs of a stored evidence image and its thumbnail.
type Evidence struct {
	ImageURL     string
	ThumbnailURL string
}

// SaveEvidence validates and stores an image under prefix/name along with a thumbnail.
// A thumbnail that cannot be produced or stored is skipped; the image itself is still stored.
func SaveEvidence(ctx context.Context, store Store, prefix, name string, data []byte) (*Evidence, error) {
	contentType, ext, err := Validate(data)
	if err != nil {
		return nil, err
	}

	imageURL, err := store.Put(ctx, prefix+"/"+name+ext, data, contentType)
	if err != nil {
		return nil, err
	}
	ev := &Evidence{ImageURL: imageURL}

	thumb, err := Thumbnail(data)
	if err != nil {
		return ev, nil
	}
	thumbURL, err := store.Put(ctx, prefix+"/thumbnails/"+name+".jpg", thumb, "image/jpeg")
	if err != nil {
		logger.Log.Warn("failed to store thumbnail", zap.String("key", prefix+"/"+name), zap.Error(err))
		return ev, nil
	}
	ev.ThumbnailURL = thumbURL
	return ev, nil
}
