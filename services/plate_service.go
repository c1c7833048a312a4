package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	errs "github.com/techagentng/civiceye/errors"
	"github.com/techagentng/civiceye/logger"
	"github.com/techagentng/civiceye/services/ocr"
	"github.com/techagentng/civiceye/services/plate"
	"github.com/techagentng/civiceye/services/storage"
	"go.uber.org/zap"
)

type PlateService interface {
	DetectPlate(ctx context.Context, image []byte, filename string) (*plate.Result, error)
}

type plateService struct {
	recognizer ocr.TextRecognizer
}

func NewPlateService(recognizer ocr.TextRecognizer) PlateService {
	return &plateService{recognizer: recognizer}
}

// DetectPlate sends the image to the recognizer and extracts a vehicle number from the text.
// Recognizer failures map to 502; unusable text maps to 422 so the user can type the plate.
func (p *plateService) DetectPlate(ctx context.Context, image []byte, filename string) (*plate.Result, error) {
	if len(image) == 0 {
		return nil, errs.New("please upload a number plate image", http.StatusBadRequest)
	}
	if _, _, err := storage.Validate(image); err != nil {
		return nil, err
	}

	text, err := p.recognizer.RecognizeText(ctx, image, filename)
	if err != nil {
		logger.Log.Warn("plate recognition failed", zap.Error(err))
		msg := strings.TrimPrefix(err.Error(), ocr.ErrRecognition.Error()+": ")
		if !errors.Is(err, ocr.ErrRecognition) || msg == "" {
			msg = "Failed to detect plate number. Please try again."
		}
		return nil, errs.New(msg, http.StatusBadGateway)
	}

	result, err := plate.Extract(text)
	if err != nil {
		return nil, errs.New(err.Error(), http.StatusUnprocessableEntity)
	}
	return result, nil
}
