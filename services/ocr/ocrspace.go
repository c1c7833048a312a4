package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Options configures an OCR.space client.
type Options struct {
	Endpoint          string
	APIKey            string
	Language          string
	Timeout           time.Duration
	RequestsPerMinute int
	// Preprocess runs the image through grayscale, contrast and resize before upload.
	Preprocess bool
}

// SpaceClient calls the OCR.space parse/image endpoint.
type SpaceClient struct {
	opts       Options
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewSpaceClient(opts Options) *SpaceClient {
	if opts.Language == "" {
		opts.Language = "eng"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	limit := rate.Inf
	if opts.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(opts.RequestsPerMinute))
	}
	return &SpaceClient{
		opts: opts,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		limiter: rate.NewLimiter(limit, 1),
	}
}

type parseResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	IsErroredOnProcessing bool            `json:"IsErroredOnProcessing"`
	ErrorMessage          json.RawMessage `json:"ErrorMessage"`
}

// errorMessage reads ErrorMessage, which the service sends either as a string or a list of strings.
func (r *parseResponse) errorMessage() string {
	if len(r.ErrorMessage) == 0 {
		return ""
	}
	var list []string
	if err := json.Unmarshal(r.ErrorMessage, &list); err == nil {
		if len(list) > 0 {
			return list[0]
		}
		return ""
	}
	var s string
	if err := json.Unmarshal(r.ErrorMessage, &s); err == nil {
		return s
	}
	return ""
}

// RecognizeText uploads the image and returns the text of every parsed page joined by newlines.
func (c *SpaceClient) RecognizeText(ctx context.Context, image []byte, filename string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRecognition, err)
	}

	if c.opts.Preprocess {
		if prepared, err := Prepare(image); err == nil {
			image = prepared
			filename = jpegName(filename)
		}
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(image); err != nil {
		return "", err
	}
	fields := map[string]string{
		"language":          c.opts.Language,
		"apikey":            c.opts.APIKey,
		"isOverlayRequired": "false",
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return "", err
		}
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.Endpoint, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRecognition, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", ErrRecognition
	}

	var parsed parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrRecognition, err)
	}
	if parsed.IsErroredOnProcessing {
		msg := parsed.errorMessage()
		if msg == "" {
			msg = "OCR processing error"
		}
		return "", fmt.Errorf("%w: %s", ErrRecognition, msg)
	}

	texts := make([]string, 0, len(parsed.ParsedResults))
	for _, r := range parsed.ParsedResults {
		texts = append(texts, r.ParsedText)
	}
	return strings.Join(texts, "\n"), nil
}

func jpegName(filename string) string {
	if i := strings.LastIndex(filename, "."); i > 0 {
		filename = filename[:i]
	}
	if filename == "" {
		filename = "image"
	}
	return filename + ".jpg"
}
