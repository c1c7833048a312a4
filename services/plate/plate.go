// Package plate turns raw OCR text into a best-guess vehicle registration number.
package plate

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrNoText      = errors.New("AI could not read any text. Try a closer, clearer number plate image or type manually.")
	ErrNoCandidate = errors.New("Text was detected, but no number-like pattern was found. Please type it manually.")
	ErrTooShort    = errors.New("AI detected text, but it is too short to be a valid vehicle number. Please upload a clearer, closer image.")
)

// LowConfidenceHint is shown when a candidate was found but does not look like a full plate.
const LowConfidenceHint = "Low visibility or angled plate detected. For best AI results, upload a clear, front-facing, well-lit number plate image."

var (
	nonAlnum    = regexp.MustCompile(`[^A-Z0-9]`)
	strictPlate = regexp.MustCompile(`[A-Z]{2}[0-9]{1,2}[A-Z]{1,2}[0-9]{3,4}`)
	relaxedRun  = regexp.MustCompile(`[A-Z0-9]{6,12}`)
	fullPlate   = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z]{1,2}[0-9]{4}$`)
)

// prefixFixes are applied in order; each sees the output of the previous one.
var prefixFixes = []struct{ from, to string }{
	{"11", "TN"},
	{"1N", "TN"},
	{"N1", "TN"},
	{"10", "TN"},
	{"I1", "TN"},
}

type Result struct {
	Plate         string `json:"plate"`
	LowConfidence bool   `json:"low_confidence"`
	Hint          string `json:"hint,omitempty"`
	Preview       string `json:"preview"`
}

// Extract picks the most plate-like token out of raw recognized text.
func Extract(raw string) (*Result, error) {
	upper := strings.ToUpper(raw)
	if strings.TrimSpace(upper) == "" {
		return nil, ErrNoText
	}

	cleaned := nonAlnum.ReplaceAllString(upper, "")
	candidate := strictPlate.FindString(cleaned)
	if candidate == "" {
		candidate = longest(relaxedRun.FindAllString(cleaned, -1))
	}
	if candidate == "" {
		candidate = firstLine(raw)
		if candidate == "" {
			return nil, ErrNoCandidate
		}
	}

	candidate = correctPrefix(nonAlnum.ReplaceAllString(strings.ToUpper(candidate), ""))
	if len(candidate) < 6 {
		return nil, ErrTooShort
	}

	res := &Result{
		Plate:   candidate,
		Preview: truncate(strings.TrimSpace(raw), previewLimit),
	}
	if !fullPlate.MatchString(candidate) {
		res.LowConfidence = true
		res.Hint = LowConfidenceHint
	}
	return res, nil
}

func longest(runs []string) string {
	best := ""
	for _, r := range runs {
		if len(r) > len(best) {
			best = r
		}
	}
	return best
}

func firstLine(raw string) string {
	for _, line := range strings.Split(raw, "\n") {
		if l := strings.TrimSpace(line); l != "" {
			return strings.ToUpper(l)
		}
	}
	return ""
}

func correctPrefix(s string) string {
	for _, f := range prefixFixes {
		if strings.HasPrefix(s, f.from) {
			s = f.to + strings.TrimPrefix(s, f.from)
		}
	}
	return s
}

// previewLimit caps the recognized text echoed back to the user, in characters.
const previewLimit = 120

// truncate shortens a preview to max runes, marking the cut with an ellipsis.
func truncate(preview string, max int) string {
	runes := []rune(preview)
	if len(runes) <= max {
		return preview
	}
	return string(runes[:max]) + "..."
}
