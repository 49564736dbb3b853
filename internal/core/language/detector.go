package language

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// minDetectConfidence is the whatlanggo confidence below which a guess is
// treated as a failed detection.
const minDetectConfidence = 0.3

// Detector guesses the client language code of a text. The second return
// is false when no reliable guess could be made; callers decide the
// fallback.
type Detector interface {
	Detect(text string) (string, bool)
}

// DetectorFunc adapts a plain function to the Detector interface.
type DetectorFunc func(text string) (string, bool)

// Detect calls f.
func (f DetectorFunc) Detect(text string) (string, bool) {
	return f(text)
}

// TrigramDetector detects languages from character trigram profiles using
// whatlanggo. It is stateless and safe for concurrent use.
type TrigramDetector struct{}

// NewTrigramDetector creates a trigram-based detector.
func NewTrigramDetector() *TrigramDetector {
	return &TrigramDetector{}
}

// Detect returns the ISO 639-1 code of the detected language. Detection
// fails on empty input, on low-confidence guesses and on languages that
// have no two-letter code.
func (d *TrigramDetector) Detect(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}

	info := whatlanggo.Detect(text)
	code := info.Lang.Iso6391()
	if info.Confidence < minDetectConfidence || !info.IsReliable() || code == "" {
		return "", false
	}
	return code, true
}
