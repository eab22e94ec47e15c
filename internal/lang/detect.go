package lang

import (
	"strings"

	lingua "github.com/pemistahl/lingua-go"
)

// Detector guesses the language of a text
// building one is expensive, so callers create it only when detection is requested
type Detector struct {
	detector lingua.LanguageDetector
}

// NewDetector creates a detector over every language lingua knows
func NewDetector() *Detector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		Build()

	return &Detector{detector: detector}
}

// Detect returns the ISO 639-1 code of the text's language
func (d *Detector) Detect(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}

	detected, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(detected.IsoCode639_1().String()), true
}
