// Package langdetect guards the pending-sentence pool: submitted sentences
// are supposed to be English, and contributors occasionally paste the
// translation instead of the source text.
package langdetect

import (
	"strings"
	"sync"
	"unicode"

	lingua "github.com/pemistahl/lingua-go"
)

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// IsLikelyEnglish reports whether the text reads as English. Texts too short
// to classify, and texts the detector cannot place confidently, pass — the
// guard only rejects confident non-English detections.
func IsLikelyEnglish(text string) bool {
	sample := strings.TrimSpace(text)
	if sample == "" {
		return true
	}

	letterCount := 0
	for _, r := range sample {
		if unicode.IsLetter(r) {
			letterCount++
		}
	}
	if letterCount < 6 {
		return true
	}

	language, exists := getDetector().DetectLanguageOf(sample)
	if !exists {
		return true
	}
	return language == lingua.English
}

func getDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		// English against the languages contributors actually submit, plus
		// common European confusables. A minimum relative distance keeps
		// borderline samples from being rejected.
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(
				lingua.English,
				lingua.Swahili,
				lingua.Somali,
				lingua.Yoruba,
				lingua.Zulu,
				lingua.Xhosa,
				lingua.Shona,
				lingua.Afrikaans,
				lingua.French,
				lingua.Spanish,
				lingua.Portuguese,
				lingua.German,
			).
			WithMinimumRelativeDistance(0.2).
			Build()
	})
	return detector
}
