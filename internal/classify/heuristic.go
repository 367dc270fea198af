package classify

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/wave-app/wave/internal/mode"
)

// The canonical keyword sets. Matching is whole-word so that e.g.
// "grown" does not count as "grow".
var (
	reflectiveKeywords = []string{"calm", "reflect", "grow", "mind", "relax", "peace"}
	energeticKeywords  = []string{"energy", "productive", "focus", "achieve", "goal", "work"}
)

// Heuristic is the offline keyword classifier. It is pure and
// deterministic: no network, no randomness, no hidden state.
type Heuristic struct{}

// Analyze scores text against the two keyword sets. Any string is
// valid input; empty or whitespace-only text yields the balanced
// result. The returned error is always nil and exists only to satisfy
// the Classifier contract.
func (Heuristic) Analyze(_ context.Context, text string) (Result, error) {
	words := tokenize(text)

	r := countHits(words, reflectiveKeywords)
	e := countHits(words, energeticKeywords)

	if r == e {
		return Result{
			Confidence: 0.5,
			Rationale:  "Your writing feels balanced between reflection and drive.",
		}, nil
	}

	suggested := mode.Reflective
	rationale := "Your writing leans toward calm and reflection."
	diff := r - e
	if e > r {
		suggested = mode.Energetic
		rationale = "Your writing leans toward energy and getting things done."
		diff = e - r
	}

	confidence := 0.5 + 0.1*float64(diff)
	if confidence > 1.0 {
		confidence = 1.0
	}

	return Result{
		SuggestedMode: &suggested,
		Confidence:    confidence,
		Rationale:     rationale,
	}, nil
}

// tokenize lower-cases the text and splits it into words on anything
// that is not a letter or digit.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func countHits(words []string, keywords []string) int {
	set := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		set[k] = true
	}
	n := 0
	for _, w := range words {
		if set[w] {
			n++
		}
	}
	return n
}

// DescribeSuggestion renders a result as a short human-readable line.
func DescribeSuggestion(res Result) string {
	if res.SuggestedMode == nil {
		return fmt.Sprintf("no mode suggestion (confidence %.2f): %s", res.Confidence, res.Rationale)
	}
	return fmt.Sprintf("suggested mode: %s (confidence %.2f): %s", *res.SuggestedMode, res.Confidence, res.Rationale)
}
