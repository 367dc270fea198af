// Package classify turns free-text journal entries into an advisory
// mode suggestion. The heuristic path is fully offline; an optional
// remote analyzer can supersede it with the same result contract.
package classify

import (
	"context"

	"github.com/wave-app/wave/internal/mode"
)

// Result is the advisory output of a classification. A nil
// SuggestedMode means the text was balanced and no switch is
// suggested. Results are produced fresh per call and never persisted.
type Result struct {
	SuggestedMode *mode.Mode `json:"suggested_mode,omitempty"`
	Confidence    float64    `json:"confidence"`
	Rationale     string     `json:"rationale"`
}

// Classifier is the shared contract for the local heuristic and the
// remote analyzer. Callers cannot tell which path answered except via
// the rationale string.
type Classifier interface {
	Analyze(ctx context.Context, text string) (Result, error)
}
