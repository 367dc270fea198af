// Package mode defines the two application personas and the user
// preference record that tracks which one is active.
package mode

import (
	"fmt"
	"strings"
	"time"
)

// Mode is one of the two mutually exclusive application personas.
type Mode string

const (
	Reflective Mode = "reflective"
	Energetic  Mode = "energetic"
)

// Parse converts a string into a Mode. Anything other than the two
// known personas is rejected.
func Parse(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Reflective:
		return Reflective, nil
	case Energetic:
		return Energetic, nil
	}
	return "", fmt.Errorf("invalid mode %q", s)
}

func (m Mode) String() string {
	return string(m)
}

// Opposite returns the other persona.
func (m Mode) Opposite() Mode {
	if m == Reflective {
		return Energetic
	}
	return Reflective
}

// Preference is the persisted user preference record. It is owned by
// the theme controller and mutated only through its setters.
type Preference struct {
	Mode         Mode      `json:"mode"`
	AudioEnabled bool      `json:"audio_enabled"`
	LastUpdated  time.Time `json:"last_updated,omitzero"`
}

// DefaultPreference is the state of a fresh install: reflective, audio on.
func DefaultPreference() Preference {
	return Preference{
		Mode:         Reflective,
		AudioEnabled: true,
	}
}
