// Package audio defines the soundscape boundary. Wave never decodes or
// plays audio itself; implementations hand the request to whatever
// player the platform provides.
package audio

import (
	"github.com/wave-app/wave/internal/mode"
	"github.com/wave-app/wave/internal/utils"
)

// Player switches the ambient soundscape between personas. All calls
// are fire-and-forget from the caller's point of view: errors are
// logged at the boundary and never block a mode change.
type Player interface {
	// PlayForMode starts (or switches to) the soundscape for m.
	PlayForMode(m mode.Mode) error

	// Pause suspends playback, keeping the current soundscape.
	Pause() error

	// Resume continues a paused soundscape.
	Resume() error

	// Stop ends playback entirely.
	Stop() error
}

// Noop is a Player that only records intent in the debug log. It is
// the default when no system player is wired up.
type Noop struct{}

func (Noop) PlayForMode(m mode.Mode) error {
	utils.Debug("audio: play soundscape for %s", m)
	return nil
}

func (Noop) Pause() error {
	utils.Debug("audio: pause")
	return nil
}

func (Noop) Resume() error {
	utils.Debug("audio: resume")
	return nil
}

func (Noop) Stop() error {
	utils.Debug("audio: stop")
	return nil
}
