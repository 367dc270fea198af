package theme

import (
	"sync"
	"time"

	"github.com/wave-app/wave/internal/audio"
	"github.com/wave-app/wave/internal/mode"
	"github.com/wave-app/wave/internal/utils"
)

// TransitionDuration is how long the animated switch between the two
// themes takes.
const TransitionDuration = 500 * time.Millisecond

// PreferenceStore persists the user preference record. Implementations
// are best-effort: the controller logs failures and keeps its in-memory
// state authoritative for the running process.
type PreferenceStore interface {
	LoadPreference() (mode.Preference, error)
	SavePreference(mode.Preference) error
}

// Controller is the single owner of the active mode, the user
// preference record, and the animated transition scalar between the
// two themes. Progress 0 means fully reflective, 1 fully energetic.
//
// The transition is cooperative: the controller never runs its own
// timer. Progress is a function of the injected clock, so rendering
// layers poll Progress on their animation ticks and tests drive it at
// fixed time steps.
type Controller struct {
	mu     sync.Mutex
	pref   mode.Preference
	store  PreferenceStore
	player audio.Player
	now    func() time.Time

	// Transition state: progress moves from `from` toward `target`
	// starting at `started`. from == target means at rest.
	from    float64
	target  float64
	started time.Time

	subs []func(mode.Mode)
}

// NewController builds a controller from its collaborators. A nil
// store disables persistence; a nil player disables audio signaling.
// A load failure falls back to the default preference (reflective,
// audio on).
func NewController(store PreferenceStore, player audio.Player) *Controller {
	c := &Controller{
		store:  store,
		player: player,
		now:    time.Now,
		pref:   mode.DefaultPreference(),
	}

	if store != nil {
		if p, err := store.LoadPreference(); err != nil {
			utils.Debug("preference load failed, using defaults: %v", err)
		} else if m, err := mode.Parse(string(p.Mode)); err != nil {
			utils.Debug("persisted preference unusable, using defaults: %v", err)
		} else {
			p.Mode = m
			c.pref = p
		}
	}

	c.from = endpoint(c.pref.Mode)
	c.target = c.from
	return c
}

// endpoint maps a persona to its transition endpoint.
func endpoint(m mode.Mode) float64 {
	if m == mode.Energetic {
		return 1
	}
	return 0
}

// Current returns the active persona. No side effects.
func (c *Controller) Current() mode.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pref.Mode
}

// CurrentTheme returns the fixed theme of the active persona.
func (c *Controller) CurrentTheme() Theme {
	return ForMode(c.Current())
}

// Preference returns a copy of the preference record.
func (c *Controller) Preference() mode.Preference {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pref
}

// AudioEnabled reports whether the soundscape is switched on.
func (c *Controller) AudioEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pref.AudioEnabled
}

// Toggle flips the persona. The logical mode flips immediately so
// dependent UI can re-render mode-specific content at once; the visual
// progress animates toward the new endpoint underneath. A toggle
// issued while a transition is in flight retargets it from the
// transition's current partial progress, never snapping back to an
// endpoint.
//
// Persisting the preference and signaling the audio player are
// fire-and-forget: their failures are logged, never returned. Returns
// the theme of the new persona.
func (c *Controller) Toggle() Theme {
	c.mu.Lock()
	now := c.now()
	cur := c.progressAt(now)
	next := c.pref.Mode.Opposite()

	c.from = cur
	c.target = endpoint(next)
	c.started = now
	c.pref.Mode = next
	c.pref.LastUpdated = now

	pref := c.pref
	audioOn := pref.AudioEnabled
	subs := append([]func(mode.Mode){}, c.subs...)
	c.mu.Unlock()

	c.persist(pref)

	if audioOn && c.player != nil {
		if err := c.player.PlayForMode(next); err != nil {
			utils.Debug("audio switch to %s failed: %v", next, err)
		}
	}

	for _, fn := range subs {
		fn(next)
	}

	return ForMode(next)
}

// SetAudioEnabled updates the preference and starts or stops the
// soundscape for the current persona.
func (c *Controller) SetAudioEnabled(enabled bool) {
	c.mu.Lock()
	c.pref.AudioEnabled = enabled
	c.pref.LastUpdated = c.now()
	pref := c.pref
	c.mu.Unlock()

	c.persist(pref)

	if c.player == nil {
		return
	}
	var err error
	if enabled {
		err = c.player.PlayForMode(pref.Mode)
	} else {
		err = c.player.Stop()
	}
	if err != nil {
		utils.Debug("audio enable=%v failed: %v", enabled, err)
	}
}

// Progress returns the instantaneous transition progress in [0,1].
// Safe to poll at arbitrary frequency; no side effects.
func (c *Controller) Progress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progressAt(c.now())
}

// Transitioning reports whether a toggle is animating right now.
func (c *Controller) Transitioning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.from != c.target && c.now().Sub(c.started) < TransitionDuration
}

// BlendedTheme returns the two fixed themes interpolated at the
// current transition progress. At rest it equals the current theme.
func (c *Controller) BlendedTheme() Theme {
	return Blend(ForMode(mode.Reflective), ForMode(mode.Energetic), c.Progress())
}

// Subscribe registers a callback invoked after every mode flip. The
// callback runs on the toggling goroutine; keep it short.
func (c *Controller) Subscribe(fn func(mode.Mode)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// progressAt computes the eased progress at the given instant.
// Callers hold c.mu.
func (c *Controller) progressAt(now time.Time) float64 {
	if c.from == c.target {
		return c.target
	}
	t := float64(now.Sub(c.started)) / float64(TransitionDuration)
	return c.from + (c.target-c.from)*smoothstep(t)
}

func (c *Controller) persist(p mode.Preference) {
	if c.store == nil {
		return
	}
	if err := c.store.SavePreference(p); err != nil {
		utils.Debug("preference save failed: %v", err)
	}
}
