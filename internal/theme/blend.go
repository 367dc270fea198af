package theme

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Blend interpolates between two themes at t in [0,1]. t=0 yields a,
// t=1 yields b. Rendering layers call this on every animation frame
// with the controller's current transition progress.
func Blend(a, b Theme, t float64) Theme {
	return Theme{
		Primary:    BlendColor(a.Primary, b.Primary, t),
		Background: BlendColor(a.Background, b.Background, t),
		Text:       BlendColor(a.Text, b.Text, t),
		Accent:     BlendColor(a.Accent, b.Accent, t),
		Card:       BlendColor(a.Card, b.Card, t),
		Border:     BlendColor(a.Border, b.Border, t),
	}
}

// BlendColor interpolates two hex colors channel-wise in RGB space.
// Unparseable colors fall back to the start color.
func BlendColor(start, end lipgloss.Color, t float64) lipgloss.Color {
	if t <= 0 {
		return start
	}
	if t >= 1 {
		return end
	}

	s, err := hexToRGB(string(start))
	if err != nil {
		return start
	}
	e, err := hexToRGB(string(end))
	if err != nil {
		return start
	}

	r := uint8(lerp(float64(s.r), float64(e.r), t) + 0.5)
	g := uint8(lerp(float64(s.g), float64(e.g), t) + 0.5)
	b := uint8(lerp(float64(s.b), float64(e.b), t) + 0.5)

	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}

// smoothstep is the easing applied to transition progress: monotonic on
// [0,1] with zero slope at both endpoints, and fully deterministic.
func smoothstep(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

type rgb struct {
	r, g, b uint8
}

func hexToRGB(hex string) (rgb, error) {
	hex = strings.TrimPrefix(hex, "#")

	// Handle short hex (e.g., "fff")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}

	if len(hex) != 6 {
		return rgb{}, fmt.Errorf("invalid hex color: %s", hex)
	}

	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return rgb{}, err
	}

	return rgb{
		r: uint8(val >> 16),
		g: uint8((val >> 8) & 0xFF),
		b: uint8(val & 0xFF),
	}, nil
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
