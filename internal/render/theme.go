package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ---------------------------------------------------------------------------
// Controller palette, true-color hex values
// ---------------------------------------------------------------------------

const (
	ColorWhite     lipgloss.Color = "#ffffff"
	ColorBlack     lipgloss.Color = "#000000"
	ColorRed       lipgloss.Color = "#ff0000"
	ColorGrey      lipgloss.Color = "#c8c8c8"
	ColorDarkGrey  lipgloss.Color = "#3c3c3c"
	ColorTrack     lipgloss.Color = "#f5f5f5"
	ColorLightGrey lipgloss.Color = "#e6e6e6"
)

// ---------------------------------------------------------------------------
// Semantic aliases
// ---------------------------------------------------------------------------

const (
	colorBackground = ColorRed
	colorKnobFace   = ColorBlack
	colorKnobThumb  = ColorRed
	colorSliderBar  = ColorDarkGrey
)

var namedColors = map[string]lipgloss.Color{
	"white":      ColorWhite,
	"black":      ColorBlack,
	"red":        ColorRed,
	"grey":       ColorGrey,
	"gray":       ColorGrey,
	"dark_grey":  ColorDarkGrey,
	"track":      ColorTrack,
	"light_grey": ColorLightGrey,
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ParseColor accepts a palette name or a #rrggbb value. The empty string is
// the empty colour, which painters skip.
func ParseColor(s string) (lipgloss.Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return "", nil
	}
	if c, ok := namedColors[v]; ok {
		return c, nil
	}
	if hexColor.MatchString(v) {
		return lipgloss.Color(v), nil
	}
	return "", fmt.Errorf("unknown color %q", s)
}

// DefaultBackground is the clear colour of the window.
func DefaultBackground() lipgloss.Color {
	return colorBackground
}

// AllPaletteColors returns every named colour, for validation.
func AllPaletteColors() []lipgloss.Color {
	return []lipgloss.Color{
		ColorWhite, ColorBlack, ColorRed, ColorGrey,
		ColorDarkGrey, ColorTrack, ColorLightGrey,
	}
}
