package render

import (
	"maps"
	"strings"
)

// Default colors.
const (
	DefaultFallbackColor = "#F0F0F0"
	DefaultFlaggedColor  = "#ff0000"
	DefaultFlaggedWidth  = 3
)

// DefaultPalette maps lower-cased issue type names to fill colors.
var DefaultPalette = map[string]string{
	"epic":       "#E7D1FF",
	"berättelse": "#C4FFDE",
	"story":      "#C4FFDE",
}

// DefaultLinkColors maps relationship names to connector colors.
// Relationships not listed keep the viewer's default stroke.
var DefaultLinkColors = map[string]string{
	"Blocks":     "#FF0000",
	"Depends on": "#0000FF",
}

// Style is the presentational configuration of every emitter.
type Style struct {
	Palette       map[string]string `toml:"palette"`
	FallbackColor string            `toml:"fallback_color"`
	LinkColors    map[string]string `toml:"link_colors"`
	FlaggedColor  string            `toml:"flagged_color"`
	FlaggedWidth  int               `toml:"flagged_width"`
}

// DefaultStyle returns the built-in palette and link colors.
func DefaultStyle() Style {
	return Style{
		Palette:       maps.Clone(DefaultPalette),
		FallbackColor: DefaultFallbackColor,
		LinkColors:    maps.Clone(DefaultLinkColors),
		FlaggedColor:  DefaultFlaggedColor,
		FlaggedWidth:  DefaultFlaggedWidth,
	}
}

// WithDefaults fills unset fields from [DefaultStyle]. Empty colors, nil
// tables and a non-positive flagged width count as unset.
func (s Style) WithDefaults() Style {
	d := DefaultStyle()
	if s.Palette == nil {
		s.Palette = d.Palette
	}
	if s.FallbackColor == "" {
		s.FallbackColor = d.FallbackColor
	}
	if s.LinkColors == nil {
		s.LinkColors = d.LinkColors
	}
	if s.FlaggedColor == "" {
		s.FlaggedColor = d.FlaggedColor
	}
	if s.FlaggedWidth <= 0 {
		s.FlaggedWidth = d.FlaggedWidth
	}
	return s
}

// FillColor returns the fill for an issue type, matched case-insensitively
// after trimming.
func (s Style) FillColor(issueType string) string {
	t := strings.ToLower(strings.TrimSpace(issueType))
	if c, ok := s.Palette[t]; ok {
		return c
	}
	for k, c := range s.Palette {
		if strings.EqualFold(k, t) {
			return c
		}
	}
	return s.FallbackColor
}

// LinkColor returns the stroke color for a relationship type. Matching is
// exact, like the tracker's own link type names.
func (s Style) LinkColor(linkType string) (string, bool) {
	c, ok := s.LinkColors[linkType]
	return c, ok
}
