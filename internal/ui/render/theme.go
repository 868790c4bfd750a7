package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ColorTheme defines application colors.
type ColorTheme struct {
	Background    tcell.Color
	Foreground    tcell.Color
	PromptFg      tcell.Color
	QueryFg       tcell.Color
	SelectionBg   tcell.Color
	SelectionFg   tcell.Color
	MatchFg       tcell.Color
	DescriptionFg tcell.Color
	FooterBg      tcell.Color
	FooterFg      tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:    tcell.ColorDefault,
		Foreground:    tcell.ColorDefault,
		PromptFg:      tcell.Color33,
		QueryFg:       tcell.ColorDefault,
		SelectionBg:   tcell.Color33,
		SelectionFg:   tcell.ColorWhite,
		MatchFg:       tcell.Color214, // amber, readable on both default and selection bg
		DescriptionFg: tcell.ColorLightSlateGray,
		FooterBg:      tcell.ColorDefault,
		FooterFg:      tcell.ColorLightSlateGray,
	}
}

// ApplyOverrides sets theme colors from name -> color pairs, e.g.
// "selection_bg" -> "#005fff". Names are the snake_case field names.
// Colors use tcell.GetColor syntax: names, #rrggbb, or "default".
func (t ColorTheme) ApplyOverrides(overrides map[string]string) (ColorTheme, error) {
	fields := map[string]*tcell.Color{
		"background":     &t.Background,
		"foreground":     &t.Foreground,
		"prompt_fg":      &t.PromptFg,
		"query_fg":       &t.QueryFg,
		"selection_bg":   &t.SelectionBg,
		"selection_fg":   &t.SelectionFg,
		"match_fg":       &t.MatchFg,
		"description_fg": &t.DescriptionFg,
		"footer_bg":      &t.FooterBg,
		"footer_fg":      &t.FooterFg,
	}

	for name, value := range overrides {
		field, ok := fields[strings.ToLower(name)]
		if !ok {
			return t, fmt.Errorf("theme: unknown color %q", name)
		}
		color, err := parseColor(value)
		if err != nil {
			return t, fmt.Errorf("theme %s: %w", name, err)
		}
		*field = color
	}
	return t, nil
}

func parseColor(value string) (tcell.Color, error) {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, "default") {
		return tcell.ColorDefault, nil
	}
	c := tcell.GetColor(strings.ToLower(value))
	if c == tcell.ColorDefault {
		return c, fmt.Errorf("invalid color %q", value)
	}
	return c, nil
}
