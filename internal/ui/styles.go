package ui

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): primary text
// - Accent (soft purple #A78BFA): highlights, values, interactive elements
// - Muted (gray): secondary info, hints
// - No colored success/error/warning - unicode symbols only

const defaultAccentColor = "#A78BFA"

var (
	// Accent style for timestamps, config values, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccentColor))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccentColor)).Bold(true)
)

// accentColor is the active accent, empty when accent coloring is off.
var accentColor = defaultAccentColor

var hexColorPattern = regexp.MustCompile(`^#([0-9a-f]{3}|[0-9a-f]{6})$`)

// ConfigureTheme applies a user-configured accent color to the shared
// styles. "none", "off", "default" and anything unparseable turn
// accent coloring off.
func ConfigureTheme(accent string) {
	normalized, ok := normalizeAccentColor(accent)
	if !ok {
		accentColor = ""
		Accent = lipgloss.NewStyle()
		AccentBold = lipgloss.NewStyle().Bold(true)
		return
	}
	accentColor = normalized
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(normalized))
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(normalized)).Bold(true)
}

// AccentColor returns the active accent color, or false when accent
// coloring is disabled.
func AccentColor() (string, bool) {
	if accentColor == "" {
		return "", false
	}
	return accentColor, true
}

// normalizeAccentColor validates a configured accent color, accepting
// ANSI codes 0-255 and hex colors (#rgb expands to #rrggbb).
func normalizeAccentColor(value string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "", "none", "off", "default":
		return "", false
	}

	if isDigits(v) {
		n, err := strconv.Atoi(v)
		if err != nil || n > 255 {
			return "", false
		}
		return v, true
	}

	if m := hexColorPattern.FindStringSubmatch(v); m != nil {
		hex := m[1]
		if len(hex) == 3 {
			var b strings.Builder
			for _, c := range hex {
				b.WriteRune(c)
				b.WriteRune(c)
			}
			hex = b.String()
		}
		return "#" + hex, true
	}

	return "", false
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
