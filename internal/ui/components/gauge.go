package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"focusdrive/internal/ui/theme"
)

// Gauge renders a horizontal bar of width cells filled to fraction.
func Gauge(width int, fraction float64, color lipgloss.Color) string {
	if width < 1 {
		return ""
	}
	fraction = max(0, min(1, fraction))
	filled := int(fraction*float64(width) + 0.5)
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	return bar + lipgloss.NewStyle().Foreground(theme.Surface1).Render(strings.Repeat("░", width-filled))
}

// Stars renders a five-star rating.
func Stars(rating int) string {
	rating = max(0, min(5, rating))
	return theme.Warn.Render(strings.Repeat("★", rating)) + theme.Muted.Render(strings.Repeat("☆", 5-rating))
}
