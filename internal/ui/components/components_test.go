package components_test

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"focusdrive/internal/ui/components"
	"focusdrive/internal/ui/theme"
)

func typeInto(p components.Palette, text string) components.Palette {
	for _, r := range text {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return p
}

func submit(t *testing.T, p components.Palette) (components.Palette, components.PaletteSubmitMsg) {
	t.Helper()
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a submit command")
	}
	msg, ok := cmd().(components.PaletteSubmitMsg)
	if !ok {
		t.Fatalf("unexpected message %T", cmd())
	}
	return p, msg
}

func TestPaletteCompletesAndSplitsArgs(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	p = typeInto(p, "route:p")
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	p = typeInto(p, "Big Sur highway")

	p, msg := submit(t, p)
	if p.Visible() {
		t.Fatal("palette should close on submit")
	}
	if msg.Verb != "route:plan" || strings.Join(msg.Args, "|") != "Big|Sur|highway" {
		t.Fatalf("unexpected submit: %+v", msg)
	}
}

func TestPaletteRecallsHistory(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	for _, line := range []string{"drive:pause", "drive:resume"} {
		p.Open()
		p = typeInto(p, line)
		p, _ = submit(t, p)
	}

	p.Open()
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	_, msg := submit(t, p)
	if msg.Verb != "drive:pause" {
		t.Fatalf("expected oldest entry, got %+v", msg)
	}
}

func TestPaletteEscCancels(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.Visible() || cmd == nil {
		t.Fatal("expected the palette to close with a cancel command")
	}
	if _, ok := cmd().(components.PaletteCancelMsg); !ok {
		t.Fatal("expected PaletteCancelMsg")
	}
}

func TestGaugeWidth(t *testing.T) {
	t.Parallel()
	for _, fraction := range []float64{-1, 0, 0.5, 1, 2} {
		if got := lipgloss.Width(components.Gauge(10, fraction, theme.Green)); got != 10 {
			t.Fatalf("fraction %v: width %d", fraction, got)
		}
	}
	if components.Gauge(0, 0.5, theme.Green) != "" {
		t.Fatal("zero width should render nothing")
	}
}

func TestStarsClamp(t *testing.T) {
	t.Parallel()
	if got := lipgloss.Width(components.Stars(9)); got != 5 {
		t.Fatalf("expected five cells, got %d", got)
	}
}
