package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"focusdrive/internal/ui/theme"
)

// PaletteSubmitMsg carries a confirmed command split into its verb and args.
type PaletteSubmitMsg struct {
	Verb string
	Args []string
}

type PaletteCancelMsg struct{}

// Command describes one palette verb for completion and hints.
type Command struct {
	Verb  string
	Usage string
}

// Commands is the verb table the app executes.
var Commands = []Command{
	{"drive:start", "pick a destination"},
	{"drive:pause", ""},
	{"drive:resume", ""},
	{"drive:end", "[completed]"},
	{"route:plan", "<destination> [highway|scenic|backroads]"},
	{"block:status", ""},
	{"block:authorize", ""},
	{"block:start", "<preset>"},
	{"block:stop", ""},
	{"achievements:clear", ""},
	{"providers:doctor", ""},
}

const (
	historyLimit = 20
	maxHints     = 5
)

var overlayStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(theme.Peach).
	Background(theme.Mantle).
	Foreground(theme.Text).
	Padding(0, 1)

var verbStyle = lipgloss.NewStyle().Foreground(theme.Lavender)

// history is a bounded list of submitted lines with a recall cursor.
type history struct {
	lines  []string
	cursor int
}

func (h *history) push(line string) {
	if line == "" || (len(h.lines) > 0 && h.lines[len(h.lines)-1] == line) {
		h.reset()
		return
	}
	h.lines = append(h.lines, line)
	if over := len(h.lines) - historyLimit; over > 0 {
		h.lines = h.lines[over:]
	}
	h.reset()
}

func (h *history) reset() { h.cursor = len(h.lines) }

// step moves the cursor by delta and returns the recalled line; past the
// newest entry it returns an empty line.
func (h *history) step(delta int) string {
	h.cursor = max(0, min(len(h.lines), h.cursor+delta))
	if h.cursor == len(h.lines) {
		return ""
	}
	return h.lines[h.cursor]
}

// Palette is the ":" command overlay.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
	past    history
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "drive:pause, route:plan Yosemite…"
	ti.CharLimit = 256
	ti.Prompt = ": "
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

func (p *Palette) SetWidth(w int) { p.width = w }

func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.past.reset()
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			line := strings.TrimSpace(p.input.Value())
			p.close()
			p.past.push(line)
			fields := strings.Fields(line)
			if len(fields) == 0 {
				return p, nil
			}
			submit := PaletteSubmitMsg{Verb: strings.ToLower(fields[0]), Args: fields[1:]}
			return p, func() tea.Msg { return submit }
		case "tab":
			if matches := p.matches(); len(matches) > 0 && !strings.Contains(p.input.Value(), " ") {
				p.input.SetValue(matches[0].Verb + " ")
				p.input.CursorEnd()
			}
			return p, nil
		case "up", "down":
			delta := -1
			if key.String() == "down" {
				delta = 1
			}
			p.input.SetValue(p.past.step(delta))
			p.input.CursorEnd()
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// matches returns commands whose verb starts with the typed verb, or the
// exact verb once arguments are being typed.
func (p Palette) matches() []Command {
	typed := strings.ToLower(strings.TrimSpace(p.input.Value()))
	verb, _, hasArgs := strings.Cut(typed, " ")
	var out []Command
	for _, c := range Commands {
		if (hasArgs && c.Verb == verb) || (!hasArgs && strings.HasPrefix(c.Verb, verb)) {
			out = append(out, c)
		}
		if len(out) == maxHints {
			break
		}
	}
	return out
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	lines := []string{
		theme.Title.Render("Command") + theme.Muted.Render("  tab complete  ↑/↓ history  esc cancel"),
		p.input.View(),
	}
	if hints := p.matches(); len(hints) > 0 {
		lines = append(lines, "")
		for _, c := range hints {
			lines = append(lines, "  "+verbStyle.Render(c.Verb)+" "+theme.Muted.Render(c.Usage))
		}
	}
	w := p.width
	if w < 20 {
		w = 64
	}
	return overlayStyle.Width(w - 2).Render(strings.Join(lines, "\n"))
}
