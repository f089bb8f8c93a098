package journal

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	drivedto "focusdrive/internal/modules/drive/dto"
	"focusdrive/internal/ui/components"
	"focusdrive/internal/ui/theme"
)

const pageSize = 50

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Postcards(ctx context.Context, limit int) ([]drivedto.PostcardOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type PostcardsLoadedMsg struct {
	Postcards []drivedto.PostcardOutput
	Err       error
}

// ─── list item ───────────────────────────────────────────────────────────────

type postcardItem struct{ p drivedto.PostcardOutput }

func (i postcardItem) Title() string { return i.p.DestinationName }
func (i postcardItem) Description() string {
	return fmt.Sprintf("%s  %.1f mi  %s", i.p.EarnedAt.Local().Format("Jan 2 2006"), i.p.Miles, components.Stars(i.p.Rating))
}
func (i postcardItem) FilterValue() string { return i.p.DestinationName }

// ─── model ───────────────────────────────────────────────────────────────────

// Model lists earned postcards and renders the selected note with glamour.
type Model struct {
	port     Port
	list     list.Model
	preview  viewport.Model
	renderer *glamour.TermRenderer
	shown    string
	err      error
	width    int
	height   int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Postcards"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)
	return Model{port: port, list: l, preview: viewport.New(0, 0), renderer: r}
}

func (m Model) Init() tea.Cmd { return m.Load() }

func (m Model) Load() tea.Cmd {
	return func() tea.Msg {
		cards, err := m.port.Postcards(context.Background(), pageSize)
		return PostcardsLoadedMsg{Postcards: cards, Err: err}
	}
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.shown = ""

	case PostcardsLoadedMsg:
		m.err = msg.Err
		items := make([]list.Item, len(msg.Postcards))
		for i, p := range msg.Postcards {
			items[i] = postcardItem{p: p}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.shown = ""

	case tea.KeyMsg:
		switch msg.String() {
		case "pgdown", "pgup":
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	m.syncPreview()
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Alert.Render("journal: " + m.err.Error())
	}
	if len(m.list.Items()) == 0 {
		return theme.Title.Render("Postcards") + "\n\n" + theme.Muted.Render("Complete a drive to earn your first postcard.")
	}
	listW := m.width * 4 / 10
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(listW).Render(m.list.View()),
		m.preview.View(),
	)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	m.list.SetSize(listW, m.height-2)
	m.preview.Width = max(10, m.width-listW)
	m.preview.Height = max(1, m.height-2)
	if r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(m.preview.Width-2),
	); err == nil {
		m.renderer = r
	}
}

// syncPreview re-renders only when the selection changed.
func (m *Model) syncPreview() {
	item, ok := m.list.SelectedItem().(postcardItem)
	if !ok || item.p.Path == m.shown {
		return
	}
	m.shown = item.p.Path
	content := item.p.Markdown
	if m.renderer != nil {
		if out, err := m.renderer.Render(item.p.Markdown); err == nil {
			content = out
		}
	}
	m.preview.SetContent(content)
	m.preview.GotoTop()
}
