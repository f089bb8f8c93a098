package achievements

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	achievementdto "focusdrive/internal/modules/achievement/dto"
	"focusdrive/internal/ui/components"
	"focusdrive/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	List(ctx context.Context, input achievementdto.ListInput) ([]achievementdto.AchievementOutput, error)
	Summary(ctx context.Context) (achievementdto.SummaryOutput, error)
	Recent(ctx context.Context) []achievementdto.AchievementOutput
	ClearRecent(ctx context.Context)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	List    []achievementdto.AchievementOutput
	Summary achievementdto.SummaryOutput
	Recent  []achievementdto.AchievementOutput
	Err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

var filters = []string{"all", "unlocked", "in_progress", "locked"}

type Model struct {
	port     Port
	viewport viewport.Model
	filter   int
	loaded   LoadedMsg
	width    int
	height   int
}

func New(port Port) Model {
	return Model{port: port, viewport: viewport.New(0, 0)}
}

func (m Model) Init() tea.Cmd { return m.Load() }

func (m Model) Load() tea.Cmd {
	filter := filters[m.filter]
	return func() tea.Msg {
		ctx := context.Background()
		list, err := m.port.List(ctx, achievementdto.ListInput{Filter: filter})
		if err != nil {
			return LoadedMsg{Err: err}
		}
		summary, err := m.port.Summary(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		return LoadedMsg{List: list, Summary: summary, Recent: m.port.Recent(ctx)}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.width
		m.viewport.Height = max(1, m.height-4)
		m.viewport.SetContent(m.renderList())

	case LoadedMsg:
		m.loaded = msg
		m.viewport.SetContent(m.renderList())

	case tea.KeyMsg:
		switch msg.String() {
		case "f":
			m.filter = (m.filter + 1) % len(filters)
			return m, m.Load()
		case "x":
			port := m.port
			return m, tea.Sequence(func() tea.Msg {
				port.ClearRecent(context.Background())
				return nil
			}, m.Load())
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.loaded.Err != nil {
		return theme.Alert.Render("achievements: " + m.loaded.Err.Error())
	}
	s := m.loaded.Summary
	header := theme.Title.Render("Achievements") + "  " +
		theme.Muted.Render(fmt.Sprintf("%d/%d unlocked (%d%%)  filter: %s  f: filter  x: clear recent", s.Unlocked, s.Total, s.Percent, filters[m.filter]))
	return lipgloss.JoinVertical(lipgloss.Left, header, m.renderRecent(), m.viewport.View())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderRecent() string {
	if len(m.loaded.Recent) == 0 {
		return ""
	}
	names := make([]string, 0, len(m.loaded.Recent))
	for i := len(m.loaded.Recent) - 1; i >= 0; i-- {
		names = append(names, m.loaded.Recent[i].Name)
	}
	return theme.Good.Render("new: " + strings.Join(names, ", "))
}

func (m Model) renderList() string {
	var sb strings.Builder
	category := ""
	w := max(10, min(m.width-50, 30))
	for _, a := range m.loaded.List {
		if a.Category != category {
			category = a.Category
			sb.WriteString("\n" + theme.Hot.Render(strings.ToUpper(category)) + "\n")
		}
		mark := theme.Muted.Render("○")
		if a.Unlocked {
			mark = theme.Good.Render("●")
		}
		fmt.Fprintf(&sb, "%s %-18s %s %3.0f%%  %s\n", mark, a.Name, components.Gauge(w, a.Progress, theme.Lavender), a.Progress*100, theme.Muted.Render(a.Description))
	}
	if sb.Len() == 0 {
		return theme.Muted.Render("nothing here yet")
	}
	return sb.String()
}
