package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	providerdto "focusdrive/internal/modules/provider/dto"
	"focusdrive/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the minimal interface this view needs from the provider use-case.
type Port interface {
	List(ctx context.Context) ([]providerdto.ProviderInfo, error)
	Doctor(ctx context.Context) ([]providerdto.DoctorResult, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type ProvidersLoadedMsg struct {
	Providers []providerdto.ProviderInfo
	Err       error
}

type DoctorDoneMsg struct {
	Results []providerdto.DoctorResult
	Err     error
}

// ─── list item ───────────────────────────────────────────────────────────────

type providerItem struct{ p providerdto.ProviderInfo }

func (i providerItem) Title() string { return i.p.Name + "@" + i.p.Version }
func (i providerItem) Description() string {
	state := "disabled"
	if i.p.Enabled {
		state = "enabled"
	}
	return fmt.Sprintf("%s  p%d  %s", state, i.p.Priority, strings.Join(i.p.Capabilities, ", "))
}
func (i providerItem) FilterValue() string { return i.p.Name }

// ─── pane ────────────────────────────────────────────────────────────────────

type pane int

const (
	paneList   pane = iota // manifests
	paneDoctor             // doctor report
)

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    Port
	pane    pane
	list    list.Model
	report  viewport.Model
	spinner spinner.Model
	loading bool
	err     error
	width   int
	height  int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Providers"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, list: l, report: vp, spinner: sp}
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		providers, err := m.port.List(context.Background())
		return ProvidersLoadedMsg{Providers: providers, Err: err}
	}
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// RunDoctor checks every manifest; used by the palette too.
func (m *Model) RunDoctor() tea.Cmd {
	m.loading = true
	port := m.port
	return tea.Batch(func() tea.Msg {
		results, err := port.Doctor(context.Background())
		return DoctorDoneMsg{Results: results, Err: err}
	}, m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.height-3)
		m.report.Width = m.width - 4
		m.report.Height = max(1, m.height-4)

	case ProvidersLoadedMsg:
		m.err = msg.Err
		items := make([]list.Item, len(msg.Providers))
		for i, p := range msg.Providers {
			items[i] = providerItem{p: p}
		}
		return m, m.list.SetItems(items)

	case DoctorDoneMsg:
		m.loading = false
		if msg.Err != nil {
			m.report.SetContent(theme.Alert.Render("Error: " + msg.Err.Error()))
		} else {
			m.report.SetContent(renderReport(msg.Results))
		}
		m.report.GotoTop()
		m.pane = paneDoctor
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch m.pane {
		case paneList:
			if msg.String() == "d" && !m.Filtering() {
				return m, m.RunDoctor()
			}
		case paneDoctor:
			if msg.String() == "esc" {
				m.pane = paneList
				return m, nil
			}
			var cmd tea.Cmd
			m.report, cmd = m.report.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Checking providers…")
	}
	if m.err != nil {
		return theme.Alert.Render("providers: " + m.err.Error())
	}
	switch m.pane {
	case paneDoctor:
		hint := theme.Muted.Render("esc: back  ↑/↓: scroll")
		return lipgloss.JoinVertical(lipgloss.Left, hint, m.report.View())
	default:
		if len(m.list.Items()) == 0 {
			return theme.Title.Render("Providers") + "\n\n" +
				theme.Muted.Render("No providers configured. Built-in directions, shield and feedback are in use.\nDeclare providers in providers.yaml in the data directory.")
		}
		return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), theme.Muted.Render("d: run doctor"))
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func renderReport(results []providerdto.DoctorResult) string {
	if len(results) == 0 {
		return theme.Muted.Render("no providers configured")
	}
	check := func(ok bool) string {
		if ok {
			return theme.Good.Render("✓")
		}
		return theme.Alert.Render("✗")
	}
	var sb strings.Builder
	for _, r := range results {
		sb.WriteString(theme.Title.Render(r.Name) + "\n")
		fmt.Fprintf(&sb, "  %s binary  %s checksum  %s lifecycle\n", check(r.BinaryReachable), check(r.ChecksumValid), check(r.LifecycleOK))
		if r.Error != "" {
			sb.WriteString("  " + theme.Hot.Render(r.Error) + "\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
