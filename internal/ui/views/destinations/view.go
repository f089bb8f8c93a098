package destinations

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	routedto "focusdrive/internal/modules/route/dto"
	"focusdrive/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	ListDestinations(ctx context.Context, category string) ([]routedto.DestinationOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type DestinationsLoadedMsg struct {
	Destinations []routedto.DestinationOutput
	Err          error
}

// PlanRequestMsg asks the parent to plan a route and start a drive.
type PlanRequestMsg struct {
	Destination string
	RouteType   string
}

// ─── list item ───────────────────────────────────────────────────────────────

type destinationItem struct{ d routedto.DestinationOutput }

func (i destinationItem) Title() string { return i.d.Name }
func (i destinationItem) Description() string {
	return fmt.Sprintf("%s  %.0f mi", i.d.CategoryLabel, i.d.DistanceMiles)
}
func (i destinationItem) FilterValue() string { return i.d.Name + " " + i.d.CategoryLabel }

// ─── model ───────────────────────────────────────────────────────────────────

var routeTypes = []string{"scenic", "highway", "backroads"}

type Model struct {
	port      Port
	list      list.Model
	spinner   spinner.Model
	routeType int
	planning  bool
	err       error
	width     int
	height    int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Destinations"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, list: l, spinner: sp}
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		destinations, err := m.port.ListDestinations(context.Background(), "")
		return DestinationsLoadedMsg{Destinations: destinations, Err: err}
	}
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// SetPlanning shows a spinner while directions are being calculated.
func (m *Model) SetPlanning(planning bool) tea.Cmd {
	m.planning = planning
	if planning {
		return m.spinner.Tick
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width/2, m.height-2)

	case DestinationsLoadedMsg:
		m.err = msg.Err
		items := make([]list.Item, len(msg.Destinations))
		for i, d := range msg.Destinations {
			items[i] = destinationItem{d: d}
		}
		return m, m.list.SetItems(items)

	case spinner.TickMsg:
		if !m.planning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		switch msg.String() {
		case "t":
			m.routeType = (m.routeType + 1) % len(routeTypes)
			return m, nil
		case "enter":
			item, ok := m.list.SelectedItem().(destinationItem)
			if !ok || m.planning {
				return m, nil
			}
			req := PlanRequestMsg{Destination: item.d.Name, RouteType: routeTypes[m.routeType]}
			return m, func() tea.Msg { return req }
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Alert.Render("destinations: " + m.err.Error())
	}
	listW := m.width / 2
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(listW).Render(m.list.View()),
		theme.Pane.Width(max(10, m.width-listW-4)).Render(m.renderDetail()),
	)
}

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(destinationItem)
	if !ok {
		return theme.Muted.Render("no destinations")
	}
	d := item.d
	var sb strings.Builder
	sb.WriteString(theme.Hot.Render(d.Name) + "\n" + theme.Muted.Render(d.CategoryLabel) + "\n\n")
	if d.Description != "" {
		sb.WriteString(d.Description + "\n\n")
	}
	fmt.Fprintf(&sb, "%.4f, %.4f\n%.0f mi away\n\n", d.Lat, d.Lon, d.DistanceMiles)
	fmt.Fprintf(&sb, "route type: %s\n\n", theme.Hot.Render(routeTypes[m.routeType]))
	if m.planning {
		sb.WriteString(m.spinner.View() + " calculating route…")
	} else {
		sb.WriteString(theme.Muted.Render("enter: plan and drive  t: route type  /: filter"))
	}
	return sb.String()
}
