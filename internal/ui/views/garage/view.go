package garage

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	garagedto "focusdrive/internal/modules/garage/dto"
	"focusdrive/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	List(ctx context.Context) ([]garagedto.VehicleOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type VehiclesLoadedMsg struct {
	Vehicles []garagedto.VehicleOutput
	Err      error
}

// ─── list item ───────────────────────────────────────────────────────────────

type vehicleItem struct {
	vehicle  garagedto.VehicleOutput
	selected bool
}

func (i vehicleItem) Title() string {
	title := i.vehicle.Name
	if i.selected {
		title = "✓ " + title
	}
	if !i.vehicle.Unlocked {
		title = "🔒 " + title
	}
	return title
}

func (i vehicleItem) Description() string {
	v := i.vehicle
	if !v.Unlocked {
		return fmt.Sprintf("%s  unlocks at %.0f fleet miles", v.TypeLabel, v.UnlockMiles)
	}
	return fmt.Sprintf("%s  %d drives  %.1f mi", v.TypeLabel, v.TimesUsed, v.TotalMiles)
}

func (i vehicleItem) FilterValue() string { return i.vehicle.Name }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     Port
	list     list.Model
	vehicles []garagedto.VehicleOutput
	chosen   string
	err      error
	width    int
	height   int
}

const defaultVehicle = "classic-sedan"

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Garage"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return Model{port: port, list: l, chosen: defaultVehicle}
}

func (m Model) Init() tea.Cmd { return m.Load() }

// Load refreshes the fleet, for example after a drive added mileage.
func (m Model) Load() tea.Cmd {
	return func() tea.Msg {
		vehicles, err := m.port.List(context.Background())
		return VehiclesLoadedMsg{Vehicles: vehicles, Err: err}
	}
}

// Chosen is the vehicle new drives start with.
func (m Model) Chosen() string { return m.chosen }

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width*6/10, m.height-2)

	case VehiclesLoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.vehicles = msg.Vehicles
			return m, m.refreshItems()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "enter" && !m.Filtering() {
			if item, ok := m.list.SelectedItem().(vehicleItem); ok && item.vehicle.Unlocked {
				m.chosen = item.vehicle.ID
				return m, m.refreshItems()
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Alert.Render("garage: " + m.err.Error())
	}
	detail := m.renderDetail()
	listW := m.width * 6 / 10
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(listW).Render(m.list.View()),
		theme.Pane.Width(max(10, m.width-listW-4)).Render(detail),
	)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) refreshItems() tea.Cmd {
	items := make([]list.Item, len(m.vehicles))
	for i, v := range m.vehicles {
		items[i] = vehicleItem{vehicle: v, selected: v.ID == m.chosen}
	}
	return m.list.SetItems(items)
}

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(vehicleItem)
	if !ok {
		return theme.Muted.Render("no vehicles")
	}
	v := item.vehicle
	var sb strings.Builder
	sb.WriteString(theme.Hot.Render(v.Name) + "\n" + theme.Muted.Render(v.TypeLabel) + "\n\n")
	fmt.Fprintf(&sb, "speed       %s\n", rating(v.SpeedRating))
	fmt.Fprintf(&sb, "comfort     %s\n", rating(v.ComfortRating))
	fmt.Fprintf(&sb, "efficiency  %s\n\n", rating(v.EfficiencyRating))
	if v.Unlocked {
		fmt.Fprintf(&sb, "%d drives, %.1f mi\n\n", v.TimesUsed, v.TotalMiles)
		sb.WriteString(theme.Muted.Render("enter: drive this vehicle"))
	} else {
		sb.WriteString(theme.Warn.Render(fmt.Sprintf("locked until the fleet reaches %.0f mi", v.UnlockMiles)))
	}
	return sb.String()
}

func rating(n int) string {
	n = max(0, min(5, n))
	return theme.Good.Render(strings.Repeat("●", n)) + theme.Muted.Render(strings.Repeat("○", 5-n))
}
