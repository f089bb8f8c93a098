package drive

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	achievementdto "focusdrive/internal/modules/achievement/dto"
	drivedto "focusdrive/internal/modules/drive/dto"
	focusdto "focusdrive/internal/modules/focus/dto"
	"focusdrive/internal/ui/components"
	"focusdrive/internal/ui/theme"
)

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the dashboard of the open drive. It holds no port: the parent owns
// the tick loop and pushes snapshots in.
type Model struct {
	snap     drivedto.Snapshot
	shield   focusdto.StatusOutput
	arrival  *drivedto.EndOutput
	unlocked []achievementdto.AchievementOutput
	width    int
	height   int
}

func New() Model { return Model{} }

func (m *Model) SetSnapshot(s drivedto.Snapshot) {
	m.snap = s
	if s.Open {
		m.arrival = nil
		m.unlocked = nil
	}
}

func (m *Model) SetShield(s focusdto.StatusOutput) { m.shield = s }

// SetArrival shows the summary of a finished drive until the next one starts.
func (m *Model) SetArrival(end drivedto.EndOutput, unlocked []achievementdto.AchievementOutput) {
	m.arrival = &end
	m.unlocked = unlocked
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if sz, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = sz.Width
		m.height = sz.Height
	}
	return m, nil
}

func (m Model) View() string {
	var body string
	switch {
	case m.snap.Open:
		body = m.renderDashboard()
	case m.arrival != nil:
		body = m.renderArrival()
	default:
		body = theme.Muted.Render("No drive in progress.\n\nPick a vehicle in the Garage tab, then a destination in the\nDestinations tab and press enter to plan and start a drive.")
	}
	return lipgloss.JoinVertical(lipgloss.Left, theme.Title.Render("Drive")+"\n", body, "", m.renderShield())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) gaugeWidth() int {
	return max(10, min(m.width-24, 60))
}

func (m Model) renderDashboard() string {
	s := m.snap.Session
	state := theme.Good.Render("● driving")
	if !m.snap.Running {
		state = theme.Warn.Render("❚❚ paused")
	}
	fuelLabel := fmt.Sprintf("%3.0f%%", s.Fuel*100)
	switch {
	case m.snap.FuelCritical:
		fuelLabel = theme.Alert.Render(fuelLabel + " critical")
	case m.snap.FuelLow:
		fuelLabel = theme.Warn.Render(fuelLabel + " low")
	}

	w := m.gaugeWidth()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %s → %s\n\n", state, theme.Hot.Render(s.VehicleName), theme.Hot.Render(s.DestinationName))
	fmt.Fprintf(&sb, "route  %s %3d%%\n", components.Gauge(w, float64(m.snap.ProgressPercent)/100, theme.Sapphire), m.snap.ProgressPercent)
	fmt.Fprintf(&sb, "fuel   %s %s\n\n", components.Gauge(w, s.Fuel, theme.FuelColor(s.Fuel)), fuelLabel)
	fmt.Fprintf(&sb, "speed      %5.1f mph\n", s.Speed)
	fmt.Fprintf(&sb, "travelled  %5.2f / %.1f mi\n", s.DistanceProgress, s.TargetDistance)
	fmt.Fprintf(&sb, "remaining  %s\n", clockFormat(m.snap.TimeRemaining))
	fmt.Fprintf(&sb, "breaks     %d\n\n", s.BreaksTaken)
	sb.WriteString(theme.Muted.Render("p: pause/resume  e: end (abandon)  E: end (completed)"))
	return sb.String()
}

func (m Model) renderArrival() string {
	end := m.arrival
	s := end.Session
	var sb strings.Builder
	if s.Status == "completed" {
		fmt.Fprintf(&sb, "%s %s\n\n", theme.Good.Render("Arrived at"), theme.Hot.Render(s.DestinationName))
	} else {
		fmt.Fprintf(&sb, "%s %s\n\n", theme.Warn.Render("Drive ended before"), theme.Hot.Render(s.DestinationName))
	}
	fmt.Fprintf(&sb, "distance  %.2f mi in %d min\n", end.VehicleMiles, s.DurationMinutes)
	fmt.Fprintf(&sb, "rating    %s\n", components.Stars(s.FuelEfficiency))
	if end.PostcardPath != "" {
		fmt.Fprintf(&sb, "postcard  %s\n", theme.Muted.Render(end.PostcardPath))
	}
	for _, v := range end.NewlyUnlocked {
		fmt.Fprintf(&sb, "%s %s\n", theme.Good.Render("vehicle unlocked:"), v)
	}
	for _, a := range m.unlocked {
		fmt.Fprintf(&sb, "%s %s\n", theme.Good.Render("achievement unlocked:"), a.Name)
	}
	return sb.String()
}

func (m Model) renderShield() string {
	sh := m.shield
	if sh.Authorization == "" {
		return ""
	}
	line := "shield: " + sh.Authorization
	switch {
	case sh.SessionBlocking || sh.Blocking:
		line += "  blocking " + strings.Join(sh.Categories, ",")
	default:
		line += "  idle"
	}
	if sh.Error != "" {
		return theme.Alert.Render(line + "  " + sh.Error)
	}
	return theme.Muted.Render(line)
}

func clockFormat(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	mm := int(d%time.Hour) / int(time.Minute)
	ss := int(d%time.Minute) / int(time.Second)
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mm, ss)
	}
	return fmt.Sprintf("%02d:%02d", mm, ss)
}
