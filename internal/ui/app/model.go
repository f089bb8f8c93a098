package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	achievementdto "focusdrive/internal/modules/achievement/dto"
	drivedto "focusdrive/internal/modules/drive/dto"
	focusdto "focusdrive/internal/modules/focus/dto"
	routedto "focusdrive/internal/modules/route/dto"
	apperrors "focusdrive/internal/platform/errors"
	"focusdrive/internal/ui/components"
	"focusdrive/internal/ui/theme"
	achievementsview "focusdrive/internal/ui/views/achievements"
	destinationsview "focusdrive/internal/ui/views/destinations"
	driveview "focusdrive/internal/ui/views/drive"
	garageview "focusdrive/internal/ui/views/garage"
	journalview "focusdrive/internal/ui/views/journal"
	providersview "focusdrive/internal/ui/views/providers"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type drivePort interface {
	Start(ctx context.Context, input drivedto.StartInput) (drivedto.Snapshot, error)
	Pause(ctx context.Context) (drivedto.Snapshot, error)
	Resume(ctx context.Context) (drivedto.Snapshot, error)
	End(ctx context.Context, input drivedto.EndInput) (drivedto.EndOutput, error)
	Tick(ctx context.Context) (drivedto.Snapshot, error)
	Snapshot(ctx context.Context) (drivedto.Snapshot, error)
	Postcards(ctx context.Context, limit int) ([]drivedto.PostcardOutput, error)
}

type routePort interface {
	Plan(ctx context.Context, destination, routeType string, origin *routedto.Place) (routedto.RouteOutput, error)
	ListDestinations(ctx context.Context, category string) ([]routedto.DestinationOutput, error)
}

type focusPort interface {
	Status(ctx context.Context) (focusdto.StatusOutput, error)
	Authorize(ctx context.Context) (focusdto.StatusOutput, error)
	Start(ctx context.Context, preset string, categories []string) (focusdto.StatusOutput, error)
	Stop(ctx context.Context) (focusdto.StatusOutput, error)
}

// Deps carries everything the root model talks to.
type Deps struct {
	Drive        drivePort
	Updates      <-chan drivedto.Snapshot
	Achievements achievementsview.Port
	Garage       garageview.Port
	Routes       routePort
	Focus        focusPort
	Providers    providersview.Port
	// Interval is the wall time between simulation ticks.
	Interval time.Duration
	Arrived  func(ctx context.Context, ended drivedto.EndOutput) (achievementdto.CheckOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabDrive tabID = iota
	tabGarage
	tabDestinations
	tabAchievements
	tabJournal
	tabProviders
	tabCount
)

var tabLabels = [tabCount]string{
	"Drive", "Garage", "Destinations", "Achievements", "Journal", "Providers",
}

// ─── async messages ───────────────────────────────────────────────────────────

type snapshotMsg struct{ snap drivedto.Snapshot }

type tickMsg struct{ gen int }

type tickDoneMsg struct {
	gen  int
	snap drivedto.Snapshot
	err  error
}

type endDoneMsg struct {
	out drivedto.EndOutput
	err error
}

type opDoneMsg struct {
	label string
	err   error
}

type arrivedMsg struct {
	ended drivedto.EndOutput
	check achievementdto.CheckOutput
	err   error
}

type shieldMsg struct {
	status focusdto.StatusOutput
	err    error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab      key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
	Enter    key.Binding
	Pause    key.Binding
	Abandon  key.Binding
	Complete key.Binding
	Route    key.Binding
	Filter   key.Binding
	Doctor   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose vehicle / drive")),
		Pause:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause/resume")),
		Abandon:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end drive")),
		Complete: key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "end as completed")),
		Route:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "route type")),
		Filter:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "achievement filter")),
		Doctor:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "provider doctor")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter, k.Route},
		{k.Pause, k.Abandon, k.Complete},
		{k.Filter, k.Doctor},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing and the tick loop
// of the open drive. Snapshots arrive on the drive subscription; commands
// report errors and the end of a drive.
type Model struct {
	deps Deps

	driveView        driveview.Model
	garageView       garageview.Model
	destinationsView destinationsview.Model
	achievementsView achievementsview.Model
	journalView      journalview.Model
	providersView    providersview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	snap      drivedto.Snapshot
	ticking   bool
	tickGen   int
	status    string
	width     int
	height    int
	// arrivedFor is the session whose end has already been handled.
	arrivedFor string
}

func NewModel(deps Deps) Model {
	if deps.Interval <= 0 {
		deps.Interval = time.Second
	}
	return Model{
		deps:             deps,
		driveView:        driveview.New(),
		garageView:       garageview.New(deps.Garage),
		destinationsView: destinationsview.New(deps.Routes),
		achievementsView: achievementsview.New(deps.Achievements),
		journalView:      journalview.New(deps.Drive),
		providersView:    providersview.New(deps.Providers),
		activeTab:        tabDrive,
		keys:             defaultKeys(),
		help:             help.New(),
		palette:          components.NewPalette(),
		status:           "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.garageView.Init(),
		m.destinationsView.Init(),
		m.achievementsView.Init(),
		m.journalView.Init(),
		m.providersView.Init(),
		m.loadSnapshotCmd(),
		m.waitSnapshotCmd(),
		m.shieldCmd("", m.deps.Focus.Status),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts key input while open; background messages such as
	// ticks and snapshots keep flowing.
	if _, isKey := msg.(tea.KeyMsg); isKey && m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case snapshotMsg:
		return m, m.applySnapshot(msg.snap)

	case tickMsg:
		if !m.ticking || msg.gen != m.tickGen {
			return m, nil
		}
		return m, m.tickCmd(msg.gen)

	case tickDoneMsg:
		if msg.gen != m.tickGen {
			return m, nil
		}
		if msg.err != nil {
			m.ticking = false
			if !errors.Is(msg.err, apperrors.ErrSessionNotRunning) && !errors.Is(msg.err, apperrors.ErrNoActiveSession) {
				m.status = "tick: " + msg.err.Error()
			}
			return m, nil
		}
		if msg.snap.Ended != nil {
			m.snap = msg.snap
			m.driveView.SetSnapshot(msg.snap)
			return m, m.arrive(*msg.snap.Ended)
		}
		if m.ticking {
			return m, m.scheduleTick()
		}
		return m, nil

	case endDoneMsg:
		if msg.err != nil {
			m.status = "end drive: " + msg.err.Error()
			return m, nil
		}
		m.snap.Open, m.snap.Running = false, false
		return m, m.arrive(msg.out)

	case opDoneMsg:
		if msg.err != nil {
			m.status = msg.label + ": " + msg.err.Error()
		} else if msg.label != "" {
			m.status = msg.label
		}
		return m, nil

	case arrivedMsg:
		m.driveView.SetArrival(msg.ended, msg.check.NewlyUnlocked)
		m.activeTab = tabDrive
		switch {
		case msg.err != nil:
			m.status = "achievements: " + msg.err.Error()
		case msg.ended.Session.Status == "completed":
			m.status = "arrived at " + msg.ended.Session.DestinationName
		default:
			m.status = "drive ended"
		}
		return m, tea.Batch(
			m.garageView.Load(),
			m.journalView.Load(),
			m.achievementsView.Load(),
			m.shieldCmd("", m.deps.Focus.Status),
		)

	case shieldMsg:
		if msg.err != nil {
			m.status = "shield: " + msg.err.Error()
			return m, nil
		}
		m.driveView.SetShield(msg.status)
		if msg.status.Error != "" {
			m.status = "shield: " + msg.status.Error
		}
		return m, nil

	case destinationsview.PlanRequestMsg:
		if m.snap.Open {
			m.status = "a drive is already in progress"
			return m, nil
		}
		m.status = "calculating route to " + msg.Destination
		return m, tea.Batch(m.destinationsView.SetPlanning(true), m.planAndStartCmd(msg.Destination, msg.RouteType))

	case planStartedMsg:
		m.destinationsView.SetPlanning(false)
		if msg.err != nil {
			m.status = "start drive: " + msg.err.Error()
			return m, nil
		}
		m.activeTab = tabDrive
		m.status = fmt.Sprintf("driving to %s (%.1f mi)", msg.route.DestinationName, msg.route.DistanceMiles)
		return m, m.shieldCmd("", m.deps.Focus.Status)

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Verb, msg.Args)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-view when its search filter is active.
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		}
		if m.activeTab == tabDrive {
			switch msg.String() {
			case "p":
				return m, m.togglePauseCmd()
			case "e":
				return m, m.endCmd(false)
			case "E":
				return m, m.endCmd(true)
			}
		}
	}

	// Messages owned by a sub-view are routed to it regardless of the active
	// tab; everything else goes to the active tab.
	var cmd tea.Cmd
	switch msg.(type) {
	case garageview.VehiclesLoadedMsg:
		m.garageView, cmd = m.garageView.Update(msg)
	case destinationsview.DestinationsLoadedMsg:
		m.destinationsView, cmd = m.destinationsView.Update(msg)
	case achievementsview.LoadedMsg:
		m.achievementsView, cmd = m.achievementsView.Update(msg)
	case journalview.PostcardsLoadedMsg:
		m.journalView, cmd = m.journalView.Update(msg)
	case providersview.ProvidersLoadedMsg, providersview.DoctorDoneMsg:
		m.providersView, cmd = m.providersView.Update(msg)
	default:
		cmd = m.updateActive(msg)
	}
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) updateActive(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.activeTab {
	case tabDrive:
		m.driveView, cmd = m.driveView.Update(msg)
	case tabGarage:
		m.garageView, cmd = m.garageView.Update(msg)
	case tabDestinations:
		m.destinationsView, cmd = m.destinationsView.Update(msg)
	case tabAchievements:
		m.achievementsView, cmd = m.achievementsView.Update(msg)
	case tabJournal:
		m.journalView, cmd = m.journalView.Update(msg)
	case tabProviders:
		m.providersView, cmd = m.providersView.Update(msg)
	}
	return cmd
}

// applySnapshot renders a new drive state and keeps exactly one tick loop
// alive while the drive runs.
func (m *Model) applySnapshot(snap drivedto.Snapshot) tea.Cmd {
	m.snap = snap
	m.driveView.SetSnapshot(snap)
	cmds := []tea.Cmd{m.waitSnapshotCmd()}
	if snap.Ended != nil {
		cmds = append(cmds, m.arrive(*snap.Ended))
	}
	switch {
	case snap.Running && !m.ticking:
		m.ticking = true
		m.tickGen++
		cmds = append(cmds, m.scheduleTick())
	case !snap.Running:
		m.ticking = false
	}
	return tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(1, m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar))

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = lipgloss.NewStyle().Height(contentH).Render(m.activeView())
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabDrive:
		return m.driveView.View()
	case tabGarage:
		return m.garageView.View()
	case tabDestinations:
		return m.destinationsView.View()
	case tabAchievements:
		return m.achievementsView.View()
	case tabJournal:
		return m.journalView.View()
	case tabProviders:
		return m.providersView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "focusdrive  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.snap.Open {
		s := m.snap.Session
		marker := "● "
		if !m.snap.Running {
			marker = "❚❚ "
		}
		left = theme.Hot.Render(fmt.Sprintf("%s%s %d%%", marker, s.DestinationName, m.snap.ProgressPercent)) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(verb string, args []string) (tea.Model, tea.Cmd) {
	switch verb {
	case "drive:start":
		m.activeTab = tabDestinations
		m.status = "pick a destination and press enter"
		return m, nil

	case "drive:pause":
		return m, m.opCmd("drive paused", m.deps.Drive.Pause)

	case "drive:resume":
		return m, m.opCmd("drive resumed", m.deps.Drive.Resume)

	case "drive:end":
		return m, m.endCmd(len(args) > 0 && args[0] == "completed")

	case "route:plan":
		if len(args) == 0 {
			m.status = "usage: route:plan <destination> [highway|scenic|backroads]"
			return m, nil
		}
		routeType := "scenic"
		name := strings.Join(args, " ")
		if last := args[len(args)-1]; len(args) > 1 && (last == "highway" || last == "scenic" || last == "backroads") {
			routeType = last
			name = strings.Join(args[:len(args)-1], " ")
		}
		return m.Update(destinationsview.PlanRequestMsg{Destination: name, RouteType: routeType})

	case "block:status":
		return m, m.shieldCmd("shield refreshed", m.deps.Focus.Status)

	case "block:authorize":
		return m, m.shieldCmd("authorization requested", m.deps.Focus.Authorize)

	case "block:start":
		preset := ""
		if len(args) > 0 {
			preset = args[0]
		}
		focus := m.deps.Focus
		return m, m.shieldCmd("blocking started", func(ctx context.Context) (focusdto.StatusOutput, error) {
			return focus.Start(ctx, preset, nil)
		})

	case "block:stop":
		return m, m.shieldCmd("blocking stopped", m.deps.Focus.Stop)

	case "achievements:clear":
		m.activeTab = tabAchievements
		return m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	case "providers:doctor":
		m.activeTab = tabProviders
		return m, m.providersView.RunDoctor()

	default:
		m.status = "unknown command: " + verb
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewFiltering reports whether the active tab's list filter is open,
// in which case global key bindings must yield to allow free typing.
func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabGarage:
		return m.garageView.Filtering()
	case tabDestinations:
		return m.destinationsView.Filtering()
	case tabJournal:
		return m.journalView.Filtering()
	case tabProviders:
		return m.providersView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.driveView, _ = m.driveView.Update(sz)
	m.garageView, _ = m.garageView.Update(sz)
	m.destinationsView, _ = m.destinationsView.Update(sz)
	m.achievementsView, _ = m.achievementsView.Update(sz)
	m.journalView, _ = m.journalView.Update(sz)
	m.providersView, _ = m.providersView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

type planStartedMsg struct {
	route routedto.RouteOutput
	err   error
}

func (m Model) loadSnapshotCmd() tea.Cmd {
	drive := m.deps.Drive
	return func() tea.Msg {
		snap, err := drive.Snapshot(context.Background())
		if err != nil {
			return opDoneMsg{label: "load drive", err: err}
		}
		return snapshotMsg{snap: snap}
	}
}

// waitSnapshotCmd blocks on the drive subscription. It yields nil once the
// subscription is closed.
func (m Model) waitSnapshotCmd() tea.Cmd {
	updates := m.deps.Updates
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := <-updates
		if !ok {
			return nil
		}
		return snapshotMsg{snap: snap}
	}
}

func (m Model) scheduleTick() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(m.deps.Interval, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func (m Model) tickCmd(gen int) tea.Cmd {
	drive := m.deps.Drive
	return func() tea.Msg {
		snap, err := drive.Tick(context.Background())
		return tickDoneMsg{gen: gen, snap: snap, err: err}
	}
}

func (m Model) opCmd(label string, op func(context.Context) (drivedto.Snapshot, error)) tea.Cmd {
	return func() tea.Msg {
		_, err := op(context.Background())
		return opDoneMsg{label: label, err: err}
	}
}

func (m Model) togglePauseCmd() tea.Cmd {
	switch {
	case m.snap.Running:
		return m.opCmd("drive paused", m.deps.Drive.Pause)
	case m.snap.Open:
		return m.opCmd("drive resumed", m.deps.Drive.Resume)
	}
	return nil
}

func (m Model) endCmd(completed bool) tea.Cmd {
	if !m.snap.Open {
		return nil
	}
	drive := m.deps.Drive
	return func() tea.Msg {
		out, err := drive.End(context.Background(), drivedto.EndInput{Completed: completed})
		return endDoneMsg{out: out, err: err}
	}
}

// arrive runs the arrival flow once per session. The end is reported by the
// subscription and by the Tick or End call that caused it.
func (m *Model) arrive(ended drivedto.EndOutput) tea.Cmd {
	if ended.Session.ID == m.arrivedFor {
		return nil
	}
	m.arrivedFor = ended.Session.ID
	m.ticking = false
	return m.arrivedCmd(ended)
}

func (m Model) arrivedCmd(ended drivedto.EndOutput) tea.Cmd {
	arrived := m.deps.Arrived
	return func() tea.Msg {
		if arrived == nil {
			return arrivedMsg{ended: ended}
		}
		check, err := arrived(context.Background(), ended)
		return arrivedMsg{ended: ended, check: check, err: err}
	}
}

func (m Model) planAndStartCmd(destination, routeType string) tea.Cmd {
	routes, drive := m.deps.Routes, m.deps.Drive
	vehicleID := m.garageView.Chosen()
	return func() tea.Msg {
		ctx := context.Background()
		route, err := routes.Plan(ctx, destination, routeType, nil)
		if err != nil {
			return planStartedMsg{err: err}
		}
		if _, err := drive.Start(ctx, drivedto.StartInput{VehicleID: vehicleID, RouteID: route.ID}); err != nil {
			return planStartedMsg{route: route, err: err}
		}
		return planStartedMsg{route: route}
	}
}

func (m Model) shieldCmd(label string, op func(context.Context) (focusdto.StatusOutput, error)) tea.Cmd {
	return func() tea.Msg {
		status, err := op(context.Background())
		if err != nil {
			return shieldMsg{err: err}
		}
		if label != "" && status.Error == "" {
			status.Message = label
		}
		return shieldMsg{status: status}
	}
}
