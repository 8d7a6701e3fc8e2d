// Package dashboard is the main screen: project countdown, agent status,
// the digital twin task graph, quick actions and recent alerts.
package dashboard

import (
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/hashboard/internal/agents"
	"github.com/abhisek/hashboard/internal/notify"
	"github.com/abhisek/hashboard/internal/project"
	"github.com/abhisek/hashboard/internal/quickactions"
	"github.com/abhisek/hashboard/internal/router"
	"github.com/abhisek/hashboard/internal/screen"
	"github.com/abhisek/hashboard/internal/screens/notifications"
	settingsscreen "github.com/abhisek/hashboard/internal/screens/settings"
	tourscreen "github.com/abhisek/hashboard/internal/screens/tour"
	cfg "github.com/abhisek/hashboard/internal/settings"
	tourctl "github.com/abhisek/hashboard/internal/tour"
	"github.com/abhisek/hashboard/internal/ui/components"
	"github.com/abhisek/hashboard/internal/ui/layout"
)

// Panel names double as tour step targets.
const (
	PanelHeader        = "header"
	PanelTimer         = "project-timer"
	PanelAgentsStatus  = "agents-status"
	PanelDigitalTwin   = "digital-twin"
	PanelAgentCards    = "agent-cards"
	PanelQuickActions  = "quick-actions"
	PanelNotifications = "notifications"
)

// RecentAlerts is how many notifications the alerts panel shows.
const RecentAlerts = 3

// Deps are the dashboard's collaborators. Center, Roster, Board and Tasks are
// required; the rest may be nil, which disables the matching key.
type Deps struct {
	Center   *notify.Center
	Settings *cfg.Service
	Current  cfg.Settings
	Roster   *agents.Roster
	Board    *quickactions.Board
	Tasks    []project.Task
	Tour     *tourctl.Controller
	Journal  *tourscreen.Journal
	History  notifications.HistorySource
	Logger   *zap.Logger
	Now      func() time.Time
}

// DashboardScreen implements screen.Screen.
type DashboardScreen struct {
	deps    Deps
	current cfg.Settings
	summary project.Summary
	blocked map[string]bool

	menu  components.Menu
	runs  map[string]int
	agent int // selected agent card

	simRunning bool
	simGen     int
	simFrame   int
}

var (
	_ screen.Screen          = (*DashboardScreen)(nil)
	_ screen.KeyHintProvider = (*DashboardScreen)(nil)
	_ tourscreen.Highlighter = (*DashboardScreen)(nil)
)

// New validates the task plan and creates the dashboard.
func New(deps Deps) (*DashboardScreen, error) {
	if deps.Center == nil || deps.Roster == nil || deps.Board == nil {
		return nil, errors.New("dashboard: center, roster and board are required")
	}
	summary, err := project.Summarize(deps.Tasks)
	if err != nil {
		return nil, err
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	d := &DashboardScreen{
		deps:    deps,
		current: deps.Current,
		summary: summary,
		blocked: make(map[string]bool),
		runs:    make(map[string]int),
	}
	for _, t := range project.Blocked(deps.Tasks) {
		d.blocked[t.ID] = true
	}

	actions := deps.Board.Actions()
	items := make([]components.MenuItem, len(actions))
	for i, a := range actions {
		id := a.ID
		items[i] = components.MenuItem{
			Label:  fmt.Sprintf("%d  %s", i+1, a.Title),
			Action: func() tea.Cmd { return d.startAction(id) },
		}
	}
	d.menu = components.NewMenu(items)
	return d, nil
}

func (d *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (d *DashboardScreen) Title() string {
	return "Dashboard"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "1-4/Enter", Description: "Run action"},
		{Key: "←→", Description: "Agent"},
		{Key: "P", Description: "Pause/resume"},
		{Key: "R", Description: "Simulation"},
	}
	if d.deps.Tour != nil {
		hints = append(hints, layout.KeyHint{Key: "T", Description: "Tour"})
	}
	if d.deps.Settings != nil {
		hints = append(hints, layout.KeyHint{Key: "S", Description: "Settings"})
	}
	return append(hints,
		layout.KeyHint{Key: "N", Description: "Alerts"},
		layout.KeyHint{Key: "Q", Description: "Quit"},
	)
}

// Current returns the settings the dashboard is showing.
func (d *DashboardScreen) Current() cfg.Settings {
	return d.current
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsscreen.SavedMsg:
		d.current = msg.Settings
		return d, nil

	case actionTickMsg:
		return d, d.tickAction(msg)

	case actionResetMsg:
		if d.runs[msg.ID] != msg.Run {
			return d, nil
		}
		d.clearAction(msg.ID)
		return d, nil

	case simTickMsg:
		if !d.simRunning || msg.Gen != d.simGen {
			return d, nil
		}
		d.simFrame++
		return d, tickSim(d.simGen)

	case tea.KeyMsg:
		return d.handleKey(msg)
	}
	return d, nil
}

func (d *DashboardScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch key := msg.String(); key {
	case "q":
		return d, tea.Quit

	case "t":
		if d.deps.Tour == nil {
			return d, nil
		}
		return d, push(tourscreen.New(d.deps.Tour, d.deps.Journal, d))

	case "s":
		if d.deps.Settings == nil {
			return d, nil
		}
		return d, push(settingsscreen.New(d.deps.Settings, d.current))

	case "n":
		return d, push(notifications.New(d.deps.Center, d.deps.History))

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		id, ok := d.deps.Board.IDAt(int(key[0] - '0'))
		if !ok {
			return d, nil
		}
		d.menu.Selected = int(key[0]-'0') - 1
		return d, d.startAction(id)

	case "left", "h", "shift+tab":
		if n := len(d.deps.Roster.All()); n > 0 {
			d.agent = (d.agent + n - 1) % n
		}
		return d, nil

	case "right", "l", "tab":
		if n := len(d.deps.Roster.All()); n > 0 {
			d.agent = (d.agent + 1) % n
		}
		return d, nil

	case "p":
		d.toggleAgent()
		return d, nil

	case "c":
		if a, ok := d.selectedAgent(); ok {
			d.deps.Center.Emit(notify.KindInfo, "Agent Configuration",
				fmt.Sprintf("Opening configuration for agent %s...", a.ID))
		}
		return d, nil

	case "v":
		if a, ok := d.selectedAgent(); ok {
			d.deps.Center.Emit(notify.KindInfo, "Agent Details",
				fmt.Sprintf("Viewing detailed metrics for agent %s...", a.ID))
		}
		return d, nil

	case "r":
		d.simRunning = !d.simRunning
		if !d.simRunning {
			return d, nil
		}
		d.simGen++
		return d, tickSim(d.simGen)
	}

	var cmd tea.Cmd
	d.menu, cmd = d.menu.Update(msg)
	return d, cmd
}

func (d *DashboardScreen) selectedAgent() (agents.Agent, bool) {
	all := d.deps.Roster.All()
	if d.agent < 0 || d.agent >= len(all) {
		return agents.Agent{}, false
	}
	return all[d.agent], true
}

func (d *DashboardScreen) toggleAgent() {
	a, ok := d.selectedAgent()
	if !ok {
		return
	}
	status, err := d.deps.Roster.Toggle(a.ID)
	if err != nil {
		d.deps.Logger.Error("toggle agent", zap.String("agent", a.ID), zap.Error(err))
		return
	}
	d.deps.Logger.Info("agent toggled", zap.String("agent", a.ID), zap.String("status", string(status)))
	d.deps.Center.Emit(notify.KindInfo, "Agent Status Changed",
		fmt.Sprintf("Agent %s has been toggled.", a.ID))
}

func (d *DashboardScreen) startAction(id string) tea.Cmd {
	started, err := d.deps.Board.Start(id)
	if err != nil {
		d.deps.Logger.Error("start quick action", zap.String("action", id), zap.Error(err))
		return nil
	}
	if !started {
		return nil
	}
	d.runs[id]++
	return tickAction(id, d.runs[id])
}

func (d *DashboardScreen) tickAction(msg actionTickMsg) tea.Cmd {
	if d.runs[msg.ID] != msg.Run {
		return nil
	}
	status, err := d.deps.Board.Tick(msg.ID)
	if err != nil {
		d.deps.Logger.Error("tick quick action", zap.String("action", msg.ID), zap.Error(err))
		return nil
	}
	switch status {
	case quickactions.StatusLoading:
		return tickAction(msg.ID, msg.Run)
	case quickactions.StatusSuccess:
		d.deps.Logger.Info("quick action finished", zap.String("action", msg.ID))
		return resetAction(msg.ID, msg.Run)
	}
	return nil
}

// clearAction returns a finished action to idle.
func (d *DashboardScreen) clearAction(id string) {
	a, err := d.deps.Board.Get(id)
	if err != nil {
		d.deps.Logger.Error("reset quick action", zap.String("action", id), zap.Error(err))
		return
	}
	if a.Status != quickactions.StatusSuccess {
		return
	}
	if err := d.deps.Board.Reset(id); err != nil {
		d.deps.Logger.Error("reset quick action", zap.String("action", id), zap.Error(err))
	}
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: s}
	}
}
