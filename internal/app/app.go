package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/hashboard/internal/agents"
	"github.com/abhisek/hashboard/internal/notify"
	"github.com/abhisek/hashboard/internal/project"
	"github.com/abhisek/hashboard/internal/quickactions"
	"github.com/abhisek/hashboard/internal/router"
	"github.com/abhisek/hashboard/internal/screen"
	"github.com/abhisek/hashboard/internal/screens/dashboard"
	settingsscreen "github.com/abhisek/hashboard/internal/screens/settings"
	tourscreen "github.com/abhisek/hashboard/internal/screens/tour"
	"github.com/abhisek/hashboard/internal/screens/welcome"
	cfg "github.com/abhisek/hashboard/internal/settings"
	"github.com/abhisek/hashboard/internal/store"
	tourctl "github.com/abhisek/hashboard/internal/tour"
	"github.com/abhisek/hashboard/internal/ui/layout"
	"github.com/abhisek/hashboard/internal/ui/theme"
)

// ExpireInterval is how often expired notifications are swept.
const ExpireInterval = time.Second

// Options are the dependencies the TUI runs with. Center is required.
type Options struct {
	Center   *notify.Center
	Settings *cfg.Service   // nil disables the settings screen
	Events   store.EventRepo // nil disables tour history and the notification log

	Steps []tourctl.Step // nil means the built-in catalog
	Tasks []project.Task // nil means the built-in plan
	Seed  uint64         // quick action randomness; zero seeds from the clock

	// SkipWelcome starts on the dashboard instead of the splash screen.
	SkipWelcome bool

	Logger *zap.Logger
	Now    func() time.Time
}

type expireTickMsg struct{}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	center  *notify.Center
	current cfg.Settings
	now     func() time.Time
	logger  *zap.Logger
	width   int
	height  int
}

// New loads the settings, applies the saved theme and builds the screen
// stack.
func New(ctx context.Context, opts Options) (AppModel, error) {
	if opts.Center == nil {
		return AppModel{}, fmt.Errorf("app: notification center is required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Steps == nil {
		opts.Steps = tourctl.DefaultCatalog()
	}
	if opts.Tasks == nil {
		opts.Tasks = project.DefaultTasks()
	}

	current := cfg.Defaults()
	if opts.Settings != nil {
		st, err := opts.Settings.Load(ctx)
		if err != nil {
			return AppModel{}, fmt.Errorf("load settings: %w", err)
		}
		current = st
	}
	theme.Apply(string(current.Theme))

	var rec tourscreen.Recorder
	if opts.Events != nil {
		rec = opts.Events
	}
	journal := tourscreen.NewJournal(rec, opts.Logger)

	var ctl *tourctl.Controller
	ctl, err := tourctl.New(opts.Steps, opts.Center, func() { journal.Completed(ctl) })
	if err != nil {
		return AppModel{}, fmt.Errorf("tour catalog: %w", err)
	}

	deps := dashboard.Deps{
		Center:   opts.Center,
		Settings: opts.Settings,
		Current:  current,
		Roster:   agents.NewRoster(agents.DefaultAgents()),
		Board:    quickactions.NewBoard(quickactions.NewSeededRNG(opts.Seed), opts.Center),
		Tasks:    opts.Tasks,
		Tour:     ctl,
		Journal:  journal,
		Logger:   opts.Logger,
		Now:      opts.Now,
	}
	if opts.Events != nil {
		deps.History = opts.Events
	}
	dash, err := dashboard.New(deps)
	if err != nil {
		return AppModel{}, fmt.Errorf("dashboard: %w", err)
	}

	var initial screen.Screen = dash
	if !opts.SkipWelcome {
		initial = welcome.New(func() screen.Screen { return dash })
	}

	return AppModel{
		router:  router.New(initial),
		center:  opts.Center,
		current: current,
		now:     opts.Now,
		logger:  opts.Logger,
	}, nil
}

func expireTick() tea.Cmd {
	return tea.Tick(ExpireInterval, func(time.Time) tea.Msg { return expireTickMsg{} })
}

func (m AppModel) Init() tea.Cmd {
	var initCmd tea.Cmd
	if active := m.router.Active(); active != nil {
		initCmd = active.Init()
	}
	return tea.Batch(initCmd, expireTick())
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case expireTickMsg:
		if n := m.center.Expire(m.now()); n > 0 {
			m.logger.Debug("notifications expired", zap.Int("count", n))
		}
		return m, expireTick()

	case settingsscreen.SavedMsg:
		m.current = msg.Settings
		theme.Apply(string(msg.Settings.Theme))

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscHandler); ok && h.HandlesEsc() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// headerInfo is the status on the right of the header.
func (m AppModel) headerInfo() layout.HeaderInfo {
	cd := project.NewCountdown(m.current.Project.DueDate, m.now())
	return layout.HeaderInfo{
		Project:  m.current.Project.Name,
		Unread:   m.center.UnreadCount(),
		DaysLeft: max(cd.Days, 0),
		Urgent:   cd.Urgent,
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if frame := m.render(); frame != "" {
		v.SetContent(frame)
	}
	return v
}

// render draws the header, the active screen and the footer.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.headerInfo(), m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(ctx context.Context, opts Options) error {
	m, err := New(ctx, opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
