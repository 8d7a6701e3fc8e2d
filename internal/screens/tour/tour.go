// Package tour is the guided-tour overlay. It drives a tour controller from
// key presses and draws the current step over a highlighted backdrop.
package tour

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hashboard/internal/router"
	"github.com/abhisek/hashboard/internal/screen"
	tourctl "github.com/abhisek/hashboard/internal/tour"
	"github.com/abhisek/hashboard/internal/ui/layout"
)

// Highlighter renders a backdrop with the named target emphasized. The
// dashboard implements it.
type Highlighter interface {
	ViewHighlighted(width, height int, target string) string
}

// TourScreen implements screen.Screen for a running tour.
type TourScreen struct {
	ctl      *tourctl.Controller
	journal  *Journal
	backdrop Highlighter
	closing  bool
}

var (
	_ screen.Screen          = (*TourScreen)(nil)
	_ screen.EscHandler      = (*TourScreen)(nil)
	_ screen.KeyHintProvider = (*TourScreen)(nil)
)

// New creates the overlay. journal and backdrop may be nil.
func New(ctl *tourctl.Controller, journal *Journal, backdrop Highlighter) *TourScreen {
	return &TourScreen{ctl: ctl, journal: journal, backdrop: backdrop}
}

// Init activates the tour from its first step.
func (s *TourScreen) Init() tea.Cmd {
	s.ctl.Activate()
	s.journal.Started(s.ctl)
	return nil
}

func (s *TourScreen) Title() string {
	return "Tour"
}

func (s *TourScreen) HandlesEsc() bool {
	return true
}

func (s *TourScreen) KeyHints() []layout.KeyHint {
	next := "Next"
	if s.ctl.IsLastStep() {
		next = "Finish"
	}
	hints := []layout.KeyHint{{Key: "→/Enter", Description: next}}
	if s.ctl.CurrentIndex() > 0 {
		hints = append(hints, layout.KeyHint{Key: "←", Description: "Back"})
	}
	return append(hints,
		layout.KeyHint{Key: "S", Description: "Skip tour"},
		layout.KeyHint{Key: "Esc", Description: "Close"},
	)
}

func (s *TourScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || s.closing {
		return s, nil
	}

	switch kmsg.String() {
	case "right", "l", "enter":
		s.ctl.Advance()
	case "left", "h":
		s.ctl.Retreat()
	case "s", "esc":
		if s.ctl.Active() {
			s.journal.Skipped(s.ctl)
			s.ctl.Skip()
		}
	}

	if s.ctl.Active() {
		return s, nil
	}
	s.closing = true
	return s, func() tea.Msg { return router.PopScreenMsg{} }
}
