package dashboard

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hashboard/internal/quickactions"
)

// SimInterval is how often the running simulation animates.
const SimInterval = 500 * time.Millisecond

// actionTickMsg advances a loading quick action. Run identifies the start it
// belongs to so ticks from an earlier run are dropped.
type actionTickMsg struct {
	ID  string
	Run int
}

// actionResetMsg returns a finished quick action to idle.
type actionResetMsg struct {
	ID  string
	Run int
}

type simTickMsg struct {
	Gen int
}

// Timers keep running while another screen covers the dashboard.
func (actionTickMsg) Broadcast()  {}
func (actionResetMsg) Broadcast() {}
func (simTickMsg) Broadcast()     {}

func tickAction(id string, run int) tea.Cmd {
	return tea.Tick(quickactions.TickInterval, func(time.Time) tea.Msg {
		return actionTickMsg{ID: id, Run: run}
	})
}

func resetAction(id string, run int) tea.Cmd {
	return tea.Tick(quickactions.ResetAfter, func(time.Time) tea.Msg {
		return actionResetMsg{ID: id, Run: run}
	})
}

func tickSim(gen int) tea.Cmd {
	return tea.Tick(SimInterval, func(time.Time) tea.Msg {
		return simTickMsg{Gen: gen}
	})
}
