// Package quickactions simulates the dashboard's long-running quick actions.
// Each action walks idle → loading → success → idle; progress advances by a
// random increment per tick, driven by the host.
package quickactions

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/abhisek/hashboard/internal/notify"
)

var ErrUnknownAction = errors.New("unknown quick action")

// TickInterval is how often the host should call Tick for a loading action.
const TickInterval = 150 * time.Millisecond

// ResetAfter is how long a finished action shows its result.
const ResetAfter = 5 * time.Second

// MaxIncrement bounds the progress added by one tick.
const MaxIncrement = 20.0

// Status is an action's state.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
)

// Action is one quick action and its current state.
type Action struct {
	ID          string
	Title       string
	Description string
	Status      Status
	Progress    float64 // percent while loading
	Result      string  // set once succeeded

	outcome string
}

// DefaultActions returns the four built-in actions, all idle.
func DefaultActions() []Action {
	return []Action{
		{
			ID: "performance", Title: "Generate Performance Report",
			Description: "AI analysis of current project metrics",
			outcome:     "Project is 15% ahead of schedule with 94% task completion rate",
		},
		{
			ID: "risks", Title: "Risk Assessment",
			Description: "Identify potential project bottlenecks",
			outcome:     "Found 2 potential bottlenecks in task dependencies - auto-optimized",
		},
		{
			ID: "timeline", Title: "Optimize Timeline",
			Description: "AI-powered schedule optimization",
			outcome:     "Timeline optimized - 3 days saved through parallel task execution",
		},
		{
			ID: "export", Title: "Export Dashboard",
			Description: "Download comprehensive project data",
			outcome:     "Dashboard data exported successfully (PDF + JSON formats)",
		},
	}
}

// Board holds the actions' state.
type Board struct {
	actions  []Action
	rng      *rand.Rand
	notifier notify.Emitter
}

// NewBoard creates a board over the default actions. rng must not be nil;
// notifier may be.
func NewBoard(rng *rand.Rand, notifier notify.Emitter) *Board {
	actions := DefaultActions()
	for i := range actions {
		actions[i].Status = StatusIdle
	}
	return &Board{actions: actions, rng: rng, notifier: notifier}
}

// NewSeededRNG returns a generator seeded from seed, or from the clock when
// seed is zero.
func NewSeededRNG(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

// Actions returns a copy of the actions in display order.
func (b *Board) Actions() []Action {
	return slices.Clone(b.actions)
}

// Get returns one action.
func (b *Board) Get(id string) (Action, error) {
	i, err := b.index(id)
	if err != nil {
		return Action{}, err
	}
	return b.actions[i], nil
}

// Start moves an action to loading at 0%. It reports false when the action
// is already loading.
func (b *Board) Start(id string) (bool, error) {
	i, err := b.index(id)
	if err != nil {
		return false, err
	}
	a := &b.actions[i]
	if a.Status == StatusLoading {
		return false, nil
	}
	a.Status = StatusLoading
	a.Progress = 0
	a.Result = ""
	return true, nil
}

// Tick advances a loading action. When progress reaches 100 the action
// succeeds, its result is set and a success notification is emitted. Ticks
// on actions that are not loading do nothing.
func (b *Board) Tick(id string) (Status, error) {
	i, err := b.index(id)
	if err != nil {
		return "", err
	}
	a := &b.actions[i]
	if a.Status != StatusLoading {
		return a.Status, nil
	}

	a.Progress += b.rng.Float64() * MaxIncrement
	if a.Progress < 100 {
		return a.Status, nil
	}

	a.Progress = 100
	a.Status = StatusSuccess
	a.Result = a.outcome
	if b.notifier != nil {
		b.notifier.Emit(notify.KindSuccess, "", fmt.Sprintf("%s completed successfully!", a.Title))
	}
	return a.Status, nil
}

// Reset returns an action to idle and clears its progress and result.
func (b *Board) Reset(id string) error {
	i, err := b.index(id)
	if err != nil {
		return err
	}
	a := &b.actions[i]
	a.Status = StatusIdle
	a.Progress = 0
	a.Result = ""
	return nil
}

// IDAt returns the id of the action at a 1-based display position.
func (b *Board) IDAt(pos int) (string, bool) {
	if pos < 1 || pos > len(b.actions) {
		return "", false
	}
	return b.actions[pos-1].ID, true
}

func (b *Board) index(id string) (int, error) {
	i := slices.IndexFunc(b.actions, func(a Action) bool { return a.ID == id })
	if i < 0 {
		return -1, fmt.Errorf("%w: %q", ErrUnknownAction, id)
	}
	return i, nil
}
