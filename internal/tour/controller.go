// Package tour drives the guided product walkthrough: a linear walk over a
// fixed step catalog with completion tracking.
package tour

import (
	"math"

	"github.com/abhisek/hashboard/internal/notify"
)

const (
	CompletionTitle   = "Tutorial Complete!"
	CompletionMessage = "You've completed the hashboard tutorial. You're ready to manage your projects!"
)

// Notifier receives the completion notification. notify.Center satisfies it.
type Notifier interface {
	Emit(kind notify.Kind, title, message string)
}

// Controller walks a catalog of steps. It is not safe for concurrent use; the
// host serializes calls on its event loop.
type Controller struct {
	steps      []Step
	notifier   Notifier
	onComplete func()

	active    bool
	index     int
	completed map[string]struct{}
}

// New validates the catalog and returns an inactive controller. The catalog is
// copied so later changes by the caller do not leak in.
func New(steps []Step, notifier Notifier, onComplete func()) (*Controller, error) {
	if err := validateCatalog(steps); err != nil {
		return nil, err
	}
	cp := make([]Step, len(steps))
	copy(cp, steps)
	return &Controller{
		steps:      cp,
		notifier:   notifier,
		onComplete: onComplete,
		completed:  make(map[string]struct{}),
	}, nil
}

// Activate starts the tour from the first step with no completed steps.
// Activating a running tour restarts it.
func (c *Controller) Activate() {
	c.active = true
	c.index = 0
	c.completed = make(map[string]struct{})
}

// Deactivate closes the tour from the host side. It behaves like Skip.
func (c *Controller) Deactivate() {
	c.Skip()
}

// Advance marks the current step completed and moves forward. On the last
// step it completes the tour.
func (c *Controller) Advance() {
	if !c.active {
		return
	}
	if c.IsLastStep() {
		c.Complete()
		return
	}
	c.markCurrent()
	c.index++
}

// Retreat moves back one step. Steps already completed stay completed.
func (c *Controller) Retreat() {
	if !c.active || c.index == 0 {
		return
	}
	c.index--
}

// Complete marks the current step completed, emits the success notification,
// runs the completion callback and deactivates. No-op when inactive.
func (c *Controller) Complete() {
	if !c.active {
		return
	}
	c.markCurrent()
	c.active = false

	c.emitCompletion()
	if c.onComplete != nil {
		c.onComplete()
	}
}

// emitCompletion sends the completion notification. A panicking sink does
// not stop the completion from being reported to the host.
func (c *Controller) emitCompletion() {
	if c.notifier == nil {
		return
	}
	defer func() { _ = recover() }()
	c.notifier.Emit(notify.KindSuccess, CompletionTitle, CompletionMessage)
}

// Skip leaves the tour without completing it.
func (c *Controller) Skip() {
	c.active = false
}

func (c *Controller) markCurrent() {
	c.completed[c.steps[c.index].ID] = struct{}{}
}

// Active reports whether the tour is running.
func (c *Controller) Active() bool {
	return c.active
}

// CurrentIndex returns the position of the current step. It is meaningful
// only while active.
func (c *Controller) CurrentIndex() int {
	return c.index
}

// CurrentStep returns the step being shown, or false when inactive.
func (c *Controller) CurrentStep() (Step, bool) {
	if !c.active {
		return Step{}, false
	}
	return c.steps[c.index], true
}

// ProgressPercent is the rounded share of the catalog reached so far,
// counting the current step. Zero when inactive.
func (c *Controller) ProgressPercent() int {
	if !c.active {
		return 0
	}
	return int(math.Round(100 * float64(c.index+1) / float64(len(c.steps))))
}

// IsStepCompleted reports whether the step id has been passed in this activation.
func (c *Controller) IsStepCompleted(id string) bool {
	_, ok := c.completed[id]
	return ok
}

// IsLastStep reports whether the current step is the final one.
func (c *Controller) IsLastStep() bool {
	return c.index == len(c.steps)-1
}

// Completed returns the completed step ids in catalog order.
func (c *Controller) Completed() []string {
	ids := make([]string, 0, len(c.completed))
	for _, s := range c.steps {
		if _, ok := c.completed[s.ID]; ok {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// Len returns the number of steps in the catalog.
func (c *Controller) Len() int {
	return len(c.steps)
}

// Steps returns a copy of the catalog.
func (c *Controller) Steps() []Step {
	cp := make([]Step, len(c.steps))
	copy(cp, c.steps)
	return cp
}
