package tour

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCatalog  = errors.New("tour catalog is empty")
	ErrInvalidStep   = errors.New("invalid tour step")
	ErrDuplicateStep = errors.New("duplicate tour step id")
)

// Position is a placement hint for the step card relative to its target.
type Position string

const (
	PositionTop    Position = "top"
	PositionBottom Position = "bottom"
	PositionLeft   Position = "left"
	PositionRight  Position = "right"
)

// Valid reports whether p is a known position.
func (p Position) Valid() bool {
	switch p {
	case PositionTop, PositionBottom, PositionLeft, PositionRight:
		return true
	}
	return false
}

// Action hints at what the user should do with the target.
type Action string

const (
	ActionNone  Action = "none"
	ActionClick Action = "click"
	ActionHover Action = "hover"
)

// Valid reports whether a is a known action. The empty action means none.
func (a Action) Valid() bool {
	switch a {
	case "", ActionNone, ActionClick, ActionHover:
		return true
	}
	return false
}

// Prompt returns the instruction shown for actions that need one.
func (a Action) Prompt() string {
	switch a {
	case ActionClick:
		return "Select the highlighted panel"
	case ActionHover:
		return "Move to the highlighted panel"
	default:
		return ""
	}
}

// Step is one entry of the tour catalog. Target, Position and Action are
// forwarded to the renderer untouched.
type Step struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Target      string   `yaml:"target"`
	Position    Position `yaml:"position"`
	Action      Action   `yaml:"action,omitempty"`
}

// ShortTitle is the first word of the title, used by step indicators.
func (s Step) ShortTitle() string {
	for i, r := range s.Title {
		if r == ' ' {
			return s.Title[:i]
		}
	}
	return s.Title
}

// validateCatalog checks the catalog invariants: non-empty, every step has an
// id, ids are unique and enum hints are known values.
func validateCatalog(steps []Step) error {
	if len(steps) == 0 {
		return ErrEmptyCatalog
	}
	seen := make(map[string]int, len(steps))
	for i, s := range steps {
		if s.ID == "" {
			return fmt.Errorf("%w: step %d has no id", ErrInvalidStep, i)
		}
		if prev, ok := seen[s.ID]; ok {
			return fmt.Errorf("%w: %q at %d and %d", ErrDuplicateStep, s.ID, prev, i)
		}
		seen[s.ID] = i
		if s.Position != "" && !s.Position.Valid() {
			return fmt.Errorf("%w: step %q has position %q", ErrInvalidStep, s.ID, s.Position)
		}
		if !s.Action.Valid() {
			return fmt.Errorf("%w: step %q has action %q", ErrInvalidStep, s.ID, s.Action)
		}
	}
	return nil
}
