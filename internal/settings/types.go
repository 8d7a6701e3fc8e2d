package settings

import (
	"fmt"
	"time"
)

// Priority ranks the project.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// AllPriorities returns priorities in display order.
func AllPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// Next cycles low → medium → high → low.
func (p Priority) Next() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	default:
		return PriorityLow
	}
}

// Label returns the form label for the priority.
func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "Low Priority"
	case PriorityMedium:
		return "Medium Priority"
	case PriorityHigh:
		return "High Priority"
	default:
		return string(p)
	}
}

// Theme is the color scheme preference.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme converts a string into a Theme.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeDark, ThemeLight:
		return Theme(s), nil
	}
	return "", fmt.Errorf("%w: unknown theme %q", ErrInvalidSettings, s)
}

// Toggle flips between dark and light.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// Label is the capitalized theme name.
func (t Theme) Label() string {
	if t == ThemeLight {
		return "Light"
	}
	return "Dark"
}

// Project holds the project configuration form.
type Project struct {
	Name        string
	Description string
	DueDate     *time.Time
	Budget      float64
	Priority    Priority
}

// Team holds the team management form.
type Team struct {
	UserEmail string
	Members   []string
}

// Settings is everything the settings screen edits.
type Settings struct {
	Project Project
	Team    Team
	Theme   Theme

	// Configured is set once project settings have been saved.
	Configured bool
}

// Defaults returns the settings used before anything is saved.
func Defaults() Settings {
	return Settings{
		Project: Project{
			Name:        "Digital Twin Project",
			Description: "AI-powered project management system",
			Budget:      50000,
			Priority:    PriorityHigh,
		},
		Theme: ThemeDark,
	}
}

// document is the persisted form of the project settings key.
type document struct {
	ProjectName string     `json:"projectName"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Budget      float64    `json:"budget"`
	Priority    Priority   `json:"priority"`
	TeamMembers []string   `json:"teamMembers"`
}

func documentFrom(p Project, members []string) document {
	if members == nil {
		members = []string{}
	}
	return document{
		ProjectName: p.Name,
		Description: p.Description,
		DueDate:     p.DueDate,
		Budget:      p.Budget,
		Priority:    p.Priority,
		TeamMembers: members,
	}
}

func (d document) project() Project {
	return Project{
		Name:        d.ProjectName,
		Description: d.Description,
		DueDate:     d.DueDate,
		Budget:      d.Budget,
		Priority:    d.Priority,
	}
}
