// Package settings is the settings form: project configuration, team
// management and appearance.
package settings

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hashboard/internal/screen"
	cfg "github.com/abhisek/hashboard/internal/settings"
	"github.com/abhisek/hashboard/internal/ui/components"
	"github.com/abhisek/hashboard/internal/ui/layout"
)

// DateLayout is the due date input format.
const DateLayout = "2006-01-02"

// SavedMsg carries the settings after a successful save. Every screen on the
// stack receives it.
type SavedMsg struct {
	Settings cfg.Settings
}

func (SavedMsg) Broadcast() {}

type saveFailedMsg struct {
	Err error
}

type field int

const (
	fieldName field = iota
	fieldDescription
	fieldDueDate
	fieldBudget
	fieldPriority
	fieldSaveProject
	fieldEmail
	fieldNewMember
	fieldMembers
	fieldSaveTeam
	fieldTheme
	fieldCount
)

type section int

const (
	sectionProject section = iota
	sectionTeam
	sectionAppearance
)

func (f field) section() section {
	switch {
	case f <= fieldSaveProject:
		return sectionProject
	case f <= fieldSaveTeam:
		return sectionTeam
	default:
		return sectionAppearance
	}
}

// SettingsScreen edits and saves settings.
type SettingsScreen struct {
	svc     *cfg.Service
	current cfg.Settings

	inputs   map[field]*components.TextInput
	priority cfg.Priority
	members  []string
	member   int // selected member
	focus    field

	saving bool
	status string
	errMsg string
}

var (
	_ screen.Screen          = (*SettingsScreen)(nil)
	_ screen.KeyHintProvider = (*SettingsScreen)(nil)
)

// New creates the form prefilled from current.
func New(svc *cfg.Service, current cfg.Settings) *SettingsScreen {
	s := &SettingsScreen{
		svc:      svc,
		current:  current,
		priority: current.Project.Priority,
		members:  append([]string(nil), current.Team.Members...),
	}

	name := components.NewTextInput("Project Name", "Digital Twin Project", false, 120)
	desc := components.NewTextInput("Description", "What is this project about?", false, 500)
	due := components.NewTextInput("Due Date", DateLayout, false, len(DateLayout))
	budget := components.NewTextInput("Budget ($)", "50000", true, 15)
	email := components.NewTextInput("Your Email", "you@example.com", false, 254)
	member := components.NewTextInput("Add Team Member", "teammate@example.com", false, 254)

	name.SetValue(current.Project.Name)
	desc.SetValue(current.Project.Description)
	if current.Project.DueDate != nil {
		due.SetValue(current.Project.DueDate.Local().Format(DateLayout))
	}
	budget.SetValue(strconv.FormatFloat(current.Project.Budget, 'f', -1, 64))
	email.SetValue(current.Team.UserEmail)

	s.inputs = map[field]*components.TextInput{
		fieldName:        &name,
		fieldDescription: &desc,
		fieldDueDate:     &due,
		fieldBudget:      &budget,
		fieldEmail:       &email,
		fieldNewMember:   &member,
	}
	return s
}

func (s *SettingsScreen) Init() tea.Cmd {
	return s.setFocus(fieldName)
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab/↑↓", Description: "Move"}}
	switch s.focus {
	case fieldPriority:
		hints = append(hints, layout.KeyHint{Key: "Enter/←→", Description: "Change priority"})
	case fieldSaveProject, fieldSaveTeam:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Save"})
	case fieldNewMember:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Add member"})
	case fieldMembers:
		hints = append(hints,
			layout.KeyHint{Key: "←→", Description: "Select"},
			layout.KeyHint{Key: "X", Description: "Remove"},
		)
	case fieldTheme:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Toggle theme"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case SavedMsg:
		s.saving = false
		s.current = msg.Settings
		s.errMsg = ""
		s.status = "Saved."
		return s, nil

	case saveFailedMsg:
		s.saving = false
		s.status = ""
		s.errMsg = msg.Err.Error()
		if errors.Is(msg.Err, cfg.ErrInvalidSettings) {
			s.errMsg = strings.TrimPrefix(s.errMsg, cfg.ErrInvalidSettings.Error()+": ")
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Cursor blink and other input internals.
	if in, ok := s.inputs[s.focus]; ok {
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SettingsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	switch key {
	case "tab", "down":
		return s, s.setFocus((s.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
	}

	switch s.focus {
	case fieldPriority:
		switch key {
		case "enter", "right", "l", "space":
			s.priority = s.priority.Next()
		case "left", "h":
			s.priority = s.priority.Next().Next()
		}
		return s, nil

	case fieldSaveProject:
		_, cmd := components.NewButton("", true, s.saveProject).Update(msg)
		return s, cmd

	case fieldSaveTeam:
		_, cmd := components.NewButton("", true, s.saveTeam).Update(msg)
		return s, cmd

	case fieldTheme:
		_, cmd := components.NewButton("", true, s.toggleTheme).Update(msg)
		return s, cmd

	case fieldMembers:
		switch key {
		case "left", "h":
			if s.member > 0 {
				s.member--
			}
		case "right", "l":
			if s.member < len(s.members)-1 {
				s.member++
			}
		case "x", "delete", "backspace":
			if s.member < len(s.members) {
				s.members = cfg.RemoveMember(s.members, s.members[s.member])
				s.member = max(min(s.member, len(s.members)-1), 0)
			}
		}
		return s, nil

	case fieldNewMember:
		if key == "enter" {
			s.addMember()
			return s, nil
		}
	}

	in, ok := s.inputs[s.focus]
	if !ok {
		return s, nil
	}
	if key == "enter" {
		return s, s.setFocus(s.focus + 1)
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return s, cmd
}

func (s *SettingsScreen) setFocus(f field) tea.Cmd {
	if in, ok := s.inputs[s.focus]; ok {
		in.Blur()
	}
	s.focus = f
	if in, ok := s.inputs[f]; ok {
		return in.Focus()
	}
	return nil
}

func (s *SettingsScreen) addMember() {
	in := s.inputs[fieldNewMember]
	email := in.Value()
	if email == "" {
		return
	}
	if err := cfg.ValidateEmail(email); err != nil {
		in.Submit(false)
		s.errMsg = email + " is not a valid email address"
		return
	}
	s.members = cfg.AddMember(s.members, email)
	in.SetValue("")
	s.errMsg = ""
}

// projectFromForm parses the project inputs.
func (s *SettingsScreen) projectFromForm() (cfg.Project, error) {
	p := cfg.Project{
		Name:        s.inputs[fieldName].Value(),
		Description: s.inputs[fieldDescription].Value(),
		Priority:    s.priority,
	}

	budget, err := s.inputs[fieldBudget].NumericValue()
	if err != nil {
		s.inputs[fieldBudget].Submit(false)
		return cfg.Project{}, errors.New("budget must be a number")
	}
	p.Budget = budget

	if raw := s.inputs[fieldDueDate].Value(); raw != "" {
		due, err := time.ParseInLocation(DateLayout, raw, time.Local)
		if err != nil {
			s.inputs[fieldDueDate].Submit(false)
			return cfg.Project{}, errors.New("due date must look like " + DateLayout)
		}
		p.DueDate = &due
	}
	return p, nil
}

func (s *SettingsScreen) saveProject() tea.Cmd {
	p, err := s.projectFromForm()
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return s.save(func(ctx context.Context) error {
		return s.svc.SaveProject(ctx, p)
	})
}

func (s *SettingsScreen) saveTeam() tea.Cmd {
	team := cfg.Team{
		UserEmail: s.inputs[fieldEmail].Value(),
		Members:   append([]string(nil), s.members...),
	}
	return s.save(func(ctx context.Context) error {
		return s.svc.SaveTeam(ctx, team)
	})
}

func (s *SettingsScreen) toggleTheme() tea.Cmd {
	next := s.current.Theme.Toggle()
	return s.save(func(ctx context.Context) error {
		return s.svc.SaveTheme(ctx, next)
	})
}

// save runs fn off the event loop and reloads the settings on success.
func (s *SettingsScreen) save(fn func(ctx context.Context) error) tea.Cmd {
	if s.saving {
		return nil
	}
	s.saving = true
	s.status = "Saving..."
	s.errMsg = ""
	svc := s.svc
	return func() tea.Msg {
		ctx := context.Background()
		if err := fn(ctx); err != nil {
			return saveFailedMsg{Err: err}
		}
		st, err := svc.Load(ctx)
		if err != nil {
			return saveFailedMsg{Err: err}
		}
		return SavedMsg{Settings: st}
	}
}
