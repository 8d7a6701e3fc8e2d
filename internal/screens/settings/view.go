package settings

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	cfg "github.com/abhisek/hashboard/internal/settings"
	"github.com/abhisek/hashboard/internal/ui/components"
	"github.com/abhisek/hashboard/internal/ui/layout"
	"github.com/abhisek/hashboard/internal/ui/theme"
)

var sectionTitles = map[section]string{
	sectionProject:    "Project Configuration",
	sectionTeam:       "Team Management",
	sectionAppearance: "Appearance",
}

func (s *SettingsScreen) View(width, height int) string {
	var body string
	if layout.IsCompactWidth(width) {
		body = s.renderTabs() + "\n\n" + s.renderSection(s.focus.section(), width-4)
	} else {
		colWidth := (width - 6) / 2
		left := s.renderSection(sectionProject, colWidth)
		right := s.renderSection(sectionTeam, colWidth) + "\n\n" + s.renderSection(sectionAppearance, colWidth)
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(colWidth).Render(left),
			"  ",
			lipgloss.NewStyle().Width(colWidth).Render(right),
		)
	}

	status := ""
	switch {
	case s.errMsg != "":
		status = theme.Bad.Render("✗ " + s.errMsg)
	case s.status != "":
		status = theme.Good.Render(s.status)
	}

	return lipgloss.NewStyle().Padding(0, 2).Render(body + "\n\n" + status)
}

func (s *SettingsScreen) renderTabs() string {
	current := s.focus.section()
	parts := make([]string, 0, len(sectionTitles))
	for _, sec := range []section{sectionProject, sectionTeam, sectionAppearance} {
		if sec == current {
			parts = append(parts, theme.Selected.Render("▸ "+sectionTitles[sec]))
		} else {
			parts = append(parts, theme.Hint.Render(sectionTitles[sec]))
		}
	}
	return strings.Join(parts, "   ")
}

func (s *SettingsScreen) renderSection(sec section, width int) string {
	var rows []string
	rows = append(rows, theme.Title.Align(lipgloss.Left).Render(sectionTitles[sec]), "")

	switch sec {
	case sectionProject:
		for _, f := range []field{fieldName, fieldDescription, fieldDueDate, fieldBudget} {
			rows = append(rows, s.inputs[f].View())
		}
		rows = append(rows, s.renderPriority(), "", s.button(fieldSaveProject, "Save Project Settings").View())

	case sectionTeam:
		rows = append(rows,
			s.inputs[fieldEmail].View(),
			s.inputs[fieldNewMember].View(),
			s.renderMembers(width),
			"",
			s.button(fieldSaveTeam, "Save Team Settings").View(),
		)

	case sectionAppearance:
		label := fmt.Sprintf("Theme: %s", s.current.Theme.Label())
		toggle := "Switch to " + s.current.Theme.Toggle().Label()
		rows = append(rows, theme.Body.Render(label), s.button(fieldTheme, toggle).View())
	}
	return strings.Join(rows, "\n")
}

func (s *SettingsScreen) renderPriority() string {
	label := theme.Hint.Render("Priority")
	if s.focus == fieldPriority {
		label = theme.Selected.Render("Priority")
	}
	style := theme.Body
	switch s.priority {
	case cfg.PriorityHigh:
		style = theme.Bad
	case cfg.PriorityMedium:
		style = theme.Warn
	}
	return label + "\n" + "◂ " + style.Render(s.priority.Label()) + " ▸"
}

func (s *SettingsScreen) renderMembers(width int) string {
	label := theme.Hint.Render(fmt.Sprintf("Team Members (%d)", len(s.members)))
	if s.focus == fieldMembers {
		label = theme.Selected.Render(fmt.Sprintf("Team Members (%d)", len(s.members)))
	}
	if len(s.members) == 0 {
		return label + "\n" + theme.Hint.Render("No team members yet")
	}

	chips := make([]string, len(s.members))
	for i, m := range s.members {
		style := lipgloss.NewStyle().
			Foreground(theme.Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1)
		if s.focus == fieldMembers && i == s.member {
			style = style.BorderForeground(theme.Primary).Foreground(theme.Primary)
		}
		chips[i] = style.Render(m + " ×")
	}
	return label + "\n" + lipgloss.NewStyle().MaxWidth(width).Render(lipgloss.JoinHorizontal(lipgloss.Top, chips...))
}

func (s *SettingsScreen) button(f field, label string) components.Button {
	if s.saving && s.focus == f {
		label = "Saving..."
	}
	return components.NewButton(label, s.focus == f, nil)
}
