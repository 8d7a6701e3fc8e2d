package dashboard

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/hashboard/internal/agents"
	"github.com/abhisek/hashboard/internal/notify"
	"github.com/abhisek/hashboard/internal/project"
	"github.com/abhisek/hashboard/internal/quickactions"
	"github.com/abhisek/hashboard/internal/screens/notifications"
	"github.com/abhisek/hashboard/internal/ui/components"
	"github.com/abhisek/hashboard/internal/ui/layout"
	"github.com/abhisek/hashboard/internal/ui/theme"
)

// minCardWidth is the narrowest an agent card gets before wrapping to
// fewer columns.
const minCardWidth = 30

var simFrames = []string{"◐", "◓", "◑", "◒"}

func (d *DashboardScreen) View(width, height int) string {
	return d.render(width, height, "")
}

// ViewHighlighted renders the dashboard with the target panel emphasized and
// the others dimmed.
func (d *DashboardScreen) ViewHighlighted(width, height int, target string) string {
	return d.render(width, height, target)
}

func (d *DashboardScreen) render(width, height int, target string) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	var rows []string
	if !d.current.Configured {
		rows = append(rows, d.renderSetupWarning(width))
	}
	rows = append(rows, d.renderTopRow(width, target))

	if layout.IsCompactWidth(width) {
		rows = append(rows,
			d.panel(PanelDigitalTwin, "Digital Twin", d.renderTwin(width-4), width, target),
			d.panel(PanelQuickActions, "Quick Actions", d.renderActions(width-4), width, target),
			d.panel(PanelNotifications, "Smart Alerts", d.renderAlerts(width-4), width, target),
		)
	} else {
		leftW := width * 2 / 3
		rightW := width - leftW
		twin := d.panel(PanelDigitalTwin, "Digital Twin", d.renderTwin(leftW-4), leftW, target)
		right := lipgloss.JoinVertical(lipgloss.Left,
			d.panel(PanelQuickActions, "Quick Actions", d.renderActions(rightW-4), rightW, target),
			d.panel(PanelNotifications, "Smart Alerts", d.renderAlerts(rightW-4), rightW, target),
		)
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, twin, right))
	}

	rows = append(rows, d.panel(PanelAgentCards, "AI Agent Coordination", d.renderAgentCards(width-4), width, target))

	return lipgloss.NewStyle().MaxWidth(width).MaxHeight(height).Render(strings.Join(rows, "\n"))
}

// panel boxes body. With a tour target set, the target gets a thick accent
// border and everything else a dim one.
func (d *DashboardScreen) panel(name, title, body string, width int, target string) string {
	border := lipgloss.RoundedBorder()
	color := theme.Border
	titleStyle := theme.Subtitle
	switch {
	case target == name:
		border = lipgloss.ThickBorder()
		color = theme.Accent
	case target != "":
		color = theme.TextDim
		titleStyle = theme.Hint
	}
	return theme.Card.
		Width(width).
		Border(border).
		BorderForeground(color).
		Render(titleStyle.Render(title) + "\n" + body)
}

func (d *DashboardScreen) renderSetupWarning(width int) string {
	body := theme.Warn.Render("⚠ Project Setup Required") + "\n" +
		theme.Hint.Render("Configure your project settings to get personalized insights. Press S to set up.")
	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Warning).
		Padding(0, 1).
		Render(body)
}

// renderTopRow is the project header, the countdown and the agent metrics.
func (d *DashboardScreen) renderTopRow(width int, target string) string {
	p := d.current.Project
	header := theme.Title.Align(lipgloss.Left).Render(p.Name)
	if p.Description != "" {
		header += "\n" + theme.Hint.Render(p.Description)
	}

	cd := project.NewCountdown(p.DueDate, d.deps.Now())
	timer := d.renderCountdown(cd)
	status := d.renderStats()

	if layout.IsCompactWidth(width) {
		return lipgloss.JoinVertical(lipgloss.Left,
			d.panel(PanelHeader, "Project", header, width, target),
			d.panel(PanelTimer, "Timeline", timer, width, target),
			d.panel(PanelAgentsStatus, "Agents", status, width, target),
		)
	}

	third := width / 3
	return lipgloss.JoinHorizontal(lipgloss.Top,
		d.panel(PanelHeader, "Project", header, third, target),
		d.panel(PanelTimer, "Timeline", timer, third, target),
		d.panel(PanelAgentsStatus, "Agents", status, width-2*third, target),
	)
}

func (d *DashboardScreen) renderCountdown(cd project.Countdown) string {
	var line string
	switch {
	case cd.Overdue:
		line = theme.Bad.Render("Overdue")
	case cd.Urgent:
		line = theme.Warn.Render(fmt.Sprintf("⏱ %d days left", cd.Days))
	default:
		line = theme.Good.Render(fmt.Sprintf("⏱ %d days left", cd.Days))
	}
	return line + "\n" + theme.Hint.Render("Due "+cd.Due.Local().Format("Jan 2, 2006"))
}

func (d *DashboardScreen) renderStats() string {
	st := d.deps.Roster.Stats()
	done := d.summary.ByStatus[project.StatusCompleted]
	return fmt.Sprintf("%s %d/%d   %s %d\n%s %d%%   %s %d/%d",
		theme.Hint.Render("Active"), st.Active, st.Total,
		theme.Hint.Render("Alerts"), st.Alerts,
		theme.Hint.Render("Perf"), st.AvgPerformance,
		theme.Hint.Render("Tasks"), done, d.summary.Total,
	)
}

func (d *DashboardScreen) renderTwin(width int) string {
	nameW := 0
	for _, t := range d.summary.Order {
		nameW = max(nameW, lipgloss.Width(t.Name))
	}
	barW := max(width-nameW-20, 8)

	var b strings.Builder
	for _, t := range d.summary.Order {
		icon := statusStyle(t.Status).Render(statusIcon(t.Status))
		if d.simRunning && t.Status == project.StatusInProgress {
			icon = statusStyle(t.Status).Render(simFrames[d.simFrame%len(simFrames)])
		}
		name := theme.Body.Render(t.Name + strings.Repeat(" ", nameW-lipgloss.Width(t.Name)))
		bar := components.NewProgressBar("", float64(t.Completion), true, barW).View()
		line := icon + " " + name + "  " + bar
		if d.blocked[t.ID] {
			line += " " + theme.Hint.Render("⧗")
		}
		b.WriteString(line + "\n")
	}

	sim := theme.Hint.Render("Simulation: Paused")
	if d.simRunning {
		sim = theme.Good.Render("Simulation: Running")
	}
	b.WriteString(fmt.Sprintf("\n%s   %s", theme.Hint.Render(fmt.Sprintf("Overall %d%%", d.summary.Completion)), sim))
	return b.String()
}

func statusIcon(s project.Status) string {
	switch s {
	case project.StatusCompleted:
		return "●"
	case project.StatusInProgress:
		return "◐"
	case project.StatusAtRisk:
		return "▲"
	default:
		return "○"
	}
}

func statusStyle(s project.Status) lipgloss.Style {
	switch s {
	case project.StatusCompleted:
		return theme.Good
	case project.StatusInProgress:
		return lipgloss.NewStyle().Foreground(theme.Primary)
	case project.StatusAtRisk:
		return theme.Bad
	default:
		return theme.Hint
	}
}

func (d *DashboardScreen) renderActions(width int) string {
	actions := d.deps.Board.Actions()
	for i, a := range actions {
		if i >= len(d.menu.Items) {
			break
		}
		switch a.Status {
		case quickactions.StatusLoading:
			d.menu.Items[i].Hint = fmt.Sprintf("%d%%", int(a.Progress))
		case quickactions.StatusSuccess:
			d.menu.Items[i].Hint = "✓"
		default:
			d.menu.Items[i].Hint = ""
		}
	}

	var b strings.Builder
	b.WriteString(d.menu.View())

	if d.menu.Selected >= 0 && d.menu.Selected < len(actions) {
		a := actions[d.menu.Selected]
		switch a.Status {
		case quickactions.StatusLoading:
			b.WriteString(components.NewProgressBar("", a.Progress, true, width).View())
		case quickactions.StatusSuccess:
			b.WriteString(theme.Good.Width(width).Render(a.Result))
		default:
			b.WriteString(theme.Hint.Width(width).Render(a.Description))
		}
	}
	return b.String()
}

func (d *DashboardScreen) renderAlerts(width int) string {
	recent := d.deps.Center.Recent(RecentAlerts)
	if len(recent) == 0 {
		return theme.Hint.Render("No notifications")
	}
	now := d.deps.Now()
	lines := make([]string, 0, len(recent)+1)
	for _, n := range recent {
		title := n.Title
		if !n.Read {
			title = "• " + title
		}
		line := alertStyle(n.Kind).Render(n.Kind.Icon()+" "+title) + "  " +
			theme.Hint.Render(notifications.Ago(now, n.Timestamp))
		lines = append(lines, line, theme.Body.MaxWidth(width).Render(n.Message))
	}
	if unread := d.deps.Center.UnreadCount(); unread > 0 {
		lines = append(lines, theme.Hint.Render(fmt.Sprintf("%d unread · N to view all", unread)))
	}
	return strings.Join(lines, "\n")
}

func alertStyle(k notify.Kind) lipgloss.Style {
	switch k {
	case notify.KindSuccess:
		return theme.Good
	case notify.KindError:
		return theme.Bad
	case notify.KindWarning:
		return theme.Warn
	default:
		return lipgloss.NewStyle().Foreground(theme.Primary)
	}
}

func (d *DashboardScreen) renderAgentCards(width int) string {
	all := d.deps.Roster.All()
	perRow := min(max(width/minCardWidth, 1), len(all))
	if perRow == 0 {
		return theme.Hint.Render("No agents")
	}
	cardW := width / perRow

	var rows []string
	for start := 0; start < len(all); start += perRow {
		end := min(start+perRow, len(all))
		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cards = append(cards, renderAgentCard(all[i], cardW, i == d.agent))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(rows, "\n")
}

func renderAgentCard(a agents.Agent, width int, selected bool) string {
	border := theme.Border
	if selected {
		border = theme.Primary
	}
	inner := max(width-4, 10)
	perf := components.NewProgressBar("", float64(a.Performance), true, inner).View()

	body := strings.Join([]string{
		theme.Body.Bold(true).Render(a.Name),
		agentStatusStyle(a.Status).Render(string(a.Status)) + "  " + theme.Hint.Render(fmt.Sprintf("%d alerts", a.Alerts)),
		perf,
		theme.Hint.Width(inner).Render(a.LastAction),
		theme.Hint.Render(fmt.Sprintf("%d tasks · %d%% acc · %s", a.Metrics.TasksProcessed, a.Metrics.Accuracy, a.Metrics.AvgResponseTime)),
	}, "\n")

	return theme.Card.
		Width(width).
		BorderForeground(border).
		Render(body)
}

func agentStatusStyle(s agents.Status) lipgloss.Style {
	switch s {
	case agents.StatusActive:
		return theme.Good
	case agents.StatusProcessing:
		return lipgloss.NewStyle().Foreground(theme.Primary)
	case agents.StatusError:
		return theme.Bad
	default:
		return theme.Hint
	}
}
