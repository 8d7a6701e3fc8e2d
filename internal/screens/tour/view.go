package tour

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	tourctl "github.com/abhisek/hashboard/internal/tour"
	"github.com/abhisek/hashboard/internal/ui/components"
	"github.com/abhisek/hashboard/internal/ui/theme"
)

const cardWidth = 52

func (s *TourScreen) View(width, height int) string {
	step, ok := s.ctl.CurrentStep()
	if !ok {
		return ""
	}

	card := s.renderCard(step)
	cardW, cardH := lipgloss.Width(card), lipgloss.Height(card)

	switch step.Position {
	case tourctl.PositionLeft, tourctl.PositionRight:
		backdrop := s.renderBackdrop(max(width-cardW-1, 0), height, step.Target)
		if step.Position == tourctl.PositionLeft {
			return lipgloss.JoinHorizontal(lipgloss.Top, card, " ", backdrop)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, backdrop, " ", card)
	case tourctl.PositionTop:
		backdrop := s.renderBackdrop(width, max(height-cardH, 0), step.Target)
		return lipgloss.JoinVertical(lipgloss.Left, card, backdrop)
	default:
		backdrop := s.renderBackdrop(width, max(height-cardH, 0), step.Target)
		return lipgloss.JoinVertical(lipgloss.Left, backdrop, card)
	}
}

func (s *TourScreen) renderBackdrop(width, height int, target string) string {
	if s.backdrop == nil || width == 0 || height == 0 {
		return ""
	}
	return s.backdrop.ViewHighlighted(width, height, target)
}

func (s *TourScreen) renderCard(step tourctl.Step) string {
	var b strings.Builder

	counter := fmt.Sprintf("Step %d of %d", s.ctl.CurrentIndex()+1, s.ctl.Len())
	b.WriteString(theme.Hint.Render(counter) + "\n")
	b.WriteString(components.NewProgressBar("", float64(s.ctl.ProgressPercent()), true, cardWidth-4).View() + "\n\n")

	b.WriteString(theme.Selected.Render(step.Title) + "\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cardWidth - 4).Render(step.Description))
	if prompt := step.Action.Prompt(); prompt != "" {
		b.WriteString("\n\n" + theme.Warn.Render("➜ "+prompt))
	}
	b.WriteString("\n\n" + s.renderDots())

	return lipgloss.NewStyle().
		Width(cardWidth).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1).
		Render(b.String())
}

// renderDots draws one marker per step: current, completed or pending.
func (s *TourScreen) renderDots() string {
	steps := s.ctl.Steps()
	dots := make([]string, len(steps))
	for i, st := range steps {
		switch {
		case i == s.ctl.CurrentIndex():
			dots[i] = theme.Selected.Render("◉")
		case s.ctl.IsStepCompleted(st.ID):
			dots[i] = theme.Good.Render("●")
		default:
			dots[i] = theme.Hint.Render("○")
		}
	}
	return strings.Join(dots, " ")
}
