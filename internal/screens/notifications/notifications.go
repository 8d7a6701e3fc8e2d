// Package notifications is the notification feed: the live center plus the
// persisted history.
package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hashboard/internal/notify"
	"github.com/abhisek/hashboard/internal/screen"
	"github.com/abhisek/hashboard/internal/store"
	"github.com/abhisek/hashboard/internal/ui/layout"
	"github.com/abhisek/hashboard/internal/ui/theme"
)

// HistoryLimit caps how many persisted notifications the history tab loads.
const HistoryLimit = 100

// HistorySource is the slice of store.EventRepo the history tab reads.
type HistorySource interface {
	QueryNotificationEvents(ctx context.Context, opts store.QueryOpts) ([]store.NotificationEventRecord, error)
}

type historyLoadedMsg struct {
	Events []store.NotificationEventRecord
	Err    error
}

type tab int

const (
	tabLive tab = iota
	tabHistory
)

// NotificationsScreen lists notifications.
type NotificationsScreen struct {
	center   *notify.Center
	history  HistorySource
	now      func() time.Time
	tab      tab
	selected int
	events   []store.NotificationEventRecord
	loaded   bool
	errMsg   string
}

var (
	_ screen.Screen          = (*NotificationsScreen)(nil)
	_ screen.KeyHintProvider = (*NotificationsScreen)(nil)
)

// New creates the feed. history may be nil, which hides the history tab.
func New(center *notify.Center, history HistorySource) *NotificationsScreen {
	return &NotificationsScreen{center: center, history: history, now: time.Now}
}

func (s *NotificationsScreen) Init() tea.Cmd {
	return nil
}

func (s *NotificationsScreen) loadHistory() tea.Cmd {
	src := s.history
	return func() tea.Msg {
		events, err := src.QueryNotificationEvents(context.Background(), store.QueryOpts{Limit: HistoryLimit})
		return historyLoadedMsg{Events: events, Err: err}
	}
}

func (s *NotificationsScreen) Title() string {
	return "Notifications"
}

func (s *NotificationsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Navigate"}}
	if s.tab == tabLive {
		hints = append(hints,
			layout.KeyHint{Key: "Enter", Description: "Mark read"},
			layout.KeyHint{Key: "A", Description: "Mark all read"},
			layout.KeyHint{Key: "D", Description: "Dismiss"},
		)
	}
	if s.history != nil {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Live/History"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *NotificationsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		s.errMsg = ""
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.events = msg.Events
		}
		s.clamp()
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *NotificationsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	s.clamp()
	switch msg.String() {
	case "tab":
		if s.history == nil {
			return s, nil
		}
		s.selected = 0
		if s.tab == tabLive {
			s.tab = tabHistory
			s.loaded = false
			return s, s.loadHistory()
		}
		s.tab = tabLive
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < s.count()-1 {
			s.selected++
		}
	}

	if s.tab != tabLive {
		return s, nil
	}
	items := s.center.List()
	switch msg.String() {
	case "enter":
		if s.selected < len(items) {
			s.center.MarkRead(items[s.selected].ID)
		}
	case "a":
		s.center.MarkAllRead()
	case "d", "x", "delete":
		if s.selected < len(items) {
			s.center.Remove(items[s.selected].ID)
			s.clamp()
		}
	}
	return s, nil
}

func (s *NotificationsScreen) count() int {
	if s.tab == tabHistory {
		return len(s.events)
	}
	return s.center.Len()
}

// clamp keeps the cursor in range; the center drops expired entries between
// key presses.
func (s *NotificationsScreen) clamp() {
	if n := s.count(); s.selected >= n {
		s.selected = max(n-1, 0)
	}
}

func (s *NotificationsScreen) View(width, height int) string {
	s.clamp()

	var b strings.Builder
	b.WriteString(s.renderTabs() + "\n\n")

	if s.tab == tabHistory {
		b.WriteString(s.renderHistory(width))
	} else {
		b.WriteString(s.renderLive(width))
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}

func (s *NotificationsScreen) renderTabs() string {
	live := fmt.Sprintf("Live (%d unread)", s.center.UnreadCount())
	if s.history == nil {
		return theme.Selected.Render(live)
	}
	hist := "History"
	if s.tab == tabLive {
		return theme.Selected.Render("▸ "+live) + "   " + theme.Hint.Render(hist)
	}
	return theme.Hint.Render(live) + "   " + theme.Selected.Render("▸ "+hist)
}

func (s *NotificationsScreen) renderLive(width int) string {
	items := s.center.List()
	if len(items) == 0 {
		return theme.Hint.Render("No notifications. You're all caught up!")
	}

	now := s.now()
	var b strings.Builder
	for i, n := range items {
		b.WriteString(renderItem(n.Kind, n.Title, n.Message, Ago(now, n.Timestamp), !n.Read, i == s.selected, width-4))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *NotificationsScreen) renderHistory(width int) string {
	switch {
	case s.errMsg != "":
		return lipgloss.NewStyle().Foreground(theme.Error).Render("Error: " + s.errMsg)
	case !s.loaded:
		return theme.Hint.Render("Loading history...")
	case len(s.events) == 0:
		return theme.Hint.Render("No notifications recorded yet.")
	}

	var b strings.Builder
	for i, e := range s.events {
		kind, _ := notify.ParseKind(e.Kind)
		when := e.Timestamp.Local().Format("Jan 02 15:04")
		b.WriteString(renderItem(kind, e.Title, e.Message, when, false, i == s.selected, width-4))
		b.WriteString("\n")
	}
	return b.String()
}

func renderItem(kind notify.Kind, title, message, when string, unread, selected bool, width int) string {
	marker := "  "
	if selected {
		marker = theme.Selected.Render("▸ ")
	}
	dot := " "
	if unread {
		dot = lipgloss.NewStyle().Foreground(theme.Accent).Render("●")
	}

	titleStyle := theme.Body.Bold(unread)
	line := marker + dot + " " + kindStyle(kind).Render(kind.Icon()) + " " +
		titleStyle.Render(title) + "  " + theme.Hint.Render(when)
	body := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		PaddingLeft(6).
		Width(max(width, 20)).
		Render(message)
	return line + "\n" + body
}

func kindStyle(k notify.Kind) lipgloss.Style {
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

// Ago renders a short relative time.
func Ago(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
