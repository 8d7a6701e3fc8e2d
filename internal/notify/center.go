package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/hashboard/internal/store"
)

const (
	DefaultTTL      = 5 * time.Second
	DefaultCapacity = 50
)

// Recorder persists emitted notifications. store.EventRepo satisfies it.
type Recorder interface {
	AppendNotificationEvent(ctx context.Context, data store.NotificationEventData) error
}

// Center keeps the notification feed: newest first, with read tracking and
// auto-dismissal of success and info messages.
type Center struct {
	mu       sync.Mutex
	items    []Notification
	ttl      time.Duration
	capacity int
	now      func() time.Time
	newID    func() string
	recorder Recorder
	logger   *zap.Logger
}

var _ Emitter = (*Center)(nil)

// Option configures a Center.
type Option func(*Center)

// WithTTL sets how long auto-dismissed notifications live. Zero disables expiry.
func WithTTL(d time.Duration) Option {
	return func(c *Center) { c.ttl = d }
}

// WithCapacity caps the number of retained notifications.
func WithCapacity(n int) Option {
	return func(c *Center) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Center) { c.now = now }
}

// WithRecorder persists every accepted notification.
func WithRecorder(r Recorder) Option {
	return func(c *Center) { c.recorder = r }
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Center) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCenter creates an empty notification center.
func NewCenter(opts ...Option) *Center {
	c := &Center{
		ttl:      DefaultTTL,
		capacity: DefaultCapacity,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Emit adds a notification and drops it with a log line when it is invalid.
func (c *Center) Emit(kind Kind, title, message string) {
	if _, err := c.Add(Draft{Kind: kind, Title: title, Message: message}); err != nil {
		c.logger.Warn("notification dropped",
			zap.String("kind", string(kind)),
			zap.String("title", title),
			zap.Error(err))
	}
}

// Add validates the draft and stores it at the head of the feed.
func (c *Center) Add(d Draft) (Notification, error) {
	if err := d.Validate(); err != nil {
		return Notification{}, err
	}
	if d.Title == "" {
		d.Title = d.Kind.DefaultTitle()
	}

	n := Notification{
		ID:        c.newID(),
		Kind:      d.Kind,
		Title:     d.Title,
		Message:   d.Message,
		Timestamp: c.now(),
	}

	c.mu.Lock()
	c.items = append([]Notification{n}, c.items...)
	if len(c.items) > c.capacity {
		c.items = c.items[:c.capacity]
	}
	c.mu.Unlock()

	c.logger.Debug("notification added",
		zap.String("id", n.ID),
		zap.String("kind", string(n.Kind)),
		zap.String("title", n.Title))

	c.record(n)
	return n, nil
}

func (c *Center) record(n Notification) {
	if c.recorder == nil {
		return
	}
	err := c.recorder.AppendNotificationEvent(context.Background(), store.NotificationEventData{
		NotificationID: n.ID,
		Kind:           string(n.Kind),
		Title:          n.Title,
		Message:        n.Message,
	})
	if err != nil {
		c.logger.Warn("persist notification", zap.String("id", n.ID), zap.Error(err))
	}
}

// List returns a copy of the feed, newest first.
func (c *Center) List() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Recent returns at most n of the newest notifications.
func (c *Center) Recent(n int) []Notification {
	all := c.List()
	if n >= 0 && len(all) > n {
		return all[:n]
	}
	return all
}

// Len returns the number of retained notifications.
func (c *Center) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// UnreadCount returns the number of notifications not yet marked read.
func (c *Center) UnreadCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, n := range c.items {
		if !n.Read {
			count++
		}
	}
	return count
}

// MarkRead marks one notification read. It reports whether anything changed.
func (c *Center) MarkRead(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id && !c.items[i].Read {
			c.items[i].Read = true
			return true
		}
	}
	return false
}

// MarkAllRead marks the whole feed read.
func (c *Center) MarkAllRead() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		c.items[i].Read = true
	}
}

// Remove deletes a notification by id.
func (c *Center) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the feed.
func (c *Center) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}

// Expire removes auto-dismissable notifications older than the TTL and
// returns how many were removed.
func (c *Center) Expire(now time.Time) int {
	if c.ttl <= 0 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.items[:0]
	removed := 0
	for _, n := range c.items {
		if n.Kind.AutoDismiss() && !now.Before(n.Timestamp.Add(c.ttl)) {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	c.items = kept
	return removed
}

// Welcome emits the startup notifications shown when the dashboard opens.
func (c *Center) Welcome() {
	c.Emit(KindInfo, "Welcome to hashboard!", "Your AI-powered project management dashboard is ready to use.")
	c.Emit(KindSuccess, "System Status", "All AI agents are online and monitoring your project.")
	c.Emit(KindWarning, "Tutorial Available", "Press t to get started with hashboard features.")
}
