package notify

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/abhisek/hashboard/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time          { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

type recorderStub struct {
	events []store.NotificationEventData
	err    error
}

func (r *recorderStub) AppendNotificationEvent(_ context.Context, data store.NotificationEventData) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, data)
	return nil
}

func newTestCenter(opts ...Option) (*Center, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	c := NewCenter(append([]Option{WithClock(clock.Now)}, opts...)...)
	seq := 0
	c.newID = func() string {
		seq++
		return fmt.Sprintf("n%d", seq)
	}
	return c, clock
}

func TestAddNewestFirst(t *testing.T) {
	c, _ := newTestCenter()

	_, err := c.Add(Draft{Kind: KindInfo, Title: "first", Message: "one"})
	require.NoError(t, err)
	_, err = c.Add(Draft{Kind: KindWarning, Title: "second", Message: "two"})
	require.NoError(t, err)

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Title)
	assert.Equal(t, "first", list[1].Title)
	assert.Equal(t, 2, c.UnreadCount())
}

func TestAddValidation(t *testing.T) {
	c, _ := newTestCenter()

	_, err := c.Add(Draft{Kind: "loud", Message: "x"})
	assert.ErrorIs(t, err, ErrInvalidKind)

	_, err = c.Add(Draft{Kind: KindInfo})
	assert.ErrorIs(t, err, ErrEmptyMessage)

	assert.Equal(t, 0, c.Len())
}

func TestEmitDropsInvalid(t *testing.T) {
	c, _ := newTestCenter()
	c.Emit("", "title", "message")
	c.Emit(KindError, "title", "")
	assert.Equal(t, 0, c.Len())
}

func TestDefaultTitles(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindSuccess, "Success"},
		{KindError, "Error"},
		{KindWarning, "Info"},
		{KindInfo, "Info"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			c, _ := newTestCenter()
			n, err := c.Add(Draft{Kind: tt.kind, Message: "saved"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.Title)
		})
	}
}

func TestMarkRead(t *testing.T) {
	c, _ := newTestCenter()
	a, _ := c.Add(Draft{Kind: KindInfo, Message: "a"})
	c.Add(Draft{Kind: KindInfo, Message: "b"})

	assert.True(t, c.MarkRead(a.ID))
	assert.False(t, c.MarkRead(a.ID), "second mark is a no-op")
	assert.False(t, c.MarkRead("missing"))
	assert.Equal(t, 1, c.UnreadCount())

	c.MarkAllRead()
	assert.Equal(t, 0, c.UnreadCount())
}

func TestRemoveKeepsUnreadConsistent(t *testing.T) {
	c, _ := newTestCenter()
	a, _ := c.Add(Draft{Kind: KindError, Message: "a"})
	b, _ := c.Add(Draft{Kind: KindError, Message: "b"})
	c.MarkRead(b.ID)

	assert.True(t, c.Remove(a.ID))
	assert.True(t, c.Remove(b.ID))
	assert.False(t, c.Remove(b.ID))
	assert.Equal(t, 0, c.UnreadCount())
	assert.Equal(t, 0, c.Len())
}

func TestExpireOnlyAutoDismissKinds(t *testing.T) {
	c, clock := newTestCenter(WithTTL(5 * time.Second))
	c.Emit(KindSuccess, "", "done")
	c.Emit(KindInfo, "", "fyi")
	c.Emit(KindWarning, "", "careful")
	c.Emit(KindError, "", "broken")

	clock.Advance(4 * time.Second)
	assert.Equal(t, 0, c.Expire(clock.Now()))
	assert.Equal(t, 4, c.Len())

	clock.Advance(time.Second)
	assert.Equal(t, 2, c.Expire(clock.Now()))

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, KindError, list[0].Kind)
	assert.Equal(t, KindWarning, list[1].Kind)
}

func TestExpireDisabled(t *testing.T) {
	c, clock := newTestCenter(WithTTL(0))
	c.Emit(KindSuccess, "", "done")
	clock.Advance(time.Hour)
	assert.Equal(t, 0, c.Expire(clock.Now()))
	assert.Equal(t, 1, c.Len())
}

func TestCapacity(t *testing.T) {
	c, _ := newTestCenter(WithCapacity(3))
	for i := 0; i < 5; i++ {
		c.Emit(KindWarning, "", fmt.Sprintf("m%d", i))
	}
	list := c.List()
	require.Len(t, list, 3)
	assert.Equal(t, "m4", list[0].Message)
	assert.Equal(t, "m2", list[2].Message)
}

func TestRecent(t *testing.T) {
	c, _ := newTestCenter()
	for i := 0; i < 7; i++ {
		c.Emit(KindWarning, "", fmt.Sprintf("m%d", i))
	}
	assert.Len(t, c.Recent(5), 5)
	assert.Len(t, c.Recent(10), 7)
}

func TestRecorder(t *testing.T) {
	rec := &recorderStub{}
	c, _ := newTestCenter(WithRecorder(rec))
	c.Emit(KindSuccess, "Saved", "Project settings saved successfully!")

	require.Len(t, rec.events, 1)
	assert.Equal(t, "n1", rec.events[0].NotificationID)
	assert.Equal(t, "success", rec.events[0].Kind)
	assert.Equal(t, "Saved", rec.events[0].Title)
}

func TestRecorderFailureIsNotFatal(t *testing.T) {
	rec := &recorderStub{err: errors.New("disk full")}
	c, _ := newTestCenter(WithRecorder(rec))

	n, err := c.Add(Draft{Kind: KindInfo, Message: "still shown"})
	require.NoError(t, err)
	assert.Equal(t, n.ID, c.List()[0].ID)
}

func TestWelcome(t *testing.T) {
	c, _ := newTestCenter()
	c.Welcome()

	list := c.List()
	require.Len(t, list, 3)
	assert.Equal(t, KindWarning, list[0].Kind)
	assert.Equal(t, "Tutorial Available", list[0].Title)
	assert.Equal(t, KindInfo, list[2].Kind)
}

func TestParseKind(t *testing.T) {
	for _, k := range AllKinds() {
		got, err := ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("fatal")
	assert.ErrorIs(t, err, ErrInvalidKind)
}
