package tour

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/abhisek/hashboard/internal/notify"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type emitted struct {
	kind    notify.Kind
	title   string
	message string
}

type notifierStub struct {
	calls []emitted
}

func (n *notifierStub) Emit(kind notify.Kind, title, message string) {
	n.calls = append(n.calls, emitted{kind, title, message})
}

func catalogOf(ids ...string) []Step {
	steps := make([]Step, len(ids))
	for i, id := range ids {
		steps[i] = Step{ID: id, Title: "Step " + id, Target: "#" + id, Position: PositionBottom}
	}
	return steps
}

func newTestController(t *testing.T, steps []Step) (*Controller, *notifierStub, *int) {
	t.Helper()
	n := &notifierStub{}
	calls := 0
	c, err := New(steps, n, func() { calls++ })
	require.NoError(t, err)
	return c, n, &calls
}

func currentID(t *testing.T, c *Controller) string {
	t.Helper()
	s, ok := c.CurrentStep()
	require.True(t, ok, "expected an active step")
	return s.ID
}

func TestNewRejectsBadCatalogs(t *testing.T) {
	tests := []struct {
		name  string
		steps []Step
		want  error
	}{
		{"nil", nil, ErrEmptyCatalog},
		{"empty", []Step{}, ErrEmptyCatalog},
		{"missing id", []Step{{Title: "x"}}, ErrInvalidStep},
		{"duplicate", catalogOf("a", "b", "a"), ErrDuplicateStep},
		{"bad position", []Step{{ID: "a", Position: "middle"}}, ErrInvalidStep},
		{"bad action", []Step{{ID: "a", Action: "drag"}}, ErrInvalidStep},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.steps, nil, nil)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, c)
		})
	}
}

func TestInactiveByDefault(t *testing.T) {
	c, n, calls := newTestController(t, catalogOf("a", "b"))

	assert.False(t, c.Active())
	_, ok := c.CurrentStep()
	assert.False(t, ok)
	assert.Equal(t, 0, c.ProgressPercent())

	c.Advance()
	c.Retreat()
	c.Complete()
	assert.False(t, c.Active())
	assert.Empty(t, n.calls)
	assert.Zero(t, *calls)
	assert.Empty(t, c.Completed())
}

func TestActivateResets(t *testing.T) {
	for n := 1; n <= 5; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			ids := make([]string, n)
			for i := range ids {
				ids[i] = fmt.Sprintf("s%d", i)
			}
			c, _, _ := newTestController(t, catalogOf(ids...))
			c.Activate()
			for i := 0; i < n-1; i++ {
				c.Advance()
			}
			c.Activate()

			assert.True(t, c.Active())
			assert.Equal(t, 0, c.CurrentIndex())
			assert.Empty(t, c.Completed())
		})
	}
}

func TestAdvanceMarksAndMoves(t *testing.T) {
	c, n, calls := newTestController(t, catalogOf("a", "b", "c", "d"))
	c.Activate()

	for i := 0; i < 3; i++ {
		before := len(c.Completed())
		id := currentID(t, c)

		c.Advance()

		assert.Equal(t, i+1, c.CurrentIndex())
		assert.True(t, c.IsStepCompleted(id))
		assert.Len(t, c.Completed(), before+1)
	}
	assert.Empty(t, n.calls, "non-terminal advances emit nothing")
	assert.Zero(t, *calls)
}

func TestAdvanceAfterRetreatDoesNotDoubleCount(t *testing.T) {
	c, _, _ := newTestController(t, catalogOf("a", "b", "c"))
	c.Activate()
	c.Advance()
	c.Retreat()
	c.Advance()

	assert.Equal(t, []string{"a"}, c.Completed())
}

func TestAdvanceOnLastStepCompletes(t *testing.T) {
	c, n, calls := newTestController(t, catalogOf("a", "b"))
	c.Activate()
	c.Advance()
	require.True(t, c.IsLastStep())

	c.Advance()

	assert.False(t, c.Active())
	require.Len(t, n.calls, 1)
	assert.Equal(t, notify.KindSuccess, n.calls[0].kind)
	assert.Equal(t, CompletionTitle, n.calls[0].title)
	assert.Equal(t, CompletionMessage, n.calls[0].message)
	assert.Equal(t, 1, *calls)
	assert.Equal(t, []string{"a", "b"}, c.Completed())
}

func TestCompleteIsIdempotent(t *testing.T) {
	c, n, calls := newTestController(t, catalogOf("a", "b", "c"))
	c.Activate()
	c.Advance()

	c.Complete()
	c.Complete()
	c.Advance()

	assert.Len(t, n.calls, 1)
	assert.Equal(t, 1, *calls)
	assert.Equal(t, []string{"a", "b"}, c.Completed(), "early complete marks only the current step")
}

func TestCompleteCallbackReentry(t *testing.T) {
	n := &notifierStub{}
	var c *Controller
	calls := 0
	c, err := New(catalogOf("a"), n, func() {
		calls++
		c.Complete()
	})
	require.NoError(t, err)

	c.Activate()
	c.Complete()

	assert.Equal(t, 1, calls)
	assert.Len(t, n.calls, 1)
}

type panickingNotifier struct{}

func (panickingNotifier) Emit(notify.Kind, string, string) {
	panic("sink is down")
}

func TestCompleteSurvivesPanickingNotifier(t *testing.T) {
	calls := 0
	c, err := New(catalogOf("a", "b"), panickingNotifier{}, func() { calls++ })
	require.NoError(t, err)

	c.Activate()
	c.Advance()
	require.NotPanics(t, c.Advance)

	assert.False(t, c.Active())
	assert.Equal(t, 1, calls, "completion callback still runs")
	assert.Equal(t, []string{"a", "b"}, c.Completed())
}

func TestRetreatAtStartIsNoop(t *testing.T) {
	c, _, _ := newTestController(t, catalogOf("a", "b"))
	c.Activate()
	c.Retreat()

	assert.True(t, c.Active())
	assert.Equal(t, 0, c.CurrentIndex())
	assert.Empty(t, c.Completed())
}

func TestProgressMonotonic(t *testing.T) {
	c, _, _ := newTestController(t, DefaultCatalog())
	c.Activate()

	last := c.ProgressPercent()
	for !c.IsLastStep() {
		c.Advance()
		p := c.ProgressPercent()
		assert.GreaterOrEqual(t, p, last)
		if c.IsLastStep() {
			assert.Equal(t, 100, p)
		} else {
			assert.Less(t, p, 100)
		}
		last = p
	}
}

func TestSkipFromAnyStep(t *testing.T) {
	steps := catalogOf("a", "b", "c")
	for i := range steps {
		t.Run(steps[i].ID, func(t *testing.T) {
			c, n, calls := newTestController(t, steps)
			c.Activate()
			for j := 0; j < i; j++ {
				c.Advance()
			}
			c.Skip()

			assert.False(t, c.Active())
			assert.Empty(t, n.calls)
			assert.Zero(t, *calls)
			assert.Len(t, c.Completed(), i)
		})
	}
}

func TestDeactivateBehavesLikeSkip(t *testing.T) {
	c, n, calls := newTestController(t, catalogOf("a", "b"))
	c.Activate()
	c.Deactivate()

	assert.False(t, c.Active())
	assert.Empty(t, n.calls)
	assert.Zero(t, *calls)
}

func TestThreeStepScenario(t *testing.T) {
	c, n, calls := newTestController(t, catalogOf("A", "B", "C"))

	c.Activate()
	assert.Equal(t, "A", currentID(t, c))
	assert.Equal(t, 33, c.ProgressPercent())

	c.Advance()
	assert.Equal(t, "B", currentID(t, c))
	assert.Equal(t, 67, c.ProgressPercent())
	assert.Equal(t, []string{"A"}, c.Completed())

	c.Retreat()
	assert.Equal(t, "A", currentID(t, c))
	assert.Equal(t, 33, c.ProgressPercent())
	assert.True(t, c.IsStepCompleted("A"), "revisited step stays completed")

	c.Advance()
	assert.Equal(t, "B", currentID(t, c))

	c.Advance()
	assert.Equal(t, "C", currentID(t, c))
	assert.Equal(t, 100, c.ProgressPercent())
	assert.Equal(t, []string{"A", "B"}, c.Completed())

	c.Advance()
	assert.False(t, c.Active())
	assert.Equal(t, []string{"A", "B", "C"}, c.Completed())
	assert.Len(t, n.calls, 1)
	assert.Equal(t, notify.KindSuccess, n.calls[0].kind)
	assert.Equal(t, 1, *calls)
}

func TestSkipScenario(t *testing.T) {
	c, n, _ := newTestController(t, catalogOf("A", "B", "C"))
	c.Activate()
	c.Skip()

	assert.False(t, c.Active())
	assert.Empty(t, c.Completed())
	assert.Empty(t, n.calls)
}

func TestReactivateAfterCompletion(t *testing.T) {
	c, n, calls := newTestController(t, catalogOf("A", "B"))
	c.Activate()
	c.Advance()
	c.Advance()
	require.False(t, c.Active())

	c.Activate()
	assert.Empty(t, c.Completed())
	assert.Equal(t, 0, c.CurrentIndex())

	c.Advance()
	c.Advance()
	assert.Len(t, n.calls, 2)
	assert.Equal(t, 2, *calls)
}

func TestSingleStepCatalog(t *testing.T) {
	c, n, calls := newTestController(t, catalogOf("only"))
	c.Activate()
	assert.True(t, c.IsLastStep())
	assert.Equal(t, 100, c.ProgressPercent())

	c.Advance()
	assert.False(t, c.Active())
	assert.Len(t, n.calls, 1)
	assert.Equal(t, 1, *calls)
}

func TestNilCollaborators(t *testing.T) {
	c, err := New(catalogOf("a"), nil, nil)
	require.NoError(t, err)
	c.Activate()
	assert.NotPanics(t, c.Advance)
	assert.False(t, c.Active())
}

func TestCatalogIsCopied(t *testing.T) {
	steps := catalogOf("a", "b")
	c, _, _ := newTestController(t, steps)
	steps[0].ID = "mutated"

	c.Activate()
	assert.Equal(t, "a", currentID(t, c))

	out := c.Steps()
	out[1].ID = "changed"
	assert.Equal(t, "b", c.Steps()[1].ID)
}

func TestWithCenter(t *testing.T) {
	center := notify.NewCenter()
	c, err := New(catalogOf("a"), center, nil)
	require.NoError(t, err)

	c.Activate()
	c.Advance()

	list := center.List()
	require.Len(t, list, 1)
	assert.Equal(t, CompletionTitle, list[0].Title)
	assert.Equal(t, notify.KindSuccess, list[0].Kind)
}
