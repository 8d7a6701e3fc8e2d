package tour

import (
	"context"

	"go.uber.org/zap"

	"github.com/abhisek/hashboard/internal/store"
	tourctl "github.com/abhisek/hashboard/internal/tour"
)

// Recorder is the slice of store.EventRepo the journal writes to.
type Recorder interface {
	AppendTourEvent(ctx context.Context, data store.TourEventData) error
}

// Journal records tour transitions to the event log. Failures are logged
// and never reach the tour.
type Journal struct {
	rec    Recorder
	logger *zap.Logger
}

// NewJournal creates a journal. rec and logger may be nil.
func NewJournal(rec Recorder, logger *zap.Logger) *Journal {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Journal{rec: rec, logger: logger}
}

// Started records an activation.
func (j *Journal) Started(c *tourctl.Controller) {
	j.record(c, store.TourActionStarted)
}

// Completed records a completion. Use it as the controller's completion callback.
func (j *Journal) Completed(c *tourctl.Controller) {
	j.record(c, store.TourActionCompleted)
}

// Skipped records the tour being left early.
func (j *Journal) Skipped(c *tourctl.Controller) {
	j.record(c, store.TourActionSkipped)
}

func (j *Journal) record(c *tourctl.Controller, action string) {
	if j == nil || c == nil {
		return
	}
	data := store.TourEventData{
		Action:    action,
		StepIndex: c.CurrentIndex(),
		Completed: c.Completed(),
	}
	if steps := c.Steps(); data.StepIndex < len(steps) {
		data.StepID = steps[data.StepIndex].ID
	}

	j.logger.Info("tour "+action,
		zap.String("step", data.StepID),
		zap.Int("index", data.StepIndex),
		zap.Strings("completed", data.Completed),
	)
	if j.rec == nil {
		return
	}
	if err := j.rec.AppendTourEvent(context.Background(), data); err != nil {
		j.logger.Warn("record tour event", zap.String("action", action), zap.Error(err))
	}
}
