package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit int   // max results (0 = unlimited)
	After int64 // sequence > After
}

// Tour event actions.
const (
	TourActionStarted   = "started"
	TourActionCompleted = "completed"
	TourActionSkipped   = "skipped"
)

// TourEventData captures one tour lifecycle transition.
type TourEventData struct {
	Action    string
	StepID    string
	StepIndex int
	Completed []string
}

// TourEventRecord is a persisted tour event.
type TourEventRecord struct {
	Sequence  int64
	Timestamp time.Time
	TourEventData
}

// TourStats aggregates tour events by outcome.
type TourStats struct {
	Started   int
	Completed int
	Skipped   int
}

// NotificationEventData captures a notification accepted by the center.
type NotificationEventData struct {
	NotificationID string
	Kind           string
	Title          string
	Message        string
}

// NotificationEventRecord is a persisted notification event.
type NotificationEventRecord struct {
	Sequence  int64
	Timestamp time.Time
	NotificationEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendTourEvent records a tour start, completion or skip.
	AppendTourEvent(ctx context.Context, data TourEventData) error

	// QueryTourEvents returns tour events, newest first.
	QueryTourEvents(ctx context.Context, opts QueryOpts) ([]TourEventRecord, error)

	// TourStats counts tour events per action.
	TourStats(ctx context.Context) (TourStats, error)

	// AppendNotificationEvent records an emitted notification.
	AppendNotificationEvent(ctx context.Context, data NotificationEventData) error

	// QueryNotificationEvents returns notification events, newest first.
	QueryNotificationEvents(ctx context.Context, opts QueryOpts) ([]NotificationEventRecord, error)

	// ClearNotificationEvents deletes the notification history and returns
	// the number of rows removed.
	ClearNotificationEvents(ctx context.Context) (int64, error)
}

// PreferenceRepo is a key-value store for user preferences.
type PreferenceRepo interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Put inserts or replaces the value for key.
	Put(ctx context.Context, key, value string) error

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
}
