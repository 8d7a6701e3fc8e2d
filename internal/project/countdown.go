package project

import (
	"math"
	"time"
)

// DefaultLead is how far out the due date sits when none is configured.
const DefaultLead = 14 * 24 * time.Hour

// UrgentDays is the threshold at or below which a deadline is urgent.
const UrgentDays = 7

// Countdown describes the time left until the project is due.
type Countdown struct {
	Due     time.Time
	Days    int // whole days left, rounded up; zero or negative once due
	Urgent  bool
	Overdue bool
}

// NewCountdown computes the countdown at now. A nil due date means
// DefaultLead from now.
func NewCountdown(due *time.Time, now time.Time) Countdown {
	d := now.Add(DefaultLead)
	if due != nil {
		d = *due
	}
	days := int(math.Ceil(d.Sub(now).Hours() / 24))
	return Countdown{
		Due:     d,
		Days:    days,
		Urgent:  days <= UrgentDays,
		Overdue: days <= 0,
	}
}
