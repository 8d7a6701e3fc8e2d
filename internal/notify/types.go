package notify

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidKind  = errors.New("invalid notification kind")
	ErrEmptyMessage = errors.New("notification message is required")
)

// Kind is the severity of a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// AllKinds returns every kind in display order.
func AllKinds() []Kind {
	return []Kind{KindSuccess, KindError, KindWarning, KindInfo}
}

// ParseKind converts a string into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
	return k, nil
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindSuccess, KindError, KindWarning, KindInfo:
		return true
	}
	return false
}

// DefaultTitle is used when a notification is emitted without a title.
func (k Kind) DefaultTitle() string {
	switch k {
	case KindSuccess:
		return "Success"
	case KindError:
		return "Error"
	default:
		return "Info"
	}
}

// Icon returns the glyph shown next to the notification.
func (k Kind) Icon() string {
	switch k {
	case KindSuccess:
		return "✔"
	case KindError:
		return "✖"
	case KindWarning:
		return "▲"
	default:
		return "●"
	}
}

// AutoDismiss reports whether notifications of this kind expire on their own.
func (k Kind) AutoDismiss() bool {
	return k == KindSuccess || k == KindInfo
}

// Draft is a notification before the center assigns identity and time.
type Draft struct {
	Kind    Kind
	Title   string
	Message string
}

// Validate checks the draft at the emission boundary.
func (d Draft) Validate() error {
	if !d.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, d.Kind)
	}
	if d.Message == "" {
		return ErrEmptyMessage
	}
	return nil
}

// Notification is a user-facing message held by the Center.
type Notification struct {
	ID        string
	Kind      Kind
	Title     string
	Message   string
	Timestamp time.Time
	Read      bool
}

// Emitter is the fire-and-forget side of the Center.
type Emitter interface {
	Emit(kind Kind, title, message string)
}
