package services

import (
	"sync"
	"time"
)

// Severity classifies a user-facing notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Notification is a transient user-facing message.
type Notification struct {
	Message  string    `json:"message"`
	Severity Severity  `json:"severity"`
	Time     time.Time `json:"time"`
}

// Notifier is the notification sink. Notify is fire-and-forget; callers
// never consume a return value.
type Notifier interface {
	Notify(message string, severity Severity)
}

const feedCapacity = 50

// Feed is a Notifier that keeps a bounded list of recent notifications
// for the client to poll. Oldest entries are evicted first.
type Feed struct {
	mu      sync.Mutex
	entries []Notification
}

func NewFeed() *Feed {
	return &Feed{}
}

func (f *Feed) Notify(message string, severity Severity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, Notification{
		Message:  message,
		Severity: severity,
		Time:     time.Now(),
	})
	if len(f.entries) > feedCapacity {
		f.entries = f.entries[len(f.entries)-feedCapacity:]
	}
}

// Recent returns the retained notifications, newest last.
func (f *Feed) Recent() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Notification, len(f.entries))
	copy(out, f.entries)
	return out
}
