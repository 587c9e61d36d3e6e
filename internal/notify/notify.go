// Package notify shows a desktop notification when a track starts.
package notify

import "time"

const appName = "foldplay"

// Urgency is the freedesktop urgency hint.
type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification is one popup. Zero Timeout lets the daemon decide; a zero
// ReplacesID opens a new popup instead of updating an old one.
type Notification struct {
	Summary    string
	Body       string
	Icon       string // file path or theme icon name
	Timeout    time.Duration
	ReplacesID uint32
	Urgency    Urgency
}

// expireMillis converts Timeout to the wire value, where -1 means default.
func (n Notification) expireMillis() int32 {
	if n.Timeout <= 0 {
		return -1
	}
	return int32(n.Timeout.Milliseconds())
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify returns the daemon's id for the popup, or 0 when nothing was shown.
	Notify(n Notification) (uint32, error)
	Close(id uint32) error
}

type stubNotifier struct{}

func (stubNotifier) Notify(Notification) (uint32, error) { return 0, nil }
func (stubNotifier) Close(uint32) error                  { return nil }
