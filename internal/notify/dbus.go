//go:build linux

package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	dbusDest   = "org.freedesktop.Notifications"
	dbusPath   = "/org/freedesktop/Notifications"
	dbusNotify = "org.freedesktop.Notifications.Notify"
	dbusClose  = "org.freedesktop.Notifications.CloseNotification"
)

// dbusNotifier talks to the freedesktop notification daemon.
type dbusNotifier struct {
	obj dbus.BusObject
}

// New creates a Notifier backed by the session bus. Without a session bus
// it returns a Notifier that drops everything.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return stubNotifier{}, nil //nolint:nilerr // no session bus, notifications are dropped
	}
	return &dbusNotifier{obj: conn.Object(dbusDest, dbus.ObjectPath(dbusPath))}, nil
}

// Notify calls Notify(app_name, replaces_id, app_icon, summary, body,
// actions, hints, expire_timeout) and returns the notification id.
func (n *dbusNotifier) Notify(notif Notification) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(notif.Urgency)),
		"desktop-entry": dbus.MakeVariant(appName),
		"category":      dbus.MakeVariant("x-foldplay.track"),
	}

	var id uint32
	err := n.obj.Call(dbusNotify, 0,
		appName,
		notif.ReplacesID,
		notif.Icon,
		notif.Summary,
		notif.Body,
		[]string{},
		hints,
		notif.expireMillis(),
	).Store(&id)
	if err != nil {
		return 0, fmt.Errorf("dbus notify: %w", err)
	}
	return id, nil
}

// Close dismisses a notification.
func (n *dbusNotifier) Close(id uint32) error {
	return n.obj.Call(dbusClose, 0, id).Err
}
