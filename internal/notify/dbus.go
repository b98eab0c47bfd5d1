//go:build linux

package notify

import (
	"github.com/godbus/dbus/v5"
)

const (
	busName   = "org.freedesktop.Notifications"
	busPath   = dbus.ObjectPath("/org/freedesktop/Notifications")
	busMethod = busName + ".Notify"
	busClose  = busName + ".CloseNotification"
	appName   = "tablib"
)

type busNotifier struct {
	obj dbus.BusObject
}

// New connects to the session bus. Without one, notifications are
// silently disabled.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return Disabled{}, nil //nolint:nilerr // no session bus means no notifications
	}
	return &busNotifier{obj: conn.Object(busName, busPath)}, nil
}

func (b *busNotifier) Notify(n Notification) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant(appName),
	}

	// app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout
	var id uint32
	err := b.obj.Call(busMethod, 0,
		appName, n.ReplacesID, n.Icon, n.Title, n.Body, []string{}, hints, n.Timeout,
	).Store(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (b *busNotifier) Close(id uint32) error {
	return b.obj.Call(busClose, 0, id).Err
}
