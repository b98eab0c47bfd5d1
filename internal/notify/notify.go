// Package notify sends desktop notifications over D-Bus.
package notify

// Urgency is the notification priority defined by the freedesktop spec.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification is one desktop notification.
type Notification struct {
	Title      string  // summary, required
	Body       string  // optional, basic markup allowed
	Icon       string  // icon name or image path, optional
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification
	Urgency    Urgency
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify shows n and returns its id. It returns 0 and no error when
	// notifications are unavailable.
	Notify(n Notification) (uint32, error)
	// Close withdraws a notification.
	Close(id uint32) error
}

// Disabled is a notifier that shows nothing.
type Disabled struct{}

func (Disabled) Notify(Notification) (uint32, error) { return 0, nil }
func (Disabled) Close(uint32) error                  { return nil }
