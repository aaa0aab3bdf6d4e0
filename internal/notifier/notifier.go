package notifier

import (
	"log"

	"CaffeineSentinel/internal/model"
)

// Notifier delivers user-facing notifications emitted by the recorder
// and the schedulers.
type Notifier interface {
	Notify(n model.Notification) error
}

// LogNotifier writes notifications to the process log. Used when no
// Telegram credentials are configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (l *LogNotifier) Notify(n model.Notification) error {
	log.Printf("[INFO] notification %s: %s (%dmg / %dmg)", n.Kind, n.Title, n.CurrentMg, n.DailyLimit)
	return nil
}

// NoopNotifier discards all notifications.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier { return &NoopNotifier{} }

func (n *NoopNotifier) Notify(model.Notification) error { return nil }
