package model

// NotificationKind identifies what a notification is about.
type NotificationKind string

const (
	// NotifyRecorded confirms a successful intake recording.
	NotifyRecorded NotificationKind = "RECORDED"
	// NotifyNearLimit warns that intake reached the high band. At most once per date.
	NotifyNearLimit NotificationKind = "NEAR_LIMIT"
	// NotifyExceeded fires on every recording call that leaves the total at or
	// above the daily limit.
	NotifyExceeded NotificationKind = "EXCEEDED"
	// NotifySummary is the scheduled ops report.
	NotifySummary NotificationKind = "SUMMARY"
)

// Notification is a user-facing alert emitted by the recorder.
type Notification struct {
	Kind       NotificationKind
	Title      string
	Body       string
	AmountMg   int // the delta for RECORDED, the running total otherwise
	CurrentMg  int
	DailyLimit int
}
