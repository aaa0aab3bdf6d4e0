package model

// DailyStats aggregates server-side activity for the ops summary.
type DailyStats struct {
	ActiveMembers int
	IntakeCount   int
	TotalMg       int
	OverLimit     int
}
