package model

// Status classifies cumulative daily intake into the three display bands.
type Status string

const (
	StatusSafe    Status = "safe"
	StatusCaution Status = "caution"
	StatusHigh    Status = "high"
)

const (
	// DefaultDailyLimit is the recommended daily caffeine limit in mg.
	DefaultDailyLimit = 400

	// HighAlertThreshold is the intake level that triggers the once-per-day
	// near-limit warning.
	HighAlertThreshold = 300

	// CautionThreshold is the lower bound of the caution band.
	CautionThreshold = 100
)

// StatusFor maps a cumulative intake in mg to its band.
// Bands have inclusive lower bounds; high is unbounded above.
func StatusFor(currentMg int) Status {
	switch {
	case currentMg >= HighAlertThreshold:
		return StatusHigh
	case currentMg >= CautionThreshold:
		return StatusCaution
	default:
		return StatusSafe
	}
}
