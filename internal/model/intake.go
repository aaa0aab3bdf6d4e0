package model

import "time"

// IntakeEvent is one recorded consumption of a caffeinated drink.
// Immutable after creation; removed only by the daily reset.
type IntakeEvent struct {
	ID         string    `json:"id"`
	MenuID     *int64    `json:"menu_id,omitempty"`
	BrandName  string    `json:"brand_name"`
	MenuName   string    `json:"menu_name"`
	CaffeineMg int       `json:"caffeine_mg"`
	DrinkedAt  time.Time `json:"drinked_at"`
}

// LedgerState is the per-user per-day accounting snapshot.
// Invariant: CurrentIntake always equals the sum of CaffeineMg over Entries.
type LedgerState struct {
	CurrentIntake  int           `json:"current_intake"`
	Entries        []IntakeEvent `json:"entries"`
	DailyLimit     int           `json:"daily_limit"`
	LastUpdateDate time.Time     `json:"last_update_date"`
	HighAlertShown bool          `json:"high_alert_shown"`
}

// CaffeineInfo mirrors the gateway's current-info response.
type CaffeineInfo struct {
	CurrentCaffeine int       `json:"current_caffeine"`
	MaxCaffeine     int       `json:"max_caffeine"`
	WeightKg        float64   `json:"weight_kg,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}
