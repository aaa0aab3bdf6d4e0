package model

import "time"

// Member is a registered account.
type Member struct {
	MemberID int64  `json:"member_id"`
	Username string `json:"username"`
	Password string `json:"-"` // bcrypt hash, never exposed in JSON
	Name     string `json:"name"`
	Point    int    `json:"point"`
}

// CaffeineProfile holds the per-member accounting row backing the ledger.
type CaffeineProfile struct {
	MemberID        int64     `json:"member_id"`
	BirthDate       string    `json:"birth_date"`
	WeightKg        float64   `json:"weight_kg"`
	Gender          string    `json:"gender"`
	CurrentCaffeine int       `json:"current_caffeine"`
	MaxCaffeine     int       `json:"max_caffeine"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Brand is a coffee brand in the menu catalog.
type Brand struct {
	BrandID   int64  `json:"brand_id"`
	BrandName string `json:"brand_name"`
}

// Menu is one drink in a brand's catalog.
type Menu struct {
	MenuID     int64  `json:"menu_id"`
	BrandID    int64  `json:"brand_id"`
	BrandName  string `json:"brand_name,omitempty"`
	MenuName   string `json:"menu_name"`
	Category   string `json:"category"` // "coffee" or "decaf"
	Size       string `json:"size"`    // "small", "regular", "large"
	CaffeineMg int    `json:"caffeine_mg"`
}
