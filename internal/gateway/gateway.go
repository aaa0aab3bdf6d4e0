package gateway

import (
	"context"

	"CaffeineSentinel/internal/model"
)

// AddIntakeRequest is the payload for recording one consumption remotely.
type AddIntakeRequest struct {
	MenuID     *int64 `json:"menu_id,omitempty"`
	BrandName  string `json:"brand_name"`
	MenuName   string `json:"menu_name"`
	CaffeineMg int    `json:"caffeine_mg"`
}

// UpdateInfoRequest carries optional profile fields; nil means unchanged.
type UpdateInfoRequest struct {
	WeightKg    *float64 `json:"weight_kg,omitempty"`
	MaxCaffeine *int     `json:"max_caffeine,omitempty"`
}

// Gateway is the remote persistence surface consumed by the ledger.
type Gateway interface {
	AddIntake(ctx context.Context, req AddIntakeRequest) (*model.CaffeineInfo, error)
	TodayHistory(ctx context.Context) ([]model.IntakeEvent, error)
	CurrentInfo(ctx context.Context) (*model.CaffeineInfo, error)
	UpdateInfo(ctx context.Context, req UpdateInfoRequest) (*model.CaffeineInfo, error)
	Name() string
}
