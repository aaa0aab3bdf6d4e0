package gateway

import (
	"context"
	"sync"
	"time"

	"CaffeineSentinel/internal/model"
)

// MockGateway is an in-memory Gateway for development and testing.
type MockGateway struct {
	mu      sync.Mutex
	Info    model.CaffeineInfo
	History []model.IntakeEvent

	// FailWith, when set, is returned by every mutating call.
	FailWith error

	// AddCalls counts AddIntake invocations, including failed ones.
	AddCalls int
}

// NewMockGateway returns a mock with the given daily limit and an empty history.
func NewMockGateway(maxCaffeine int) *MockGateway {
	return &MockGateway{
		Info: model.CaffeineInfo{MaxCaffeine: maxCaffeine, UpdatedAt: time.Now()},
	}
}

func (m *MockGateway) Name() string { return "mock" }

func (m *MockGateway) AddIntake(_ context.Context, req AddIntakeRequest) (*model.CaffeineInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.AddCalls++
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.Info.CurrentCaffeine += req.CaffeineMg
	m.Info.UpdatedAt = time.Now()
	m.History = append(m.History, model.IntakeEvent{
		MenuID:     req.MenuID,
		BrandName:  req.BrandName,
		MenuName:   req.MenuName,
		CaffeineMg: req.CaffeineMg,
		DrinkedAt:  m.Info.UpdatedAt,
	})
	info := m.Info
	return &info, nil
}

func (m *MockGateway) TodayHistory(context.Context) ([]model.IntakeEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.IntakeEvent, len(m.History))
	copy(out, m.History)
	return out, nil
}

func (m *MockGateway) CurrentInfo(context.Context) (*model.CaffeineInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	info := m.Info
	return &info, nil
}

func (m *MockGateway) UpdateInfo(_ context.Context, req UpdateInfoRequest) (*model.CaffeineInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return nil, m.FailWith
	}
	if req.WeightKg != nil {
		m.Info.WeightKg = *req.WeightKg
	}
	if req.MaxCaffeine != nil {
		m.Info.MaxCaffeine = *req.MaxCaffeine
	}
	m.Info.UpdatedAt = time.Now()
	info := m.Info
	return &info, nil
}
