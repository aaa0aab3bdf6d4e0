package ledger

import (
	"context"
	"fmt"
	"log"
	"strings"

	"CaffeineSentinel/internal/gateway"
	"CaffeineSentinel/internal/model"

	"github.com/google/uuid"
)

// Record validates and appends a new intake event, updates the running total,
// and emits threshold notifications.
//
// The local mutation is applied before the gateway call. When the gateway
// fails, the event stays recorded locally and the error is a
// *PersistenceError wrapping the cause; the returned event is still valid.
// Callers that need strict remote consistency must reconcile via Load.
func (l *Ledger) Record(ctx context.Context, brand, drink string, amountMg int, menuID *int64) (*model.IntakeEvent, error) {
	if amountMg < 0 {
		return nil, &ValidationError{Field: "amount", Reason: "must be non-negative"}
	}
	if strings.TrimSpace(brand) == "" {
		return nil, &ValidationError{Field: "brand", Reason: "must not be empty"}
	}
	if strings.TrimSpace(drink) == "" {
		return nil, &ValidationError{Field: "drink", Reason: "must not be empty"}
	}

	l.mu.Lock()
	if l.state == nil {
		l.mu.Unlock()
		return nil, ErrNotInitialized
	}

	previousStatus := model.StatusFor(l.state.CurrentIntake)
	event := model.IntakeEvent{
		ID:         uuid.NewString(),
		MenuID:     menuID,
		BrandName:  brand,
		MenuName:   drink,
		CaffeineMg: amountMg,
		DrinkedAt:  l.now(),
	}

	l.state.Entries = append(l.state.Entries, event)
	l.state.CurrentIntake += amountMg
	l.state.LastUpdateDate = event.DrinkedAt
	newIntake := l.state.CurrentIntake
	limit := l.state.DailyLimit

	// Near-limit warning: at most once per date, only on the crossing into high.
	nearLimit := newIntake >= model.HighAlertThreshold &&
		!l.state.HighAlertShown &&
		previousStatus != model.StatusHigh
	if nearLimit {
		l.state.HighAlertShown = true
	}
	l.mu.Unlock()

	l.emit(model.Notification{
		Kind:       model.NotifyRecorded,
		Title:      fmt.Sprintf("%s %s recorded", brand, drink),
		AmountMg:   amountMg,
		CurrentMg:  newIntake,
		DailyLimit: limit,
	})
	if nearLimit {
		l.emit(model.Notification{
			Kind:       model.NotifyNearLimit,
			Title:      "approaching daily limit",
			CurrentMg:  newIntake,
			DailyLimit: limit,
		})
	}
	// Exceeded fires on every recording call at or above the limit.
	if newIntake >= limit {
		l.emit(model.Notification{
			Kind:       model.NotifyExceeded,
			Title:      "daily limit exceeded",
			CurrentMg:  newIntake,
			DailyLimit: limit,
		})
	}

	if l.gw != nil {
		_, err := l.gw.AddIntake(ctx, gateway.AddIntakeRequest{
			MenuID:     menuID,
			BrandName:  brand,
			MenuName:   drink,
			CaffeineMg: amountMg,
		})
		if err != nil {
			return &event, &PersistenceError{Op: "add intake", Err: err}
		}
	}

	return &event, nil
}

// Notification delivery is best effort.
func (l *Ledger) emit(n model.Notification) {
	if err := l.notifier.Notify(n); err != nil {
		log.Printf("[ERROR] notify %s: %v", n.Kind, err)
	}
}
