package ledger

import (
	"context"
	"testing"
	"time"
)

func TestCheckAndReset_DateRollover(t *testing.T) {
	l := NewLocalLedger(400, nil)
	for _, mg := range []int{150, 200} {
		if _, err := l.Record(context.Background(), "Brand", "Drink", mg, nil); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	setLedgerDate(l, time.Date(2025, 1, 1, 23, 50, 0, 0, time.UTC))

	now := time.Date(2025, 1, 2, 0, 0, 30, 0, time.UTC)
	if !l.CheckAndReset(now) {
		t.Fatal("expected reset when the calendar date advanced")
	}

	intake, err := l.CurrentIntake()
	if err != nil {
		t.Fatalf("current intake: %v", err)
	}
	if intake != 0 {
		t.Errorf("intake after reset = %d, want 0", intake)
	}
	entries, _ := l.Entries()
	if len(entries) != 0 {
		t.Errorf("entries after reset = %d, want 0", len(entries))
	}
	snap, _ := l.Snapshot()
	if snap.HighAlertShown {
		t.Error("high-alert flag must clear on reset")
	}
	if !sameDate(snap.LastUpdateDate, now) {
		t.Errorf("last update date not advanced: %v", snap.LastUpdateDate)
	}
}

func TestCheckAndReset_SameDateNoChange(t *testing.T) {
	l := NewLocalLedger(400, nil)
	if _, err := l.Record(context.Background(), "Brand", "Drink", 150, nil); err != nil {
		t.Fatalf("record: %v", err)
	}
	setLedgerDate(l, time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC))

	if l.CheckAndReset(time.Date(2025, 1, 1, 23, 59, 59, 0, time.UTC)) {
		t.Fatal("must not reset within the same calendar date")
	}
	intake, _ := l.CurrentIntake()
	if intake != 150 {
		t.Errorf("intake changed without a reset: %d", intake)
	}
}

func TestCheckAndReset_Uninitialized(t *testing.T) {
	l := NewLedger(nil, nil)
	if l.CheckAndReset(time.Now()) {
		t.Error("uninitialized ledger must not report a reset")
	}
}

func TestSameDate(t *testing.T) {
	tests := []struct {
		a, b time.Time
		want bool
	}{
		{time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 1, 23, 59, 0, 0, time.UTC), true},
		{time.Date(2025, 1, 1, 23, 59, 0, 0, time.UTC), time.Date(2025, 1, 2, 0, 0, 30, 0, time.UTC), false},
		{time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC), time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC), false},
		{time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC), time.Date(2025, 2, 28, 12, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		if got := sameDate(tt.a, tt.b); got != tt.want {
			t.Errorf("sameDate(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
