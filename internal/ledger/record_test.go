package ledger

import (
	"context"
	"errors"
	"testing"

	"CaffeineSentinel/internal/gateway"
	"CaffeineSentinel/internal/model"
)

func TestRecord_SumInvariant(t *testing.T) {
	l := NewLocalLedger(400, nil)
	amounts := []int{63, 0, 75, 150, 28}

	sum := 0
	for _, mg := range amounts {
		if _, err := l.Record(context.Background(), "Brand", "Drink", mg, nil); err != nil {
			t.Fatalf("record %dmg: %v", mg, err)
		}
		sum += mg
		got, err := l.CurrentIntake()
		if err != nil {
			t.Fatalf("current intake: %v", err)
		}
		if got != sum {
			t.Errorf("after recording %dmg: intake %d, want sum %d", mg, got, sum)
		}
	}

	entries, _ := l.Entries()
	if len(entries) != len(amounts) {
		t.Fatalf("expected %d entries, got %d", len(amounts), len(entries))
	}
	for i, e := range entries {
		if e.CaffeineMg != amounts[i] {
			t.Errorf("entry %d: got %dmg, want %dmg (insertion order)", i, e.CaffeineMg, amounts[i])
		}
		if e.ID == "" {
			t.Errorf("entry %d: missing identifier", i)
		}
	}
}

func TestRecord_Validation(t *testing.T) {
	tests := []struct {
		name         string
		brand, drink string
		amount       int
	}{
		{"negative amount", "Brand", "Latte", -1},
		{"empty brand", "", "Latte", 75},
		{"blank brand", "   ", "Latte", 75},
		{"empty drink", "Brand", "", 75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLocalLedger(400, nil)
			_, err := l.Record(context.Background(), tt.brand, tt.drink, tt.amount, nil)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			got, _ := l.CurrentIntake()
			if got != 0 {
				t.Errorf("rejected input must not mutate state, intake=%d", got)
			}
			entries, _ := l.Entries()
			if len(entries) != 0 {
				t.Errorf("rejected input must not append entries, got %d", len(entries))
			}
		})
	}
}

func TestRecord_StatusBands(t *testing.T) {
	tests := []struct {
		amount int
		want   model.Status
	}{
		{99, model.StatusSafe},
		{100, model.StatusCaution},
		{299, model.StatusCaution},
		{300, model.StatusHigh},
	}
	for _, tt := range tests {
		l := NewLocalLedger(400, nil)
		if _, err := l.Record(context.Background(), "Brand", "Drink", tt.amount, nil); err != nil {
			t.Fatalf("record: %v", err)
		}
		status, err := l.Status()
		if err != nil {
			t.Fatalf("status: %v", err)
		}
		if status != tt.want {
			t.Errorf("%dmg: got %s, want %s", tt.amount, status, tt.want)
		}
	}
}

func TestRecord_NearLimitWarningOncePerDate(t *testing.T) {
	cn := &captureNotifier{}
	l := NewLocalLedger(400, cn)

	// Cross into the high band, then keep recording above it.
	for _, mg := range []int{200, 150, 50, 100} {
		if _, err := l.Record(context.Background(), "Brand", "Drink", mg, nil); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	if got := cn.count(model.NotifyNearLimit); got != 1 {
		t.Errorf("near-limit warning fired %d times, want exactly 1", got)
	}
	if got := cn.count(model.NotifyRecorded); got != 4 {
		t.Errorf("recorded notification fired %d times, want 4", got)
	}
}

func TestRecord_ExceededFiresEveryCall(t *testing.T) {
	cn := &captureNotifier{}
	l := NewLocalLedger(400, cn)

	// 350 → 450 → 475: two calls keep the total at or above the limit.
	for _, mg := range []int{350, 100, 25} {
		if _, err := l.Record(context.Background(), "Brand", "Drink", mg, nil); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	if got := cn.count(model.NotifyExceeded); got != 2 {
		t.Errorf("exceeded warning fired %d times, want 2 (not deduplicated)", got)
	}
}

func TestRecord_NearLimitResetsWithDate(t *testing.T) {
	cn := &captureNotifier{}
	l := NewLocalLedger(400, cn)

	if _, err := l.Record(context.Background(), "Brand", "Drink", 320, nil); err != nil {
		t.Fatalf("record: %v", err)
	}
	if got := cn.count(model.NotifyNearLimit); got != 1 {
		t.Fatalf("expected one warning before reset, got %d", got)
	}

	snap, _ := l.Snapshot()
	if !l.CheckAndReset(snap.LastUpdateDate.AddDate(0, 0, 1)) {
		t.Fatal("expected a reset on the next date")
	}
	if _, err := l.Record(context.Background(), "Brand", "Drink", 320, nil); err != nil {
		t.Fatalf("record: %v", err)
	}
	if got := cn.count(model.NotifyNearLimit); got != 2 {
		t.Errorf("warning must fire again on a new date, got %d total", got)
	}
}

func TestRecord_PersistsThroughGateway(t *testing.T) {
	gw := gateway.NewMockGateway(400)
	l := NewLedger(gw, nil)
	if err := l.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	if _, err := l.Record(context.Background(), "Brand", "Americano", 150, nil); err != nil {
		t.Fatalf("record: %v", err)
	}
	if gw.AddCalls != 1 {
		t.Errorf("expected 1 gateway call, got %d", gw.AddCalls)
	}
	if gw.Info.CurrentCaffeine != 150 {
		t.Errorf("remote counter not updated, got %d", gw.Info.CurrentCaffeine)
	}
}

func TestRecord_GatewayFailureKeepsLocalState(t *testing.T) {
	gw := gateway.NewMockGateway(400)
	l := NewLedger(gw, nil)
	if err := l.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	gw.FailWith = errors.New("connection refused")

	event, err := l.Record(context.Background(), "Brand", "Latte", 75, nil)
	var perr *PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if event == nil {
		t.Fatal("event must still be returned on persistence failure")
	}

	// The documented inconsistency: local state keeps the event.
	got, _ := l.CurrentIntake()
	if got != 75 {
		t.Errorf("local intake rolled back to %d, want 75", got)
	}
	entries, _ := l.Entries()
	if len(entries) != 1 {
		t.Errorf("local entry dropped, got %d entries", len(entries))
	}
}

func TestRecord_LocalOnlyWhenUnauthenticated(t *testing.T) {
	l := NewLocalLedger(400, nil)
	if _, err := l.Record(context.Background(), "Brand", "Latte", 75, nil); err != nil {
		t.Fatalf("record: %v", err)
	}
	got, _ := l.CurrentIntake()
	if got != 75 {
		t.Errorf("expected local-only recording to apply, got %d", got)
	}
}
