package ledger

import (
	"context"
	"log"
	"sync"
	"time"

	"CaffeineSentinel/internal/gateway"
	"CaffeineSentinel/internal/model"
	"CaffeineSentinel/internal/notifier"
)

// Ledger owns the per-day caffeine accounting state for one user session.
// It is the only holder of that state: consumers receive it by injection
// and mutate it exclusively through Record and CheckAndReset.
//
// Invariant: state.CurrentIntake equals the sum of CaffeineMg over
// state.Entries after every mutation.
type Ledger struct {
	mu       sync.Mutex
	gw       gateway.Gateway // nil when the session is unauthenticated
	notifier notifier.Notifier
	now      func() time.Time
	state    *model.LedgerState
}

// NewLedger creates a ledger backed by the given gateway. Queries fail with
// ErrNotInitialized until Load succeeds.
func NewLedger(gw gateway.Gateway, n notifier.Notifier) *Ledger {
	if n == nil {
		n = notifier.NewNoopNotifier()
	}
	return &Ledger{gw: gw, notifier: n, now: time.Now}
}

// NewLocalLedger creates an unauthenticated ledger that never persists
// remotely. It is initialized immediately with an empty day.
func NewLocalLedger(dailyLimit int, n notifier.Notifier) *Ledger {
	l := NewLedger(nil, n)
	if dailyLimit <= 0 {
		dailyLimit = model.DefaultDailyLimit
	}
	l.state = &model.LedgerState{
		DailyLimit:     dailyLimit,
		LastUpdateDate: l.now(),
	}
	return l
}

// Load pulls today's history and the current limits from the gateway and
// initializes the ledger. The cumulative total is derived from the entries
// themselves so the sum invariant holds locally even if the remote counter
// has drifted.
func (l *Ledger) Load(ctx context.Context) error {
	info, err := l.gw.CurrentInfo(ctx)
	if err != nil {
		return &PersistenceError{Op: "load info", Err: err}
	}
	history, err := l.gw.TodayHistory(ctx)
	if err != nil {
		return &PersistenceError{Op: "load history", Err: err}
	}

	total := 0
	for _, e := range history {
		total += e.CaffeineMg
	}
	if total != info.CurrentCaffeine {
		log.Printf("[WARN] remote counter %dmg disagrees with history sum %dmg, using the sum",
			info.CurrentCaffeine, total)
	}

	limit := info.MaxCaffeine
	if limit <= 0 {
		limit = model.DefaultDailyLimit
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = &model.LedgerState{
		CurrentIntake:  total,
		Entries:        history,
		DailyLimit:     limit,
		LastUpdateDate: l.now(),
		HighAlertShown: total >= model.HighAlertThreshold,
	}
	return nil
}

// CurrentIntake returns the cumulative milligrams for the active date.
func (l *Ledger) CurrentIntake() (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == nil {
		return 0, ErrNotInitialized
	}
	return l.state.CurrentIntake, nil
}

// Remaining returns the allowance left today, floored at zero.
func (l *Ledger) Remaining() (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == nil {
		return 0, ErrNotInitialized
	}
	r := l.state.DailyLimit - l.state.CurrentIntake
	if r < 0 {
		r = 0
	}
	return r, nil
}

// Status returns the current band for the active date.
func (l *Ledger) Status() (model.Status, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == nil {
		return "", ErrNotInitialized
	}
	return model.StatusFor(l.state.CurrentIntake), nil
}

// Entries returns a copy of today's events, most recent last.
func (l *Ledger) Entries() ([]model.IntakeEvent, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == nil {
		return nil, ErrNotInitialized
	}
	out := make([]model.IntakeEvent, len(l.state.Entries))
	copy(out, l.state.Entries)
	return out, nil
}

// Snapshot returns a copy of the full accounting state.
func (l *Ledger) Snapshot() (*model.LedgerState, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == nil {
		return nil, ErrNotInitialized
	}
	snap := *l.state
	snap.Entries = make([]model.IntakeEvent, len(l.state.Entries))
	copy(snap.Entries, l.state.Entries)
	return &snap, nil
}
