package ledger

import "time"

// CheckAndReset clears the accumulated state when the calendar date of now
// differs from the date of the last update. Returns true if a reset occurred.
//
// Invoked on load and from a once-per-minute scheduler tick, so the ledger
// may lag midnight by at most one tick.
func (l *Ledger) CheckAndReset(now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == nil {
		return false
	}
	if sameDate(l.state.LastUpdateDate, now) {
		return false
	}
	l.state.CurrentIntake = 0
	l.state.Entries = nil
	l.state.HighAlertShown = false
	l.state.LastUpdateDate = now
	return true
}

// sameDate compares calendar dates only, ignoring time of day.
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
