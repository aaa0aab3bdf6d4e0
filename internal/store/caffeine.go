package store

import (
	"context"
	"fmt"
	"time"

	"CaffeineSentinel/internal/model"
)

// AddIntake inserts one history row and bumps the member's running total,
// in a single transaction.
func (s *Store) AddIntake(ctx context.Context, memberID int64, e *model.IntakeEvent) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		s.q(`INSERT INTO caffeine_history (id, member_id, menu_id, brand_name, menu_name, caffeine_mg, drinked_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`),
		e.ID, memberID, e.MenuID, e.BrandName, e.MenuName, e.CaffeineMg, e.DrinkedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		s.q(`UPDATE members_caffeine SET current_caffeine = current_caffeine + ?, updated_at = ?
			WHERE member_id = ?`),
		e.CaffeineMg, e.DrinkedAt.Unix(), memberID,
	)
	if err != nil {
		return fmt.Errorf("update current: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// TodayHistory returns the member's intake events for the calendar date of
// now, in chronological order.
func (s *Store) TodayHistory(ctx context.Context, memberID int64, now time.Time) ([]model.IntakeEvent, error) {
	start := startOfDay(now)
	return s.historyBetween(ctx, memberID, start, start.AddDate(0, 0, 1))
}

// History returns intake events in [start, end), chronological order.
func (s *Store) History(ctx context.Context, memberID int64, start, end time.Time) ([]model.IntakeEvent, error) {
	return s.historyBetween(ctx, memberID, start, end)
}

func (s *Store) historyBetween(ctx context.Context, memberID int64, start, end time.Time) ([]model.IntakeEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		s.q(`SELECT id, menu_id, brand_name, menu_name, caffeine_mg, drinked_at
			FROM caffeine_history
			WHERE member_id = ? AND drinked_at >= ? AND drinked_at < ?
			ORDER BY drinked_at`),
		memberID, start.Unix(), end.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	events := []model.IntakeEvent{}
	for rows.Next() {
		var e model.IntakeEvent
		var drinkedAt int64
		if err := rows.Scan(&e.ID, &e.MenuID, &e.BrandName, &e.MenuName, &e.CaffeineMg, &drinkedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.DrinkedAt = time.Unix(drinkedAt, 0)
		events = append(events, e)
	}
	return events, rows.Err()
}

// ResetIfStale zeroes the member's running total when the stored updated_at
// falls on an earlier calendar date than now. Returns true if it reset.
func (s *Store) ResetIfStale(ctx context.Context, memberID int64, now time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		s.q(`UPDATE members_caffeine SET current_caffeine = 0, updated_at = ?
			WHERE member_id = ? AND updated_at < ?`),
		now.Unix(), memberID, startOfDay(now).Unix(),
	)
	if err != nil {
		return false, fmt.Errorf("reset member: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// ResetStale zeroes every running total last updated before today. Run by
// the minute sweep; bounded staleness after midnight is accepted.
func (s *Store) ResetStale(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		s.q(`UPDATE members_caffeine SET current_caffeine = 0, updated_at = ?
			WHERE updated_at < ? AND current_caffeine > 0`),
		now.Unix(), startOfDay(now).Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("reset stale: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// DailyStats aggregates today's activity for the ops summary.
func (s *Store) DailyStats(ctx context.Context, now time.Time) (*model.DailyStats, error) {
	start := startOfDay(now).Unix()
	stats := &model.DailyStats{}

	err := s.db.QueryRowContext(ctx,
		s.q(`SELECT COUNT(DISTINCT member_id), COUNT(*), COALESCE(SUM(caffeine_mg), 0)
			FROM caffeine_history WHERE drinked_at >= ?`),
		start,
	).Scan(&stats.ActiveMembers, &stats.IntakeCount, &stats.TotalMg)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		s.q(`SELECT COUNT(*) FROM members_caffeine WHERE current_caffeine >= max_caffeine`),
	).Scan(&stats.OverLimit)
	if err != nil {
		return nil, fmt.Errorf("query over-limit: %w", err)
	}
	return stats, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
