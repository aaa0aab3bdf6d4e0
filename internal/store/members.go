package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"CaffeineSentinel/internal/model"
)

// CreateMember inserts a member and their caffeine profile in one transaction.
// Returns the new member id.
func (s *Store) CreateMember(ctx context.Context, m *model.Member, p *model.CaffeineProfile) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var memberID int64
	err = tx.QueryRowContext(ctx,
		s.q(`INSERT INTO members (username, password, name, point) VALUES (?, ?, ?, 0) RETURNING member_id`),
		m.Username, m.Password, m.Name,
	).Scan(&memberID)
	if err != nil {
		return 0, fmt.Errorf("insert member: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		s.q(`INSERT INTO members_caffeine
			(member_id, birth_date, weight_kg, gender, current_caffeine, max_caffeine, updated_at)
			VALUES (?, ?, ?, ?, 0, ?, ?)`),
		memberID, p.BirthDate, p.WeightKg, p.Gender, p.MaxCaffeine, time.Now().Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return memberID, nil
}

// MemberByUsername returns the member with the given username, or ErrNotFound.
func (s *Store) MemberByUsername(ctx context.Context, username string) (*model.Member, error) {
	var m model.Member
	err := s.db.QueryRowContext(ctx,
		s.q(`SELECT member_id, username, password, name, point FROM members WHERE username = ?`),
		username,
	).Scan(&m.MemberID, &m.Username, &m.Password, &m.Name, &m.Point)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query member: %w", err)
	}
	return &m, nil
}

// Member returns the member with the given id, or ErrNotFound.
func (s *Store) Member(ctx context.Context, memberID int64) (*model.Member, error) {
	var m model.Member
	err := s.db.QueryRowContext(ctx,
		s.q(`SELECT member_id, username, password, name, point FROM members WHERE member_id = ?`),
		memberID,
	).Scan(&m.MemberID, &m.Username, &m.Password, &m.Name, &m.Point)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query member: %w", err)
	}
	return &m, nil
}

// UpdateMemberName renames a member.
func (s *Store) UpdateMemberName(ctx context.Context, memberID int64, name string) error {
	_, err := s.db.ExecContext(ctx,
		s.q(`UPDATE members SET name = ? WHERE member_id = ?`), name, memberID)
	if err != nil {
		return fmt.Errorf("update name: %w", err)
	}
	return nil
}

// Profile returns the caffeine profile for a member, or ErrNotFound.
func (s *Store) Profile(ctx context.Context, memberID int64) (*model.CaffeineProfile, error) {
	var p model.CaffeineProfile
	var updatedAt int64
	err := s.db.QueryRowContext(ctx,
		s.q(`SELECT member_id, birth_date, weight_kg, gender, current_caffeine, max_caffeine, updated_at
			FROM members_caffeine WHERE member_id = ?`),
		memberID,
	).Scan(&p.MemberID, &p.BirthDate, &p.WeightKg, &p.Gender, &p.CurrentCaffeine, &p.MaxCaffeine, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}
	p.UpdatedAt = time.Unix(updatedAt, 0)
	return &p, nil
}

// UpdateProfile applies the non-nil fields and touches updated_at.
func (s *Store) UpdateProfile(ctx context.Context, memberID int64, weightKg *float64, maxCaffeine *int) error {
	if weightKg == nil && maxCaffeine == nil {
		return nil
	}
	set := "updated_at = ?"
	args := []any{time.Now().Unix()}
	if weightKg != nil {
		set += ", weight_kg = ?"
		args = append(args, *weightKg)
	}
	if maxCaffeine != nil {
		set += ", max_caffeine = ?"
		args = append(args, *maxCaffeine)
	}
	args = append(args, memberID)

	res, err := s.db.ExecContext(ctx,
		s.q(`UPDATE members_caffeine SET `+set+` WHERE member_id = ?`), args...)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
