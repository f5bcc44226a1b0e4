package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Veraticus/nest-egg/internal/model"
)

// LoadGoals returns every goal in display order, newest first.
func (s *SQLiteStorage) LoadGoals(ctx context.Context) ([]model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, target, target_date, monthly_needed, saved, created_at
		FROM goals
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var goals []model.Goal
	for rows.Next() {
		var (
			g                      model.Goal
			target, monthly, saved string
			targetDate, createdAt  time.Time
		)
		if err := rows.Scan(&g.Name, &target, &targetDate, &monthly, &saved, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		if g.Target, err = parseMoney("target", target); err != nil {
			return nil, err
		}
		if g.MonthlyNeeded, err = parseMoney("monthly_needed", monthly); err != nil {
			return nil, err
		}
		if g.Saved, err = parseMoney("saved", saved); err != nil {
			return nil, err
		}
		g.Date = targetDate.Local()
		g.CreatedAt = createdAt.Local()
		g.Shown = model.NewBadgeSet()
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// SaveGoals replaces the stored goals with the given snapshot.
func (s *SQLiteStorage) SaveGoals(ctx context.Context, goals []model.Goal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateGoals(goals); err != nil {
		return err
	}

	return s.replace(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM goals`); err != nil {
			return fmt.Errorf("failed to clear goals: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO goals (position, name, target, target_date, monthly_needed, saved, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for i, g := range goals {
			if _, err := stmt.ExecContext(ctx,
				i,
				g.Name,
				g.Target.String(),
				g.Date.UTC(),
				g.MonthlyNeeded.String(),
				g.Saved.String(),
				g.CreatedAt.UTC(),
			); err != nil {
				return fmt.Errorf("failed to save goal %q: %w", g.Name, err)
			}
		}
		return nil
	})
}
