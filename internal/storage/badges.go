package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
)

// LoadShownBadges returns the badge ids already surfaced, keyed by goal.
func (s *SQLiteStorage) LoadShownBadges(ctx context.Context) (map[string][]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT goal, badge_id FROM shown_badges ORDER BY goal, badge_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query shown badges: %w", err)
	}
	defer func() { _ = rows.Close() }()

	shown := make(map[string][]string)
	for rows.Next() {
		var goal, badgeID string
		if err := rows.Scan(&goal, &badgeID); err != nil {
			return nil, fmt.Errorf("failed to scan shown badge: %w", err)
		}
		shown[goal] = append(shown[goal], badgeID)
	}
	return shown, rows.Err()
}

// SaveShownBadges replaces the stored shown-badge state.
func (s *SQLiteStorage) SaveShownBadges(ctx context.Context, shown map[string][]string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	return s.replace(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM shown_badges`); err != nil {
			return fmt.Errorf("failed to clear shown badges: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT OR IGNORE INTO shown_badges (goal, badge_id) VALUES (?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, goal := range sortedKeys(shown) {
			for _, id := range shown[goal] {
				if _, err := stmt.ExecContext(ctx, goal, id); err != nil {
					return fmt.Errorf("failed to save badge %s for %q: %w", id, goal, err)
				}
			}
		}
		return nil
	})
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
