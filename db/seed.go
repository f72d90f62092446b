// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// SeedQuestion is a question inserted on first start.
type SeedQuestion struct {
	ID      int64
	OptionA string
	OptionB string
}

// DefaultQuestions covers ids 1 through 10, the range the client draws from.
var DefaultQuestions = []SeedQuestion{
	{1, "Cats", "Dogs"},
	{2, "Tabs", "Spaces"},
	{3, "Coffee", "Tea"},
	{4, "Mountains", "Beach"},
	{5, "Early bird", "Night owl"},
	{6, "Books", "Movies"},
	{7, "Pizza", "Burgers"},
	{8, "Summer", "Winter"},
	{9, "Vim", "Emacs"},
	{10, "Sunrise", "Sunset"},
}

// SeedQuestions inserts questions that don't exist yet. Existing rows (and
// their tallies) are left alone.
func SeedQuestions(db *sql.DB, questions []SeedQuestion) (int, error) {
	inserted := 0
	for _, q := range questions {
		res, err := db.Exec(`
			INSERT INTO question (id, option_a, option_b, votes_a, votes_b)
			VALUES ($1, $2, $3, 0, 0)
			ON CONFLICT (id) DO NOTHING
		`, q.ID, q.OptionA, q.OptionB)
		if err != nil {
			return inserted, fmt.Errorf("failed to seed question %d: %w", q.ID, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	return inserted, nil
}
