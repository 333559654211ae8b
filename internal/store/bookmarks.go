package store

import (
	"fmt"

	"github.com/DeadlyParkour777/solution-share/internal/types"
)

// AddBookmark saves slug for the user and reports whether it was new.
func (s *store) AddBookmark(discordID, slug string) (bool, error) {
	query := `INSERT INTO bookmarks (discord_id, problem_slug) VALUES ($1, $2)
	          ON CONFLICT (discord_id, problem_slug) DO NOTHING`
	res, err := s.db.Exec(query, discordID, slug)
	if err != nil {
		return false, fmt.Errorf("failed to add bookmark: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to add bookmark: %w", err)
	}
	return n == 1, nil
}

// ListBookmarks returns one page of slugs, newest first, starting at offset
// start, together with the user's total.
func (s *store) ListBookmarks(discordID string, start int) (*types.BookmarkPage, error) {
	if start < 0 {
		start = 0
	}
	page := &types.BookmarkPage{Slugs: []string{}, Start: start}

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM bookmarks WHERE discord_id = $1`, discordID).Scan(&page.Total); err != nil {
		return nil, fmt.Errorf("failed to count bookmarks: %w", err)
	}

	query := `SELECT problem_slug FROM bookmarks WHERE discord_id = $1
	          ORDER BY saved_at DESC, id DESC OFFSET $2 LIMIT $3`
	rows, err := s.db.Query(query, discordID, start, BookmarkPageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		page.Slugs = append(page.Slugs, slug)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over bookmark rows: %w", err)
	}
	return page, nil
}

// RemoveBookmarks deletes bookmarks by their 1-based position in the full
// newest-first list. Out of range indices are ignored.
func (s *store) RemoveBookmarks(discordID string, indices []int) ([]string, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query(`SELECT problem_slug FROM bookmarks WHERE discord_id = $1 ORDER BY saved_at DESC, id DESC FOR UPDATE`, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	var all []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		all = append(all, slug)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over bookmark rows: %w", err)
	}

	removed := []string{}
	seen := make(map[int]bool)
	for _, i := range indices {
		if i <= 0 || i > len(all) || seen[i] {
			continue
		}
		seen[i] = true
		if _, err := tx.Exec(`DELETE FROM bookmarks WHERE discord_id = $1 AND problem_slug = $2`, discordID, all[i-1]); err != nil {
			return nil, fmt.Errorf("failed to remove bookmark: %w", err)
		}
		removed = append(removed, all[i-1])
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit bookmark removal: %w", err)
	}
	return removed, nil
}
