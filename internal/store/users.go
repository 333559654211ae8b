package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/DeadlyParkour777/solution-share/internal/types"
	"github.com/google/uuid"
)

func (s *store) GetLeetcodeUsername(discordUsername string) (string, error) {
	var name string
	query := `SELECT leetcode_username FROM users WHERE discord_username = $1`

	err := s.db.QueryRow(query, discordUsername).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", types.ErrUserNotFound
		}
		return "", fmt.Errorf("could not get leetcode username: %w", err)
	}
	return name, nil
}

func (s *store) GetDiscordUsername(leetcodeUsername string) (string, error) {
	var name string
	query := `SELECT discord_username FROM users WHERE leetcode_username = $1`

	err := s.db.QueryRow(query, leetcodeUsername).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", types.ErrUserNotFound
		}
		return "", fmt.Errorf("could not get discord username: %w", err)
	}
	return name, nil
}

// CreateUser registers a discord to leetcode mapping. Each side may be
// registered once; a conflict names the existing counterpart.
func (s *store) CreateUser(user *types.User) (*types.User, error) {
	if lc, err := s.GetLeetcodeUsername(user.DiscordUsername); err == nil {
		return nil, fmt.Errorf("%w: discord user %s already registered as %s", types.ErrAlreadyRegistered, user.DiscordUsername, lc)
	} else if !errors.Is(err, types.ErrUserNotFound) {
		return nil, err
	}
	if dc, err := s.GetDiscordUsername(user.LeetcodeUsername); err == nil {
		return nil, fmt.Errorf("%w: user %s already registered with Discord: %s", types.ErrAlreadyRegistered, user.LeetcodeUsername, dc)
	} else if !errors.Is(err, types.ErrUserNotFound) {
		return nil, err
	}

	user.ID = uuid.New().String()
	query := `INSERT INTO users (id, discord_username, leetcode_username) VALUES ($1, $2, $3) RETURNING created_at`

	err := s.db.QueryRow(query, user.ID, user.DiscordUsername, user.LeetcodeUsername).Scan(&user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("could not create user: %w", err)
	}
	return user, nil
}

func (s *store) IsAdmin(discordID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM admins WHERE discord_id = $1)`
	if err := s.db.QueryRow(query, discordID).Scan(&exists); err != nil {
		return false, fmt.Errorf("could not check admin: %w", err)
	}
	return exists, nil
}

func (s *store) AddAdmin(discordID string) error {
	query := `INSERT INTO admins (discord_id) VALUES ($1) ON CONFLICT (discord_id) DO NOTHING`
	if _, err := s.db.Exec(query, discordID); err != nil {
		return fmt.Errorf("could not add admin: %w", err)
	}
	return nil
}
