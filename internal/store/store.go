package store

import (
	"database/sql"

	"github.com/DeadlyParkour777/solution-share/internal/types"
	_ "github.com/lib/pq"
)

const BookmarkPageSize = 10

type Store interface {
	GetLeetcodeUsername(discordUsername string) (string, error)
	GetDiscordUsername(leetcodeUsername string) (string, error)
	CreateUser(user *types.User) (*types.User, error)

	IsAdmin(discordID string) (bool, error)
	AddAdmin(discordID string) error

	AddBookmark(discordID, slug string) (bool, error)
	ListBookmarks(discordID string, start int) (*types.BookmarkPage, error)
	RemoveBookmarks(discordID string, indices []int) ([]string, error)
}

type store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) Store {
	return &store{db: db}
}
