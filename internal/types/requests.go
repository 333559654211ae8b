package types

type SolutionRequest struct {
	UserID       string `json:"user_id"`
	Username     string `json:"username" validate:"required"`
	Mention      string `json:"mention"`
	Mode         Mode   `json:"mode" validate:"omitempty,oneof=auto manual"`
	HideSpoilers *bool  `json:"hide_spoilers"`
}

type LanguageRequest struct {
	UserID   string `json:"user_id"`
	Language string `json:"language" validate:"required"`
}

type CodeRequest struct {
	SubmissionURL string `json:"submission_url" validate:"required"`
	Code          string `json:"code" validate:"required"`
	UserID        string `json:"user_id"`
	Username      string `json:"username"`
	Mention       string `json:"mention"`
	HideSpoilers  *bool  `json:"hide_spoilers"`
}

type BookmarkRequest struct {
	UserID     string `json:"user_id"`
	ProblemURL string `json:"problem_url" validate:"required"`
}

type RemoveBookmarksRequest struct {
	Indices []int `json:"indices" validate:"required,min=1"`
}

type RegisterUserRequest struct {
	DiscordUsername  string `json:"discord_username" validate:"required,max=255"`
	LeetcodeUsername string `json:"leetcode_username" validate:"required,max=255"`
}

type RegisterAdminRequest struct {
	DiscordID string `json:"discord_id" validate:"required,numeric"`
}

// SessionResponse describes an open manual session to the client.
type SessionResponse struct {
	SessionID   string   `json:"session_id"`
	State       string   `json:"state"`
	Language    string   `json:"language,omitempty"`
	Languages   []string `json:"languages,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
}

type JSONResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}
