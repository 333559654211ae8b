package types

import (
	"encoding/json"
	"time"
)

type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeManual Mode = "manual"
)

type DeliveryMode string

const (
	DeliveryInline     DeliveryMode = "inline"
	DeliveryAttachment DeliveryMode = "attachment"
)

const UnknownComplexity = "unknown"

// SubmissionRequest is built once per invocation and consumed by the pipeline.
type SubmissionRequest struct {
	Mode          Mode   `json:"mode"`
	Language      string `json:"language"`
	RawCode       string `json:"raw_code"`
	SubmissionURL string `json:"submission_url"`
}

type CanonicalProblem struct {
	Slug         string `json:"slug"`
	Title        string `json:"title"`
	CanonicalURL string `json:"canonical_url"`
}

// ComplexityEstimate holds both fields or is absent; the pipeline passes nil
// when there is no estimate.
type ComplexityEstimate struct {
	Time string `json:"time_complexity"`
	Mem  string `json:"mem_complexity"`
}

type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type Attachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type Bookmark struct {
	UserID     string `json:"user_id"`
	ProblemURL string `json:"problem_url"`
}

type Author struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Mention  string `json:"mention"`
}

type RenderedSolution struct {
	Title        string              `json:"title"`
	URL          string              `json:"url"`
	Author       string              `json:"author"`
	Color        int                 `json:"color"`
	Description  string              `json:"description"`
	CodeBlock    string              `json:"code_block"`
	Fields       []Field             `json:"fields,omitempty"`
	Complexity   *ComplexityEstimate `json:"complexity,omitempty"`
	DeliveryMode DeliveryMode        `json:"delivery_mode"`
	Attachment   *Attachment         `json:"attachment,omitempty"`
	Content      string              `json:"content,omitempty"`
	Bookmark     Bookmark            `json:"bookmark"`
	Timestamp    time.Time           `json:"timestamp"`
}

// AcceptedSubmission is one entry of the judge proxy's acSubmission list.
type AcceptedSubmission struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	TitleSlug string          `json:"titleSlug"`
	Lang      string          `json:"lang"`
	Timestamp json.RawMessage `json:"timestamp"`
}

type TopicTag struct {
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

type DailyQuestion struct {
	QuestionLink       string     `json:"questionLink"`
	QuestionFrontendID string     `json:"questionFrontendId"`
	QuestionTitle      string     `json:"questionTitle"`
	Difficulty         string     `json:"difficulty"`
	IsPaidOnly         bool       `json:"isPaidOnly"`
	Question           string     `json:"question"`
	TopicTags          []TopicTag `json:"topicTags"`
	Hints              []string   `json:"hints"`
	Likes              int        `json:"likes"`
	Dislikes           int        `json:"dislikes"`
}

type User struct {
	ID               string    `json:"id"`
	DiscordUsername  string    `json:"discord_username"`
	LeetcodeUsername string    `json:"leetcode_username"`
	CreatedAt        time.Time `json:"created_at"`
}

type BookmarkPage struct {
	Slugs []string `json:"bookmarks"`
	Total int      `json:"total"`
	Start int      `json:"start"`
}

type SolutionEvent struct {
	EventType     string       `json:"event_type"`
	UserID        string       `json:"user_id"`
	ProblemURL    string       `json:"problem_url"`
	Language      string       `json:"language"`
	DeliveryMode  DeliveryMode `json:"delivery_mode"`
	HasComplexity bool         `json:"has_complexity"`
	RenderedAt    time.Time    `json:"rendered_at"`
}

func (e *SolutionEvent) Marshal() []byte {
	data, _ := json.Marshal(e)
	return data
}

// DailyPost is the formatted daily question handed to the presentation layer.
type DailyPost struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Color       int       `json:"color"`
	Description string    `json:"description"`
	Bookmark    Bookmark  `json:"bookmark"`
	Timestamp   time.Time `json:"timestamp"`
}
