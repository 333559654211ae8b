package judge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/DeadlyParkour777/solution-share/internal/types"
)

const maxResponseBytes = 4 << 20

var ErrNoSubmissions = errors.New("no recent accepted submissions found")

// Client talks to the judge proxy that fronts LeetCode.
type Client interface {
	Daily(ctx context.Context) (*types.DailyQuestion, error)
	AcceptedSubmissions(ctx context.Context, username string) ([]types.AcceptedSubmission, error)
	SubmissionCode(ctx context.Context, submissionID string) (string, error)
	Difficulty(ctx context.Context, titleSlug string) (string, error)
}

type client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) Client {
	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *client) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%d %s: %s", resp.StatusCode, http.StatusText(resp.StatusCode), trim(string(body), 200))
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *client) Daily(ctx context.Context) (*types.DailyQuestion, error) {
	var daily types.DailyQuestion
	if err := c.getJSON(ctx, "/daily", &daily); err != nil {
		return nil, &types.FetchError{Op: "fetch daily question", Err: err}
	}
	return &daily, nil
}

func (c *client) AcceptedSubmissions(ctx context.Context, username string) ([]types.AcceptedSubmission, error) {
	var resp struct {
		Submission []types.AcceptedSubmission `json:"submission"`
	}
	if err := c.getJSON(ctx, "/"+url.PathEscape(username)+"/acSubmission", &resp); err != nil {
		return nil, &types.FetchError{Op: "fetch accepted submissions", Err: err}
	}
	if len(resp.Submission) == 0 {
		return nil, &types.FetchError{Op: "fetch accepted submissions", Err: ErrNoSubmissions}
	}
	return resp.Submission, nil
}

func (c *client) SubmissionCode(ctx context.Context, submissionID string) (string, error) {
	var resp struct {
		Code *string `json:"code"`
	}
	if err := c.getJSON(ctx, "/api/scrapeSubmission/"+url.PathEscape(submissionID), &resp); err != nil {
		return "", &types.FetchError{Op: "fetch submission code", Err: err}
	}
	if resp.Code == nil {
		return "", &types.FetchError{Op: "fetch submission code", Err: errors.New("response has no code")}
	}
	return *resp.Code, nil
}

func (c *client) Difficulty(ctx context.Context, titleSlug string) (string, error) {
	var resp struct {
		Difficulty string `json:"difficulty"`
	}
	if err := c.getJSON(ctx, "/select?titleSlug="+url.QueryEscape(titleSlug), &resp); err != nil {
		return "", &types.FetchError{Op: "fetch difficulty", Err: err}
	}
	return resp.Difficulty, nil
}

// Timestamp reads the submission time, which the proxy sends either as a
// string or a number of seconds.
func Timestamp(s types.AcceptedSubmission) (int64, error) {
	raw := strings.Trim(strings.TrimSpace(string(s.Timestamp)), `"`)
	if raw == "" {
		return 0, fmt.Errorf("submission %s has no timestamp", s.ID)
	}
	ts, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("submission %s has invalid timestamp %q", s.ID, raw)
	}
	return ts, nil
}

// Latest picks the most recent submission.
func Latest(subs []types.AcceptedSubmission) (types.AcceptedSubmission, error) {
	if len(subs) == 0 {
		return types.AcceptedSubmission{}, ErrNoSubmissions
	}
	var (
		latest   types.AcceptedSubmission
		latestTS int64 = -1
	)
	for _, s := range subs {
		ts, err := Timestamp(s)
		if err != nil {
			return types.AcceptedSubmission{}, err
		}
		if ts > latestTS {
			latest, latestTS = s, ts
		}
	}
	return latest, nil
}

func trim(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
