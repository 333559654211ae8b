package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DeadlyParkour777/solution-share/internal/cache"
	"github.com/DeadlyParkour777/solution-share/internal/complexity"
	"github.com/DeadlyParkour777/solution-share/internal/judge"
	"github.com/DeadlyParkour777/solution-share/internal/render"
	"github.com/DeadlyParkour777/solution-share/internal/resolver"
	"github.com/DeadlyParkour777/solution-share/internal/types"
	"github.com/segmentio/kafka-go"
)

type fakeStore struct {
	getLeetcodeUsernameFn func(discordUsername string) (string, error)
	getDiscordUsernameFn  func(leetcodeUsername string) (string, error)
	createUserFn          func(user *types.User) (*types.User, error)
	isAdminFn             func(discordID string) (bool, error)
	addAdminFn            func(discordID string) error
	addBookmarkFn         func(discordID, slug string) (bool, error)
	listBookmarksFn       func(discordID string, start int) (*types.BookmarkPage, error)
	removeBookmarksFn     func(discordID string, indices []int) ([]string, error)
}

func (f *fakeStore) GetLeetcodeUsername(discordUsername string) (string, error) {
	if f.getLeetcodeUsernameFn == nil {
		return "", types.ErrUserNotFound
	}
	return f.getLeetcodeUsernameFn(discordUsername)
}

func (f *fakeStore) GetDiscordUsername(leetcodeUsername string) (string, error) {
	if f.getDiscordUsernameFn == nil {
		return "", errors.New("GetDiscordUsername not implemented")
	}
	return f.getDiscordUsernameFn(leetcodeUsername)
}

func (f *fakeStore) CreateUser(user *types.User) (*types.User, error) {
	if f.createUserFn == nil {
		return nil, errors.New("CreateUser not implemented")
	}
	return f.createUserFn(user)
}

func (f *fakeStore) IsAdmin(discordID string) (bool, error) {
	if f.isAdminFn == nil {
		return false, errors.New("IsAdmin not implemented")
	}
	return f.isAdminFn(discordID)
}

func (f *fakeStore) AddAdmin(discordID string) error {
	if f.addAdminFn == nil {
		return errors.New("AddAdmin not implemented")
	}
	return f.addAdminFn(discordID)
}

func (f *fakeStore) AddBookmark(discordID, slug string) (bool, error) {
	if f.addBookmarkFn == nil {
		return false, errors.New("AddBookmark not implemented")
	}
	return f.addBookmarkFn(discordID, slug)
}

func (f *fakeStore) ListBookmarks(discordID string, start int) (*types.BookmarkPage, error) {
	if f.listBookmarksFn == nil {
		return nil, errors.New("ListBookmarks not implemented")
	}
	return f.listBookmarksFn(discordID, start)
}

func (f *fakeStore) RemoveBookmarks(discordID string, indices []int) ([]string, error) {
	if f.removeBookmarksFn == nil {
		return nil, errors.New("RemoveBookmarks not implemented")
	}
	return f.removeBookmarksFn(discordID, indices)
}

type fakeJudge struct {
	dailyFn               func(ctx context.Context) (*types.DailyQuestion, error)
	acceptedSubmissionsFn func(ctx context.Context, username string) ([]types.AcceptedSubmission, error)
	submissionCodeFn      func(ctx context.Context, id string) (string, error)
	difficultyFn          func(ctx context.Context, slug string) (string, error)
}

func (f *fakeJudge) Daily(ctx context.Context) (*types.DailyQuestion, error) {
	if f.dailyFn == nil {
		return nil, errors.New("Daily not implemented")
	}
	return f.dailyFn(ctx)
}

func (f *fakeJudge) AcceptedSubmissions(ctx context.Context, username string) ([]types.AcceptedSubmission, error) {
	if f.acceptedSubmissionsFn == nil {
		return nil, errors.New("AcceptedSubmissions not implemented")
	}
	return f.acceptedSubmissionsFn(ctx, username)
}

func (f *fakeJudge) SubmissionCode(ctx context.Context, id string) (string, error) {
	if f.submissionCodeFn == nil {
		return "", errors.New("SubmissionCode not implemented")
	}
	return f.submissionCodeFn(ctx, id)
}

func (f *fakeJudge) Difficulty(ctx context.Context, slug string) (string, error) {
	if f.difficultyFn == nil {
		return "", errors.New("Difficulty not implemented")
	}
	return f.difficultyFn(ctx, slug)
}

type memSessions struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memSessions) GetSession(_ context.Context, id string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.data[id]
	if !ok {
		return nil, types.ErrSessionNotFound
	}
	return d, nil
}

func (m *memSessions) TakeSession(_ context.Context, id string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.data[id]
	if !ok {
		return nil, types.ErrSessionNotFound
	}
	delete(m.data, id)
	return d, nil
}

func (m *memSessions) SetSession(_ context.Context, id string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[id] = data
	return nil
}

func (m *memSessions) DeleteSession(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}

type fakeDifficultyCache struct {
	mu   sync.Mutex
	data map[string]string
}

func (f *fakeDifficultyCache) GetDifficulty(_ context.Context, slug string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.data[slug]
	if !ok {
		return "", cache.ErrMiss
	}
	return d, nil
}

func (f *fakeDifficultyCache) SetDifficulty(_ context.Context, slug, difficulty string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[slug] = difficulty
	return nil
}

type fakeCompleter struct {
	completeFn func(ctx context.Context, prompt string) (string, error)
	calls      int
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.completeFn == nil {
		return "", errors.New("Complete not implemented")
	}
	return f.completeFn(ctx, prompt)
}

type fakeWriter struct {
	messages []kafka.Message
	err      error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.messages = append(f.messages, msgs...)
	return f.err
}

var author = types.Author{UserID: "42", Username: "alice", Mention: "<@42>"}

type fixture struct {
	store      *fakeStore
	judge      *fakeJudge
	sessions   *memSessions
	difficulty *fakeDifficultyCache
	completer  *fakeCompleter
	writer     *fakeWriter
	svc        Service
}

func newFixture() *fixture {
	f := &fixture{
		store:      &fakeStore{},
		judge:      &fakeJudge{},
		sessions:   &memSessions{data: map[string][]byte{}},
		difficulty: &fakeDifficultyCache{data: map[string]string{}},
		completer: &fakeCompleter{completeFn: func(context.Context, string) (string, error) {
			return "```json\n{\"time_complexity\":\"O(n_1)\",\"mem_complexity\":\"O(1)\"}\n```", nil
		}},
		writer: &fakeWriter{},
	}
	f.judge.difficultyFn = func(context.Context, string) (string, error) { return "Medium", nil }
	f.svc = NewService(f.store, f.judge, f.sessions, f.difficulty,
		complexity.NewAnalyzer(f.completer, time.Second), "solution_rendered", f.writer)
	return f
}

func TestRender_SuccessEmitsEvent(t *testing.T) {
	f := newFixture()

	sol, err := f.svc.Render(context.Background(), types.SubmissionRequest{
		Mode:          types.ModeManual,
		Language:      "cpp",
		RawCode:       "if (a || b) return ```x```;",
		SubmissionURL: "https://leetcode.com/problems/two-sum/?envType=daily",
	}, author, render.DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sol.URL != "https://leetcode.com/problems/two-sum" || sol.Title != "Two Sum" {
		t.Fatalf("unexpected problem: %q %q", sol.URL, sol.Title)
	}
	if sol.Color != render.ColorMedium {
		t.Fatalf("unexpected color: %x", sol.Color)
	}
	if strings.Contains(sol.CodeBlock, "a || b") || strings.Contains(sol.CodeBlock, "```x```") {
		t.Fatalf("code was not sanitized: %q", sol.CodeBlock)
	}
	if len(sol.Fields) != 2 || sol.Fields[0].Value != `||O(n\_1)||` {
		t.Fatalf("unexpected fields: %+v", sol.Fields)
	}

	if len(f.writer.messages) != 1 {
		t.Fatalf("expected 1 event, got %d", len(f.writer.messages))
	}
	msg := f.writer.messages[0]
	if msg.Topic != "solution_rendered" {
		t.Fatalf("unexpected topic: %s", msg.Topic)
	}
	var event types.SolutionEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		t.Fatalf("failed to unmarshal event: %v", err)
	}
	if event.EventType != "solution_rendered" || event.UserID != "42" || event.Language != "cpp" || !event.HasComplexity {
		t.Fatalf("unexpected event: %+v", event)
	}
	if event.DeliveryMode != types.DeliveryInline {
		t.Fatalf("unexpected delivery mode: %s", event.DeliveryMode)
	}
}

func TestRender_ComplexityReceivesRawCode(t *testing.T) {
	f := newFixture()
	var prompt string
	f.completer.completeFn = func(_ context.Context, p string) (string, error) {
		prompt = p
		return `{"time_complexity":"O(1)","mem_complexity":"O(1)"}`, nil
	}

	_, err := f.svc.Render(context.Background(), types.SubmissionRequest{
		Language:      "go",
		RawCode:       "return a || b",
		SubmissionURL: "https://leetcode.com/problems/two-sum",
	}, author, render.DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(prompt, "return a || b") {
		t.Fatalf("analyzer must see the code before sanitization")
	}
}

func TestRender_InvalidLinkAbortsBeforeWork(t *testing.T) {
	f := newFixture()
	difficultyCalls := 0
	f.judge.difficultyFn = func(context.Context, string) (string, error) {
		difficultyCalls++
		return "Easy", nil
	}

	_, err := f.svc.Render(context.Background(), types.SubmissionRequest{
		Language:      "python",
		RawCode:       "print(1)",
		SubmissionURL: "http://example.com/foo",
	}, author, render.DefaultOptions())
	if !types.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if f.completer.calls != 0 || difficultyCalls != 0 || len(f.writer.messages) != 0 {
		t.Fatalf("pipeline continued after a validation error")
	}
}

func TestRender_DegradesWithoutFailing(t *testing.T) {
	f := newFixture()
	f.completer.completeFn = func(context.Context, string) (string, error) { return "", errors.New("quota exceeded") }
	f.judge.difficultyFn = func(context.Context, string) (string, error) {
		return "", &types.FetchError{Op: "fetch difficulty", Err: errors.New("503 Service Unavailable")}
	}
	f.writer.err = errors.New("kafka down")

	sol, err := f.svc.Render(context.Background(), types.SubmissionRequest{
		Language:      "python",
		RawCode:       "print(1)",
		SubmissionURL: "https://leetcode.com/problems/two-sum",
	}, author, render.DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sol.Complexity != nil || len(sol.Fields) != 0 {
		t.Fatalf("expected complexity to be omitted")
	}
	if sol.Color != render.ColorDefault {
		t.Fatalf("expected default color, got %x", sol.Color)
	}
}

func TestRender_DifficultyCache(t *testing.T) {
	f := newFixture()
	calls := 0
	f.judge.difficultyFn = func(context.Context, string) (string, error) {
		calls++
		return "Hard", nil
	}
	req := types.SubmissionRequest{Language: "python", RawCode: "x", SubmissionURL: "https://leetcode.com/problems/two-sum"}

	for i := 0; i < 2; i++ {
		sol, err := f.svc.Render(context.Background(), req, author, render.DefaultOptions())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sol.Color != render.ColorHard {
			t.Fatalf("unexpected color: %x", sol.Color)
		}
	}
	if calls != 1 {
		t.Fatalf("expected one judge lookup, got %d", calls)
	}
}

func TestStart_Auto(t *testing.T) {
	f := newFixture()
	f.store.getLeetcodeUsernameFn = func(string) (string, error) { return "alice_lc", nil }
	f.judge.acceptedSubmissionsFn = func(context.Context, string) ([]types.AcceptedSubmission, error) {
		return []types.AcceptedSubmission{{ID: "9", TitleSlug: "1-two-sum", Lang: "python3", Timestamp: json.RawMessage(`"5"`)}}, nil
	}
	f.judge.submissionCodeFn = func(context.Context, string) (string, error) { return "print(1)", nil }

	res, err := f.svc.Start(context.Background(), "", author, render.DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Mode != types.ModeAuto || res.Solution == nil {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Solution.Title != "1. Two Sum" || !strings.Contains(res.Solution.CodeBlock, "```python\n") {
		t.Fatalf("unexpected solution: %+v", res.Solution)
	}
}

func TestStart_AutoFetchFailure(t *testing.T) {
	f := newFixture()
	f.store.getLeetcodeUsernameFn = func(string) (string, error) { return "alice_lc", nil }
	f.judge.acceptedSubmissionsFn = func(context.Context, string) ([]types.AcceptedSubmission, error) {
		return nil, &types.FetchError{Op: "fetch accepted submissions", Err: judge.ErrNoSubmissions}
	}

	_, err := f.svc.Start(context.Background(), types.ModeAuto, author, render.DefaultOptions())
	if !types.IsFetch(err) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if len(f.writer.messages) != 0 {
		t.Fatalf("no event expected on failure")
	}
}

func TestStart_AutoUnavailable(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Start(context.Background(), types.ModeAuto, author, render.DefaultOptions())
	if !errors.Is(err, types.ErrAutoModeUnavailable) {
		t.Fatalf("expected ErrAutoModeUnavailable, got %v", err)
	}
}

func TestManualFlow(t *testing.T) {
	f := newFixture()
	f.judge.dailyFn = func(context.Context) (*types.DailyQuestion, error) {
		return &types.DailyQuestion{QuestionLink: "https://leetcode.com/problems/daily/"}, nil
	}
	ctx := context.Background()

	res, err := f.svc.Start(ctx, "", author, render.DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Mode != types.ModeManual || res.Session == nil {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Session.Placeholder != "https://leetcode.com/problems/daily/" {
		t.Fatalf("unexpected placeholder: %q", res.Session.Placeholder)
	}
	if len(res.Languages) != 18 {
		t.Fatalf("unexpected language choices: %v", res.Languages)
	}

	if _, err := f.svc.SelectLanguage(ctx, res.Session.ID, "someone-else", "js"); !errors.Is(err, types.ErrSessionOwner) {
		t.Fatalf("expected ErrSessionOwner, got %v", err)
	}

	s, err := f.svc.SelectLanguage(ctx, res.Session.ID, author.UserID, "js")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.State != resolver.StateAwaitingCode {
		t.Fatalf("unexpected state: %s", s.State)
	}

	sol, err := f.svc.SubmitCode(ctx, s.ID, "https://leetcode.com/problems/valid-anagram/submissions/77/", "return a || b;", author, render.Options{HideSpoilers: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sol.URL != "https://leetcode.com/problems/valid-anagram" {
		t.Fatalf("unexpected url: %s", sol.URL)
	}
	if strings.Contains(sol.Description, "||") {
		t.Fatalf("spoilers were disabled for this render: %q", sol.Description)
	}

	if _, err := f.svc.SelectLanguage(ctx, s.ID, author.UserID, "go"); !errors.Is(err, types.ErrSessionNotFound) {
		t.Fatalf("resolved session should be gone, got %v", err)
	}
}

func TestDaily(t *testing.T) {
	f := newFixture()
	f.judge.dailyFn = func(context.Context) (*types.DailyQuestion, error) {
		return &types.DailyQuestion{
			QuestionLink:       "https://leetcode.com/problems/two-sum/",
			QuestionFrontendID: "1",
			QuestionTitle:      "Two Sum",
			Difficulty:         "Easy",
		}, nil
	}

	post, err := f.svc.Daily(context.Background(), "42", render.DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.Color != render.ColorEasy || post.Bookmark.UserID != "42" {
		t.Fatalf("unexpected post: %+v", post)
	}
}

func TestAddBookmark(t *testing.T) {
	f := newFixture()
	f.store.addBookmarkFn = func(discordID, slug string) (bool, error) {
		if discordID != "42" || slug != "two-sum" {
			t.Fatalf("unexpected bookmark: %s %s", discordID, slug)
		}
		return true, nil
	}

	title, added, err := f.svc.AddBookmark("42", "https://leetcode.com/problems/two-sum/description/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if title != "Two Sum" || !added {
		t.Fatalf("unexpected result: %q %v", title, added)
	}

	if _, _, err := f.svc.AddBookmark("42", "https://example.com/problems/x"); !types.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegisterUser(t *testing.T) {
	f := newFixture()
	f.store.createUserFn = func(user *types.User) (*types.User, error) {
		if user.DiscordUsername != "alice" || user.LeetcodeUsername != "alice_lc" {
			t.Fatalf("unexpected user: %+v", user)
		}
		user.ID = "u1"
		return user, nil
	}

	user, err := f.svc.RegisterUser("alice", "alice_lc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "u1" {
		t.Fatalf("unexpected id: %s", user.ID)
	}
}
