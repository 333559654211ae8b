package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/DeadlyParkour777/solution-share/internal/cache"
	"github.com/DeadlyParkour777/solution-share/internal/complexity"
	"github.com/DeadlyParkour777/solution-share/internal/daily"
	"github.com/DeadlyParkour777/solution-share/internal/judge"
	"github.com/DeadlyParkour777/solution-share/internal/language"
	"github.com/DeadlyParkour777/solution-share/internal/problemurl"
	"github.com/DeadlyParkour777/solution-share/internal/render"
	"github.com/DeadlyParkour777/solution-share/internal/resolver"
	"github.com/DeadlyParkour777/solution-share/internal/sanitize"
	"github.com/DeadlyParkour777/solution-share/internal/store"
	"github.com/DeadlyParkour777/solution-share/internal/types"
	"github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"
)

type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// StartResult is either a finished solution (auto mode) or an open manual
// session waiting for a language.
type StartResult struct {
	Mode      types.Mode              `json:"mode"`
	Solution  *types.RenderedSolution `json:"solution,omitempty"`
	Session   *resolver.Session       `json:"session,omitempty"`
	Languages []string                `json:"languages,omitempty"`
}

type Service interface {
	Start(ctx context.Context, mode types.Mode, author types.Author, opts render.Options) (*StartResult, error)
	SelectLanguage(ctx context.Context, sessionID, userID, lang string) (*resolver.Session, error)
	SubmitCode(ctx context.Context, sessionID, link, code string, author types.Author, opts render.Options) (*types.RenderedSolution, error)
	CancelSession(ctx context.Context, sessionID, userID string) error
	Render(ctx context.Context, req types.SubmissionRequest, author types.Author, opts render.Options) (*types.RenderedSolution, error)

	Daily(ctx context.Context, userID string, opts render.Options) (*types.DailyPost, error)

	AddBookmark(userID, problemURL string) (string, bool, error)
	ListBookmarks(userID string, start int) (*types.BookmarkPage, error)
	RemoveBookmarks(userID string, indices []int) ([]string, error)

	RegisterUser(discordUsername, leetcodeUsername string) (*types.User, error)
	RegisterAdmin(discordID string) error
	IsAdmin(discordID string) (bool, error)
}

type service struct {
	store        store.Store
	judge        judge.Client
	resolver     *resolver.Resolver
	sessions     *resolver.Manager
	difficulties cache.DifficultyCache
	analyzer     *complexity.Analyzer
	kafkaTopic   string
	kafkaWriter  KafkaWriter
	now          func() time.Time
}

func NewService(
	store store.Store,
	client judge.Client,
	sessions cache.SessionCache,
	difficulties cache.DifficultyCache,
	analyzer *complexity.Analyzer,
	kafkaTopic string,
	kafkaWriter KafkaWriter,
) Service {
	return &service{
		store:        store,
		judge:        client,
		resolver:     resolver.New(store, client),
		sessions:     resolver.NewManager(sessions),
		difficulties: difficulties,
		analyzer:     analyzer,
		kafkaTopic:   kafkaTopic,
		kafkaWriter:  kafkaWriter,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Start(ctx context.Context, mode types.Mode, author types.Author, opts render.Options) (*StartResult, error) {
	chosen, username, err := s.resolver.ChooseMode(mode, author.Username)
	if err != nil {
		return nil, err
	}

	if chosen == types.ModeAuto {
		req, err := s.resolver.FetchLatest(ctx, username)
		if err != nil {
			return nil, err
		}
		sol, err := s.Render(ctx, req, author, opts)
		if err != nil {
			return nil, err
		}
		return &StartResult{Mode: types.ModeAuto, Solution: sol}, nil
	}

	session, err := s.sessions.Start(ctx, author.UserID, s.resolver.Placeholder(ctx))
	if err != nil {
		return nil, err
	}
	return &StartResult{Mode: types.ModeManual, Session: session, Languages: language.Choices()}, nil
}

func (s *service) SelectLanguage(ctx context.Context, sessionID, userID, lang string) (*resolver.Session, error) {
	return s.sessions.SelectLanguage(ctx, sessionID, userID, lang)
}

func (s *service) SubmitCode(ctx context.Context, sessionID, link, code string, author types.Author, opts render.Options) (*types.RenderedSolution, error) {
	req, err := s.sessions.SubmitCode(ctx, sessionID, author.UserID, link, code)
	if err != nil {
		return nil, err
	}
	return s.Render(ctx, req, author, opts)
}

func (s *service) CancelSession(ctx context.Context, sessionID, userID string) error {
	return s.sessions.Cancel(ctx, sessionID, userID)
}

// Render runs the pipeline for a resolved request. Only an invalid link can
// fail it; difficulty and complexity degrade to their defaults.
func (s *service) Render(ctx context.Context, req types.SubmissionRequest, author types.Author, opts render.Options) (*types.RenderedSolution, error) {
	problem, err := problemurl.Parse(req.SubmissionURL)
	if err != nil {
		return nil, err
	}
	code := sanitize.Code(req.RawCode, req.Language)

	var (
		difficulty string
		estimate   *types.ComplexityEstimate
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		difficulty = s.difficulty(gctx, problem.Slug)
		return nil
	})
	g.Go(func() error {
		estimate = s.analyzer.Analyze(gctx, req.RawCode)
		return nil
	})
	_ = g.Wait()

	sol := render.Assemble(render.Input{
		Problem:    problem,
		Code:       code,
		Language:   req.Language,
		Complexity: estimate,
		Author:     author,
		Difficulty: difficulty,
		Now:        s.now(),
	}, opts)

	s.publish(ctx, &types.SolutionEvent{
		EventType:     "solution_rendered",
		UserID:        author.UserID,
		ProblemURL:    sol.URL,
		Language:      req.Language,
		DeliveryMode:  sol.DeliveryMode,
		HasComplexity: sol.Complexity != nil,
		RenderedAt:    sol.Timestamp,
	})
	return &sol, nil
}

func (s *service) difficulty(ctx context.Context, slug string) string {
	if slug == "" {
		return ""
	}
	if s.difficulties != nil {
		if d, err := s.difficulties.GetDifficulty(ctx, slug); err == nil {
			return d
		}
	}
	d, err := s.judge.Difficulty(ctx, slug)
	if err != nil {
		log.Printf("Failed to fetch difficulty for %s: %v", slug, err)
		return ""
	}
	if s.difficulties != nil && d != "" {
		if err := s.difficulties.SetDifficulty(ctx, slug, d); err != nil {
			log.Printf("Failed to cache difficulty for %s: %v", slug, err)
		}
	}
	return d
}

func (s *service) publish(ctx context.Context, event *types.SolutionEvent) {
	if s.kafkaWriter == nil {
		return
	}
	err := s.kafkaWriter.WriteMessages(ctx, kafka.Message{
		Topic: s.kafkaTopic,
		Key:   []byte(event.UserID),
		Value: event.Marshal(),
		Time:  time.Now(),
	})
	if err != nil {
		log.Printf("Failed to write solution event: %v", err)
	}
}

func (s *service) Daily(ctx context.Context, userID string, opts render.Options) (*types.DailyPost, error) {
	q, err := s.judge.Daily(ctx)
	if err != nil {
		return nil, err
	}
	post := daily.Format(q, userID, s.now(), opts)
	return &post, nil
}

func (s *service) AddBookmark(userID, problemURL string) (string, bool, error) {
	problem, err := problemurl.Parse(problemURL)
	if err != nil {
		return "", false, err
	}
	if problem.Slug == "" {
		return "", false, &types.ValidationError{Field: "problem_url", Message: "link has no problem slug"}
	}
	added, err := s.store.AddBookmark(userID, problem.Slug)
	if err != nil {
		return "", false, fmt.Errorf("failed to add bookmark: %w", err)
	}
	return problem.Title, added, nil
}

func (s *service) ListBookmarks(userID string, start int) (*types.BookmarkPage, error) {
	return s.store.ListBookmarks(userID, start)
}

func (s *service) RemoveBookmarks(userID string, indices []int) ([]string, error) {
	return s.store.RemoveBookmarks(userID, indices)
}

func (s *service) RegisterUser(discordUsername, leetcodeUsername string) (*types.User, error) {
	return s.store.CreateUser(&types.User{
		DiscordUsername:  discordUsername,
		LeetcodeUsername: leetcodeUsername,
	})
}

func (s *service) RegisterAdmin(discordID string) error {
	return s.store.AddAdmin(discordID)
}

func (s *service) IsAdmin(discordID string) (bool, error) {
	return s.store.IsAdmin(discordID)
}
