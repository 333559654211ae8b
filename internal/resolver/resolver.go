package resolver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/DeadlyParkour777/solution-share/internal/judge"
	"github.com/DeadlyParkour777/solution-share/internal/language"
	"github.com/DeadlyParkour777/solution-share/internal/problemurl"
	"github.com/DeadlyParkour777/solution-share/internal/types"
)

// UserStore maps a chat identity to its registered LeetCode username.
type UserStore interface {
	GetLeetcodeUsername(discordUsername string) (string, error)
}

type Resolver struct {
	users UserStore
	judge judge.Client
}

func New(users UserStore, client judge.Client) *Resolver {
	return &Resolver{users: users, judge: client}
}

// Username returns the registered LeetCode username, or "" when there is
// none. Lookup errors are logged and treated as unregistered.
func (r *Resolver) Username(discordUsername string) string {
	if r.users == nil || discordUsername == "" {
		return ""
	}
	name, err := r.users.GetLeetcodeUsername(discordUsername)
	if err != nil {
		if !errors.Is(err, types.ErrUserNotFound) {
			log.Printf("Failed to look up LeetCode username for %s: %v", discordUsername, err)
		}
		return ""
	}
	return strings.TrimSpace(name)
}

// ChooseMode resolves an optional requested mode. Without a request, auto is
// used when the identity has a registered username.
func (r *Resolver) ChooseMode(requested types.Mode, discordUsername string) (types.Mode, string, error) {
	username := r.Username(discordUsername)
	switch requested {
	case types.ModeAuto:
		if username == "" {
			return "", "", types.ErrAutoModeUnavailable
		}
		return types.ModeAuto, username, nil
	case types.ModeManual:
		return types.ModeManual, username, nil
	case "":
		if username != "" {
			return types.ModeAuto, username, nil
		}
		return types.ModeManual, "", nil
	default:
		return "", "", &types.ValidationError{Field: "mode", Message: fmt.Sprintf("unknown mode %q", requested)}
	}
}

// FetchLatest builds a request from the user's most recent accepted
// submission. Failures are returned as *types.FetchError and never retried.
func (r *Resolver) FetchLatest(ctx context.Context, username string) (types.SubmissionRequest, error) {
	subs, err := r.judge.AcceptedSubmissions(ctx, username)
	if err != nil {
		return types.SubmissionRequest{}, err
	}
	latest, err := judge.Latest(subs)
	if err != nil {
		return types.SubmissionRequest{}, &types.FetchError{Op: "select latest submission", Err: err}
	}
	code, err := r.judge.SubmissionCode(ctx, latest.ID)
	if err != nil {
		return types.SubmissionRequest{}, err
	}
	return types.SubmissionRequest{
		Mode:          types.ModeAuto,
		Language:      language.Normalize(latest.Lang),
		RawCode:       code,
		SubmissionURL: problemurl.FromSlug(latest.TitleSlug),
	}, nil
}

// Placeholder is the example link shown in the manual code form: today's
// daily question when the proxy answers, otherwise Two Sum.
func (r *Resolver) Placeholder(ctx context.Context) string {
	daily, err := r.judge.Daily(ctx)
	if err != nil || daily.QuestionLink == "" {
		return DefaultPlaceholder
	}
	return daily.QuestionLink
}

const DefaultPlaceholder = "https://leetcode.com/problems/two-sum"
