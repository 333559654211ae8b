package resolver

import (
	"fmt"
	"strings"

	"github.com/DeadlyParkour777/solution-share/internal/language"
	"github.com/DeadlyParkour777/solution-share/internal/problemurl"
	"github.com/DeadlyParkour777/solution-share/internal/types"
)

type State string

const (
	StateIdle             State = "idle"
	StateAwaitingLanguage State = "awaiting_language"
	StateAwaitingCode     State = "awaiting_code"
	StateResolved         State = "resolved"
	StateFailed           State = "failed"
)

// Session is the manual-mode state machine. It has no UI dependency: the
// presentation layer feeds it events and renders whatever state it reports.
type Session struct {
	ID          string                   `json:"id"`
	UserID      string                   `json:"user_id"`
	State       State                    `json:"state"`
	Language    string                   `json:"language,omitempty"`
	Placeholder string                   `json:"placeholder,omitempty"`
	Request     *types.SubmissionRequest `json:"request,omitempty"`
	Reason      string                   `json:"reason,omitempty"`
}

func NewSession(id, userID string) *Session {
	return &Session{ID: id, UserID: userID, State: StateIdle}
}

func (s *Session) Terminal() bool {
	return s.State == StateResolved || s.State == StateFailed
}

func (s *Session) transitionError(event string) error {
	return fmt.Errorf("%w: %s in state %s", types.ErrInvalidTransition, event, s.State)
}

func (s *Session) fail(err error) error {
	s.State = StateFailed
	s.Reason = err.Error()
	s.Request = nil
	return err
}

// Start opens the language selector. placeholder is the example link shown in
// the code form.
func (s *Session) Start(placeholder string) error {
	if s.State != StateIdle {
		return s.transitionError("start")
	}
	s.Placeholder = placeholder
	s.State = StateAwaitingLanguage
	return nil
}

func (s *Session) SelectLanguage(lang string) error {
	if s.State != StateAwaitingLanguage {
		return s.transitionError("select language")
	}
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return s.fail(&types.ValidationError{Field: "language", Message: "language is required"})
	}
	s.Language = language.Normalize(lang)
	s.State = StateAwaitingCode
	return nil
}

// SubmitCode validates the link and completes the request. An invalid link
// fails the session; the code itself is taken as given.
func (s *Session) SubmitCode(link, code string) (types.SubmissionRequest, error) {
	if s.State != StateAwaitingCode {
		return types.SubmissionRequest{}, s.transitionError("submit code")
	}
	valid, err := problemurl.ValidateSubmissionLink(link)
	if err == nil {
		_, err = problemurl.Parse(valid)
	}
	if err != nil {
		return types.SubmissionRequest{}, s.fail(err)
	}
	req := types.SubmissionRequest{
		Mode:          types.ModeManual,
		Language:      s.Language,
		RawCode:       code,
		SubmissionURL: problemurl.StripSubmissions(valid),
	}
	s.Request = &req
	s.State = StateResolved
	return req, nil
}

// Expire discards any partial request. Terminal sessions are left as they are.
func (s *Session) Expire() {
	if s.Terminal() {
		return
	}
	s.State = StateFailed
	s.Reason = "session timed out"
	s.Request = nil
}
