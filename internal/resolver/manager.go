package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/DeadlyParkour777/solution-share/internal/cache"
	"github.com/DeadlyParkour777/solution-share/internal/types"
	"github.com/google/uuid"
)

// Manager persists manual sessions between events. A session that is not
// touched within the cache TTL disappears, which is how expiry discards the
// partial request. Every event must come from the user who started the
// session.
type Manager struct {
	sessions cache.SessionCache
}

func NewManager(sessions cache.SessionCache) *Manager {
	return &Manager{sessions: sessions}
}

func decode(id string, data []byte) (*Session, error) {
	s := &Session{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return s, nil
}

func (m *Manager) load(ctx context.Context, id, userID string) (*Session, error) {
	data, err := m.sessions.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	s, err := decode(id, data)
	if err != nil {
		return nil, err
	}
	if s.UserID != userID {
		return nil, types.ErrSessionOwner
	}
	return s, nil
}

// save keeps open sessions and drops terminal ones.
func (m *Manager) save(ctx context.Context, s *Session) error {
	if s.Terminal() {
		return m.sessions.DeleteSession(ctx, s.ID)
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return m.sessions.SetSession(ctx, s.ID, data)
}

func (m *Manager) Start(ctx context.Context, userID, placeholder string) (*Session, error) {
	s := NewSession(uuid.New().String(), userID)
	if err := s.Start(placeholder); err != nil {
		return nil, err
	}
	if err := m.save(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return s, nil
}

func (m *Manager) SelectLanguage(ctx context.Context, id, userID, lang string) (*Session, error) {
	s, err := m.load(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if err := s.SelectLanguage(lang); err != nil {
		if s.Terminal() {
			if closeErr := m.save(ctx, s); closeErr != nil {
				log.Printf("Failed to close session %s: %v", s.ID, closeErr)
			}
		}
		return s, err
	}
	if err := m.save(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return s, nil
}

// SubmitCode takes the session out of the cache before running the
// transition, so a request is produced at most once per session. A session
// the event does not apply to is put back.
func (m *Manager) SubmitCode(ctx context.Context, id, userID, link, code string) (types.SubmissionRequest, error) {
	data, err := m.sessions.TakeSession(ctx, id)
	if err != nil {
		return types.SubmissionRequest{}, err
	}
	s, err := decode(id, data)
	if err != nil {
		return types.SubmissionRequest{}, err
	}
	if s.UserID != userID {
		m.restore(ctx, s)
		return types.SubmissionRequest{}, types.ErrSessionOwner
	}

	req, err := s.SubmitCode(link, code)
	if !s.Terminal() {
		m.restore(ctx, s)
	}
	return req, err
}

func (m *Manager) restore(ctx context.Context, s *Session) {
	if err := m.save(ctx, s); err != nil {
		log.Printf("Failed to restore session %s: %v", s.ID, err)
	}
}

// Cancel expires a session before its TTL.
func (m *Manager) Cancel(ctx context.Context, id, userID string) error {
	s, err := m.load(ctx, id, userID)
	if err != nil {
		return err
	}
	s.Expire()
	return m.save(ctx, s)
}
