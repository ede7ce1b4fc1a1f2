package memory

import (
	"sync"
	"time"

	"github.com/inspectly/qassist/internal/domain"
)

// SessionStore is the in-memory implementation of domain.SessionStore.
// It is NOT persistent: state lives for the lifetime of the process only.
// A single coarse lock guards the whole map, which keeps get-or-create,
// appends and ticket increments on one id linearizable.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]*domain.SessionState
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[domain.SessionID]*domain.SessionState),
		now:      time.Now,
	}
}

// getOrCreateLocked returns the state for id, creating a zero-valued one on
// first reference. Callers must hold the write lock.
func (s *SessionStore) getOrCreateLocked(id domain.SessionID) *domain.SessionState {
	state, ok := s.sessions[id]
	if !ok {
		state = &domain.SessionState{}
		s.sessions[id] = state
	}
	return state
}

func (s *SessionStore) GetOrCreate(id domain.SessionID) domain.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return snapshotOf(id, s.getOrCreateLocked(id))
}

func (s *SessionStore) AppendMessage(id domain.SessionID, role domain.Role, content string) domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := domain.Message{
		Role:      role,
		Content:   content,
		Timestamp: s.now(),
	}
	state := s.getOrCreateLocked(id)
	state.Messages = append(state.Messages, msg)
	return msg
}

func (s *SessionStore) RegisterUpload(id domain.SessionID, fileRef string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.getOrCreateLocked(id)
	state.Files = append(state.Files, fileRef)
}

func (s *SessionStore) NextTicket(id domain.SessionID) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.getOrCreateLocked(id)
	state.TicketCounter++
	return domain.FormatTicketNumber(state.TicketCounter)
}

func (s *SessionStore) RecordFeedback(id domain.SessionID, rating any, comment string) domain.FeedbackEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := domain.FeedbackEntry{
		Rating:    rating,
		Comment:   comment,
		Timestamp: s.now(),
	}
	state := s.getOrCreateLocked(id)
	state.Feedback = append(state.Feedback, entry)
	return entry
}

func (s *SessionStore) Files(id domain.SessionID) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.getOrCreateLocked(id)
	out := make([]string, len(state.Files))
	copy(out, state.Files)
	return out
}

// Clear empties messages and files in place and returns the removed file
// names. Feedback and the ticket counter deliberately survive a clear.
func (s *SessionStore) Clear(id domain.SessionID) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	removed := state.Files
	state.Messages = nil
	state.Files = nil
	return removed, nil
}

func (s *SessionStore) Snapshot(id domain.SessionID) (domain.SessionSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[id]
	if !ok {
		return domain.SessionSnapshot{}, domain.ErrSessionNotFound
	}
	return snapshotOf(id, state), nil
}

func (s *SessionStore) FeedbackEntries(id domain.SessionID) []domain.FeedbackEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[id]
	if !ok {
		return nil
	}
	out := make([]domain.FeedbackEntry, len(state.Feedback))
	copy(out, state.Feedback)
	return out
}

// snapshotOf copies the exported fields so later mutations of the live
// state never leak into a snapshot already handed out.
func snapshotOf(id domain.SessionID, state *domain.SessionState) domain.SessionSnapshot {
	snap := domain.SessionSnapshot{
		SessionID:     id,
		Messages:      make([]domain.Message, len(state.Messages)),
		Files:         make([]string, len(state.Files)),
		TicketCounter: state.TicketCounter,
	}
	copy(snap.Messages, state.Messages)
	copy(snap.Files, state.Files)
	return snap
}
