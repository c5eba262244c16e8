// Package session holds per-session interactive state: the current
// repository summary, the generated analysis, and the generated README.
//
// Each session is an explicit object owned by one interactive front-end
// session. Nothing is shared between sessions and nothing survives the
// process; the next fetch or an explicit reset replaces the state.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fyrsmithlabs/readmegen/internal/prompt"
	"github.com/fyrsmithlabs/readmegen/internal/scanner"
	"github.com/fyrsmithlabs/readmegen/internal/summary"
)

// ErrNotFound indicates an unknown session ID.
var ErrNotFound = errors.New("session not found")

// Session is the state of one interactive session.
type Session struct {
	mu sync.Mutex

	ID        string
	CreatedAt time.Time

	summary  *summary.RepositorySummary
	skipped  []scanner.SkipNote
	manual   *prompt.ManualInput
	analysis string
	readme   string
}

// Snapshot is a copy of session state safe to serialize.
type Snapshot struct {
	ID        string                     `json:"id"`
	CreatedAt time.Time                  `json:"created_at"`
	Summary   *summary.RepositorySummary `json:"summary,omitempty"`
	Skipped   []scanner.SkipNote         `json:"skipped,omitempty"`
	Manual    *prompt.ManualInput        `json:"manual,omitempty"`
	Analysis  string                     `json:"analysis,omitempty"`
	Readme    string                     `json:"readme,omitempty"`
}

// SetSummary stores a freshly built summary, replacing the previous one
// along with its skip notes. Manual input is cleared: summary and manual
// input are alternative project sources.
func (s *Session) SetSummary(sum *summary.RepositorySummary, skipped []scanner.SkipNote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = sum
	s.skipped = skipped
	s.manual = nil
}

// SetManual stores freeform project input, replacing any fetched summary.
func (s *Session) SetManual(m prompt.ManualInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manual = &m
	s.summary = nil
	s.skipped = nil
}

// SetAnalysis stores generated analysis text.
func (s *Session) SetAnalysis(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analysis = text
}

// SetReadme stores generated README text.
func (s *Session) SetReadme(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readme = text
}

// Reset clears summary, manual input, analysis, and README atomically.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = nil
	s.skipped = nil
	s.manual = nil
	s.analysis = ""
	s.readme = ""
}

// View returns a consistent copy of the session state.
func (s *Session) View() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		Summary:   s.summary,
		Skipped:   s.skipped,
		Manual:    s.manual,
		Analysis:  s.analysis,
		Readme:    s.readme,
	}
}

// Store is an in-memory session registry keyed by ID.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create registers a new session and returns it.
func (st *Store) Create() *Session {
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns the session with the given ID.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete removes a session. Deleting an unknown ID is a no-op.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
