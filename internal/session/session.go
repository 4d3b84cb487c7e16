package session

import (
	"fmt"
	"sync"

	"github.com/convergencelab/sabius/internal/conversation"
	"github.com/convergencelab/sabius/internal/knowledge"
	"github.com/google/uuid"
)

// Session is the state of one live dialogue: an id, a bounded
// transcript window, and a handle to the shared immutable context.
// One session serves one room; its window is never shared.
type Session struct {
	ID     string
	ctx    *Context
	window *conversation.Window
}

// Instructions is an assembled instruction text plus the bookkeeping
// the dialogue engine needs to reason about it.
type Instructions struct {
	Text         string   `json:"text"`
	SizeEstimate int      `json:"size_estimate"`
	ModuleIDs    []string `json:"module_ids"`
}

// BuildInstructions selects the relevant knowledge modules for the
// query and assembles the instruction text. Pure with respect to the
// session: it does not touch the window, so the engine decides when a
// turn is actually recorded.
func (s *Session) BuildInstructions(query string) Instructions {
	selected := knowledge.Select(query, s.ctx.Index, s.ctx.Store, s.ctx.selectCfg)
	text, size := s.ctx.Assembler.Assemble(selected)

	ids := make([]string, len(selected))
	for i, m := range selected {
		ids[i] = m.ID
	}

	return Instructions{Text: text, SizeEstimate: size, ModuleIDs: ids}
}

// Record appends a turn to the session window, applying eviction, and
// returns the resulting transcript length.
func (s *Session) Record(role conversation.Role, content string) (int, error) {
	if !role.Valid() {
		return 0, fmt.Errorf("invalid role %q: want %q or %q", role, conversation.RoleUser, conversation.RoleAssistant)
	}
	s.window.Append(role, content)
	return s.window.Len(), nil
}

// History returns the transcript, oldest first.
func (s *Session) History() []conversation.Turn {
	return s.window.Turns()
}

// Manager tracks the live sessions of this process. Sessions are
// in-memory only; ending one discards its transcript (cross-session
// persistence is an explicit non-goal).
type Manager struct {
	mu       sync.Mutex
	ctx      *Context
	sessions map[string]*Session
}

// NewManager creates a session manager over the shared context.
func NewManager(ctx *Context) *Manager {
	return &Manager{
		ctx:      ctx,
		sessions: make(map[string]*Session),
	}
}

// GetOrCreate returns the session with the given id, creating it on
// first use. An empty id creates a session under a fresh UUID.
func (m *Manager) GetOrCreate(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		id = uuid.NewString()
	}
	if s, ok := m.sessions[id]; ok {
		return s
	}

	s := &Session{
		ID:     id,
		ctx:    m.ctx,
		window: conversation.NewWindow(m.ctx.windowMax),
	}
	m.sessions[id] = s
	return s
}

// Get returns the session with the given id, if it exists.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// End discards a session and its transcript.
func (m *Manager) End(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
