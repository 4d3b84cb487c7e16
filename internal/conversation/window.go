// Package conversation implements the bounded dialogue transcript
// window. The window keeps the most recent turns of one session;
// older turns are evicted oldest-first and are gone — no
// summarization of evicted history happens here.
package conversation

import "sync"

// Role identifies who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether the role is one of the two dialogue roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Turn is one utterance of the dialogue. Seq is a monotonically
// increasing sequence number assigned at append time and survives
// eviction, so callers can tell how much history was dropped.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
	Seq     int    `json:"seq"`
}

// Window is the bounded, ordered transcript of one session. All
// mutations are serialized internally; a Window must not be shared
// between sessions.
type Window struct {
	mu    sync.Mutex
	max   int
	next  int
	turns []Turn
}

// NewWindow creates a window holding at most max turns. max is
// validated by the configuration layer; values below 1 are clamped to
// 1 so the window invariant holds regardless.
func NewWindow(max int) *Window {
	if max < 1 {
		max = 1
	}
	return &Window{max: max}
}

// Append adds a turn at the end, evicting from the front exactly as
// many turns as needed to stay within the bound. The remaining turns
// are never reordered. Returns the appended turn with its sequence
// number assigned.
func (w *Window) Append(role Role, content string) Turn {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.next++
	turn := Turn{Role: role, Content: content, Seq: w.next}

	if overflow := len(w.turns) + 1 - w.max; overflow > 0 {
		w.turns = append(w.turns[:0], w.turns[overflow:]...)
	}
	w.turns = append(w.turns, turn)
	return turn
}

// Turns returns a copy of the transcript, oldest first.
func (w *Window) Turns() []Turn {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]Turn, len(w.turns))
	copy(out, w.turns)
	return out
}

// Len returns the current number of turns.
func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.turns)
}

// Max returns the window bound.
func (w *Window) Max() int {
	return w.max
}
