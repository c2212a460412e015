package chat

import (
	"container/list"
	"sync"
	"time"
)

// Turn is one question/response pair kept in the in-memory session log.
type Turn struct {
	Question  string    `json:"question"`
	Response  string    `json:"response"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionLog keeps a bounded per-session conversation history. Each session
// holds at most maxTurns turns (oldest dropped first), and at most
// maxSessions sessions are retained, evicted least-recently-used.
type SessionLog struct {
	mu          sync.Mutex
	maxTurns    int
	maxSessions int
	sessions    map[string]*list.Element
	order       *list.List // front = most recently used
}

type sessionEntry struct {
	id    string
	turns []Turn
}

func NewSessionLog(maxTurns, maxSessions int) *SessionLog {
	if maxTurns <= 0 {
		maxTurns = 10
	}
	if maxSessions <= 0 {
		maxSessions = 1000
	}
	return &SessionLog{
		maxTurns:    maxTurns,
		maxSessions: maxSessions,
		sessions:    make(map[string]*list.Element),
		order:       list.New(),
	}
}

// Record appends a turn to the session, creating it if needed. When the
// session already holds maxTurns turns the oldest one is dropped.
func (s *SessionLog) Record(sessionID string, turn Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.sessions[sessionID]
	if !ok {
		if s.order.Len() >= s.maxSessions {
			oldest := s.order.Back()
			if oldest != nil {
				delete(s.sessions, oldest.Value.(*sessionEntry).id)
				s.order.Remove(oldest)
			}
		}
		el = s.order.PushFront(&sessionEntry{id: sessionID})
		s.sessions[sessionID] = el
	} else {
		s.order.MoveToFront(el)
	}

	entry := el.Value.(*sessionEntry)
	entry.turns = append(entry.turns, turn)
	if len(entry.turns) > s.maxTurns {
		entry.turns = entry.turns[len(entry.turns)-s.maxTurns:]
	}
}

// History returns the session's turns oldest first. Unknown sessions yield
// an empty slice.
func (s *SessionLog) History(sessionID string) []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	s.order.MoveToFront(el)
	entry := el.Value.(*sessionEntry)
	out := make([]Turn, len(entry.turns))
	copy(out, entry.turns)
	return out
}

// Len reports the number of live sessions.
func (s *SessionLog) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}
