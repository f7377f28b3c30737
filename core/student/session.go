package student

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is the per-connection authenticated context: a denormalized,
// read-mostly snapshot of the student it belongs to. It is a cache, never the
// source of truth — any operation that mutates the persisted score must call
// SessionStore.SetScore before replying.
type Session struct {
	ID          string    `json:"-"`
	StudentID   int       `json:"id"`
	Username    string    `json:"username"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	AvatarColor string    `json:"avatar_color"`
	Score       int       `json:"score"`
	IssuedAt    time.Time `json:"-"`
}

// SessionStore keeps live sessions in process memory, keyed by session id
// (the token's jti claim). All methods are safe for concurrent use.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Open creates a session holding a snapshot of stu.
func (st *SessionStore) Open(stu Student) Session {
	sess := Session{
		ID:          uuid.New().String(),
		StudentID:   stu.ID,
		Username:    stu.Username,
		Name:        stu.Name,
		Email:       stu.Email,
		AvatarColor: stu.AvatarColor,
		Score:       stu.Score,
		IssuedAt:    time.Now().UTC(),
	}
	st.mu.Lock()
	st.sessions[sess.ID] = &sess
	st.mu.Unlock()
	return sess
}

// Get returns a copy of the session snapshot, if it is still live.
func (st *SessionStore) Get(id string) (Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if sess, ok := st.sessions[id]; ok {
		return *sess, true
	}
	return Session{}, false
}

// Close destroys the session; reports whether it was live.
func (st *SessionStore) Close(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return false
	}
	delete(st.sessions, id)
	return true
}

// SetScore resynchronizes the cached score with the authoritative persisted
// total. No-op for a dead session.
func (st *SessionStore) SetScore(id string, total int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if sess, ok := st.sessions[id]; ok {
		sess.Score = total
	}
}
