// Package session holds the per-client key-value state the route
// handlers read and write: the signed-in player name, the game being
// watched, the replay cursor. Sessions ride on a signed cookie and are
// dropped after an idle TTL or on sign-out.
package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"webcheckers/logger"
)

const CookieName = "webcheckers_session"

type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.RWMutex
	lastSeen time.Time
	values   map[string]string
}

// Attribute returns the value stored under key, if any.
func (s *Session) Attribute(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok
}

func (s *Session) SetAttribute(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// RemoveAttribute deletes the attribute. Absence is a no-op.
func (s *Session) RemoveAttribute(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

func (s *Session) touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
}

func (s *Session) idleSince() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSeen
}

// Store is the in-memory session registry. A background sweeper drops
// sessions idle past the TTL.
type Store struct {
	mu         sync.RWMutex
	sessions   map[string]*Session
	ttl        time.Duration
	signingKey []byte
	done       chan struct{}
}

func NewStore(ttl time.Duration, signingKey []byte) *Store {
	store := &Store{
		sessions:   make(map[string]*Session),
		ttl:        ttl,
		signingKey: signingKey,
		done:       make(chan struct{}),
	}
	go store.sweep()
	return store
}

func (st *Store) Close() {
	close(st.done)
}

func (st *Store) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-st.done:
			return
		case <-ticker.C:
			st.Expire(time.Now())
		}
	}
}

// Expire drops every session idle since before the cutoff.
func (st *Store) Expire(now time.Time) {
	st.mu.Lock()
	defer st.mu.Unlock()
	for id, session := range st.sessions {
		if now.Sub(session.idleSince()) > st.ttl {
			delete(st.sessions, id)
		}
	}
}

func (st *Store) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

func (st *Store) lookup(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	session, ok := st.sessions[id]
	return session, ok
}

func (st *Store) create() *Session {
	session := &Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		lastSeen:  time.Now(),
		values:    make(map[string]string),
	}
	st.mu.Lock()
	st.sessions[session.ID] = session
	st.mu.Unlock()
	return session
}

// Session resolves the client's session from the request cookie,
// creating a fresh one (and setting the cookie) when the cookie is
// missing, tampered with, or expired.
func (st *Store) Session(w http.ResponseWriter, r *http.Request) *Session {
	if cookie, err := r.Cookie(CookieName); err == nil {
		if id, err := parseToken(cookie.Value, st.signingKey); err == nil {
			if session, ok := st.lookup(id); ok {
				session.touch()
				return session
			}
		} else {
			logger.Default.Warnf("[session] rejected session cookie: %v", err)
		}
	}

	session := st.create()
	token, err := generateToken(session.ID, st.ttl, st.signingKey)
	if err != nil {
		logger.Default.Errorf("[session] failed to sign session token: %v", err)
		return session
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return session
}

// End tears the session down and expires the cookie.
func (st *Store) End(w http.ResponseWriter, session *Session) {
	st.mu.Lock()
	delete(st.sessions, session.ID)
	st.mu.Unlock()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
