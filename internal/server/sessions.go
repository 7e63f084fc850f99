package server

import (
	"net/http"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nareshchaudhary/career-agent/internal/engine"
)

var sessionIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{6,128}$`)

// sessionEntry pairs a per-caller engine session with its own mutex. Engine
// sessions are not safe for concurrent use, so calls on one session are
// serialized here while distinct sessions proceed in parallel.
type sessionEntry struct {
	mu       sync.Mutex
	sess     *engine.Session
	lastSeen time.Time
}

// SessionManager maps session keys to engine sessions with TTL expiry and a
// hard cap on live sessions.
type SessionManager struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry

	eng         *engine.Engine
	ttl         time.Duration
	maxSessions int
}

// NewSessionManager creates a manager bound to a shared engine.
func NewSessionManager(eng *engine.Engine, ttl time.Duration, maxSessions int) *SessionManager {
	return &SessionManager{
		entries:     make(map[string]*sessionEntry),
		eng:         eng,
		ttl:         ttl,
		maxSessions: maxSessions,
	}
}

// Acquire returns the session for the key, creating one if needed, with its
// per-session lock held. The caller must invoke the release func when done.
func (m *SessionManager) Acquire(key string) (*engine.Session, func()) {
	now := time.Now()

	m.mu.Lock()
	m.expireLocked(now)
	entry, ok := m.entries[key]
	if !ok {
		entry = &sessionEntry{sess: m.eng.NewSession()}
		m.entries[key] = entry
	}
	entry.lastSeen = now
	m.enforceCapLocked()
	m.mu.Unlock()

	entry.mu.Lock()
	return entry.sess, entry.mu.Unlock
}

// Len returns the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// expireLocked drops sessions idle past the TTL. Caller holds m.mu.
func (m *SessionManager) expireLocked(now time.Time) {
	for key, entry := range m.entries {
		if now.Sub(entry.lastSeen) > m.ttl {
			delete(m.entries, key)
		}
	}
}

// enforceCapLocked drops the oldest sessions when over the hard cap. Caller
// holds m.mu.
func (m *SessionManager) enforceCapLocked() {
	if len(m.entries) <= m.maxSessions {
		return
	}
	type aged struct {
		key  string
		seen time.Time
	}
	all := make([]aged, 0, len(m.entries))
	for key, entry := range m.entries {
		all = append(all, aged{key, entry.lastSeen})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].seen.Before(all[j].seen) })
	for _, a := range all[:len(m.entries)-m.maxSessions] {
		delete(m.entries, a.key)
	}
}

// sessionKey identifies the caller: an explicit X-Session-Id header when it
// is well formed, otherwise a best-effort IP plus User-Agent pair.
func (s *Server) sessionKey(r *http.Request) string {
	if sid := strings.TrimSpace(r.Header.Get("X-Session-Id")); sid != "" && sessionIDRe.MatchString(sid) {
		return "sid:" + sid
	}
	return "ipua:" + s.clientIP(r) + "|" + strings.TrimSpace(r.Header.Get("User-Agent"))
}
