package server

import (
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nareshchaudhary/career-agent/internal/engine"
	"github.com/nareshchaudhary/career-agent/internal/llm"
)

func newTestManager(ttl time.Duration, maxSessions int) *SessionManager {
	eng := engine.NewWithParts(serverTestConfig(), &llm.Driver{Primary: &stubProvider{}}, nil)
	return NewSessionManager(eng, ttl, maxSessions)
}

func TestAcquireReturnsSameSession(t *testing.T) {
	m := newTestManager(time.Hour, 10)

	first, release := m.Acquire("sid:abc123")
	release()
	second, release := m.Acquire("sid:abc123")
	release()

	assert.Same(t, first, second)
	assert.Equal(t, 1, m.Len())
}

func TestAcquireDistinctKeys(t *testing.T) {
	m := newTestManager(time.Hour, 10)

	a, release := m.Acquire("sid:aaa111")
	release()
	b, release := m.Acquire("sid:bbb222")
	release()

	assert.NotSame(t, a, b)
	assert.Equal(t, 2, m.Len())
}

func TestSessionTTLExpiry(t *testing.T) {
	m := newTestManager(20*time.Millisecond, 10)

	first, release := m.Acquire("sid:abc123")
	release()
	time.Sleep(40 * time.Millisecond)
	second, release := m.Acquire("sid:abc123")
	release()

	assert.NotSame(t, first, second)
	assert.Equal(t, 1, m.Len())
}

func TestSessionCapDropsOldest(t *testing.T) {
	m := newTestManager(time.Hour, 3)

	for i := 0; i < 3; i++ {
		_, release := m.Acquire(fmt.Sprintf("sid:user-%d", i))
		release()
		time.Sleep(2 * time.Millisecond)
	}
	oldest, release := m.Acquire("sid:user-0")
	release()
	_ = oldest

	// Adding a fourth evicts the least recently seen key, sid:user-1.
	_, release = m.Acquire("sid:user-3")
	release()

	assert.Equal(t, 3, m.Len())
	m.mu.Lock()
	_, survived := m.entries["sid:user-0"]
	_, evicted := m.entries["sid:user-1"]
	m.mu.Unlock()
	assert.True(t, survived)
	assert.False(t, evicted)
}

func TestSessionKeyPrefersHeader(t *testing.T) {
	srv := newTestServer(t)

	r := httptest.NewRequest("POST", "/query", nil)
	r.Header.Set("X-Session-Id", "client_session_42")
	assert.Equal(t, "sid:client_session_42", srv.sessionKey(r))
}

func TestSessionKeyRejectsMalformedHeader(t *testing.T) {
	srv := newTestServer(t)

	r := httptest.NewRequest("POST", "/query", nil)
	r.Header.Set("X-Session-Id", "bad id with spaces")
	r.Header.Set("User-Agent", "test-agent")
	r.RemoteAddr = "10.1.2.3:5555"
	assert.Equal(t, "ipua:10.1.2.3|test-agent", srv.sessionKey(r))
}

func TestSessionKeyForwardedForTrusted(t *testing.T) {
	cfg := serverTestConfig()
	cfg.TrustForwardedFor = true
	srv := newTestServerWithConfig(t, cfg, &stubProvider{})

	r := httptest.NewRequest("POST", "/query", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	r.RemoteAddr = "10.1.2.3:5555"
	assert.Equal(t, "ipua:203.0.113.7|", srv.sessionKey(r))
}
