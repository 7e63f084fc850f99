package server

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// MonitorEvent is one recorded usage event. Detail carries text only when the
// corresponding capture flag is enabled; otherwise it stays empty.
type MonitorEvent struct {
	TS      int64  `json:"ts"`
	Visitor string `json:"visitor_id"`
	Detail  string `json:"detail,omitempty"`
}

// eventRing is a bounded FIFO of monitor events.
type eventRing struct {
	events []MonitorEvent
	max    int
}

func (r *eventRing) push(ev MonitorEvent) {
	r.events = append(r.events, ev)
	if len(r.events) > r.max {
		r.events = r.events[len(r.events)-r.max:]
	}
}

func (r *eventRing) expire(threshold int64) {
	i := 0
	for i < len(r.events) && r.events[i].TS < threshold {
		i++
	}
	if i > 0 {
		r.events = append([]MonitorEvent(nil), r.events[i:]...)
	}
}

// Monitor keeps bounded in-memory usage counters for the monitoring
// endpoints. Nothing is persisted.
type Monitor struct {
	mu        sync.Mutex
	queries   eventRing
	uploads   eventRing
	builds    eventRing
	visitors  map[string]int64
	retention time.Duration
	startedAt time.Time
}

// MonitorSummary is the aggregate view returned by the monitoring endpoint.
type MonitorSummary struct {
	UptimeSeconds  int64 `json:"uptime_seconds"`
	UniqueVisitors int   `json:"unique_visitors"`
	QueryEvents    int   `json:"query_events"`
	ResumeUploads  int   `json:"resume_uploads"`
	ResumeBuilds   int   `json:"resume_builds"`
}

// NewMonitor creates a monitor with per-ring capacity bounds and a retention
// window for events and visitor records.
func NewMonitor(maxQueries, maxUploads, maxBuilds int, retention time.Duration) *Monitor {
	return &Monitor{
		queries:   eventRing{max: maxQueries},
		uploads:   eventRing{max: maxUploads},
		builds:    eventRing{max: maxBuilds},
		visitors:  make(map[string]int64),
		retention: retention,
		startedAt: time.Now(),
	}
}

// VisitorID derives a stable anonymous identifier from a session key.
func VisitorID(sessionKey string) string {
	sum := sha256.Sum256([]byte(sessionKey))
	return hex.EncodeToString(sum[:])[:24]
}

// RecordQuery notes one answered query.
func (m *Monitor) RecordQuery(visitor, detail string) { m.record(&m.queries, visitor, detail) }

// RecordUpload notes one resume upload.
func (m *Monitor) RecordUpload(visitor, detail string) { m.record(&m.uploads, visitor, detail) }

// RecordBuild notes one resume build.
func (m *Monitor) RecordBuild(visitor, detail string) { m.record(&m.builds, visitor, detail) }

func (m *Monitor) record(ring *eventRing, visitor, detail string) {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.expireLocked(now)
	ring.push(MonitorEvent{TS: now.Unix(), Visitor: visitor, Detail: detail})
	m.visitors[visitor] = now.Unix()
}

// Summary returns aggregate counts after expiring stale events.
func (m *Monitor) Summary() MonitorSummary {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.expireLocked(now)
	return MonitorSummary{
		UptimeSeconds:  int64(now.Sub(m.startedAt).Seconds()),
		UniqueVisitors: len(m.visitors),
		QueryEvents:    len(m.queries.events),
		ResumeUploads:  len(m.uploads.events),
		ResumeBuilds:   len(m.builds.events),
	}
}

// QueryEvents returns a copy of the retained query events.
func (m *Monitor) QueryEvents() []MonitorEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expireLocked(time.Now())
	return append([]MonitorEvent(nil), m.queries.events...)
}

func (m *Monitor) expireLocked(now time.Time) {
	if m.retention <= 0 {
		return
	}
	threshold := now.Add(-m.retention).Unix()
	m.queries.expire(threshold)
	m.uploads.expire(threshold)
	m.builds.expire(threshold)
	for vid, seen := range m.visitors {
		if seen < threshold {
			delete(m.visitors, vid)
		}
	}
}
