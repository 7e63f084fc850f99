package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonitorRingBounded(t *testing.T) {
	m := NewMonitor(3, 3, 3, time.Hour)

	for i := 0; i < 10; i++ {
		m.RecordQuery("visitor-a", "")
	}

	summary := m.Summary()
	assert.Equal(t, 3, summary.QueryEvents)
	assert.Equal(t, 1, summary.UniqueVisitors)
}

func TestMonitorRetentionExpiry(t *testing.T) {
	m := NewMonitor(100, 100, 100, 50*time.Millisecond)

	m.RecordQuery("visitor-a", "old query")
	time.Sleep(1100 * time.Millisecond)
	m.RecordUpload("visitor-b", "resume.txt")

	summary := m.Summary()
	assert.Equal(t, 0, summary.QueryEvents)
	assert.Equal(t, 1, summary.ResumeUploads)
	assert.Equal(t, 1, summary.UniqueVisitors)
}

func TestMonitorCountsByKind(t *testing.T) {
	m := NewMonitor(10, 10, 10, time.Hour)

	m.RecordQuery("a", "q")
	m.RecordQuery("b", "q")
	m.RecordUpload("a", "resume.txt")
	m.RecordBuild("a", "")

	summary := m.Summary()
	assert.Equal(t, 2, summary.QueryEvents)
	assert.Equal(t, 1, summary.ResumeUploads)
	assert.Equal(t, 1, summary.ResumeBuilds)
	assert.Equal(t, 2, summary.UniqueVisitors)
}

func TestVisitorIDStableAndOpaque(t *testing.T) {
	a := VisitorID("sid:abc123")
	b := VisitorID("sid:abc123")
	c := VisitorID("sid:abc124")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 24)
	assert.NotContains(t, a, "abc123")
}

func TestQueryEventsReturnsCopy(t *testing.T) {
	m := NewMonitor(10, 10, 10, time.Hour)
	m.RecordQuery("a", "first")

	events := m.QueryEvents()
	events[0].Detail = "mutated"

	assert.Equal(t, "first", m.QueryEvents()[0].Detail)
}
