package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTimeoutSetsDeadline(t *testing.T) {
	ctx, cancel := withTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(30*time.Second), deadline, time.Second)
}

func TestWithTimeoutZeroLeavesContextUnbounded(t *testing.T) {
	ctx, cancel := withTimeout(context.Background(), 0)
	defer cancel()

	_, ok := ctx.Deadline()
	assert.False(t, ok)
}
