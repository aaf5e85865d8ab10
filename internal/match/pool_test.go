package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnqueueIsIdempotent(t *testing.T) {
	p := NewPool()

	assert.True(t, p.Enqueue("alice"))
	assert.False(t, p.Enqueue("alice"))
	assert.Equal(t, 1, p.Waiting())
}

func TestDequeueIsIdempotent(t *testing.T) {
	p := NewPool()
	p.Enqueue("alice")

	assert.True(t, p.Dequeue("alice"))
	assert.False(t, p.Dequeue("alice"))
	assert.False(t, p.Dequeue("nobody"))
	assert.Equal(t, 0, p.Waiting())
}

func TestNextPairNeedsTwoWaiters(t *testing.T) {
	p := NewPool()

	_, _, ok := p.NextPair()
	assert.False(t, ok)

	p.Enqueue("alice")
	_, _, ok = p.NextPair()
	assert.False(t, ok)
	assert.Equal(t, 1, p.Waiting())
}

func TestNextPairIsFIFO(t *testing.T) {
	p := NewPool()
	p.Enqueue("alice")
	p.Enqueue("bob")
	p.Enqueue("carol")

	first, second, ok := p.NextPair()
	require.True(t, ok)
	assert.Equal(t, "alice", first)
	assert.Equal(t, "bob", second)

	// Carol keeps waiting; paired names left the queue
	assert.Equal(t, 1, p.Waiting())
	assert.True(t, p.IsWaiting("carol"))
	assert.False(t, p.IsWaiting("alice"))
	assert.False(t, p.IsWaiting("bob"))
}

func TestRegistryIsSymmetric(t *testing.T) {
	p := NewPool()
	p.Enqueue("alice")
	p.Enqueue("bob")
	_, _, ok := p.NextPair()
	require.True(t, ok)

	opponent, ok := p.Opponent("alice")
	require.True(t, ok)
	assert.Equal(t, "bob", opponent)

	opponent, ok = p.Opponent("bob")
	require.True(t, ok)
	assert.Equal(t, "alice", opponent)

	assert.Equal(t, 1, p.Matches())
}

func TestEndMatchClearsBothSides(t *testing.T) {
	p := NewPool()
	p.Enqueue("alice")
	p.Enqueue("bob")
	_, _, ok := p.NextPair()
	require.True(t, ok)

	opponent, ok := p.EndMatch("alice")
	require.True(t, ok)
	assert.Equal(t, "bob", opponent)

	_, ok = p.Opponent("alice")
	assert.False(t, ok)
	_, ok = p.Opponent("bob")
	assert.False(t, ok)
	assert.Equal(t, 0, p.Matches())

	// Ending again is a no-op
	_, ok = p.EndMatch("bob")
	assert.False(t, ok)
}

func TestRematchAfterEndMatch(t *testing.T) {
	p := NewPool()
	p.Enqueue("alice")
	p.Enqueue("bob")
	_, _, ok := p.NextPair()
	require.True(t, ok)
	_, ok = p.EndMatch("bob")
	require.True(t, ok)

	p.Enqueue("bob")
	p.Enqueue("alice")
	first, second, ok := p.NextPair()
	require.True(t, ok)
	assert.Equal(t, "bob", first)
	assert.Equal(t, "alice", second)
}
