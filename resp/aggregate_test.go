package resp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetShapesAsFlatArrayWithSetKind(t *testing.T) {
	p, c := newTestParser(t)
	p.Feed([]byte("~2\r\n:1\r\n:1\r\n")) // duplicates allowed in transit, §3.1
	require.Len(t, c.replies, 1)
	assert.Equal(t, KindSet, c.replies[0].Kind)
	require.Len(t, c.replies[0].Array, 2)
}

func TestMapPairsAdjacentItems(t *testing.T) {
	p, c := newTestParser(t)
	p.Feed([]byte("%2\r\n+a\r\n:1\r\n+b\r\n:2\r\n"))
	require.Len(t, c.replies, 1)
	m := c.replies[0]
	require.Equal(t, KindMap, m.Kind)
	require.Len(t, m.Pairs, 2)
	assert.Equal(t, "a", m.Pairs[0].Key.Str)
	assert.Equal(t, int64(1), m.Pairs[0].Value.Int)
	assert.Equal(t, "b", m.Pairs[1].Key.Str)
	assert.Equal(t, int64(2), m.Pairs[1].Value.Int)
}

func TestPushFrameDeliveredSeparatelyFromReplies(t *testing.T) {
	c := &collector{}
	p, err := NewParser(c.opts())
	require.NoError(t, err)
	defer p.Close()

	p.Feed([]byte(">2\r\n+message\r\n+hello\r\n"))
	assert.Empty(t, c.replies)
	require.Len(t, c.pushes, 1)
	assert.Equal(t, KindArray, c.pushes[0].Kind)
	require.Len(t, c.pushes[0].Array, 2)
	assert.Equal(t, "hello", c.pushes[0].Array[1].Str)
}

func TestPushDroppedWithoutCallback(t *testing.T) {
	c := &collector{}
	opts := c.opts()
	opts.OnPush = nil
	p, err := NewParser(opts)
	require.NoError(t, err)
	defer p.Close()

	p.Feed([]byte(">1\r\n+ping\r\n"))
	assert.Empty(t, c.replies)
	assert.Empty(t, c.errors)
}

// TestAttributeTransparency is scenario 6: an attribute nested inside a
// map's pending value is delivered via OnAttribute, and decoding resumes
// at the same slot for the map that contains it without the attribute
// consuming one of the map's own pair slots.
func TestAttributeTransparency(t *testing.T) {
	p, c := newTestParser(t)
	p.Feed([]byte("%2\r\n*2\r\n:1\r\n:2\r\n,inf\r\n|1\r\n*2\r\n+ignore\r\n=8\r\ntxt:this\r\n~1\r\n_\r\n"))

	require.Len(t, c.attributes, 1)
	attr := c.attributes[0]
	require.Equal(t, KindMap, attr.Kind)
	require.Len(t, attr.Pairs, 1)
	key := attr.Pairs[0].Key
	require.Equal(t, KindArray, key.Kind)
	require.Len(t, key.Array, 2)
	assert.Equal(t, "ignore", key.Array[0].Str)
	assert.Equal(t, "txt:this", key.Array[1].Str)
	value := attr.Pairs[0].Value
	require.Equal(t, KindSet, value.Kind)
	require.Len(t, value.Array, 1)
	assert.Equal(t, KindNull, value.Array[0].Kind)

	// The outer map's first pair is fully decoded, but its second pair's
	// key never arrived on the wire in this feed, so it is still pending.
	assert.Empty(t, c.replies)
}

func TestAttributeThenReplyCompletesAtTopLevel(t *testing.T) {
	p, c := newTestParser(t)
	p.Feed([]byte("|1\r\n+key\r\n+val\r\n+realreply\r\n"))
	require.Len(t, c.attributes, 1)
	assert.Equal(t, "key", c.attributes[0].Pairs[0].Key.Str)
	assert.Equal(t, "val", c.attributes[0].Pairs[0].Value.Str)
	require.Len(t, c.replies, 1)
	assert.Equal(t, "realreply", c.replies[0].Str)
}

// TestAttributeForcesReturnBuffersOff covers §4.8 point 2: an attribute's
// own body is parsed with return_buffers forced off regardless of the
// parser's configured mode, and the prior mode is restored for the real
// reply that follows.
func TestAttributeForcesReturnBuffersOff(t *testing.T) {
	p, c := newTestParser(t, WithReturnBuffers())
	p.Feed([]byte("|1\r\n+key\r\n$3\r\nval\r\n$3\r\nfoo\r\n"))

	require.Len(t, c.attributes, 1)
	attr := c.attributes[0]
	require.Len(t, attr.Pairs, 1)
	assert.Equal(t, "key", attr.Pairs[0].Key.Str)
	assert.Nil(t, attr.Pairs[0].Key.Bytes)
	assert.Equal(t, "val", attr.Pairs[0].Value.Str)
	assert.Nil(t, attr.Pairs[0].Value.Bytes)

	require.Len(t, c.replies, 1)
	assert.Equal(t, []byte("foo"), c.replies[0].Bytes)
}

func TestDoubleInfinity(t *testing.T) {
	p, c := newTestParser(t)
	p.Feed([]byte(",inf\r\n,-inf\r\n"))
	require.Len(t, c.replies, 2)
	assert.True(t, math.IsInf(c.replies[0].Float, 1))
	assert.True(t, math.IsInf(c.replies[1].Float, -1))
}

func TestNestedErrorIsStoredNotRoutedToOnError(t *testing.T) {
	p, c := newTestParser(t)
	p.Feed([]byte("*2\r\n+OK\r\n-ERR bad\r\n"))
	require.Len(t, c.replies, 1)
	assert.Empty(t, c.errors)
	require.Len(t, c.replies[0].Array, 2)
	assert.Equal(t, KindError, c.replies[0].Array[1].Kind)
}
