package resp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBulkStringSpanningChunks is scenario 2: a 100-byte bulk string whose
// payload is fed across four chunks, with the trailing CRLF arriving alone
// in a fifth.
func TestBulkStringSpanningChunks(t *testing.T) {
	p, c := newTestParser(t)

	body := strings.Repeat("abcdefghij", 10) // 100 bytes
	p.Feed([]byte("$100\r\n" + body[:20]))
	assert.Empty(t, c.replies)
	p.Feed([]byte(body[20:50]))
	assert.Empty(t, c.replies)
	p.Feed([]byte(body[50:80]))
	assert.Empty(t, c.replies)
	p.Feed([]byte(body[80:]))
	assert.Empty(t, c.replies)
	p.Feed([]byte("\r\n"))

	require.Len(t, c.replies, 1)
	assert.Equal(t, body, c.replies[0].Str)
}

func TestBulkStringReturnBuffers(t *testing.T) {
	p, c := newTestParser(t, WithReturnBuffers())
	p.Feed([]byte("$5\r\nhello\r\n"))
	require.Len(t, c.replies, 1)
	assert.Equal(t, []byte("hello"), c.replies[0].Bytes)
}

func TestVerbatimString(t *testing.T) {
	p, c := newTestParser(t)
	p.Feed([]byte("=8\r\ntxt:this\r\n"))
	require.Len(t, c.replies, 1)
	assert.Equal(t, KindBulkString, c.replies[0].Kind)
	assert.Equal(t, "txt:this", c.replies[0].Str)
}

func TestBlobErrorSplitsCodeFromMessage(t *testing.T) {
	p, c := newTestParser(t)
	p.Feed([]byte("!21\r\nSYNTAX invalid syntax\r\n"))
	require.Len(t, c.errors, 1)
	assert.Equal(t, "SYNTAX", c.errors[0].Code)
	assert.Equal(t, "invalid syntax", c.errors[0].Msg)
}

func TestBlobErrorNoSpaceIsWholeMessage(t *testing.T) {
	p, c := newTestParser(t)
	p.Feed([]byte("!7\r\nNOSPACE\r\n"))
	require.Len(t, c.errors, 1)
	assert.Equal(t, "", c.errors[0].Code)
	assert.Equal(t, "NOSPACE", c.errors[0].Msg)
}

func TestSimpleErrorHasNoCode(t *testing.T) {
	p, c := newTestParser(t)
	p.Feed([]byte("-ERR unknown command\r\n"))
	require.Len(t, c.errors, 1)
	assert.Equal(t, "", c.errors[0].Code)
	assert.Equal(t, "ERR unknown command", c.errors[0].Msg)
}

// TestBulkSpliceLeavesTrailingBytesForNextDecode verifies that bytes
// arriving in the same chunk as a bulk payload's trailing CRLF, but past
// it, are preserved for the next decode rather than dropped.
func TestBulkSpliceLeavesTrailingBytesForNextDecode(t *testing.T) {
	p, c := newTestParser(t)
	p.Feed([]byte("$3\r\nab"))
	p.Feed([]byte("c\r\n:9\r\n"))
	require.Len(t, c.replies, 2)
	assert.Equal(t, "abc", c.replies[0].Str)
	assert.Equal(t, int64(9), c.replies[1].Int)
}
