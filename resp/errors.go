package resp

import "fmt"

// ReplyError is a server-side error carried on the wire, either the simple
// `-ERR message` form or the RESP3 blob-error `!` form. It is inert as far
// as the parser is concerned: receiving one never changes parser state.
type ReplyError struct {
	// Code is the blob-error code (text before the first space in a `!`
	// payload). Empty for simple (`-`) errors.
	Code string
	Msg  string
}

func (e *ReplyError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s %s", e.Code, e.Msg)
	}
	return e.Msg
}

// ProtocolError is a fatal, connection-ending decode failure: an unknown
// type byte or malformed framing. The parser clears all internal state
// before returning from the callback that reports it; the caller decides
// whether to close the connection.
type ProtocolError struct {
	// Offending is the byte that could not be dispatched. For a malformed
	// length prefix, integer, double or big number it is that value's type
	// tag; for a malformed null or boolean it is a byte taken from the
	// broken framing after the tag.
	Offending byte
	// Offset is the read cursor within Snapshot at the time of failure.
	Offset int
	// Snapshot is a copy of the parser's working buffer at the time of
	// failure, retained for diagnostics. It is not retained by the parser
	// itself past the callback.
	Snapshot []byte
	Reason   string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("resp: protocol error at offset %d, byte %q: %s", e.Offset, displayByte(e.Offending), e.Reason)
}

func displayByte(b byte) string {
	if b >= 0x20 && b < 0x7f {
		return string(rune(b))
	}
	return fmt.Sprintf("0x%02x", b)
}
