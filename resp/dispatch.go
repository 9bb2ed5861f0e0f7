package resp

import "bytes"

// decodeNext reads one type-tag byte at p.offset and routes to the
// matching decoder (§4.1). It returns:
//
//   - (val, false, true, nil)  a fully decoded scalar, to be routed or
//     stored by the caller.
//   - (nil, true, true, nil)   a new aggregate frame was pushed onto
//     p.stack; the caller should loop and let the stack drive further
//     decoding.
//   - (nil, false, false, nil) insufficient bytes; p.offset and p.buf are
//     unchanged (or a bulk splice was armed, in which case pendingBulkLen
//     is now nonzero) and the caller must return from run().
//   - (nil, false, false, err) the type byte is unrecognized or framing is
//     broken beyond recovery; fatal.
func (p *Parser) decodeNext() (val *Reply, pushedFrame bool, ok bool, err *ProtocolError) {
	typ := p.buf[p.offset]
	switch typ {
	case '+':
		return p.decodeSimpleString()
	case '-':
		return p.decodeSimpleError()
	case ':':
		return p.decodeInteger()
	case '$', '=':
		v, ok, err := p.decodeBulkHeader(bulkKindString)
		return v, false, ok, err
	case '!':
		v, ok, err := p.decodeBulkHeader(bulkKindBlobError)
		return v, false, ok, err
	case '_':
		return p.decodeNullType()
	case '#':
		return p.decodeBoolean()
	case ',':
		return p.decodeDouble()
	case '(':
		return p.decodeBigNumber()
	case '*':
		return p.decodeAggregateHeader(frameArray)
	case '~':
		return p.decodeAggregateHeader(frameSet)
	case '%':
		return p.decodeAggregateHeader(frameMap)
	case '>':
		return p.decodeAggregateHeader(framePush)
	case '|':
		return p.decodeAggregateHeader(frameAttribute)
	default:
		return nil, false, false, p.protocolError(typ, "unknown type byte")
	}
}

// scanLineFrom finds the next CRLF-delimited line starting at the given
// buffer offset, tolerating a stray lone CR inside the line body (§6.3):
// it looks for the literal two-byte "\r\n" sequence rather than the first
// CR. Returns the line body (excluding the CRLF) and the offset
// immediately past the CRLF. ok is false when no CRLF is present yet in
// the buffered bytes.
//
// Every scalar decoder is called with p.offset still pointing at its type
// tag byte (decodeNext peeks the tag without consuming it), so callers
// pass p.offset+1 as start and only commit p.offset to next once the full
// value has decoded successfully, otherwise a suspended decode would
// lose track of which byte is the type tag on the next Feed.
func (p *Parser) scanLineFrom(start int) (line []byte, next int, ok bool) {
	if start > len(p.buf) {
		return nil, 0, false
	}
	rest := p.buf[start:]
	idx := bytes.Index(rest, delimCRLF)
	if idx < 0 {
		return nil, 0, false
	}
	return rest[:idx], start + idx + 2, true
}

var delimCRLF = []byte{'\r', '\n'}

func (p *Parser) protocolError(offending byte, reason string) *ProtocolError {
	snap := make([]byte, len(p.buf))
	copy(snap, p.buf)
	return &ProtocolError{
		Offending: offending,
		Offset:    p.offset,
		Snapshot:  snap,
		Reason:    reason,
	}
}
