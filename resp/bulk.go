package resp

import (
	"bytes"
	"strconv"
)

type bulkKind uint8

const (
	bulkKindString bulkKind = iota
	bulkKindBlobError
)

// decodeBulkHeader implements §4.4 (bulk/verbatim string) and, when kind is
// bulkKindBlobError, the bulk-payload half of §4.6. It handles both the
// inline (whole payload already buffered) and multi-chunk splice-armed
// paths.
func (p *Parser) decodeBulkHeader(kind bulkKind) (*Reply, bool, *ProtocolError) {
	typeByte := p.buf[p.offset]
	line, next, ok := p.scanLineFrom(p.offset + 1)
	if !ok {
		return nil, false, nil
	}

	length, err := strconv.ParseInt(string(line), 10, 64)
	if err != nil {
		return nil, false, p.protocolError(typeByte, "malformed bulk length")
	}

	if length == -1 && kind == bulkKindString {
		p.offset = next
		v := newNull()
		return &v, true, nil
	}
	if length < 0 {
		return nil, false, p.protocolError(typeByte, "negative bulk length")
	}

	payloadStart := next
	need := int(length) + 2 // trailing CRLF

	if payloadStart+need <= len(p.buf) {
		payload := p.buf[payloadStart : payloadStart+int(length)]
		p.offset = payloadStart + need
		return p.finishBulk(kind, payload, !p.returnBuffers || kind == bulkKindBlobError), true, nil
	}

	// Not enough bytes buffered: arm the multi-chunk splice, §4.4.
	p.bulkStart = payloadStart
	p.pendingBulkLen = payloadStart + need
	p.bulkAsText = !p.returnBuffers || kind == bulkKindBlobError
	p.bulkKind = kind
	p.chunkCache = [][]byte{p.buf}
	p.chunkCacheTotal = len(p.buf)
	return nil, false, nil
}

// finishBulk shapes a fully-materialized bulk payload (whether sliced
// inline or spliced from multiple chunks) into its Reply.
func (p *Parser) finishBulk(kind bulkKind, payload []byte, asText bool) *Reply {
	if kind == bulkKindBlobError {
		code, msg := splitBlobError(payload)
		v := newBlobError(code, msg)
		return &v
	}
	if asText {
		v := newBulkString(string(payload), nil, false)
		return &v
	}
	raw := make([]byte, len(payload))
	copy(raw, payload)
	v := newBulkString("", raw, true)
	return &v
}

// splitBlobError implements §4.6: split the payload on the first space
// into an error code and message.
func splitBlobError(payload []byte) (code, msg string) {
	idx := bytes.IndexByte(payload, ' ')
	if idx < 0 {
		return "", string(payload)
	}
	return string(payload[:idx]), string(payload[idx+1:])
}

// feedBulkContinuation implements the cross-chunk half of §4.4: accumulate
// chunks until the pending bulk's target length is reached, then splice.
func (p *Parser) feedBulkContinuation(chunk []byte) {
	p.chunkCache = append(p.chunkCache, chunk)
	p.chunkCacheTotal += len(chunk)
	if p.chunkCacheTotal < p.pendingBulkLen {
		return
	}
	p.spliceBulk()
}

// spliceBulk materializes the accumulated chunk_cache into a contiguous
// payload via the buffer pool arena (§4.10), sets the parser's buffer to
// whatever tail bytes followed the bulk in its final chunk, and stashes
// the decoded value in resumedValue for run() to route or store.
func (p *Parser) spliceBulk() {
	length := p.pendingBulkLen - p.bulkStart - 2
	payloadStart := p.bulkStart
	payloadEnd := p.bulkStart + length

	dst := p.pool.Acquire(length)
	written := 0

	pos := 0
	var lastChunk []byte
	var lastChunkStart int
	for _, c := range p.chunkCache {
		cStart := pos
		cEnd := pos + len(c)

		lo := cStart
		if payloadStart > lo {
			lo = payloadStart
		}
		hi := cEnd
		if payloadEnd < hi {
			hi = payloadEnd
		}
		if lo < hi {
			written += copy(dst[written:], c[lo-cStart:hi-cStart])
		}

		lastChunk = c
		lastChunkStart = cStart
		pos = cEnd
	}

	var tail []byte
	consumedEndGlobal := payloadEnd + 2
	tailStartInLast := consumedEndGlobal - lastChunkStart
	if tailStartInLast < len(lastChunk) {
		tail = append([]byte(nil), lastChunk[tailStartInLast:]...)
	}

	val := p.finishBulk(p.bulkKind, dst, p.bulkAsText)

	p.chunkCache = nil
	p.chunkCacheTotal = 0
	p.pendingBulkLen = 0
	p.bulkStart = 0
	p.buf = tail
	p.offset = 0
	p.resumedValue = val
}
