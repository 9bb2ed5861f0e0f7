package resp

import "strconv"

// decodeAggregateHeader implements §4.7 (array/set/map/push) and the
// framing half of §4.8 (attribute): decode the length prefix and push a
// frame onto the array stack for the element loop to fill. RESP2's `-1`
// legacy null applies uniformly to every aggregate type here, matching
// §4.7's "Length prefix N is decoded first (RESP2 -1 ⇒ Null)".
func (p *Parser) decodeAggregateHeader(kind frameKind) (*Reply, bool, bool, *ProtocolError) {
	typeByte := p.buf[p.offset]
	line, next, ok := p.scanLineFrom(p.offset + 1)
	if !ok {
		return nil, false, false, nil
	}

	n, err := strconv.ParseInt(string(line), 10, 64)
	if err != nil {
		return nil, false, false, p.protocolError(typeByte, "malformed aggregate length")
	}
	p.offset = next

	if n == -1 {
		v := newNull()
		return &v, false, true, nil
	}
	if n < 0 {
		return nil, false, false, p.protocolError(typeByte, "negative aggregate length")
	}

	target := int(n)
	if kind == frameMap || kind == frameAttribute {
		target *= 2
	}

	f := &frame{
		kind:               kind,
		target:             target,
		items:              make([]Reply, target),
		savedReturnBuffers: p.returnBuffers,
	}
	if kind == frameAttribute {
		// §4.8: parse the attribute's own body with return_buffers forced
		// off, restored by completeFrame once the attribute completes.
		p.returnBuffers = false
	}
	p.stack = append(p.stack, f)
	return nil, true, true, nil
}
