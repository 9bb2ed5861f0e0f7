package resp

// decodeSimpleString implements §4.2 for the `+` type.
func (p *Parser) decodeSimpleString() (*Reply, bool, bool, *ProtocolError) {
	line, next, ok := p.scanLineFrom(p.offset + 1)
	if !ok {
		return nil, false, false, nil
	}
	p.offset = next
	if p.returnBuffers {
		raw := make([]byte, len(line))
		copy(raw, line)
		v := newSimpleString(string(line), raw, true)
		return &v, false, true, nil
	}
	v := newSimpleString(string(line), nil, false)
	return &v, false, true, nil
}

// decodeSimpleError implements §4.2 for the `-` type: yields
// Error(nil, text) regardless of ReturnBuffers, since error text is always
// delivered as a string (§7).
func (p *Parser) decodeSimpleError() (*Reply, bool, bool, *ProtocolError) {
	line, next, ok := p.scanLineFrom(p.offset + 1)
	if !ok {
		return nil, false, false, nil
	}
	p.offset = next
	v := newSimpleError(string(line))
	return &v, false, true, nil
}

// decodeNullType implements §4.5 for the RESP3 `_` type: exactly CRLF
// after the tag.
func (p *Parser) decodeNullType() (*Reply, bool, bool, *ProtocolError) {
	if len(p.buf)-p.offset < 3 {
		return nil, false, false, nil
	}
	if p.buf[p.offset+1] != '\r' || p.buf[p.offset+2] != '\n' {
		return nil, false, false, p.protocolError(p.buf[p.offset+1], "malformed null, expected CRLF")
	}
	p.offset += 3
	v := newNull()
	return &v, false, true, nil
}

// decodeBoolean implements §4.5 for the RESP3 `#` type: one byte, `t` or
// `f`, then CRLF.
func (p *Parser) decodeBoolean() (*Reply, bool, bool, *ProtocolError) {
	if len(p.buf)-p.offset < 4 {
		return nil, false, false, nil
	}
	b := p.buf[p.offset+1]
	if b != 't' && b != 'f' {
		return nil, false, false, p.protocolError(b, "malformed boolean, expected 't' or 'f'")
	}
	if p.buf[p.offset+2] != '\r' || p.buf[p.offset+3] != '\n' {
		return nil, false, false, p.protocolError(p.buf[p.offset+2], "malformed boolean, expected CRLF")
	}
	p.offset += 4
	v := newBool(b == 't')
	return &v, false, true, nil
}
