// Package resp implements an incremental RESP2/RESP3 decoder: it consumes
// arbitrarily fragmented byte chunks and delivers fully decoded replies
// through callbacks, without blocking and without buffering more than one
// in-flight bulk payload's worth of state.
package resp

import (
	"k8s.io/klog"

	"github.com/mediocregopher/respdecode/resp/internal/bufpool"
)

// frameKind tags what shape a pending aggregate becomes once its element
// slots are all filled.
type frameKind uint8

const (
	frameArray frameKind = iota
	frameSet
	frameMap
	framePush
	frameAttribute
)

// frame is one entry of the array_stack of §3.2/§4.7: an aggregate under
// construction, together with which slot fills next.
type frame struct {
	kind   frameKind
	target int
	items  []Reply
	pos    int

	// savedReturnBuffers holds p.returnBuffers as it was before this frame
	// was pushed, restored when the frame completes. Only meaningful for
	// frameAttribute, which forces return_buffers off for its own body
	// per §4.8.
	savedReturnBuffers bool
}

// Parser is a streaming RESP2/RESP3 decoder. One instance serves one
// connection; all Feed calls must be serialized by the caller (§5). The
// zero value is not usable; construct with NewParser.
type Parser struct {
	opts Opts

	returnBuffers bool
	stringNumbers bool
	bigInt        bool

	buf    []byte
	offset int

	// bulk-splice continuation, §3.2/§4.4.
	chunkCache      [][]byte
	chunkCacheTotal int
	pendingBulkLen  int
	bulkStart       int
	bulkAsText      bool
	bulkKind        bulkKind

	// resumedValue holds a bulk string finished by feedBulkContinuation,
	// waiting for run() to route or store it exactly as it would a normal
	// decodeNext result.
	resumedValue *Reply

	stack []*frame

	pool *bufpool.Pool
}

// NewParser constructs a Parser. opts.OnReply and opts.OnError are
// required; omitting either, or setting both StringNumbers and BigInt,
// fails with an errorx.IllegalArgument error (see ErrInvalidArgument).
func NewParser(opts Opts, optFns ...ParserOpt) (*Parser, error) {
	for _, fn := range optFns {
		fn(&opts)
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Parser{
		opts:          opts,
		returnBuffers: opts.ReturnBuffers,
		stringNumbers: opts.StringNumbers,
		bigInt:        opts.BigInt,
		pool:          bufpool.New(),
	}, nil
}

// Close releases the parser's buffer-pool decay goroutine. It does not
// exist in the source protocol (which has no disposal call) but a leaked
// per-instance ticker goroutine would be a real defect in Go; call it when
// the owning connection is done with the parser.
func (p *Parser) Close() {
	p.pool.Close()
}

// Reset drops all pending decode state, readying the parser for a new
// connection stream. It does not stop the buffer-pool decay goroutine (only
// Close does), and reset();reset() is idempotent (§8.1).
func (p *Parser) Reset() {
	p.buf = nil
	p.offset = 0
	p.chunkCache = nil
	p.chunkCacheTotal = 0
	p.pendingBulkLen = 0
	p.bulkStart = 0
	p.resumedValue = nil
	// A pending attribute frame forced return_buffers off; restore the
	// mode it saved, since that frame will never complete now.
	for _, f := range p.stack {
		if f.kind == frameAttribute {
			p.returnBuffers = f.savedReturnBuffers
			break
		}
	}
	p.stack = nil
}

// SetReturnBuffers toggles bulk-string delivery as raw bytes vs text. It
// applies to values decoded after the call returns (§8.1 mode
// monotonicity): an aggregate still pending across Feed calls decodes its
// remaining elements under the new setting, while a bulk string whose
// multi-chunk splice is already armed keeps the setting it started with.
func (p *Parser) SetReturnBuffers(v bool) error {
	p.returnBuffers = v
	return nil
}

// SetStringNumbers toggles integer delivery as decimal text. Fails if
// BigInt is currently enabled.
func (p *Parser) SetStringNumbers(v bool) error {
	if v && p.bigInt {
		return ErrInvalidArgument.New("string_numbers and big_int are mutually exclusive")
	}
	p.stringNumbers = v
	return nil
}

// SetBigInt toggles integer delivery as arbitrary-precision math/big.Int.
// Fails if StringNumbers is currently enabled.
func (p *Parser) SetBigInt(v bool) error {
	if v && p.stringNumbers {
		return ErrInvalidArgument.New("string_numbers and big_int are mutually exclusive")
	}
	p.bigInt = v
	return nil
}

// Feed pushes a chunk of wire bytes into the parser. Callbacks fire
// synchronously, in wire order, before Feed returns. Protocol and reply
// errors are never returned from Feed: they always go through
// OnFatal/OnError, so Feed has nothing of its own to report.
func (p *Parser) Feed(chunk []byte) {
	if p.pendingBulkLen > 0 {
		p.feedBulkContinuation(chunk)
	} else {
		p.spliceTail(chunk)
	}
	p.run()
}

// spliceTail implements §4.9: allocate a buffer holding the unread tail of
// the previous buffer followed by the new chunk, and reset offset to 0.
func (p *Parser) spliceTail(chunk []byte) {
	if p.offset == 0 && len(p.buf) == 0 {
		p.buf = chunk
		return
	}
	tail := p.buf[p.offset:]
	nb := make([]byte, len(tail)+len(chunk))
	copy(nb, tail)
	copy(nb[len(tail):], chunk)
	p.buf = nb
	p.offset = 0
}

// run drains as many complete replies as the current buffer allows,
// suspending (returning) the moment a decode needs more bytes than are
// available.
func (p *Parser) run() {
	for {
		if p.resumedValue != nil {
			v := *p.resumedValue
			p.resumedValue = nil
			if len(p.stack) == 0 {
				p.routeTopLevel(v)
			} else {
				top := p.stack[len(p.stack)-1]
				top.items[top.pos] = v
				top.pos++
			}
			continue
		}

		if len(p.stack) == 0 {
			if p.pendingBulkLen > 0 {
				return
			}
			if p.offset >= len(p.buf) {
				p.buf = nil
				p.offset = 0
				return
			}
			val, pushed, ok, err := p.decodeNext()
			if err != nil {
				p.fail(err)
				return
			}
			if !ok {
				return
			}
			if pushed {
				continue
			}
			p.routeTopLevel(*val)
			continue
		}

		top := p.stack[len(p.stack)-1]
		if top.pos >= top.target {
			p.stack = p.stack[:len(p.stack)-1]
			p.completeFrame(top)
			continue
		}
		if p.pendingBulkLen > 0 {
			return
		}
		if p.offset >= len(p.buf) {
			return
		}
		val, pushed, ok, err := p.decodeNext()
		if err != nil {
			p.fail(err)
			return
		}
		if !ok {
			return
		}
		if pushed {
			continue
		}
		top.items[top.pos] = *val
		top.pos++
	}
}

// routeTopLevel delivers a fully decoded top-level scalar to the right
// callback based on its Kind (§2 data flow, §7).
func (p *Parser) routeTopLevel(v Reply) {
	if v.Kind == KindError {
		p.opts.OnError(v.AsError())
		return
	}
	p.opts.OnReply(v)
}

// completeFrame delivers or stores a finished aggregate frame. Attribute
// frames never fill a parent slot at any nesting depth: they are always
// delivered via OnAttribute, and decoding resumes at the same position
// for the real reply that follows (§4.8). Push frames are only
// recognized as out-of-band at top level; a push nested inside another
// aggregate (which the wire format permits but real servers don't send)
// is stored like any other value.
func (p *Parser) completeFrame(f *frame) {
	shaped := shapeFrame(f)

	if f.kind == frameAttribute {
		p.returnBuffers = f.savedReturnBuffers
		if p.opts.OnAttribute != nil {
			p.opts.OnAttribute(shaped)
		}
		return
	}

	if len(p.stack) == 0 {
		if f.kind == framePush {
			if p.opts.OnPush != nil {
				p.opts.OnPush(shaped)
			}
			return
		}
		p.routeTopLevel(shaped)
		return
	}

	top := p.stack[len(p.stack)-1]
	top.items[top.pos] = shaped
	top.pos++
}

// fail implements §4.11: compose the fatal error, deliver it, and clear all
// parser state so the next Feed starts fresh. Bytes remaining in the
// current buffer after the offending byte are discarded (§4.11 recovery
// contract).
func (p *Parser) fail(pe *ProtocolError) {
	klog.V(4).Infof("resp: protocol error, discarding buffer: %v", pe)
	cb := p.opts.OnFatal
	p.Reset()
	if cb != nil {
		cb(pe)
	} else {
		p.opts.OnError(&ReplyError{Msg: pe.Error()})
	}
}
