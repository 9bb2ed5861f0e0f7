package resp

import "github.com/joomcode/errorx"

// Opts configures a Parser. OnReply and OnError are required; the rest are
// optional.
type Opts struct {
	// OnReply delivers an ordinary top-level reply. Required.
	OnReply func(Reply)
	// OnError delivers a top-level server error (simple `-` or blob `!`).
	// Required.
	OnError func(*ReplyError)
	// OnFatal delivers a protocol-violation error. Falls back to OnError
	// when nil.
	OnFatal func(*ProtocolError)
	// OnPush delivers a RESP3 push-data frame (`>`). Frames arriving with
	// no OnPush set are silently dropped, matching the "none" default in
	// the option table.
	OnPush func(Reply)
	// OnAttribute delivers RESP3 attribute side-band metadata (`|`).
	// Frames arriving with no OnAttribute set are silently dropped.
	OnAttribute func(Reply)

	// ReturnBuffers delivers bulk strings as raw bytes instead of text.
	ReturnBuffers bool
	// StringNumbers delivers integers as decimal text instead of int64.
	StringNumbers bool
	// BigInt delivers integers as arbitrary-precision math/big.Int.
	BigInt bool
}

// ParserOpt is a functional option layered over Opts, in the PoolOpt/DialOpt
// style used elsewhere in this line of client code.
type ParserOpt func(*Opts)

// WithReturnBuffers sets Opts.ReturnBuffers.
func WithReturnBuffers() ParserOpt { return func(o *Opts) { o.ReturnBuffers = true } }

// WithStringNumbers sets Opts.StringNumbers.
func WithStringNumbers() ParserOpt { return func(o *Opts) { o.StringNumbers = true } }

// WithBigInt sets Opts.BigInt.
func WithBigInt() ParserOpt { return func(o *Opts) { o.BigInt = true } }

// WithOnPush sets Opts.OnPush.
func WithOnPush(fn func(Reply)) ParserOpt { return func(o *Opts) { o.OnPush = fn } }

// WithOnAttribute sets Opts.OnAttribute.
func WithOnAttribute(fn func(Reply)) ParserOpt { return func(o *Opts) { o.OnAttribute = fn } }

// WithOnFatal sets Opts.OnFatal.
func WithOnFatal(fn func(*ProtocolError)) ParserOpt { return func(o *Opts) { o.OnFatal = fn } }

// ErrInvalidArgument is the errorx type returned by NewParser and the mode
// setters when given an invalid configuration. Callers can test for it with
// errorx.IsOfType(err, resp.ErrInvalidArgument).
var ErrInvalidArgument = errorx.IllegalArgument

func (o *Opts) validate() error {
	if o.OnReply == nil {
		return ErrInvalidArgument.New("OnReply callback is required")
	}
	if o.OnError == nil {
		return ErrInvalidArgument.New("OnError callback is required")
	}
	if o.StringNumbers && o.BigInt {
		return ErrInvalidArgument.New("string_numbers and big_int are mutually exclusive")
	}
	return nil
}
