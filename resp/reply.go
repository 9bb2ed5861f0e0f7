package resp

import "math/big"

// Kind discriminates the variant held by a Reply, mirroring the RESP2/RESP3
// type tags this package decodes.
type Kind uint8

const (
	KindSimpleString Kind = iota
	KindBulkString
	KindInteger
	KindDouble
	KindBoolean
	KindBigNumber
	KindNull
	KindArray
	KindSet
	KindMap
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindSimpleString:
		return "SimpleString"
	case KindBulkString:
		return "BulkString"
	case KindInteger:
		return "Integer"
	case KindDouble:
		return "Double"
	case KindBoolean:
		return "Boolean"
	case KindBigNumber:
		return "BigNumber"
	case KindNull:
		return "Null"
	case KindArray:
		return "Array"
	case KindSet:
		return "Set"
	case KindMap:
		return "Map"
	case KindError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Pair is one key/value entry of a decoded Map reply. Order is preserved as
// received on the wire.
type Pair struct {
	Key   Reply
	Value Reply
}

// Reply is a decoded RESP value. Only the fields relevant to Kind are
// populated: a single struct discriminated by which field carries the
// payload, with an explicit Kind tag for RESP3's richer variant set.
type Reply struct {
	Kind Kind

	// Str holds simple-string and bulk-string text, and the decimal text
	// form of Integer/Double/BigNumber when IsText is set. Error text is in
	// ErrMsg.
	Str string

	// Bytes holds bulk-string payload when ReturnBuffers was in effect for
	// this reply.
	Bytes []byte

	// IsText marks that Integer/Double/BigNumber is represented in Str
	// (string_numbers mode, where a Double's inf/-inf becomes
	// "Infinity"/"-Infinity") rather than in Int/Float/Big.
	IsText bool

	Int   int64
	Float float64
	Bool  bool
	Big   *big.Int

	// Array backs both Array and Set kinds.
	Array []Reply

	// Pairs backs Map kind (and the attribute side-channel value, which is
	// shaped identically to a Map).
	Pairs []Pair

	// ErrCode is the blob-error (`!`) code, the text before the first space
	// in the error payload. Empty for simple errors (`-`).
	ErrCode string
	ErrMsg  string
}

// AsError returns a *ReplyError for a Reply of KindError. It panics if Kind
// is not KindError; callers should check Kind first.
func (r Reply) AsError() *ReplyError {
	if r.Kind != KindError {
		panic("resp: AsError called on non-error Reply")
	}
	return &ReplyError{Code: r.ErrCode, Msg: r.ErrMsg}
}

func newSimpleString(s string, raw []byte, asBuffer bool) Reply {
	if asBuffer {
		return Reply{Kind: KindSimpleString, Bytes: raw, Str: s}
	}
	return Reply{Kind: KindSimpleString, Str: s}
}

func newBulkString(s string, raw []byte, asBuffer bool) Reply {
	if asBuffer {
		return Reply{Kind: KindBulkString, Bytes: raw}
	}
	return Reply{Kind: KindBulkString, Str: s}
}

func newSimpleError(msg string) Reply {
	return Reply{Kind: KindError, ErrMsg: msg}
}

func newBlobError(code, msg string) Reply {
	return Reply{Kind: KindError, ErrCode: code, ErrMsg: msg}
}

func newNull() Reply {
	return Reply{Kind: KindNull}
}

func newBool(b bool) Reply {
	return Reply{Kind: KindBoolean, Bool: b}
}
