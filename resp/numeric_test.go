package resp

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegerDefaultIsInt64(t *testing.T) {
	p, c := newTestParser(t)
	p.Feed([]byte(":42\r\n:-7\r\n"))
	require.Len(t, c.replies, 2)
	assert.Equal(t, int64(42), c.replies[0].Int)
	assert.Equal(t, int64(-7), c.replies[1].Int)
}

func TestBigIntMode(t *testing.T) {
	p, c := newTestParser(t, WithBigInt())
	p.Feed([]byte(":123456789012345678901234567890\r\n"))
	require.Len(t, c.replies, 1)
	want, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
	require.True(t, ok)
	require.NotNil(t, c.replies[0].Big)
	assert.Equal(t, 0, want.Cmp(c.replies[0].Big))
}

func TestSetBigIntAndStringNumbersMutuallyExclusive(t *testing.T) {
	p, _ := newTestParser(t, WithStringNumbers())
	err := p.SetBigInt(true)
	assert.Error(t, err)

	p2, _ := newTestParser(t, WithBigInt())
	err = p2.SetStringNumbers(true)
	assert.Error(t, err)
}

func TestBigNumberType(t *testing.T) {
	p, c := newTestParser(t)
	p.Feed([]byte("(3492890328409238509324850943850943825024385\r\n"))
	require.Len(t, c.replies, 1)
	assert.Equal(t, KindBigNumber, c.replies[0].Kind)
	require.NotNil(t, c.replies[0].Big)
}

func TestBigNumberAsStringNumbers(t *testing.T) {
	p, c := newTestParser(t, WithStringNumbers())
	p.Feed([]byte("(3492890328409238509324850943850943825024385\r\n"))
	require.Len(t, c.replies, 1)
	assert.True(t, c.replies[0].IsText)
	assert.Equal(t, "3492890328409238509324850943850943825024385", c.replies[0].Str)
}

func TestMalformedIntegerIsFatal(t *testing.T) {
	p, c := newTestParser(t)
	p.Feed([]byte(":not-a-number\r\n"))
	require.Len(t, c.fatals, 1)
}

func TestBooleanType(t *testing.T) {
	p, c := newTestParser(t)
	p.Feed([]byte("#t\r\n#f\r\n"))
	require.Len(t, c.replies, 2)
	assert.True(t, c.replies[0].Bool)
	assert.False(t, c.replies[1].Bool)
}

func TestNullType(t *testing.T) {
	p, c := newTestParser(t)
	p.Feed([]byte("_\r\n"))
	require.Len(t, c.replies, 1)
	assert.Equal(t, KindNull, c.replies[0].Kind)
}
