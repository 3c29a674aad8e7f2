package der

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt(t *testing.T) {
	tests := []struct {
		in  string
		exp int64
	}{
		{"00", 0},
		{"7F", 127},
		{"00 80", 128},
		{"FF", -1},
		{"80", -128},
		{"FF 7F", -129},
		{"01 00", 256},
		{"00 FF FF FF FF", math.MaxUint32},
		{"80 00 00 00", math.MinInt32},
		{"7F FF FF FF FF FF FF FF", math.MaxInt64},
		{"80 00 00 00 00 00 00 00", math.MinInt64},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			b := Hex2bytes(tc.in)
			n, err := ParseInt64(b)
			require.NoError(t, err)
			assert.Equal(t, tc.exp, n)

			require.Equal(t, len(b), IntLen(tc.exp))
			out := make([]byte, IntLen(tc.exp))
			PutInt(out, tc.exp)
			assert.Equal(t, b, out)
		})
	}
}

func TestParseInt64_errors(t *testing.T) {
	tests := []struct {
		in  string
		err error
	}{
		{"", ErrInvalidValue},
		{"00 7F", ErrInvalidValue},
		{"FF 80", ErrInvalidValue},
		{"01 00 00 00 00 00 00 00 00", ErrInvalidValue},
	}
	for _, tc := range tests {
		_, err := ParseInt64(Hex2bytes(tc.in))
		assert.True(t, Is(err, tc.err), "%q: %v", tc.in, err)
	}
}

func TestBoolean(t *testing.T) {
	b, err := ParseBoolean([]byte{0xff})
	require.NoError(t, err)
	assert.True(t, b)

	b, err = ParseBoolean([]byte{0x00})
	require.NoError(t, err)
	assert.False(t, b)

	_, err = ParseBoolean([]byte{0x01})
	assert.True(t, Is(err, ErrInvalidValue))

	_, err = ParseBoolean([]byte{0x00, 0x00})
	assert.True(t, Is(err, ErrInvalidValue))

	out := []byte{0}
	PutBoolean(out, true)
	assert.Equal(t, []byte{0xff}, out)
}

func TestGeneralizedTime(t *testing.T) {
	ts, err := ParseGeneralizedTime([]byte("20240315123045Z"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 12, 30, 45, 0, time.UTC), ts)

	out := make([]byte, GeneralizedTimeLen)
	PutGeneralizedTime(out, ts.In(time.FixedZone("EST", -5*3600)).Add(500*time.Millisecond))
	assert.Equal(t, "20240315123045Z", string(out))

	for _, s := range []string{"20240315123045", "20240315123045.5Z", "2024031512304Z5", "20241315123045Z", "2024031512304+Z"} {
		_, err := ParseGeneralizedTime([]byte(s))
		assert.True(t, Is(err, ErrInvalidValue), "%s: %v", s, err)
	}

	assert.NoError(t, CheckGeneralizedTime(ts))
	assert.Error(t, CheckGeneralizedTime(time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestBitString(t *testing.T) {
	bs, err := ParseBitString(Hex2bytes("00 40 81 00 10"))
	require.NoError(t, err)
	assert.Equal(t, 32, bs.BitLength)
	assert.Equal(t, 1, bs.At(1))
	assert.Equal(t, 1, bs.At(8))
	assert.Equal(t, 1, bs.At(15))
	assert.Equal(t, 1, bs.At(27))
	assert.Equal(t, 0, bs.At(0))
	assert.Equal(t, 0, bs.At(40))
	assert.NoError(t, bs.Check())

	out := make([]byte, bs.Len())
	PutBitString(out, bs)
	assert.Equal(t, Hex2bytes("00 40 81 00 10"), out)

	bs, err = ParseBitString(Hex2bytes("06 C0"))
	require.NoError(t, err)
	assert.Equal(t, 2, bs.BitLength)

	for _, in := range []string{"", "08 00", "01", "06 C1"} {
		_, err := ParseBitString(Hex2bytes(in))
		assert.True(t, Is(err, ErrInvalidValue), "%q: %v", in, err)
	}

	assert.Error(t, BitString{Bytes: []byte{1}, BitLength: 9}.Check())

	// BitLength longer than Bytes reads as clear bits
	short := BitString{Bytes: []byte{0xff}, BitLength: 32}
	assert.Equal(t, 1, short.At(7))
	assert.Equal(t, 0, short.At(8))
	assert.Equal(t, 0, BitString{BitLength: 32}.At(0))
}
