package der

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLength(t *testing.T) {
	tests := []struct {
		in  string
		exp int
	}{
		{"00", 0},
		{"7F", 127},
		{"81 80", 128},
		{"81 FF", 255},
		{"82 01 00", 256},
		{"83 01 00 00", 65536},
		{"84 01 00 00 00", 1 << 24},
		{"84 7F FF FF EF", MaxLength},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			b := Hex2bytes(tc.in)
			l, n, err := ReadLength(b)
			require.NoError(t, err)
			assert.Equal(t, tc.exp, l)
			assert.Equal(t, len(b), n)
			assert.Equal(t, len(b), LengthLen(tc.exp))
			assert.Equal(t, b, AppendLength(nil, tc.exp))
		})
	}
}

func TestReadLength_errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		err  error
	}{
		{"empty", "", ErrBufferUnderrun},
		{"truncated long form", "82 01", ErrBufferUnderrun},
		{"indefinite", "80", ErrLengthMismatch},
		{"five octets", "85 00 00 00 00 01", ErrLengthMismatch},
		{"non-minimal short", "81 05", ErrLengthMismatch},
		{"leading zero", "82 00 90", ErrLengthMismatch},
		{"too large", "84 80 00 00 00", ErrLengthMismatch},
		{"max int32", "84 7F FF FF FF", ErrLengthMismatch},
		{"just over max", "84 7F FF FF F0", ErrLengthMismatch},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ReadLength(Hex2bytes(tc.in))
			require.Error(t, err)
			assert.True(t, Is(err, tc.err), Details(err))
		})
	}
}
