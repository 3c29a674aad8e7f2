package der

import (
	"math"

	"github.com/ansel1/merry"
)

// MaxLengthOctets is the largest number of octets accepted in a long-form length.
const MaxLengthOctets = 4

// MaxLength is the largest length ReadLength accepts.  It leaves room for a header, so
// header plus value length never overflows a 32 bit int.
const MaxLength = math.MaxInt32 - 16

// ReadLength decodes the length octets at the start of b, returning the length and the
// number of octets consumed.
//
// The indefinite form, long forms with more than MaxLengthOctets octets, lengths above
// MaxLength, and non-minimal long forms are rejected with ErrLengthMismatch.  If b
// ends before the length octets do, the error is ErrBufferUnderrun.
func ReadLength(b []byte) (int, int, error) {
	if len(b) == 0 {
		return 0, 0, ErrBufferUnderrun
	}
	first := b[0]
	if first < 0x80 {
		return int(first), 1, nil
	}

	k := int(first & 0x7f)
	switch {
	case k == 0:
		return 0, 0, merry.Here(ErrLengthMismatch).Append("indefinite length form is not allowed")
	case k > MaxLengthOctets:
		return 0, 0, merry.Here(ErrLengthMismatch).Appendf("length uses %d octets, at most %d allowed", k, MaxLengthOctets)
	case len(b) < 1+k:
		return 0, 0, ErrBufferUnderrun
	}

	var n uint64
	for _, c := range b[1 : 1+k] {
		n = n<<8 | uint64(c)
	}
	if b[1] == 0 || n < 0x80 {
		return 0, 0, merry.Here(ErrLengthMismatch).Appendf("length %d is not minimally encoded", n)
	}
	if n > MaxLength {
		return 0, 0, merry.Here(ErrLengthMismatch).Appendf("length %d is too large", n)
	}
	return int(n), 1 + k, nil
}

// LengthLen returns the number of octets needed to encode the length n.
func LengthLen(n int) int {
	switch {
	case n < 0x80:
		return 1
	case n <= 0xff:
		return 2
	case n <= 0xffff:
		return 3
	case n <= 0xffffff:
		return 4
	}
	return 5
}

// AppendLength appends the minimal encoding of the length n to dst.
func AppendLength(dst []byte, n int) []byte {
	l := LengthLen(n)
	if l == 1 {
		return append(dst, byte(n))
	}
	dst = append(dst, 0x80|byte(l-1))
	for i := l - 2; i >= 0; i-- {
		dst = append(dst, byte(n>>(8*i)))
	}
	return dst
}
