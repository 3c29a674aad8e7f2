package der

import (
	"time"

	"github.com/ansel1/merry"
)

// ParseInt64 decodes the value octets of an INTEGER or ENUMERATED.  DER requires the
// minimal two's complement encoding, so redundant leading 0x00 or 0xFF octets are
// rejected with ErrInvalidValue.
func ParseInt64(v []byte) (int64, error) {
	switch {
	case len(v) == 0:
		return 0, merry.Here(ErrInvalidValue).Append("integer has no value octets")
	case len(v) > 8:
		return 0, merry.Here(ErrInvalidValue).Appendf("integer of %d octets does not fit in 64 bits", len(v))
	case len(v) > 1 && (v[0] == 0x00 && v[1]&0x80 == 0 || v[0] == 0xff && v[1]&0x80 != 0):
		return 0, merry.Here(ErrInvalidValue).Appendf("integer %#x is not minimally encoded", v)
	}

	var n int64
	for _, c := range v {
		n = n<<8 | int64(c)
	}
	if v[0]&0x80 != 0 && len(v) < 8 {
		// sign extend
		n -= 1 << (8 * uint(len(v)))
	}
	return n, nil
}

// IntLen returns the number of octets in the minimal two's complement encoding of n.
func IntLen(n int64) int {
	l := 1
	for l < 8 && (n < -(1<<(8*l-1)) || n >= 1<<(8*l-1)) {
		l++
	}
	return l
}

// PutInt writes n big-endian, two's complement, into all of dst.  len(dst) should be IntLen(n).
func PutInt(dst []byte, n int64) {
	for i := len(dst) - 1; i >= 0; i-- {
		dst[i] = byte(n)
		n >>= 8
	}
}

// ParseBoolean decodes a BOOLEAN.  DER only allows 0x00 and 0xFF.
func ParseBoolean(v []byte) (bool, error) {
	if len(v) != 1 {
		return false, merry.Here(ErrInvalidValue).Appendf("boolean must be 1 octet, got %d", len(v))
	}
	switch v[0] {
	case 0x00:
		return false, nil
	case 0xff:
		return true, nil
	}
	return false, merry.Here(ErrInvalidValue).Appendf("boolean octet %#x is not DER", v[0])
}

// PutBoolean writes b into dst[0].
func PutBoolean(dst []byte, b bool) {
	if b {
		dst[0] = 0xff
	} else {
		dst[0] = 0x00
	}
}

const (
	// GeneralizedTimeLen is the length of a KerberosTime: YYYYMMDDHHMMSSZ.
	GeneralizedTimeLen    = 15
	generalizedTimeLayout = "20060102150405Z"
)

// ParseGeneralizedTime decodes a GeneralizedTime restricted to the Kerberos profile: UTC,
// whole seconds, no fractional part, exactly 15 octets.
func ParseGeneralizedTime(v []byte) (time.Time, error) {
	if len(v) != GeneralizedTimeLen {
		return time.Time{}, merry.Here(ErrInvalidValue).Appendf("time must be %d octets, got %d", GeneralizedTimeLen, len(v))
	}
	s := string(v)
	t, err := time.Parse(generalizedTimeLayout, s)
	if err != nil {
		return time.Time{}, merry.WrapSkipping(ErrInvalidValue, 0).WithCause(err).Appendf("bad time %q", s)
	}
	if t.Format(generalizedTimeLayout) != s {
		return time.Time{}, merry.Here(ErrInvalidValue).Appendf("time %q is not canonical", s)
	}
	return t, nil
}

// CheckGeneralizedTime returns an error if t cannot be written as a 4 digit year time.
func CheckGeneralizedTime(t time.Time) error {
	if y := t.UTC().Year(); y < 0 || y > 9999 {
		return merry.Here(ErrInvalidValue).Appendf("year %d cannot be encoded", y)
	}
	return nil
}

// PutGeneralizedTime writes t, converted to UTC and truncated to the second, into dst.
func PutGeneralizedTime(dst []byte, t time.Time) {
	copy(dst, t.UTC().Format(generalizedTimeLayout))
}

// BitString is the value of a BIT STRING.  Bit 0 is the most significant bit of Bytes[0].
type BitString struct {
	Bytes     []byte
	BitLength int
}

// At returns the bit at index i, or 0 if i is out of range of BitLength or Bytes.
func (b BitString) At(i int) int {
	if i < 0 || i >= b.BitLength || i/8 >= len(b.Bytes) {
		return 0
	}
	return int(b.Bytes[i/8]>>(7-uint(i%8))) & 1
}

// Len returns the length of the encoded value: the unused-bits octet plus the payload.
func (b BitString) Len() int {
	return 1 + len(b.Bytes)
}

// Check returns ErrInvalidValue if BitLength doesn't agree with the number of bytes.
func (b BitString) Check() error {
	if pad := len(b.Bytes)*8 - b.BitLength; pad < 0 || pad > 7 {
		return merry.Here(ErrInvalidValue).Appendf("%d bits don't fit %d bytes", b.BitLength, len(b.Bytes))
	}
	return nil
}

// ParseBitString decodes a BIT STRING.  The payload is copied.
func ParseBitString(v []byte) (BitString, error) {
	if len(v) == 0 {
		return BitString{}, merry.Here(ErrInvalidValue).Append("bit string has no unused-bits octet")
	}
	pad := int(v[0])
	switch {
	case pad > 7:
		return BitString{}, merry.Here(ErrInvalidValue).Appendf("unused-bits octet %d is greater than 7", pad)
	case len(v) == 1 && pad != 0:
		return BitString{}, merry.Here(ErrInvalidValue).Append("empty bit string with unused bits")
	case pad > 0 && v[len(v)-1]&(1<<uint(pad)-1) != 0:
		return BitString{}, merry.Here(ErrInvalidValue).Append("unused bits are not zero")
	}
	return BitString{
		Bytes:     append([]byte{}, v[1:]...),
		BitLength: (len(v)-1)*8 - pad,
	}, nil
}

// PutBitString writes b into dst, which should be b.Len() octets.
func PutBitString(dst []byte, b BitString) {
	dst[0] = byte(len(b.Bytes)*8 - b.BitLength)
	copy(dst[1:], b.Bytes)
}
