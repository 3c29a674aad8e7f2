package krb5

import (
	"fmt"
	"strings"

	"github.com/gemalto/krb5-go/der"
)

// KerberosFlags is a BIT STRING of option or flag bits.  Bit 0 is the most significant
// bit of the first byte.  The bit length is kept as decoded, so flags re-encode to the
// same bytes; flags built with NewKerberosFlags or Set are 32 bits long.
type KerberosFlags der.BitString

// Ticket flags (RFC 4120 5.3).
const (
	FlagReserved               = 0
	FlagForwardable            = 1
	FlagForwarded              = 2
	FlagProxiable              = 3
	FlagProxy                  = 4
	FlagMayPostdate            = 5
	FlagPostdated              = 6
	FlagInvalid                = 7
	FlagRenewable              = 8
	FlagInitial                = 9
	FlagPreAuthent             = 10
	FlagHWAuthent              = 11
	FlagTransitedPolicyChecked = 12
	FlagOKAsDelegate           = 13
)

// KDC options (RFC 4120 5.4.1).  The bits shared with ticket flags use the same numbers.
const (
	KDCOptionForwardable           = 1
	KDCOptionForwarded             = 2
	KDCOptionProxiable             = 3
	KDCOptionProxy                 = 4
	KDCOptionAllowPostdate         = 5
	KDCOptionPostdated             = 6
	KDCOptionRenewable             = 8
	KDCOptionOptHardwareAuth       = 11
	KDCOptionCanonicalize          = 15
	KDCOptionDisableTransitedCheck = 26
	KDCOptionRenewableOK           = 27
	KDCOptionEncTktInSkey          = 28
	KDCOptionRenew                 = 30
	KDCOptionValidate              = 31
)

// AP options (RFC 4120 5.5.1).
const (
	APOptionUseSessionKey  = 1
	APOptionMutualRequired = 2
)

// NewKerberosFlags returns 32 bit flags with the given bits set.
func NewKerberosFlags(bits ...int) KerberosFlags {
	f := KerberosFlags{Bytes: make([]byte, 4), BitLength: 32}
	for _, b := range bits {
		f.Set(b)
	}
	return f
}

// Has reports whether bit is set.  Bits past the end of the string are clear.
func (f KerberosFlags) Has(bit int) bool {
	return der.BitString(f).At(bit) == 1
}

// Set sets bit, growing the string to 32 bits, or to the next whole byte past 32 bits,
// if it's too short.
func (f *KerberosFlags) Set(bit int) {
	if bit < 0 {
		return
	}
	if bit >= f.BitLength {
		n := 32
		if bit >= n {
			n = (bit/8 + 1) * 8
		}
		f.BitLength = n
	}
	if size := (f.BitLength + 7) / 8; len(f.Bytes) < size {
		b := make([]byte, size)
		copy(b, f.Bytes)
		f.Bytes = b
	}
	f.Bytes[bit/8] |= 0x80 >> uint(bit%8)
}

// Clear clears bit.
func (f *KerberosFlags) Clear(bit int) {
	if bit < 0 || bit >= f.BitLength || bit/8 >= len(f.Bytes) {
		return
	}
	f.Bytes[bit/8] &^= 0x80 >> uint(bit%8)
}

// Bits returns the numbers of the bits which are set.
func (f KerberosFlags) Bits() []int {
	var bits []int
	for i := 0; i < f.BitLength; i++ {
		if f.Has(i) {
			bits = append(bits, i)
		}
	}
	return bits
}

// String lists the set bits, e.g. "1|8|10".  Flags with no bits set print as "0".
func (f KerberosFlags) String() string {
	bits := f.Bits()
	if len(bits) == 0 {
		return "0"
	}
	parts := make([]string, len(bits))
	for i, b := range bits {
		parts[i] = fmt.Sprint(b)
	}
	return strings.Join(parts, "|")
}

func (f KerberosFlags) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}
