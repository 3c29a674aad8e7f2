package codec

import (
	"time"

	"github.com/ansel1/merry"
	"github.com/gemalto/krb5-go/der"
)

// leaf is a Codec for a primitive universal type.
type leaf[V any] struct {
	name  string
	tag   der.Tag
	empty bool
	parse func(b []byte) (V, error)
	len   func(v V) (int, error)
	put   func(dst []byte, v V)
	zero  func(v V) bool
}

func (c *leaf[V]) Name() string         { return c.name }
func (c *leaf[V]) match(t der.Tag) bool { return t == c.tag }
func (c *leaf[V]) constructed() bool    { return false }
func (c *leaf[V]) allowEmpty() bool     { return c.empty }
func (c *leaf[V]) missing(v *V) bool    { return c.zero != nil && c.zero(*v) }

func (c *leaf[V]) begin(dst *V, _ der.Header) (step, error) {
	return step{leaf: func(b []byte) error {
		v, err := c.parse(b)
		if err != nil {
			return merry.Prepend(err, c.name)
		}
		*dst = v
		return nil
	}}, nil
}

func (c *leaf[V]) size(v *V, _ *plan) (int, error) {
	n, err := c.len(*v)
	if err != nil {
		return 0, merry.Prepend(err, c.name)
	}
	return der.HeaderLen(c.tag, n) + n, nil
}

func (c *leaf[V]) emit(v *V, w *der.Writer, _ *plan, tag der.Tag) error {
	n, err := c.len(*v)
	if err != nil {
		return err
	}
	if err := w.WriteHeader(tagOr(tag, c.tag), n); err != nil {
		return err
	}
	b, err := w.Reserve(n)
	if err != nil {
		return err
	}
	c.put(b, *v)
	return nil
}

type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32
}

func parseInteger[V integer](b []byte) (V, error) {
	n, err := der.ParseInt64(b)
	if err != nil {
		return 0, err
	}
	v := V(n)
	if int64(v) != n {
		return 0, merry.Here(der.ErrInvalidValue).Appendf("%d out of range", n)
	}
	return v, nil
}

func intLen[V integer](v V) (int, error) {
	return der.IntLen(int64(v)), nil
}

func putInt[V integer](dst []byte, v V) {
	der.PutInt(dst, int64(v))
}

// Integer returns a codec for INTEGER values held in V.  Decoded values which don't fit
// in V are rejected with ErrInvalidValue.
func Integer[V integer](name string) Codec[V] {
	return &leaf[V]{
		name:  name,
		tag:   der.TagInteger,
		parse: parseInteger[V],
		len:   intLen[V],
		put:   putInt[V],
	}
}

// Enumerated returns a codec for ENUMERATED values held in V.
func Enumerated[V integer](name string) Codec[V] {
	return &leaf[V]{
		name:  name,
		tag:   der.TagEnumerated,
		parse: parseInteger[V],
		len:   intLen[V],
		put:   putInt[V],
	}
}

type bitString interface {
	~struct {
		Bytes     []byte
		BitLength int
	}
}

// Bits returns a codec for BIT STRING values held in V, a type defined on der.BitString.
func Bits[V bitString](name string) Codec[V] {
	return &leaf[V]{
		name: name,
		tag:  der.TagBitString,
		parse: func(b []byte) (V, error) {
			bs, err := der.ParseBitString(b)
			return V(bs), err
		},
		len: func(v V) (int, error) {
			bs := der.BitString(v)
			return bs.Len(), bs.Check()
		},
		put: func(dst []byte, v V) {
			der.PutBitString(dst, der.BitString(v))
		},
	}
}

func copyBytes(b []byte) ([]byte, error) {
	return append([]byte{}, b...), nil
}

func bytesLen(b []byte) (int, error) {
	return len(b), nil
}

func putBytes(dst []byte, b []byte) {
	copy(dst, b)
}

func parseString(b []byte) (string, error) {
	return string(b), nil
}

func stringLen(s string) (int, error) {
	return len(s), nil
}

func putString(dst []byte, s string) {
	copy(dst, s)
}

var (
	Int32  = Integer[int32]("INTEGER")
	UInt32 = Integer[uint32]("INTEGER")
	Int64  = Integer[int64]("INTEGER")

	// OctetString may be empty.  A nil slice is unset.
	OctetString Codec[[]byte] = &leaf[[]byte]{
		name:  "OCTET STRING",
		tag:   der.TagOctetString,
		empty: true,
		parse: copyBytes,
		len:   bytesLen,
		put:   putBytes,
		zero:  func(b []byte) bool { return b == nil },
	}

	// OctetText is an OCTET STRING held in a string, as LDAP uses for DNs and attribute names.
	OctetText Codec[string] = &leaf[string]{
		name:  "OCTET STRING",
		tag:   der.TagOctetString,
		empty: true,
		parse: parseString,
		len:   stringLen,
		put:   putString,
	}

	// GeneralString may not be empty.
	GeneralString Codec[string] = &leaf[string]{
		name:  "GeneralString",
		tag:   der.TagGeneralString,
		parse: parseString,
		len:   stringLen,
		put:   putString,
		zero:  func(s string) bool { return s == "" },
	}

	GeneralizedTime Codec[time.Time] = &leaf[time.Time]{
		name:  "GeneralizedTime",
		tag:   der.TagGeneralizedTime,
		parse: der.ParseGeneralizedTime,
		len: func(t time.Time) (int, error) {
			return der.GeneralizedTimeLen, der.CheckGeneralizedTime(t)
		},
		put:  der.PutGeneralizedTime,
		zero: time.Time.IsZero,
	}

	Boolean Codec[bool] = &leaf[bool]{
		name:  "BOOLEAN",
		tag:   der.TagBoolean,
		parse: der.ParseBoolean,
		len:   func(bool) (int, error) { return 1, nil },
		put:   der.PutBoolean,
	}

	BitString = Bits[der.BitString]("BIT STRING")
)
