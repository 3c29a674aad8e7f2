package codec

import (
	"github.com/ansel1/merry"
	"github.com/gemalto/krb5-go/der"
)

// Size returns the length of the DER encoding of v.
func Size[T any](c Codec[T], v *T) (int, error) {
	if v == nil {
		return 0, merry.Here(der.ErrMissingMandatoryField).Appendf("%s: nil value", c.Name())
	}
	var p plan
	return c.size(v, &p)
}

// Marshal returns the DER encoding of v.
func Marshal[T any](c Codec[T], v *T) ([]byte, error) {
	if v == nil {
		return nil, merry.Here(der.ErrMissingMandatoryField).Appendf("%s: nil value", c.Name())
	}
	var p plan
	n, err := c.size(v, &p)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if err := c.emit(v, der.NewWriter(buf), &p, der.Tag{}); err != nil {
		return nil, err
	}
	return buf, nil
}

// MarshalTo writes the DER encoding of v into dst, and returns the number of bytes written.
// If dst is too small, nothing is written and the error is ErrBufferOverflow.
func MarshalTo[T any](c Codec[T], v *T, dst []byte) (int, error) {
	if v == nil {
		return 0, merry.Here(der.ErrMissingMandatoryField).Appendf("%s: nil value", c.Name())
	}
	var p plan
	n, err := c.size(v, &p)
	if err != nil {
		return 0, err
	}
	if n > len(dst) {
		return 0, merry.Here(der.ErrBufferOverflow).Appendf("%s needs %d bytes, buffer holds %d", c.Name(), n, len(dst))
	}
	if err := c.emit(v, der.NewWriter(dst[:n]), &p, der.Tag{}); err != nil {
		return 0, err
	}
	return n, nil
}

// Unmarshal decodes a complete PDU.  Input which ends early fails with ErrBufferUnderrun,
// and bytes after the end of the PDU fail with ErrLengthMismatch.
func Unmarshal[T any](c Codec[T], b []byte) (*T, error) {
	return UnmarshalConfig(c, b, DefaultConfig())
}

// UnmarshalConfig is Unmarshal with a Config.
func UnmarshalConfig[T any](c Codec[T], b []byte, cfg Config) (*T, error) {
	ct := NewContainer(c, cfg)
	state, err := ct.Decode(b)
	switch state {
	case StateError:
		return nil, err
	case StatePending:
		return nil, merry.Here(der.ErrBufferUnderrun).Appendf("%s: input ends after %d bytes", c.Name(), len(b))
	}
	if rest := ct.Rest(); len(rest) > 0 {
		return nil, merry.Here(der.ErrLengthMismatch).Appendf("%s: %d bytes after the end", c.Name(), len(rest))
	}
	return ct.Value(), nil
}
