package der

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ansel1/merry"
	"golang.org/x/text/encoding/charmap"
)

// TLV is a view of one encoded element.  The accessors never panic on truncated input.
type TLV []byte

// Header decodes the element's header.
func (t TLV) Header() (Header, int, error) {
	return ReadHeader(t)
}

// Tag returns the element's tag, or the zero Tag if the identifier is truncated.
func (t TLV) Tag() Tag {
	tag, _, err := ReadTag(t)
	if err != nil {
		return Tag{}
	}
	return tag
}

// Len returns the declared length of the value, or 0 if the header is invalid.
func (t TLV) Len() int {
	h, _, err := ReadHeader(t)
	if err != nil {
		return 0
	}
	return h.Length
}

// FullLen returns the length of the header plus the declared length of the value, or 0
// if the header is invalid.
func (t TLV) FullLen() int {
	h, hl, err := ReadHeader(t)
	if err != nil {
		return 0
	}
	return hl + h.Length
}

// Value returns the value octets.  If the value is truncated, Value returns what's there.
func (t TLV) Value() []byte {
	h, hl, err := ReadHeader(t)
	if err != nil {
		return nil
	}
	if len(t)-hl < h.Length {
		return t[hl:]
	}
	return t[hl : hl+h.Length]
}

// Valid checks that the header is valid, the value is complete, and, for constructed
// elements, that the children exactly fill the value.
func (t TLV) Valid() error {
	h, hl, err := ReadHeader(t)
	if err != nil {
		return err
	}
	if len(t)-hl < h.Length {
		return ErrBufferUnderrun
	}
	if h.Constructed {
		inner := TLV(t[hl : hl+h.Length])
		for len(inner) > 0 {
			if err := inner.Valid(); err != nil {
				return merry.Prepend(err, h.Tag.String())
			}
			inner = inner[inner.FullLen():]
		}
	}
	return nil
}

// Next returns the element which follows t, or nil if t is the last or is invalid.
func (t TLV) Next() TLV {
	if t.Valid() != nil {
		return nil
	}
	n := t[t.FullLen():]
	if len(n) == 0 {
		return nil
	}
	return n
}

func (t TLV) String() string {
	buf := bytes.NewBuffer(nil)
	_ = Print(buf, "", t)
	return buf.String()
}

// Print writes an indented, human readable dump of t to w.  It stops at the first
// invalid element, writes the rest as hex, and returns the error.
func Print(w io.Writer, indent string, t TLV) (err error) {
	h, hl, err := t.Header()
	if err != nil {
		_, _ = fmt.Fprintf(w, "%s(%s) %#x", indent, err.Error(), []byte(t))
		return err
	}

	_, _ = fmt.Fprintf(w, "%s%v (%d):", indent, h.Tag, h.Length)

	if err = t.Valid(); err != nil {
		_, _ = fmt.Fprintf(w, " (%s)", err.Error())
		if err == ErrBufferUnderrun {
			_, _ = fmt.Fprintf(w, " %#x", []byte(t[hl:]))
			return err
		}
		if !h.Constructed {
			return err
		}
	}

	v := t.Value()
	if h.Constructed {
		indent += "  "
		for s := TLV(v); len(s) > 0; s = s[s.FullLen():] {
			_, _ = fmt.Fprint(w, "\n")
			if err = Print(w, indent, s); err != nil {
				// no markers to resync on, so give up on the rest
				return err
			}
		}
		return nil
	}

	if h.Class != ClassUniversal {
		_, _ = fmt.Fprintf(w, " %#x", v)
		return nil
	}

	switch h.Number {
	case NumInteger, NumEnumerated:
		if n, perr := ParseInt64(v); perr == nil {
			_, _ = fmt.Fprintf(w, " %d", n)
			return nil
		}
	case NumBoolean:
		if b, perr := ParseBoolean(v); perr == nil {
			_, _ = fmt.Fprintf(w, " %v", b)
			return nil
		}
	case NumGeneralString, NumUTF8String, NumPrintableString, NumIA5String:
		_, _ = fmt.Fprintf(w, " %q", printableString(v))
		return nil
	case NumGeneralizedTime:
		if ts, perr := ParseGeneralizedTime(v); perr == nil {
			_, _ = fmt.Fprintf(w, " %s", ts.Format("2006-01-02T15:04:05Z"))
			return nil
		}
	case NumBitString:
		if bs, perr := ParseBitString(v); perr == nil {
			_, _ = fmt.Fprintf(w, " %d bits %#x", bs.BitLength, bs.Bytes)
			return nil
		}
	}
	if len(v) > 0 {
		_, _ = fmt.Fprintf(w, " %#x", v)
	}
	return nil
}

// printableString renders GeneralString contents.  Kerberos implementations send UTF-8 or
// ISO-8859-1 in practice, so fall back to Latin-1 when the octets aren't valid UTF-8.
func printableString(v []byte) string {
	if utf8.Valid(v) {
		return string(v)
	}
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(v)
	if err != nil {
		return string(v)
	}
	return string(s)
}

// PrintPrettyHex writes the hex encoding of t, one element per line, with the tag, length,
// and value octets separated by pipes and children indented.  Invalid input is printed as
// raw hex rather than failing.
func PrintPrettyHex(w io.Writer, prefix, indent string, t []byte) error {
	curr := t
	for len(curr) > 0 {
		_, tl, err := ReadTag(curr)
		if err != nil {
			_, err = fmt.Fprintf(w, "%s%x", prefix, curr)
			return err
		}
		h, hl, err := ReadHeader(curr)
		if err != nil {
			_, err = fmt.Fprintf(w, "%s%x", prefix, curr)
			return err
		}
		if _, err := fmt.Fprintf(w, "%s%x | %x", prefix, curr[:tl], curr[tl:hl]); err != nil {
			return err
		}
		value := curr[hl:]
		if len(value) < h.Length {
			_, err = fmt.Fprintf(w, "\n%s%x", prefix, value)
			return err
		}
		value = value[:h.Length]
		switch {
		case h.Constructed && len(value) > 0:
			if _, err := fmt.Fprint(w, "\n"); err != nil {
				return err
			}
			if err := PrintPrettyHex(w, prefix+indent, indent, value); err != nil {
				return err
			}
		case len(value) > 0:
			if _, err := fmt.Fprintf(w, " | %x", value); err != nil {
				return err
			}
		}
		curr = curr[hl+h.Length:]
		if len(curr) > 0 {
			if _, err := fmt.Fprint(w, "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

// ParseHex decodes s as hex, ignoring any characters which aren't hex digits, so
// that fixtures can be written like "30 0F | A0 03 ...".
func ParseHex(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'A' && r <= 'F':
		case r >= 'a' && r <= 'f':
		default:
			return -1 // drop
		}
		return r
	}, s)
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, merry.Wrap(err)
	}
	return b, nil
}

// Hex2bytes is like ParseHex, but panics on odd length input.  Handy in tests.
func Hex2bytes(s string) []byte {
	b, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return b
}
