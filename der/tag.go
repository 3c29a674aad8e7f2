package der

import (
	"fmt"
	"strconv"

	"github.com/ansel1/merry"
)

// Class is the two high bits of an identifier octet.
type Class uint8

const (
	ClassUniversal   Class = 0
	ClassApplication Class = 1
	ClassContext     Class = 2
	ClassPrivate     Class = 3
)

func (c Class) String() string {
	switch c {
	case ClassUniversal:
		return "UNIVERSAL"
	case ClassApplication:
		return "APPLICATION"
	case ClassContext:
		return "CONTEXT"
	case ClassPrivate:
		return "PRIVATE"
	}
	return "Class(" + strconv.Itoa(int(c)) + ")"
}

// Universal type numbers.
const (
	NumBoolean         = 1
	NumInteger         = 2
	NumBitString       = 3
	NumOctetString     = 4
	NumNull            = 5
	NumObjectID        = 6
	NumEnumerated      = 10
	NumUTF8String      = 12
	NumSequence        = 16
	NumSet             = 17
	NumPrintableString = 19
	NumIA5String       = 22
	NumUTCTime         = 23
	NumGeneralizedTime = 24
	NumGeneralString   = 27
)

var universalNames = map[int]string{
	NumBoolean:         "BOOLEAN",
	NumInteger:         "INTEGER",
	NumBitString:       "BIT STRING",
	NumOctetString:     "OCTET STRING",
	NumNull:            "NULL",
	NumObjectID:        "OBJECT IDENTIFIER",
	NumEnumerated:      "ENUMERATED",
	NumUTF8String:      "UTF8String",
	NumSequence:        "SEQUENCE",
	NumSet:             "SET",
	NumPrintableString: "PrintableString",
	NumIA5String:       "IA5String",
	NumUTCTime:         "UTCTime",
	NumGeneralizedTime: "GeneralizedTime",
	NumGeneralString:   "GeneralString",
}

// Tag is a decoded identifier: class, primitive/constructed form, and tag number.
type Tag struct {
	Class       Class
	Constructed bool
	Number      int
}

var (
	TagBoolean         = Tag{Number: NumBoolean}
	TagInteger         = Tag{Number: NumInteger}
	TagBitString       = Tag{Number: NumBitString}
	TagOctetString     = Tag{Number: NumOctetString}
	TagEnumerated      = Tag{Number: NumEnumerated}
	TagGeneralizedTime = Tag{Number: NumGeneralizedTime}
	TagGeneralString   = Tag{Number: NumGeneralString}
	TagSequence        = Tag{Number: NumSequence, Constructed: true}
)

// Context returns the constructed context-specific tag [n], the form used by EXPLICIT tagging.
func Context(n int) Tag {
	return Tag{Class: ClassContext, Constructed: true, Number: n}
}

// ContextPrimitive returns the primitive context-specific tag [n], as produced by IMPLICIT
// tagging of a primitive type.
func ContextPrimitive(n int) Tag {
	return Tag{Class: ClassContext, Number: n}
}

// Application returns the constructed application tag [APPLICATION n].
func Application(n int) Tag {
	return Tag{Class: ClassApplication, Constructed: true, Number: n}
}

func (t Tag) String() string {
	var s string
	switch t.Class {
	case ClassUniversal:
		if name, ok := universalNames[t.Number]; ok {
			return name
		}
		s = "[UNIVERSAL " + strconv.Itoa(t.Number) + "]"
	case ClassContext:
		s = "[" + strconv.Itoa(t.Number) + "]"
	default:
		s = "[" + t.Class.String() + " " + strconv.Itoa(t.Number) + "]"
	}
	if !t.Constructed && t.Class != ClassUniversal {
		s += " primitive"
	}
	return s
}

// Len returns the number of identifier octets needed to encode t.
func (t Tag) Len() int {
	if t.Number < 0x1f {
		return 1
	}
	n := 1
	for v := t.Number; v > 0; v >>= 7 {
		n++
	}
	return n
}

// AppendTag appends the identifier octets of t to dst.
func AppendTag(dst []byte, t Tag) []byte {
	b := byte(t.Class) << 6
	if t.Constructed {
		b |= 0x20
	}
	if t.Number < 0x1f {
		return append(dst, b|byte(t.Number))
	}
	dst = append(dst, b|0x1f)
	for i := t.Len() - 2; i >= 0; i-- {
		c := byte(t.Number>>(7*i)) & 0x7f
		if i > 0 {
			c |= 0x80
		}
		dst = append(dst, c)
	}
	return dst
}

// maxTagOctets bounds the high-tag-number form.  Four base-128 octets hold 28 bits,
// far more than any grammar in this module uses.
const maxTagOctets = 4

// ReadTag decodes the identifier octets at the start of b.  It returns the tag and the
// number of octets consumed.  If b ends before the identifier does, the error is
// ErrBufferUnderrun.
func ReadTag(b []byte) (Tag, int, error) {
	if len(b) == 0 {
		return Tag{}, 0, ErrBufferUnderrun
	}
	t := Tag{
		Class:       Class(b[0] >> 6),
		Constructed: b[0]&0x20 != 0,
		Number:      int(b[0] & 0x1f),
	}
	if t.Number != 0x1f {
		return t, 1, nil
	}

	t.Number = 0
	for i := 1; ; i++ {
		if i > maxTagOctets {
			return Tag{}, 0, merry.Here(ErrTagMismatch).Appendf("tag number longer than %d octets", maxTagOctets)
		}
		if i >= len(b) {
			return Tag{}, 0, ErrBufferUnderrun
		}
		c := b[i]
		if i == 1 && c == 0x80 {
			return Tag{}, 0, merry.Here(ErrTagMismatch).Append("tag number has leading zero octet")
		}
		t.Number = t.Number<<7 | int(c&0x7f)
		if c&0x80 == 0 {
			if t.Number < 0x1f {
				return Tag{}, 0, merry.Here(ErrTagMismatch).Appendf("tag number %d should use the low-tag-number form", t.Number)
			}
			return t, i + 1, nil
		}
	}
}

// Header is a decoded tag and length.
type Header struct {
	Tag
	Length int
}

func (h Header) String() string {
	return fmt.Sprintf("%v (%d)", h.Tag, h.Length)
}

// ReadHeader decodes the identifier and length octets at the start of b, returning the
// header and the number of octets consumed.
func ReadHeader(b []byte) (Header, int, error) {
	t, tl, err := ReadTag(b)
	if err != nil {
		return Header{}, 0, err
	}
	l, ll, err := ReadLength(b[tl:])
	if err != nil {
		return Header{}, 0, err
	}
	return Header{Tag: t, Length: l}, tl + ll, nil
}

// HeaderLen returns the number of octets needed to encode the header of an element
// with tag t and a value of length n.
func HeaderLen(t Tag, n int) int {
	return t.Len() + LengthLen(n)
}

// AppendHeader appends the identifier and length octets to dst.
func AppendHeader(dst []byte, t Tag, n int) []byte {
	return AppendLength(AppendTag(dst, t), n)
}
