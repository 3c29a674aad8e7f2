package codec

import (
	"github.com/gemalto/krb5-go/der"
)

// Codec decodes and encodes values of type V.  Implementations are leaf codecs, Grammars,
// Lists, and Choices.  They are immutable once built, and safe to share between goroutines.
type Codec[V any] interface {
	// Name returns the ASN.1 name of the type.
	Name() string

	// match reports whether an element with tag t holds a value of this type.
	match(t der.Tag) bool
	constructed() bool
	// allowEmpty reports whether a primitive element with no value octets is a valid value.
	allowEmpty() bool
	// missing reports whether v is unset, and so can't be encoded as a mandatory field.
	missing(v *V) bool

	// begin starts decoding the element with header h into dst.
	begin(dst *V, h der.Header) (step, error)

	// size returns the encoded length of v, header included.  Constructed codecs record
	// the lengths of their contents in p.
	size(v *V, p *plan) (int, error)
	// emit writes v.  tag replaces the type's own tag unless it is the zero Tag.
	emit(v *V, w *der.Writer, p *plan, tag der.Tag) error
}

// step tells the Container what to do with the element whose header was just read.
// Exactly one of node and leaf is set.
type step struct {
	// node receives the children of a constructed element.
	node node
	// leaf stores the value octets of a primitive element.
	leaf func(v []byte) error
}

// node is one open constructed element during decoding.
type node interface {
	label() string
	next(h der.Header) (step, error)
	// end is called once all the bytes of the element have been consumed.
	end() error
}

func skipValue([]byte) error {
	return nil
}

// plan holds the content lengths of constructed elements, in the order they are written.
type plan struct {
	lens []int
	pos  int
}

func (p *plan) reserve() int {
	p.lens = append(p.lens, 0)
	return len(p.lens) - 1
}

func (p *plan) set(i, n int) {
	p.lens[i] = n
}

func (p *plan) next() int {
	n := p.lens[p.pos]
	p.pos++
	return n
}

func tagOr(tag, def der.Tag) der.Tag {
	if tag == (der.Tag{}) {
		return def
	}
	return tag
}
