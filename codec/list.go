package codec

import (
	"github.com/ansel1/merry"
	"github.com/gemalto/krb5-go/der"
)

// List is the codec of a SEQUENCE OF E, held in the slice type S.  Elements keep their
// wire order.
type List[S ~[]E, E any] struct {
	name string
	item Codec[E]
}

// SequenceOf returns a codec for SEQUENCE OF item.  The slice type must be given:
//
//	names := codec.SequenceOf[[]string]("KerberosStrings", codec.GeneralString)
func SequenceOf[S ~[]E, E any](name string, item Codec[E]) *List[S, E] {
	return &List[S, E]{name: name, item: item}
}

func (l *List[S, E]) Name() string         { return l.name }
func (l *List[S, E]) match(t der.Tag) bool { return t == der.TagSequence }
func (l *List[S, E]) constructed() bool    { return true }
func (l *List[S, E]) allowEmpty() bool     { return true }
func (l *List[S, E]) missing(v *S) bool    { return []E(*v) == nil }

func (l *List[S, E]) begin(dst *S, _ der.Header) (step, error) {
	*dst = S{}
	return step{node: &listNode[S, E]{l: l, dst: dst}}, nil
}

func (l *List[S, E]) size(v *S, p *plan) (int, error) {
	i := p.reserve()
	n := 0
	for j := range *v {
		e := &(*v)[j]
		if l.item.missing(e) {
			return 0, merry.Here(der.ErrMissingMandatoryField).Appendf("%s[%d]: %s not set", l.name, j, l.item.Name())
		}
		el, err := l.item.size(e, p)
		if err != nil {
			return 0, merry.Prependf(err, "%s[%d]", l.name, j)
		}
		n += el
	}
	p.set(i, n)
	return der.HeaderLen(der.TagSequence, n) + n, nil
}

func (l *List[S, E]) emit(v *S, w *der.Writer, p *plan, tag der.Tag) error {
	if err := w.WriteHeader(tagOr(tag, der.TagSequence), p.next()); err != nil {
		return err
	}
	for j := range *v {
		if err := l.item.emit(&(*v)[j], w, p, der.Tag{}); err != nil {
			return err
		}
	}
	return nil
}

type listNode[S ~[]E, E any] struct {
	l   *List[S, E]
	dst *S
}

func (n *listNode[S, E]) label() string { return n.l.name }

func (n *listNode[S, E]) next(h der.Header) (step, error) {
	if !n.l.item.match(h.Tag) {
		return step{}, merry.Here(der.ErrTagMismatch).Appendf("%s: expected %s, got %v", n.l.name, n.l.item.Name(), h.Tag)
	}
	if !h.Constructed && h.Length == 0 && !n.l.item.allowEmpty() {
		return step{}, merry.Here(der.ErrEmptyMandatoryValue).Appendf("%s[%d]: empty %s", n.l.name, len(*n.dst), n.l.item.Name())
	}
	var zero E
	*n.dst = append(*n.dst, zero)
	// the element is complete before the next one is appended, so this pointer
	// stays valid for as long as the element is being decoded
	return n.l.item.begin(&(*n.dst)[len(*n.dst)-1], h)
}

func (n *listNode[S, E]) end() error {
	return nil
}
