package codec

import (
	"fmt"

	"github.com/ansel1/merry"
	"github.com/gemalto/krb5-go/der"
)

type mode uint8

const (
	explicit mode = iota
	implicit
	untagged
)

// Field is one entry of a Grammar: the tag expected on the wire, whether the field may be
// absent, and how its value is decoded into and encoded from T.
type Field[T any] struct {
	Name string
	// Number is the context tag number.  It's -1 for untagged fields.
	Number   int
	Optional bool

	mode mode
	b    binding[T]
}

// binding connects a field's Codec to its location in T.
type binding[T any] interface {
	name() string
	match(t der.Tag) bool
	constructed() bool
	allowEmpty() bool
	present(v *T) bool
	missing(v *T) bool
	// absent is called when decoding finds the field isn't there.
	absent(dst *T)
	begin(dst *T, h der.Header) (step, error)
	size(v *T, p *plan) (int, error)
	emit(v *T, w *der.Writer, p *plan, tag der.Tag) error
}

// Required is a mandatory field with an EXPLICIT context tag [n].
func Required[T, V any](n int, name string, c Codec[V], ref func(*T) *V) Field[T] {
	return Field[T]{Name: name, Number: n, b: &required[T, V]{c: c, ref: ref}}
}

// Optional is an optional field with an EXPLICIT context tag [n].  A nil pointer is absent.
func Optional[T, V any](n int, name string, c Codec[V], ref func(*T) **V) Field[T] {
	return Field[T]{Name: name, Number: n, Optional: true, b: &optional[T, V]{c: c, ref: ref}}
}

// OptionalList is an optional SEQUENCE OF field with an EXPLICIT context tag [n].  A nil
// slice is absent; an empty, non-nil slice is encoded as an empty SEQUENCE.
func OptionalList[T any, S ~[]E, E any](n int, name string, c Codec[S], ref func(*T) *S) Field[T] {
	return Field[T]{Name: name, Number: n, Optional: true, b: &optionalList[T, S, E]{c: c, ref: ref}}
}

// OptionalBytes is an optional OCTET STRING field with an EXPLICIT context tag [n].  A nil
// slice is absent; an empty, non-nil slice is an empty OCTET STRING.
func OptionalBytes[T any](n int, name string, ref func(*T) *[]byte) Field[T] {
	return OptionalList(n, name, OctetString, ref)
}

// Implicit is a mandatory field with an IMPLICIT context tag [n].
func Implicit[T, V any](n int, name string, c Codec[V], ref func(*T) *V) Field[T] {
	checkImplicit(name, c)
	return Field[T]{Name: name, Number: n, mode: implicit, b: &required[T, V]{c: c, ref: ref}}
}

// OptionalImplicit is an optional field with an IMPLICIT context tag [n].
func OptionalImplicit[T, V any](n int, name string, c Codec[V], ref func(*T) **V) Field[T] {
	checkImplicit(name, c)
	return Field[T]{Name: name, Number: n, Optional: true, mode: implicit, b: &optional[T, V]{c: c, ref: ref}}
}

// DefaultImplicit is a field with an IMPLICIT context tag [n] and a DEFAULT value.  The
// field is left off the wire when it holds def, and set to def when decoding finds it absent.
func DefaultImplicit[T any, V comparable](n int, name string, c Codec[V], ref func(*T) *V, def V) Field[T] {
	checkImplicit(name, c)
	return Field[T]{Name: name, Number: n, Optional: true, mode: implicit, b: &defaulted[T, V]{required: required[T, V]{c: c, ref: ref}, def: def}}
}

// Component is a mandatory field with no tag of its own: it's recognized by the universal
// tag of its type.
func Component[T, V any](name string, c Codec[V], ref func(*T) *V) Field[T] {
	return Field[T]{Name: name, Number: -1, mode: untagged, b: &required[T, V]{c: c, ref: ref}}
}

// OptionalComponent is an optional field recognized by the universal tag of its type.
func OptionalComponent[T, V any](name string, c Codec[V], ref func(*T) **V) Field[T] {
	return Field[T]{Name: name, Number: -1, Optional: true, mode: untagged, b: &optional[T, V]{c: c, ref: ref}}
}

// Project adapts fields of U to a type T which contains a U, so that two grammars can share
// one field list, e.g. AS-REQ and TGS-REQ.
func Project[T, U any](fields []Field[U], ref func(*T) *U) []Field[T] {
	out := make([]Field[T], len(fields))
	for i, f := range fields {
		out[i] = Field[T]{Name: f.Name, Number: f.Number, Optional: f.Optional, mode: f.mode, b: &projected[T, U]{inner: f.b, ref: ref}}
	}
	return out
}

func checkImplicit[V any](name string, c Codec[V]) {
	// a CHOICE has no tag of its own to replace, so it must be tagged explicitly
	if _, ok := any(c).(interface{ isChoice() }); ok {
		panic(fmt.Sprintf("%s: CHOICE fields can't be IMPLICIT", name))
	}
}

func (f *Field[T]) tag() der.Tag {
	switch f.mode {
	case explicit:
		return der.Context(f.Number)
	case implicit:
		return der.Tag{Class: der.ClassContext, Constructed: f.b.constructed(), Number: f.Number}
	}
	return der.Tag{}
}

func (f *Field[T]) matches(t der.Tag) bool {
	if f.mode == untagged {
		return f.b.match(t)
	}
	return t == f.tag()
}

// open starts decoding the field's own element.
func (f *Field[T]) open(dst *T, h der.Header) (step, error) {
	if f.mode == explicit {
		return step{node: &wrapNode[T]{f: f, dst: dst}}, nil
	}
	return f.openValue(dst, h)
}

// openValue starts decoding the element holding the field's value, applying the
// zero-length rules.
func (f *Field[T]) openValue(dst *T, h der.Header) (step, error) {
	if !h.Constructed && h.Length == 0 && !f.b.allowEmpty() {
		if f.Optional {
			f.b.absent(dst)
			return step{leaf: skipValue}, nil
		}
		return step{}, merry.Here(der.ErrEmptyMandatoryValue).Appendf("%s: empty %s", f.Name, f.b.name())
	}
	return f.b.begin(dst, h)
}

func (f *Field[T]) size(v *T, p *plan) (int, error) {
	if f.mode != explicit {
		return f.b.size(v, p)
	}
	i := p.reserve()
	n, err := f.b.size(v, p)
	if err != nil {
		return 0, err
	}
	p.set(i, n)
	return der.HeaderLen(f.tag(), n) + n, nil
}

func (f *Field[T]) emit(v *T, w *der.Writer, p *plan) error {
	switch f.mode {
	case explicit:
		if err := w.WriteHeader(f.tag(), p.next()); err != nil {
			return err
		}
		return f.b.emit(v, w, p, der.Tag{})
	case implicit:
		return f.b.emit(v, w, p, f.tag())
	}
	return f.b.emit(v, w, p, der.Tag{})
}

type required[T, V any] struct {
	c   Codec[V]
	ref func(*T) *V
}

func (b *required[T, V]) name() string         { return b.c.Name() }
func (b *required[T, V]) match(t der.Tag) bool { return b.c.match(t) }
func (b *required[T, V]) constructed() bool    { return b.c.constructed() }
func (b *required[T, V]) allowEmpty() bool     { return b.c.allowEmpty() }
func (b *required[T, V]) present(*T) bool      { return true }
func (b *required[T, V]) missing(v *T) bool    { return b.c.missing(b.ref(v)) }
func (b *required[T, V]) absent(*T)            {}

func (b *required[T, V]) begin(dst *T, h der.Header) (step, error) {
	return b.c.begin(b.ref(dst), h)
}

func (b *required[T, V]) size(v *T, p *plan) (int, error) {
	return b.c.size(b.ref(v), p)
}

func (b *required[T, V]) emit(v *T, w *der.Writer, p *plan, tag der.Tag) error {
	return b.c.emit(b.ref(v), w, p, tag)
}

type optional[T, V any] struct {
	c   Codec[V]
	ref func(*T) **V
}

func (b *optional[T, V]) name() string         { return b.c.Name() }
func (b *optional[T, V]) match(t der.Tag) bool { return b.c.match(t) }
func (b *optional[T, V]) constructed() bool    { return b.c.constructed() }
func (b *optional[T, V]) allowEmpty() bool     { return b.c.allowEmpty() }
func (b *optional[T, V]) present(v *T) bool    { return *b.ref(v) != nil }
func (b *optional[T, V]) missing(*T) bool      { return false }
func (b *optional[T, V]) absent(dst *T)        { *b.ref(dst) = nil }

func (b *optional[T, V]) begin(dst *T, h der.Header) (step, error) {
	v := new(V)
	*b.ref(dst) = v
	return b.c.begin(v, h)
}

func (b *optional[T, V]) size(v *T, p *plan) (int, error) {
	return b.c.size(*b.ref(v), p)
}

func (b *optional[T, V]) emit(v *T, w *der.Writer, p *plan, tag der.Tag) error {
	return b.c.emit(*b.ref(v), w, p, tag)
}

type optionalList[T any, S ~[]E, E any] struct {
	c   Codec[S]
	ref func(*T) *S
}

func (b *optionalList[T, S, E]) name() string         { return b.c.Name() }
func (b *optionalList[T, S, E]) match(t der.Tag) bool { return b.c.match(t) }
func (b *optionalList[T, S, E]) constructed() bool    { return b.c.constructed() }
func (b *optionalList[T, S, E]) allowEmpty() bool     { return b.c.allowEmpty() }
func (b *optionalList[T, S, E]) present(v *T) bool    { return []E(*b.ref(v)) != nil }
func (b *optionalList[T, S, E]) missing(*T) bool      { return false }
func (b *optionalList[T, S, E]) absent(dst *T)        { *b.ref(dst) = S(nil) }

func (b *optionalList[T, S, E]) begin(dst *T, h der.Header) (step, error) {
	return b.c.begin(b.ref(dst), h)
}

func (b *optionalList[T, S, E]) size(v *T, p *plan) (int, error) {
	return b.c.size(b.ref(v), p)
}

func (b *optionalList[T, S, E]) emit(v *T, w *der.Writer, p *plan, tag der.Tag) error {
	return b.c.emit(b.ref(v), w, p, tag)
}

type defaulted[T any, V comparable] struct {
	required[T, V]
	def V
}

func (b *defaulted[T, V]) present(v *T) bool { return *b.ref(v) != b.def }
func (b *defaulted[T, V]) missing(*T) bool   { return false }
func (b *defaulted[T, V]) absent(dst *T)     { *b.ref(dst) = b.def }

type projected[T, U any] struct {
	inner binding[U]
	ref   func(*T) *U
}

func (b *projected[T, U]) name() string         { return b.inner.name() }
func (b *projected[T, U]) match(t der.Tag) bool { return b.inner.match(t) }
func (b *projected[T, U]) constructed() bool    { return b.inner.constructed() }
func (b *projected[T, U]) allowEmpty() bool     { return b.inner.allowEmpty() }
func (b *projected[T, U]) present(v *T) bool    { return b.inner.present(b.ref(v)) }
func (b *projected[T, U]) missing(v *T) bool    { return b.inner.missing(b.ref(v)) }
func (b *projected[T, U]) absent(dst *T)        { b.inner.absent(b.ref(dst)) }

func (b *projected[T, U]) begin(dst *T, h der.Header) (step, error) {
	return b.inner.begin(b.ref(dst), h)
}

func (b *projected[T, U]) size(v *T, p *plan) (int, error) {
	return b.inner.size(b.ref(v), p)
}

func (b *projected[T, U]) emit(v *T, w *der.Writer, p *plan, tag der.Tag) error {
	return b.inner.emit(b.ref(v), w, p, tag)
}
