package codec

import (
	"fmt"

	"github.com/ansel1/merry"
	"github.com/gemalto/krb5-go/der"
)

// Grammar is the decoding and encoding table for a SEQUENCE type T, optionally wrapped
// in an APPLICATION tag.
type Grammar[T any] struct {
	name   string
	app    int
	fields []Field[T]
}

// NewGrammar returns the grammar of a SEQUENCE with the given fields, in wire order.
// It panics if the context tags of the fields are not strictly ascending.
func NewGrammar[T any](name string, fields ...Field[T]) *Grammar[T] {
	return newGrammar(name, -1, fields)
}

// NewApplication returns the grammar of [APPLICATION app] SEQUENCE { fields }.
func NewApplication[T any](name string, app int, fields ...Field[T]) *Grammar[T] {
	if app < 0 || app >= 0x1f {
		panic(fmt.Sprintf("%s: application tag %d out of range", name, app))
	}
	return newGrammar(name, app, fields)
}

func newGrammar[T any](name string, app int, fields []Field[T]) *Grammar[T] {
	last := -1
	for _, f := range fields {
		if f.mode == untagged {
			continue
		}
		if f.Number <= last {
			panic(fmt.Sprintf("%s: field %s has tag [%d], not above the previous [%d]", name, f.Name, f.Number, last))
		}
		last = f.Number
	}
	return &Grammar[T]{name: name, app: app, fields: fields}
}

func (g *Grammar[T]) Name() string {
	return g.name
}

// Application returns the APPLICATION tag number, or -1.
func (g *Grammar[T]) Application() int {
	return g.app
}

// FieldInfo describes one field of a Grammar.
type FieldInfo struct {
	Name     string
	Tag      der.Tag
	Optional bool
}

// Fields describes the grammar's fields in wire order.  The Tag of an untagged field is
// the zero Tag.
func (g *Grammar[T]) Fields() []FieldInfo {
	infos := make([]FieldInfo, len(g.fields))
	for i := range g.fields {
		infos[i] = FieldInfo{Name: g.fields[i].Name, Tag: g.fields[i].tag(), Optional: g.fields[i].Optional}
	}
	return infos
}

// Present reports whether field i of v would be written by the encoder.
func (g *Grammar[T]) Present(v *T, i int) bool {
	return g.fields[i].b.present(v)
}

func (g *Grammar[T]) outer() der.Tag {
	if g.app >= 0 {
		return der.Application(g.app)
	}
	return der.TagSequence
}

func (g *Grammar[T]) match(t der.Tag) bool {
	return t == g.outer()
}

func (g *Grammar[T]) constructed() bool { return true }
func (g *Grammar[T]) allowEmpty() bool  { return true }
func (g *Grammar[T]) missing(*T) bool   { return false }

func (g *Grammar[T]) begin(dst *T, _ der.Header) (step, error) {
	if g.app >= 0 {
		return step{node: &appNode[T]{g: g, dst: dst}}, nil
	}
	return step{node: &seqNode[T]{g: g, dst: dst}}, nil
}

func (g *Grammar[T]) size(v *T, p *plan) (int, error) {
	ai := -1
	if g.app >= 0 {
		ai = p.reserve()
	}
	si := p.reserve()

	n := 0
	for i := range g.fields {
		f := &g.fields[i]
		if !f.b.present(v) {
			continue
		}
		if !f.Optional && f.b.missing(v) {
			return 0, missingField(g.name, f.Name)
		}
		fl, err := f.size(v, p)
		if err != nil {
			return 0, merry.Prepend(err, g.name+"."+f.Name)
		}
		n += fl
	}
	p.set(si, n)
	n += der.HeaderLen(der.TagSequence, n)

	if ai >= 0 {
		p.set(ai, n)
		n += der.HeaderLen(der.Application(g.app), n)
	}
	return n, nil
}

func (g *Grammar[T]) emit(v *T, w *der.Writer, p *plan, tag der.Tag) error {
	if g.app >= 0 {
		if err := w.WriteHeader(tagOr(tag, g.outer()), p.next()); err != nil {
			return err
		}
		tag = der.Tag{}
	}
	if err := w.WriteHeader(tagOr(tag, der.TagSequence), p.next()); err != nil {
		return err
	}
	for i := range g.fields {
		f := &g.fields[i]
		if !f.b.present(v) {
			continue
		}
		if err := f.emit(v, w, p); err != nil {
			return err
		}
	}
	return nil
}

func missingField(grammar, field string) error {
	return merry.Here(der.ErrMissingMandatoryField).Appendf("%s.%s", grammar, field)
}

// appNode is [APPLICATION n], which must hold exactly one SEQUENCE.
type appNode[T any] struct {
	g   *Grammar[T]
	dst *T
	got bool
}

func (n *appNode[T]) label() string { return "" }

func (n *appNode[T]) next(h der.Header) (step, error) {
	if n.got {
		return step{}, merry.Here(der.ErrLengthMismatch).Appendf("%s: %v after the SEQUENCE", n.g.name, h.Tag)
	}
	n.got = true
	if h.Tag != der.TagSequence {
		return step{}, merry.Here(der.ErrTagMismatch).Appendf("%s: expected SEQUENCE, got %v", n.g.name, h.Tag)
	}
	return step{node: &seqNode[T]{g: n.g, dst: n.dst}}, nil
}

func (n *appNode[T]) end() error {
	if !n.got {
		return merry.Here(der.ErrMissingMandatoryField).Appendf("%s: empty application element", n.g.name)
	}
	return nil
}

// seqNode walks the fields of a SEQUENCE in order.  Optional fields which don't match the
// incoming tag are skipped.  There is no backtracking.
type seqNode[T any] struct {
	g   *Grammar[T]
	dst *T
	idx int
}

func (n *seqNode[T]) label() string { return n.g.name }

func (n *seqNode[T]) next(h der.Header) (step, error) {
	for n.idx < len(n.g.fields) {
		f := &n.g.fields[n.idx]
		n.idx++
		if f.matches(h.Tag) {
			return f.open(n.dst, h)
		}
		if !f.Optional {
			if f.mode != untagged && h.Class == der.ClassContext && h.Number > f.Number {
				return step{}, missingField(n.g.name, f.Name)
			}
			return step{}, merry.Here(der.ErrTagMismatch).Appendf("%s.%s: expected %v, got %v", n.g.name, f.Name, f.tag(), h.Tag)
		}
		f.b.absent(n.dst)
	}
	return step{}, merry.Here(der.ErrTagMismatch).Appendf("%s: unexpected %v after the last field", n.g.name, h.Tag)
}

func (n *seqNode[T]) end() error {
	for ; n.idx < len(n.g.fields); n.idx++ {
		f := &n.g.fields[n.idx]
		if !f.Optional {
			return missingField(n.g.name, f.Name)
		}
		f.b.absent(n.dst)
	}
	return nil
}

// wrapNode is an EXPLICIT context tag, which must hold exactly one element.
type wrapNode[T any] struct {
	f   *Field[T]
	dst *T
	got bool
}

func (n *wrapNode[T]) label() string { return n.f.Name }

func (n *wrapNode[T]) next(h der.Header) (step, error) {
	if n.got {
		return step{}, merry.Here(der.ErrLengthMismatch).Appendf("%s: %v after the value", n.f.Name, h.Tag)
	}
	n.got = true
	if !n.f.b.match(h.Tag) {
		return step{}, merry.Here(der.ErrTagMismatch).Appendf("%s: expected %s, got %v", n.f.Name, n.f.b.name(), h.Tag)
	}
	return n.f.openValue(n.dst, h)
}

func (n *wrapNode[T]) end() error {
	if n.got {
		return nil
	}
	if n.f.Optional {
		n.f.b.absent(n.dst)
		return nil
	}
	return merry.Here(der.ErrEmptyMandatoryValue).Appendf("%s: empty %v", n.f.Name, n.f.tag())
}
