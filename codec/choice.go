package codec

import (
	"github.com/ansel1/merry"
	"github.com/gemalto/krb5-go/der"
)

// Choice is the codec of a CHOICE.  Each alternative is an optional field of V, and exactly
// one must be set.
type Choice[V any] struct {
	name string
	alts []Field[V]
}

// NewChoice returns a CHOICE codec.  The alternatives must be optional, and must be
// distinguishable by tag.
func NewChoice[V any](name string, alts ...Field[V]) *Choice[V] {
	for _, a := range alts {
		if !a.Optional || a.mode == explicit {
			panic(name + ": CHOICE alternatives must be optional IMPLICIT or untagged fields")
		}
	}
	return &Choice[V]{name: name, alts: alts}
}

func (c *Choice[V]) isChoice() {}

func (c *Choice[V]) Name() string      { return c.name }
func (c *Choice[V]) constructed() bool { return false }
func (c *Choice[V]) allowEmpty() bool  { return true }

func (c *Choice[V]) match(t der.Tag) bool {
	for i := range c.alts {
		if c.alts[i].matches(t) {
			return true
		}
	}
	return false
}

func (c *Choice[V]) missing(v *V) bool {
	_, err := c.chosen(v)
	return err != nil
}

// chosen returns the alternative set in v.
func (c *Choice[V]) chosen(v *V) (*Field[V], error) {
	var found *Field[V]
	for i := range c.alts {
		if !c.alts[i].b.present(v) {
			continue
		}
		if found != nil {
			return nil, merry.Here(der.ErrInvalidValue).Appendf("%s: both %s and %s are set", c.name, found.Name, c.alts[i].Name)
		}
		found = &c.alts[i]
	}
	if found == nil {
		return nil, merry.Here(der.ErrMissingMandatoryField).Appendf("%s: no alternative set", c.name)
	}
	return found, nil
}

func (c *Choice[V]) begin(dst *V, h der.Header) (step, error) {
	for i := range c.alts {
		a := &c.alts[i]
		if !a.matches(h.Tag) {
			continue
		}
		// the alternative on the wire is the chosen one, so it can't be empty
		if !h.Constructed && h.Length == 0 && !a.b.allowEmpty() {
			return step{}, merry.Here(der.ErrEmptyMandatoryValue).Appendf("%s: empty %s", c.name, a.Name)
		}
		return a.b.begin(dst, h)
	}
	return step{}, merry.Here(der.ErrTagMismatch).Appendf("%s: no alternative for %v", c.name, h.Tag)
}

func (c *Choice[V]) size(v *V, p *plan) (int, error) {
	a, err := c.chosen(v)
	if err != nil {
		return 0, err
	}
	return a.size(v, p)
}

func (c *Choice[V]) emit(v *V, w *der.Writer, p *plan, _ der.Tag) error {
	a, err := c.chosen(v)
	if err != nil {
		return err
	}
	return a.emit(v, w, p)
}
