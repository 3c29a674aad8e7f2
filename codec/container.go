package codec

import (
	"strings"

	"github.com/ansel1/merry"
	"github.com/gemalto/flume"
	"github.com/gemalto/krb5-go/der"
	"github.com/google/uuid"
)

var log = flume.New("krb5_codec")

// Container decodes one PDU of type T, which may arrive in any number of fragments.
//
// A Container is not safe for concurrent use, and can't be reused once it reaches
// StateComplete or StateError.
type Container[T any] struct {
	engine
	value T
}

// NewContainer returns a Container which decodes a T with c.
func NewContainer[T any](c Codec[T], cfg Config) *Container[T] {
	ct := &Container[T]{}
	ct.engine.init(c.Name(), cfg, &rootNode[T]{c: c, dst: &ct.value})
	return ct
}

// Value returns the decoded value, or nil if the Container isn't complete.
func (c *Container[T]) Value() *T {
	if c.state != StateComplete {
		return nil
	}
	return &c.value
}

type frame struct {
	n node
	// remain is the number of value bytes not yet consumed, or -1 for the root.
	remain int
}

// engine is the type independent part of the Container.
type engine struct {
	name  string
	cfg   Config
	log   flume.Logger
	buf   []byte
	off   int
	root  *rootState
	stack []frame
	state State
	err   error
}

func (e *engine) init(name string, cfg Config, root node) {
	e.name = name
	e.cfg = cfg.withDefaults()
	e.root = &rootState{n: root}
	e.stack = append(make([]frame, 0, 8), frame{n: e.root, remain: -1})
	e.log = log
	if log.IsDebug() {
		e.log = log.With("pdu", uuid.NewString(), "grammar", name)
	}
}

// State returns the current state.
func (e *engine) State() State {
	return e.state
}

// Err returns the error which moved the Container to StateError.
func (e *engine) Err() error {
	return e.err
}

// Consumed returns the number of bytes of the PDU decoded so far.
func (e *engine) Consumed() int {
	return e.off
}

// Rest returns the bytes which followed the end of the PDU in the Decode call that
// completed it.
func (e *engine) Rest() []byte {
	if e.state != StateComplete {
		return nil
	}
	return e.buf[e.off:]
}

// Decode appends p to the bytes received so far and decodes as far as possible.  It
// returns StatePending when it needs more bytes, StateComplete once the outermost element
// has been decoded, or StateError and the error.  Bytes after the PDU are kept for Rest.
// Once complete, further input is ignored.
func (e *engine) Decode(p []byte) (State, error) {
	switch e.state {
	case StateError:
		return e.state, e.err
	case StateComplete:
		return e.state, nil
	}
	e.buf = append(e.buf, p...)
	return e.run()
}

func (e *engine) run() (State, error) {
	for {
		top := &e.stack[len(e.stack)-1]
		if top.remain == 0 {
			if err := top.n.end(); err != nil {
				return e.fail(err)
			}
			e.stack = e.stack[:len(e.stack)-1]
			continue
		}
		if len(e.stack) == 1 && e.root.got {
			return e.complete()
		}

		h, hl, err := der.ReadHeader(e.buf[e.off:])
		if err == der.ErrBufferUnderrun {
			return StatePending, nil
		}
		if err != nil {
			return e.fail(err)
		}

		// compare before adding, so a huge length can't wrap around
		if top.remain >= 0 && h.Length > top.remain-hl {
			return e.fail(merry.Here(der.ErrLengthMismatch).Appendf("%v needs %d value bytes, %d left in its parent", h.Tag, h.Length, top.remain-hl))
		}
		if h.Length > e.cfg.MaxPDUSize-e.off-hl {
			return e.fail(merry.Here(der.ErrLengthMismatch).Appendf("%v ends past the maximum PDU size of %d bytes", h.Tag, e.cfg.MaxPDUSize))
		}
		total := hl + h.Length
		if !h.Constructed && len(e.buf)-e.off < total {
			// primitives are only decoded once they have fully arrived
			return StatePending, nil
		}

		st, err := top.n.next(h)
		if err != nil {
			return e.fail(err)
		}
		if top.remain > 0 {
			top.remain -= total
		}

		if h.Constructed {
			if st.node == nil {
				return e.fail(merry.Here(der.ErrTagMismatch).Appendf("%v should be primitive", h.Tag))
			}
			if len(e.stack) > e.cfg.MaxDepth {
				return e.fail(merry.Here(der.ErrLengthMismatch).Appendf("nested deeper than %d", e.cfg.MaxDepth))
			}
			e.off += hl
			e.stack = append(e.stack, frame{n: st.node, remain: h.Length})
			continue
		}

		if st.node != nil {
			return e.fail(merry.Here(der.ErrTagMismatch).Appendf("%v should be constructed", h.Tag))
		}
		v := e.buf[e.off+hl : e.off+total]
		e.off += total
		if st.leaf != nil {
			if err := st.leaf(v); err != nil {
				return e.fail(err)
			}
		}
	}
}

func (e *engine) complete() (State, error) {
	e.state = StateComplete
	e.stack = nil
	if e.cfg.Observer != nil {
		e.cfg.Observer.ObserveDecode(e.name, e.off, nil)
	}
	if e.log.IsDebug() {
		e.log.Debug("decoded", "size", e.off, "trailing", len(e.buf)-e.off)
	}
	return e.state, nil
}

func (e *engine) fail(err error) (State, error) {
	path := e.path()
	err = der.WithPath(der.WithOffset(err, e.off), path)
	e.state = StateError
	e.err = err
	e.stack = nil
	if e.cfg.Observer != nil {
		e.cfg.Observer.ObserveDecode(e.name, e.off, err)
	}
	if e.log.IsDebug() {
		e.log.Debug("decode failed", "offset", e.off, "path", path, "err", err)
	}
	return e.state, err
}

func (e *engine) path() string {
	var parts []string
	for _, f := range e.stack {
		if l := f.n.label(); l != "" {
			parts = append(parts, l)
		}
	}
	return strings.Join(parts, "/")
}

// rootState is the bottom of the stack: it accepts exactly one element.
type rootState struct {
	n   node
	got bool
}

func (r *rootState) label() string { return "" }
func (r *rootState) end() error    { return nil }

func (r *rootState) next(h der.Header) (step, error) {
	r.got = true
	return r.n.next(h)
}

type rootNode[T any] struct {
	c   Codec[T]
	dst *T
}

func (r *rootNode[T]) label() string { return "" }
func (r *rootNode[T]) end() error    { return nil }

func (r *rootNode[T]) next(h der.Header) (step, error) {
	if !r.c.match(h.Tag) {
		return step{}, merry.Here(der.ErrTagMismatch).Appendf("expected %s, got %v", r.c.Name(), h.Tag)
	}
	if !h.Constructed && h.Length == 0 && !r.c.allowEmpty() {
		return step{}, merry.Here(der.ErrEmptyMandatoryValue).Appendf("empty %s", r.c.Name())
	}
	return r.c.begin(r.dst, h)
}
