package der

import (
	"errors"

	"github.com/ansel1/merry"
)

// Every error returned by this module's decoders and encoders wraps exactly one of
// these sentinels.  Use Is or KindOf to classify an error.
var (
	ErrTagMismatch           = errors.New("tag mismatch")
	ErrLengthMismatch        = errors.New("length mismatch")
	ErrEmptyMandatoryValue   = errors.New("empty mandatory value")
	ErrMissingMandatoryField = errors.New("missing mandatory field")
	ErrUnknownMessageType    = errors.New("unknown message type")
	ErrInvalidValue          = errors.New("invalid value")
	ErrBufferOverflow        = errors.New("buffer overflow")
)

// ErrBufferUnderrun means the input ended before the current element did.  The reader
// functions return it unwrapped, so callers on the hot path can compare with ==.
var ErrBufferUnderrun = errors.New("buffer underrun")

// Kind classifies an error by the sentinel it wraps.
type Kind int

const (
	KindNone Kind = iota
	KindTagMismatch
	KindLengthMismatch
	KindEmptyMandatoryValue
	KindMissingMandatoryField
	KindUnknownMessageType
	KindInvalidValue
	KindBufferUnderrun
	KindBufferOverflow
	KindUnknown
)

var kinds = []struct {
	kind Kind
	name string
	err  error
}{
	{KindTagMismatch, "TAG_MISMATCH", ErrTagMismatch},
	{KindLengthMismatch, "LENGTH_MISMATCH", ErrLengthMismatch},
	{KindEmptyMandatoryValue, "EMPTY_MANDATORY_VALUE", ErrEmptyMandatoryValue},
	{KindMissingMandatoryField, "MISSING_MANDATORY_FIELD", ErrMissingMandatoryField},
	{KindUnknownMessageType, "UNKNOWN_MESSAGE_TYPE", ErrUnknownMessageType},
	{KindInvalidValue, "INVALID_VALUE", ErrInvalidValue},
	{KindBufferUnderrun, "BUFFER_UNDERRUN", ErrBufferUnderrun},
	{KindBufferOverflow, "BUFFER_OVERFLOW", ErrBufferOverflow},
}

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "NONE"
	case KindUnknown:
		return "UNKNOWN"
	}
	for _, e := range kinds {
		if e.kind == k {
			return e.name
		}
	}
	return "UNKNOWN"
}

// Recoverable reports whether more input may still resolve the error.
func (k Kind) Recoverable() bool {
	return k == KindBufferUnderrun
}

// KindOf returns the Kind of err.  A nil error is KindNone, and an error which wraps
// none of this package's sentinels is KindUnknown.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	for _, e := range kinds {
		if merry.Is(err, e.err) {
			return e.kind
		}
	}
	return KindUnknown
}

func Is(err error, originals ...error) bool {
	return merry.Is(err, originals...)
}

func Details(err error) string {
	return merry.Details(err)
}

type errKey int

const (
	errKeyOffset errKey = iota
	errKeyPath
)

func init() {
	merry.RegisterDetail("Offset", errKeyOffset)
	merry.RegisterDetail("Path", errKeyPath)
}

// WithOffset attaches the byte offset, relative to the start of the PDU, at which
// decoding failed.
func WithOffset(err error, offset int) error {
	return merry.WithValue(err, errKeyOffset, offset)
}

// Offset returns the offset attached by WithOffset.
func Offset(err error) (int, bool) {
	v, ok := merry.Value(err, errKeyOffset).(int)
	return v, ok
}

// WithPath attaches the grammar path (e.g. "AS-REQ/req-body/sname") at which decoding failed.
func WithPath(err error, path string) error {
	return merry.WithValue(err, errKeyPath, path)
}

// Path returns the grammar path attached by WithPath, or "".
func Path(err error) string {
	s, _ := merry.Value(err, errKeyPath).(string)
	return s
}
