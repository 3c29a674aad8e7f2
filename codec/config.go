package codec

// State is the decoding state of a Container.
type State int

const (
	// StatePending means the PDU isn't complete yet: feed more bytes.
	StatePending State = iota
	StateComplete
	// StateError is terminal.
	StateError
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "PENDING"
	case StateComplete:
		return "COMPLETE"
	case StateError:
		return "ERROR"
	}
	return "UNKNOWN"
}

const (
	DefaultMaxPDUSize = 64 * 1024
	DefaultMaxDepth   = 32
)

// Config bounds the resources a Container may use.
type Config struct {
	// MaxPDUSize is the largest encoded PDU accepted, header included.
	MaxPDUSize int
	// MaxDepth is the deepest nesting of constructed elements accepted.
	MaxDepth int
	// Observer, if set, is told the outcome of every PDU.
	Observer Observer
}

func DefaultConfig() Config {
	return Config{
		MaxPDUSize: DefaultMaxPDUSize,
		MaxDepth:   DefaultMaxDepth,
	}
}

func (c Config) withDefaults() Config {
	if c.MaxPDUSize <= 0 {
		c.MaxPDUSize = DefaultMaxPDUSize
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	return c
}

// Observer receives the outcome of each decoded PDU: the grammar name, the number of
// bytes consumed, and the error if decoding failed.
type Observer interface {
	ObserveDecode(grammar string, size int, err error)
}
