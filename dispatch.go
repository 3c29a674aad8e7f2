package krb5

import (
	"github.com/ansel1/merry"
	"github.com/gemalto/flume"
	"github.com/gemalto/krb5-go/codec"
	"github.com/gemalto/krb5-go/der"
)

var log = flume.New("krb5")

// Message is a value with its own APPLICATION tag: one of the protocol messages, or the
// plaintext of an encrypted part.
type Message interface {
	ApplicationTag() int
	Marshal() ([]byte, error)
}

func (*Ticket) ApplicationTag() int         { return AppTicket }
func (*Authenticator) ApplicationTag() int  { return AppAuthenticator }
func (*EncTicketPart) ApplicationTag() int  { return AppEncTicketPart }
func (*ASReq) ApplicationTag() int          { return AppASReq }
func (*ASRep) ApplicationTag() int          { return AppASRep }
func (*TGSReq) ApplicationTag() int         { return AppTGSReq }
func (*TGSRep) ApplicationTag() int         { return AppTGSRep }
func (*APReq) ApplicationTag() int          { return AppAPReq }
func (*APRep) ApplicationTag() int          { return AppAPRep }
func (*KRBSafe) ApplicationTag() int        { return AppKRBSafe }
func (*KRBPriv) ApplicationTag() int        { return AppKRBPriv }
func (*KRBCred) ApplicationTag() int        { return AppKRBCred }
func (*EncASRepPart) ApplicationTag() int   { return AppEncASRepPart }
func (*EncTGSRepPart) ApplicationTag() int  { return AppEncTGSRepPart }
func (*EncAPRepPart) ApplicationTag() int   { return AppEncAPRepPart }
func (*EncKrbPrivPart) ApplicationTag() int { return AppEncKrbPrivPart }
func (*EncKrbCredPart) ApplicationTag() int { return AppEncKrbCredPart }
func (*KRBError) ApplicationTag() int       { return AppKRBError }

// decoder is a codec.Container with its value type erased.
type decoder interface {
	Decode(p []byte) (codec.State, error)
	State() codec.State
	Err() error
	Consumed() int
	Rest() []byte
	message() Message
}

type typedDecoder[T any, PT interface {
	*T
	Message
}] struct {
	*codec.Container[T]
}

func (d typedDecoder[T, PT]) message() Message {
	v := d.Value()
	if v == nil {
		return nil
	}
	return PT(v)
}

type messageDef struct {
	name       string
	newDecoder func(cfg codec.Config) decoder
}

func defineMessage[T any, PT interface {
	*T
	Message
}](g *codec.Grammar[T]) messageDef {
	return messageDef{
		name: g.Name(),
		newDecoder: func(cfg codec.Config) decoder {
			return typedDecoder[T, PT]{Container: codec.NewContainer[T](g, cfg)}
		},
	}
}

var messageDefs = map[int]messageDef{
	AppTicket:         defineMessage[Ticket](TicketGrammar),
	AppAuthenticator:  defineMessage[Authenticator](AuthenticatorGrammar),
	AppEncTicketPart:  defineMessage[EncTicketPart](EncTicketPartGrammar),
	AppASReq:          defineMessage[ASReq](ASReqGrammar),
	AppASRep:          defineMessage[ASRep](ASRepGrammar),
	AppTGSReq:         defineMessage[TGSReq](TGSReqGrammar),
	AppTGSRep:         defineMessage[TGSRep](TGSRepGrammar),
	AppAPReq:          defineMessage[APReq](APReqGrammar),
	AppAPRep:          defineMessage[APRep](APRepGrammar),
	AppKRBSafe:        defineMessage[KRBSafe](KRBSafeGrammar),
	AppKRBPriv:        defineMessage[KRBPriv](KRBPrivGrammar),
	AppKRBCred:        defineMessage[KRBCred](KRBCredGrammar),
	AppEncASRepPart:   defineMessage[EncASRepPart](EncASRepPartGrammar),
	AppEncTGSRepPart:  defineMessage[EncTGSRepPart](EncTGSRepPartGrammar),
	AppEncAPRepPart:   defineMessage[EncAPRepPart](EncAPRepPartGrammar),
	AppEncKrbPrivPart: defineMessage[EncKrbPrivPart](EncKrbPrivPartGrammar),
	AppEncKrbCredPart: defineMessage[EncKrbCredPart](EncKrbCredPartGrammar),
	AppKRBError:       defineMessage[KRBError](KRBErrorGrammar),
}

// MessageName returns the ASN.1 name of the message with APPLICATION tag number tag,
// or "" if there is none.
func MessageName(tag int) string {
	return messageDefs[tag].name
}

// MessageTags returns the APPLICATION tag numbers DecodeMessage recognizes, ascending.
func MessageTags() []int {
	var tags []int
	for t := 0; t < 0x1f; t++ {
		if _, ok := messageDefs[t]; ok {
			tags = append(tags, t)
		}
	}
	return tags
}

// lookupMessage picks the grammar from the first identifier octet of a PDU.  Only the
// low-tag-number form is used by Kerberos, so one octet is enough.
func lookupMessage(id byte) (int, messageDef, error) {
	tag := int(id & 0x1f)
	if id&0xe0 == 0x60 {
		if def, ok := messageDefs[tag]; ok {
			return tag, def, nil
		}
	}
	return -1, messageDef{}, merry.Here(der.ErrUnknownMessageType).Appendf("identifier octet %#02x", id)
}

// MessageDecoder decodes one message of any type, which may arrive in fragments.  The
// grammar is chosen when the first octet arrives.
//
// A MessageDecoder is not safe for concurrent use, and can't be reused once it reaches
// StateComplete or StateError.
type MessageDecoder struct {
	cfg codec.Config
	tag int
	d   decoder
	err error
}

func NewMessageDecoder(cfg codec.Config) *MessageDecoder {
	return &MessageDecoder{cfg: cfg, tag: -1}
}

// Decode feeds the next fragment of the PDU to the decoder.
func (m *MessageDecoder) Decode(p []byte) (codec.State, error) {
	if m.err != nil {
		return codec.StateError, m.err
	}
	if m.d == nil {
		if len(p) == 0 {
			return codec.StatePending, nil
		}
		tag, def, err := lookupMessage(p[0])
		if err != nil {
			log.Debug("rejected PDU", "error", err)
			if m.cfg.Observer != nil {
				m.cfg.Observer.ObserveDecode("", 0, err)
			}
			m.err = err
			return codec.StateError, err
		}
		m.tag = tag
		m.d = def.newDecoder(m.cfg)
	}
	state, err := m.d.Decode(p)
	if err != nil {
		err = WithApplicationTag(err, m.tag)
		m.err = err
	}
	return state, err
}

func (m *MessageDecoder) State() codec.State {
	switch {
	case m.err != nil:
		return codec.StateError
	case m.d == nil:
		return codec.StatePending
	}
	return m.d.State()
}

func (m *MessageDecoder) Err() error {
	return m.err
}

// ApplicationTag returns the tag number of the message being decoded, or -1 before the
// first octet has arrived.
func (m *MessageDecoder) ApplicationTag() int {
	return m.tag
}

// Message returns the decoded message, or nil if decoding isn't complete.  Its dynamic
// type is the pointer type for the tag, e.g. *ASReq for [APPLICATION 10].
func (m *MessageDecoder) Message() Message {
	if m.d == nil || m.err != nil {
		return nil
	}
	return m.d.message()
}

func (m *MessageDecoder) Consumed() int {
	if m.d == nil {
		return 0
	}
	return m.d.Consumed()
}

// Rest returns any bytes received after the end of the message.
func (m *MessageDecoder) Rest() []byte {
	if m.d == nil {
		return nil
	}
	return m.d.Rest()
}

// DecodeMessage decodes a complete message of any type.
func DecodeMessage(b []byte) (Message, error) {
	return DecodeMessageConfig(b, codec.DefaultConfig())
}

// DecodeMessageConfig is DecodeMessage with a Config.  As with codec.Unmarshal, input
// which ends early fails with ErrBufferUnderrun and trailing bytes with ErrLengthMismatch.
func DecodeMessageConfig(b []byte, cfg codec.Config) (Message, error) {
	d := NewMessageDecoder(cfg)
	state, err := d.Decode(b)
	switch state {
	case codec.StateError:
		return nil, err
	case codec.StatePending:
		return nil, WithApplicationTag(merry.Here(der.ErrBufferUnderrun).Appendf("input ends after %d bytes", len(b)), d.tag)
	}
	if rest := d.Rest(); len(rest) > 0 {
		return nil, WithApplicationTag(merry.Here(der.ErrLengthMismatch).Appendf("%d bytes after the end", len(rest)), d.tag)
	}
	return d.Message(), nil
}

// MarshalMessage encodes any message.
func MarshalMessage(m Message) ([]byte, error) {
	if m == nil {
		return nil, merry.Here(der.ErrMissingMandatoryField).Append("nil message")
	}
	return m.Marshal()
}
