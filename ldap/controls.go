// Package ldap decodes and encodes the values of common LDAP controls with the same
// grammar engine as the Kerberos messages.  Each control value is the DER carried in the
// controlValue OCTET STRING of an LDAP Control.
package ldap

import (
	"fmt"

	"github.com/ansel1/merry"
	"github.com/gemalto/krb5-go/codec"
	"github.com/gemalto/krb5-go/der"
	goldap "github.com/go-ldap/ldap/v3"
)

// Control OIDs.
const (
	OIDPagedResults            = goldap.ControlTypePaging
	OIDPasswordPolicy          = goldap.ControlTypeBeheraPasswordPolicy
	OIDSortRequest             = "1.2.840.113556.1.4.473"
	OIDSortResult              = "1.2.840.113556.1.4.474"
	OIDPersistentSearch        = "2.16.840.1.113730.3.4.3"
	OIDEntryChangeNotification = "2.16.840.1.113730.3.4.7"
)

// Value is a decoded control value.
type Value interface {
	OID() string
	Marshal() ([]byte, error)
}

// PagedResults is the value of the simple paged results control (RFC 2696).  An empty
// Cookie starts or ends a paged search.
type PagedResults struct {
	Size   int32
	Cookie []byte
}

var PagedResultsGrammar = codec.NewGrammar("realSearchControlValue",
	codec.Component("size", codec.Int32, func(p *PagedResults) *int32 { return &p.Size }),
	codec.Component("cookie", codec.OctetString, func(p *PagedResults) *[]byte { return &p.Cookie }),
)

func (*PagedResults) OID() string { return OIDPagedResults }

func (p *PagedResults) Marshal() ([]byte, error) {
	if p.Cookie == nil {
		c := *p
		c.Cookie = []byte{}
		p = &c
	}
	return codec.Marshal(PagedResultsGrammar, p)
}

// SortKey is one key of a server side sort request (RFC 2891).
type SortKey struct {
	AttributeType string
	OrderingRule  *string
	ReverseOrder  bool
}

var SortKeyGrammar = codec.NewGrammar("SortKey",
	codec.Component("attributeType", codec.OctetText, func(k *SortKey) *string { return &k.AttributeType }),
	codec.OptionalImplicit(0, "orderingRule", codec.OctetText, func(k *SortKey) **string { return &k.OrderingRule }),
	codec.DefaultImplicit(1, "reverseOrder", codec.Boolean, func(k *SortKey) *bool { return &k.ReverseOrder }, false),
)

// SortRequest is the SortKeyList value of the server side sort request control.
type SortRequest []SortKey

var SortRequestCodec = codec.SequenceOf[SortRequest]("SortKeyList", SortKeyGrammar)

func (*SortRequest) OID() string { return OIDSortRequest }

func (s *SortRequest) Marshal() ([]byte, error) {
	return codec.Marshal(SortRequestCodec, s)
}

// SortResultCode is the sortResult of a SortResult.
type SortResultCode int32

const (
	SortSuccess                  SortResultCode = 0
	SortOperationsError          SortResultCode = 1
	SortTimeLimitExceeded        SortResultCode = 3
	SortStrongAuthRequired       SortResultCode = 8
	SortAdminLimitExceeded       SortResultCode = 11
	SortNoSuchAttribute          SortResultCode = 16
	SortInappropriateMatching    SortResultCode = 18
	SortInsufficientAccessRights SortResultCode = 50
	SortBusy                     SortResultCode = 51
	SortUnwillingToPerform       SortResultCode = 53
	SortOther                    SortResultCode = 80
)

var sortResultNames = map[SortResultCode]string{
	SortSuccess:                  "success",
	SortOperationsError:          "operationsError",
	SortTimeLimitExceeded:        "timeLimitExceeded",
	SortStrongAuthRequired:       "strongAuthRequired",
	SortAdminLimitExceeded:       "adminLimitExceeded",
	SortNoSuchAttribute:          "noSuchAttribute",
	SortInappropriateMatching:    "inappropriateMatching",
	SortInsufficientAccessRights: "insufficientAccessRights",
	SortBusy:                     "busy",
	SortUnwillingToPerform:       "unwillingToPerform",
	SortOther:                    "other",
}

func (s SortResultCode) String() string {
	return enumName(sortResultNames, s)
}

// SortResult is the value of the server side sort response control.
type SortResult struct {
	Result        SortResultCode
	AttributeType *string
}

var SortResultGrammar = codec.NewGrammar("SortResult",
	codec.Component("sortResult", codec.Enumerated[SortResultCode]("ENUMERATED"), func(s *SortResult) *SortResultCode { return &s.Result }),
	codec.OptionalImplicit(0, "attributeType", codec.OctetText, func(s *SortResult) **string { return &s.AttributeType }),
)

func (*SortResult) OID() string { return OIDSortResult }

func (s *SortResult) Marshal() ([]byte, error) {
	return codec.Marshal(SortResultGrammar, s)
}

// ChangeType is a bit of PersistentSearch.ChangeTypes, and the changeType of an
// EntryChangeNotification.
type ChangeType int32

const (
	ChangeAdd    ChangeType = 1
	ChangeDelete ChangeType = 2
	ChangeModify ChangeType = 4
	ChangeModDN  ChangeType = 8
)

var changeTypeNames = map[ChangeType]string{
	ChangeAdd:    "add",
	ChangeDelete: "delete",
	ChangeModify: "modify",
	ChangeModDN:  "modDN",
}

func (c ChangeType) String() string {
	return enumName(changeTypeNames, c)
}

// PersistentSearch is the value of the persistent search request control.
type PersistentSearch struct {
	ChangeTypes ChangeType
	ChangesOnly bool
	ReturnECs   bool
}

var PersistentSearchGrammar = codec.NewGrammar("PersistentSearch",
	codec.Component("changeTypes", codec.Integer[ChangeType]("INTEGER"), func(p *PersistentSearch) *ChangeType { return &p.ChangeTypes }),
	codec.Component("changesOnly", codec.Boolean, func(p *PersistentSearch) *bool { return &p.ChangesOnly }),
	codec.Component("returnECs", codec.Boolean, func(p *PersistentSearch) *bool { return &p.ReturnECs }),
)

func (*PersistentSearch) OID() string { return OIDPersistentSearch }

func (p *PersistentSearch) Marshal() ([]byte, error) {
	return codec.Marshal(PersistentSearchGrammar, p)
}

// EntryChangeNotification is the value of the control attached to entries returned by
// a persistent search.  PreviousDN is only set for modDN changes.
type EntryChangeNotification struct {
	ChangeType   ChangeType
	PreviousDN   *string
	ChangeNumber *int64
}

var EntryChangeNotificationGrammar = codec.NewGrammar("EntryChangeNotification",
	codec.Component("changeType", codec.Enumerated[ChangeType]("ENUMERATED"), func(e *EntryChangeNotification) *ChangeType {
		return &e.ChangeType
	}),
	codec.OptionalComponent("previousDN", codec.OctetText, func(e *EntryChangeNotification) **string { return &e.PreviousDN }),
	codec.OptionalComponent("changeNumber", codec.Int64, func(e *EntryChangeNotification) **int64 { return &e.ChangeNumber }),
)

func (*EntryChangeNotification) OID() string { return OIDEntryChangeNotification }

func (e *EntryChangeNotification) Marshal() ([]byte, error) {
	return codec.Marshal(EntryChangeNotificationGrammar, e)
}

// PasswordPolicyWarning is the warning CHOICE of a PasswordPolicyResponse: exactly one
// field is set.
type PasswordPolicyWarning struct {
	TimeBeforeExpiration *int32
	GraceAuthNsRemaining *int32
}

var passwordPolicyWarningChoice = codec.NewChoice("warning",
	codec.OptionalImplicit(0, "timeBeforeExpiration", codec.Int32, func(w *PasswordPolicyWarning) **int32 {
		return &w.TimeBeforeExpiration
	}),
	codec.OptionalImplicit(1, "graceAuthNsRemaining", codec.Int32, func(w *PasswordPolicyWarning) **int32 {
		return &w.GraceAuthNsRemaining
	}),
)

// PasswordPolicyError is the error of a PasswordPolicyResponse.
type PasswordPolicyError int32

const (
	PasswordExpired             PasswordPolicyError = 0
	AccountLocked               PasswordPolicyError = 1
	ChangeAfterReset            PasswordPolicyError = 2
	PasswordModNotAllowed       PasswordPolicyError = 3
	MustSupplyOldPassword       PasswordPolicyError = 4
	InsufficientPasswordQuality PasswordPolicyError = 5
	PasswordTooShort            PasswordPolicyError = 6
	PasswordTooYoung            PasswordPolicyError = 7
	PasswordInHistory           PasswordPolicyError = 8
)

var passwordPolicyErrorNames = map[PasswordPolicyError]string{
	PasswordExpired:             "passwordExpired",
	AccountLocked:               "accountLocked",
	ChangeAfterReset:            "changeAfterReset",
	PasswordModNotAllowed:       "passwordModNotAllowed",
	MustSupplyOldPassword:       "mustSupplyOldPassword",
	InsufficientPasswordQuality: "insufficientPasswordQuality",
	PasswordTooShort:            "passwordTooShort",
	PasswordTooYoung:            "passwordTooYoung",
	PasswordInHistory:           "passwordInHistory",
}

func (p PasswordPolicyError) String() string {
	return enumName(passwordPolicyErrorNames, p)
}

// PasswordPolicyResponse is the value of the password policy response control
// (draft-behera-ldap-password-policy).
type PasswordPolicyResponse struct {
	Warning *PasswordPolicyWarning
	Error   *PasswordPolicyError
}

var PasswordPolicyResponseGrammar = codec.NewGrammar("PasswordPolicyResponseValue",
	codec.Optional(0, "warning", passwordPolicyWarningChoice, func(p *PasswordPolicyResponse) **PasswordPolicyWarning {
		return &p.Warning
	}),
	codec.OptionalImplicit(1, "error", codec.Enumerated[PasswordPolicyError]("ENUMERATED"), func(p *PasswordPolicyResponse) **PasswordPolicyError {
		return &p.Error
	}),
)

func (*PasswordPolicyResponse) OID() string { return OIDPasswordPolicy }

func (p *PasswordPolicyResponse) Marshal() ([]byte, error) {
	return codec.Marshal(PasswordPolicyResponseGrammar, p)
}

func enumName[E ~int32](names map[E]string, v E) string {
	if s, ok := names[v]; ok {
		return s
	}
	return fmt.Sprintf("UNKNOWN(%d)", int32(v))
}

type valueDecoder func(b []byte, cfg codec.Config) (Value, error)

func decodeAs[T any, PT interface {
	*T
	Value
}](c codec.Codec[T]) valueDecoder {
	return func(b []byte, cfg codec.Config) (Value, error) {
		v, err := codec.UnmarshalConfig(c, b, cfg)
		if err != nil {
			return nil, err
		}
		return PT(v), nil
	}
}

var decoders = map[string]valueDecoder{
	OIDPagedResults:            decodeAs[PagedResults](PagedResultsGrammar),
	OIDSortRequest:             decodeAs[SortRequest](SortRequestCodec),
	OIDSortResult:              decodeAs[SortResult](SortResultGrammar),
	OIDPersistentSearch:        decodeAs[PersistentSearch](PersistentSearchGrammar),
	OIDEntryChangeNotification: decodeAs[EntryChangeNotification](EntryChangeNotificationGrammar),
	OIDPasswordPolicy:          decodeAs[PasswordPolicyResponse](PasswordPolicyResponseGrammar),
}

// DecodeControlValue decodes the value of the control with the given OID.  The dynamic
// type of the result is a pointer, e.g. *PagedResults.  An OID this package doesn't
// know fails with der.ErrUnknownMessageType.
func DecodeControlValue(oid string, b []byte) (Value, error) {
	return DecodeControlValueConfig(oid, b, codec.DefaultConfig())
}

func DecodeControlValueConfig(oid string, b []byte, cfg codec.Config) (Value, error) {
	d, ok := decoders[oid]
	if !ok {
		return nil, merry.Here(der.ErrUnknownMessageType).Appendf("no control with OID %s", oid)
	}
	v, err := d(b, cfg)
	if err != nil {
		return nil, merry.Prepend(err, oid)
	}
	return v, nil
}

// Supported reports whether DecodeControlValue knows the OID.
func Supported(oid string) bool {
	_, ok := decoders[oid]
	return ok
}
