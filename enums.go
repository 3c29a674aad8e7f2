package krb5

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ansel1/merry"
	"github.com/gemalto/krb5-go/der"
	"github.com/gemalto/krb5-go/internal/krbutil"
	"github.com/jcmturner/gokrb5/v8/iana/addrtype"
	"github.com/jcmturner/gokrb5/v8/iana/adtype"
	"github.com/jcmturner/gokrb5/v8/iana/chksumtype"
	"github.com/jcmturner/gokrb5/v8/iana/errorcode"
	"github.com/jcmturner/gokrb5/v8/iana/etypeID"
	"github.com/jcmturner/gokrb5/v8/iana/msgtype"
	"github.com/jcmturner/gokrb5/v8/iana/nametype"
	"github.com/jcmturner/gokrb5/v8/iana/patype"
)

// registry maps the values of one enumerated type to names and back.  Registries are
// built at init and never modified.
type registry[E ~int32] struct {
	typeName string
	names    map[E]string
	values   map[string]E
}

func newRegistry[E ~int32](typeName string, names map[E]string) *registry[E] {
	r := &registry[E]{typeName: typeName, names: names, values: map[string]E{}}
	for v, name := range names {
		r.values[krbutil.NormalizeName(name)] = v
	}
	return r
}

// alias adds another name which parses to v.  The names table is unchanged.
func (r *registry[E]) alias(name string, v E) {
	key := krbutil.NormalizeName(name)
	if _, ok := r.values[key]; !ok {
		r.values[key] = v
	}
}

func (r *registry[E]) known(v E) bool {
	_, ok := r.names[v]
	return ok
}

func (r *registry[E]) name(v E) string {
	if s, ok := r.names[v]; ok {
		return s
	}
	return fmt.Sprintf("UNKNOWN(%d)", int32(v))
}

// parse accepts a registered name in any spelling NormalizeName folds together,
// a decimal number, a hex number prefixed with "0x", or the UNKNOWN(n) form printed
// for unregistered values.
func (r *registry[E]) parse(s string) (E, error) {
	if v, ok := r.values[krbutil.NormalizeName(s)]; ok {
		return v, nil
	}
	if strings.HasPrefix(s, "UNKNOWN(") && strings.HasSuffix(s, ")") {
		s = s[len("UNKNOWN(") : len(s)-1]
	}
	i, err := krbutil.ParseInt32(s)
	if err != nil {
		return 0, merry.Here(der.ErrInvalidValue).Appendf("%q is not a %s name or number", s, r.typeName)
	}
	return E(i), nil
}

// sorted returns the registered values in ascending order.
func (r *registry[E]) sorted() []E {
	vals := make([]E, 0, len(r.names))
	for v := range r.names {
		vals = append(vals, v)
	}
	sort.Slice(vals, func(i, j int) bool { return vals[i] < vals[j] })
	return vals
}

// EncryptionType is an etype number (RFC 3961).
type EncryptionType int32

const (
	ETypeDESCBCCRC              EncryptionType = EncryptionType(etypeID.DES_CBC_CRC)
	ETypeDESCBCMD5              EncryptionType = EncryptionType(etypeID.DES_CBC_MD5)
	ETypeDES3CBCSHA1KD          EncryptionType = EncryptionType(etypeID.DES3_CBC_SHA1_KD)
	ETypeAES128CTSHMACSHA196    EncryptionType = EncryptionType(etypeID.AES128_CTS_HMAC_SHA1_96)
	ETypeAES256CTSHMACSHA196    EncryptionType = EncryptionType(etypeID.AES256_CTS_HMAC_SHA1_96)
	ETypeAES128CTSHMACSHA256128 EncryptionType = EncryptionType(etypeID.AES128_CTS_HMAC_SHA256_128)
	ETypeAES256CTSHMACSHA384192 EncryptionType = EncryptionType(etypeID.AES256_CTS_HMAC_SHA384_192)
	ETypeRC4HMAC                EncryptionType = EncryptionType(etypeID.RC4_HMAC)
	ETypeRC4HMACEXP             EncryptionType = EncryptionType(etypeID.RC4_HMAC_EXP)
	ETypeCamellia128CTSCMAC     EncryptionType = EncryptionType(etypeID.CAMELLIA128_CTS_CMAC)
	ETypeCamellia256CTSCMAC     EncryptionType = EncryptionType(etypeID.CAMELLIA256_CTS_CMAC)
)

var etypes = newRegistry("EncryptionType", map[EncryptionType]string{
	ETypeDESCBCCRC:              "des-cbc-crc",
	ETypeDESCBCMD5:              "des-cbc-md5",
	ETypeDES3CBCSHA1KD:          "des3-cbc-sha1-kd",
	ETypeAES128CTSHMACSHA196:    "aes128-cts-hmac-sha1-96",
	ETypeAES256CTSHMACSHA196:    "aes256-cts-hmac-sha1-96",
	ETypeAES128CTSHMACSHA256128: "aes128-cts-hmac-sha256-128",
	ETypeAES256CTSHMACSHA384192: "aes256-cts-hmac-sha384-192",
	ETypeRC4HMAC:                "rc4-hmac",
	ETypeRC4HMACEXP:             "rc4-hmac-exp",
	ETypeCamellia128CTSCMAC:     "camellia128-cts-cmac",
	ETypeCamellia256CTSCMAC:     "camellia256-cts-cmac",
})

func init() {
	// krb5.conf spellings, e.g. "aes256-cts" and "arcfour-hmac"
	for name, v := range etypeID.ETypesByName {
		etypes.alias(name, EncryptionType(v))
	}
}

func (e EncryptionType) String() string               { return etypes.name(e) }
func (e EncryptionType) Known() bool                  { return etypes.known(e) }
func (e EncryptionType) MarshalText() ([]byte, error) { return []byte(e.String()), nil }
func (e *EncryptionType) UnmarshalText(b []byte) (err error) {
	*e, err = etypes.parse(string(b))
	return
}

// ParseEncryptionType parses a name like "aes256-cts-hmac-sha1-96" (or any alias known
// to krb5.conf), or a number.
func ParseEncryptionType(s string) (EncryptionType, error) {
	return etypes.parse(s)
}

// EncryptionTypes returns the registered encryption types.
func EncryptionTypes() []EncryptionType {
	return etypes.sorted()
}

// NameType is the name-type of a PrincipalName.
type NameType int32

const (
	NameTypeUnknown       NameType = NameType(nametype.KRB_NT_UNKNOWN)
	NameTypePrincipal     NameType = NameType(nametype.KRB_NT_PRINCIPAL)
	NameTypeSrvInst       NameType = NameType(nametype.KRB_NT_SRV_INST)
	NameTypeSrvHst        NameType = NameType(nametype.KRB_NT_SRV_HST)
	NameTypeSrvXHst       NameType = NameType(nametype.KRB_NT_SRV_XHST)
	NameTypeUID           NameType = NameType(nametype.KRB_NT_UID)
	NameTypeX500Principal NameType = NameType(nametype.KRB_NT_X500_PRINCIPAL)
	NameTypeSMTPName      NameType = NameType(nametype.KRB_NT_SMTP_NAME)
	NameTypeEnterprise    NameType = NameType(nametype.KRB_NT_ENTERPRISE)
)

var nameTypes = newRegistry("NameType", map[NameType]string{
	NameTypeUnknown:       "KRB_NT_UNKNOWN",
	NameTypePrincipal:     "KRB_NT_PRINCIPAL",
	NameTypeSrvInst:       "KRB_NT_SRV_INST",
	NameTypeSrvHst:        "KRB_NT_SRV_HST",
	NameTypeSrvXHst:       "KRB_NT_SRV_XHST",
	NameTypeUID:           "KRB_NT_UID",
	NameTypeX500Principal: "KRB_NT_X500_PRINCIPAL",
	NameTypeSMTPName:      "KRB_NT_SMTP_NAME",
	NameTypeEnterprise:    "KRB_NT_ENTERPRISE",
})

func (n NameType) String() string               { return nameTypes.name(n) }
func (n NameType) Known() bool                  { return nameTypes.known(n) }
func (n NameType) MarshalText() ([]byte, error) { return []byte(n.String()), nil }
func (n *NameType) UnmarshalText(b []byte) (err error) {
	*n, err = nameTypes.parse(string(b))
	return
}

// AddressType is the addr-type of a HostAddress.
type AddressType int32

const (
	AddressTypeIPv4          AddressType = AddressType(addrtype.IPv4)
	AddressTypeDirectional   AddressType = AddressType(addrtype.Directional)
	AddressTypeChaosNet      AddressType = AddressType(addrtype.ChaosNet)
	AddressTypeXNS           AddressType = AddressType(addrtype.XNS)
	AddressTypeISO           AddressType = AddressType(addrtype.ISO)
	AddressTypeDECNETPhaseIV AddressType = AddressType(addrtype.DECNETPhaseIV)
	AddressTypeAppleTalkDDP  AddressType = AddressType(addrtype.AppleTalkDDP)
	AddressTypeNetBios       AddressType = AddressType(addrtype.NetBios)
	AddressTypeIPv6          AddressType = AddressType(addrtype.IPv6)
)

var addressTypes = newRegistry("AddressType", map[AddressType]string{
	AddressTypeIPv4:          "IPv4",
	AddressTypeDirectional:   "Directional",
	AddressTypeChaosNet:      "ChaosNet",
	AddressTypeXNS:           "XNS",
	AddressTypeISO:           "ISO",
	AddressTypeDECNETPhaseIV: "DECNET Phase IV",
	AddressTypeAppleTalkDDP:  "AppleTalk DDP",
	AddressTypeNetBios:       "NetBios",
	AddressTypeIPv6:          "IPv6",
})

func (a AddressType) String() string               { return addressTypes.name(a) }
func (a AddressType) Known() bool                  { return addressTypes.known(a) }
func (a AddressType) MarshalText() ([]byte, error) { return []byte(a.String()), nil }
func (a *AddressType) UnmarshalText(b []byte) (err error) {
	*a, err = addressTypes.parse(string(b))
	return
}

// MessageType is the msg-type field of a message.  Its value matches the APPLICATION tag
// of the message.
type MessageType int32

const (
	MessageTypeASReq  MessageType = MessageType(msgtype.KRB_AS_REQ)
	MessageTypeASRep  MessageType = MessageType(msgtype.KRB_AS_REP)
	MessageTypeTGSReq MessageType = MessageType(msgtype.KRB_TGS_REQ)
	MessageTypeTGSRep MessageType = MessageType(msgtype.KRB_TGS_REP)
	MessageTypeAPReq  MessageType = MessageType(msgtype.KRB_AP_REQ)
	MessageTypeAPRep  MessageType = MessageType(msgtype.KRB_AP_REP)
	MessageTypeSafe   MessageType = MessageType(msgtype.KRB_SAFE)
	MessageTypePriv   MessageType = MessageType(msgtype.KRB_PRIV)
	MessageTypeCred   MessageType = MessageType(msgtype.KRB_CRED)
	MessageTypeError  MessageType = MessageType(msgtype.KRB_ERROR)
)

var messageTypes = newRegistry("MessageType", map[MessageType]string{
	MessageTypeASReq:  "KRB_AS_REQ",
	MessageTypeASRep:  "KRB_AS_REP",
	MessageTypeTGSReq: "KRB_TGS_REQ",
	MessageTypeTGSRep: "KRB_TGS_REP",
	MessageTypeAPReq:  "KRB_AP_REQ",
	MessageTypeAPRep:  "KRB_AP_REP",
	MessageTypeSafe:   "KRB_SAFE",
	MessageTypePriv:   "KRB_PRIV",
	MessageTypeCred:   "KRB_CRED",
	MessageTypeError:  "KRB_ERROR",
})

func (m MessageType) String() string               { return messageTypes.name(m) }
func (m MessageType) Known() bool                  { return messageTypes.known(m) }
func (m MessageType) MarshalText() ([]byte, error) { return []byte(m.String()), nil }
func (m *MessageType) UnmarshalText(b []byte) (err error) {
	*m, err = messageTypes.parse(string(b))
	return
}

// PADataType is the padata-type of a PA-DATA.
type PADataType int32

const (
	PADataTypeTGSReq       PADataType = PADataType(patype.PA_TGS_REQ)
	PADataTypeEncTimestamp PADataType = PADataType(patype.PA_ENC_TIMESTAMP)
	PADataTypePWSalt       PADataType = PADataType(patype.PA_PW_SALT)
	PADataTypeETypeInfo    PADataType = PADataType(patype.PA_ETYPE_INFO)
	PADataTypeETypeInfo2   PADataType = PADataType(patype.PA_ETYPE_INFO2)
	PADataTypePACRequest   PADataType = PADataType(patype.PA_PAC_REQUEST)
)

var paDataTypes = newRegistry("PADataType", map[PADataType]string{
	PADataTypeTGSReq:       "PA-TGS-REQ",
	PADataTypeEncTimestamp: "PA-ENC-TIMESTAMP",
	PADataTypePWSalt:       "PA-PW-SALT",
	PADataTypeETypeInfo:    "PA-ETYPE-INFO",
	PADataTypeETypeInfo2:   "PA-ETYPE-INFO2",
	PADataTypePACRequest:   "PA-PAC-REQUEST",
})

func (p PADataType) String() string               { return paDataTypes.name(p) }
func (p PADataType) Known() bool                  { return paDataTypes.known(p) }
func (p PADataType) MarshalText() ([]byte, error) { return []byte(p.String()), nil }
func (p *PADataType) UnmarshalText(b []byte) (err error) {
	*p, err = paDataTypes.parse(string(b))
	return
}

// ADType is the ad-type of an authorization data element.
type ADType int32

const (
	ADTypeIfRelevant                  ADType = ADType(adtype.ADIfRelevant)
	ADTypeIntendedForServer           ADType = ADType(adtype.ADIntendedForServer)
	ADTypeIntendedForApplicationClass ADType = ADType(adtype.ADIntendedForApplicationClass)
	ADTypeKDCIssued                   ADType = ADType(adtype.ADKDCIssued)
	ADTypeAndOr                       ADType = ADType(adtype.ADAndOr)
	ADTypeMandatoryForKDC             ADType = ADType(adtype.ADMandatoryForKDC)
	ADTypeWin2KPAC                    ADType = ADType(adtype.ADWin2KPAC)
)

var adTypes = newRegistry("ADType", map[ADType]string{
	ADTypeIfRelevant:                  "AD-IF-RELEVANT",
	ADTypeIntendedForServer:           "AD-INTENDED-FOR-SERVER",
	ADTypeIntendedForApplicationClass: "AD-INTENDED-FOR-APPLICATION-CLASS",
	ADTypeKDCIssued:                   "AD-KDCIssued",
	ADTypeAndOr:                       "AD-AND-OR",
	ADTypeMandatoryForKDC:             "AD-MANDATORY-FOR-KDC",
	ADTypeWin2KPAC:                    "AD-WIN2K-PAC",
})

func (a ADType) String() string               { return adTypes.name(a) }
func (a ADType) Known() bool                  { return adTypes.known(a) }
func (a ADType) MarshalText() ([]byte, error) { return []byte(a.String()), nil }
func (a *ADType) UnmarshalText(b []byte) (err error) {
	*a, err = adTypes.parse(string(b))
	return
}

// ChecksumType is a cksumtype number (RFC 3961).
type ChecksumType int32

const (
	ChecksumTypeCRC32               ChecksumType = ChecksumType(chksumtype.CRC32)
	ChecksumTypeRSAMD5              ChecksumType = ChecksumType(chksumtype.RSA_MD5)
	ChecksumTypeHMACSHA1DES3KD      ChecksumType = ChecksumType(chksumtype.HMAC_SHA1_DES3_KD)
	ChecksumTypeHMACSHA196AES128    ChecksumType = ChecksumType(chksumtype.HMAC_SHA1_96_AES128)
	ChecksumTypeHMACSHA196AES256    ChecksumType = ChecksumType(chksumtype.HMAC_SHA1_96_AES256)
	ChecksumTypeHMACSHA256128AES128 ChecksumType = ChecksumType(chksumtype.HMAC_SHA256_128_AES128)
	ChecksumTypeHMACSHA384192AES256 ChecksumType = ChecksumType(chksumtype.HMAC_SHA384_192_AES256)
	ChecksumTypeGSSAPI              ChecksumType = ChecksumType(chksumtype.GSSAPI)
	ChecksumTypeKerbChecksumHMACMD5 ChecksumType = ChecksumType(chksumtype.KERB_CHECKSUM_HMAC_MD5)
)

var checksumTypes = newRegistry("ChecksumType", map[ChecksumType]string{
	ChecksumTypeCRC32:               "CRC32",
	ChecksumTypeRSAMD5:              "rsa-md5",
	ChecksumTypeHMACSHA1DES3KD:      "hmac-sha1-des3-kd",
	ChecksumTypeHMACSHA196AES128:    "hmac-sha1-96-aes128",
	ChecksumTypeHMACSHA196AES256:    "hmac-sha1-96-aes256",
	ChecksumTypeHMACSHA256128AES128: "hmac-sha256-128-aes128",
	ChecksumTypeHMACSHA384192AES256: "hmac-sha384-192-aes256",
	ChecksumTypeGSSAPI:              "GSSAPI",
	ChecksumTypeKerbChecksumHMACMD5: "KERB_CHECKSUM_HMAC_MD5",
})

func (c ChecksumType) String() string               { return checksumTypes.name(c) }
func (c ChecksumType) Known() bool                  { return checksumTypes.known(c) }
func (c ChecksumType) MarshalText() ([]byte, error) { return []byte(c.String()), nil }
func (c *ChecksumType) UnmarshalText(b []byte) (err error) {
	*c, err = checksumTypes.parse(string(b))
	return
}

// ErrorCode is the error-code of a KRB-ERROR.
type ErrorCode int32

const (
	ErrorCodeNone              ErrorCode = ErrorCode(errorcode.KDC_ERR_NONE)
	ErrorCodeCPrincipalUnknown ErrorCode = ErrorCode(errorcode.KDC_ERR_C_PRINCIPAL_UNKNOWN)
	ErrorCodeSPrincipalUnknown ErrorCode = ErrorCode(errorcode.KDC_ERR_S_PRINCIPAL_UNKNOWN)
	ErrorCodePolicy            ErrorCode = ErrorCode(errorcode.KDC_ERR_POLICY)
	ErrorCodeETypeNoSupp       ErrorCode = ErrorCode(errorcode.KDC_ERR_ETYPE_NOSUPP)
	ErrorCodeClientRevoked     ErrorCode = ErrorCode(errorcode.KDC_ERR_CLIENT_REVOKED)
	ErrorCodeKeyExpired        ErrorCode = ErrorCode(errorcode.KDC_ERR_KEY_EXPIRED)
	ErrorCodePreauthFailed     ErrorCode = ErrorCode(errorcode.KDC_ERR_PREAUTH_FAILED)
	ErrorCodePreauthRequired   ErrorCode = ErrorCode(errorcode.KDC_ERR_PREAUTH_REQUIRED)
	ErrorCodeTicketExpired     ErrorCode = ErrorCode(errorcode.KRB_AP_ERR_TKT_EXPIRED)
	ErrorCodeSkew              ErrorCode = ErrorCode(errorcode.KRB_AP_ERR_SKEW)
	ErrorCodeModified          ErrorCode = ErrorCode(errorcode.KRB_AP_ERR_MODIFIED)
	ErrorCodeResponseTooBig    ErrorCode = ErrorCode(errorcode.KRB_ERR_RESPONSE_TOO_BIG)
	ErrorCodeGeneric           ErrorCode = ErrorCode(errorcode.KRB_ERR_GENERIC)
)

var errorCodes = newRegistry("ErrorCode", map[ErrorCode]string{
	ErrorCodeNone:              "KDC_ERR_NONE",
	ErrorCodeCPrincipalUnknown: "KDC_ERR_C_PRINCIPAL_UNKNOWN",
	ErrorCodeSPrincipalUnknown: "KDC_ERR_S_PRINCIPAL_UNKNOWN",
	ErrorCodePolicy:            "KDC_ERR_POLICY",
	ErrorCodeETypeNoSupp:       "KDC_ERR_ETYPE_NOSUPP",
	ErrorCodeClientRevoked:     "KDC_ERR_CLIENT_REVOKED",
	ErrorCodeKeyExpired:        "KDC_ERR_KEY_EXPIRED",
	ErrorCodePreauthFailed:     "KDC_ERR_PREAUTH_FAILED",
	ErrorCodePreauthRequired:   "KDC_ERR_PREAUTH_REQUIRED",
	ErrorCodeTicketExpired:     "KRB_AP_ERR_TKT_EXPIRED",
	ErrorCodeSkew:              "KRB_AP_ERR_SKEW",
	ErrorCodeModified:          "KRB_AP_ERR_MODIFIED",
	ErrorCodeResponseTooBig:    "KRB_ERR_RESPONSE_TOO_BIG",
	ErrorCodeGeneric:           "KRB_ERR_GENERIC",
})

func (e ErrorCode) String() string               { return errorCodes.name(e) }
func (e ErrorCode) Known() bool                  { return errorCodes.known(e) }
func (e ErrorCode) MarshalText() ([]byte, error) { return []byte(e.String()), nil }
func (e *ErrorCode) UnmarshalText(b []byte) (err error) {
	*e, err = errorCodes.parse(string(b))
	return
}

// Description is the RFC 4120 text for the code, as given by gokrb5.
func (e ErrorCode) Description() string {
	return errorcode.Lookup(int32(e))
}

// Int32 values for the enumerated types, for use in grammar tables.
var (
	encryptionTypeCodec = codecInt[EncryptionType]()
	nameTypeCodec       = codecInt[NameType]()
	addressTypeCodec    = codecInt[AddressType]()
	messageTypeCodec    = codecInt[MessageType]()
	paDataTypeCodec     = codecInt[PADataType]()
	adTypeCodec         = codecInt[ADType]()
	checksumTypeCodec   = codecInt[ChecksumType]()
	errorCodeCodec      = codecInt[ErrorCode]()
)
