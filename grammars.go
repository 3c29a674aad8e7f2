package krb5

import (
	"time"

	"github.com/gemalto/krb5-go/codec"
)

func marshal[T any](c codec.Codec[T], v *T) ([]byte, error) {
	return codec.Marshal(c, v)
}

func unmarshal[T any](c codec.Codec[T], b []byte, v *T) error {
	d, err := codec.Unmarshal(c, b)
	if err != nil {
		return err
	}
	*v = *d
	return nil
}

func codecInt[E ~int32]() codec.Codec[E] {
	return codec.Integer[E]("Int32")
}

// Leaf codecs, named as in RFC 4120.
var (
	int32Codec        = codec.Int32
	uint32Codec       = codec.UInt32
	microseconds      = codec.Int32
	kerberosString    = codec.GeneralString
	realm             = codec.GeneralString
	kerberosTime      = codec.GeneralizedTime
	octetString       = codec.OctetString
	kerberosFlags     = codec.Bits[KerberosFlags]("KerberosFlags")
	kerberosStrings   = codec.SequenceOf[[]string]("SEQUENCE OF KerberosString", kerberosString)
	encryptionTypes   = codec.SequenceOf[[]EncryptionType]("SEQUENCE OF Int32", encryptionTypeCodec)
	principalNameList = codec.SequenceOf[[]PrincipalName]("SEQUENCE OF PrincipalName", PrincipalNameGrammar)
)

var PrincipalNameGrammar = codec.NewGrammar("PrincipalName",
	codec.Required(0, "name-type", nameTypeCodec, func(p *PrincipalName) *NameType { return &p.NameType }),
	codec.Required(1, "name-string", kerberosStrings, func(p *PrincipalName) *[]string { return &p.NameString }),
)

var HostAddressGrammar = codec.NewGrammar("HostAddress",
	codec.Required(0, "addr-type", addressTypeCodec, func(h *HostAddress) *AddressType { return &h.AddrType }),
	codec.Required(1, "address", octetString, func(h *HostAddress) *[]byte { return &h.Address }),
)

var HostAddressesCodec = codec.SequenceOf[HostAddresses]("HostAddresses", HostAddressGrammar)

var EncryptedDataGrammar = codec.NewGrammar("EncryptedData",
	codec.Required(0, "etype", encryptionTypeCodec, func(e *EncryptedData) *EncryptionType { return &e.EType }),
	codec.Optional(1, "kvno", uint32Codec, func(e *EncryptedData) **uint32 { return &e.Kvno }),
	codec.Required(2, "cipher", octetString, func(e *EncryptedData) *[]byte { return &e.Cipher }),
)

var EncryptionKeyGrammar = codec.NewGrammar("EncryptionKey",
	codec.Required(0, "keytype", encryptionTypeCodec, func(k *EncryptionKey) *EncryptionType { return &k.KeyType }),
	codec.Required(1, "keyvalue", octetString, func(k *EncryptionKey) *[]byte { return &k.KeyValue }),
)

var ChecksumGrammar = codec.NewGrammar("Checksum",
	codec.Required(0, "cksumtype", checksumTypeCodec, func(c *Checksum) *ChecksumType { return &c.CksumType }),
	codec.Required(1, "checksum", octetString, func(c *Checksum) *[]byte { return &c.Checksum }),
)

var authorizationDataEntryGrammar = codec.NewGrammar("AuthorizationDataEntry",
	codec.Required(0, "ad-type", adTypeCodec, func(a *AuthorizationDataEntry) *ADType { return &a.ADType }),
	codec.Required(1, "ad-data", octetString, func(a *AuthorizationDataEntry) *[]byte { return &a.ADData }),
)

// AuthorizationDataCodec also decodes AD-IF-RELEVANT and AD-MANDATORY-FOR-KDC.
var AuthorizationDataCodec = codec.SequenceOf[AuthorizationData]("AuthorizationData", authorizationDataEntryGrammar)

var ADAndOrGrammar = codec.NewGrammar("AD-AND-OR",
	codec.Required(0, "condition-count", int32Codec, func(a *ADAndOr) *int32 { return &a.ConditionCount }),
	codec.Required(1, "elements", AuthorizationDataCodec, func(a *ADAndOr) *AuthorizationData { return &a.Elements }),
)

var ADKDCIssuedGrammar = codec.NewGrammar("AD-KDCIssued",
	codec.Required(0, "ad-checksum", ChecksumGrammar, func(a *ADKDCIssued) *Checksum { return &a.ADChecksum }),
	codec.Optional(1, "i-realm", realm, func(a *ADKDCIssued) **string { return &a.IRealm }),
	codec.Optional(2, "i-sname", PrincipalNameGrammar, func(a *ADKDCIssued) **PrincipalName { return &a.ISName }),
	codec.Required(3, "elements", AuthorizationDataCodec, func(a *ADKDCIssued) *AuthorizationData { return &a.Elements }),
)

var ADIntendedForServerGrammar = codec.NewGrammar("AD-INTENDED-FOR-SERVER",
	codec.Required(0, "intended-server", principalNameList, func(a *ADIntendedForServer) *[]PrincipalName { return &a.IntendedServer }),
	codec.Required(1, "elements", AuthorizationDataCodec, func(a *ADIntendedForServer) *AuthorizationData { return &a.Elements }),
)

var ADIntendedForApplicationClassGrammar = codec.NewGrammar("AD-INTENDED-FOR-APPLICATION-CLASS",
	codec.Required(0, "intended-application-class", kerberosStrings, func(a *ADIntendedForApplicationClass) *[]string {
		return &a.IntendedApplicationClass
	}),
	codec.Required(1, "elements", AuthorizationDataCodec, func(a *ADIntendedForApplicationClass) *AuthorizationData {
		return &a.Elements
	}),
)

// PA-DATA has no field [0].
var PADataGrammar = codec.NewGrammar("PA-DATA",
	codec.Required(1, "padata-type", paDataTypeCodec, func(p *PAData) *PADataType { return &p.PADataType }),
	codec.Required(2, "padata-value", octetString, func(p *PAData) *[]byte { return &p.PADataValue }),
)

var MethodDataCodec = codec.SequenceOf[MethodData]("METHOD-DATA", PADataGrammar)

var typedDataEntryGrammar = codec.NewGrammar("TypedDataEntry",
	codec.Required(0, "data-type", int32Codec, func(t *TypedDataEntry) *int32 { return &t.DataType }),
	codec.OptionalBytes(1, "data-value", func(t *TypedDataEntry) *[]byte { return &t.DataValue }),
)

var TypedDataCodec = codec.SequenceOf[TypedData]("TYPED-DATA", typedDataEntryGrammar)

var PAEncTSEncGrammar = codec.NewGrammar("PA-ENC-TS-ENC",
	codec.Required(0, "patimestamp", kerberosTime, func(p *PAEncTSEnc) *time.Time { return &p.PATimestamp }),
	codec.Optional(1, "pausec", microseconds, func(p *PAEncTSEnc) **int32 { return &p.PAUSec }),
)

var eTypeInfoEntryGrammar = codec.NewGrammar("ETYPE-INFO-ENTRY",
	codec.Required(0, "etype", encryptionTypeCodec, func(e *ETypeInfoEntry) *EncryptionType { return &e.EType }),
	codec.OptionalBytes(1, "salt", func(e *ETypeInfoEntry) *[]byte { return &e.Salt }),
)

var ETypeInfoCodec = codec.SequenceOf[ETypeInfo]("ETYPE-INFO", eTypeInfoEntryGrammar)

var eTypeInfo2EntryGrammar = codec.NewGrammar("ETYPE-INFO2-ENTRY",
	codec.Required(0, "etype", encryptionTypeCodec, func(e *ETypeInfo2Entry) *EncryptionType { return &e.EType }),
	codec.Optional(1, "salt", kerberosString, func(e *ETypeInfo2Entry) **string { return &e.Salt }),
	codec.OptionalBytes(2, "s2kparams", func(e *ETypeInfo2Entry) *[]byte { return &e.S2KParams }),
)

var ETypeInfo2Codec = codec.SequenceOf[ETypeInfo2]("ETYPE-INFO2", eTypeInfo2EntryGrammar)

var PAPACRequestGrammar = codec.NewGrammar("KERB-PA-PAC-REQUEST",
	codec.Required(0, "include-pac", codec.Boolean, func(p *PAPACRequest) *bool { return &p.IncludePAC }),
)

var lastReqEntryGrammar = codec.NewGrammar("LastReqEntry",
	codec.Required(0, "lr-type", int32Codec, func(l *LastReqEntry) *int32 { return &l.LRType }),
	codec.Required(1, "lr-value", kerberosTime, func(l *LastReqEntry) *time.Time { return &l.LRValue }),
)

var LastReqCodec = codec.SequenceOf[LastReq]("LastReq", lastReqEntryGrammar)

var TransitedEncodingGrammar = codec.NewGrammar("TransitedEncoding",
	codec.Required(0, "tr-type", int32Codec, func(t *TransitedEncoding) *int32 { return &t.TRType }),
	codec.Required(1, "contents", octetString, func(t *TransitedEncoding) *[]byte { return &t.Contents }),
)

var ChangePasswdDataGrammar = codec.NewGrammar("ChangePasswdData",
	codec.Required(0, "newpasswd", octetString, func(c *ChangePasswdData) *[]byte { return &c.NewPasswd }),
	codec.Optional(1, "targname", PrincipalNameGrammar, func(c *ChangePasswdData) **PrincipalName { return &c.TargName }),
	codec.Optional(2, "targrealm", realm, func(c *ChangePasswdData) **string { return &c.TargRealm }),
)
