package krb5

import (
	"time"
)

// PrincipalName names a client or service.  NameString holds the components in wire
// order, e.g. ["HTTP", "www.example.com"].
type PrincipalName struct {
	NameType   NameType
	NameString []string
}

// NewPrincipalName returns a principal with the given components.
func NewPrincipalName(nameType NameType, components ...string) PrincipalName {
	return PrincipalName{NameType: nameType, NameString: append([]string{}, components...)}
}

func (p *PrincipalName) Marshal() ([]byte, error) { return marshal(PrincipalNameGrammar, p) }
func (p *PrincipalName) Unmarshal(b []byte) error { return unmarshal(PrincipalNameGrammar, b, p) }

type HostAddress struct {
	AddrType AddressType
	Address  []byte
}

func (h *HostAddress) Marshal() ([]byte, error) { return marshal(HostAddressGrammar, h) }
func (h *HostAddress) Unmarshal(b []byte) error { return unmarshal(HostAddressGrammar, b, h) }

// HostAddresses is a SEQUENCE OF HostAddress.
type HostAddresses []HostAddress

func (h *HostAddresses) Marshal() ([]byte, error) { return marshal(HostAddressesCodec, h) }
func (h *HostAddresses) Unmarshal(b []byte) error { return unmarshal(HostAddressesCodec, b, h) }

// EncryptedData is ciphertext together with the etype and, optionally, the key version
// needed to decrypt it.
type EncryptedData struct {
	EType  EncryptionType
	Kvno   *uint32
	Cipher []byte
}

func (e *EncryptedData) HasKvno() bool { return e.Kvno != nil }

func (e *EncryptedData) Marshal() ([]byte, error) { return marshal(EncryptedDataGrammar, e) }
func (e *EncryptedData) Unmarshal(b []byte) error { return unmarshal(EncryptedDataGrammar, b, e) }

type EncryptionKey struct {
	KeyType  EncryptionType
	KeyValue []byte
}

func (k *EncryptionKey) Marshal() ([]byte, error) { return marshal(EncryptionKeyGrammar, k) }
func (k *EncryptionKey) Unmarshal(b []byte) error { return unmarshal(EncryptionKeyGrammar, b, k) }

type Checksum struct {
	CksumType ChecksumType
	Checksum  []byte
}

func (c *Checksum) Marshal() ([]byte, error) { return marshal(ChecksumGrammar, c) }
func (c *Checksum) Unmarshal(b []byte) error { return unmarshal(ChecksumGrammar, b, c) }

// AuthorizationDataEntry is one element of AuthorizationData.  ADData is itself DER for
// the container types (AD-IF-RELEVANT, AD-AND-OR, ...), which have their own types here.
type AuthorizationDataEntry struct {
	ADType ADType
	ADData []byte
}

// AuthorizationData is a SEQUENCE OF AuthorizationDataEntry.  AD-IF-RELEVANT and
// AD-MANDATORY-FOR-KDC elements hold AuthorizationData.
type AuthorizationData []AuthorizationDataEntry

func (a *AuthorizationData) Marshal() ([]byte, error) { return marshal(AuthorizationDataCodec, a) }
func (a *AuthorizationData) Unmarshal(b []byte) error { return unmarshal(AuthorizationDataCodec, b, a) }

// ADAndOr is AD-AND-OR: ConditionCount of the Elements must be satisfied.
type ADAndOr struct {
	ConditionCount int32
	Elements       AuthorizationData
}

func (a *ADAndOr) Marshal() ([]byte, error) { return marshal(ADAndOrGrammar, a) }
func (a *ADAndOr) Unmarshal(b []byte) error { return unmarshal(ADAndOrGrammar, b, a) }

// ADKDCIssued is AD-KDCIssued.
type ADKDCIssued struct {
	ADChecksum Checksum
	IRealm     *string
	ISName     *PrincipalName
	Elements   AuthorizationData
}

func (a *ADKDCIssued) HasIRealm() bool { return a.IRealm != nil }
func (a *ADKDCIssued) HasISName() bool { return a.ISName != nil }

func (a *ADKDCIssued) Marshal() ([]byte, error) { return marshal(ADKDCIssuedGrammar, a) }
func (a *ADKDCIssued) Unmarshal(b []byte) error { return unmarshal(ADKDCIssuedGrammar, b, a) }

// ADIntendedForServer is AD-INTENDED-FOR-SERVER.
type ADIntendedForServer struct {
	IntendedServer []PrincipalName
	Elements       AuthorizationData
}

func (a *ADIntendedForServer) Marshal() ([]byte, error) {
	return marshal(ADIntendedForServerGrammar, a)
}

func (a *ADIntendedForServer) Unmarshal(b []byte) error {
	return unmarshal(ADIntendedForServerGrammar, b, a)
}

// ADIntendedForApplicationClass is AD-INTENDED-FOR-APPLICATION-CLASS.
type ADIntendedForApplicationClass struct {
	IntendedApplicationClass []string
	Elements                 AuthorizationData
}

func (a *ADIntendedForApplicationClass) Marshal() ([]byte, error) {
	return marshal(ADIntendedForApplicationClassGrammar, a)
}

func (a *ADIntendedForApplicationClass) Unmarshal(b []byte) error {
	return unmarshal(ADIntendedForApplicationClassGrammar, b, a)
}

// PAData is one pre-authentication element.  PADataValue is DER for most types,
// e.g. PA-ENC-TIMESTAMP holds an EncryptedData.
type PAData struct {
	PADataType  PADataType
	PADataValue []byte
}

func (p *PAData) Marshal() ([]byte, error) { return marshal(PADataGrammar, p) }
func (p *PAData) Unmarshal(b []byte) error { return unmarshal(PADataGrammar, b, p) }

// MethodData is METHOD-DATA, a SEQUENCE OF PA-DATA.  KRB-ERROR e-data often holds one.
type MethodData []PAData

func (m *MethodData) Marshal() ([]byte, error) { return marshal(MethodDataCodec, m) }
func (m *MethodData) Unmarshal(b []byte) error { return unmarshal(MethodDataCodec, b, m) }

type TypedDataEntry struct {
	DataType  int32
	DataValue []byte
}

func (t *TypedDataEntry) HasDataValue() bool { return t.DataValue != nil }

// TypedData is TYPED-DATA.
type TypedData []TypedDataEntry

func (t *TypedData) Marshal() ([]byte, error) { return marshal(TypedDataCodec, t) }
func (t *TypedData) Unmarshal(b []byte) error { return unmarshal(TypedDataCodec, b, t) }

// PAEncTSEnc is PA-ENC-TS-ENC, the plaintext of PA-ENC-TIMESTAMP.
type PAEncTSEnc struct {
	PATimestamp time.Time
	PAUSec      *int32
}

func (p *PAEncTSEnc) HasPAUSec() bool { return p.PAUSec != nil }

func (p *PAEncTSEnc) Marshal() ([]byte, error) { return marshal(PAEncTSEncGrammar, p) }
func (p *PAEncTSEnc) Unmarshal(b []byte) error { return unmarshal(PAEncTSEncGrammar, b, p) }

type ETypeInfoEntry struct {
	EType EncryptionType
	Salt  []byte
}

func (e *ETypeInfoEntry) HasSalt() bool { return e.Salt != nil }

// ETypeInfo is ETYPE-INFO, the value of PA-ETYPE-INFO.
type ETypeInfo []ETypeInfoEntry

func (e *ETypeInfo) Marshal() ([]byte, error) { return marshal(ETypeInfoCodec, e) }
func (e *ETypeInfo) Unmarshal(b []byte) error { return unmarshal(ETypeInfoCodec, b, e) }

type ETypeInfo2Entry struct {
	EType     EncryptionType
	Salt      *string
	S2KParams []byte
}

func (e *ETypeInfo2Entry) HasSalt() bool      { return e.Salt != nil }
func (e *ETypeInfo2Entry) HasS2KParams() bool { return e.S2KParams != nil }

// ETypeInfo2 is ETYPE-INFO2, the value of PA-ETYPE-INFO2.
type ETypeInfo2 []ETypeInfo2Entry

func (e *ETypeInfo2) Marshal() ([]byte, error) { return marshal(ETypeInfo2Codec, e) }
func (e *ETypeInfo2) Unmarshal(b []byte) error { return unmarshal(ETypeInfo2Codec, b, e) }

// PAPACRequest is the MS-KILE KERB-PA-PAC-REQUEST, the value of PA-PAC-REQUEST.
type PAPACRequest struct {
	IncludePAC bool
}

func (p *PAPACRequest) Marshal() ([]byte, error) { return marshal(PAPACRequestGrammar, p) }
func (p *PAPACRequest) Unmarshal(b []byte) error { return unmarshal(PAPACRequestGrammar, b, p) }

type LastReqEntry struct {
	LRType  int32
	LRValue time.Time
}

type LastReq []LastReqEntry

func (l *LastReq) Marshal() ([]byte, error) { return marshal(LastReqCodec, l) }
func (l *LastReq) Unmarshal(b []byte) error { return unmarshal(LastReqCodec, b, l) }

type TransitedEncoding struct {
	TRType   int32
	Contents []byte
}

func (t *TransitedEncoding) Marshal() ([]byte, error) { return marshal(TransitedEncodingGrammar, t) }
func (t *TransitedEncoding) Unmarshal(b []byte) error {
	return unmarshal(TransitedEncodingGrammar, b, t)
}

// ChangePasswdData is the RFC 3244 set/change password request.
type ChangePasswdData struct {
	NewPasswd []byte
	TargName  *PrincipalName
	TargRealm *string
}

func (c *ChangePasswdData) HasTargName() bool  { return c.TargName != nil }
func (c *ChangePasswdData) HasTargRealm() bool { return c.TargRealm != nil }

func (c *ChangePasswdData) Marshal() ([]byte, error) { return marshal(ChangePasswdDataGrammar, c) }
func (c *ChangePasswdData) Unmarshal(b []byte) error {
	return unmarshal(ChangePasswdDataGrammar, b, c)
}
