package krb5

import (
	"time"
)

// Ticket is [APPLICATION 1].
type Ticket struct {
	TktVNO  int32
	Realm   string
	SName   PrincipalName
	EncPart EncryptedData
}

func (t *Ticket) Marshal() ([]byte, error) { return marshal(TicketGrammar, t) }
func (t *Ticket) Unmarshal(b []byte) error { return unmarshal(TicketGrammar, b, t) }

// Authenticator is [APPLICATION 2], the plaintext of AP-REQ's authenticator.
type Authenticator struct {
	AuthenticatorVNO  int32
	CRealm            string
	CName             PrincipalName
	Cksum             *Checksum
	CUSec             int32
	CTime             time.Time
	Subkey            *EncryptionKey
	SeqNumber         *uint32
	AuthorizationData AuthorizationData
}

func (a *Authenticator) HasCksum() bool             { return a.Cksum != nil }
func (a *Authenticator) HasSubkey() bool            { return a.Subkey != nil }
func (a *Authenticator) HasSeqNumber() bool         { return a.SeqNumber != nil }
func (a *Authenticator) HasAuthorizationData() bool { return a.AuthorizationData != nil }

func (a *Authenticator) Marshal() ([]byte, error) { return marshal(AuthenticatorGrammar, a) }
func (a *Authenticator) Unmarshal(b []byte) error { return unmarshal(AuthenticatorGrammar, b, a) }

// EncTicketPart is [APPLICATION 3], the plaintext of a Ticket's enc-part.
type EncTicketPart struct {
	Flags             KerberosFlags
	Key               EncryptionKey
	CRealm            string
	CName             PrincipalName
	Transited         TransitedEncoding
	AuthTime          time.Time
	StartTime         *time.Time
	EndTime           time.Time
	RenewTill         *time.Time
	CAddr             HostAddresses
	AuthorizationData AuthorizationData
}

func (e *EncTicketPart) HasStartTime() bool         { return e.StartTime != nil }
func (e *EncTicketPart) HasRenewTill() bool         { return e.RenewTill != nil }
func (e *EncTicketPart) HasCAddr() bool             { return e.CAddr != nil }
func (e *EncTicketPart) HasAuthorizationData() bool { return e.AuthorizationData != nil }

func (e *EncTicketPart) Marshal() ([]byte, error) { return marshal(EncTicketPartGrammar, e) }
func (e *EncTicketPart) Unmarshal(b []byte) error { return unmarshal(EncTicketPartGrammar, b, e) }

// KDCReqBody is KDC-REQ-BODY.
type KDCReqBody struct {
	KDCOptions           KerberosFlags
	CName                *PrincipalName
	Realm                string
	SName                *PrincipalName
	From                 *time.Time
	Till                 time.Time
	RTime                *time.Time
	Nonce                uint32
	EType                []EncryptionType
	Addresses            HostAddresses
	EncAuthorizationData *EncryptedData
	AdditionalTickets    []Ticket
}

func (k *KDCReqBody) HasCName() bool                { return k.CName != nil }
func (k *KDCReqBody) HasSName() bool                { return k.SName != nil }
func (k *KDCReqBody) HasFrom() bool                 { return k.From != nil }
func (k *KDCReqBody) HasRTime() bool                { return k.RTime != nil }
func (k *KDCReqBody) HasAddresses() bool            { return k.Addresses != nil }
func (k *KDCReqBody) HasEncAuthorizationData() bool { return k.EncAuthorizationData != nil }
func (k *KDCReqBody) HasAdditionalTickets() bool    { return k.AdditionalTickets != nil }

// Marshal encodes the body on its own, as hashed into a TGS-REQ's authenticator checksum.
func (k *KDCReqBody) Marshal() ([]byte, error) { return marshal(KDCReqBodyGrammar, k) }
func (k *KDCReqBody) Unmarshal(b []byte) error { return unmarshal(KDCReqBodyGrammar, b, k) }

// KDCReq holds the fields AS-REQ and TGS-REQ share.
type KDCReq struct {
	PVNO    int32
	MsgType MessageType
	PAData  MethodData
	ReqBody KDCReqBody
}

func (k *KDCReq) HasPAData() bool { return k.PAData != nil }

// ASReq is [APPLICATION 10].
type ASReq struct {
	KDCReq
}

func (r *ASReq) Marshal() ([]byte, error) { return marshal(ASReqGrammar, r) }
func (r *ASReq) Unmarshal(b []byte) error { return unmarshal(ASReqGrammar, b, r) }

// TGSReq is [APPLICATION 12].
type TGSReq struct {
	KDCReq
}

func (r *TGSReq) Marshal() ([]byte, error) { return marshal(TGSReqGrammar, r) }
func (r *TGSReq) Unmarshal(b []byte) error { return unmarshal(TGSReqGrammar, b, r) }

// KDCRep holds the fields AS-REP and TGS-REP share.
type KDCRep struct {
	PVNO    int32
	MsgType MessageType
	PAData  MethodData
	CRealm  string
	CName   PrincipalName
	Ticket  Ticket
	EncPart EncryptedData
}

func (k *KDCRep) HasPAData() bool { return k.PAData != nil }

// ASRep is [APPLICATION 11].
type ASRep struct {
	KDCRep
}

func (r *ASRep) Marshal() ([]byte, error) { return marshal(ASRepGrammar, r) }
func (r *ASRep) Unmarshal(b []byte) error { return unmarshal(ASRepGrammar, b, r) }

// TGSRep is [APPLICATION 13].
type TGSRep struct {
	KDCRep
}

func (r *TGSRep) Marshal() ([]byte, error) { return marshal(TGSRepGrammar, r) }
func (r *TGSRep) Unmarshal(b []byte) error { return unmarshal(TGSRepGrammar, b, r) }

// EncKDCRepPart holds the fields EncASRepPart and EncTGSRepPart share.
type EncKDCRepPart struct {
	Key           EncryptionKey
	LastReq       LastReq
	Nonce         uint32
	KeyExpiration *time.Time
	Flags         KerberosFlags
	AuthTime      time.Time
	StartTime     *time.Time
	EndTime       time.Time
	RenewTill     *time.Time
	SRealm        string
	SName         PrincipalName
	CAddr         HostAddresses
}

func (e *EncKDCRepPart) HasKeyExpiration() bool { return e.KeyExpiration != nil }
func (e *EncKDCRepPart) HasStartTime() bool     { return e.StartTime != nil }
func (e *EncKDCRepPart) HasRenewTill() bool     { return e.RenewTill != nil }
func (e *EncKDCRepPart) HasCAddr() bool         { return e.CAddr != nil }

// EncASRepPart is [APPLICATION 25].
type EncASRepPart struct {
	EncKDCRepPart
}

func (e *EncASRepPart) Marshal() ([]byte, error) { return marshal(EncASRepPartGrammar, e) }
func (e *EncASRepPart) Unmarshal(b []byte) error { return unmarshal(EncASRepPartGrammar, b, e) }

// EncTGSRepPart is [APPLICATION 26].
type EncTGSRepPart struct {
	EncKDCRepPart
}

func (e *EncTGSRepPart) Marshal() ([]byte, error) { return marshal(EncTGSRepPartGrammar, e) }
func (e *EncTGSRepPart) Unmarshal(b []byte) error { return unmarshal(EncTGSRepPartGrammar, b, e) }

// APReq is [APPLICATION 14].
type APReq struct {
	PVNO          int32
	MsgType       MessageType
	APOptions     KerberosFlags
	Ticket        Ticket
	Authenticator EncryptedData
}

func (a *APReq) Marshal() ([]byte, error) { return marshal(APReqGrammar, a) }
func (a *APReq) Unmarshal(b []byte) error { return unmarshal(APReqGrammar, b, a) }

// APRep is [APPLICATION 15].
type APRep struct {
	PVNO    int32
	MsgType MessageType
	EncPart EncryptedData
}

func (a *APRep) Marshal() ([]byte, error) { return marshal(APRepGrammar, a) }
func (a *APRep) Unmarshal(b []byte) error { return unmarshal(APRepGrammar, b, a) }

// EncAPRepPart is [APPLICATION 27].
type EncAPRepPart struct {
	CTime     time.Time
	CUSec     int32
	Subkey    *EncryptionKey
	SeqNumber *uint32
}

func (e *EncAPRepPart) HasSubkey() bool    { return e.Subkey != nil }
func (e *EncAPRepPart) HasSeqNumber() bool { return e.SeqNumber != nil }

func (e *EncAPRepPart) Marshal() ([]byte, error) { return marshal(EncAPRepPartGrammar, e) }
func (e *EncAPRepPart) Unmarshal(b []byte) error { return unmarshal(EncAPRepPartGrammar, b, e) }

// KRBSafeBody is KRB-SAFE-BODY.  EncKrbPrivPart carries the same fields.
type KRBSafeBody struct {
	UserData  []byte
	Timestamp *time.Time
	USec      *int32
	SeqNumber *uint32
	SAddress  HostAddress
	RAddress  *HostAddress
}

func (k *KRBSafeBody) HasTimestamp() bool { return k.Timestamp != nil }
func (k *KRBSafeBody) HasUSec() bool      { return k.USec != nil }
func (k *KRBSafeBody) HasSeqNumber() bool { return k.SeqNumber != nil }
func (k *KRBSafeBody) HasRAddress() bool  { return k.RAddress != nil }

// KRBSafe is [APPLICATION 20].
type KRBSafe struct {
	PVNO     int32
	MsgType  MessageType
	SafeBody KRBSafeBody
	Cksum    Checksum
}

func (k *KRBSafe) Marshal() ([]byte, error) { return marshal(KRBSafeGrammar, k) }
func (k *KRBSafe) Unmarshal(b []byte) error { return unmarshal(KRBSafeGrammar, b, k) }

// KRBPriv is [APPLICATION 21].
type KRBPriv struct {
	PVNO    int32
	MsgType MessageType
	EncPart EncryptedData
}

func (k *KRBPriv) Marshal() ([]byte, error) { return marshal(KRBPrivGrammar, k) }
func (k *KRBPriv) Unmarshal(b []byte) error { return unmarshal(KRBPrivGrammar, b, k) }

// EncKrbPrivPart is [APPLICATION 28], the plaintext of KRB-PRIV's enc-part.
type EncKrbPrivPart struct {
	KRBSafeBody
}

func (e *EncKrbPrivPart) Marshal() ([]byte, error) { return marshal(EncKrbPrivPartGrammar, e) }
func (e *EncKrbPrivPart) Unmarshal(b []byte) error { return unmarshal(EncKrbPrivPartGrammar, b, e) }

// KRBCred is [APPLICATION 22].
type KRBCred struct {
	PVNO    int32
	MsgType MessageType
	Tickets []Ticket
	EncPart EncryptedData
}

func (k *KRBCred) Marshal() ([]byte, error) { return marshal(KRBCredGrammar, k) }
func (k *KRBCred) Unmarshal(b []byte) error { return unmarshal(KRBCredGrammar, b, k) }

// EncKrbCredPart is [APPLICATION 29], the plaintext of KRB-CRED's enc-part.
type EncKrbCredPart struct {
	TicketInfo []KrbCredInfo
	Nonce      *uint32
	Timestamp  *time.Time
	USec       *int32
	SAddress   *HostAddress
	RAddress   *HostAddress
}

func (e *EncKrbCredPart) HasNonce() bool     { return e.Nonce != nil }
func (e *EncKrbCredPart) HasTimestamp() bool { return e.Timestamp != nil }
func (e *EncKrbCredPart) HasUSec() bool      { return e.USec != nil }
func (e *EncKrbCredPart) HasSAddress() bool  { return e.SAddress != nil }
func (e *EncKrbCredPart) HasRAddress() bool  { return e.RAddress != nil }

func (e *EncKrbCredPart) Marshal() ([]byte, error) { return marshal(EncKrbCredPartGrammar, e) }
func (e *EncKrbCredPart) Unmarshal(b []byte) error { return unmarshal(EncKrbCredPartGrammar, b, e) }

// KrbCredInfo describes one of the tickets carried by a KRB-CRED.
type KrbCredInfo struct {
	Key       EncryptionKey
	PRealm    *string
	PName     *PrincipalName
	Flags     *KerberosFlags
	AuthTime  *time.Time
	StartTime *time.Time
	EndTime   *time.Time
	RenewTill *time.Time
	SRealm    *string
	SName     *PrincipalName
	CAddr     HostAddresses
}

func (k *KrbCredInfo) HasPRealm() bool    { return k.PRealm != nil }
func (k *KrbCredInfo) HasPName() bool     { return k.PName != nil }
func (k *KrbCredInfo) HasFlags() bool     { return k.Flags != nil }
func (k *KrbCredInfo) HasAuthTime() bool  { return k.AuthTime != nil }
func (k *KrbCredInfo) HasStartTime() bool { return k.StartTime != nil }
func (k *KrbCredInfo) HasEndTime() bool   { return k.EndTime != nil }
func (k *KrbCredInfo) HasRenewTill() bool { return k.RenewTill != nil }
func (k *KrbCredInfo) HasSRealm() bool    { return k.SRealm != nil }
func (k *KrbCredInfo) HasSName() bool     { return k.SName != nil }
func (k *KrbCredInfo) HasCAddr() bool     { return k.CAddr != nil }

// KRBError is [APPLICATION 30].
type KRBError struct {
	PVNO      int32
	MsgType   MessageType
	CTime     *time.Time
	CUSec     *int32
	STime     time.Time
	SUSec     int32
	ErrorCode ErrorCode
	CRealm    *string
	CName     *PrincipalName
	Realm     string
	SName     PrincipalName
	EText     *string
	EData     []byte
}

func (k *KRBError) HasCTime() bool  { return k.CTime != nil }
func (k *KRBError) HasCUSec() bool  { return k.CUSec != nil }
func (k *KRBError) HasCRealm() bool { return k.CRealm != nil }
func (k *KRBError) HasCName() bool  { return k.CName != nil }
func (k *KRBError) HasEText() bool  { return k.EText != nil }
func (k *KRBError) HasEData() bool  { return k.EData != nil }

func (k *KRBError) Marshal() ([]byte, error) { return marshal(KRBErrorGrammar, k) }
func (k *KRBError) Unmarshal(b []byte) error { return unmarshal(KRBErrorGrammar, b, k) }

// Error makes a KRBError usable as a golang error, e.g. when a KDC replies with one.
func (k *KRBError) Error() string {
	s := "krb5: " + k.ErrorCode.String()
	if k.EText != nil && *k.EText != "" {
		s += ": " + *k.EText
	}
	return s
}
