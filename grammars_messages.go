package krb5

import (
	"time"

	"github.com/gemalto/krb5-go/codec"
)

// APPLICATION tag numbers.  Messages use the number of their msg-type.
const (
	AppTicket         = 1
	AppAuthenticator  = 2
	AppEncTicketPart  = 3
	AppASReq          = 10
	AppASRep          = 11
	AppTGSReq         = 12
	AppTGSRep         = 13
	AppAPReq          = 14
	AppAPRep          = 15
	AppKRBSafe        = 20
	AppKRBPriv        = 21
	AppKRBCred        = 22
	AppEncASRepPart   = 25
	AppEncTGSRepPart  = 26
	AppEncAPRepPart   = 27
	AppEncKrbPrivPart = 28
	AppEncKrbCredPart = 29
	AppKRBError       = 30
)

var TicketGrammar = codec.NewApplication("Ticket", AppTicket,
	codec.Required(0, "tkt-vno", int32Codec, func(t *Ticket) *int32 { return &t.TktVNO }),
	codec.Required(1, "realm", realm, func(t *Ticket) *string { return &t.Realm }),
	codec.Required(2, "sname", PrincipalNameGrammar, func(t *Ticket) *PrincipalName { return &t.SName }),
	codec.Required(3, "enc-part", EncryptedDataGrammar, func(t *Ticket) *EncryptedData { return &t.EncPart }),
)

var ticketList = codec.SequenceOf[[]Ticket]("SEQUENCE OF Ticket", TicketGrammar)

var AuthenticatorGrammar = codec.NewApplication("Authenticator", AppAuthenticator,
	codec.Required(0, "authenticator-vno", int32Codec, func(a *Authenticator) *int32 { return &a.AuthenticatorVNO }),
	codec.Required(1, "crealm", realm, func(a *Authenticator) *string { return &a.CRealm }),
	codec.Required(2, "cname", PrincipalNameGrammar, func(a *Authenticator) *PrincipalName { return &a.CName }),
	codec.Optional(3, "cksum", ChecksumGrammar, func(a *Authenticator) **Checksum { return &a.Cksum }),
	codec.Required(4, "cusec", microseconds, func(a *Authenticator) *int32 { return &a.CUSec }),
	codec.Required(5, "ctime", kerberosTime, func(a *Authenticator) *time.Time { return &a.CTime }),
	codec.Optional(6, "subkey", EncryptionKeyGrammar, func(a *Authenticator) **EncryptionKey { return &a.Subkey }),
	codec.Optional(7, "seq-number", uint32Codec, func(a *Authenticator) **uint32 { return &a.SeqNumber }),
	codec.OptionalList(8, "authorization-data", AuthorizationDataCodec, func(a *Authenticator) *AuthorizationData {
		return &a.AuthorizationData
	}),
)

var EncTicketPartGrammar = codec.NewApplication("EncTicketPart", AppEncTicketPart,
	codec.Required(0, "flags", kerberosFlags, func(e *EncTicketPart) *KerberosFlags { return &e.Flags }),
	codec.Required(1, "key", EncryptionKeyGrammar, func(e *EncTicketPart) *EncryptionKey { return &e.Key }),
	codec.Required(2, "crealm", realm, func(e *EncTicketPart) *string { return &e.CRealm }),
	codec.Required(3, "cname", PrincipalNameGrammar, func(e *EncTicketPart) *PrincipalName { return &e.CName }),
	codec.Required(4, "transited", TransitedEncodingGrammar, func(e *EncTicketPart) *TransitedEncoding { return &e.Transited }),
	codec.Required(5, "authtime", kerberosTime, func(e *EncTicketPart) *time.Time { return &e.AuthTime }),
	codec.Optional(6, "starttime", kerberosTime, func(e *EncTicketPart) **time.Time { return &e.StartTime }),
	codec.Required(7, "endtime", kerberosTime, func(e *EncTicketPart) *time.Time { return &e.EndTime }),
	codec.Optional(8, "renew-till", kerberosTime, func(e *EncTicketPart) **time.Time { return &e.RenewTill }),
	codec.OptionalList(9, "caddr", HostAddressesCodec, func(e *EncTicketPart) *HostAddresses { return &e.CAddr }),
	codec.OptionalList(10, "authorization-data", AuthorizationDataCodec, func(e *EncTicketPart) *AuthorizationData {
		return &e.AuthorizationData
	}),
)

var KDCReqBodyGrammar = codec.NewGrammar("KDC-REQ-BODY",
	codec.Required(0, "kdc-options", kerberosFlags, func(k *KDCReqBody) *KerberosFlags { return &k.KDCOptions }),
	codec.Optional(1, "cname", PrincipalNameGrammar, func(k *KDCReqBody) **PrincipalName { return &k.CName }),
	codec.Required(2, "realm", realm, func(k *KDCReqBody) *string { return &k.Realm }),
	codec.Optional(3, "sname", PrincipalNameGrammar, func(k *KDCReqBody) **PrincipalName { return &k.SName }),
	codec.Optional(4, "from", kerberosTime, func(k *KDCReqBody) **time.Time { return &k.From }),
	codec.Required(5, "till", kerberosTime, func(k *KDCReqBody) *time.Time { return &k.Till }),
	codec.Optional(6, "rtime", kerberosTime, func(k *KDCReqBody) **time.Time { return &k.RTime }),
	codec.Required(7, "nonce", uint32Codec, func(k *KDCReqBody) *uint32 { return &k.Nonce }),
	codec.Required(8, "etype", encryptionTypes, func(k *KDCReqBody) *[]EncryptionType { return &k.EType }),
	codec.OptionalList(9, "addresses", HostAddressesCodec, func(k *KDCReqBody) *HostAddresses { return &k.Addresses }),
	codec.Optional(10, "enc-authorization-data", EncryptedDataGrammar, func(k *KDCReqBody) **EncryptedData {
		return &k.EncAuthorizationData
	}),
	codec.OptionalList(11, "additional-tickets", ticketList, func(k *KDCReqBody) *[]Ticket { return &k.AdditionalTickets }),
)

// KDC-REQ has no field [0].
var kdcReqFields = []codec.Field[KDCReq]{
	codec.Required(1, "pvno", int32Codec, func(k *KDCReq) *int32 { return &k.PVNO }),
	codec.Required(2, "msg-type", messageTypeCodec, func(k *KDCReq) *MessageType { return &k.MsgType }),
	codec.OptionalList(3, "padata", MethodDataCodec, func(k *KDCReq) *MethodData { return &k.PAData }),
	codec.Required(4, "req-body", KDCReqBodyGrammar, func(k *KDCReq) *KDCReqBody { return &k.ReqBody }),
}

var ASReqGrammar = codec.NewApplication("AS-REQ", AppASReq,
	codec.Project(kdcReqFields, func(r *ASReq) *KDCReq { return &r.KDCReq })...)

var TGSReqGrammar = codec.NewApplication("TGS-REQ", AppTGSReq,
	codec.Project(kdcReqFields, func(r *TGSReq) *KDCReq { return &r.KDCReq })...)

var kdcRepFields = []codec.Field[KDCRep]{
	codec.Required(0, "pvno", int32Codec, func(k *KDCRep) *int32 { return &k.PVNO }),
	codec.Required(1, "msg-type", messageTypeCodec, func(k *KDCRep) *MessageType { return &k.MsgType }),
	codec.OptionalList(2, "padata", MethodDataCodec, func(k *KDCRep) *MethodData { return &k.PAData }),
	codec.Required(3, "crealm", realm, func(k *KDCRep) *string { return &k.CRealm }),
	codec.Required(4, "cname", PrincipalNameGrammar, func(k *KDCRep) *PrincipalName { return &k.CName }),
	codec.Required(5, "ticket", TicketGrammar, func(k *KDCRep) *Ticket { return &k.Ticket }),
	codec.Required(6, "enc-part", EncryptedDataGrammar, func(k *KDCRep) *EncryptedData { return &k.EncPart }),
}

var ASRepGrammar = codec.NewApplication("AS-REP", AppASRep,
	codec.Project(kdcRepFields, func(r *ASRep) *KDCRep { return &r.KDCRep })...)

var TGSRepGrammar = codec.NewApplication("TGS-REP", AppTGSRep,
	codec.Project(kdcRepFields, func(r *TGSRep) *KDCRep { return &r.KDCRep })...)

var encKDCRepPartFields = []codec.Field[EncKDCRepPart]{
	codec.Required(0, "key", EncryptionKeyGrammar, func(e *EncKDCRepPart) *EncryptionKey { return &e.Key }),
	codec.Required(1, "last-req", LastReqCodec, func(e *EncKDCRepPart) *LastReq { return &e.LastReq }),
	codec.Required(2, "nonce", uint32Codec, func(e *EncKDCRepPart) *uint32 { return &e.Nonce }),
	codec.Optional(3, "key-expiration", kerberosTime, func(e *EncKDCRepPart) **time.Time { return &e.KeyExpiration }),
	codec.Required(4, "flags", kerberosFlags, func(e *EncKDCRepPart) *KerberosFlags { return &e.Flags }),
	codec.Required(5, "authtime", kerberosTime, func(e *EncKDCRepPart) *time.Time { return &e.AuthTime }),
	codec.Optional(6, "starttime", kerberosTime, func(e *EncKDCRepPart) **time.Time { return &e.StartTime }),
	codec.Required(7, "endtime", kerberosTime, func(e *EncKDCRepPart) *time.Time { return &e.EndTime }),
	codec.Optional(8, "renew-till", kerberosTime, func(e *EncKDCRepPart) **time.Time { return &e.RenewTill }),
	codec.Required(9, "srealm", realm, func(e *EncKDCRepPart) *string { return &e.SRealm }),
	codec.Required(10, "sname", PrincipalNameGrammar, func(e *EncKDCRepPart) *PrincipalName { return &e.SName }),
	codec.OptionalList(11, "caddr", HostAddressesCodec, func(e *EncKDCRepPart) *HostAddresses { return &e.CAddr }),
}

var EncASRepPartGrammar = codec.NewApplication("EncASRepPart", AppEncASRepPart,
	codec.Project(encKDCRepPartFields, func(e *EncASRepPart) *EncKDCRepPart { return &e.EncKDCRepPart })...)

var EncTGSRepPartGrammar = codec.NewApplication("EncTGSRepPart", AppEncTGSRepPart,
	codec.Project(encKDCRepPartFields, func(e *EncTGSRepPart) *EncKDCRepPart { return &e.EncKDCRepPart })...)

var APReqGrammar = codec.NewApplication("AP-REQ", AppAPReq,
	codec.Required(0, "pvno", int32Codec, func(a *APReq) *int32 { return &a.PVNO }),
	codec.Required(1, "msg-type", messageTypeCodec, func(a *APReq) *MessageType { return &a.MsgType }),
	codec.Required(2, "ap-options", kerberosFlags, func(a *APReq) *KerberosFlags { return &a.APOptions }),
	codec.Required(3, "ticket", TicketGrammar, func(a *APReq) *Ticket { return &a.Ticket }),
	codec.Required(4, "authenticator", EncryptedDataGrammar, func(a *APReq) *EncryptedData { return &a.Authenticator }),
)

var APRepGrammar = codec.NewApplication("AP-REP", AppAPRep,
	codec.Required(0, "pvno", int32Codec, func(a *APRep) *int32 { return &a.PVNO }),
	codec.Required(1, "msg-type", messageTypeCodec, func(a *APRep) *MessageType { return &a.MsgType }),
	codec.Required(2, "enc-part", EncryptedDataGrammar, func(a *APRep) *EncryptedData { return &a.EncPart }),
)

var EncAPRepPartGrammar = codec.NewApplication("EncAPRepPart", AppEncAPRepPart,
	codec.Required(0, "ctime", kerberosTime, func(e *EncAPRepPart) *time.Time { return &e.CTime }),
	codec.Required(1, "cusec", microseconds, func(e *EncAPRepPart) *int32 { return &e.CUSec }),
	codec.Optional(2, "subkey", EncryptionKeyGrammar, func(e *EncAPRepPart) **EncryptionKey { return &e.Subkey }),
	codec.Optional(3, "seq-number", uint32Codec, func(e *EncAPRepPart) **uint32 { return &e.SeqNumber }),
)

var safeBodyFields = []codec.Field[KRBSafeBody]{
	codec.Required(0, "user-data", octetString, func(k *KRBSafeBody) *[]byte { return &k.UserData }),
	codec.Optional(1, "timestamp", kerberosTime, func(k *KRBSafeBody) **time.Time { return &k.Timestamp }),
	codec.Optional(2, "usec", microseconds, func(k *KRBSafeBody) **int32 { return &k.USec }),
	codec.Optional(3, "seq-number", uint32Codec, func(k *KRBSafeBody) **uint32 { return &k.SeqNumber }),
	codec.Required(4, "s-address", HostAddressGrammar, func(k *KRBSafeBody) *HostAddress { return &k.SAddress }),
	codec.Optional(5, "r-address", HostAddressGrammar, func(k *KRBSafeBody) **HostAddress { return &k.RAddress }),
}

var KRBSafeBodyGrammar = codec.NewGrammar("KRB-SAFE-BODY", safeBodyFields...)

var KRBSafeGrammar = codec.NewApplication("KRB-SAFE", AppKRBSafe,
	codec.Required(0, "pvno", int32Codec, func(k *KRBSafe) *int32 { return &k.PVNO }),
	codec.Required(1, "msg-type", messageTypeCodec, func(k *KRBSafe) *MessageType { return &k.MsgType }),
	codec.Required(2, "safe-body", KRBSafeBodyGrammar, func(k *KRBSafe) *KRBSafeBody { return &k.SafeBody }),
	codec.Required(3, "cksum", ChecksumGrammar, func(k *KRBSafe) *Checksum { return &k.Cksum }),
)

// KRB-PRIV has no field [2].
var KRBPrivGrammar = codec.NewApplication("KRB-PRIV", AppKRBPriv,
	codec.Required(0, "pvno", int32Codec, func(k *KRBPriv) *int32 { return &k.PVNO }),
	codec.Required(1, "msg-type", messageTypeCodec, func(k *KRBPriv) *MessageType { return &k.MsgType }),
	codec.Required(3, "enc-part", EncryptedDataGrammar, func(k *KRBPriv) *EncryptedData { return &k.EncPart }),
)

var EncKrbPrivPartGrammar = codec.NewApplication("EncKrbPrivPart", AppEncKrbPrivPart,
	codec.Project(safeBodyFields, func(e *EncKrbPrivPart) *KRBSafeBody { return &e.KRBSafeBody })...)

var KRBCredGrammar = codec.NewApplication("KRB-CRED", AppKRBCred,
	codec.Required(0, "pvno", int32Codec, func(k *KRBCred) *int32 { return &k.PVNO }),
	codec.Required(1, "msg-type", messageTypeCodec, func(k *KRBCred) *MessageType { return &k.MsgType }),
	codec.Required(2, "tickets", ticketList, func(k *KRBCred) *[]Ticket { return &k.Tickets }),
	codec.Required(3, "enc-part", EncryptedDataGrammar, func(k *KRBCred) *EncryptedData { return &k.EncPart }),
)

var KrbCredInfoGrammar = codec.NewGrammar("KrbCredInfo",
	codec.Required(0, "key", EncryptionKeyGrammar, func(k *KrbCredInfo) *EncryptionKey { return &k.Key }),
	codec.Optional(1, "prealm", realm, func(k *KrbCredInfo) **string { return &k.PRealm }),
	codec.Optional(2, "pname", PrincipalNameGrammar, func(k *KrbCredInfo) **PrincipalName { return &k.PName }),
	codec.Optional(3, "flags", kerberosFlags, func(k *KrbCredInfo) **KerberosFlags { return &k.Flags }),
	codec.Optional(4, "authtime", kerberosTime, func(k *KrbCredInfo) **time.Time { return &k.AuthTime }),
	codec.Optional(5, "starttime", kerberosTime, func(k *KrbCredInfo) **time.Time { return &k.StartTime }),
	codec.Optional(6, "endtime", kerberosTime, func(k *KrbCredInfo) **time.Time { return &k.EndTime }),
	codec.Optional(7, "renew-till", kerberosTime, func(k *KrbCredInfo) **time.Time { return &k.RenewTill }),
	codec.Optional(8, "srealm", realm, func(k *KrbCredInfo) **string { return &k.SRealm }),
	codec.Optional(9, "sname", PrincipalNameGrammar, func(k *KrbCredInfo) **PrincipalName { return &k.SName }),
	codec.OptionalList(10, "caddr", HostAddressesCodec, func(k *KrbCredInfo) *HostAddresses { return &k.CAddr }),
)

var EncKrbCredPartGrammar = codec.NewApplication("EncKrbCredPart", AppEncKrbCredPart,
	codec.Required(0, "ticket-info", codec.SequenceOf[[]KrbCredInfo]("SEQUENCE OF KrbCredInfo", KrbCredInfoGrammar),
		func(e *EncKrbCredPart) *[]KrbCredInfo { return &e.TicketInfo }),
	codec.Optional(1, "nonce", uint32Codec, func(e *EncKrbCredPart) **uint32 { return &e.Nonce }),
	codec.Optional(2, "timestamp", kerberosTime, func(e *EncKrbCredPart) **time.Time { return &e.Timestamp }),
	codec.Optional(3, "usec", microseconds, func(e *EncKrbCredPart) **int32 { return &e.USec }),
	codec.Optional(4, "s-address", HostAddressGrammar, func(e *EncKrbCredPart) **HostAddress { return &e.SAddress }),
	codec.Optional(5, "r-address", HostAddressGrammar, func(e *EncKrbCredPart) **HostAddress { return &e.RAddress }),
)

var KRBErrorGrammar = codec.NewApplication("KRB-ERROR", AppKRBError,
	codec.Required(0, "pvno", int32Codec, func(k *KRBError) *int32 { return &k.PVNO }),
	codec.Required(1, "msg-type", messageTypeCodec, func(k *KRBError) *MessageType { return &k.MsgType }),
	codec.Optional(2, "ctime", kerberosTime, func(k *KRBError) **time.Time { return &k.CTime }),
	codec.Optional(3, "cusec", microseconds, func(k *KRBError) **int32 { return &k.CUSec }),
	codec.Required(4, "stime", kerberosTime, func(k *KRBError) *time.Time { return &k.STime }),
	codec.Required(5, "susec", microseconds, func(k *KRBError) *int32 { return &k.SUSec }),
	codec.Required(6, "error-code", errorCodeCodec, func(k *KRBError) *ErrorCode { return &k.ErrorCode }),
	codec.Optional(7, "crealm", realm, func(k *KRBError) **string { return &k.CRealm }),
	codec.Optional(8, "cname", PrincipalNameGrammar, func(k *KRBError) **PrincipalName { return &k.CName }),
	codec.Required(9, "realm", realm, func(k *KRBError) *string { return &k.Realm }),
	codec.Required(10, "sname", PrincipalNameGrammar, func(k *KRBError) *PrincipalName { return &k.SName }),
	codec.Optional(11, "e-text", kerberosString, func(k *KRBError) **string { return &k.EText }),
	codec.OptionalBytes(12, "e-data", func(k *KRBError) *[]byte { return &k.EData }),
)
