package krb5_test

import (
	"fmt"
	"time"

	"github.com/gemalto/krb5-go"
	"github.com/gemalto/krb5-go/codec"
	"github.com/gemalto/krb5-go/der"
)

func Example_unmarshal() {
	b := der.Hex2bytes("30 0F | A0 03 02 01 12 | A2 08 04 06 61 62 63 64 65 66")

	ed, err := codec.Unmarshal(krb5.EncryptedDataGrammar, b)
	if err != nil {
		panic(err)
	}
	fmt.Println(ed.EType, ed.Kvno == nil, string(ed.Cipher))

	// Output:
	// aes256-cts-hmac-sha1-96 true abcdef
}

func Example_streaming() {
	b, err := krb5.MarshalMessage(&krb5.KRBError{
		PVNO:      5,
		MsgType:   krb5.MessageTypeError,
		STime:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		ErrorCode: krb5.ErrorCodePreauthRequired,
		Realm:     "EXAMPLE.COM",
		SName:     krb5.PrincipalName{NameType: krb5.NameTypeSrvInst, NameString: []string{"krbtgt", "EXAMPLE.COM"}},
	})
	if err != nil {
		panic(err)
	}

	// feed the PDU in 8 byte fragments, as if read from a socket
	d := krb5.NewMessageDecoder(codec.DefaultConfig())
	for len(b) > 0 {
		n := min(8, len(b))
		state, err := d.Decode(b[:n])
		if err != nil {
			panic(err)
		}
		b = b[n:]
		if state != codec.StatePending {
			fmt.Println(state)
		}
	}

	krbErr := d.Message().(*krb5.KRBError)
	fmt.Println(krb5.MessageName(d.ApplicationTag()), krbErr.ErrorCode, krbErr.SName.NameString)

	// Output:
	// COMPLETE
	// KRB-ERROR KDC_ERR_PREAUTH_REQUIRED [krbtgt EXAMPLE.COM]
}

func Example_errors() {
	// a KRB-ERROR with an empty body
	_, err := krb5.DecodeMessage(der.Hex2bytes("7E 02 30 00"))
	fmt.Println(der.KindOf(err))

	_, err = krb5.DecodeMessage(der.Hex2bytes("7E 02 30"))
	fmt.Println(der.KindOf(err))

	_, err = krb5.DecodeMessage(der.Hex2bytes("30 00"))
	fmt.Println(der.KindOf(err))

	// Output:
	// MISSING_MANDATORY_FIELD
	// BUFFER_UNDERRUN
	// UNKNOWN_MESSAGE_TYPE
}
