package krb5

import (
	"testing"

	"github.com/jcmturner/gokrb5/v8/messages"
	"github.com/jcmturner/gokrb5/v8/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests check wire compatibility with gokrb5, whose encoder is built on
// reflection over gofork's encoding/asn1.

func TestInterop_encryptedData(t *testing.T) {
	ours := EncryptedData{EType: ETypeAES256CTSHMACSHA196, Kvno: uint32p(3), Cipher: []byte("abcdef")}
	b, err := ours.Marshal()
	require.NoError(t, err)

	var theirs types.EncryptedData
	require.NoError(t, theirs.Unmarshal(b))
	assert.Equal(t, int32(ETypeAES256CTSHMACSHA196), theirs.EType)
	assert.Equal(t, 3, theirs.KVNO)
	assert.Equal(t, []byte("abcdef"), theirs.Cipher)

	tb, err := theirs.Marshal()
	require.NoError(t, err)
	assert.Equal(t, b, tb)

	// gokrb5 leaves a zero kvno off the wire
	theirs.KVNO = 0
	tb, err = theirs.Marshal()
	require.NoError(t, err)
	var back EncryptedData
	require.NoError(t, back.Unmarshal(tb))
	assert.False(t, back.HasKvno())
	assert.Equal(t, theirs.Cipher, back.Cipher)
}

func TestInterop_ticket(t *testing.T) {
	theirs := messages.Ticket{
		TktVNO: 5,
		Realm:  realmName,
		SName:  types.PrincipalName{NameType: int32(NameTypeSrvInst), NameString: []string{"krbtgt", realmName}},
		EncPart: types.EncryptedData{
			EType:  int32(ETypeAES256CTSHMACSHA196),
			KVNO:   2,
			Cipher: []byte{0xde, 0xad, 0xbe, 0xef},
		},
	}
	tb, err := theirs.Marshal()
	require.NoError(t, err)

	var ours Ticket
	require.NoError(t, ours.Unmarshal(tb))
	assert.Equal(t, sampleTicket(), ours)

	b, err := ours.Marshal()
	require.NoError(t, err)
	assert.Equal(t, tb, b)

	var again messages.Ticket
	require.NoError(t, again.Unmarshal(b))
	assert.Equal(t, theirs.SName, again.SName)
	assert.Equal(t, theirs.EncPart, again.EncPart)
}

func TestInterop_krbError(t *testing.T) {
	ours := KRBError{
		PVNO:      5,
		MsgType:   MessageTypeError,
		CTime:     timep(t0),
		STime:     t1,
		SUSec:     42,
		ErrorCode: ErrorCodePreauthRequired,
		CRealm:    strp(realmName),
		CName:     &PrincipalName{NameType: NameTypePrincipal, NameString: []string{"alice"}},
		Realm:     realmName,
		SName:     NewPrincipalName(NameTypeSrvInst, "krbtgt", realmName),
		EText:     strp("NEEDED_PREAUTH"),
		EData:     []byte{0x30, 0x00},
	}
	b, err := ours.Marshal()
	require.NoError(t, err)

	var theirs messages.KRBError
	require.NoError(t, theirs.Unmarshal(b))
	assert.Equal(t, int32(ErrorCodePreauthRequired), theirs.ErrorCode)
	assert.Equal(t, "NEEDED_PREAUTH", theirs.EText)
	assert.Equal(t, realmName, theirs.Realm)
	assert.Equal(t, []string{"krbtgt", realmName}, theirs.SName.NameString)
	assert.True(t, t1.Equal(theirs.STime))
	assert.Equal(t, 42, theirs.Susec)
	assert.Equal(t, []byte{0x30, 0x00}, theirs.EData)

	m, err := DecodeMessage(b)
	require.NoError(t, err)
	assert.Equal(t, &ours, m)
}
