package krb5

import (
	"testing"
	"time"

	"github.com/gemalto/krb5-go/der"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uint32p(i uint32) *uint32 { return &i }
func int32p(i int32) *int32    { return &i }
func strp(s string) *string    { return &s }
func timep(t time.Time) *time.Time {
	return &t
}

var (
	t0 = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	t1 = t0.Add(10 * time.Hour)
)

// hex fixtures
const (
	andOrHex = "30 2B | A0 03 02 01 02 | A1 24 30 22" +
		"| 30 0F A0 03 02 01 01 A1 08 04 06 61 62 63 64 65 66" +
		"| 30 0F A0 03 02 01 01 A1 08 04 06 67 68 69 6A 6B 6C"
	encryptedDataHex = "30 0F | A0 03 02 01 12 | A2 08 04 06 61 62 63 64 65 66"
	principalHex     = "30 18 | A0 03 02 01 01 | A1 11 30 0F 1B 03 66 6F 6F 1B 03 62 61 72 1B 03 62 61 7A"
	hostAddressesHex = "30 42" +
		"| 30 14 A0 03 02 01 02 A1 0D 04 0B 31 39 32 2E 31 36 38 2E 30 2E 31" +
		"| 30 14 A0 03 02 01 02 A1 0D 04 0B 31 39 32 2E 31 36 38 2E 30 2E 32" +
		"| 30 14 A0 03 02 01 02 A1 0D 04 0B 31 39 32 2E 31 36 38 2E 30 2E 33"
)

func TestADAndOr(t *testing.T) {
	b := der.Hex2bytes(andOrHex)
	require.Len(t, b, 0x2D)

	var a ADAndOr
	require.NoError(t, a.Unmarshal(b))
	assert.Equal(t, int32(2), a.ConditionCount)
	assert.Equal(t, AuthorizationData{
		{ADType: ADTypeIfRelevant, ADData: []byte("abcdef")},
		{ADType: ADTypeIfRelevant, ADData: []byte("ghijkl")},
	}, a.Elements)

	out, err := a.Marshal()
	require.NoError(t, err)
	assert.Equal(t, b, out)
}

func TestEncryptedData_noKvno(t *testing.T) {
	b := der.Hex2bytes(encryptedDataHex)
	require.Len(t, b, 0x11)

	var e EncryptedData
	require.NoError(t, e.Unmarshal(b))
	assert.Equal(t, ETypeAES256CTSHMACSHA196, e.EType)
	assert.False(t, e.HasKvno())
	assert.Equal(t, []byte("abcdef"), e.Cipher)

	out, err := e.Marshal()
	require.NoError(t, err)
	assert.Equal(t, b, out)

	e.Kvno = uint32p(3)
	out, err = e.Marshal()
	require.NoError(t, err)
	assert.Equal(t, der.Hex2bytes("30 14 | A0 03 02 01 12 | A1 03 02 01 03 | A2 08 04 06 61 62 63 64 65 66"), out)
}

func TestPrincipalName(t *testing.T) {
	b := der.Hex2bytes(principalHex)

	var p PrincipalName
	require.NoError(t, p.Unmarshal(b))
	assert.Equal(t, NameTypePrincipal, p.NameType)
	assert.Equal(t, []string{"foo", "bar", "baz"}, p.NameString)

	out, err := p.Marshal()
	require.NoError(t, err)
	assert.Equal(t, b, out)

	n := NewPrincipalName(NameTypePrincipal, "foo", "bar", "baz")
	out, err = n.Marshal()
	require.NoError(t, err)
	assert.Equal(t, b, out)
}

func TestHostAddresses(t *testing.T) {
	b := der.Hex2bytes(hostAddressesHex)
	require.Len(t, b, 0x44)

	var h HostAddresses
	require.NoError(t, h.Unmarshal(b))
	require.Len(t, h, 3)
	for i, a := range h {
		assert.Equal(t, AddressTypeIPv4, a.AddrType)
		assert.Equal(t, "192.168.0."+string(rune('1'+i)), string(a.Address))
	}

	out, err := h.Marshal()
	require.NoError(t, err)
	assert.Equal(t, b, out)
}

type unmarshaler interface {
	Unmarshal(b []byte) error
}

func TestEmptySequence(t *testing.T) {
	tests := []struct {
		name string
		v    unmarshaler
	}{
		{"PrincipalName", &PrincipalName{}},
		{"HostAddress", &HostAddress{}},
		{"EncryptedData", &EncryptedData{}},
		{"EncryptionKey", &EncryptionKey{}},
		{"Checksum", &Checksum{}},
		{"AD-AND-OR", &ADAndOr{}},
		{"AD-KDCIssued", &ADKDCIssued{}},
		{"AD-INTENDED-FOR-SERVER", &ADIntendedForServer{}},
		{"AD-INTENDED-FOR-APPLICATION-CLASS", &ADIntendedForApplicationClass{}},
		{"PA-DATA", &PAData{}},
		{"PA-ENC-TS-ENC", &PAEncTSEnc{}},
		{"KERB-PA-PAC-REQUEST", &PAPACRequest{}},
		{"TransitedEncoding", &TransitedEncoding{}},
		{"ChangePasswdData", &ChangePasswdData{}},
		{"KDC-REQ-BODY", &KDCReqBody{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.v.Unmarshal([]byte{0x30, 0x00})
			require.Error(t, err)
			assert.Equal(t, der.KindMissingMandatoryField, KindOf(err), Details(err))
		})
	}
}

func TestEmptyMessage(t *testing.T) {
	for _, tag := range MessageTags() {
		t.Run(MessageName(tag), func(t *testing.T) {
			m, err := DecodeMessage([]byte{0x60 | byte(tag), 0x02, 0x30, 0x00})
			require.Error(t, err)
			assert.Nil(t, m)
			assert.Equal(t, der.KindMissingMandatoryField, KindOf(err), Details(err))
			assert.Equal(t, tag, GetApplicationTag(err))

			// the application element itself may not be empty either
			_, err = DecodeMessage([]byte{0x60 | byte(tag), 0x00})
			assert.Equal(t, der.KindMissingMandatoryField, KindOf(err), Details(err))
		})
	}
}

func TestZeroLengthFields(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		kind der.Kind
		exp  *EncryptedData
	}{
		{
			name: "empty optional integer",
			hex:  "30 0F | A0 03 02 01 12 | A1 02 02 00 | A2 04 04 02 61 62",
			exp:  &EncryptedData{EType: ETypeAES256CTSHMACSHA196, Cipher: []byte("ab")},
		},
		{
			name: "empty optional tag",
			hex:  "30 0D | A0 03 02 01 12 | A1 00 | A2 04 04 02 61 62",
			exp:  &EncryptedData{EType: ETypeAES256CTSHMACSHA196, Cipher: []byte("ab")},
		},
		{
			name: "empty cipher",
			hex:  "30 09 | A0 03 02 01 12 | A2 02 04 00",
			exp:  &EncryptedData{EType: ETypeAES256CTSHMACSHA196, Cipher: []byte{}},
		},
		{name: "empty mandatory integer", hex: "30 08 | A0 02 02 00 | A2 02 04 00", kind: der.KindEmptyMandatoryValue},
		{name: "empty mandatory tag", hex: "30 06 | A0 00 | A2 02 04 00", kind: der.KindEmptyMandatoryValue},
		{name: "missing cipher", hex: "30 05 | A0 03 02 01 12", kind: der.KindMissingMandatoryField},
		{name: "missing etype", hex: "30 04 | A2 02 04 00", kind: der.KindMissingMandatoryField},
		{name: "wrong universal tag", hex: "30 09 | A0 03 04 01 12 | A2 02 04 00", kind: der.KindTagMismatch},
		{name: "fields out of order", hex: "30 09 | A2 02 04 00 | A0 03 02 01 12", kind: der.KindMissingMandatoryField},
		{name: "unknown field", hex: "30 0C | A0 03 02 01 12 | A2 02 04 00 | A3 01 00", kind: der.KindTagMismatch},
		{name: "child overruns parent", hex: "30 08 | A0 03 02 01 12 | A2 04 04 02 61", kind: der.KindLengthMismatch},
		{name: "indefinite length", hex: "30 80 | A0 03 02 01 12 | A2 02 04 00 00 00", kind: der.KindLengthMismatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var e EncryptedData
			err := e.Unmarshal(der.Hex2bytes(tc.hex))
			if tc.exp == nil {
				require.Error(t, err)
				assert.Equal(t, tc.kind, KindOf(err), Details(err))
				return
			}
			require.NoError(t, err, Details(err))
			assert.Equal(t, tc.exp, &e)
		})
	}
}

func TestPAData_noFieldZero(t *testing.T) {
	var p PAData
	err := p.Unmarshal(der.Hex2bytes("30 0B | A0 03 02 01 02 | A2 04 04 02 01 02"))
	assert.Equal(t, der.KindTagMismatch, KindOf(err), Details(err))

	p = PAData{PADataType: PADataTypeEncTimestamp, PADataValue: []byte{1, 2}}
	b, err := p.Marshal()
	require.NoError(t, err)
	assert.Equal(t, der.Hex2bytes("30 0B | A1 03 02 01 02 | A2 04 04 02 01 02"), b)
}

func TestIntegerRange(t *testing.T) {
	// kvno is UInt32: negative values are rejected
	var e EncryptedData
	err := e.Unmarshal(der.Hex2bytes("30 0E | A0 03 02 01 12 | A1 03 02 01 FF | A2 02 04 00"))
	assert.Equal(t, der.KindInvalidValue, KindOf(err), Details(err))

	// 0xFFFFFFFF needs a leading zero octet
	e = EncryptedData{EType: ETypeAES256CTSHMACSHA196, Kvno: uint32p(0xFFFFFFFF), Cipher: []byte{}}
	b, err := e.Marshal()
	require.NoError(t, err)
	assert.Equal(t, der.Hex2bytes("30 12 | A0 03 02 01 12 | A1 07 02 05 00 FF FF FF FF | A2 02 04 00"), b)
	var out EncryptedData
	require.NoError(t, out.Unmarshal(b))
	assert.Equal(t, e, out)

	// negative etypes are legal
	e = EncryptedData{EType: -128, Cipher: []byte{}}
	b, err = e.Marshal()
	require.NoError(t, err)
	assert.Equal(t, der.Hex2bytes("30 09 | A0 03 02 01 80 | A2 02 04 00"), b)
}

func TestMarshal_missing(t *testing.T) {
	tests := []struct {
		name string
		v    interface{ Marshal() ([]byte, error) }
	}{
		{"principal without components", &PrincipalName{NameType: NameTypePrincipal}},
		{"encrypted data without cipher", &EncryptedData{EType: ETypeRC4HMAC}},
		{"ticket without realm", &Ticket{TktVNO: 5, SName: NewPrincipalName(NameTypeSrvInst, "krbtgt", "A"), EncPart: EncryptedData{Cipher: []byte{1}}}},
		{"and-or without elements", &ADAndOr{ConditionCount: 1}},
		{"kdc-req-body without etypes", &KDCReqBody{Realm: "A", Till: t0}},
		{"kdc-req-body without till", &KDCReqBody{Realm: "A", EType: []EncryptionType{ETypeRC4HMAC}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.v.Marshal()
			require.Error(t, err)
			assert.Equal(t, der.KindMissingMandatoryField, KindOf(err), Details(err))
		})
	}
}
