package krb5

import (
	"encoding/json"
	"testing"

	"github.com/gemalto/krb5-go/der"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumString(t *testing.T) {
	tests := []struct {
		in  interface{ String() string }
		out string
	}{
		{ETypeAES256CTSHMACSHA196, "aes256-cts-hmac-sha1-96"},
		{ETypeRC4HMAC, "rc4-hmac"},
		{EncryptionType(99), "UNKNOWN(99)"},
		{EncryptionType(-135), "UNKNOWN(-135)"},
		{NameTypeSrvInst, "KRB_NT_SRV_INST"},
		{AddressTypeIPv4, "IPv4"},
		{MessageTypeError, "KRB_ERROR"},
		{PADataTypeEncTimestamp, "PA-ENC-TIMESTAMP"},
		{ADTypeIfRelevant, "AD-IF-RELEVANT"},
		{ChecksumTypeHMACSHA196AES256, "hmac-sha1-96-aes256"},
		{ErrorCodePreauthRequired, "KDC_ERR_PREAUTH_REQUIRED"},
		{ErrorCode(1000), "UNKNOWN(1000)"},
	}
	for _, tc := range tests {
		t.Run(tc.out, func(t *testing.T) {
			assert.Equal(t, tc.out, tc.in.String())
		})
	}
}

func TestParseEncryptionType(t *testing.T) {
	tests := []struct {
		in  string
		out EncryptionType
	}{
		{"aes256-cts-hmac-sha1-96", ETypeAES256CTSHMACSHA196},
		{"AES256_CTS_HMAC_SHA1_96", ETypeAES256CTSHMACSHA196},
		{"aes256-cts", ETypeAES256CTSHMACSHA196},
		{"arcfour-hmac", ETypeRC4HMAC},
		{"18", ETypeAES256CTSHMACSHA196},
		{"0x12", ETypeAES256CTSHMACSHA196},
		{"UNKNOWN(99)", EncryptionType(99)},
		{"-135", EncryptionType(-135)},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			e, err := ParseEncryptionType(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.out, e)
		})
	}

	for _, in := range []string{"", "aes512", "0xZZ", "UNKNOWN(x)", "0x0102030405"} {
		_, err := ParseEncryptionType(in)
		assert.True(t, Is(err, der.ErrInvalidValue), "%q: %v", in, err)
	}
}

func TestEnumText(t *testing.T) {
	type sample struct {
		EType     EncryptionType `json:"etype"`
		NameType  NameType       `json:"nameType"`
		ErrorCode ErrorCode      `json:"errorCode"`
		Unknown   AddressType    `json:"unknown"`
	}
	in := sample{ETypeAES128CTSHMACSHA196, NameTypePrincipal, ErrorCodeSkew, AddressType(77)}

	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"etype":"aes128-cts-hmac-sha1-96","nameType":"KRB_NT_PRINCIPAL","errorCode":"KRB_AP_ERR_SKEW","unknown":"UNKNOWN(77)"}`, string(b))

	var out sample
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)

	var nt NameType
	assert.Error(t, nt.UnmarshalText([]byte("KRB_NT_NOPE")))
}

func TestEnumKnown(t *testing.T) {
	assert.True(t, ETypeAES256CTSHMACSHA196.Known())
	assert.False(t, EncryptionType(99).Known())
	assert.True(t, MessageTypeASReq.Known())
	assert.False(t, MessageType(0).Known())

	etypes := EncryptionTypes()
	require.NotEmpty(t, etypes)
	for i := 1; i < len(etypes); i++ {
		assert.Less(t, etypes[i-1], etypes[i])
	}
	assert.Contains(t, etypes, ETypeCamellia256CTSCMAC)
}

func TestErrorCodeDescription(t *testing.T) {
	assert.Contains(t, ErrorCodePreauthRequired.Description(), "KDC_ERR_PREAUTH_REQUIRED")
	assert.Contains(t, ErrorCodeSkew.Description(), "KRB_AP_ERR_SKEW")
}

// Enumerated values outside the registries survive a round trip unchanged.
func TestEnumUnknownOnTheWire(t *testing.T) {
	b := der.Hex2bytes("30 0C | A0 03 02 01 63 | A1 05 04 03 01 02 03")
	var h HostAddress
	require.NoError(t, h.Unmarshal(b))
	assert.Equal(t, AddressType(99), h.AddrType)
	assert.Equal(t, "UNKNOWN(99)", h.AddrType.String())

	out, err := h.Marshal()
	require.NoError(t, err)
	assert.Equal(t, b, out)
}
