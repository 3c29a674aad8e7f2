package der

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// EncryptedData { etype 18, cipher "abcdef" }
const encryptedDataHex = "30 0F A0 03 02 01 12 A2 08 04 06 61 62 63 64 65 66"

func TestTLV(t *testing.T) {
	tlv := TLV(Hex2bytes(encryptedDataHex))
	require.NoError(t, tlv.Valid())
	assert.Equal(t, TagSequence, tlv.Tag())
	assert.Equal(t, 15, tlv.Len())
	assert.Equal(t, 17, tlv.FullLen())
	assert.Len(t, tlv.Value(), 15)
	assert.Nil(t, tlv.Next())

	inner := TLV(tlv.Value())
	assert.Equal(t, Context(0), inner.Tag())
	next := inner.Next()
	assert.Equal(t, Context(2), next.Tag())
	assert.Equal(t, []byte("abcdef"), TLV(next.Value()).Value())

	truncated := TLV(Hex2bytes(encryptedDataHex)[:10])
	assert.Equal(t, ErrBufferUnderrun, truncated.Valid())
	assert.Nil(t, truncated.Next())
	assert.Len(t, truncated.Value(), 8)

	huge := TLV(Hex2bytes("04 84 7F FF FF EF 61 62"))
	assert.Equal(t, ErrBufferUnderrun, huge.Valid())
	assert.Equal(t, MaxLength, huge.Len())
	assert.Equal(t, []byte("ab"), huge.Value())
	assert.Nil(t, huge.Next())
}

func TestPrint(t *testing.T) {
	buf := &bytes.Buffer{}
	err := Print(buf, "", Hex2bytes(encryptedDataHex))
	require.NoError(t, err)
	assert.Equal(t, `SEQUENCE (15):
  [0] (3):
    INTEGER (1): 18
  [2] (8):
    OCTET STRING (6): 0x616263646566`, buf.String())

	buf.Reset()
	err = Print(buf, "", Hex2bytes("30 0B A1 09 1B 07 45 58 41 4D 50"))
	assert.Equal(t, ErrBufferUnderrun, err)
	assert.Equal(t, "SEQUENCE (11): (buffer underrun) 0xa1091b074558414d50", buf.String())

	buf.Reset()
	err = Print(buf, "", Hex2bytes("1B 03 E9 74 E9"))
	require.NoError(t, err)
	assert.Equal(t, `GeneralString (3): "été"`, buf.String())

	buf.Reset()
	err = Print(buf, "", Hex2bytes("A5 11 18 0F 32 30 32 34 30 33 31 35 31 32 33 30 34 35 5A"))
	require.NoError(t, err)
	assert.Equal(t, "[5] (17):\n  GeneralizedTime (15): 2024-03-15T12:30:45Z", buf.String())
}

func TestPrintPrettyHex(t *testing.T) {
	buf := &bytes.Buffer{}
	err := PrintPrettyHex(buf, "", "  ", Hex2bytes(encryptedDataHex))
	require.NoError(t, err)
	assert.Equal(t, `30 | 0f
  a0 | 03
    02 | 01 | 12
  a2 | 08
    04 | 06 | 616263646566`, buf.String())

	// Should tolerate an invalid header
	buf.Reset()
	err = PrintPrettyHex(buf, "", "  ", Hex2bytes("30 80 00 00"))
	require.NoError(t, err)
	assert.Equal(t, `30800000`, buf.String())

	// Should tolerate a truncated value with a valid header
	buf.Reset()
	err = PrintPrettyHex(buf, "", "  ", Hex2bytes("04 06 61 62 63"))
	require.NoError(t, err)
	assert.Equal(t, "04 | 06\n616263", buf.String())
}

func TestParseHex(t *testing.T) {
	b, err := ParseHex("30 0f | a0:03")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x30, 0x0f, 0xa0, 0x03}, b)

	_, err = ParseHex("30 0")
	assert.Error(t, err)
}
