package metrics

import (
	"testing"

	"github.com/gemalto/krb5-go"
	"github.com/gemalto/krb5-go/codec"
	"github.com/gemalto/krb5-go/der"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	m := New("test", reg)
	cfg := codec.DefaultConfig()
	cfg.Observer = m

	ed := krb5.EncryptedData{EType: krb5.ETypeAES256CTSHMACSHA196, Cipher: []byte("abcdef")}
	b, err := ed.Marshal()
	require.NoError(t, err)

	_, err = codec.UnmarshalConfig(krb5.EncryptedDataGrammar, b, cfg)
	require.NoError(t, err)
	_, err = codec.UnmarshalConfig(krb5.EncryptedDataGrammar, []byte{0x30, 0x00}, cfg)
	require.Error(t, err)
	_, err = krb5.DecodeMessageConfig([]byte{0x30, 0x00}, cfg)
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DecodesTotal.WithLabelValues("EncryptedData", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DecodesTotal.WithLabelValues("EncryptedData", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DecodeErrors.WithLabelValues("EncryptedData", der.KindMissingMandatoryField.String())))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DecodeErrors.WithLabelValues("unknown", der.KindUnknownMessageType.String())))
	assert.Equal(t, 2, testutil.CollectAndCount(m.PDUSize))

	problems, err := testutil.GatherAndLint(reg)
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestNew_duplicate(t *testing.T) {
	reg := prometheus.NewRegistry()
	New("dup", reg)
	assert.Panics(t, func() { New("dup", reg) })
}
