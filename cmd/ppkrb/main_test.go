package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gemalto/krb5-go"
	"github.com/gemalto/krb5-go/codec"
	"github.com/gemalto/krb5-go/der"
	"github.com/gemalto/krb5-go/ldap"
	"github.com/gemalto/krb5-go/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("", filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
	assert.Equal(t, codec.DefaultMaxPDUSize, cfg.codecConfig().MaxPDUSize)

	dir := t.TempDir()
	path := filepath.Join(dir, "ppkrb.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
output = "PrettyHex"
indent = "\t"
max_pdu_size = 1024
log = "*=DBG"
`), 0o600))

	cfg, err = loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, formatPrettyHex, cfg.Output)
	assert.Equal(t, "\t", cfg.Indent)
	assert.Equal(t, 1024, cfg.MaxPDUSize)
	assert.Equal(t, codec.DefaultMaxDepth, cfg.MaxDepth)
	assert.Equal(t, "*=DBG", cfg.Log)

	// the environment wins over the file
	t.Setenv("PPKRB_OUTPUT", "check")
	t.Setenv("PPKRB_METRICS", "true")
	cfg, err = loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, formatCheck, cfg.Output)
	assert.True(t, cfg.Metrics)
	assert.Equal(t, 1024, cfg.MaxPDUSize)
}

func TestLoadConfig_envFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PPKRB_MAX_DEPTH=7\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("PPKRB_MAX_DEPTH") })

	cfg, err := loadConfig("", envFile)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxDepth)
}

func TestLoadConfig_errors(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("output = "), 0o600))
	_, err := loadConfig(bad)
	require.Error(t, err)

	_, err = loadConfig(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)

	t.Setenv("PPKRB_OUTPUT", "xml")
	_, err = loadConfig("")
	require.Error(t, err)

	t.Setenv("PPKRB_OUTPUT", "")
	t.Setenv("PPKRB_MAX_PDU_SIZE", "big")
	_, err = loadConfig("")
	require.Error(t, err)
}

func sampleError(t *testing.T) []byte {
	t.Helper()
	b, err := krb5.MarshalMessage(&krb5.KRBError{
		PVNO:      5,
		MsgType:   krb5.MessageTypeError,
		STime:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		SUSec:     42,
		ErrorCode: krb5.ErrorCodePreauthRequired,
		Realm:     "EXAMPLE.COM",
		SName:     krb5.PrincipalName{NameType: krb5.NameTypeSrvInst, NameString: []string{"krbtgt", "EXAMPLE.COM"}},
	})
	require.NoError(t, err)
	return b
}

func newPrinter(output, oid string) (*printer, *bytes.Buffer) {
	cfg := defaultConfig()
	cfg.Output = output
	buf := bytes.NewBuffer(nil)
	return &printer{cfg: cfg, oid: oid, w: buf}, buf
}

func TestPrinter(t *testing.T) {
	msg := sampleError(t)
	two := append(append([]byte{}, msg...), msg...)

	p, buf := newPrinter(formatHex, "")
	ok, err := p.run(two)
	require.NoError(t, err)
	assert.True(t, ok)
	back, err := der.ParseHex(buf.String())
	require.NoError(t, err)
	assert.Equal(t, two, back)

	p, buf = newPrinter(formatPrettyHex, "")
	ok, err = p.run(msg)
	require.NoError(t, err)
	assert.True(t, ok)
	back, err = der.ParseHex(buf.String())
	require.NoError(t, err)
	assert.Equal(t, msg, back)

	p, buf = newPrinter(formatText, "")
	ok, err = p.run(msg)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, der.TLV(msg).String(), buf.String())

	p, buf = newPrinter(formatJSON, "")
	ok, err = p.run(msg)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, buf.String(), "KDC_ERR_PREAUTH_REQUIRED")
	assert.Contains(t, buf.String(), "EXAMPLE.COM")

	p, buf = newPrinter(formatCheck, "")
	ok, err = p.run(two)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, buf.String(), "OK: *krb5.KRBError")
}

func TestPrinter_ldap(t *testing.T) {
	v, err := (&ldap.PagedResults{Size: 500, Cookie: []byte{1, 2}}).Marshal()
	require.NoError(t, err)

	p, buf := newPrinter(formatJSON, ldap.OIDPagedResults)
	ok, err := p.run(v)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, buf.String(), "500")

	p, _ = newPrinter(formatJSON, "1.2.3.4")
	_, err = p.run(v)
	require.Error(t, err)
}

func TestPrinter_checkFails(t *testing.T) {
	// not a Kerberos message
	p, buf := newPrinter(formatCheck, "")
	ok, err := p.run(der.Hex2bytes("30 03 02 01 05"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "FAIL")

	// truncated
	msg := sampleError(t)
	p, buf = newPrinter(formatCheck, "")
	ok, err = p.run(msg[:len(msg)-1])
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "FAIL")
}

func TestPrinter_metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, _ := newPrinter(formatCheck, "")
	p.metrics = metrics.New("ppkrb", reg)

	msg := sampleError(t)
	_, err := p.run(append(append([]byte{}, msg...), 0x30, 0x00))
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(p.metrics.DecodesTotal.WithLabelValues("KRB-ERROR", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.metrics.DecodesTotal.WithLabelValues("unknown", "error")))

	buf := bytes.NewBuffer(nil)
	require.NoError(t, writeMetrics(buf, reg))
	assert.Contains(t, buf.String(), "ppkrb_decodes_total")
}
