package main

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ansel1/merry"
	"github.com/gemalto/flume"
	"github.com/gemalto/krb5-go"
	"github.com/gemalto/krb5-go/der"
	"github.com/gemalto/krb5-go/ldap"
	"github.com/gemalto/krb5-go/metrics"
	"github.com/mjwhitta/cli"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const (
	formatText      = "text"
	formatHex       = "hex"
	formatPrettyHex = "prettyhex"
	formatJSON      = "json"
	formatCheck     = "check"
)

var flags struct {
	output  string
	file    string
	config  string
	oid     string
	metrics bool
}

func parseFlags() {
	cli.Align = true
	cli.Banner = fmt.Sprintf("%s [OPTIONS] [input]", os.Args[0])
	cli.Info(
		"ppkrb - Kerberos and LDAP DER pretty printer",
		"",
		"Reads one or more concatenated DER elements as hex, and prints them as",
		"text, raw hex, pretty printed hex, or decoded JSON.  Any non-hex characters",
		"in the input are ignored, so 'prettyhex' output is valid input.",
		"",
		"The input argument should be a string.  If not present, input is read",
		"from the -f file, or standard in.",
		"",
		"json decodes each element as a Kerberos message, or as the value of the",
		"LDAP control given with --oid.  check decodes each element, re-encodes",
		"it, and exits 1 if the encodings differ.",
		"",
		"Example:",
		"",
		"  ppkrb -o prettyhex 300602010502010a",
	)
	cli.ExitStatus(
		"0 - Success",
		"1 - Error, or a check failed",
	)

	cli.Flag(&flags.output, "o", "output", "", "output format: text|hex|prettyhex|json|check")
	cli.Flag(&flags.file, "f", "file", "", "input file name")
	cli.Flag(&flags.config, "c", "config", "", "TOML config file")
	cli.Flag(&flags.oid, "l", "oid", "", "decode input as the value of this LDAP control")
	cli.Flag(&flags.metrics, "m", "metrics", false, "print decoder metrics to standard error")

	cli.Parse()
}

func main() {
	parseFlags()

	cfg, err := loadConfig(flags.config)
	if err != nil {
		fail("error loading config", err)
	}
	if flags.output != "" {
		cfg.Output = flags.output
	}
	if flags.metrics {
		cfg.Metrics = true
	}

	flume.Configure(flume.Config{
		Development:  true,
		DefaultLevel: flume.InfoLevel,
		Levels:       cfg.Log,
	})

	input, err := readInput()
	if err != nil {
		fail("error reading input", err)
	}

	p := &printer{cfg: cfg, oid: flags.oid, w: os.Stdout}
	var reg *prometheus.Registry
	if cfg.Metrics {
		reg = prometheus.NewRegistry()
		p.metrics = metrics.New("ppkrb", reg)
	}

	ok, err := p.run(input)

	if reg != nil {
		if err := writeMetrics(os.Stderr, reg); err != nil {
			fail("error writing metrics", err)
		}
	}
	if err != nil {
		fail("error", err)
	}
	if !ok {
		os.Exit(1)
	}
}

func readInput() ([]byte, error) {
	buf := bytes.NewBuffer(nil)

	switch {
	case flags.file != "":
		b, err := os.ReadFile(flags.file)
		if err != nil {
			return nil, merry.Wrap(err)
		}
		buf.Write(b)
	case cli.NArg() > 0:
		buf.WriteString(cli.Arg(0))
	default:
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			buf.Write(scanner.Bytes())
		}
		if err := scanner.Err(); err != nil {
			return nil, merry.Wrap(err)
		}
	}

	return der.ParseHex(buf.String())
}

type printer struct {
	cfg     config
	oid     string
	w       io.Writer
	metrics *metrics.Metrics
}

// run prints each element of raw.  ok is false if a check failed.
func (p *printer) run(raw []byte) (ok bool, err error) {
	ok = true
	t := der.TLV(raw)
	for count := 0; len(t) > 0; count++ {
		if count > 0 {
			_, _ = fmt.Fprintln(p.w)
		}
		elem := t
		if n := t.FullLen(); n > 0 && n <= len(t) {
			elem = t[:n]
		}
		same, err := p.print(elem)
		if err != nil {
			return false, err
		}
		ok = ok && same
		t = t.Next()
	}
	return ok, nil
}

func (p *printer) print(t der.TLV) (bool, error) {
	switch p.cfg.Output {
	case formatText:
		if err := der.Print(p.w, "", t); err != nil {
			return false, err
		}
	case formatHex:
		_, _ = fmt.Fprint(p.w, hex.EncodeToString(t))
	case formatPrettyHex:
		if err := der.PrintPrettyHex(p.w, "", p.cfg.Indent, t); err != nil {
			return false, err
		}
	case formatJSON:
		v, err := p.decode(t)
		if err != nil {
			return false, err
		}
		s, err := json.MarshalIndent(v, "", p.cfg.Indent)
		if err != nil {
			return false, merry.Prepend(err, "error printing JSON")
		}
		_, _ = fmt.Fprint(p.w, string(s))
	case formatCheck:
		return p.check(t)
	}
	return true, nil
}

type marshaler interface {
	Marshal() ([]byte, error)
}

func (p *printer) decode(t der.TLV) (marshaler, error) {
	cfg := p.cfg.codecConfig()
	if p.metrics != nil {
		cfg.Observer = p.metrics
	}
	if p.oid != "" {
		return ldap.DecodeControlValueConfig(p.oid, t, cfg)
	}
	return krb5.DecodeMessageConfig(t, cfg)
}

func (p *printer) check(t der.TLV) (bool, error) {
	v, err := p.decode(t)
	if err != nil {
		_, _ = fmt.Fprintf(p.w, "FAIL: %v", err)
		return false, nil
	}
	out, err := v.Marshal()
	if err != nil {
		return false, err
	}
	if !bytes.Equal(out, t) {
		_, _ = fmt.Fprintf(p.w, "FAIL: re-encoding differs\n  in:  %x\n  out: %x", []byte(t), out)
		return false, nil
	}
	_, _ = fmt.Fprintf(p.w, "OK: %T (%d bytes)", v, len(t))
	return true, nil
}

func writeMetrics(w io.Writer, reg *prometheus.Registry) error {
	mfs, err := reg.Gather()
	if err != nil {
		return merry.Wrap(err)
	}
	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return merry.Wrap(err)
		}
	}
	return nil
}

func fail(msg string, err error) {
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, msg+":", err)
	} else {
		_, _ = fmt.Fprintln(os.Stderr, msg)
	}
	os.Exit(1)
}
