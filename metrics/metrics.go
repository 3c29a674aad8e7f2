// Package metrics counts decoded PDUs with Prometheus.  A *Metrics is a codec.Observer:
// set it as Config.Observer on the Containers or MessageDecoders to instrument.
package metrics

import (
	"github.com/gemalto/krb5-go/codec"
	"github.com/gemalto/krb5-go/der"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the decoder metrics.
type Metrics struct {
	// DecodesTotal counts finished PDUs by grammar and result ("ok" or "error").
	DecodesTotal *prometheus.CounterVec
	// DecodeErrors counts failed PDUs by grammar and error kind, e.g. TAG_MISMATCH.
	DecodeErrors *prometheus.CounterVec
	// PDUSize is the size of decoded PDUs, or the offset of the failure.
	PDUSize *prometheus.HistogramVec
}

var _ codec.Observer = (*Metrics)(nil)

// New creates the metrics and registers them with reg.  A nil reg uses the default
// registerer.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "krb5"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		DecodesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "decodes_total",
				Help:      "Total number of PDUs decoded",
			},
			[]string{"grammar", "result"},
		),
		DecodeErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "decode_errors_total",
				Help:      "Total number of PDUs rejected",
			},
			[]string{"grammar", "kind"},
		),
		PDUSize: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "pdu_size_bytes",
				Help:      "Size of decoded PDUs in bytes",
				Buckets:   prometheus.ExponentialBuckets(16, 4, 7),
			},
			[]string{"grammar"},
		),
	}
}

// ObserveDecode implements codec.Observer.
func (m *Metrics) ObserveDecode(grammar string, size int, err error) {
	if grammar == "" {
		grammar = "unknown"
	}
	m.PDUSize.WithLabelValues(grammar).Observe(float64(size))
	if err != nil {
		m.DecodesTotal.WithLabelValues(grammar, "error").Inc()
		m.DecodeErrors.WithLabelValues(grammar, der.KindOf(err).String()).Inc()
		return
	}
	m.DecodesTotal.WithLabelValues(grammar, "ok").Inc()
}
