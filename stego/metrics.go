package stego

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Patch rejection reasons.
const (
	RejectMissing  = "missing"  // index or metadata tile outside the image or failing parity
	RejectUnused   = "unused"   // index tile holds the unused marker
	RejectChecksum = "checksum" // metadata checksum does not match the index
	RejectMismatch = "mismatch" // version and level disagree with the majority
)

// Metrics counts codec activity. A nil *Metrics records nothing.
type Metrics struct {
	PatchesAccepted  prometheus.Counter
	PatchesRejected  *prometheus.CounterVec
	SymbolsErased    prometheus.Counter
	CodewordsDecoded prometheus.Counter
	CodewordsFailed  prometheus.Counter
	Operations       *prometheus.CounterVec
	Duration         *prometheus.HistogramVec
}

// NewMetrics registers the codec metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		PatchesAccepted: f.NewCounter(prometheus.CounterOpts{
			Namespace: "rsteg", Name: "patches_accepted_total",
			Help: "Patches whose index and metadata tiles verified and agreed with the majority.",
		}),
		PatchesRejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rsteg", Name: "patches_rejected_total",
			Help: "Patch positions skipped during decoding, by reason.",
		}, []string{"reason"}),
		SymbolsErased: f.NewCounter(prometheus.CounterOpts{
			Namespace: "rsteg", Name: "symbols_erased_total",
			Help: "Codeword symbols that were unreadable and replaced before error correction.",
		}),
		CodewordsDecoded: f.NewCounter(prometheus.CounterOpts{
			Namespace: "rsteg", Name: "codewords_decoded_total",
			Help: "Codewords successfully corrected.",
		}),
		CodewordsFailed: f.NewCounter(prometheus.CounterOpts{
			Namespace: "rsteg", Name: "codewords_failed_total",
			Help: "Codewords with more errors than the level can correct.",
		}),
		Operations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rsteg", Name: "operations_total",
			Help: "Encode and decode calls by result.",
		}, []string{"op", "result"}),
		Duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rsteg", Name: "operation_duration_seconds",
			Help:    "Encode and decode latency.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"op"}),
	}
}

func (m *Metrics) acceptPatch() {
	if m != nil {
		m.PatchesAccepted.Inc()
	}
}

func (m *Metrics) rejectPatch(reason string) {
	if m != nil {
		m.PatchesRejected.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) erased(n int) {
	if m != nil && n > 0 {
		m.SymbolsErased.Add(float64(n))
	}
}

func (m *Metrics) codeword(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.CodewordsFailed.Inc()
	} else {
		m.CodewordsDecoded.Inc()
	}
}

func (m *Metrics) observe(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Operations.WithLabelValues(op, result).Inc()
	m.Duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
