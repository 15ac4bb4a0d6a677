package usecase

import (
	"errors"
	"strings"

	"github.com/jonbrc/DataCubo-Back/internal/pkg/pkgerror"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess     = "success"
	outcomeRejected    = "rejected"
	outcomeTooLarge    = "too_large"
	outcomeParseFailed = "parse_failed"
	outcomeFailed      = "failed"
)

// Metrics counts uploads by extension and outcome and records how many rows
// successful uploads produced. A nil *Metrics records nothing.
type Metrics struct {
	uploads *prometheus.CounterVec
	rows    prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "datacubo_uploads_total",
			Help: "Uploaded files by extension and outcome.",
		}, []string{"extension", "outcome"}),
		rows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "datacubo_upload_rows",
			Help:    "Rows parsed from successful uploads.",
			Buckets: prometheus.ExponentialBuckets(1, 10, 7),
		}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.uploads, m.rows} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

func (m *Metrics) observe(ext string, rows int, err error) {
	if m == nil {
		return
	}
	if ext == "" {
		ext = "none"
	}

	outcome := outcomeOf(err)
	m.uploads.WithLabelValues(ext, outcome).Inc()
	if outcome == outcomeSuccess {
		m.rows.Observe(float64(rows))
	}
}

func outcomeOf(err error) string {
	if err == nil {
		return outcomeSuccess
	}

	var perr *pkgerror.Error
	if !errors.As(err, &perr) {
		return outcomeFailed
	}

	switch {
	case perr.Code() == pkgerror.CodeTooLarge:
		return outcomeTooLarge
	case perr.Type() == pkgerror.TypeValidation:
		return outcomeRejected
	case strings.HasPrefix(perr.Msg(), parseFailurePrefix):
		return outcomeParseFailed
	default:
		return outcomeFailed
	}
}
