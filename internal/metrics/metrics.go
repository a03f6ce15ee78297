// Package metrics exposes Prometheus instruments for the HTTP service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service instruments. Create it with New.
type Metrics struct {
	ParsedLines      *prometheus.CounterVec
	RecordsExtracted prometheus.Counter
	Splits           *prometheus.CounterVec
	OCRRequests      *prometheus.CounterVec
	OCRDuration      prometheus.Histogram
}

// New creates the instruments and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ParsedLines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tankbeurt",
			Name:      "parsed_lines_total",
			Help:      "Input lines seen by the record parser, by strategy.",
		}, []string{"result"}),
		RecordsExtracted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tankbeurt",
			Name:      "records_extracted_total",
			Help:      "Name/distance records extracted from text.",
		}),
		Splits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tankbeurt",
			Name:      "splits_total",
			Help:      "Computed splits, by settlement directive.",
		}, []string{"directive"}),
		OCRRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tankbeurt",
			Name:      "ocr_requests_total",
			Help:      "OCR requests, by outcome.",
		}, []string{"outcome"}),
		OCRDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tankbeurt",
			Name:      "ocr_duration_seconds",
			Help:      "Time spent recognizing an uploaded logbook.",
			Buckets:   []float64{.25, .5, 1, 2, 5, 10, 30, 60},
		}),
	}
	reg.MustRegister(m.ParsedLines, m.RecordsExtracted, m.Splits, m.OCRRequests, m.OCRDuration)
	return m
}

// ObserveOCR records one OCR attempt.
func (m *Metrics) ObserveOCR(start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.OCRRequests.WithLabelValues(outcome).Inc()
	m.OCRDuration.Observe(time.Since(start).Seconds())
}

// ObserveParse records the per-line parser results.
func (m *Metrics) ObserveParse(results []string, records int) {
	if m == nil {
		return
	}
	for _, r := range results {
		m.ParsedLines.WithLabelValues(r).Inc()
	}
	m.RecordsExtracted.Add(float64(records))
}

// ObserveSplit counts a computed split by its directive kind.
func (m *Metrics) ObserveSplit(directive string) {
	if m == nil {
		return
	}
	m.Splits.WithLabelValues(directive).Inc()
}
