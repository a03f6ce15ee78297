package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserve(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveParse([]string{"primary", "primary", "skipped"}, 2)
	m.ObserveSplit("pay_from_to")
	m.ObserveOCR(time.Now(), nil)
	m.ObserveOCR(time.Now(), errors.New("tesseract failed"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ParsedLines.WithLabelValues("primary")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ParsedLines.WithLabelValues("skipped")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RecordsExtracted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Splits.WithLabelValues("pay_from_to")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OCRRequests.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OCRRequests.WithLabelValues("error")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveParse([]string{"primary"}, 1)
		m.ObserveSplit("await_input")
		m.ObserveOCR(time.Now(), nil)
	})
}
