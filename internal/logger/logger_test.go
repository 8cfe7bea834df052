package logger

import (
	"bytes"
	"testing"

	"jobmarket/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, log.WarnLevel, ParseLevel("WARNING"))
	assert.Equal(t, log.ErrorLevel, ParseLevel("ERROR"))
	assert.Equal(t, log.InfoLevel, ParseLevel("whatever"))
}

func TestPrometheusHook_CountsErrorsByType(t *testing.T) {
	l := log.New()
	l.SetOutput(&bytes.Buffer{})
	l.AddHook(&prometheusHook{})

	before := testutil.ToFloat64(metrics.ErrorsCounter.WithLabelValues(ErrorTypeDB))
	l.WithField(ErrorTypeField, ErrorTypeDB).Error("boom")
	l.WithField(ErrorTypeField, ErrorTypeDB).Warn("not counted")

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ErrorsCounter.WithLabelValues(ErrorTypeDB)))
}
