package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromSink_RecordRecompute(t *testing.T) {
	reg := prometheus.NewRegistry()

	sink, err := NewPromSink(reg)
	require.NoError(t, err)

	sink.RecordRecompute("ok", 20*time.Millisecond)
	sink.RecordRecompute("ok", 10*time.Millisecond)
	sink.RecordRecompute("superseded", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(sink.recomputes.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.recomputes.WithLabelValues("superseded")))
	assert.Equal(t, 2, testutil.CollectAndCount(sink.latency))
}

func TestNewPromSink_ReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()

	first, err := NewPromSink(reg)
	require.NoError(t, err)
	second, err := NewPromSink(reg)
	require.NoError(t, err)

	first.RecordRecompute("error", time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(second.recomputes.WithLabelValues("error")))
}
