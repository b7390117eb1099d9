package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compliance-prefilter/internal/domain/entity"
)

func TestPrometheusRecorder_RecordClassification(t *testing.T) {
	r := NewPrometheusRecorder()

	r.RecordClassification(entity.DecisionRelevant, time.Second)
	r.RecordClassification(entity.DecisionIrrelevant, 2*time.Second)
	r.RecordClassification(entity.DecisionIrrelevant, 3*time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.classifications.WithLabelValues("Relevant")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.classifications.WithLabelValues("Irrelevant")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.classifyDuration))
}

func TestPrometheusRecorder_FailuresAndSkipped(t *testing.T) {
	r := NewPrometheusRecorder()

	r.RecordFailure("openai")
	r.RecordSkipped(3)
	r.RecordSkipped(0)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.failures.WithLabelValues("openai")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.skipped))
}

func TestPrometheusRecorder_IndependentRegistries(t *testing.T) {
	a := NewPrometheusRecorder()
	b := NewPrometheusRecorder()

	a.RecordSkipped(2)

	assert.Equal(t, 2.0, testutil.ToFloat64(a.skipped))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.skipped))
	assert.NotSame(t, a.Registry(), b.Registry())
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	r := NewPrometheusRecorder()
	r.RecordClassification(entity.DecisionRelevant, 500*time.Millisecond)

	path := filepath.Join(t.TempDir(), "prefilter.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.Contains(content, `prefilter_classifications_total{decision="Relevant"} 1`))
	assert.True(t, strings.Contains(content, "prefilter_last_run_timestamp_seconds"))
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}

	assert.NotPanics(t, func() {
		r.RecordClassification(entity.DecisionRelevant, time.Second)
		r.RecordFailure("claude")
		r.RecordSkipped(1)
	})
}
