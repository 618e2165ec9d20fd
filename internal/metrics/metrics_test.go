package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	r := New()
	r.SampleDrawn()
	r.SampleDrawn()
	r.SampleRejected()
	r.ObserveEval(time.Millisecond)
	r.ArtifactWritten("code")
	r.ArtifactWritten("test")
	r.ArtifactWritten("test")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.drawn))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.rejected))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.artifacts.WithLabelValues("test")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.evalTime))
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.SampleDrawn()
		r.SampleRejected()
		r.ObserveEval(time.Second)
		r.ArtifactWritten("code")
	})
	assert.Nil(t, r.Registry())
	assert.NoError(t, r.WriteFile(filepath.Join(t.TempDir(), "m.prom")))
}

func TestWriteFile(t *testing.T) {
	r := New()
	r.SampleDrawn()
	path := filepath.Join(t.TempDir(), "nn2go.prom")
	require.NoError(t, r.WriteFile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "nn2go_samples_drawn_total 1")
}
