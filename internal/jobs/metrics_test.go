package jobmetrics

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestTrackerRecordsOutcome(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	require.NoError(t, m.Track("roles:reapply").End(nil))
	failure := errors.New("boom")
	require.Equal(t, failure, m.Track("roles:reapply").End(failure))

	require.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("roles:reapply", "success")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("roles:reapply", "failure")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues("roles:reapply")))
}

func TestMiddlewareTracksTaskType(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	handler := m.Middleware()(asynq.HandlerFunc(func(ctx context.Context, task *asynq.Task) error {
		return nil
	}))
	require.NoError(t, handler.ProcessTask(context.Background(), asynq.NewTask("mail:send", nil)))

	require.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("mail:send", "success")))
}

func TestNilMetricsTrackIsNoOp(t *testing.T) {
	var m *Metrics
	err := errors.New("kept")
	require.Equal(t, err, m.Track("anything").End(err))
}
