package metrics

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findFamily(t *testing.T, m *Metrics, name string) *dto.MetricFamily {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	t.Fatalf("metric %s not found", name)
	return nil
}

func TestDefault(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestNew_SeparateRegistries(t *testing.T) {
	assert.NotSame(t, New().Registry(), New().Registry())
}

func TestRecordAnalysis(t *testing.T) {
	m := New()
	m.RecordAnalysis("statement", OutcomeSuccess)
	m.RecordAnalysis("statement", OutcomeSuccess)
	m.RecordAnalysis("statement", OutcomeValidation)

	f := findFamily(t, m, "statement_analyzer_analyses_total")
	require.Len(t, f.GetMetric(), 2)

	total := 0.0
	for _, metric := range f.GetMetric() {
		total += metric.GetCounter().GetValue()
	}
	assert.Equal(t, 3.0, total)
}

func TestObserveCompletion(t *testing.T) {
	m := New()
	m.ObserveCompletion("summary", 2*time.Second, false)
	m.ObserveCompletion("transactions", time.Second, true)

	hist := findFamily(t, m, "statement_analyzer_completion_duration_seconds")
	assert.Len(t, hist.GetMetric(), 2)

	failures := findFamily(t, m, "statement_analyzer_completion_failures_total")
	require.Len(t, failures.GetMetric(), 1)
	assert.Equal(t, 1.0, failures.GetMetric()[0].GetCounter().GetValue())
}

func TestCounters(t *testing.T) {
	m := New()
	m.RecordTransactions(3)
	m.RecordParseWarning()
	m.RecordCleanupFailure()
	m.ObserveUpload(1024)
	m.ObserveExtraction("fitz", 10*time.Millisecond)

	assert.Equal(t, 3.0, findFamily(t, m, "statement_analyzer_transactions_parsed_total").GetMetric()[0].GetCounter().GetValue())
	assert.Equal(t, 1.0, findFamily(t, m, "statement_analyzer_transaction_parse_warnings_total").GetMetric()[0].GetCounter().GetValue())
	assert.Equal(t, 1.0, findFamily(t, m, "statement_analyzer_temp_cleanup_failures_total").GetMetric()[0].GetCounter().GetValue())
	assert.Equal(t, uint64(1), findFamily(t, m, "statement_analyzer_upload_size_bytes").GetMetric()[0].GetHistogram().GetSampleCount())
}
