package observability_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/markup"
	"github.com/aretw0/vitrine/pkg/observability"
	"github.com/aretw0/vitrine/pkg/pipeline"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordRuns(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	p := pipeline.New(markup.NewParser(), pipeline.WithLifecycleHooks(m.Hooks()))
	ctx := context.Background()

	p.RunWith(ctx, `<Button/>`, true, domain.TriggerDebounce)
	p.RunWith(ctx, `<Button/>`, true, domain.TriggerManual)
	p.RunWith(ctx, `<Button`, true, domain.TriggerDebounce)
	p.RunWith(ctx, `<SolidColorBrush Color="Red"/>`, true, domain.TriggerDebounce)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("rendered", "debounce")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("rendered", "manual")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("failed", "debounce")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("non_visual", "debounce")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.InFlight))
	assert.Equal(t, 3, testutil.CollectAndCount(m.RunDuration))
}

func TestMetrics_Debounce(t *testing.T) {
	m, err := observability.NewMetrics(nil)
	require.NoError(t, err)

	hooks := m.Hooks()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		hooks.OnScheduled(ctx, &domain.DebounceEvent{Token: uint64(i + 1)})
	}
	hooks.OnCancelled(ctx, &domain.DebounceEvent{Token: 1})
	hooks.OnCancelled(ctx, &domain.DebounceEvent{Token: 2})

	expected := `
# HELP vitrine_debounce_cancellations_total Total number of pending runs superseded before their window elapsed
# TYPE vitrine_debounce_cancellations_total counter
vitrine_debounce_cancellations_total 2
`
	assert.NoError(t, testutil.CollectAndCompare(m.Cancellations, strings.NewReader(expected)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Scheduled))
}

func TestMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}
