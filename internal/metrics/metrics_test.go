package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.DraftOutcome("fallback")
		m.BlockEnrichment("hit")
		m.ImageStrategy("direct_lookup", "found")
		m.ObserveOutbound("places", time.Now(), nil)
	})
}

func TestCountersIncrement(t *testing.T) {
	m := MustNew(prometheus.NewRegistry())

	m.DraftOutcome("generated")
	m.DraftOutcome("fallback")
	m.DraftOutcome("fallback")
	m.ImageStrategy("text_search", "empty")
	m.ObserveOutbound("places", time.Now(), errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.drafts.WithLabelValues("fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.drafts.WithLabelValues("generated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.images.WithLabelValues("text_search", "empty")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.outbound))
}
