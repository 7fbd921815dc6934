package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumire/notifyschema/internal/domain"
)

func TestObserveValidation(t *testing.T) {
	t.Parallel()

	m, err := NewValidationMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	m.ObserveValidation("channel", time.Millisecond, nil)
	m.ObserveValidation("channel", time.Millisecond, domain.ValidationErrors{
		{Code: domain.CodeMissingField, Field: "name"},
		{Code: domain.CodeMissingField, Field: "channelId"},
		{Code: domain.CodeImmutableFieldConflict, Field: "importance"},
	})

	assert.InDelta(t, 1, testutil.ToFloat64(m.ValidationsTotal.WithLabelValues("channel", "valid")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ValidationsTotal.WithLabelValues("channel", "invalid")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.ViolationsTotal.WithLabelValues("channel", "missing_field")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ViolationsTotal.WithLabelValues("channel", "immutable_field_conflict")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.ValidationDuration))
}

func TestNewValidationMetrics_DuplicateRegistration(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	_, err := NewValidationMetrics(reg)
	require.NoError(t, err)

	_, err = NewValidationMetrics(reg)
	assert.Error(t, err)
}
