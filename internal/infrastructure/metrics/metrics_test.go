package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCounter(reg)

	c.WithLabelValues(UserCreated).Inc()
	c.WithLabelValues(UserCreated).Inc()
	c.WithLabelValues(UserDeleted).Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.WithLabelValues(UserCreated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.WithLabelValues(UserDeleted)))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, mfs, 1)
	assert.Equal(t, "userdirectory_general_counters", mfs[0].GetName())
}
