package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/daily-report-api/internal/metrics"
)

func TestRecordRequest(t *testing.T) {
	before := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/api/reports", "200"))
	metrics.RecordRequest("GET", "/api/reports", 200, 15*time.Millisecond)
	after := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/api/reports", "200"))
	assert.Equal(t, before+1, after)
}

func TestRecordAuthFailureYPolicyDenial(t *testing.T) {
	metrics.RecordAuthFailure("ACCOUNT_DISABLED")
	metrics.RecordPolicyDenial("/api/reports/:id")
	assert.GreaterOrEqual(t, testutil.ToFloat64(metrics.AuthFailuresTotal.WithLabelValues("ACCOUNT_DISABLED")), 1.0)
	assert.GreaterOrEqual(t, testutil.ToFloat64(metrics.PolicyDenialsTotal.WithLabelValues("/api/reports/:id")), 1.0)
}
