package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheus_BusinessEvents(t *testing.T) {
	p := NewPrometheus()

	p.UserRegistered(true)
	p.UserRegistered(false)
	p.UserRegistered(true)
	assert.Equal(t, 2.0, testutil.ToFloat64(p.usersRegistered.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.usersRegistered.WithLabelValues("false")))

	p.TransactionRequested("Deposit")
	assert.Equal(t, 1.0, testutil.ToFloat64(p.transactionsCreated.WithLabelValues("Deposit")))

	p.TransactionSettled("Deposit", "Completed", 10000)
	p.TransactionSettled("Deposit", "Failed", 5000)
	assert.Equal(t, 1.0, testutil.ToFloat64(p.transactionsSettled.WithLabelValues("Deposit", "Completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.transactionsSettled.WithLabelValues("Deposit", "Failed")))
	assert.Equal(t, 10000.0, testutil.ToFloat64(p.settledAmount.WithLabelValues("Deposit")))

	p.ReferralBonusPaid(1, 1000)
	p.ReferralBonusPaid(2, 500)
	assert.Equal(t, 1.0, testutil.ToFloat64(p.referralBonuses.WithLabelValues("1")))
	assert.Equal(t, 500.0, testutil.ToFloat64(p.referralBonusAmount.WithLabelValues("2")))
}

func TestPrometheus_HTTPAndJobs(t *testing.T) {
	p := NewPrometheus()

	done := p.HTTPStarted()
	assert.Equal(t, 1.0, testutil.ToFloat64(p.httpInFlight))
	done("GET", "/api/v1/me", http.StatusOK, 20*time.Millisecond)
	assert.Equal(t, 0.0, testutil.ToFloat64(p.httpInFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.httpRequests.WithLabelValues("GET", "/api/v1/me", "200")))

	p.HTTPStarted()("GET", "", http.StatusNotFound, time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(p.httpRequests.WithLabelValues("GET", "unmatched", "404")))

	p.JobRun("lock_cleanup", 0, true)
	p.JobRun("lock_cleanup", time.Second, false)
	assert.Equal(t, 1.0, testutil.ToFloat64(p.jobRuns.WithLabelValues("lock_cleanup", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.jobRuns.WithLabelValues("lock_cleanup", "false")))
}

func TestPrometheus_Handler(t *testing.T) {
	p := NewPrometheus()
	p.UserRegistered(false)

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `referral_platform_users_registered_total{referred="false"} 1`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestPrometheus_InstancesAreIndependent(t *testing.T) {
	a, b := NewPrometheus(), NewPrometheus()
	a.TransactionRequested("Withdrawal")

	assert.Equal(t, 1.0, testutil.ToFloat64(a.transactionsCreated.WithLabelValues("Withdrawal")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.transactionsCreated.WithLabelValues("Withdrawal")))
}
