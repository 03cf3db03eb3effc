package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
)

const namespace = "referral_platform"

// Prometheus records business, HTTP and job metrics on its own registry
type Prometheus struct {
	registry *prometheus.Registry

	usersRegistered     *prometheus.CounterVec
	transactionsCreated *prometheus.CounterVec
	transactionsSettled *prometheus.CounterVec
	settledAmount       *prometheus.CounterVec
	referralBonuses     *prometheus.CounterVec
	referralBonusAmount *prometheus.CounterVec

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	jobRuns     *prometheus.CounterVec
	jobDuration *prometheus.HistogramVec
}

var _ coreport.Metrics = (*Prometheus)(nil)

// NewPrometheus creates the collectors and registers them with a fresh registry
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		usersRegistered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "users",
			Name:      "registered_total",
			Help:      "Total number of registered users.",
		}, []string{"referred"}),
		transactionsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transactions",
			Name:      "requested_total",
			Help:      "Total number of transactions requested.",
		}, []string{"type"}),
		transactionsSettled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transactions",
			Name:      "settled_total",
			Help:      "Total number of transactions that reached a final status.",
		}, []string{"type", "status"}),
		settledAmount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transactions",
			Name:      "settled_amount_cents_total",
			Help:      "Sum of completed transaction amounts in cents.",
		}, []string{"type"}),
		referralBonuses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "referrals",
			Name:      "bonuses_paid_total",
			Help:      "Total number of referral bonuses paid.",
		}, []string{"level"}),
		referralBonusAmount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "referrals",
			Name:      "bonus_amount_cents_total",
			Help:      "Sum of referral bonuses paid in cents.",
		}, []string{"level"}),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"method", "route"}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "job_runs_total",
			Help:      "Total number of background job runs.",
		}, []string{"job", "success"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "job_run_duration_seconds",
			Help:      "Duration of background job runs.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		}, []string{"job"}),
	}

	p.registry.MustRegister(
		p.usersRegistered,
		p.transactionsCreated,
		p.transactionsSettled,
		p.settledAmount,
		p.referralBonuses,
		p.referralBonusAmount,
		p.httpInFlight,
		p.httpRequests,
		p.httpDuration,
		p.jobRuns,
		p.jobDuration,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return p
}

// RegisterDBStats exports the connection pool statistics of db
func (p *Prometheus) RegisterDBStats(db *sql.DB, name string) error {
	return p.registry.Register(collectors.NewDBStatsCollector(db, name))
}

// Registry exposes the underlying registry, mostly for tests
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry in the Prometheus text format
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

func (p *Prometheus) UserRegistered(referred bool) {
	p.usersRegistered.WithLabelValues(strconv.FormatBool(referred)).Inc()
}

func (p *Prometheus) TransactionRequested(txType string) {
	p.transactionsCreated.WithLabelValues(txType).Inc()
}

// TransactionSettled counts the final status; only completed amounts are summed
func (p *Prometheus) TransactionSettled(txType string, status string, amountInCents int64) {
	p.transactionsSettled.WithLabelValues(txType, status).Inc()
	if status == "Completed" && amountInCents > 0 {
		p.settledAmount.WithLabelValues(txType).Add(float64(amountInCents))
	}
}

func (p *Prometheus) ReferralBonusPaid(level int, amountInCents int64) {
	label := strconv.Itoa(level)
	p.referralBonuses.WithLabelValues(label).Inc()
	if amountInCents > 0 {
		p.referralBonusAmount.WithLabelValues(label).Add(float64(amountInCents))
	}
}

// HTTPStarted marks a request in flight and returns the func that records its outcome
func (p *Prometheus) HTTPStarted() func(method, route string, status int, duration time.Duration) {
	p.httpInFlight.Inc()
	return func(method, route string, status int, duration time.Duration) {
		p.httpInFlight.Dec()
		if route == "" {
			route = "unmatched"
		}
		p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		p.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
	}
}

// JobRun records one background job execution
func (p *Prometheus) JobRun(job string, duration time.Duration, success bool) {
	if duration <= 0 {
		duration = time.Millisecond
	}
	p.jobRuns.WithLabelValues(job, strconv.FormatBool(success)).Inc()
	p.jobDuration.WithLabelValues(job).Observe(duration.Seconds())
}

// Noop discards every business event
type Noop struct{}

var _ coreport.Metrics = Noop{}

func (Noop) UserRegistered(bool)                      {}
func (Noop) TransactionRequested(string)              {}
func (Noop) TransactionSettled(string, string, int64) {}
func (Noop) ReferralBonusPaid(int, int64)             {}
