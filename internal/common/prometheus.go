package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	SubmissionTotal            = "submissions_total"
	LedgerCreditFailure        = "ledger_credit_failures_total"
	ReferralCreditTotal        = "referral_credits_total"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"method", "status_code"}),
		SubmissionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: SubmissionTotal,
			Help: "Count of post submissions by result",
		}, []string{"status"}),
		LedgerCreditFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: LedgerCreditFailure,
			Help: "Count of failed ledger credits after a submission was persisted",
		}, []string{"kind"}),
		ReferralCreditTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: ReferralCreditTotal,
			Help: "Count of referral credits by level",
		}, []string{"level"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"method", "status_code"}),
	}
)
