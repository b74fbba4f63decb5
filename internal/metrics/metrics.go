package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitcourse_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fitcourse_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	AccessDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitcourse_access_decisions_total",
			Help: "Program access decisions by outcome",
		},
		[]string{"decision"},
	)

	SessionFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitcourse_access_session_fallbacks_total",
			Help: "Access decisions that fell back to the cached session snapshot because the user read failed",
		},
	)

	SubscriptionConfirmationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitcourse_subscription_confirmations_total",
			Help: "Checkout confirmation attempts by result",
		},
		[]string{"result"},
	)

	SubscriptionGrantsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitcourse_subscription_admin_actions_total",
			Help: "Administrative subscription grants and revokes",
		},
		[]string{"action"},
	)

	EnrollmentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitcourse_enrollments_total",
			Help: "Total number of program enrollments",
		},
	)

	WorkoutCompletionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitcourse_workout_completions_total",
			Help: "Total number of workout completions recorded",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitcourse_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordAccessDecision(decision string) {
	AccessDecisionsTotal.WithLabelValues(decision).Inc()
}

func RecordSessionFallback() {
	SessionFallbacksTotal.Inc()
}

func RecordConfirmation(result string) {
	SubscriptionConfirmationsTotal.WithLabelValues(result).Inc()
}

func RecordAdminSubscriptionAction(action string) {
	SubscriptionGrantsTotal.WithLabelValues(action).Inc()
}

func RecordEnrollment() {
	EnrollmentsTotal.Inc()
}

func RecordWorkoutCompletion() {
	WorkoutCompletionsTotal.Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
