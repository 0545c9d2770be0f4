package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sparkle_bookings_created_total",
		Help: "Total number of booking requests created",
	})

	BookingTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sparkle_booking_transitions_total",
		Help: "Booking status transitions by target status and result",
	}, []string{"target", "result"})

	PaymentIntentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sparkle_payment_intents_total",
		Help: "Payment intents requested by routing mode",
	}, []string{"routing"})

	RefundsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sparkle_refunds_total",
		Help: "Refund requests by outcome",
	}, []string{"outcome", "split"})

	WebhookEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sparkle_webhook_events_total",
		Help: "Processor webhook events by type and result",
	}, []string{"type", "result"})

	DisputesOpenedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sparkle_disputes_opened_total",
		Help: "Total number of payment disputes reported by the processor",
	})

	NotificationsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sparkle_notifications_created_total",
		Help: "Notifications written by the notifier by kind",
	}, []string{"kind"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)

const (
	ResultOK      = "ok"
	ResultFailed  = "failed"
	ResultIgnored = "ignored"
	ResultDup     = "duplicate"
	ResultStale   = "stale"
)
