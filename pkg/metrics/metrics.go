package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "site_cms", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "site_cms", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	ContentWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "site_cms", Name: "content_writes_total", Help: "Content store writes by operation and content type."},
		[]string{"op", "type"},
	)
	EventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "site_cms", Name: "events_published_total", Help: "Events delivered to the bus by event name."},
		[]string{"event"},
	)
	FormSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "site_cms", Name: "form_submissions_total", Help: "Content form submissions by outcome (saved, blocked, failed)."},
		[]string{"outcome"},
	)
	IconImports = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "site_cms", Name: "icon_imports_total", Help: "Icon selector imports by source and result."},
		[]string{"source", "result"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(ContentWrites)
	reg.MustRegister(EventsPublished)
	reg.MustRegister(FormSubmissions)
	reg.MustRegister(IconImports)
}
