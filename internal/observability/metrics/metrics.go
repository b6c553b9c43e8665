package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "healthsense"

// ChatMetrics exposes counters/histograms for chat sessions.
type ChatMetrics struct {
	repliesTotal   *prometheus.CounterVec
	replyLatency   *prometheus.HistogramVec
	sessionsActive prometheus.Gauge
	rejectedTotal  *prometheus.CounterVec
}

func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		repliesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chat",
			Name:      "replies_total",
			Help:      "Assistant replies appended to chat transcripts",
		}, []string{"source"}),
		replyLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "chat",
			Name:      "reply_latency_seconds",
			Help:      "Time from user submit to assistant reply",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "chat",
			Name:      "sessions_active",
			Help:      "Chat sessions currently held in memory",
		}),
		rejectedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chat",
			Name:      "rejected_submits_total",
			Help:      "Submits dropped before reaching the assistant",
		}, []string{"reason"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.repliesTotal, m.replyLatency, m.sessionsActive, m.rejectedTotal)
	return m
}

// ObserveReply records a reply from the given source ("remote" or "fallback").
func (m *ChatMetrics) ObserveReply(source string, seconds float64) {
	if m == nil {
		return
	}
	m.repliesTotal.WithLabelValues(source).Inc()
	m.replyLatency.WithLabelValues(source).Observe(seconds)
}

func (m *ChatMetrics) ObserveRejected(reason string) {
	if m == nil {
		return
	}
	m.rejectedTotal.WithLabelValues(reason).Inc()
}

func (m *ChatMetrics) SessionOpened() {
	if m == nil {
		return
	}
	m.sessionsActive.Inc()
}

func (m *ChatMetrics) SessionClosed() {
	if m == nil {
		return
	}
	m.sessionsActive.Dec()
}

// BookingMetrics exposes counters for the booking wizard.
type BookingMetrics struct {
	draftsOpened  prometheus.Counter
	actionsTotal  *prometheus.CounterVec
	confirmations *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		draftsOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "drafts_opened_total",
			Help:      "Booking wizards opened",
		}),
		actionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "actions_total",
			Help:      "Wizard actions by outcome",
		}, []string{"action", "result"}),
		confirmations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "confirmations_total",
			Help:      "Confirmed appointments by specialty",
		}, []string{"specialty"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.draftsOpened, m.actionsTotal, m.confirmations)
	return m
}

func (m *BookingMetrics) ObserveOpened() {
	if m == nil {
		return
	}
	m.draftsOpened.Inc()
}

// ObserveAction records a wizard action; result is "ok" or an error label.
func (m *BookingMetrics) ObserveAction(action, result string) {
	if m == nil {
		return
	}
	m.actionsTotal.WithLabelValues(action, result).Inc()
}

func (m *BookingMetrics) ObserveConfirmed(specialty string) {
	if m == nil {
		return
	}
	m.confirmations.WithLabelValues(specialty).Inc()
}

// HTTPMetrics tracks request counts and latency per route pattern.
type HTTPMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.requestDuration)
	return m
}

func (m *HTTPMetrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, route, status).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(seconds)
}
